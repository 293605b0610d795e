// Package extractor parses raw OCR text from a payment screenshot into a
// candidate receipt record. Extraction is organized as an ordered list of
// strategies tried in priority order: label-anchored rules first because
// they are unambiguous, shape-only rules as the fallback for garbled labels
// and non-Latin receipt layouts. Each strategy fills only the fields that
// are still unset, so extraction degrades field by field and never fails.
package extractor

import (
	"strings"

	"merxylab/kpay-verify/internal/logging"
	"merxylab/kpay-verify/internal/models"
)

// Strategy defines one approach to recognizing receipt fields in
// normalized OCR text.
type Strategy interface {
	// Name returns the name of this strategy for logging and debugging.
	Name() string

	// Applies reports whether the strategy can run against the text.
	Applies(t *ReceiptText) bool

	// Extract fills fields of c that are still unset. Fields already
	// populated by an earlier, more specific strategy are left alone.
	Extract(t *ReceiptText, c *models.Candidate)
}

// Extractor turns raw OCR text into a candidate record by running its
// strategies in order.
type Extractor struct {
	strategies []Strategy
	logger     logging.Logger
}

// New creates an Extractor with the default strategy order: labels first,
// shape rules second.
func New(logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Extractor{
		strategies: []Strategy{
			NewLabelStrategy(),
			NewShapeStrategy(),
		},
		logger: logger,
	}
}

// NewWithStrategies creates an Extractor with an explicit strategy list.
// Used by tests to exercise strategies in isolation.
func NewWithStrategies(logger logging.Logger, strategies ...Strategy) *Extractor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Extractor{strategies: strategies, logger: logger}
}

// Extract parses raw OCR text into a candidate record. It never fails;
// fields that cannot be recognized are left unset.
func (e *Extractor) Extract(raw string) models.Candidate {
	t := NormalizeText(raw)
	var c models.Candidate

	for _, s := range e.strategies {
		if !s.Applies(t) {
			e.logger.WithField(logging.FieldStrategy, s.Name()).
				Debug("Extraction strategy not applicable")
			continue
		}
		s.Extract(t, &c)
	}

	e.logger.WithFields(
		logging.Field{Key: logging.FieldTransactionID, Value: c.TransactionID},
		logging.Field{Key: logging.FieldAmount, Value: c.Amount},
	).Debug("Extraction finished")

	return c
}

// setAmount records a printed amount on the candidate: the raw string is
// kept for display, the stored magnitude has separators and sign stripped.
func setAmount(c *models.Candidate, printed string) {
	c.RawAmount = printed + " Ks"
	c.AmountNegative = strings.HasPrefix(printed, "-")
	magnitude := strings.ReplaceAll(printed, ",", "")
	magnitude = strings.TrimPrefix(magnitude, "-")
	c.Amount = magnitude
}

// lastDigits returns the trailing n digits contained in s, ignoring any
// non-digit masking characters.
func lastDigits(s string, n int) string {
	var digits []rune
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < n {
		return string(digits)
	}
	return string(digits[len(digits)-n:])
}
