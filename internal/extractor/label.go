package extractor

import (
	"regexp"
	"strings"

	"merxylab/kpay-verify/internal/models"
)

// fieldLabels are the literal labels of the primary receipt layout. Notes
// capture stops at whichever of these appears next.
var fieldLabels = []string{
	"Transaction Time",
	"Transaction No",
	"Transfer To",
	"Amount",
	"Notes",
}

var (
	labelTimePattern   = regexp.MustCompile(`Transaction Time\s*(\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2})`)
	labelIDPattern     = regexp.MustCompile(`Transaction No\.?\s*(\d{16,20})`)
	labelAmountPattern = regexp.MustCompile(`(?i)Amount\s*(-?\d[\d,]*\.?\d*)\s*Ks`)
	labelNamePattern   = regexp.MustCompile(`Transfer To\s*([A-Z][A-Za-z ]+?)\s*[(<]?([*#]+\d+)[)>]?`)
)

// LabelStrategy recognizes fields of the primary receipt layout, where each
// value is preceded by a literal English label. Label-anchored matches are
// unambiguous, so this strategy runs before any shape-based fallback.
type LabelStrategy struct{}

// NewLabelStrategy creates a LabelStrategy.
func NewLabelStrategy() *LabelStrategy {
	return &LabelStrategy{}
}

// Name returns the name of this strategy for logging and debugging.
func (s *LabelStrategy) Name() string {
	return "label"
}

// Applies reports whether label-anchored extraction is worth attempting.
// Text without any Latin letters cannot contain the literal labels.
func (s *LabelStrategy) Applies(t *ReceiptText) bool {
	return t.HasLatinLetters()
}

// Extract fills unset candidate fields from label-anchored matches.
func (s *LabelStrategy) Extract(t *ReceiptText, c *models.Candidate) {
	if c.Time == "" {
		if m := labelTimePattern.FindStringSubmatch(t.Joined); m != nil {
			c.Time = m[1]
		}
	}

	if c.TransactionID == "" {
		if m := labelIDPattern.FindStringSubmatch(t.Joined); m != nil {
			c.TransactionID = m[1]
		}
	}

	if c.Amount == "" {
		if m := labelAmountPattern.FindStringSubmatch(t.Joined); m != nil {
			setAmount(c, m[1])
		}
	}

	if c.Counterparty == nil {
		if m := labelNamePattern.FindStringSubmatch(t.Joined); m != nil {
			c.Counterparty = &models.Counterparty{
				Name:        strings.TrimSpace(m[1]),
				AccountTail: lastDigits(m[2], 4),
			}
		}
	}

	if c.Notes == "" {
		c.Notes = labeledNotes(t.Joined)
	}
}

// labeledNotes captures the text following a literal "Notes" label, up to
// but not including the next recognized label or end of text.
func labeledNotes(joined string) string {
	idx := strings.Index(joined, "Notes")
	if idx < 0 {
		return ""
	}
	rest := strings.TrimSpace(joined[idx+len("Notes"):])

	cut := len(rest)
	for _, label := range fieldLabels {
		if i := strings.Index(rest, label); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(rest[:cut])
}
