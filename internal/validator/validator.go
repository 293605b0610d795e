// Package validator applies the business rules that decide whether an
// extracted candidate record is an acceptable payment. Each rule is a hard
// gate: the first failing gate determines the rejection reason and no
// further checks run. A ValidatedReceipt can only come out of the success
// path here.
package validator

import (
	"strings"

	"github.com/shopspring/decimal"

	"merxylab/kpay-verify/internal/logging"
	"merxylab/kpay-verify/internal/models"
)

// Validator checks candidate records against a policy.
type Validator struct {
	logger logging.Logger
}

// New creates a Validator.
func New(logger logging.Logger) *Validator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Validator{logger: logger}
}

// Validate runs the rule gates in order against the candidate. On success
// it returns the validated receipt and an empty reason; on failure the
// receipt is nil and the reason identifies the first gate that failed.
func (v *Validator) Validate(c models.Candidate, p models.Policy) (*models.ValidatedReceipt, models.RejectionReason) {
	// Gate 1: the transaction id and the amount must both be present.
	if !c.HasRequired() {
		v.reject(c, models.RejectedIncomplete)
		return nil, models.RejectedIncomplete
	}

	// Gate 2: the counterparty must be the configured recipient. Substring
	// matching on both the name and the masked tail tolerates stray OCR
	// characters around the real value.
	if !identityMatches(c.Counterparty, p) {
		v.reject(c, models.RejectedIdentityMismatch)
		return nil, models.RejectedIdentityMismatch
	}

	// Gate 3: the normalized magnitude must parse as a non-negative
	// decimal. The sign was already stripped during extraction, so a
	// parse failure means the OCR mangled the digits themselves.
	amount, err := decimal.NewFromString(c.Amount)
	if err != nil || amount.IsNegative() {
		v.reject(c, models.RejectedUnparseableAmount)
		return nil, models.RejectedUnparseableAmount
	}

	// Gate 4: strictly greater than the minimum. Paying exactly the
	// minimum is not enough.
	if !amount.GreaterThan(p.MinimumAmount) {
		v.reject(c, models.RejectedAmountTooLow)
		return nil, models.RejectedAmountTooLow
	}

	display := c.RawAmount
	if display == "" {
		display = c.Amount
	}

	v.logger.WithFields(
		logging.Field{Key: logging.FieldTransactionID, Value: c.TransactionID},
		logging.Field{Key: logging.FieldAmount, Value: amount.String()},
	).Debug("Candidate passed validation")

	return &models.ValidatedReceipt{
		TransactionID: c.TransactionID,
		Time:          c.Time,
		Counterparty:  *c.Counterparty,
		Notes:         c.Notes,
		DisplayAmount: display,
		Amount:        amount,
	}, ""
}

// identityMatches reports whether the extracted counterparty carries both
// the configured recipient name and account tail.
func identityMatches(cp *models.Counterparty, p models.Policy) bool {
	if cp == nil {
		return false
	}
	return strings.Contains(cp.Name, p.RecipientName) &&
		strings.Contains(cp.AccountTail, p.AccountTail)
}

func (v *Validator) reject(c models.Candidate, reason models.RejectionReason) {
	v.logger.WithFields(
		logging.Field{Key: logging.FieldTransactionID, Value: c.TransactionID},
		logging.Field{Key: logging.FieldReason, Value: string(reason)},
	).Debug("Candidate rejected")
}
