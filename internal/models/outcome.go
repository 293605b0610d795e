package models

// RejectionReason identifies why a receipt was rejected. Rejections are
// expected, user-facing outcomes, never errors: each reason maps to a
// distinct message for the submitting user.
type RejectionReason string

const (
	// RejectedIncomplete: the transaction id or the amount could not be
	// extracted from the text.
	RejectedIncomplete RejectionReason = "incomplete"

	// RejectedIdentityMismatch: the counterparty printed on the receipt is
	// not the configured recipient.
	RejectedIdentityMismatch RejectionReason = "identity_mismatch"

	// RejectedUnparseableAmount: the normalized amount string did not
	// parse as a non-negative decimal.
	RejectedUnparseableAmount RejectionReason = "unparseable_amount"

	// RejectedAmountTooLow: the amount did not exceed the configured
	// minimum.
	RejectedAmountTooLow RejectionReason = "amount_too_low"

	// RejectedDuplicate: the transaction id has already been consumed.
	RejectedDuplicate RejectionReason = "duplicate"
)

// Outcome is the terminal value of one pipeline invocation: either an
// accepted receipt or a rejection with a specific reason. It is never
// persisted, only logged and communicated.
type Outcome struct {
	Receipt *ValidatedReceipt
	Reason  RejectionReason
}

// Accepted reports whether the receipt passed all gates.
func (o Outcome) Accepted() bool {
	return o.Receipt != nil && o.Reason == ""
}

// Accept wraps a validated receipt in a successful outcome.
func Accept(r *ValidatedReceipt) Outcome {
	return Outcome{Receipt: r}
}

// Reject builds a terminal rejection outcome.
func Reject(reason RejectionReason) Outcome {
	return Outcome{Reason: reason}
}
