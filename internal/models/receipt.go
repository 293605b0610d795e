// Package models defines the core data types exchanged between the field
// extractor, the receipt validator, and the duplicate guard.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Counterparty is the recipient printed on a receipt: a display name plus
// the last visible digits of a masked account number.
type Counterparty struct {
	Name        string `json:"name" yaml:"name"`
	AccountTail string `json:"account_tail" yaml:"account_tail"`
}

// Candidate holds extracted-but-unvalidated receipt fields. Every field is
// independently optional: extraction never fails outright, it degrades
// field by field. Completeness is a predicate evaluated by the validator,
// not a structural guarantee.
type Candidate struct {
	// Time is the transaction timestamp as printed, DD/MM/YYYY HH:MM:SS.
	Time string `json:"time" yaml:"time"`

	// TransactionID is the 16-20 digit numeric identifier of the payment.
	TransactionID string `json:"transaction_id" yaml:"transaction_id"`

	// Amount is the normalized magnitude: thousands separators and any
	// leading sign stripped, currency suffix removed.
	Amount string `json:"amount" yaml:"amount"`

	// RawAmount is the amount as printed (sign and separators intact)
	// with a canonical currency suffix, kept for display.
	RawAmount string `json:"raw_amount" yaml:"raw_amount"`

	// AmountNegative records whether the printed amount carried a leading
	// sign. Debits print as negative but are treated as plain magnitudes
	// for the minimum-amount check.
	AmountNegative bool `json:"amount_negative" yaml:"amount_negative"`

	Counterparty *Counterparty `json:"counterparty,omitempty" yaml:"counterparty,omitempty"`

	Notes string `json:"notes" yaml:"notes"`
}

// HasRequired reports whether the fields the validator treats as mandatory
// (transaction id and amount) are both present.
func (c Candidate) HasRequired() bool {
	return c.TransactionID != "" && c.Amount != ""
}

// ValidatedReceipt is a Candidate for which validation has confirmed the
// required fields, the counterparty identity, and the amount threshold.
// It is constructible only by the validator's success path.
type ValidatedReceipt struct {
	TransactionID string          `json:"transaction_id" yaml:"transaction_id"`
	Time          string          `json:"time" yaml:"time"`
	Counterparty  Counterparty    `json:"counterparty" yaml:"counterparty"`
	Notes         string          `json:"notes" yaml:"notes"`

	// DisplayAmount is the human-readable amount string as printed.
	DisplayAmount string `json:"display_amount" yaml:"display_amount"`

	// Amount is the parsed positive magnitude for arithmetic.
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// LedgerEntry is the durable record written after acceptance. It is created
// exactly once per accepted transaction id and never updated or deleted by
// this subsystem.
type LedgerEntry struct {
	TransactionID string    `json:"transaction_id" csv:"transaction_id"`
	UserID        string    `json:"user_id" csv:"user_id"`
	Username      string    `json:"username" csv:"username"`
	Amount        string    `json:"amount" csv:"amount"`
	Time          string    `json:"time" csv:"time"`
	Notes         string    `json:"notes" csv:"notes"`
	AcceptedAt    time.Time `json:"accepted_at" csv:"accepted_at"`
}
