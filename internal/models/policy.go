package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Policy is the caller-supplied business configuration a receipt is
// validated against. There is no implicit global configuration inside the
// verification core; a Policy travels with every invocation.
type Policy struct {
	// RecipientName must appear as a substring of the extracted
	// counterparty name. Substring matching is intentional: OCR may
	// prepend or append stray characters.
	RecipientName string `yaml:"recipient_name"`

	// AccountTail must appear within the masked account tail.
	AccountTail string `yaml:"account_tail"`

	// MinimumAmount is the exclusive lower bound: a payment exactly equal
	// to it is rejected.
	MinimumAmount decimal.Decimal `yaml:"minimum_amount"`
}

// Validate checks that the policy itself is usable.
func (p Policy) Validate() error {
	if p.RecipientName == "" {
		return fmt.Errorf("policy: recipient name is required")
	}
	if p.AccountTail == "" {
		return fmt.Errorf("policy: account tail is required")
	}
	if p.MinimumAmount.IsNegative() {
		return fmt.Errorf("policy: minimum amount must not be negative")
	}
	return nil
}
