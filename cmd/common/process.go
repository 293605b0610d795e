// Package common holds the verification flow shared by the text and image
// commands: configuration loading, ledger wiring, and rendering of the
// pipeline outcome.
package common

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"merxylab/kpay-verify/internal/config"
	"merxylab/kpay-verify/internal/ledger"
	"merxylab/kpay-verify/internal/logging"
	"merxylab/kpay-verify/internal/models"
	"merxylab/kpay-verify/internal/pipeline"
)

// Setup bundles everything a verification command needs.
type Setup struct {
	Config *config.Config
	Policy models.Policy
	Ledger *ledger.Ledger
	Logger logging.Logger
}

// NewSetup loads configuration and opens the ledger. policyFile and
// ledgerPath, when non-empty, override the configured values.
func NewSetup(policyFile, ledgerPath string, log *logrus.Logger) (*Setup, error) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, err
	}

	var policy models.Policy
	if policyFile != "" {
		policy, err = config.LoadPolicyFile(policyFile)
	} else {
		policy, err = cfg.VerificationPolicy()
	}
	if err != nil {
		return nil, err
	}

	if ledgerPath == "" {
		ledgerPath = cfg.Ledger.Path
	}
	store, err := ledger.Open(ledgerPath)
	if err != nil {
		return nil, err
	}

	return &Setup{
		Config: cfg,
		Policy: policy,
		Ledger: store,
		Logger: logging.NewLogrusAdapterFromLogger(log),
	}, nil
}

// Close releases the ledger.
func (s *Setup) Close() {
	if s.Ledger != nil {
		if err := s.Ledger.Close(); err != nil {
			s.Logger.WithError(err).Warn("Failed to close ledger")
		}
	}
}

// RunVerification pushes raw OCR text through the pipeline, records the
// accepted payment, and prints the outcome. The returned error is non-nil
// only for infrastructure faults; ordinary rejections print a message and
// return nil.
func RunVerification(ctx context.Context, s *Setup, rawText, userID, username string) error {
	verifier := pipeline.New(s.Ledger, s.Policy, s.Logger)

	outcome, err := verifier.Verify(ctx, rawText)
	if err != nil {
		return fmt.Errorf("verification could not be completed: %w", err)
	}

	if !outcome.Accepted() {
		fmt.Println(rejectionMessage(outcome.Reason))
		return nil
	}

	receipt := outcome.Receipt
	entry := models.LedgerEntry{
		TransactionID: receipt.TransactionID,
		UserID:        userID,
		Username:      username,
		Amount:        receipt.DisplayAmount,
		Time:          receipt.Time,
		Notes:         receipt.Notes,
		AcceptedAt:    time.Now().UTC(),
	}
	if err := s.Ledger.Record(entry); err != nil {
		return err
	}
	if userID != "" {
		if err := s.Ledger.MarkPaid(userID, receipt.TransactionID); err != nil {
			return err
		}
	}

	fmt.Println("Payment verified.")
	fmt.Printf("  Transaction No: %s\n", receipt.TransactionID)
	fmt.Printf("  Amount:         %s\n", receipt.DisplayAmount)
	fmt.Printf("  Time:           %s\n", receipt.Time)
	fmt.Printf("  Transfer To:    %s (%s)\n", receipt.Counterparty.Name, receipt.Counterparty.AccountTail)
	if receipt.Notes != "" {
		fmt.Printf("  Notes:          %s\n", receipt.Notes)
	}
	return nil
}

// rejectionMessage maps each rejection reason to a distinct user-facing
// message.
func rejectionMessage(reason models.RejectionReason) string {
	switch reason {
	case models.RejectedIncomplete:
		return "Rejected: couldn't extract valid payment details. Make sure the screenshot shows the full transaction and is not blurry."
	case models.RejectedIdentityMismatch:
		return "Rejected: the payment was not made to the registered recipient account."
	case models.RejectedUnparseableAmount:
		return "Rejected: the payment amount could not be interpreted."
	case models.RejectedAmountTooLow:
		return "Rejected: the payment amount does not exceed the required minimum."
	case models.RejectedDuplicate:
		return "Rejected: this transaction has already been used."
	default:
		return fmt.Sprintf("Rejected: %s", reason)
	}
}
