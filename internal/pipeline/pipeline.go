// Package pipeline wires field extraction, validation, and the duplicate
// guard into a single verification decision. The flow is a strict
// left-to-right reduction with early exit on the first failure; no stage
// calls back into an earlier one, and the only side effect of the whole
// run is the final admission write.
package pipeline

import (
	"context"

	"merxylab/kpay-verify/internal/extractor"
	"merxylab/kpay-verify/internal/logging"
	"merxylab/kpay-verify/internal/models"
	"merxylab/kpay-verify/internal/validator"
)

// DuplicateStore is the only interface the core requires from persistence.
// Admit durably reserves a transaction id: it returns true exactly once
// per id across all concurrent callers. A store fault comes back as an
// error, which the pipeline propagates untouched.
type DuplicateStore interface {
	Admit(txID string) (bool, error)
}

// Verifier runs the verification pipeline for one policy.
type Verifier struct {
	extractor *extractor.Extractor
	validator *validator.Validator
	store     DuplicateStore
	policy    models.Policy
	logger    logging.Logger
}

// New creates a Verifier. The duplicate store is injected so the pipeline
// can be tested without live infrastructure.
func New(store DuplicateStore, policy models.Policy, logger logging.Logger) *Verifier {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Verifier{
		extractor: extractor.New(logger),
		validator: validator.New(logger),
		store:     store,
		policy:    policy,
		logger:    logger,
	}
}

// Verify decides whether the raw OCR text represents a genuine, unclaimed
// payment. The returned error is non-nil only for infrastructure faults
// (the duplicate store being unreachable); every ordinary rejection is an
// Outcome, not an error. The pipeline never converts a store fault into a
// rejection: during an outage admission cannot be determined, and the
// caller must not accept the receipt.
func (v *Verifier) Verify(ctx context.Context, rawText string) (models.Outcome, error) {
	candidate := v.extractor.Extract(rawText)

	receipt, reason := v.validator.Validate(candidate, v.policy)
	if reason != "" {
		v.logger.WithFields(
			logging.Field{Key: logging.FieldStage, Value: "validate"},
			logging.Field{Key: logging.FieldReason, Value: string(reason)},
		).Info("Receipt rejected")
		return models.Reject(reason), nil
	}

	if err := ctx.Err(); err != nil {
		return models.Outcome{}, err
	}

	admitted, err := v.store.Admit(receipt.TransactionID)
	if err != nil {
		v.logger.WithError(err).WithField(logging.FieldTransactionID, receipt.TransactionID).
			Error("Duplicate guard unavailable")
		return models.Outcome{}, err
	}
	if !admitted {
		v.logger.WithFields(
			logging.Field{Key: logging.FieldStage, Value: "admit"},
			logging.Field{Key: logging.FieldTransactionID, Value: receipt.TransactionID},
		).Info("Transaction id already consumed")
		return models.Reject(models.RejectedDuplicate), nil
	}

	v.logger.WithFields(
		logging.Field{Key: logging.FieldTransactionID, Value: receipt.TransactionID},
		logging.Field{Key: logging.FieldAmount, Value: receipt.Amount.String()},
	).Info("Payment verified")

	return models.Accept(receipt), nil
}
