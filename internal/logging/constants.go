package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across packages so entries
// can be filtered by transaction id, user, or pipeline stage.
const (
	FieldTransactionID = "transaction_id"
	FieldUserID        = "user_id"
	FieldUsername      = "username"
	FieldAmount        = "amount"
	FieldReason        = "reason"
	FieldStage         = "stage"
	FieldStrategy      = "strategy"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldFile          = "file_path"
	FieldLanguage      = "language"
	FieldCount         = "count"
)
