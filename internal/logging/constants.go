package logging

// Standardized field names for structured logging.
const (
	FieldRule       = "rule"
	FieldFragment   = "fragment"
	FieldCategory   = "category"
	FieldStrategy   = "strategy"
	FieldStrategies = "strategies"
	FieldKeyword    = "keyword"
	FieldAmount     = "amount"
	FieldCount      = "count"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldAttempt    = "attempt"
	FieldModel      = "model"
	FieldProvider   = "provider"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
