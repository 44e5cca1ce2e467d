package logging

// Standardized field names for structured logging.
const (
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldRulesFile  = "rules_file"
	FieldLine       = "line"
	FieldDate       = "date"
	FieldPayee      = "payee"
	FieldCategory   = "category"
	FieldAccount    = "account"
	FieldCurrency   = "currency"
	FieldEncoding   = "encoding"
	FieldCount      = "count"
	FieldSkipped    = "skipped"
	FieldReason     = "reason"
)
