package logging

// Field names shared by every component so log lines of one reconciliation
// run can be filtered and joined.
const (
	FieldRunID        = "run_id"
	FieldComponent    = "component"
	FieldFile         = "file_path"
	FieldCount        = "count"
	FieldEntries      = "entries"
	FieldRows         = "rows"
	FieldRowIndex     = "row_index"
	FieldEntryIndex   = "entry_index"
	FieldRule         = "rule"
	FieldMatched      = "matched"
	FieldBankOnly     = "bank_only"
	FieldInternalOnly = "internal_only"
	FieldBalance      = "balance_status"
	FieldTolerance    = "tolerance"
	FieldFormat       = "format"
	FieldEncoding     = "encoding"
	FieldDuration     = "duration_ms"
	FieldAddr         = "addr"
	FieldError        = "error"
)
