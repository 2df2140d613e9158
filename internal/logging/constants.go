package logging

// Standardized field names for structured logging. Using the same keys
// everywhere keeps log output easy to filter.
const (
	FieldFile     = "file_path"
	FieldStrategy = "strategy"
	FieldMethod   = "method"
	FieldQuality  = "quality"
	FieldPage     = "page"
	FieldCount    = "count"
	FieldCategory = "category"
	FieldPattern  = "pattern"
	FieldReason   = "reason"
	FieldUserID   = "user_id"
	FieldRequest  = "request_id"
	FieldDuration = "duration"
)
