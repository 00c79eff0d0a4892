package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldPartitionId = "partition_id"
)

const (
	FieldCollection = "collection"
	FieldBatchID    = "batch_id"
	FieldDay        = "day"
	FieldPid        = "pid"
	FieldIssn       = "issn"
	FieldSessionID  = "session_id"
	FieldDropReason = "drop_reason"
)
