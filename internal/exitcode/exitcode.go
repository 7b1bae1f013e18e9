package exitcode

const (
	Success          = 0
	UsageError       = 1
	FetchError       = 2
	LoadError        = 3
	SchemaError      = 4
	ComputationError = 5
	RenderError      = 6
	ExportError      = 7
	PublishError     = 8
)
