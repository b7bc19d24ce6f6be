package constants

const (
	// EmptyString is the zero value for string configuration.
	EmptyString = ""

	// LogFieldError identifies the structured log field name for an error.
	LogFieldError = "error"

	// LogFieldLatencyMilliseconds identifies the structured log field name for latency in milliseconds.
	LogFieldLatencyMilliseconds = "latency_ms"

	// LogFieldModel identifies the model name in structured log entries.
	LogFieldModel = "model"

	// LogFieldWidth identifies the resolved width.
	LogFieldWidth = "width"

	// LogFieldHeight identifies the resolved height.
	LogFieldHeight = "height"

	// LogFieldBatchSize identifies the normalized batch size.
	LogFieldBatchSize = "batch_size"

	// LogEventReadResponseBodyFailed identifies failures while reading an HTTP response body.
	LogEventReadResponseBodyFailed = "read response body failed"
)
