package server

const (
	// LogLevelDebug indicates that the application should log debug information.
	LogLevelDebug = "debug"

	// LogLevelInfo indicates that the application should log informational messages.
	LogLevelInfo = "info"

	// PathModels lists the resolution table.
	PathModels = "/models"
	// PathAspectRatios lists the aspect-ratio presets.
	PathAspectRatios = "/aspect-ratios"
	// PathResolve resolves an explicit resolution selector.
	PathResolve = "/resolve"
	// PathResolveAspect resolves an aspect-ratio preset.
	PathResolveAspect = "/resolve/aspect"

	headerAccept = "Accept"

	// QueryParameterModel names the model.
	QueryParameterModel = "model"
	// QueryParameterResolution carries the explicit "WIDTHxHEIGHT (RATIO)" selector.
	QueryParameterResolution = "resolution"
	// QueryParameterAspectRatio carries the aspect-ratio preset.
	QueryParameterAspectRatio = "aspect_ratio"
	// QueryParameterBatchSize carries the batch size.
	QueryParameterBatchSize = "batch_size"
	// QueryParameterWidthOverride carries the width override.
	QueryParameterWidthOverride = "width_override"
	// QueryParameterHeightOverride carries the height override.
	QueryParameterHeightOverride = "height_override"
	// QueryParameterFormat selects the response format.
	QueryParameterFormat = "format"
	// QueryParameterKey carries the shared secret.
	QueryParameterKey = "key"

	redactedPlaceholder = "***REDACTED***"

	mimeApplicationJSON = "application/json"
	mimeApplicationXML  = "application/xml"
	mimeTextXML         = "text/xml"
	mimeTextCSV         = "text/csv"
	mimeTextPlain       = "text/plain; charset=utf-8"

	errorMissingClientKey = "missing client key"
	errorInternal         = "internal error"
	errorResponseFormat   = "response formatting error"

	logFieldMethod              = "method"
	logFieldPath                = "path"
	logFieldClientIP            = "client_ip"
	logFieldStatus              = "status"
	logFieldExpectedFingerprint = "expected_fingerprint"
	logFieldLatentShape         = "latent_shape"

	logEventRequestReceived        = "request received"
	logEventResponseSent           = "response sent"
	logEventForbiddenRequest       = "forbidden request"
	logEventResolveFailed          = "resolve failed"
	logEventMarshalResponsePayload = "marshal response payload failed"
)
