package apperrors

import "errors"

var (
	// ErrUnknownModel is returned when a model name has no resolution table entry.
	ErrUnknownModel = errors.New("unknown model")
	// ErrInvalidResolutionFormat is returned when a selector is not "WIDTHxHEIGHT (RATIO)".
	ErrInvalidResolutionFormat = errors.New("invalid resolution format")
	// ErrInvalidDimensions is returned when a size cannot back a latent buffer.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidTable is returned when a resolution table fails validation.
	ErrInvalidTable = errors.New("invalid resolution table")
	// ErrInvalidParameter is returned when a request parameter is out of range or malformed.
	ErrInvalidParameter = errors.New("invalid parameter")
)
