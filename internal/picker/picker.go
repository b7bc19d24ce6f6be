// Package picker exposes the explicit-resolution and aspect-ratio size pickers over one shared resolver.
package picker

import (
	"fmt"

	"github.com/temirov/latent-size/internal/apperrors"
	"github.com/temirov/latent-size/internal/constants"
	"github.com/temirov/latent-size/internal/latent"
	"github.com/temirov/latent-size/internal/resolution"
	"go.uber.org/zap"
)

const (
	// MaxBatchSize is the largest batch a request may ask for.
	MaxBatchSize = 64
	// MaxResolution is the largest override accepted for either side.
	MaxResolution = 16384
	// OverrideStep is the granularity of width and height overrides; it matches the latent cell.
	OverrideStep = latent.DownscaleFactor

	logEventExplicitResolved = "explicit size resolved"
	logEventAspectResolved   = "aspect ratio size resolved"
	logFieldResolution       = "resolution"
	logFieldAspectRatio      = "aspect_ratio"

	errorFormatBatchSize = "%w: batch_size %d exceeds %d"
	errorFormatOverride  = "%w: %s %d outside [0, %d]"
	errorFormatStep      = "%w: %s %d is not a multiple of %d"

	parameterWidthOverride  = "width_override"
	parameterHeightOverride = "height_override"
)

// Overrides replace the resolved width or height when positive.
type Overrides struct {
	Width  int
	Height int
}

// ExplicitRequest asks for a size from a "WIDTHxHEIGHT (RATIO)" selector.
type ExplicitRequest struct {
	Model      string
	Resolution string
	BatchSize  int
	Overrides  Overrides
}

// AspectRatioRequest asks for a size from an aspect-ratio preset such as "9:16 (Portrait)".
type AspectRatioRequest struct {
	Model       string
	AspectRatio string
	BatchSize   int
	Overrides   Overrides
}

// Result is the resolved size together with its empty latent. The latent carries no samples when the
// service was obtained from ShapeOnly.
type Result struct {
	Width     int
	Height    int
	BatchSize int
	Latent    latent.Latent
}

// Service resolves sizes and allocates latents for both picker variants.
type Service struct {
	resolver         *resolution.Resolver
	structuredLogger *zap.SugaredLogger
	allocateSamples  bool
}

// NewService creates a Service. A nil logger disables logging.
func NewService(resolver *resolution.Resolver, structuredLogger *zap.SugaredLogger) *Service {
	if structuredLogger == nil {
		structuredLogger = zap.NewNop().Sugar()
	}
	return &Service{resolver: resolver, structuredLogger: structuredLogger, allocateSamples: true}
}

// ShapeOnly returns a Service sharing the resolver and logger whose results describe the latent
// without allocating its samples.
func (service *Service) ShapeOnly() *Service {
	shapeOnly := *service
	shapeOnly.allocateSamples = false
	return &shapeOnly
}

// Resolver returns the resolver shared by both pickers.
func (service *Service) Resolver() *resolution.Resolver {
	return service.resolver
}

// Explicit resolves an explicit resolution selector.
func (service *Service) Explicit(request ExplicitRequest) (Result, error) {
	if err := validateParameters(request.BatchSize, request.Overrides); err != nil {
		return Result{}, err
	}
	size, resolveError := service.resolver.ResolveExplicit(request.Model, request.Resolution, request.Overrides.Width, request.Overrides.Height)
	if resolveError != nil {
		return Result{}, resolveError
	}
	result, allocateError := service.newResult(size, request.BatchSize)
	if allocateError != nil {
		return Result{}, allocateError
	}
	service.structuredLogger.Debugw(
		logEventExplicitResolved,
		constants.LogFieldModel, request.Model,
		logFieldResolution, request.Resolution,
		constants.LogFieldWidth, result.Width,
		constants.LogFieldHeight, result.Height,
		constants.LogFieldBatchSize, result.BatchSize,
	)
	return result, nil
}

// Simple resolves an aspect-ratio preset.
func (service *Service) Simple(request AspectRatioRequest) (Result, error) {
	if err := validateParameters(request.BatchSize, request.Overrides); err != nil {
		return Result{}, err
	}
	size, resolveError := service.resolver.ResolveByAspectRatio(request.Model, request.AspectRatio, request.Overrides.Width, request.Overrides.Height)
	if resolveError != nil {
		return Result{}, resolveError
	}
	result, allocateError := service.newResult(size, request.BatchSize)
	if allocateError != nil {
		return Result{}, allocateError
	}
	service.structuredLogger.Debugw(
		logEventAspectResolved,
		constants.LogFieldModel, request.Model,
		logFieldAspectRatio, request.AspectRatio,
		constants.LogFieldWidth, result.Width,
		constants.LogFieldHeight, result.Height,
		constants.LogFieldBatchSize, result.BatchSize,
	)
	return result, nil
}

func (service *Service) newResult(size resolution.Size, batchSize int) (Result, error) {
	build := latent.Describe
	if service.allocateSamples {
		build = latent.NewEmpty
	}
	buffer, allocateError := build(size, batchSize)
	if allocateError != nil {
		return Result{}, allocateError
	}
	return Result{Width: size.Width, Height: size.Height, BatchSize: buffer.BatchSize, Latent: buffer}, nil
}

// validateParameters enforces the parameter schema; batch sizes below one are normalized later, not rejected.
func validateParameters(batchSize int, overrides Overrides) error {
	if batchSize > MaxBatchSize {
		return fmt.Errorf(errorFormatBatchSize, apperrors.ErrInvalidParameter, batchSize, MaxBatchSize)
	}
	if err := validateOverride(parameterWidthOverride, overrides.Width); err != nil {
		return err
	}
	return validateOverride(parameterHeightOverride, overrides.Height)
}

func validateOverride(parameterName string, value int) error {
	if value < 0 || value > MaxResolution {
		return fmt.Errorf(errorFormatOverride, apperrors.ErrInvalidParameter, parameterName, value, MaxResolution)
	}
	if value%OverrideStep != 0 {
		return fmt.Errorf(errorFormatStep, apperrors.ErrInvalidParameter, parameterName, value, OverrideStep)
	}
	return nil
}
