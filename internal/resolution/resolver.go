package resolution

import (
	"fmt"

	"github.com/temirov/latent-size/internal/apperrors"
)

const (
	// AlignmentMultiple is the step sizes are floored to for models without arbitrary-size support.
	AlignmentMultiple = 64
	// MinimumBatchSize is the smallest batch a request can produce.
	MinimumBatchSize = 1

	errorFormatUnknownModel = "%w: %s"
)

// Resolver maps a model and a resolution or aspect-ratio choice to a concrete size.
// It holds no mutable state and may be shared between goroutines.
type Resolver struct {
	table *Table
}

// NewResolver creates a resolver over the supplied table, falling back to the built-in table when nil.
func NewResolver(table *Table) *Resolver {
	if table == nil {
		table = DefaultTable()
	}
	return &Resolver{table: table}
}

// Table returns the table the resolver reads from.
func (resolver *Resolver) Table() *Table {
	return resolver.table
}

// ResolveExplicit parses a "WIDTHxHEIGHT (RATIO)" selector for the model and applies overrides and alignment.
// An empty selector picks the model's first resolution.
func (resolver *Resolver) ResolveExplicit(modelName string, selector string, widthOverride int, heightOverride int) (Size, error) {
	descriptors, known := resolver.table.descriptors(modelName)
	if !known {
		return Size{}, fmt.Errorf(errorFormatUnknownModel, apperrors.ErrUnknownModel, modelName)
	}
	if selector == "" {
		selector = descriptors[0].String()
	}
	width, height, parseError := ParseSelector(selector)
	if parseError != nil {
		return Size{}, parseError
	}
	return resolver.finalize(modelName, width, height, widthOverride, heightOverride), nil
}

// ResolveByAspectRatio picks the model's resolution for an aspect-ratio preset and applies overrides and alignment.
func (resolver *Resolver) ResolveByAspectRatio(modelName string, aspectRatioLabel string, widthOverride int, heightOverride int) (Size, error) {
	descriptor, findError := resolver.FindByAspectRatio(modelName, aspectRatioLabel)
	if findError != nil {
		return Size{}, findError
	}
	return resolver.finalize(modelName, descriptor.Width, descriptor.Height, widthOverride, heightOverride), nil
}

// FindByAspectRatio selects a descriptor for the preset by scanning the model's table in order:
// the first exact ratio match, else the first descriptor with the same orientation,
// else the first descriptor. An empty label selects the first preset.
func (resolver *Resolver) FindByAspectRatio(modelName string, aspectRatioLabel string) (Descriptor, error) {
	descriptors, known := resolver.table.descriptors(modelName)
	if !known {
		return Descriptor{}, fmt.Errorf(errorFormatUnknownModel, apperrors.ErrUnknownModel, modelName)
	}
	if aspectRatioLabel == "" {
		aspectRatioLabel = AspectRatioPresets[0]
	}
	targetRatio := TargetRatio(aspectRatioLabel)

	for _, descriptor := range descriptors {
		if descriptor.Ratio() == targetRatio {
			return descriptor, nil
		}
	}

	wantPortrait := isPortraitRatio(targetRatio)
	for _, descriptor := range descriptors {
		if wantPortrait && descriptor.IsPortrait() {
			return descriptor, nil
		}
		if !wantPortrait && descriptor.IsLandscape() {
			return descriptor, nil
		}
	}

	return descriptors[0], nil
}

// finalize applies overrides, then aligns both sides when no override was given and the model requires it.
func (resolver *Resolver) finalize(modelName string, width int, height int, widthOverride int, heightOverride int) Size {
	if widthOverride > 0 {
		width = widthOverride
	}
	if heightOverride > 0 {
		height = heightOverride
	}
	overridden := widthOverride > 0 || heightOverride > 0
	if !overridden && !resolver.table.AcceptsArbitraryDimensions(modelName) {
		width = alignDown(width)
		height = alignDown(height)
	}
	return Size{Width: width, Height: height}
}

// NormalizeBatchSize clamps a batch size to at least one.
func NormalizeBatchSize(batchSize int) int {
	return max(MinimumBatchSize, batchSize)
}

func alignDown(dimension int) int {
	return (dimension / AlignmentMultiple) * AlignmentMultiple
}
