package resolution

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/latent-size/internal/apperrors"
)

const (
	selectorSeparator   = " "
	dimensionSeparator  = "x"
	ratioSeparator      = ":"
	labelOpen           = "("
	labelClose          = ")"
	selectorFormat      = "%dx%d (%s)"
	errorFormatSelector = "%w: %q, expected 'WIDTHxHEIGHT (RATIO)'"
	errorFormatLabel    = "%w: %q has no 'A:B' ratio label"
)

// Size is a resolved width and height in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Descriptor is one entry of a model's resolution table.
type Descriptor struct {
	Width      int
	Height     int
	RatioLabel string
}

// String renders the descriptor in selector form, e.g. "1024x1024 (1:1 Square)".
func (descriptor Descriptor) String() string {
	return fmt.Sprintf(selectorFormat, descriptor.Width, descriptor.Height, descriptor.RatioLabel)
}

// Ratio returns the canonical ratio token of the label, e.g. "9:16".
func (descriptor Descriptor) Ratio() string {
	return firstField(descriptor.RatioLabel)
}

// Size returns the descriptor's dimensions.
func (descriptor Descriptor) Size() Size {
	return Size{Width: descriptor.Width, Height: descriptor.Height}
}

// IsPortrait reports whether the descriptor is taller than it is wide.
func (descriptor Descriptor) IsPortrait() bool {
	return descriptor.Height > descriptor.Width
}

// IsLandscape reports whether the descriptor is wider than it is tall.
func (descriptor Descriptor) IsLandscape() bool {
	return descriptor.Width > descriptor.Height
}

// ParseSelector extracts width and height from a selector of the form "WIDTHxHEIGHT (RATIO)".
// Only the text before the first space is considered and both sides must be positive integers.
func ParseSelector(selector string) (int, int, error) {
	dimensions, _, _ := strings.Cut(selector, selectorSeparator)
	parts := strings.Split(dimensions, dimensionSeparator)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf(errorFormatSelector, apperrors.ErrInvalidResolutionFormat, selector)
	}
	width, widthError := strconv.Atoi(parts[0])
	height, heightError := strconv.Atoi(parts[1])
	if widthError != nil || heightError != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf(errorFormatSelector, apperrors.ErrInvalidResolutionFormat, selector)
	}
	return width, height, nil
}

// ParseDescriptor builds a descriptor from its selector form.
func ParseDescriptor(selector string) (Descriptor, error) {
	width, height, parseError := ParseSelector(selector)
	if parseError != nil {
		return Descriptor{}, parseError
	}
	label := labelContents(selector)
	if !isCanonicalRatio(firstField(label)) {
		return Descriptor{}, fmt.Errorf(errorFormatLabel, apperrors.ErrInvalidResolutionFormat, selector)
	}
	return Descriptor{Width: width, Height: height, RatioLabel: label}, nil
}

// ExtractRatio returns the ratio token of a selector's parenthesised label,
// or an empty string when the selector has no label.
func ExtractRatio(selector string) string {
	return firstField(labelContents(selector))
}

// TargetRatio returns the ratio token of an aspect-ratio preset such as "9:16 (Portrait)".
func TargetRatio(aspectRatioLabel string) string {
	return firstField(aspectRatioLabel)
}

// isPortraitRatio reports whether an "A:B" token describes a taller-than-wide shape.
// Tokens that do not parse are treated as landscape.
func isPortraitRatio(ratio string) bool {
	if !strings.Contains(ratio, ratioSeparator) {
		return false
	}
	parts := strings.Split(ratio, ratioSeparator)
	numerator, numeratorError := strconv.Atoi(parts[0])
	denominator, denominatorError := strconv.Atoi(parts[1])
	if numeratorError != nil || denominatorError != nil {
		return false
	}
	return numerator < denominator
}

func isCanonicalRatio(ratio string) bool {
	numeratorText, denominatorText, found := strings.Cut(ratio, ratioSeparator)
	if !found {
		return false
	}
	numerator, numeratorError := strconv.Atoi(numeratorText)
	denominator, denominatorError := strconv.Atoi(denominatorText)
	return numeratorError == nil && denominatorError == nil && numerator > 0 && denominator > 0
}

func labelContents(selector string) string {
	_, afterOpen, found := strings.Cut(selector, labelOpen)
	if !found {
		return ""
	}
	contents, _, _ := strings.Cut(afterOpen, labelClose)
	return strings.TrimSpace(contents)
}

func firstField(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
