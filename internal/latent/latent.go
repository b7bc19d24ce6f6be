// Package latent allocates the zero-filled latent buffers that back an empty image.
package latent

import (
	"fmt"

	"github.com/temirov/latent-size/internal/apperrors"
	"github.com/temirov/latent-size/internal/resolution"
)

const (
	// Channels is the number of latent channels per sample.
	Channels = 4
	// DownscaleFactor is the ratio between pixel and latent dimensions.
	DownscaleFactor = 8

	errorFormatDimensions = "%w: %dx%d is smaller than the %d pixel latent cell"
)

// Latent is a zero-initialized buffer of shape [batch, channels, height/8, width/8] stored row-major.
type Latent struct {
	BatchSize int
	Channels  int
	Height    int
	Width     int
	Samples   []float32
}

// Describe computes the latent dimensions for the pixel size without allocating samples. The batch
// size is clamped to at least one and spatial sides are floored by the downscale factor.
func Describe(size resolution.Size, batchSize int) (Latent, error) {
	latentHeight := size.Height / DownscaleFactor
	latentWidth := size.Width / DownscaleFactor
	if latentHeight <= 0 || latentWidth <= 0 {
		return Latent{}, fmt.Errorf(errorFormatDimensions, apperrors.ErrInvalidDimensions, size.Width, size.Height, DownscaleFactor)
	}
	return Latent{
		BatchSize: resolution.NormalizeBatchSize(batchSize),
		Channels:  Channels,
		Height:    latentHeight,
		Width:     latentWidth,
	}, nil
}

// NewEmpty allocates a zeroed latent with the dimensions reported by Describe.
func NewEmpty(size resolution.Size, batchSize int) (Latent, error) {
	buffer, describeError := Describe(size, batchSize)
	if describeError != nil {
		return Latent{}, describeError
	}
	buffer.Samples = make([]float32, buffer.ElementCount())
	return buffer, nil
}

// IsAllocated reports whether the samples are present.
func (buffer Latent) IsAllocated() bool {
	return buffer.Samples != nil
}

// Shape returns the buffer dimensions in [batch, channels, height, width] order.
func (buffer Latent) Shape() []int {
	return []int{buffer.BatchSize, buffer.Channels, buffer.Height, buffer.Width}
}

// ElementCount returns the number of values in the buffer.
func (buffer Latent) ElementCount() int {
	return buffer.BatchSize * buffer.Channels * buffer.Height * buffer.Width
}
