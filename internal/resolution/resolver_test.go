package resolution_test

import (
	"errors"
	"testing"

	"github.com/temirov/latent-size/internal/apperrors"
	"github.com/temirov/latent-size/internal/resolution"
)

const (
	unknownModelName      = "NonexistentModel"
	squareOnlyModelName   = "Square-Only"
	twoShapeModelName     = "Two-Shape"
	presetSquare          = "1:1 (Square)"
	presetWide            = "16:9 (Landscape)"
	presetTall            = "9:16 (Portrait)"
	presetClassicWide     = "4:3 (Landscape)"
	presetClassicTall     = "3:4 (Portrait)"
	presetPhotoWide       = "3:2 (Landscape)"
	presetPhotoTall       = "2:3 (Portrait)"
	errorFormatSize       = "size=%+v expected=%+v"
	errorFormatUnexpected = "unexpected error: %v"
	errorFormatSentinel   = "error=%v expected %v"
)

type aspectRatioTestDefinition struct {
	testName       string
	modelName      string
	aspectRatio    string
	widthOverride  int
	heightOverride int
	expectedSize   resolution.Size
}

// TestResolveByAspectRatio_SelectsDescriptor verifies exact matches, orientation fallback and overrides.
func TestResolveByAspectRatio_SelectsDescriptor(testingInstance *testing.T) {
	resolver := resolution.NewResolver(nil)
	testCases := []aspectRatioTestDefinition{
		{testName: "sdxl square exact", modelName: resolution.ModelSDXL, aspectRatio: presetSquare, expectedSize: resolution.Size{Width: 1024, Height: 1024}},
		{testName: "flux portrait fallback", modelName: resolution.ModelFlux, aspectRatio: presetTall, expectedSize: resolution.Size{Width: 768, Height: 1024}},
		{testName: "flux landscape fallback", modelName: resolution.ModelFlux, aspectRatio: presetWide, expectedSize: resolution.Size{Width: 1024, Height: 768}},
		{testName: "flux first exact match aligned", modelName: resolution.ModelFlux, aspectRatio: presetPhotoWide, expectedSize: resolution.Size{Width: 1408, Height: 960}},
		{testName: "qwen exact without alignment", modelName: resolution.ModelQwenImage, aspectRatio: presetClassicTall, expectedSize: resolution.Size{Width: 1140, Height: 1472}},
		{testName: "qwen landscape exact", modelName: resolution.ModelQwenImage, aspectRatio: presetClassicWide, expectedSize: resolution.Size{Width: 1472, Height: 1140}},
		{testName: "zimage first of duplicates", modelName: resolution.ModelZImage, aspectRatio: presetTall, expectedSize: resolution.Size{Width: 720, Height: 1280}},
		{testName: "sdxl landscape fallback", modelName: resolution.ModelSDXL, aspectRatio: presetWide, expectedSize: resolution.Size{Width: 1024, Height: 960}},
		{testName: "sdxl portrait fallback", modelName: resolution.ModelSDXL, aspectRatio: presetPhotoTall, expectedSize: resolution.Size{Width: 704, Height: 1408}},
		{testName: "flux2 landscape fallback", modelName: resolution.ModelFlux2, aspectRatio: presetClassicWide, expectedSize: resolution.Size{Width: 2048, Height: 1920}},
		{testName: "non numeric ratio treated as landscape", modelName: resolution.ModelFlux, aspectRatio: "a:b (Custom)", expectedSize: resolution.Size{Width: 1024, Height: 768}},
		{testName: "ratio without separator treated as landscape", modelName: resolution.ModelFlux, aspectRatio: "wide", expectedSize: resolution.Size{Width: 1024, Height: 768}},
		{testName: "empty label uses first preset", modelName: resolution.ModelFlux, aspectRatio: "", expectedSize: resolution.Size{Width: 512, Height: 512}},
		{testName: "width override only", modelName: resolution.ModelSDXL, aspectRatio: presetSquare, widthOverride: 1000, expectedSize: resolution.Size{Width: 1000, Height: 1024}},
		{testName: "height override only", modelName: resolution.ModelFlux, aspectRatio: presetTall, heightOverride: 1200, expectedSize: resolution.Size{Width: 768, Height: 1200}},
		{testName: "both overrides", modelName: resolution.ModelZImage, aspectRatio: presetSquare, widthOverride: 808, heightOverride: 616, expectedSize: resolution.Size{Width: 808, Height: 616}},
		{testName: "negative overrides ignored", modelName: resolution.ModelSDXL, aspectRatio: presetSquare, widthOverride: -8, heightOverride: -8, expectedSize: resolution.Size{Width: 1024, Height: 1024}},
	}
	for _, currentTestCase := range testCases {
		testingInstance.Run(currentTestCase.testName, func(nestedTestingInstance *testing.T) {
			actualSize, resolveError := resolver.ResolveByAspectRatio(currentTestCase.modelName, currentTestCase.aspectRatio, currentTestCase.widthOverride, currentTestCase.heightOverride)
			if resolveError != nil {
				nestedTestingInstance.Fatalf(errorFormatUnexpected, resolveError)
			}
			if actualSize != currentTestCase.expectedSize {
				nestedTestingInstance.Fatalf(errorFormatSize, actualSize, currentTestCase.expectedSize)
			}
		})
	}
}

// TestFindByAspectRatio_FallsBackToFirstEntry verifies the index-zero default and the treatment of square targets.
func TestFindByAspectRatio_FallsBackToFirstEntry(testingInstance *testing.T) {
	table, tableError := resolution.NewTable(
		resolution.ModelEntry{Name: squareOnlyModelName, Resolutions: []string{"512x512 (1:1 Square)", "768x768 (1:1 Square)"}},
		resolution.ModelEntry{Name: twoShapeModelName, Resolutions: []string{"640x960 (2:3 Tall)", "960x640 (3:2 Wide)"}},
	)
	if tableError != nil {
		testingInstance.Fatalf(errorFormatUnexpected, tableError)
	}
	resolver := resolution.NewResolver(table)

	testCases := []aspectRatioTestDefinition{
		{testName: "no landscape entry", modelName: squareOnlyModelName, aspectRatio: presetWide, expectedSize: resolution.Size{Width: 512, Height: 512}},
		{testName: "no portrait entry", modelName: squareOnlyModelName, aspectRatio: presetTall, expectedSize: resolution.Size{Width: 512, Height: 512}},
		{testName: "square target without square entry", modelName: twoShapeModelName, aspectRatio: presetSquare, expectedSize: resolution.Size{Width: 960, Height: 640}},
		{testName: "unparsable target treated as landscape", modelName: twoShapeModelName, aspectRatio: "wide", expectedSize: resolution.Size{Width: 960, Height: 640}},
		{testName: "portrait target", modelName: twoShapeModelName, aspectRatio: presetClassicTall, expectedSize: resolution.Size{Width: 640, Height: 960}},
	}
	for _, currentTestCase := range testCases {
		testingInstance.Run(currentTestCase.testName, func(nestedTestingInstance *testing.T) {
			descriptor, findError := resolver.FindByAspectRatio(currentTestCase.modelName, currentTestCase.aspectRatio)
			if findError != nil {
				nestedTestingInstance.Fatalf(errorFormatUnexpected, findError)
			}
			if descriptor.Size() != currentTestCase.expectedSize {
				nestedTestingInstance.Fatalf(errorFormatSize, descriptor.Size(), currentTestCase.expectedSize)
			}
		})
	}
}

// TestResolveExplicit_EveryDescriptor verifies that each table selector resolves to its own size,
// floored to 64 for models that need alignment.
func TestResolveExplicit_EveryDescriptor(testingInstance *testing.T) {
	resolver := resolution.NewResolver(nil)
	table := resolver.Table()
	for _, modelName := range table.Models() {
		descriptors, _ := table.Descriptors(modelName)
		exempt := table.AcceptsArbitraryDimensions(modelName)
		for _, descriptor := range descriptors {
			expectedSize := descriptor.Size()
			if !exempt {
				expectedSize = resolution.Size{
					Width:  descriptor.Width / resolution.AlignmentMultiple * resolution.AlignmentMultiple,
					Height: descriptor.Height / resolution.AlignmentMultiple * resolution.AlignmentMultiple,
				}
			}
			actualSize, resolveError := resolver.ResolveExplicit(modelName, descriptor.String(), 0, 0)
			if resolveError != nil {
				testingInstance.Fatalf("model=%s selector=%s: %v", modelName, descriptor, resolveError)
			}
			if actualSize != expectedSize {
				testingInstance.Fatalf("model=%s selector=%s "+errorFormatSize, modelName, descriptor, actualSize, expectedSize)
			}
		}
	}
}

type explicitTestDefinition struct {
	testName       string
	modelName      string
	selector       string
	widthOverride  int
	heightOverride int
	expectedSize   resolution.Size
}

// TestResolveExplicit_AppliesOverridesAndAlignment verifies override precedence and the alignment exemption.
func TestResolveExplicit_AppliesOverridesAndAlignment(testingInstance *testing.T) {
	resolver := resolution.NewResolver(nil)
	testCases := []explicitTestDefinition{
		{testName: "sdxl off-grid selector aligned", modelName: resolution.ModelSDXL, selector: "1000x1000 (1:1 Square)", expectedSize: resolution.Size{Width: 960, Height: 960}},
		{testName: "qwen off-grid selector kept", modelName: resolution.ModelQwenImage, selector: "1000x1000 (1:1 Square)", expectedSize: resolution.Size{Width: 1000, Height: 1000}},
		{testName: "override disables alignment", modelName: resolution.ModelSDXL, selector: "1000x1000 (1:1 Square)", widthOverride: 1016, expectedSize: resolution.Size{Width: 1016, Height: 1000}},
		{testName: "height override only", modelName: resolution.ModelFlux2, selector: "2048x2048 (1:1 Square)", heightOverride: 1544, expectedSize: resolution.Size{Width: 2048, Height: 1544}},
		{testName: "selector without label", modelName: resolution.ModelFlux, selector: "832x1216", expectedSize: resolution.Size{Width: 832, Height: 1216}},
		{testName: "empty selector uses first entry", modelName: resolution.ModelQwenImage, selector: "", expectedSize: resolution.Size{Width: 928, Height: 1664}},
	}
	for _, currentTestCase := range testCases {
		testingInstance.Run(currentTestCase.testName, func(nestedTestingInstance *testing.T) {
			actualSize, resolveError := resolver.ResolveExplicit(currentTestCase.modelName, currentTestCase.selector, currentTestCase.widthOverride, currentTestCase.heightOverride)
			if resolveError != nil {
				nestedTestingInstance.Fatalf(errorFormatUnexpected, resolveError)
			}
			if actualSize != currentTestCase.expectedSize {
				nestedTestingInstance.Fatalf(errorFormatSize, actualSize, currentTestCase.expectedSize)
			}
			repeatedSize, _ := resolver.ResolveExplicit(currentTestCase.modelName, currentTestCase.selector, currentTestCase.widthOverride, currentTestCase.heightOverride)
			if repeatedSize != actualSize {
				nestedTestingInstance.Fatalf("repeated call size=%+v first=%+v", repeatedSize, actualSize)
			}
		})
	}
}

type resolveErrorTestDefinition struct {
	testName      string
	resolve       func(*resolution.Resolver) error
	expectedError error
}

// TestResolve_ReportsErrors verifies the sentinel errors for bad selectors and unknown models.
func TestResolve_ReportsErrors(testingInstance *testing.T) {
	testCases := []resolveErrorTestDefinition{
		{
			testName: "garbage selector",
			resolve: func(resolver *resolution.Resolver) error {
				_, err := resolver.ResolveExplicit(resolution.ModelSDXL, "<garbage>", 0, 0)
				return err
			},
			expectedError: apperrors.ErrInvalidResolutionFormat,
		},
		{
			testName: "non numeric side",
			resolve: func(resolver *resolution.Resolver) error {
				_, err := resolver.ResolveExplicit(resolution.ModelSDXL, "axb (1:1 Square)", 0, 0)
				return err
			},
			expectedError: apperrors.ErrInvalidResolutionFormat,
		},
		{
			testName: "missing height",
			resolve: func(resolver *resolution.Resolver) error {
				_, err := resolver.ResolveExplicit(resolution.ModelSDXL, "1024x (1:1 Square)", 0, 0)
				return err
			},
			expectedError: apperrors.ErrInvalidResolutionFormat,
		},
		{
			testName: "zero width",
			resolve: func(resolver *resolution.Resolver) error {
				_, err := resolver.ResolveExplicit(resolution.ModelSDXL, "0x1024 (1:1 Square)", 0, 0)
				return err
			},
			expectedError: apperrors.ErrInvalidResolutionFormat,
		},
		{
			testName: "unknown model by aspect ratio",
			resolve: func(resolver *resolution.Resolver) error {
				_, err := resolver.ResolveByAspectRatio(unknownModelName, presetSquare, 0, 0)
				return err
			},
			expectedError: apperrors.ErrUnknownModel,
		},
		{
			testName: "unknown model explicit",
			resolve: func(resolver *resolution.Resolver) error {
				_, err := resolver.ResolveExplicit(unknownModelName, "1024x1024 (1:1 Square)", 0, 0)
				return err
			},
			expectedError: apperrors.ErrUnknownModel,
		},
		{
			testName: "empty model",
			resolve: func(resolver *resolution.Resolver) error {
				_, err := resolver.ResolveByAspectRatio("", presetSquare, 0, 0)
				return err
			},
			expectedError: apperrors.ErrUnknownModel,
		},
	}
	resolver := resolution.NewResolver(nil)
	for _, currentTestCase := range testCases {
		testingInstance.Run(currentTestCase.testName, func(nestedTestingInstance *testing.T) {
			actualError := currentTestCase.resolve(resolver)
			if !errors.Is(actualError, currentTestCase.expectedError) {
				nestedTestingInstance.Fatalf(errorFormatSentinel, actualError, currentTestCase.expectedError)
			}
		})
	}
}

// TestNormalizeBatchSize_ClampsToOne verifies that non-positive batch sizes become one.
func TestNormalizeBatchSize_ClampsToOne(testingInstance *testing.T) {
	testCases := map[int]int{-3: 1, 0: 1, 1: 1, 7: 7, 64: 64}
	for requested, expected := range testCases {
		if actual := resolution.NormalizeBatchSize(requested); actual != expected {
			testingInstance.Fatalf("batch=%d normalized=%d expected=%d", requested, actual, expected)
		}
	}
}
