package resolution

const (
	// ModelQwenImage identifies Qwen-Image.
	ModelQwenImage = "Qwen-Image"
	// ModelZImage identifies Z-Image.
	ModelZImage = "Z-Image"
	// ModelSDXL identifies Stable Diffusion XL.
	ModelSDXL = "SDXL"
	// ModelFlux identifies Flux.
	ModelFlux = "Flux"
	// ModelFlux2 identifies Flux 2.
	ModelFlux2 = "Flux2"

	// DefaultModel is the model selected when a request names none.
	DefaultModel = ModelQwenImage
)

// AspectRatioPresets are the aspect-ratio choices offered by the simple picker, in display order.
var AspectRatioPresets = []string{
	"1:1 (Square)",
	"16:9 (Landscape)",
	"9:16 (Portrait)",
	"4:3 (Landscape)",
	"3:4 (Portrait)",
	"3:2 (Landscape)",
	"2:3 (Portrait)",
}

// DefaultModelEntries returns the built-in resolution recommendations.
// Within each model the entries run portrait, square, landscape; that order decides fallbacks.
func DefaultModelEntries() []ModelEntry {
	return []ModelEntry{
		{
			Name:                ModelQwenImage,
			ArbitraryDimensions: true,
			Resolutions: []string{
				"928x1664 (9:16 Vertical)",
				"1056x1584 (2:3 Vertical)",
				"1140x1472 (3:4 Vertical)",
				"1328x1328 (1:1 Square)",
				"1664x928 (16:9 Wide)",
				"1584x1056 (3:2 Wide)",
				"1472x1140 (4:3 Wide)",
			},
		},
		{
			Name:                ModelZImage,
			ArbitraryDimensions: true,
			Resolutions: []string{
				"720x1280 (9:16 Portrait)",
				"900x1600 (9:16 Portrait)",
				"832x1248 (2:3 Portrait)",
				"1024x1536 (2:3 Portrait)",
				"864x1152 (3:4 Portrait)",
				"960x1280 (3:4 Portrait)",
				"1024x1024 (1:1 Square)",
				"1280x1280 (1:1 Square)",
				"1536x1536 (1:1 Square)",
				"1280x720 (16:9 Landscape)",
				"1600x900 (16:9 Landscape)",
				"1248x832 (3:2 Landscape)",
				"1536x1024 (3:2 Landscape)",
				"1152x864 (4:3 Landscape)",
				"1280x960 (4:3 Landscape)",
			},
		},
		{
			Name: ModelSDXL,
			Resolutions: []string{
				"704x1408 (1:2 Vertical)",
				"704x1344 (11:21 Vertical)",
				"768x1344 (4:7 Vertical)",
				"768x1280 (3:5 Vertical)",
				"832x1216 (13:19 Vertical)",
				"832x1152 (13:18 Vertical)",
				"896x1152 (7:9 Vertical)",
				"896x1088 (14:17 Vertical)",
				"960x1088 (15:17 Vertical)",
				"960x1024 (15:16 Vertical)",
				"1024x1024 (1:1 Square)",
				"1024x960 (16:15 Wide)",
				"1088x960 (17:15 Wide)",
				"1088x896 (17:14 Wide)",
				"1152x896 (18:13 Wide)",
				"1152x832 (18:13 Wide)",
				"1216x832 (19:13 Wide)",
				"1280x768 (5:3 Wide)",
				"1280x704 (7:4 Wide)",
				"1344x768 (21:11 Wide)",
				"1344x704 (21:11 Wide)",
				"1408x704 (2:1 Wide)",
				"1408x640 (11:5 Wide)",
				"1472x704 (2:1 Wide)",
				"1536x640 (12:5 Wide)",
				"1600x640 (5:2 Wide)",
				"1664x576 (26:9 Wide)",
				"1728x576 (3:1 Wide)",
			},
		},
		{
			Name: ModelFlux,
			Resolutions: []string{
				"768x1024 (3:4 Vertical)",
				"960x1280 (3:4 Vertical)",
				"960x1440 (2:3 Vertical)",
				"1024x1536 (2:3 Vertical)",
				"512x512 (1:1 Square)",
				"768x768 (1:1 Square)",
				"1024x1024 (1:1 Square)",
				"1536x1536 (1:1 Square)",
				"1024x768 (4:3 Wide)",
				"1280x960 (4:3 Wide)",
				"1440x960 (3:2 Wide)",
				"1536x1024 (3:2 Wide)",
			},
		},
		{
			Name: ModelFlux2,
			Resolutions: []string{
				"1408x2816 (1:2 Vertical)",
				"1408x2688 (11:21 Vertical)",
				"1536x2688 (4:7 Vertical)",
				"1536x2560 (3:5 Vertical)",
				"1664x2432 (13:19 Vertical)",
				"1664x2304 (13:18 Vertical)",
				"1792x2304 (7:9 Vertical)",
				"1792x2176 (14:17 Vertical)",
				"1920x2176 (15:17 Vertical)",
				"1920x2048 (15:16 Vertical)",
				"2048x2048 (1:1 Square)",
				"2048x1920 (16:15 Wide)",
				"2176x1920 (17:15 Wide)",
				"2176x1792 (17:14 Wide)",
				"2304x1792 (18:13 Wide)",
				"2304x1664 (18:13 Wide)",
				"2432x1664 (19:13 Wide)",
				"2560x1536 (5:3 Wide)",
				"2560x1408 (7:4 Wide)",
				"2688x1536 (21:11 Wide)",
				"2688x1408 (21:11 Wide)",
				"2816x1408 (2:1 Wide)",
				"2816x1280 (11:5 Wide)",
				"2944x1408 (2:1 Wide)",
				"3072x1280 (12:5 Wide)",
				"3200x1280 (5:2 Wide)",
				"3328x1152 (26:9 Wide)",
				"3456x1152 (3:1 Wide)",
			},
		},
	}
}

var defaultTable = MustNewTable(DefaultModelEntries()...)

// DefaultTable returns the shared built-in table.
func DefaultTable() *Table {
	return defaultTable
}
