package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/temirov/latent-size/internal/resolution"
)

const arbitraryDimensionsMarker = " (any size)"

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models, their resolutions and the aspect-ratio presets",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			service, _, cleanup, prepareError := prepareRuntime(command)
			if prepareError != nil {
				return prepareError
			}
			defer cleanup()

			output := command.OutOrStdout()
			table := service.Resolver().Table()
			for _, modelName := range table.Models() {
				marker := ""
				if table.AcceptsArbitraryDimensions(modelName) {
					marker = arbitraryDimensionsMarker
				}
				fmt.Fprintf(output, "%s%s\n", modelName, marker)
				selectors, _ := table.Selectors(modelName)
				for _, selector := range selectors {
					fmt.Fprintf(output, "  %s\n", selector)
				}
			}
			fmt.Fprintln(output, "aspect ratios:")
			for _, preset := range resolution.AspectRatioPresets {
				fmt.Fprintf(output, "  %s\n", preset)
			}
			return nil
		},
	}
}
