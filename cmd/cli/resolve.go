package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/temirov/latent-size/internal/client"
	"github.com/temirov/latent-size/internal/picker"
	"github.com/temirov/latent-size/internal/resolution"
)

const outputFormat = "width=%d height=%d batch_size=%d latent_shape=%v\n"

// pickerConfiguration holds the request settings of the resolve and aspect commands.
type pickerConfiguration struct {
	Model          string
	Resolution     string
	AspectRatio    string
	BatchSize      int
	WidthOverride  int
	HeightOverride int
	ServerURL      string
	ServiceSecret  string
}

func addPickerFlags(command *cobra.Command, settings *pickerConfiguration) {
	command.Flags().StringVar(&settings.Model, flagModel, "", "model name (env: "+envModel+")")
	command.Flags().IntVar(&settings.BatchSize, flagBatchSize, 0, "latent batch size, at least 1 (env: "+envBatchSize+")")
	command.Flags().IntVar(&settings.WidthOverride, flagWidthOverride, 0, "width replacing the table value when positive (env: "+envWidthOverride+")")
	command.Flags().IntVar(&settings.HeightOverride, flagHeightOverride, 0, "height replacing the table value when positive (env: "+envHeightOverride+")")
	command.Flags().StringVar(&settings.ServerURL, flagServer, "", "resolve through a latent-size server at this URL (env: "+envServer+")")
	command.Flags().StringVar(&settings.ServiceSecret, flagServiceSecret, "", "shared secret for the server (env: "+envServiceSecret+")")
}

func populatePickerConfiguration(command *cobra.Command, settings *pickerConfiguration) {
	populateStringConfiguration(command, flagModel, keyModel, &settings.Model, resolution.DefaultModel)
	populateIntConfiguration(command, flagBatchSize, keyBatchSize, &settings.BatchSize, resolution.MinimumBatchSize)
	populateIntConfiguration(command, flagWidthOverride, keyWidthOverride, &settings.WidthOverride, 0)
	populateIntConfiguration(command, flagHeightOverride, keyHeightOverride, &settings.HeightOverride, 0)
	populateStringConfiguration(command, flagServer, keyServer, &settings.ServerURL, "")
	populateStringConfiguration(command, flagServiceSecret, keyServiceSecret, &settings.ServiceSecret, "")
}

func (settings pickerConfiguration) overrides() picker.Overrides {
	return picker.Overrides{Width: settings.WidthOverride, Height: settings.HeightOverride}
}

func newResolveCommand() *cobra.Command {
	var settings pickerConfiguration
	command := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a size from an explicit WIDTHxHEIGHT (RATIO) selector",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			populatePickerConfiguration(command, &settings)
			populateStringConfiguration(command, flagResolution, keyResolution, &settings.Resolution, "")
			request := picker.ExplicitRequest{
				Model:      settings.Model,
				Resolution: settings.Resolution,
				BatchSize:  settings.BatchSize,
				Overrides:  settings.overrides(),
			}

			service, sugar, cleanup, prepareError := prepareRuntime(command)
			if prepareError != nil {
				return prepareError
			}
			defer cleanup()

			if settings.ServerURL != "" {
				remote := client.New(settings.ServerURL, settings.ServiceSecret, nil, sugar)
				remoteResult, remoteError := remote.ResolveExplicit(commandContext(command), request)
				if remoteError != nil {
					return remoteError
				}
				return printRemoteResult(command.OutOrStdout(), remoteResult)
			}
			result, resolveError := service.ShapeOnly().Explicit(request)
			if resolveError != nil {
				return resolveError
			}
			return printResult(command.OutOrStdout(), result)
		},
	}
	addPickerFlags(command, &settings)
	command.Flags().StringVar(&settings.Resolution, flagResolution, "", "selector such as \"1024x1024 (1:1 Square)\"; defaults to the model's first entry (env: "+envResolution+")")
	return command
}

func newAspectCommand() *cobra.Command {
	var settings pickerConfiguration
	command := &cobra.Command{
		Use:   "aspect",
		Short: "Resolve a size from an aspect-ratio preset",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			populatePickerConfiguration(command, &settings)
			populateStringConfiguration(command, flagAspectRatio, keyAspectRatio, &settings.AspectRatio, resolution.AspectRatioPresets[0])
			request := picker.AspectRatioRequest{
				Model:       settings.Model,
				AspectRatio: settings.AspectRatio,
				BatchSize:   settings.BatchSize,
				Overrides:   settings.overrides(),
			}

			service, sugar, cleanup, prepareError := prepareRuntime(command)
			if prepareError != nil {
				return prepareError
			}
			defer cleanup()

			if settings.ServerURL != "" {
				remote := client.New(settings.ServerURL, settings.ServiceSecret, nil, sugar)
				remoteResult, remoteError := remote.ResolveByAspectRatio(commandContext(command), request)
				if remoteError != nil {
					return remoteError
				}
				return printRemoteResult(command.OutOrStdout(), remoteResult)
			}
			result, resolveError := service.ShapeOnly().Simple(request)
			if resolveError != nil {
				return resolveError
			}
			return printResult(command.OutOrStdout(), result)
		},
	}
	addPickerFlags(command, &settings)
	command.Flags().StringVar(&settings.AspectRatio, flagAspectRatio, "", "aspect-ratio preset such as \"9:16 (Portrait)\" (env: "+envAspectRatio+")")
	return command
}

func commandContext(command *cobra.Command) context.Context {
	if ctx := command.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printResult(output io.Writer, result picker.Result) error {
	_, writeError := fmt.Fprintf(output, outputFormat, result.Width, result.Height, result.BatchSize, result.Latent.Shape())
	return writeError
}

func printRemoteResult(output io.Writer, result client.Result) error {
	_, writeError := fmt.Fprintf(output, outputFormat, result.Width, result.Height, result.BatchSize, result.LatentShape)
	return writeError
}
