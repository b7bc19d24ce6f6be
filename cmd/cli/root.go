package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/temirov/latent-size/internal/logging"
	"github.com/temirov/latent-size/internal/picker"
	"github.com/temirov/latent-size/internal/resolution"
	"go.uber.org/zap"
)

const (
	envPrefix = "latent"

	keyLogLevel       = "log_level"
	keyTable          = "table"
	keyModel          = "model"
	keyResolution     = "resolution"
	keyAspectRatio    = "aspect_ratio"
	keyBatchSize      = "batch_size"
	keyWidthOverride  = "width_override"
	keyHeightOverride = "height_override"
	keyServer         = "server"
	keyServiceSecret  = "service_secret"
	keyPort           = "port"

	flagLogLevel       = keyLogLevel
	flagTable          = keyTable
	flagModel          = keyModel
	flagResolution     = keyResolution
	flagAspectRatio    = keyAspectRatio
	flagBatchSize      = keyBatchSize
	flagWidthOverride  = keyWidthOverride
	flagHeightOverride = keyHeightOverride
	flagServer         = keyServer
	flagServiceSecret  = keyServiceSecret
	flagPort           = keyPort

	envLogLevel       = "LOG_LEVEL"
	envTable          = "LATENT_TABLE"
	envModel          = "LATENT_MODEL"
	envResolution     = "LATENT_RESOLUTION"
	envAspectRatio    = "LATENT_ASPECT_RATIO"
	envBatchSize      = "LATENT_BATCH_SIZE"
	envWidthOverride  = "LATENT_WIDTH_OVERRIDE"
	envHeightOverride = "LATENT_HEIGHT_OVERRIDE"
	envServer         = "LATENT_SERVER"
	envServiceSecret  = "SERVICE_SECRET"
	envPort           = "HTTP_PORT"

	logLevelInfo = logging.LevelInfo
)

// rootConfiguration holds settings shared by every subcommand.
type rootConfiguration struct {
	LogLevel  string
	TablePath string
}

var rootSettings rootConfiguration

// Execute runs the command-line interface.
func Execute() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = false
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "latent-size",
		Short: "Pick image sizes and empty latents for generative models",
		Long:  "Maps a model and a resolution or aspect-ratio preset to a width and height and the matching empty latent shape.",
		Example: `latent-size aspect --model=Flux --aspect_ratio="9:16 (Portrait)"
latent-size resolve --model=SDXL --resolution="832x1216 (13:19 Vertical)" --batch_size=4
LATENT_SERVER=http://localhost:8080 latent-size aspect --model=SDXL
latent-size serve --port=8080 --service_secret=mysecret`,
	}
	command.PersistentFlags().StringVar(
		&rootSettings.LogLevel,
		flagLogLevel,
		"",
		"logging level: debug or info (env: "+envLogLevel+")",
	)
	command.PersistentFlags().StringVar(
		&rootSettings.TablePath,
		flagTable,
		"",
		"YAML, JSON or TOML file replacing the built-in resolution table (env: "+envTable+")",
	)
	command.AddCommand(newResolveCommand(), newAspectCommand(), newModelsCommand(), newServeCommand())
	return command
}

// bindOrDie wraps viper bindings and returns a combined error if any bind fails.
func bindOrDie() error {
	bindings := [][2]string{
		{keyLogLevel, envLogLevel},
		{keyTable, envTable},
		{keyModel, envModel},
		{keyResolution, envResolution},
		{keyAspectRatio, envAspectRatio},
		{keyBatchSize, envBatchSize},
		{keyWidthOverride, envWidthOverride},
		{keyHeightOverride, envHeightOverride},
		{keyServer, envServer},
		{keyServiceSecret, envServiceSecret},
		{keyPort, envPort},
	}
	var errs []string
	for _, binding := range bindings {
		if err := viper.BindEnv(binding[0], binding[1]); err != nil {
			errs = append(errs, binding[0]+":"+err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func init() {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if err := bindOrDie(); err != nil {
		panic("viper env binding failed: " + err.Error())
	}
}

// prepareRuntime resolves the shared settings, builds the logger and loads the resolution table.
// The returned cleanup flushes the logger.
func prepareRuntime(command *cobra.Command) (*picker.Service, *zap.SugaredLogger, func(), error) {
	populateStringConfiguration(command, flagLogLevel, keyLogLevel, &rootSettings.LogLevel, logLevelInfo)
	populateStringConfiguration(command, flagTable, keyTable, &rootSettings.TablePath, "")

	logger, loggerError := logging.NewLogger(rootSettings.LogLevel)
	if loggerError != nil {
		return nil, nil, nil, loggerError
	}
	cleanup := func() { _ = logger.Sync() }
	sugar := logger.Sugar()

	table := resolution.DefaultTable()
	if rootSettings.TablePath != "" {
		loadedTable, loadError := loadTable(rootSettings.TablePath)
		if loadError != nil {
			sugar.Errorw(logEventTableLoadFailed, logFieldPath, rootSettings.TablePath, logFieldError, loadError)
			cleanup()
			return nil, nil, nil, loadError
		}
		table = loadedTable
		sugar.Debugw(logEventTableLoaded, logFieldPath, rootSettings.TablePath, logFieldModels, table.Models())
	}
	return picker.NewService(resolution.NewResolver(table), sugar), sugar, cleanup, nil
}
