package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/temirov/latent-size/internal/utils"
)

// populateStringConfiguration resolves a string value from command flags, environment variables and defaults.
// flagName specifies the CLI flag, configurationKey maps to the viper key, destination receives the result,
// and defaultValue is applied when no value is provided.
func populateStringConfiguration(command *cobra.Command, flagName, configurationKey string, destination *string, defaultValue string) {
	if !command.Flags().Changed(flagName) {
		*destination = utils.TrimSpacesAndQuotes(viper.GetString(configurationKey))
	}
	if utils.IsBlank(*destination) {
		*destination = defaultValue
	}
}

// populateIntConfiguration resolves an integer value from command flags, environment variables and defaults.
// defaultValue replaces values that were provided by neither the flag nor the environment.
func populateIntConfiguration(command *cobra.Command, flagName, configurationKey string, destination *int, defaultValue int) {
	if command.Flags().Changed(flagName) {
		return
	}
	if viper.IsSet(configurationKey) {
		*destination = viper.GetInt(configurationKey)
		return
	}
	*destination = defaultValue
}
