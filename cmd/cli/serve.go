package main

import (
	"github.com/spf13/cobra"
	"github.com/temirov/latent-size/internal/server"
	"github.com/temirov/latent-size/internal/utils"
)

func newServeCommand() *cobra.Command {
	var settings server.Configuration
	command := &cobra.Command{
		Use:   "serve",
		Short: "Serve the size pickers over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			populateStringConfiguration(command, flagServiceSecret, keyServiceSecret, &settings.ServiceSecret, "")
			populateIntConfiguration(command, flagPort, keyPort, &settings.Port, server.DefaultPort)
			if settings.Port <= 0 {
				settings.Port = server.DefaultPort
			}

			service, sugar, cleanup, prepareError := prepareRuntime(command)
			if prepareError != nil {
				return prepareError
			}
			defer cleanup()
			settings.LogLevel = rootSettings.LogLevel

			secretFingerprint := ""
			if !utils.IsBlank(settings.ServiceSecret) {
				secretFingerprint = utils.Fingerprint(settings.ServiceSecret)
			}
			sugar.Infow("starting server",
				"port", settings.Port,
				"log_level", settings.LogLevel,
				"models", service.Resolver().Table().Models(),
				"secret_fingerprint", secretFingerprint,
			)
			return server.Serve(settings, service, sugar)
		},
	}
	command.Flags().IntVar(&settings.Port, flagPort, 0, "TCP port to listen on (env: "+envPort+")")
	command.Flags().StringVar(&settings.ServiceSecret, flagServiceSecret, "", "shared secret required in the key query parameter; empty disables the check (env: "+envServiceSecret+")")
	return command
}
