// Package main starts the latent-size command-line interface.
package main

import (
	"fmt"
	"os"

	"github.com/subosito/gotenv"
)

const (
	// messageEnvironmentLoadFailed is printed when environment variables fail to load.
	messageEnvironmentLoadFailed = "failed to load environment variables: %v\n"
)

// main is the entry point for latent-size.
func main() {
	environmentLoadError := gotenv.Load()
	if environmentLoadError != nil && !os.IsNotExist(environmentLoadError) {
		fmt.Fprintf(os.Stderr, messageEnvironmentLoadFailed, environmentLoadError)
	}

	Execute()
}
