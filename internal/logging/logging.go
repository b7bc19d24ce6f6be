// Package logging builds the zap loggers used by the command-line interface and server.
package logging

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// LevelDebug selects the development logger.
	LevelDebug = "debug"
	// LevelInfo selects the production logger.
	LevelInfo = "info"
)

// NewLogger returns a development logger for the debug level and a production logger otherwise.
func NewLogger(level string) (*zap.Logger, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case LevelDebug:
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}

// IsVerbose reports whether request logging should be enabled for the level.
func IsVerbose(level string) bool {
	normalized := strings.ToLower(strings.TrimSpace(level))
	return normalized == LevelDebug || normalized == LevelInfo
}
