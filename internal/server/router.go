// Package server exposes the size pickers over HTTP.
package server

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/temirov/latent-size/internal/logging"
	"github.com/temirov/latent-size/internal/picker"
	"go.uber.org/zap"
)

// BuildRouter wires middleware and handlers around the picker service. Responses only carry the latent
// shape, so the handlers use the service's shape-only variant and never allocate samples.
func BuildRouter(config Configuration, service *picker.Service, structuredLogger *zap.SugaredLogger) (*gin.Engine, error) {
	if service == nil {
		return nil, fmt.Errorf("picker service must be set")
	}
	if structuredLogger == nil {
		structuredLogger = zap.NewNop().Sugar()
	}

	if strings.ToLower(config.LogLevel) == LogLevelDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	service = service.ShapeOnly()

	router := gin.New()
	if logging.IsVerbose(config.LogLevel) {
		router.Use(accessLogger(structuredLogger))
	}
	router.Use(gin.Recovery())
	if strings.TrimSpace(config.ServiceSecret) != "" {
		router.Use(sharedSecretGuard(config.ServiceSecret, structuredLogger))
	}

	router.GET(PathModels, modelsHandler(service))
	router.GET(PathAspectRatios, aspectRatiosHandler())
	router.GET(PathResolve, explicitHandler(service, structuredLogger))
	router.GET(PathResolveAspect, aspectRatioHandler(service, structuredLogger))
	return router, nil
}

// Serve builds the router and blocks serving on the configured port.
func Serve(config Configuration, service *picker.Service, structuredLogger *zap.SugaredLogger) error {
	router, buildError := BuildRouter(config, service, structuredLogger)
	if buildError != nil {
		return buildError
	}
	if config.Port <= 0 {
		config.Port = DefaultPort
	}
	return router.Run(fmt.Sprintf(":%d", config.Port))
}
