package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/temirov/latent-size/internal/apperrors"
	"github.com/temirov/latent-size/internal/constants"
	"github.com/temirov/latent-size/internal/picker"
	"github.com/temirov/latent-size/internal/resolution"
	"go.uber.org/zap"
)

const errorFormatIntegerParameter = "%w: %s must be an integer, got %q"

// modelSummary describes one model of the resolution table.
type modelSummary struct {
	Name                string   `json:"name"`
	ArbitraryDimensions bool     `json:"arbitrary_dimensions"`
	Resolutions         []string `json:"resolutions"`
}

func modelsHandler(service *picker.Service) gin.HandlerFunc {
	table := service.Resolver().Table()
	summaries := make([]modelSummary, 0, len(table.Models()))
	for _, modelName := range table.Models() {
		selectors, _ := table.Selectors(modelName)
		summaries = append(summaries, modelSummary{
			Name:                modelName,
			ArbitraryDimensions: table.AcceptsArbitraryDimensions(modelName),
			Resolutions:         selectors,
		})
	}
	return func(ginContext *gin.Context) {
		ginContext.JSON(http.StatusOK, summaries)
	}
}

func aspectRatiosHandler() gin.HandlerFunc {
	return func(ginContext *gin.Context) {
		ginContext.JSON(http.StatusOK, resolution.AspectRatioPresets)
	}
}

func explicitHandler(service *picker.Service, structuredLogger *zap.SugaredLogger) gin.HandlerFunc {
	return func(ginContext *gin.Context) {
		modelName := queryModel(ginContext)
		batchSize, overrides, parameterError := queryCommonParameters(ginContext)
		if parameterError != nil {
			respondError(ginContext, parameterError, modelName, structuredLogger)
			return
		}
		result, resolveError := service.Explicit(picker.ExplicitRequest{
			Model:      modelName,
			Resolution: ginContext.Query(QueryParameterResolution),
			BatchSize:  batchSize,
			Overrides:  overrides,
		})
		if resolveError != nil {
			respondError(ginContext, resolveError, modelName, structuredLogger)
			return
		}
		respondResult(ginContext, modelName, result, structuredLogger)
	}
}

func aspectRatioHandler(service *picker.Service, structuredLogger *zap.SugaredLogger) gin.HandlerFunc {
	return func(ginContext *gin.Context) {
		modelName := queryModel(ginContext)
		batchSize, overrides, parameterError := queryCommonParameters(ginContext)
		if parameterError != nil {
			respondError(ginContext, parameterError, modelName, structuredLogger)
			return
		}
		result, resolveError := service.Simple(picker.AspectRatioRequest{
			Model:       modelName,
			AspectRatio: ginContext.Query(QueryParameterAspectRatio),
			BatchSize:   batchSize,
			Overrides:   overrides,
		})
		if resolveError != nil {
			respondError(ginContext, resolveError, modelName, structuredLogger)
			return
		}
		respondResult(ginContext, modelName, result, structuredLogger)
	}
}

// queryModel returns the requested model, defaulting to the first model offered by the picker.
func queryModel(ginContext *gin.Context) string {
	modelName, present := ginContext.GetQuery(QueryParameterModel)
	if !present {
		return resolution.DefaultModel
	}
	return modelName
}

func queryCommonParameters(ginContext *gin.Context) (int, picker.Overrides, error) {
	batchSize, batchError := queryInt(ginContext, QueryParameterBatchSize, resolution.MinimumBatchSize)
	if batchError != nil {
		return 0, picker.Overrides{}, batchError
	}
	widthOverride, widthError := queryInt(ginContext, QueryParameterWidthOverride, 0)
	if widthError != nil {
		return 0, picker.Overrides{}, widthError
	}
	heightOverride, heightError := queryInt(ginContext, QueryParameterHeightOverride, 0)
	if heightError != nil {
		return 0, picker.Overrides{}, heightError
	}
	return batchSize, picker.Overrides{Width: widthOverride, Height: heightOverride}, nil
}

func queryInt(ginContext *gin.Context, parameterName string, defaultValue int) (int, error) {
	rawValue := strings.TrimSpace(ginContext.Query(parameterName))
	if rawValue == "" {
		return defaultValue, nil
	}
	parsedValue, parseError := strconv.Atoi(rawValue)
	if parseError != nil {
		return 0, fmt.Errorf(errorFormatIntegerParameter, apperrors.ErrInvalidParameter, parameterName, rawValue)
	}
	return parsedValue, nil
}

func respondResult(ginContext *gin.Context, modelName string, result picker.Result, structuredLogger *zap.SugaredLogger) {
	payload := sizeResponse{
		Model:       modelName,
		Width:       result.Width,
		Height:      result.Height,
		BatchSize:   result.BatchSize,
		LatentShape: result.Latent.Shape(),
	}
	body, contentType, formatError := formatResponse(payload, preferredMime(ginContext))
	if formatError != nil {
		structuredLogger.Errorw(logEventMarshalResponsePayload, constants.LogFieldError, formatError)
		ginContext.String(http.StatusInternalServerError, errorResponseFormat)
		return
	}
	recordResolvedSize(ginContext, payload)
	ginContext.Data(http.StatusOK, contentType, []byte(body))
}

func respondError(ginContext *gin.Context, resolveError error, modelName string, structuredLogger *zap.SugaredLogger) {
	structuredLogger.Warnw(
		logEventResolveFailed,
		constants.LogFieldModel, modelName,
		constants.LogFieldError, resolveError,
	)
	recordResolveError(ginContext, resolveError)
	switch {
	case errors.Is(resolveError, apperrors.ErrUnknownModel),
		errors.Is(resolveError, apperrors.ErrInvalidResolutionFormat),
		errors.Is(resolveError, apperrors.ErrInvalidDimensions),
		errors.Is(resolveError, apperrors.ErrInvalidParameter):
		ginContext.String(http.StatusBadRequest, resolveError.Error())
	default:
		ginContext.String(http.StatusInternalServerError, errorInternal)
	}
}
