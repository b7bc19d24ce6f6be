// Package client queries a running latent-size server.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/temirov/latent-size/internal/apperrors"
	"github.com/temirov/latent-size/internal/picker"
	"github.com/temirov/latent-size/internal/server"
	"github.com/temirov/latent-size/internal/utils"
	"go.uber.org/zap"
)

const (
	// DefaultRetryBudget bounds how long transport failures are retried.
	DefaultRetryBudget = 10 * time.Second

	formatJSON = "json"

	logEventServerRequestFailed = "latent-size server request failed"

	errorFormatStatus = "%w: status=%d body=%s"
)

// ErrServerResponse is returned when the server answers with an unexpected status.
var ErrServerResponse = errors.New("unexpected server response")

// remoteErrors maps error text returned by the server back to local sentinels.
var remoteErrors = []error{
	apperrors.ErrUnknownModel,
	apperrors.ErrInvalidResolutionFormat,
	apperrors.ErrInvalidDimensions,
	apperrors.ErrInvalidParameter,
}

// Result is a size resolved by the server.
type Result struct {
	Model       string `json:"model"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	BatchSize   int    `json:"batch_size"`
	LatentShape []int  `json:"latent_shape"`
}

// Client issues resolve requests to a server at baseURL.
type Client struct {
	baseURL          string
	serviceSecret    string
	httpClient       utils.HTTPDoer
	retryBudget      time.Duration
	structuredLogger *zap.SugaredLogger
}

// New creates a Client. A nil httpClient uses http.DefaultClient; a nil logger disables logging.
func New(baseURL string, serviceSecret string, httpClient utils.HTTPDoer, structuredLogger *zap.SugaredLogger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if structuredLogger == nil {
		structuredLogger = zap.NewNop().Sugar()
	}
	return &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		serviceSecret:    serviceSecret,
		httpClient:       httpClient,
		retryBudget:      DefaultRetryBudget,
		structuredLogger: structuredLogger,
	}
}

// ResolveExplicit asks the server to resolve an explicit resolution selector.
func (remote *Client) ResolveExplicit(ctx context.Context, request picker.ExplicitRequest) (Result, error) {
	query := commonQuery(request.Model, request.BatchSize, request.Overrides)
	if request.Resolution != "" {
		query.Set(server.QueryParameterResolution, request.Resolution)
	}
	return remote.resolve(ctx, server.PathResolve, query)
}

// ResolveByAspectRatio asks the server to resolve an aspect-ratio preset.
func (remote *Client) ResolveByAspectRatio(ctx context.Context, request picker.AspectRatioRequest) (Result, error) {
	query := commonQuery(request.Model, request.BatchSize, request.Overrides)
	if request.AspectRatio != "" {
		query.Set(server.QueryParameterAspectRatio, request.AspectRatio)
	}
	return remote.resolve(ctx, server.PathResolveAspect, query)
}

func (remote *Client) resolve(ctx context.Context, path string, query url.Values) (Result, error) {
	query.Set(server.QueryParameterFormat, formatJSON)
	if remote.serviceSecret != "" {
		query.Set(server.QueryParameterKey, remote.serviceSecret)
	}
	httpRequest, buildError := utils.BuildHTTPRequestWithHeaders(ctx, http.MethodGet, remote.baseURL+path+"?"+query.Encode(), nil, nil)
	if buildError != nil {
		return Result{}, buildError
	}
	statusCode, responseBytes, _, performError := utils.PerformHTTPRequest(remote.httpClient, httpRequest, remote.retryBudget, remote.structuredLogger, logEventServerRequestFailed)
	if performError != nil {
		return Result{}, performError
	}
	if statusCode != http.StatusOK {
		return Result{}, statusError(statusCode, string(responseBytes))
	}
	var result Result
	if decodeError := json.Unmarshal(responseBytes, &result); decodeError != nil {
		return Result{}, decodeError
	}
	return result, nil
}

func statusError(statusCode int, body string) error {
	if statusCode == http.StatusBadRequest {
		for _, sentinel := range remoteErrors {
			if strings.HasPrefix(body, sentinel.Error()) {
				return fmt.Errorf("%w (remote): %s", sentinel, body)
			}
		}
	}
	return fmt.Errorf(errorFormatStatus, ErrServerResponse, statusCode, body)
}

// commonQuery encodes the model name and only the numeric parameters that differ from their defaults.
func commonQuery(modelName string, batchSize int, overrides picker.Overrides) url.Values {
	query := url.Values{}
	query.Set(server.QueryParameterModel, modelName)
	if batchSize != 0 {
		query.Set(server.QueryParameterBatchSize, strconv.Itoa(batchSize))
	}
	if overrides.Width != 0 {
		query.Set(server.QueryParameterWidthOverride, strconv.Itoa(overrides.Width))
	}
	if overrides.Height != 0 {
		query.Set(server.QueryParameterHeightOverride, strconv.Itoa(overrides.Height))
	}
	return query
}
