package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/temirov/latent-size/internal/constants"
	"go.uber.org/zap"
)

const errorFormatServerStatus = "server status %d"

// HTTPDoer sends HTTP requests; *http.Client satisfies it.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

var exponentialBackoffPool = sync.Pool{
	New: func() any {
		return backoff.NewExponentialBackOff()
	},
}

// AcquireExponentialBackoff retrieves a reusable exponential backoff instance limited to maxElapsed.
func AcquireExponentialBackoff(maxElapsed time.Duration) *backoff.ExponentialBackOff {
	exponentialBackoff := exponentialBackoffPool.Get().(*backoff.ExponentialBackOff)
	exponentialBackoff.MaxElapsedTime = maxElapsed
	exponentialBackoff.Reset()
	return exponentialBackoff
}

// ReleaseExponentialBackoff resets the backoff and returns it to the pool.
func ReleaseExponentialBackoff(exponentialBackoff *backoff.ExponentialBackOff) {
	exponentialBackoff.Reset()
	exponentialBackoffPool.Put(exponentialBackoff)
}

// BuildHTTPRequestWithHeaders constructs an HTTP request bound to ctx and applies headers.
func BuildHTTPRequestWithHeaders(ctx context.Context, method string, requestURL string, body io.Reader, headers map[string]string) (*http.Request, error) {
	httpRequest, httpRequestError := http.NewRequestWithContext(ctx, method, requestURL, body)
	if httpRequestError != nil {
		return nil, httpRequestError
	}
	for headerName, headerValue := range headers {
		httpRequest.Header.Set(headerName, headerValue)
	}
	return httpRequest, nil
}

// PerformHTTPRequest issues the HTTP request and returns the status code, body, and latency.
// Transport failures and 5xx responses are retried with exponential backoff for at most maxElapsed;
// other statuses are returned to the caller as-is.
func PerformHTTPRequest(httpClient HTTPDoer, httpRequest *http.Request, maxElapsed time.Duration, structuredLogger *zap.SugaredLogger, logEventOnTransportError string) (int, []byte, int64, error) {
	startTime := time.Now()
	var statusCode int
	var responseBytes []byte
	operation := func() error {
		if httpRequest.GetBody != nil {
			resetBody, resetError := httpRequest.GetBody()
			if resetError != nil {
				return backoff.Permanent(resetError)
			}
			httpRequest.Body = resetBody
		}
		httpResponse, httpError := httpClient.Do(httpRequest)
		if httpError != nil {
			if structuredLogger != nil {
				structuredLogger.Warnw(logEventOnTransportError, constants.LogFieldError, httpError)
			}
			return httpError
		}
		defer httpResponse.Body.Close()

		body, readError := io.ReadAll(httpResponse.Body)
		if readError != nil {
			if structuredLogger != nil {
				structuredLogger.Warnw(constants.LogEventReadResponseBodyFailed, constants.LogFieldError, readError)
			}
			return readError
		}
		statusCode = httpResponse.StatusCode
		responseBytes = body
		if statusCode >= http.StatusInternalServerError {
			return fmt.Errorf(errorFormatServerStatus, statusCode)
		}
		return nil
	}

	exponentialBackoff := AcquireExponentialBackoff(maxElapsed)
	defer ReleaseExponentialBackoff(exponentialBackoff)
	retryError := backoff.Retry(operation, backoff.WithContext(exponentialBackoff, httpRequest.Context()))
	latencyMillis := time.Since(startTime).Milliseconds()
	if retryError != nil {
		if structuredLogger != nil {
			structuredLogger.Errorw(
				logEventOnTransportError,
				constants.LogFieldError, retryError,
				constants.LogFieldLatencyMilliseconds, latencyMillis,
			)
		}
		return statusCode, responseBytes, latencyMillis, retryError
	}
	return statusCode, responseBytes, latencyMillis, nil
}
