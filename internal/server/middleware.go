package server

import (
	"crypto/subtle"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/temirov/latent-size/internal/constants"
	"github.com/temirov/latent-size/internal/utils"
	"go.uber.org/zap"
)

const (
	contextKeyResolvedSize = "latent_size.resolved"
	contextKeyResolveError = "latent_size.resolve_error"
)

// sanitizeRequestURI replaces the shared secret in the query with a placeholder.
func sanitizeRequestURI(requestURL *url.URL) string {
	queryParameters := requestURL.Query()
	if queryParameters.Has(QueryParameterKey) {
		queryParameters.Set(QueryParameterKey, redactedPlaceholder)
	}
	sanitizedURL := *requestURL
	sanitizedURL.RawQuery = queryParameters.Encode()
	return sanitizedURL.RequestURI()
}

// recordResolvedSize stores the response payload for the access log.
func recordResolvedSize(ginContext *gin.Context, payload sizeResponse) {
	ginContext.Set(contextKeyResolvedSize, payload)
}

// recordResolveError stores a failed resolution for the access log.
func recordResolveError(ginContext *gin.Context, resolveError error) {
	ginContext.Set(contextKeyResolveError, resolveError)
}

// resolutionOutcomeFields returns the log fields describing what the handler resolved, if anything.
func resolutionOutcomeFields(ginContext *gin.Context) []any {
	if storedValue, exists := ginContext.Get(contextKeyResolvedSize); exists {
		if payload, isPayload := storedValue.(sizeResponse); isPayload {
			return []any{
				constants.LogFieldModel, payload.Model,
				constants.LogFieldWidth, payload.Width,
				constants.LogFieldHeight, payload.Height,
				constants.LogFieldBatchSize, payload.BatchSize,
				logFieldLatentShape, payload.LatentShape,
			}
		}
	}
	if storedValue, exists := ginContext.Get(contextKeyResolveError); exists {
		if resolveError, isError := storedValue.(error); isError {
			return []any{constants.LogFieldError, resolveError.Error()}
		}
	}
	return nil
}

// accessLogger logs each request and, once handled, its status, latency and resolved size.
func accessLogger(structuredLogger *zap.SugaredLogger) gin.HandlerFunc {
	return func(ginContext *gin.Context) {
		requestStart := time.Now()
		structuredLogger.Infow(
			logEventRequestReceived,
			logFieldMethod, ginContext.Request.Method,
			logFieldPath, sanitizeRequestURI(ginContext.Request.URL),
			logFieldClientIP, ginContext.ClientIP(),
		)

		ginContext.Next()

		responseFields := []any{
			logFieldStatus, ginContext.Writer.Status(),
			constants.LogFieldLatencyMilliseconds, time.Since(requestStart).Milliseconds(),
		}
		structuredLogger.Infow(logEventResponseSent, append(responseFields, resolutionOutcomeFields(ginContext)...)...)
	}
}

// sharedSecretGuard rejects requests whose `key` query parameter does not match the configured secret.
// Only the secret's fingerprint is ever logged.
func sharedSecretGuard(sharedSecret string, structuredLogger *zap.SugaredLogger) gin.HandlerFunc {
	normalizedSecret := strings.TrimSpace(sharedSecret)
	secretFingerprint := utils.Fingerprint(normalizedSecret)
	return func(ginContext *gin.Context) {
		presentedKey := strings.TrimSpace(ginContext.Query(QueryParameterKey))
		if secretsMatch(normalizedSecret, presentedKey) {
			ginContext.Next()
			return
		}
		structuredLogger.Warnw(
			logEventForbiddenRequest,
			logFieldPath, ginContext.Request.URL.Path,
			logFieldExpectedFingerprint, secretFingerprint,
		)
		ginContext.String(http.StatusForbidden, errorMissingClientKey)
		ginContext.Abort()
	}
}

// secretsMatch compares in constant time; a length mismatch still performs one comparison.
func secretsMatch(expectedSecret string, presentedKey string) bool {
	expectedBytes := []byte(expectedSecret)
	presentedBytes := []byte(presentedKey)
	if len(expectedBytes) != len(presentedBytes) {
		_ = subtle.ConstantTimeCompare(expectedBytes, expectedBytes)
		return false
	}
	return subtle.ConstantTimeCompare(expectedBytes, presentedBytes) == 1
}
