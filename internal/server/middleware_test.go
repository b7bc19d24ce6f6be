package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/temirov/latent-size/internal/apperrors"
	"github.com/temirov/latent-size/internal/picker"
	"github.com/temirov/latent-size/internal/resolution"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestSanitizeRequestURI verifies that the shared secret never reaches the logs.
func TestSanitizeRequestURI(testingInstance *testing.T) {
	requestURL, _ := url.Parse("/resolve?model=SDXL&key=topsecret")
	sanitized := sanitizeRequestURI(requestURL)
	if strings.Contains(sanitized, "topsecret") {
		testingInstance.Fatalf("sanitized=%q leaks the key", sanitized)
	}
	if !strings.Contains(sanitized, "model=SDXL") {
		testingInstance.Fatalf("sanitized=%q dropped other parameters", sanitized)
	}
}

// TestSecretsMatch verifies equality for matching, mismatching and differently sized keys.
func TestSecretsMatch(testingInstance *testing.T) {
	if !secretsMatch("abc", "abc") {
		testingInstance.Fatalf("equal inputs reported different")
	}
	if secretsMatch("abc", "abd") {
		testingInstance.Fatalf("different inputs reported equal")
	}
	if secretsMatch("abc", "abcd") {
		testingInstance.Fatalf("different lengths reported equal")
	}
}

type accessLogScenario struct {
	scenarioName   string
	requestTarget  string
	expectedStatus int
	expectedFields map[string]any
	absentFields   []string
}

// TestAccessLogger_RecordsResolvedSize verifies that the response entry carries the resolved size or the failure.
func TestAccessLogger_RecordsResolvedSize(testingInstance *testing.T) {
	testScenarios := []accessLogScenario{
		{
			scenarioName:   "resolved",
			requestTarget:  "/resolve/aspect?model=Flux&aspect_ratio=9%3A16+%28Portrait%29&batch_size=3",
			expectedStatus: http.StatusOK,
			expectedFields: map[string]any{"model": "Flux", "width": int64(768), "height": int64(1024), "batch_size": int64(3), "status": int64(http.StatusOK)},
			absentFields:   []string{"error"},
		},
		{
			scenarioName:   "rejected override",
			requestTarget:  "/resolve?model=SDXL&width_override=100",
			expectedStatus: http.StatusBadRequest,
			expectedFields: map[string]any{"status": int64(http.StatusBadRequest)},
			absentFields:   []string{"width", "height"},
		},
	}
	for _, currentScenario := range testScenarios {
		testingInstance.Run(currentScenario.scenarioName, func(subTest *testing.T) {
			observedCore, observedLogs := observer.New(zapcore.InfoLevel)
			builtRouter, buildError := BuildRouter(Configuration{LogLevel: LogLevelInfo}, picker.NewService(resolution.NewResolver(nil), nil), zap.New(observedCore).Sugar())
			if buildError != nil {
				subTest.Fatalf("BuildRouter error: %v", buildError)
			}
			recorder := httptest.NewRecorder()
			builtRouter.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, currentScenario.requestTarget, nil))
			if recorder.Code != currentScenario.expectedStatus {
				subTest.Fatalf("status=%d want=%d body=%s", recorder.Code, currentScenario.expectedStatus, recorder.Body.String())
			}

			responseEntries := observedLogs.FilterMessage(logEventResponseSent).All()
			if len(responseEntries) != 1 {
				subTest.Fatalf("response entries=%d want 1", len(responseEntries))
			}
			loggedFields := responseEntries[0].ContextMap()
			for fieldName, expectedValue := range currentScenario.expectedFields {
				if loggedFields[fieldName] != expectedValue {
					subTest.Fatalf("field %s=%v (%T) want %v", fieldName, loggedFields[fieldName], loggedFields[fieldName], expectedValue)
				}
			}
			for _, fieldName := range currentScenario.absentFields {
				if _, present := loggedFields[fieldName]; present {
					subTest.Fatalf("field %s unexpectedly logged: %v", fieldName, loggedFields)
				}
			}
			if currentScenario.expectedStatus != http.StatusOK {
				if loggedError, _ := loggedFields["error"].(string); !strings.Contains(loggedError, apperrors.ErrInvalidParameter.Error()) {
					subTest.Fatalf("error field=%v", loggedFields["error"])
				}
			}
		})
	}
}
