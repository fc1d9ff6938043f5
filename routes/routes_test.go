package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mbolis/platform-pulse/app"
	"github.com/mbolis/platform-pulse/config"
	"github.com/mbolis/platform-pulse/database"
	"github.com/mbolis/platform-pulse/model"
)

// newTestApp opens a fresh migrated database under a temp dir
func newTestApp(t *testing.T) app.App {
	t.Helper()

	cfg := config.Config{DBUrl: filepath.Join(t.TempDir(), "test.sqlite")}
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return app.App{DB: db, Config: cfg}
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func doRawJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", rec.Body.String(), err)
	}
}

func createTestSurvey(t *testing.T, handler http.Handler, input model.SurveyInput) model.Survey {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/surveys", input)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Failed to create survey: status %d, body %s", rec.Code, rec.Body.String())
	}

	survey := model.Survey{}
	decode(t, rec, &survey)
	return survey
}

func submitTestResponse(t *testing.T, handler http.Handler, surveyId string, platforms []string) model.SubmitResponseResult {
	t.Helper()

	input := model.SubmitResponseInput{SurveyID: surveyId, Platforms: platforms}
	rec := doJSON(t, handler, http.MethodPost, "/api/responses", input)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Failed to submit response: status %d, body %s", rec.Code, rec.Body.String())
	}

	result := model.SubmitResponseResult{}
	decode(t, rec, &result)
	return result
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)
	handler := Wire(a)

	rec := doJSON(t, handler, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	health := model.Health{}
	decode(t, rec, &health)
	if health.Status != "ok" {
		t.Errorf("Expected status %q, got %q", "ok", health.Status)
	}
	if health.Timestamp == "" {
		t.Error("Expected non-empty timestamp")
	}
}
