package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"legal-ocr-server/internal/config"
)

func TestRouter_HealthCheck(t *testing.T) {
	container, err := config.NewContainer()
	if err != nil {
		t.Fatalf("failed to build container: %v", err)
	}
	router := NewRouter(container)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body: %s", rec.Body.String())
	}
}

func TestRouter_ProtectedRouteRequiresAuth(t *testing.T) {
	container, err := config.NewContainer()
	if err != nil {
		t.Fatalf("failed to build container: %v", err)
	}
	router := NewRouter(container)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/extractions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}
}
