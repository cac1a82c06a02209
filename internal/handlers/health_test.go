package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(ctx context.Context) error {
	return p.err
}

func TestHealthCheck_Basic(t *testing.T) {
	t.Parallel()

	checker := NewHealthChecker(&stubPinger{}, nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	checker.HealthCheck(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", body.Status)
	}
	if body.Checks != nil {
		t.Error("Basic mode should not include checks")
	}
}

func TestHealthCheck_Extended(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		store      *stubPinger
		redis      *stubPinger
		wantStatus int
		wantState  string
	}{
		{
			name:       "all healthy",
			store:      &stubPinger{},
			redis:      &stubPinger{},
			wantStatus: http.StatusOK,
			wantState:  "healthy",
		},
		{
			name:       "database down",
			store:      &stubPinger{err: errors.New("connection refused")},
			redis:      &stubPinger{},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "unhealthy",
		},
		{
			name:       "redis down",
			store:      &stubPinger{},
			redis:      &stubPinger{err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "unhealthy",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			checker := NewHealthChecker(tt.store, tt.redis)

			req := httptest.NewRequest("GET", "/healthz?mode=extended", nil)
			w := httptest.NewRecorder()
			checker.HealthCheck(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}

			var body HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if body.Status != tt.wantState {
				t.Errorf("Status = %q, want %q", body.Status, tt.wantState)
			}
		})
	}
}

func TestHealthCheck_ExtendedWithoutRedis(t *testing.T) {
	t.Parallel()

	checker := NewHealthChecker(&stubPinger{}, nil)

	req := httptest.NewRequest("GET", "/healthz?mode=extended", nil)
	w := httptest.NewRecorder()
	checker.HealthCheck(w, req)

	var body HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if _, ok := body.Checks["redis"]; ok {
		t.Error("Redis check should be skipped when rate limiting is disabled")
	}
	if body.Checks["database"] != "healthy" {
		t.Errorf("database check = %q, want healthy", body.Checks["database"])
	}
}

func TestVersionInfo(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/version", nil)
	w := httptest.NewRecorder()
	VersionInfo(w, req)

	var body VersionResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Service != "friendlens-api" {
		t.Errorf("Service = %q, want friendlens-api", body.Service)
	}
	if body.Version == "" {
		t.Error("Version should not be empty")
	}
}
