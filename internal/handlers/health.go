package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker handles health check requests
type HealthChecker struct {
	store Pinger
	redis Pinger
}

// NewHealthChecker creates a health checker. redis may be nil when rate
// limiting is disabled.
func NewHealthChecker(store, redis Pinger) *HealthChecker {
	return &HealthChecker{store: store, redis: redis}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles the /healthz endpoint
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if mode == "extended" {
		checks := make(map[string]string)

		if err := h.ping(r.Context(), h.store); err != nil {
			response.Status = "unhealthy"
			checks["database"] = "unhealthy: " + sanitizeErrorMessage(err.Error())
		} else {
			checks["database"] = "healthy"
		}

		if h.redis != nil {
			if err := h.ping(r.Context(), h.redis); err != nil {
				response.Status = "unhealthy"
				checks["redis"] = "unhealthy: " + sanitizeErrorMessage(err.Error())
			} else {
				checks["redis"] = "healthy"
			}
		}

		response.Checks = checks

		statusCode := http.StatusOK
		if response.Status == "unhealthy" {
			statusCode = http.StatusServiceUnavailable
		}

		respondJSON(w, statusCode, response)
		return
	}

	// Basic mode just reports that the server is running
	respondJSON(w, http.StatusOK, response)
}

func (h *HealthChecker) ping(ctx context.Context, dep Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return dep.Ping(ctx)
}

// VersionResponse represents the version endpoint response
type VersionResponse struct {
	Version string `json:"version"`
	Service string `json:"service"`
}

// Version value is set at build time via ldflags.
var Version = "dev"

// VersionInfo handles the /version endpoint
func VersionInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, VersionResponse{
		Version: Version,
		Service: "friendlens-api",
	})
}
