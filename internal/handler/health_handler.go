package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HealthChecker is anything that can report its own reachability
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	database HealthChecker
	cache    HealthChecker
	logger   *slog.Logger
}

// NewHealthHandler creates a new health handler. cache may be nil when
// caching is disabled.
func NewHealthHandler(database, cache HealthChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		database: database,
		cache:    cache,
		logger:   logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:   "healthy",
		Services: make(map[string]string),
	}

	if err := h.database.Health(ctx); err != nil {
		h.logger.Error("database health check failed", slog.String("error", err.Error()))
		response.Status = "unhealthy"
		response.Services["database"] = "unhealthy"
	} else {
		response.Services["database"] = "healthy"
	}

	// The API keeps serving without its cache, so a cache failure only degrades
	if h.cache != nil {
		if err := h.cache.Health(ctx); err != nil {
			h.logger.Warn("cache health check failed", slog.String("error", err.Error()))
			if response.Status == "healthy" {
				response.Status = "degraded"
			}
			response.Services["cache"] = "unhealthy"
		} else {
			response.Services["cache"] = "healthy"
		}
	} else {
		response.Services["cache"] = "not_configured"
	}

	if response.Status == "unhealthy" {
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}
	respondSuccess(w, response)
}
