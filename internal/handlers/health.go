package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/menuboard/pkg/logger"
)

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Error     string    `json:"error,omitempty"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   logger.Version,
	}, h.logger)
}

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadinessHandler reports ready only while the menu API answers
type ReadinessHandler struct {
	upstream Pinger
	timeout  time.Duration
	logger   *slog.Logger
}

// NewReadinessHandler creates a readiness handler probing upstream
func NewReadinessHandler(upstream Pinger, timeout time.Duration, logger *slog.Logger) *ReadinessHandler {
	return &ReadinessHandler{
		upstream: upstream,
		timeout:  timeout,
		logger:   logger,
	}
}

// ServeHTTP handles readiness requests
func (h *ReadinessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	resp := HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC(),
		Version:   logger.Version,
	}

	if err := h.upstream.Ping(ctx); err != nil {
		h.logger.Warn("menu api not reachable", "error", err)
		resp.Status = "unavailable"
		resp.Error = err.Error()
		WriteJSON(w, http.StatusServiceUnavailable, resp, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, resp, h.logger)
}
