package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/menuboard/pkg/logger"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler(logger.New("error"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("expected status healthy, got %s", resp.Status)
	}
	if resp.Version != logger.Version {
		t.Errorf("expected version %s, got %s", logger.Version, resp.Version)
	}
}

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name           string
		ping           pingFunc
		expectedStatus int
		expectedState  string
	}{
		{
			name:           "upstream reachable",
			ping:           func(context.Context) error { return nil },
			expectedStatus: http.StatusOK,
			expectedState:  "ready",
		},
		{
			name:           "upstream down",
			ping:           func(context.Context) error { return errors.New("connection refused") },
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "unavailable",
		},
		{
			name: "upstream too slow",
			ping: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewReadinessHandler(tt.ping, 50*time.Millisecond, logger.New("error"))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.expectedState {
				t.Errorf("expected status %s, got %s", tt.expectedState, resp.Status)
			}
			if tt.expectedStatus != http.StatusOK && resp.Error == "" {
				t.Error("expected error detail when unavailable")
			}
		})
	}
}
