package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body of every JSON error
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON encodes data before touching the response, so an encoding
// failure still yields a clean 500 instead of a truncated body.
func WriteJSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(ErrorResponse{Error: "Internal server error"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Debug("failed to write JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, ErrorResponse{Error: message}, logger)
}

// writeHTML writes a rendered HTML document or fragment
func writeHTML(w http.ResponseWriter, status int, body []byte, logger *slog.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		logger.Debug("failed to write HTML response", "error", err)
	}
}
