package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// Module is the name attached to every log record.
	Module = "menuboard"

	// EnvVarLogLevel is the environment variable name for setting the log level.
	EnvVarLogLevel = "LOG_LEVEL"
)

// Version is set at build time via -ldflags "-X github.com/Lixing-Zhang/menuboard/pkg/logger.Version=..."
var Version = "v0.0.0"

// New creates a JSON structured logger on stderr for the given level.
func New(level string) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a JSON structured logger writing to w.
// Module name and version are included in the logger's context.
// AddSource is enabled for debug level logging only.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	lev := ParseLogLevel(level)

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lev,
		AddSource: lev <= slog.LevelDebug,
	})).With("module", Module, "version", Version)
}

// ParseLogLevel converts a string representation of a log level into a slog.Level.
// Unrecognized strings map to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
