// Package logging builds the structured loggers used by the CLI, the HTTP API
// and the terminal UI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Encodings accepted by Config.Encoding.
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// Config selects the log level and output encoding.
type Config struct {
	Level    string `envconfig:"LEVEL" default:"info"`
	Encoding string `envconfig:"ENCODING" default:"console"`
}

// ParseLevel parses a log level string. Unknown levels fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a logger writing to stderr.
func New(cfg Config) *slog.Logger {
	return NewWithOutput(os.Stderr, cfg)
}

// NewWithOutput creates a logger writing to w. Unknown encodings use the
// console (text) handler.
func NewWithOutput(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Encoding) {
	case EncodingJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Discard returns a logger that discards all output.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1, // Higher than any level
	}))
}
