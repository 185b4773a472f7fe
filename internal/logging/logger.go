// Package logging builds the slog loggers used for debug tracing. Loggers
// write to stderr, so the adapters keep them off unless asked.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// EnvDebug turns on debug logging for the adapter binaries when set to a
// non-empty value other than "0".
const EnvDebug = "GRINDERWRAP_DEBUG"

// New creates a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// FromEnv returns a debug logger on stderr when EnvDebug is set, and a
// no-op logger otherwise.
func FromEnv() *slog.Logger {
	if v := os.Getenv(EnvDebug); v != "" && v != "0" {
		return New(os.Stderr, slog.LevelDebug)
	}
	return NewNop()
}
