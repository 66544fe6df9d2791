// Package logging provides structured logging setup for propdb.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup initializes the default slog logger on stderr.
// Dev mode uses human-readable text; prod uses JSON.
func Setup(devMode bool) {
	slog.SetDefault(New(os.Stderr, devMode))
}

// New builds a logger writing to w with the same handler choice as Setup.
func New(w io.Writer, devMode bool) *slog.Logger {
	if devMode {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
