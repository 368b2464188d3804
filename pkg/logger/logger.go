package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps debug, info, warn and error to slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
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

// New returns a text logger in gin debug mode and a JSON logger otherwise.
func New(w io.Writer, level, mode string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if mode == "debug" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Setup installs the logger as the process default.
func Setup(level, mode string) *slog.Logger {
	l := New(os.Stdout, level, mode)
	slog.SetDefault(l)
	return l
}
