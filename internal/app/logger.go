package app

import (
	"io"
	"log/slog"
)

// newLogger builds the logger for one App. Unknown levels fall back to info,
// anything but "text" gets JSON. Debug runs also record the call site.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: level <= slog.LevelDebug}
	if formatStr == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
