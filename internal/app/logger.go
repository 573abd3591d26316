package app

import (
	"io"
	"log/slog"
)

// logLevels maps the CLI's level names onto slog levels. An unknown name
// falls back to the zero value, which is LevelInfo.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the app's logger from the already-validated CLI
// settings. The logger is returned rather than installed as the process
// default, so each App instance (and each test harness run) gets an
// isolated log stream.
func newLogger(level, format string, logW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevels[level]}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(logW, opts))
	}
	return slog.New(slog.NewTextHandler(logW, opts))
}
