package main

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/tegar-ganang/air-quality-dicoding/config"
)

const appName = "air-quality"

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// newLogger returns a colored console logger in development and a JSON logger in
// production. debug forces the debug level.
func newLogger(cfg *config.Config, w io.Writer, debug bool) *slog.Logger {
	level := parseLevel(cfg.LogLevel)
	if debug {
		level = slog.LevelDebug
	}

	if !cfg.IsProduction() {
		h := tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		})
		return slog.New(h).With("app", appName)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(h).With(
		"app", appName,
		"env", cfg.AppEnv,
	)
}
