package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tegar-ganang/air-quality-dicoding/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewLoggerProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&config.Config{AppEnv: "production", LogLevel: "info"}, &buf, false)
	log.Debug("hidden")
	log.Info("dataset loaded", "rows", 4)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dataset loaded", entry["msg"])
	assert.Equal(t, appName, entry["app"])
	assert.Equal(t, "production", entry["env"])
	assert.EqualValues(t, 4, entry["rows"])
}

func TestNewLoggerDebugFlag(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&config.Config{AppEnv: "development", LogLevel: "error"}, &buf, true)
	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
