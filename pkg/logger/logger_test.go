package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}
	for level, want := range cases {
		log, err := NewLogger(level, "json")
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(want), level)
		if want > zapcore.DebugLevel {
			assert.False(t, log.Core().Enabled(want-1), level)
		}
	}
}

func TestNewLoggerConsole(t *testing.T) {
	log, err := NewLogger("debug", "console")
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger("info", "json", &buf)
	log.Debug("hidden")
	log.Info("started", zap.String("addr", ":8080"))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "started", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, ":8080", entry["addr"])
	assert.Contains(t, entry, "time")
}
