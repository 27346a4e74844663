package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/couchcryptid/eaip-etl/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LogConfig{Level: "info", Format: "json"}, &buf)

	logger.Debug("hidden")
	logger.Info("section parsed", "section", "2.17", "airspace", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "section parsed", entry["msg"])
	assert.Equal(t, "2.17", entry["section"])
	assert.Equal(t, "eaip-etl", entry["service"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LogConfig{Level: "debug", Format: "text"}, &buf)

	logger.Debug("visible", "rows", 3)
	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "rows=3")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestLogWriter(t *testing.T) {
	t.Run("stdout by default", func(t *testing.T) {
		_, isFile := logWriter(config.LogConfig{}).(*lumberjack.Logger)
		assert.False(t, isFile)
	})

	t.Run("rotating file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "etl.log")
		w := logWriter(config.LogConfig{File: path, MaxSizeMB: 8, MaxBackups: 2})

		lj, ok := w.(*lumberjack.Logger)
		require.True(t, ok)
		assert.Equal(t, path, lj.Filename)
		assert.Equal(t, 8, lj.MaxSize)
		assert.Equal(t, 2, lj.MaxBackups)
		t.Cleanup(func() { _ = lj.Close() })

		_, err := lj.Write([]byte("line\n"))
		require.NoError(t, err)
		assert.FileExists(t, path)
	})
}
