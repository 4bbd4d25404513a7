package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/alexanderramin/actionmenu/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Info("saved", zap.String("path", "/tmp/state.json"))
	require.NoError(t, logger.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "saved", line["msg"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "actionmenu", line["logger"])
	assert.Equal(t, "/tmp/state.json", line["path"])
	assert.Contains(t, line, "ts")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "warn", Format: "console"}, &buf)
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("loud")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "chatty", Format: "json"}, &bytes.Buffer{})
	assert.Error(t, err)
}
