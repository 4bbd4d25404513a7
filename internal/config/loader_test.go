package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config directory at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	t.Setenv("HOME", base)
	return filepath.Join(base, appDir)
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, filepath.Join(dir, "state.json"), cfg.Store.Path)
	assert.Equal(t, 20, cfg.Store.KeepSnapshots)
	assert.Equal(t, 3, cfg.Extraction.MinTokens)
	assert.Zero(t, cfg.Extraction.MinConfidence)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, "config.yaml"), `
store:
  backend: sqlite
  keep_snapshots: 5
extraction:
  min_confidence: 0.4
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, filepath.Join(dir, "state.db"), cfg.Store.Path)
	assert.Equal(t, 5, cfg.Store.KeepSnapshots)
	assert.InDelta(t, 0.4, cfg.Extraction.MinConfidence, 1e-9)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, path, `
store:
  path: /from/file.json
  keep_snapshots: 5
log:
  level: info
`)
	t.Setenv("ACTIONMENU_STORE_KEEP_SNAPSHOTS", "9")
	t.Setenv("ACTIONMENU_LOG_LEVEL", "debug")
	t.Setenv("ACTIONMENU_EXTRACTION_MIN_TOKENS", "4")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/file.json", cfg.Store.Path)
	assert.Equal(t, 9, cfg.Store.KeepSnapshots)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Extraction.MinTokens)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"backend", "store:\n  backend: postgres\n", "store.backend"},
		{"confidence", "extraction:\n  min_confidence: 1.5\n", "min_confidence"},
		{"keep", "store:\n  keep_snapshots: -1\n", "keep_snapshots"},
		{"level", "log:\n  level: loud\n", "log.level"},
		{"format", "log:\n  format: xml\n", "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeConfig(t, path, tt.body)

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "store: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "store.keep_snapshots", envKey("ACTIONMENU_STORE_KEEP_SNAPSHOTS"))
	assert.Equal(t, "log.level", envKey("ACTIONMENU_LOG_LEVEL"))
	assert.Equal(t, "verbose", envKey("ACTIONMENU_VERBOSE"))
}
