// Package config loads actionmenu settings from a YAML file, ACTIONMENU_*
// environment variables and built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	appDir = "actionmenu"
)

type Config struct {
	Store      StoreConfig      `koanf:"store"`
	Extraction ExtractionConfig `koanf:"extraction"`
	Log        LogConfig        `koanf:"log"`
}

// StoreConfig selects where state is persisted.
type StoreConfig struct {
	Backend string `koanf:"backend"`
	Path    string `koanf:"path"`
	// KeepSnapshots bounds the sqlite backend's history.
	KeepSnapshots int `koanf:"keep_snapshots"`
}

type ExtractionConfig struct {
	MinTokens     int     `koanf:"min_tokens"`
	MinConfidence float64 `koanf:"min_confidence"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Dir is the per-user application directory, $XDG_CONFIG_HOME/actionmenu on
// Linux.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("finding config directory: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

func applyDefaults(cfg *Config, dir string) {
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendFile
	}
	if cfg.Store.Path == "" {
		name := "state.json"
		if cfg.Store.Backend == BackendSQLite {
			name = "state.db"
		}
		cfg.Store.Path = filepath.Join(dir, name)
	}
	if cfg.Store.KeepSnapshots == 0 {
		cfg.Store.KeepSnapshots = 20
	}
	if cfg.Extraction.MinTokens == 0 {
		cfg.Extraction.MinTokens = 3
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", BackendFile, BackendSQLite, c.Store.Backend)
	}
	if c.Store.KeepSnapshots < 1 {
		return fmt.Errorf("store.keep_snapshots must be at least 1, got %d", c.Store.KeepSnapshots)
	}
	if c.Extraction.MinTokens < 1 {
		return fmt.Errorf("extraction.min_tokens must be at least 1, got %d", c.Extraction.MinTokens)
	}
	if c.Extraction.MinConfidence < 0 || c.Extraction.MinConfidence > 1 {
		return fmt.Errorf("extraction.min_confidence must be within [0,1], got %g", c.Extraction.MinConfidence)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}
