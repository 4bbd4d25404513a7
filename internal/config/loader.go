package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "ACTIONMENU_"
	maxConfigFileSize = 1024 * 1024
)

// Load reads configuration with this precedence, highest first:
//
//  1. ACTIONMENU_<SECTION>_<FIELD> environment variables
//     (ACTIONMENU_STORE_KEEP_SNAPSHOTS -> store.keep_snapshots)
//  2. the YAML file at path, or Dir()/config.yaml when path is empty
//  3. defaults
//
// An explicit path must exist; the default file is optional.
func Load(path string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, "config.yaml")
	}

	k := koanf.New(".")
	content, err := readConfigFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return nil, err
	default:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	applyDefaults(&cfg, dir)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// envKey maps ACTIONMENU_STORE_KEEP_SNAPSHOTS to store.keep_snapshots: the
// first underscore separates section from field.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading config file info: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s is larger than %d bytes", path, maxConfigFileSize)
	}
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return content, nil
}
