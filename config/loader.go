package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// NOTEBOOKSTORE_DEFAULT_NOTEBOOK_ID.
const EnvPrefix = "notebookstore"

// Load reads a configuration file, applies environment overrides, and
// validates the result. The format is chosen by extension: .json, or
// .yaml/.yml. Unknown extensions are tried as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// FromEnv builds a configuration from environment variables alone.
func FromEnv() (*Config, error) {
	return finish(&Config{})
}

func finish(cfg *Config) (*Config, error) {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
