package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when CONFIG_PATH is unset. A missing default file is
// not an error.
const DefaultPath = "config.yaml"

// Load reads the YAML file named by CONFIG_PATH (or DefaultPath), applies
// environment overrides and env-default tags, and validates the result.
// Precedence: environment, then file, then defaults.
func Load() (*Config, error) {
	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || path == "" {
		path, explicit = DefaultPath, false
	}
	return load(path, explicit)
}

func load(path string, required bool) (*Config, error) {
	var cfg Config

	err := cleanenv.ReadConfig(path, &cfg)
	switch {
	case err == nil:
	case !required && errors.Is(err, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
