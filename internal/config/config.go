// Package config loads the optional ~/.config/tally/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultOwnerID keys all local records; tally is single-user.
const DefaultOwnerID = "local"

type Config struct {
	// DBPath overrides the default ~/.tally.db location.
	DBPath string `yaml:"db_path"`
	// OwnerID keys sessions, receipts, and the profile.
	OwnerID string `yaml:"owner_id"`
	// Debug enables console logging of the publish pipeline.
	Debug bool `yaml:"debug"`
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "tally", "config.yaml"), nil
}

// Load reads the config file if present; a missing file yields defaults.
func Load() (*Config, error) {
	cfg := &Config{OwnerID: DefaultOwnerID}

	path, err := defaultPath()
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.OwnerID == "" {
		cfg.OwnerID = DefaultOwnerID
	}
	return cfg, nil
}
