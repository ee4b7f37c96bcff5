// Package config loads the console configuration from the state directory.
// Flags and environment variables override anything set in the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const configFile = "config.yaml"

// Config holds the console settings.
type Config struct {
	// ServerURL is the API base URL.
	ServerURL string `yaml:"server_url"`

	// Timeout bounds each API round trip.
	Timeout time.Duration `yaml:"timeout"`

	// CacheDir enables the HTTP response cache when set.
	CacheDir string `yaml:"cache_dir"`

	// Output selects the default list rendering: "table" or "json".
	Output string `yaml:"output"`
}

// Default returns the defaults applied beneath the config file.
func Default() Config {
	return Config{
		ServerURL: "http://localhost:5000",
		Timeout:   30 * time.Second,
		Output:    "table",
	}
}

// DefaultStateDir returns ~/.socialite, the directory holding the config
// file, the persisted state, and the session cookies.
func DefaultStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".socialite"), nil
}

// Load reads <stateDir>/config.yaml over the defaults. A missing file just
// yields the defaults.
func Load(stateDir string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(stateDir, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = Default().ServerURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = Default().Timeout
	}
	if cfg.Output == "" {
		cfg.Output = Default().Output
	}
	return cfg, nil
}
