// Package config loads appcarve's environment-derived defaults.
//
// Configuration lives in APPCARVE_* environment variables; command-line flags
// take precedence by using these values as their flag defaults.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the run defaults appcarve reads from the environment.
type Config struct {
	Marker   string `envconfig:"MARKER" default:"Microsoft.YourPhone"`
	Workers  int    `envconfig:"WORKERS" default:"5"`
	Output   string `envconfig:"OUTPUT" default:"carved.zip"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogDev   bool   `envconfig:"LOG_DEV" default:"true"`
}

// Load reads configuration from APPCARVE_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("appcarve", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from APPCARVE_* environment variables.
// The returned Config is always usable: a malformed environment yields the
// compiled defaults plus the parse error, so callers can warn the user that
// their setting was ignored instead of dropping it silently.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Default returns the compiled-in defaults.
func Default() *Config {
	return &Config{
		Marker:   "Microsoft.YourPhone",
		Workers:  5,
		Output:   "carved.zip",
		LogLevel: "info",
		LogDev:   true,
	}
}
