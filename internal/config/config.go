// Package config reads process settings from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const envVarPrefix = "YOURTIMER"

// Config holds process-level settings. User preferences live in the
// settings store instead.
type Config struct {
	// ConfigDir overrides the per-user configuration directory.
	ConfigDir      string `envconfig:"CONFIG_DIR"`
	LogVerbosity   int    `envconfig:"LOG_VERBOSITY" default:"0"`
	MetricsAddr    string `envconfig:"METRICS_ADDR"`
	Sound          bool   `envconfig:"SOUND" default:"true"`
	SingleInstance bool   `envconfig:"SINGLE_INSTANCE" default:"true"`
}

// LoadFromEnv reads YOURTIMER_* variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(envVarPrefix, cfg); err != nil {
		return nil, fmt.Errorf("load environment config: %w", err)
	}
	if cfg.LogVerbosity < 0 {
		return nil, fmt.Errorf("load environment config: negative log verbosity %d", cfg.LogVerbosity)
	}
	return cfg, nil
}

// MetricsEnabled reports whether the metrics endpoint should be served.
func (c *Config) MetricsEnabled() bool {
	return c.MetricsAddr != ""
}
