// Package config provides configuration loading for tasktree.
package config

import (
	"time"
)

// ConfigFileName is the name of the config file in both the global
// config directory and the project's .tasktree directory.
const ConfigFileName = "config.toml"

// Config holds tasktree settings.
// Fields are ordered to minimize memory padding.
type Config struct {
	// LockTimeout bounds the wait for the project lock.
	LockTimeout time.Duration `toml:"-"`

	// LockTimeoutStr is the raw TOML value, e.g. "5s".
	LockTimeoutStr string `toml:"lock_timeout"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// NewDefaultConfig returns the built-in defaults.
func NewDefaultConfig() *Config {
	return &Config{
		LockTimeout: 5 * time.Second,
		LogLevel:    "info",
	}
}
