package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Loader loads configuration from TOML files. Project config takes
// precedence over the global config, which takes precedence over the
// built-in defaults.
type Loader struct {
	globalConfDir string
}

// NewLoader creates a Loader using the default global config directory.
func NewLoader() *Loader {
	return &Loader{globalConfDir: defaultGlobalConfigDir()}
}

// NewLoaderWithGlobalDir creates a Loader with a custom global config
// directory. This is useful for testing.
func NewLoaderWithGlobalDir(globalConfDir string) *Loader {
	return &Loader{globalConfDir: globalConfDir}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tasktree")
}

// Load returns the merged configuration for a project directory.
// A missing file at either level simply falls through to the defaults.
func (l *Loader) Load(projectDir string) (*Config, error) {
	base := NewDefaultConfig()

	if l.globalConfDir != "" {
		global, err := l.loadFile(filepath.Join(l.globalConfDir, ConfigFileName))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if global != nil {
			base = mergeConfigs(base, global)
		}
	}

	if projectDir != "" {
		project, err := l.loadFile(filepath.Join(projectDir, ".tasktree", ConfigFileName))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if project != nil {
			base = mergeConfigs(base, project)
		}
	}

	return base, nil
}

func (l *Loader) loadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.LockTimeoutStr != "" {
		d, err := time.ParseDuration(cfg.LockTimeoutStr)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("parse %s: invalid lock_timeout %q", path, cfg.LockTimeoutStr)
		}
		cfg.LockTimeout = d
	}
	return &cfg, nil
}

// mergeConfigs overlays set values from overlay onto base.
func mergeConfigs(base, overlay *Config) *Config {
	merged := *base
	if overlay.LockTimeout > 0 {
		merged.LockTimeout = overlay.LockTimeout
	}
	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}
	return &merged
}
