// Package config loads ptb settings from a YAML file layered over defaults,
// with environment variable overrides applied last.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvDataDir overrides Config.DataDir.
	EnvDataDir = "PTB_DATA_DIR"
	// EnvLogLevel overrides Config.LogLevel.
	EnvLogLevel = "PTB_LOG_LEVEL"

	configFile = "config.yaml"
)

// Config holds process-wide settings.
type Config struct {
	DataDir      string `yaml:"data_dir"`
	LogLevel     string `yaml:"log_level"`
	Development  bool   `yaml:"development"`
	RegistrySeed string `yaml:"registry_seed"` // optional YAML tool list; empty uses the built-in seed
	AuditPlans   bool   `yaml:"audit_plans"`
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:    filepath.Join(home, ".ptb"),
		LogLevel:   "info",
		AuditPlans: true,
	}
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(Default().DataDir, configFile)
}

// Load reads path over Default and applies env overrides. A missing file
// is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir is required")
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("config: invalid log_level %q: must be one of: debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// Save writes cfg as YAML, creating parent directories as needed.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: creating directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
