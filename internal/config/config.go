// Package config loads the driver's ambient settings from an optional YAML
// file and the environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by the driver.
const (
	EnvConfig   = "WATERWHEEL_CONFIG"
	EnvLogLevel = "WATERWHEEL_LOG_LEVEL"
	EnvJournal  = "WATERWHEEL_JOURNAL"
)

// Config holds the settings that do not affect the gear train itself.
type Config struct {
	LogLevel    string `yaml:"log_level"`
	JournalPath string `yaml:"journal_path"` // empty disables the run journal
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{LogLevel: "info"}
}

// Load reads path (if non-empty and present) and applies env overrides.
// A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.Debug("config file not found, using defaults", "path", path)
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvJournal); v != "" {
		c.JournalPath = v
	}
}

// SlogLevel maps LogLevel to a slog level. Unknown names fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
