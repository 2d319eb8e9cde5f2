// Package config loads and persists the application's YAML configuration.
// A missing file is treated as a first run: defaults are written to disk
// and returned.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BasicAuthConfig enables HTTP Basic Authentication on the API when set.
// PasswordHash is a bcrypt hash; the hash-password subcommand produces one.
type BasicAuthConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// DataDir holds the event store, user holiday overrides and the
	// settings database. Relative paths are resolved by the caller.
	DataDir string `yaml:"data_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// BasicAuth, if non-nil, protects every endpoint except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Listen:   "127.0.0.1:8585",
		DataDir:  "data",
		LogLevel: "info",
	}
}

// Normalize fills zero values with defaults so older or partial config
// files keep working.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8585"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}
}

// EventsPath is the JSON snapshot of user events.
func (c *Config) EventsPath() string {
	return filepath.Join(c.DataDir, "events.json")
}

// UserHolidaysPath is the user's holiday override file.
func (c *Config) UserHolidaysPath() string {
	return filepath.Join(c.DataDir, "holidays_user.json")
}

// SettingsDBPath is the SQLite settings database.
func (c *Config) SettingsDBPath() string {
	return filepath.Join(c.DataDir, "settings.db")
}

// Load reads the YAML config at path. A missing file is written with
// defaults and 0600 permissions before being returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return nil, fmt.Errorf("write default config: %w", err)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the config atomically: temp file in the same directory,
// then rename. The final file ends up with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".shamsitray-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
