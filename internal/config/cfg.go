package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Settings backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Log levels.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

type (
	// SettingsConfig selects where the global settings tier is persisted.
	SettingsConfig struct {
		Backend string `yaml:"backend"`
		// Path is a directory for the file backend and a database file for
		// sqlite. Empty means inside the configuration directory.
		Path string `yaml:"path,omitempty"`
	}

	LoggingConfig struct {
		Level string `yaml:"level"`
	}

	RenderConfig struct {
		// Format is the default output of the render command.
		Format string `yaml:"format"`
		// Width is the terminal width in cells; 0 detects it.
		Width int `yaml:"width,omitempty"`
	}

	// Config is the content of config.yaml.
	Config struct {
		Vault    string         `yaml:"vault,omitempty"`
		Settings SettingsConfig `yaml:"settings"`
		Logging  LoggingConfig  `yaml:"logging"`
		Render   RenderConfig   `yaml:"render"`
	}
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Settings: SettingsConfig{Backend: BackendFile},
		Logging:  LoggingConfig{Level: LevelNone},
		Render:   RenderConfig{Format: "term"},
	}
}

// File returns the default configuration file path.
func File() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the configuration at path over the defaults. An empty path uses
// File(); a missing file yields the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = File()
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := unmarshalConfig(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration file %s: %w", path, err)
	}
	return cfg, nil
}

func unmarshalConfig(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return cfg.Validate()
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if !slices.Contains([]string{BackendFile, BackendSQLite}, c.Settings.Backend) {
		return fmt.Errorf("settings.backend: unknown backend %q (want file or sqlite)", c.Settings.Backend)
	}
	if !slices.Contains([]string{LevelNone, LevelNormal, LevelDebug}, c.Logging.Level) {
		return fmt.Errorf("logging.level: unknown level %q (want none, normal or debug)", c.Logging.Level)
	}
	if c.Render.Width < 0 {
		return fmt.Errorf("render.width: must not be negative, got %d", c.Render.Width)
	}
	return nil
}

// SettingsPath returns where the configured backend keeps its data.
func (c *Config) SettingsPath() string {
	if c.Settings.Path != "" {
		return c.Settings.Path
	}
	if c.Settings.Backend == BackendSQLite {
		return filepath.Join(Dir(), "settings.db")
	}
	return Dir()
}

// Dump renders the configuration as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
