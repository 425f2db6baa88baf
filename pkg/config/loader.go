package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidCellSize = errors.New("cell size must be positive")
	ErrInvalidLogLevel = errors.New("unknown log level")
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault is LoadConfig that treats a missing file as the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// SaveConfig writes the config to path, creating the parent directory.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks values applyDefaults cannot repair.
func (c *Config) Validate() error {
	if c.Desktop.CellWidth < 0 || c.Desktop.CellHeight < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidCellSize, c.Desktop.CellWidth, c.Desktop.CellHeight)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Theme == "" {
		cfg.Theme = "gibson"
	}
	if cfg.Brand == "" {
		cfg.Brand = "[ GIBSON ]"
	}
	if cfg.Desktop.CellWidth == 0 {
		cfg.Desktop.CellWidth = 8
	}
	if cfg.Desktop.CellHeight == 0 {
		cfg.Desktop.CellHeight = 16
	}
	if cfg.Desktop.DockHeight <= 0 {
		cfg.Desktop.DockHeight = 48
	}
	if cfg.Desktop.DoubleClickMs <= 0 {
		cfg.Desktop.DoubleClickMs = 400
	}
	if cfg.Clock.Format == "" {
		cfg.Clock.Format = "3:04:05 PM"
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "anthropic"
	}
	if cfg.AI.TimeoutSeconds <= 0 {
		cfg.AI.TimeoutSeconds = 15
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
