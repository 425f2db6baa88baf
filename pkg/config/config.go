// Package config loads and saves gibson's YAML configuration.
package config

import "time"

type Config struct {
	Theme       string  `yaml:"theme"`
	Brand       string  `yaml:"brand"`
	OpenWelcome *bool   `yaml:"open_welcome,omitempty"` // open README.txt on start (default: true)
	Desktop     Desktop `yaml:"desktop"`
	Clock       Clock   `yaml:"clock"`
	AI          AI      `yaml:"ai"`
	Log         Log     `yaml:"log"`
}

type Desktop struct {
	CellWidth     int  `yaml:"cell_width"`      // desktop units per terminal column (default: 8)
	CellHeight    int  `yaml:"cell_height"`     // desktop units per terminal row (default: 16)
	DockHeight    int  `yaml:"dock_height"`     // reserved at the bottom, in units (default: 48)
	DoubleClickMs int  `yaml:"double_click_ms"` // max gap between clicks (default: 400)
	ShowGrid      bool `yaml:"show_grid"`
}

type Clock struct {
	Format string `yaml:"format"` // Go time layout (default: "3:04:05 PM")
}

type AI struct {
	Provider       string `yaml:"provider"` // anthropic, openai or ollama
	Model          string `yaml:"model"`
	APIKey         string `yaml:"api_key,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type Log struct {
	Level string `yaml:"level"` // logrus level name (default: info)
}

// WelcomeOnStart reports whether the README window opens at startup.
func (c *Config) WelcomeOnStart() bool {
	return c.OpenWelcome == nil || *c.OpenWelcome
}

// DoubleClick returns the double-click threshold.
func (d Desktop) DoubleClick() time.Duration {
	return time.Duration(d.DoubleClickMs) * time.Millisecond
}

// Timeout returns the per-question deadline for the AI backend.
func (a AI) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Default returns a fully defaulted config.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
