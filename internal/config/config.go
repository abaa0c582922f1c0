// Package config loads the YAML (or JSON) configuration file: theme colours,
// the starting shop, the frame size and rate, and the HTTP listen address.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/ghost-cookies/internal/render"
	"github.com/talgya/ghost-cookies/internal/shop"
)

// EnvAddr overrides Server.Addr when set.
const EnvAddr = "GHOSTCOOKIES_ADDR"

// Config is the full configuration file.
type Config struct {
	Theme   render.Theme  `yaml:"theme" json:"theme"`
	Shop    shop.Config   `yaml:"shop" json:"shop"`
	View    ViewConfig    `yaml:"view" json:"view"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ViewConfig sizes the rendered frame and paces the frame loop.
type ViewConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
	FPS    int `yaml:"fps" json:"fps"`
}

// ServerConfig configures the HTTP control surface.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
	// FramesPerMinute limits frame.png requests per client.
	FramesPerMinute int `yaml:"frames_per_minute" json:"frames_per_minute"`
}

// LoggingConfig selects the log level: debug, info, warn or error.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme: render.DefaultTheme(),
		Shop:  shop.DefaultConfig(),
		View: ViewConfig{
			Width:  1280,
			Height: 720,
			FPS:    60,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			FramesPerMinute: 120,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Shop.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.normalize()
	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadOrDefault is Load with read and parse failures logged and replaced by
// the defaults. An invalid shop section is returned as an error. An empty
// path skips the file.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	cfg, err := Load(path)
	if errors.Is(err, shop.ErrInvalidConfig) {
		return nil, err
	}
	if err != nil {
		slog.Warn("config load failed, using defaults", "path", path, "error", err)
		cfg = Default()
		cfg.applyEnvOverrides()
	}
	return cfg, nil
}

// Palette resolves the theme colours.
func (c *Config) Palette() render.Palette {
	return c.Theme.Palette()
}

// LogLevel maps Logging.Level to a slog level. Unknown names mean info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
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

// normalize replaces unusable view and server values with the defaults.
func (c *Config) normalize() {
	def := Default()
	if c.View.Width <= 0 || c.View.Height <= 0 {
		c.View.Width, c.View.Height = def.View.Width, def.View.Height
	}
	if c.View.FPS <= 0 {
		c.View.FPS = def.View.FPS
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.FramesPerMinute <= 0 {
		c.Server.FramesPerMinute = def.Server.FramesPerMinute
	}
}

func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv(EnvAddr); addr != "" {
		c.Server.Addr = addr
	}
}
