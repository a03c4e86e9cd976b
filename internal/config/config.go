// Package config loads the runtime settings of the nuclea command.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// ErrBadWindowSize is returned by Validate for a non-positive window size.
var ErrBadWindowSize = errors.New("config: window size must be positive")

// Config holds all runtime configuration for a nuclea session.
// Values are populated from .nuclea.yaml, NUCLEA_* env vars, and CLI flags.
type Config struct {
	// Content is the page content file. Empty means the embedded default.
	Content       string `mapstructure:"content"`
	Width         int    `mapstructure:"width"`
	Height        int    `mapstructure:"height"`
	Resizable     bool   `mapstructure:"resizable"`
	ShowFPS       bool   `mapstructure:"show_fps"`
	LogLevel      string `mapstructure:"log_level"`
	ScreenshotDir string `mapstructure:"screenshot_dir"`
	Watch         bool   `mapstructure:"watch"`
	Debug         bool   `mapstructure:"debug"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("content", "")
	viper.SetDefault("width", 1280)
	viper.SetDefault("height", 800)
	viper.SetDefault("resizable", true)
	viper.SetDefault("show_fps", false)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("screenshot_dir", "screenshots")
	viper.SetDefault("watch", false)
	viper.SetDefault("debug", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks the window size and log level.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: %dx%d", ErrBadWindowSize, c.Width, c.Height))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("config: log_level: %w", err)
	}
	return lvl, nil
}
