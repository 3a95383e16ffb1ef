// Package config reads the application settings from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lumi/lumi-bar/pkg/store"
)

// LogFileName is the TUI log written next to the config file
const LogFileName = "lumi.log"

// Config holds the settings every entry point shares
type Config struct {
	Dir          string        `env:"LUMI_CONFIG_DIR"`
	File         string        `env:"LUMI_CONFIG_FILE" envDefault:"lumi-bar.yaml"`
	PreviewDelay time.Duration `env:"LUMI_PREVIEW_DELAY" envDefault:"150ms"`
	LogLevel     slog.Level    `env:"LUMI_LOG_LEVEL" envDefault:"info"`
	LogFile      string        `env:"LUMI_LOG_FILE"`
}

// Load parses the environment and fills in the per-user directory
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.PreviewDelay < 0 {
		return Config{}, fmt.Errorf("LUMI_PREVIEW_DELAY must not be negative, got %s", cfg.PreviewDelay)
	}
	if cfg.File == "" {
		cfg.File = store.ConfigFileName
	}

	if cfg.Dir == "" {
		dir, err := store.DefaultDir()
		if err != nil {
			return Config{}, err
		}
		cfg.Dir = dir
	}

	return cfg, nil
}

// Path returns the config file location. An absolute File wins over Dir.
func (c Config) Path() string {
	if filepath.IsAbs(c.File) {
		return c.File
	}
	return filepath.Join(c.Dir, c.File)
}

// LogPath returns where the TUI writes its log
func (c Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(filepath.Dir(c.Path()), LogFileName)
}

// NewLogger returns a text logger writing to w at the configured level
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

// OpenLog opens the TUI log for appending. The caller closes it.
func (c Config) OpenLog() (*os.File, error) {
	path := c.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
