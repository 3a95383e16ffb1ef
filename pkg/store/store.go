// Package store maps the button configuration to a single YAML file.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lumi/lumi-bar/pkg/models"
	"github.com/lumi/lumi-bar/pkg/signals"
)

const (
	AppDirName     = "LUMI"
	ConfigFileName = "lumi-bar.yaml"
)

// DefaultDir returns the per-user application data directory
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

// Store persists a models.Config. Saves are atomic: content goes to a temp
// file next to the target which is then renamed over it.
type Store struct {
	mu     sync.Mutex
	path   string
	hub    *signals.Hub
	logger *slog.Logger

	// last content written by Save
	written []byte
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a store for path. Successful saves fire hub.Committed.
func New(path string, hub *signals.Hub, opts ...Option) *Store {
	s := &Store{
		path:   filepath.Clean(path),
		hub:    hub,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "store", "path", s.path)
	return s
}

// Path returns the config file path
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the config file is present
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads and decodes the config file. The result is order-normalized.
func (s *Store) Load() (*models.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*models.Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read config %s: %w", s.path, err)
	}

	var cfg models.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	if len(cfg.Buttons) == 0 {
		return nil, ErrEmptyConfig
	}

	// Hand-edited records may lack an ID. The new one reaches disk with the next save.
	for i := range cfg.Buttons {
		if cfg.Buttons[i].ID == "" {
			cfg.Buttons[i].ID = models.NewID()
			s.logger.Warn("assigned ID to button without one", "name", cfg.Buttons[i].Name, "id", cfg.Buttons[i].ID)
		}
	}

	cfg.NormalizeOrder()
	return &cfg, nil
}

// LoadOrCreateDefault returns the stored config. A missing file is replaced by
// the built-in default, which is written immediately. An unreadable or empty
// file also yields the default but is left untouched on disk. It never fails.
func (s *Store) LoadOrCreateDefault() *models.Config {
	s.mu.Lock()
	cfg, err := s.load()
	s.mu.Unlock()

	switch {
	case err == nil:
		return cfg

	case errors.Is(err, ErrNotFound):
		cfg = models.DefaultConfig()
		if err := s.Save(cfg); err != nil {
			s.logger.Warn("failed to persist default config", "error", err)
		} else {
			s.logger.Info("created default config")
		}
		return cfg

	default:
		s.logger.Warn("config unusable, using defaults for this session", "error", err)
		return models.DefaultConfig()
	}
}

// Save normalizes cfg's order in place, writes it atomically and fires
// Committed.
func (s *Store) Save(cfg *models.Config) error {
	if cfg == nil {
		return errors.New("cannot save nil config")
	}
	cfg.NormalizeOrder()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	s.mu.Lock()
	err = s.writeAtomic(data)
	if err == nil {
		s.written = data
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.logger.Debug("config saved", "buttons", len(cfg.Buttons))
	s.hub.NotifyCommitted()
	return nil
}

func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set config permissions: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace config: %w", err)
	}

	return nil
}
