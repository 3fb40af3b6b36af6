// Package toml stores the application configuration as a TOML file.
package toml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tomllib "github.com/BurntSushi/toml"
	"github.com/fwojciec/themepatch"
)

// Compile-time interface verification.
var _ themepatch.ConfigStore = (*ConfigStore)(nil)

// DefaultPath returns the configuration file location below the user's
// config directory, e.g. ~/.config/themepatch/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themepatch", "config.toml"), nil
}

// ConfigStore loads and saves a Config at a fixed path.
type ConfigStore struct {
	path string
}

// NewConfigStore creates a store for the file at path. An empty path means
// DefaultPath.
func NewConfigStore(path string) (*ConfigStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("locate config: %w", err)
		}
		path = p
	}
	return &ConfigStore{path: path}, nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.path
}

// Load reads the configuration. A missing file yields the defaults and an
// empty path. Settings absent from the file keep their default values.
func (s *ConfigStore) Load() (*themepatch.Config, string, error) {
	var cfg themepatch.Config
	if _, err := tomllib.DecodeFile(s.path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return themepatch.DefaultConfig(), "", nil
		}
		return nil, "", fmt.Errorf("parse %s: %w", s.path, err)
	}

	defaults := themepatch.DefaultConfig()
	if cfg.General.ThemesPath == "" {
		cfg.General.ThemesPath = defaults.General.ThemesPath
	}
	if cfg.General.SavePrefix == "" {
		cfg.General.SavePrefix = defaults.General.SavePrefix
	}
	if cfg.Extensions == nil {
		cfg.Extensions = defaults.Extensions
	}
	return &cfg, s.path, nil
}

// Save writes cfg, creating parent directories if needed.
func (s *ConfigStore) Save(cfg *themepatch.Config) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	if err := Encode(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes cfg to w in TOML.
func Encode(w io.Writer, cfg *themepatch.Config) error {
	if err := tomllib.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
