// Package config loads settings for the ctrlc command.
//
// Files ending in .yaml or .yml are decoded with gopkg.in/yaml.v3; anything
// else is TOML. Missing keys keep their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/srozzo/go-ctrlc/internal/logger"
)

// Modes accepted by Config.Mode.
const (
	ModeHandler = "handler"
	ModeWaiter  = "waiter"
)

var ErrInvalid = errors.New("config: invalid")

// Config is the ctrlc command's configuration.
type Config struct {
	// Signals lists signal names as accepted by ctrlc.ParseSignal.
	Signals []string `toml:"signals" yaml:"signals"`
	// Mode selects SetHandler ("handler") or GetWaiter ("waiter").
	Mode string `toml:"mode" yaml:"mode"`
	// Count is how many notifications to observe before exiting.
	Count int `toml:"count" yaml:"count"`

	Log Log `toml:"log" yaml:"log"`
}

// Log configures logging. An empty File means stderr.
type Log struct {
	Level     string `toml:"level" yaml:"level"`
	File      string `toml:"file" yaml:"file"`
	MaxSizeMB int    `toml:"max_size_mb" yaml:"max_size_mb"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Signals: []string{"SIGINT"},
		Mode:    ModeHandler,
		Count:   1,
		Log: Log{
			Level:     "warn",
			MaxSizeMB: 10,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks fields that do not depend on the platform. Signal names
// are checked by the caller.
func (c *Config) Validate() error {
	if len(c.Signals) == 0 {
		return fmt.Errorf("%w: no signals", ErrInvalid)
	}
	if c.Mode != ModeHandler && c.Mode != ModeWaiter {
		return fmt.Errorf("%w: mode %q (want %s or %s)", ErrInvalid, c.Mode, ModeHandler, ModeWaiter)
	}
	if c.Count < 1 {
		return fmt.Errorf("%w: count %d must be at least 1", ErrInvalid, c.Count)
	}
	if _, ok := logger.ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	if c.Log.File != "" && c.Log.MaxSizeMB < 1 {
		return fmt.Errorf("%w: log max_size_mb %d", ErrInvalid, c.Log.MaxSizeMB)
	}
	return nil
}
