// Package config provides configuration loading for the lifelike commands.
// It supports loading from YAML files and LIFELIKE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"lifelike/internal/sims/lifelike"

	"gopkg.in/yaml.v3"
)

// Config contains all lifelike configuration settings.
type Config struct {
	Sim     SimConfig     `yaml:"sim"`
	Display DisplayConfig `yaml:"display"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

// SimConfig configures the simulator.
type SimConfig struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`

	// Rule is a B<digits>/S<digits> string. Preset, when set, wins over Rule.
	Rule   string `yaml:"rule"`
	Preset string `yaml:"preset,omitempty"`

	AutoReap     bool `yaml:"auto_reap"`
	ReapInterval int  `yaml:"reap_interval"`
	ReapMargin   int  `yaml:"reap_margin"`

	// Pattern forces a seeding strategy: random, xy, xywalk or xmirror.
	Pattern string `yaml:"pattern,omitempty"`
}

// DisplayConfig configures the interactive shells.
type DisplayConfig struct {
	// Interval is the time between generations while running.
	Interval time.Duration `yaml:"interval"`
	// Scale is the window pixel multiplier of the GUI.
	Scale int `yaml:"scale"`
	// CellSize is the GUI cell edge in logical pixels.
	CellSize int `yaml:"cell_size"`
	// HUDWidth is the width of the GUI parameter panel; 0 hides it.
	HUDWidth int `yaml:"hud_width"`
}

// StoreConfig configures slot persistence.
type StoreConfig struct {
	// Path is the SQLite database file. Empty keeps slots in memory.
	Path string `yaml:"path"`
}

// LoggingConfig configures operational logging.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", "trace", "warn" or "error".
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	sim := lifelike.DefaultConfig()
	return &Config{
		Sim: SimConfig{
			Width:        sim.Width,
			Height:       sim.Height,
			Seed:         sim.Seed,
			Rule:         sim.Rule,
			AutoReap:     sim.AutoReap,
			ReapInterval: sim.ReapInterval,
			ReapMargin:   sim.ReapMargin,
		},
		Display: DisplayConfig{
			Interval: 100 * time.Millisecond,
			Scale:    1,
			CellSize: 6,
			HUDWidth: 220,
		},
		Store: StoreConfig{
			Path: DefaultStorePath(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultDir returns ~/.lifelike, or "" when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lifelike")
}

// DefaultStorePath returns ~/.lifelike/slots.db, or "" (in-memory slots) when
// the home directory is unknown.
func DefaultStorePath() string {
	dir := DefaultDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "slots.db")
}

// Load loads configuration and applies environment variable overrides.
// Order: defaults -> file -> environment variables. An empty path reads
// ~/.lifelike/config.yaml when it exists.
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		if dir := DefaultDir(); dir != "" {
			candidate := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file. Keys missing
// from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	config.Store.Path = os.ExpandEnv(config.Store.Path)
	return config, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Sim.Width <= 0 || c.Sim.Height <= 0 {
		errs = append(errs, fmt.Errorf("sim size must be positive, got %dx%d", c.Sim.Width, c.Sim.Height))
	}
	if c.Sim.Preset != "" {
		if _, ok := lifelike.LookupPreset(c.Sim.Preset); !ok {
			errs = append(errs, fmt.Errorf("unknown preset: %s", c.Sim.Preset))
		}
	} else if _, err := lifelike.ParseRule(c.Sim.Rule); err != nil {
		errs = append(errs, err)
	}
	if c.Sim.ReapInterval <= 0 {
		errs = append(errs, fmt.Errorf("reap_interval must be positive, got %d", c.Sim.ReapInterval))
	}
	if c.Sim.ReapMargin < 0 {
		errs = append(errs, fmt.Errorf("reap_margin must be non-negative, got %d", c.Sim.ReapMargin))
	}
	if c.Sim.Pattern != "" {
		if _, err := lifelike.ParseStrategy(c.Sim.Pattern); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Display.Interval <= 0 {
		errs = append(errs, fmt.Errorf("display interval must be positive, got %v", c.Display.Interval))
	}
	if c.Display.Scale <= 0 || c.Display.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("display scale and cell_size must be positive, got %d and %d", c.Display.Scale, c.Display.CellSize))
	}
	if c.Display.HUDWidth < 0 {
		errs = append(errs, fmt.Errorf("hud_width must be non-negative, got %d", c.Display.HUDWidth))
	}
	validLevels := map[string]bool{"": true, "info": true, "debug": true, "trace": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Errorf("invalid log level: %s (valid: info, debug, trace, warn, error)", c.Logging.Level))
	}
	return errors.Join(errs...)
}

// Lifelike converts the sim section into a simulator configuration, resolving
// the preset to its rule.
func (c *Config) Lifelike() lifelike.Config {
	rule := c.Sim.Rule
	if p, ok := lifelike.LookupPreset(c.Sim.Preset); ok {
		rule = p.Rule
	}
	return lifelike.Config{
		Width:        c.Sim.Width,
		Height:       c.Sim.Height,
		Seed:         c.Sim.Seed,
		Rule:         rule,
		AutoReap:     c.Sim.AutoReap,
		ReapInterval: c.Sim.ReapInterval,
		ReapMargin:   c.Sim.ReapMargin,
		Pattern:      c.Sim.Pattern,
	}
}

// ApplyOverrides applies key=value settings in the simulator's flag-style
// keys (w, h, seed, rule, auto_reap, reap_interval, reap_margin, pattern).
func (c *Config) ApplyOverrides(m map[string]string) {
	sim := c.Lifelike().WithOverrides(m)
	if _, ok := m["rule"]; ok && sim.Rule == m["rule"] {
		c.Sim.Preset = ""
	}
	c.Sim.Width, c.Sim.Height = sim.Width, sim.Height
	c.Sim.Seed = sim.Seed
	c.Sim.Rule = sim.Rule
	c.Sim.AutoReap = sim.AutoReap
	c.Sim.ReapInterval = sim.ReapInterval
	c.Sim.ReapMargin = sim.ReapMargin
	c.Sim.Pattern = sim.Pattern
}

// applyEnvOverrides applies LIFELIKE_* environment variables to the config.
func applyEnvOverrides(config *Config) error {
	if v := os.Getenv("LIFELIKE_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LIFELIKE_WIDTH: %w", err)
		}
		config.Sim.Width = n
	}
	if v := os.Getenv("LIFELIKE_HEIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LIFELIKE_HEIGHT: %w", err)
		}
		config.Sim.Height = n
	}
	if v := os.Getenv("LIFELIKE_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("LIFELIKE_SEED: %w", err)
		}
		config.Sim.Seed = n
	}
	if v := os.Getenv("LIFELIKE_RULE"); v != "" {
		config.Sim.Rule = v
		config.Sim.Preset = ""
	}
	if v := os.Getenv("LIFELIKE_PRESET"); v != "" {
		config.Sim.Preset = v
	}
	if v := os.Getenv("LIFELIKE_AUTO_REAP"); v != "" {
		config.Sim.AutoReap = v == "true" || v == "1"
	}
	if v := os.Getenv("LIFELIKE_PATTERN"); v != "" {
		config.Sim.Pattern = v
	}
	if v := os.Getenv("LIFELIKE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LIFELIKE_INTERVAL: %w", err)
		}
		config.Display.Interval = d
	}
	if v, ok := os.LookupEnv("LIFELIKE_STORE"); ok {
		config.Store.Path = v
	}
	if v := os.Getenv("LIFELIKE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	return nil
}
