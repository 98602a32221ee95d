package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LIFELIKE_WIDTH", "LIFELIKE_HEIGHT", "LIFELIKE_SEED", "LIFELIKE_RULE",
		"LIFELIKE_PRESET", "LIFELIKE_AUTO_REAP", "LIFELIKE_PATTERN",
		"LIFELIKE_INTERVAL", "LIFELIKE_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	config := Default()

	if config.Sim.Width != 128 || config.Sim.Height != 96 {
		t.Errorf("expected 128x96, got %dx%d", config.Sim.Width, config.Sim.Height)
	}
	if config.Sim.Rule != "B3/S23" {
		t.Errorf("expected rule B3/S23, got '%s'", config.Sim.Rule)
	}
	if config.Sim.ReapInterval != 10 || config.Sim.ReapMargin != 2 {
		t.Errorf("unexpected reap defaults %d/%d", config.Sim.ReapInterval, config.Sim.ReapMargin)
	}
	if config.Display.Interval != 100*time.Millisecond {
		t.Errorf("expected Interval 100ms, got %v", config.Display.Interval)
	}
	if config.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", config.Logging.Level)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
sim:
  width: 64
  seed: 7
  preset: highlife
  auto_reap: true
  pattern: xmirror

display:
  interval: 250ms
  cell_size: 4

store:
  path: ${LIFELIKE_TEST_DIR}/slots.db

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("LIFELIKE_TEST_DIR", tmpDir)

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if config.Sim.Width != 64 || config.Sim.Height != 96 {
		t.Errorf("expected 64x96 (height default kept), got %dx%d", config.Sim.Width, config.Sim.Height)
	}
	if config.Sim.Seed != 7 || !config.Sim.AutoReap || config.Sim.Pattern != "xmirror" {
		t.Errorf("unexpected sim section %+v", config.Sim)
	}
	if config.Display.Interval != 250*time.Millisecond || config.Display.CellSize != 4 {
		t.Errorf("unexpected display section %+v", config.Display)
	}
	if config.Store.Path != filepath.Join(tmpDir, "slots.db") {
		t.Errorf("expected expanded store path, got '%s'", config.Store.Path)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("expected level debug, got '%s'", config.Logging.Level)
	}

	sim := config.Lifelike()
	if sim.Rule != "B36/S23" {
		t.Errorf("preset not resolved, rule = %s", sim.Rule)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("sim: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(configPath); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected read error")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LIFELIKE_WIDTH", "40")
	t.Setenv("LIFELIKE_RULE", "B3678/S34678")
	t.Setenv("LIFELIKE_AUTO_REAP", "1")
	t.Setenv("LIFELIKE_INTERVAL", "20ms")
	t.Setenv("LIFELIKE_STORE", "")

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if config.Sim.Width != 40 || config.Sim.Rule != "B3678/S34678" || !config.Sim.AutoReap {
		t.Errorf("env overrides not applied: %+v", config.Sim)
	}
	if config.Display.Interval != 20*time.Millisecond {
		t.Errorf("expected interval 20ms, got %v", config.Display.Interval)
	}
	if config.Store.Path != "" {
		t.Errorf("expected in-memory store, got '%s'", config.Store.Path)
	}

	t.Setenv("LIFELIKE_SEED", "not-a-number")
	if _, err := Load(""); err == nil {
		t.Error("expected error for malformed LIFELIKE_SEED")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"bad size", func(c *Config) { c.Sim.Width = 0 }, "sim size"},
		{"bad rule", func(c *Config) { c.Sim.Rule = "B9/S1" }, "invalid rule"},
		{"bad preset", func(c *Config) { c.Sim.Preset = "nope" }, "unknown preset"},
		{"bad pattern", func(c *Config) { c.Sim.Pattern = "spiral" }, "spiral"},
		{"bad interval", func(c *Config) { c.Display.Interval = 0 }, "interval"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
		{"bad reap interval", func(c *Config) { c.Sim.ReapInterval = 0 }, "reap_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)
			err := config.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	config := Default()
	config.Sim.Preset = "maze"
	config.ApplyOverrides(map[string]string{"w": "20", "rule": "B36/S23", "auto_reap": "true"})
	if config.Sim.Width != 20 || !config.Sim.AutoReap {
		t.Errorf("overrides not applied: %+v", config.Sim)
	}
	if config.Sim.Preset != "" || config.Lifelike().Rule != "B36/S23" {
		t.Errorf("explicit rule should replace the preset, got preset=%q rule=%q", config.Sim.Preset, config.Lifelike().Rule)
	}
}
