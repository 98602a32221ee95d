package lifelike

import "strconv"

// Config controls the Life-like simulation.
type Config struct {
	Width  int
	Height int

	Seed int64

	// Rule is a B<digits>/S<digits> string; invalid values fall back to B3/S23.
	Rule string

	AutoReap     bool
	ReapInterval int
	ReapMargin   int

	// Pattern forces a seeding strategy by name; empty means weighted random.
	Pattern string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:        128,
		Height:       96,
		Seed:         42,
		Rule:         DefaultRule.String(),
		AutoReap:     false,
		ReapInterval: 10,
		ReapMargin:   DefaultReapMargin,
	}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().WithOverrides(cfg)
}

// WithOverrides returns a copy of c with the recognized keys of m applied.
// Unparseable or out-of-range values are ignored.
func (c Config) WithOverrides(m map[string]string) Config {
	if m == nil {
		return c
	}
	if v, ok := m["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := m["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := m["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := m["rule"]; ok {
		if _, err := ParseRule(v); err == nil {
			c.Rule = v
		}
	}
	if v, ok := m["auto_reap"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.AutoReap = parsed
		}
	}
	if v, ok := m["reap_interval"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ReapInterval = parsed
		}
	}
	if v, ok := m["reap_margin"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.ReapMargin = parsed
		}
	}
	if v, ok := m["pattern"]; ok {
		if _, err := ParseStrategy(v); err == nil || v == "" {
			c.Pattern = v
		}
	}
	return c
}
