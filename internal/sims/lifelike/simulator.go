// Package lifelike implements a toroidal Life-like cellular automaton with a
// configurable birth/survival rule, automatic reseeding of settled grids and
// removal of small static structures.
package lifelike

import (
	"fmt"
	"log/slog"

	"lifelike/internal/core"
	pcore "lifelike/pkg/core"
)

// Simulator owns a grid together with its rule, generation counter and
// stability history. It is not safe for concurrent use; shells must serialize
// edits and steps.
type Simulator struct {
	cfg Config

	grid     *Grid
	rule     Rule
	gen      int
	reseeds  int
	detector StabilityDetector

	rng       *pcore.RNG
	generator *Generator
	pattern   Strategy
	forced    bool

	reaper       *Reaper
	autoReap     bool
	reapInterval int

	logger *slog.Logger
}

// New returns a simulation with the provided dimensions using defaults.
func New(w, h int) *Simulator {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a simulation configured from cfg and seeded with
// cfg.Seed.
func NewWithConfig(cfg Config) *Simulator {
	rule, err := ParseRule(cfg.Rule)
	if err != nil {
		rule = DefaultRule
	}
	s := &Simulator{
		cfg:          cfg,
		grid:         NewGrid(cfg.Width, cfg.Height),
		rule:         rule,
		reaper:       NewReaper(cfg.ReapMargin),
		autoReap:     cfg.AutoReap,
		reapInterval: max(cfg.ReapInterval, 1),
		logger:       slog.New(slog.DiscardHandler),
	}
	if cfg.Pattern != "" {
		if p, err := ParseStrategy(cfg.Pattern); err == nil {
			s.pattern, s.forced = p, true
		}
	}
	s.Reset(cfg.Seed)
	return s
}

// SetLogger routes diagnostic output to l.
func (s *Simulator) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	s.logger = l
}

// Name returns the simulation identifier.
func (s *Simulator) Name() string { return "lifelike" }

// Size returns the grid dimensions in cells.
func (s *Simulator) Size() core.Size { return core.Size{W: s.grid.w, H: s.grid.h} }

// Cells exposes the current grid values.
func (s *Simulator) Cells() []uint8 { return s.grid.Cells() }

// IsLive reports whether (x, y) is live. Cells outside the grid are dead.
func (s *Simulator) IsLive(x, y int) bool { return s.grid.Alive(x, y) }

// Generation returns the number of generations since the last reseed.
func (s *Simulator) Generation() int { return s.gen }

// Reseeds returns how many times the stability detector triggered a reseed.
func (s *Simulator) Reseeds() int { return s.reseeds }

// Population counts live cells.
func (s *Simulator) Population() int { return s.grid.Population() }

// Snapshot returns the sorted live-cell indices of the current grid.
func (s *Simulator) Snapshot() Snapshot { return AppendSnapshot(nil, s.grid) }

// Rule returns the active rule.
func (s *Simulator) Rule() Rule { return s.rule }

// SetRule parses and installs a new rule. On failure the previous rule stays
// active and the parse error is returned.
func (s *Simulator) SetRule(rule string) error {
	r, err := ParseRule(rule)
	if err != nil {
		s.logger.Debug("rule rejected", "input", rule, "active", s.rule.String())
		return err
	}
	s.rule = r
	s.logger.Debug("rule changed", "rule", r.String())
	return nil
}

// Reset reseeds the random source and paints a new pattern. A zero seed
// reuses the configured seed.
func (s *Simulator) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.rng = pcore.NewRNG(seed)
	s.generator = NewGenerator(s.rng)
	s.Reseed()
}

// Reseed clears the grid, paints a new pattern and restarts the generation
// count.
func (s *Simulator) Reseed() {
	s.grid.FillDead()
	strategy := s.pattern
	if s.forced {
		s.generator.Paint(s.grid, strategy)
	} else {
		strategy = s.generator.Generate(s.grid)
	}
	s.gen = 0
	s.logger.Debug("reseeded", "pattern", strategy.String(), "population", s.grid.Population())
}

// Step advances the simulation by one generation, or reseeds when the grid
// has settled.
func (s *Simulator) Step() {
	if s.detector.Check(s.grid, s.gen) {
		s.reseeds++
		s.logger.Debug("grid settled", "generation", s.gen, "reseeds", s.reseeds)
		s.Reseed()
		return
	}
	for y := 0; y < s.grid.h; y++ {
		for x := 0; x < s.grid.w; x++ {
			s.grid.setWorking(x, y, s.rule.Next(s.grid, x, y))
		}
	}
	if s.autoReap && s.gen%s.reapInterval == 0 {
		if n := s.reaper.Pass(s.grid); n > 0 {
			s.logger.Debug("auto reap", "generation", s.gen, "removed", n)
		}
	}
	s.grid.Swap()
	s.gen++
}

// Clear kills every cell.
func (s *Simulator) Clear() { s.grid.FillDead() }

// SetCell sets (x, y) to state (0 dead, anything else live).
func (s *Simulator) SetCell(x, y int, state uint8) error {
	return s.grid.Set(x, y, state)
}

// ToggleCell flips the state of (x, y).
func (s *Simulator) ToggleCell(x, y int) error {
	v, err := s.grid.Get(x, y)
	if err != nil {
		return err
	}
	return s.grid.Set(x, y, live-v)
}

// Capture records the live cells of the rectangle spanned by two corners.
func (s *Simulator) Capture(x0, y0, x1, y1 int) (Selection, error) {
	return Capture(s.grid, x0, y0, x1, y1)
}

// Paste stamps sel with its top-left corner at (x, y).
func (s *Simulator) Paste(x, y int, sel Selection) error {
	if err := Paste(s.grid, x, y, sel); err != nil {
		return fmt.Errorf("paste at (%d,%d): %w", x, y, err)
	}
	return nil
}

// Resize changes the grid dimensions, keeping the overlapping region.
func (s *Simulator) Resize(w, h int) {
	if w == s.grid.w && h == s.grid.h {
		return
	}
	s.grid.Resize(w, h)
	s.logger.Debug("resized", "w", s.grid.w, "h", s.grid.h)
}

// Reap removes isolated static shapes immediately and returns how many were
// removed.
func (s *Simulator) Reap() int {
	s.grid.CopyToWorking()
	n := s.reaper.Pass(s.grid)
	s.grid.Swap()
	s.logger.Debug("reap", "removed", n)
	return n
}

// AutoReap reports whether reaping runs during Step.
func (s *Simulator) AutoReap() bool { return s.autoReap }

// SetAutoReap enables or disables reaping during Step.
func (s *Simulator) SetAutoReap(on bool) { s.autoReap = on }

// ReapMargin returns the dead band width required around reaped shapes.
func (s *Simulator) ReapMargin() int { return s.reaper.Margin }

// ReapInterval returns how many generations pass between automatic reaps.
func (s *Simulator) ReapInterval() int { return s.reapInterval }
