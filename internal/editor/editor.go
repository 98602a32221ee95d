// Package editor holds the interactive state shared by the lifelike shells:
// the cursor, selection marking, clipboard, numbered slots, pause and tick
// cadence. Shells translate their input events into Editor calls and render
// from the accessors.
package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"lifelike/internal/core"
	"lifelike/internal/sims/lifelike"
	"lifelike/internal/store"
)

// PaintMode selects what Paint writes at the cursor.
type PaintMode int

const (
	PaintClear PaintMode = iota
	PaintSet
	PaintToggle
)

// Speed factors applied by Faster and Slower.
const (
	speedUp   = 1.1
	speedDown = 0.9
)

// Editor drives a Simulator on behalf of an interactive shell. It is not safe
// for concurrent use.
type Editor struct {
	sim   *lifelike.Simulator
	slots store.SlotStore
	clock *core.FixedStep

	cursor    lifelike.Point
	marking   bool
	markStart lifelike.Point
	clipboard lifelike.Selection

	paused   bool
	stepOnce bool
	status   string

	logger *slog.Logger
}

// New returns an editor over sim. Slots may be nil, in which case slot
// operations use an in-memory store.
func New(sim *lifelike.Simulator, slots store.SlotStore, interval time.Duration) *Editor {
	if slots == nil {
		slots = store.NewMemoryStore()
	}
	size := sim.Size()
	return &Editor{
		sim:    sim,
		slots:  slots,
		clock:  core.NewFixedStep(interval),
		cursor: lifelike.Point{X: size.W / 2, Y: size.H / 2},
		logger: slog.New(slog.DiscardHandler),
	}
}

// SetLogger routes diagnostic output to l.
func (e *Editor) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	e.logger = l
}

// Sim returns the edited simulator.
func (e *Editor) Sim() *lifelike.Simulator { return e.sim }

// Status returns the last user-facing message.
func (e *Editor) Status() string { return e.status }

func (e *Editor) report(err error) error {
	if err != nil {
		e.status = err.Error()
		e.logger.Debug("editor", "error", err)
	}
	return err
}

// Cursor returns the active cell.
func (e *Editor) Cursor() lifelike.Point { return e.cursor }

// MoveCursor shifts the cursor, wrapping around the grid edges.
func (e *Editor) MoveCursor(dx, dy int) {
	size := e.sim.Size()
	if size.W == 0 || size.H == 0 {
		return
	}
	e.cursor.X = ((e.cursor.X+dx)%size.W + size.W) % size.W
	e.cursor.Y = ((e.cursor.Y+dy)%size.H + size.H) % size.H
}

// SetCursor places the cursor, clamping to the grid. Shells call it with
// pointer positions.
func (e *Editor) SetCursor(x, y int) {
	size := e.sim.Size()
	e.cursor.X = min(max(x, 0), max(size.W-1, 0))
	e.cursor.Y = min(max(y, 0), max(size.H-1, 0))
}

// Paint writes to the cell under the cursor.
func (e *Editor) Paint(mode PaintMode) error {
	c := e.cursor
	switch mode {
	case PaintClear:
		return e.report(e.sim.SetCell(c.X, c.Y, 0))
	case PaintSet:
		return e.report(e.sim.SetCell(c.X, c.Y, 1))
	case PaintToggle:
		return e.report(e.sim.ToggleCell(c.X, c.Y))
	default:
		return e.report(fmt.Errorf("unknown paint mode %d", mode))
	}
}

// StartMark anchors a selection at the cursor. It does nothing while a mark
// is already in progress.
func (e *Editor) StartMark() {
	if e.marking {
		return
	}
	e.marking = true
	e.markStart = e.cursor
}

// Marking reports whether a selection is in progress.
func (e *Editor) Marking() bool { return e.marking }

// MarkRect returns the inclusive corners of the selection in progress.
func (e *Editor) MarkRect() (lifelike.Point, lifelike.Point, bool) {
	if !e.marking {
		return lifelike.Point{}, lifelike.Point{}, false
	}
	return e.markStart, e.cursor, true
}

// EndMark captures the rectangle between the mark anchor and the cursor into
// the clipboard.
func (e *Editor) EndMark() error {
	if !e.marking {
		return nil
	}
	e.marking = false
	sel, err := e.sim.Capture(e.markStart.X, e.markStart.Y, e.cursor.X, e.cursor.Y)
	if err != nil {
		return e.report(err)
	}
	e.clipboard = sel
	e.status = fmt.Sprintf("copied %dx%d", sel.W, sel.H)
	return nil
}

// ToggleMark starts a mark, or ends the one in progress.
func (e *Editor) ToggleMark() error {
	if e.marking {
		return e.EndMark()
	}
	e.StartMark()
	return nil
}

// Clipboard returns the current selection buffer.
func (e *Editor) Clipboard() lifelike.Selection { return e.clipboard }

// Paste stamps the clipboard with its top-left corner at the cursor.
func (e *Editor) Paste() error {
	return e.report(e.sim.Paste(e.cursor.X, e.cursor.Y, e.clipboard))
}

// StoreSlot saves the clipboard into slot n.
func (e *Editor) StoreSlot(ctx context.Context, n int) error {
	if e.clipboard.Empty() {
		return e.report(fmt.Errorf("store slot %d: %w", n, lifelike.ErrEmptySelection))
	}
	data, err := json.Marshal(e.clipboard)
	if err != nil {
		return e.report(fmt.Errorf("encode slot %d: %w", n, err))
	}
	if err := e.slots.Put(ctx, n, data); err != nil {
		return e.report(err)
	}
	e.status = fmt.Sprintf("stored slot %d", n)
	e.logger.Debug("slot stored", "slot", n, "w", e.clipboard.W, "h", e.clipboard.H)
	return nil
}

// LoadSlot replaces the clipboard with slot n and pastes it at the cursor.
func (e *Editor) LoadSlot(ctx context.Context, n int) error {
	slot, err := e.slots.Get(ctx, n)
	if err != nil {
		return e.report(err)
	}
	var sel lifelike.Selection
	if err := json.Unmarshal(slot.Data, &sel); err != nil {
		return e.report(fmt.Errorf("decode slot %d: %w", n, err))
	}
	e.clipboard = sel
	if err := e.Paste(); err != nil {
		return err
	}
	e.status = fmt.Sprintf("loaded slot %d", n)
	return nil
}

// Paused reports whether automatic stepping is suspended.
func (e *Editor) Paused() bool { return e.paused }

// TogglePause suspends or resumes automatic stepping.
func (e *Editor) TogglePause() {
	e.paused = !e.paused
	if !e.paused {
		e.clock.Reset()
	}
}

// SingleStep pauses and requests exactly one generation on the next Tick.
func (e *Editor) SingleStep() {
	e.paused = true
	e.stepOnce = true
}

// Tick advances the simulation when a single step is pending or when running
// and the interval has elapsed. It reports whether a generation was computed.
func (e *Editor) Tick() bool {
	if e.stepOnce {
		e.stepOnce = false
		e.sim.Step()
		return true
	}
	if e.paused || !e.clock.ShouldStep() {
		return false
	}
	e.sim.Step()
	return true
}

// Interval returns the time between generations while running.
func (e *Editor) Interval() time.Duration { return e.clock.Interval() }

// Faster shortens the step interval.
func (e *Editor) Faster() { e.clock.Rescale(speedUp) }

// Slower lengthens the step interval.
func (e *Editor) Slower() { e.clock.Rescale(speedDown) }

// Clear kills every cell.
func (e *Editor) Clear() { e.sim.Clear() }

// NewPattern paints a fresh seed pattern.
func (e *Editor) NewPattern() { e.sim.Reseed() }

// Reap removes isolated static shapes now.
func (e *Editor) Reap() int {
	n := e.sim.Reap()
	e.status = fmt.Sprintf("reaped %d", n)
	return n
}

// ToggleAutoReap flips automatic reaping and returns the new state.
func (e *Editor) ToggleAutoReap() bool {
	on := !e.sim.AutoReap()
	e.sim.SetAutoReap(on)
	e.status = fmt.Sprintf("auto reap %v", on)
	return on
}

// SetRule installs a rule, keeping the previous one on error.
func (e *Editor) SetRule(rule string) error {
	if err := e.sim.SetRule(rule); err != nil {
		return e.report(err)
	}
	e.status = "rule " + e.sim.Rule().String()
	return nil
}

// Resize changes the grid dimensions and pulls the cursor and any mark back
// inside.
func (e *Editor) Resize(w, h int) {
	e.sim.Resize(w, h)
	e.SetCursor(e.cursor.X, e.cursor.Y)
	if e.marking {
		e.markStart.X = min(e.markStart.X, max(w-1, 0))
		e.markStart.Y = min(e.markStart.Y, max(h-1, 0))
	}
}
