package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"lifelike/internal/sims/lifelike"
	"lifelike/internal/store"
)

func newEditor(t *testing.T, w, h int) *Editor {
	t.Helper()
	sim := lifelike.New(w, h)
	sim.Clear()
	return New(sim, store.NewMemoryStore(), time.Millisecond)
}

func TestCursorWrapsAndClamps(t *testing.T) {
	e := newEditor(t, 10, 8)
	e.SetCursor(0, 0)
	e.MoveCursor(-1, -1)
	if got := e.Cursor(); got != (lifelike.Point{X: 9, Y: 7}) {
		t.Fatalf("Cursor() = %+v, want (9,7)", got)
	}
	e.MoveCursor(1, 1)
	if got := e.Cursor(); got != (lifelike.Point{X: 0, Y: 0}) {
		t.Fatalf("Cursor() = %+v, want (0,0)", got)
	}
	e.SetCursor(50, -4)
	if got := e.Cursor(); got != (lifelike.Point{X: 9, Y: 0}) {
		t.Fatalf("SetCursor clamp = %+v, want (9,0)", got)
	}
}

func TestPaintModes(t *testing.T) {
	e := newEditor(t, 6, 6)
	e.SetCursor(2, 3)
	sim := e.Sim()

	steps := []struct {
		mode PaintMode
		want bool
	}{
		{PaintSet, true},
		{PaintSet, true},
		{PaintToggle, false},
		{PaintToggle, true},
		{PaintClear, false},
	}
	for i, s := range steps {
		if err := e.Paint(s.mode); err != nil {
			t.Fatalf("step %d: Paint() error = %v", i, err)
		}
		if got := sim.IsLive(2, 3); got != s.want {
			t.Fatalf("step %d: live=%v, want %v", i, got, s.want)
		}
	}
	if err := e.Paint(PaintMode(7)); err == nil {
		t.Fatal("unknown paint mode should fail")
	}
}

func TestMarkCopyAndPaste(t *testing.T) {
	e := newEditor(t, 20, 20)
	sim := e.Sim()
	for _, c := range [][2]int{{2, 2}, {3, 2}, {4, 3}} {
		_ = sim.SetCell(c[0], c[1], 1)
	}

	e.SetCursor(4, 3)
	e.StartMark()
	e.SetCursor(2, 2)
	a, b, ok := e.MarkRect()
	if !ok || a != (lifelike.Point{X: 4, Y: 3}) || b != (lifelike.Point{X: 2, Y: 2}) {
		t.Fatalf("MarkRect() = %v %v %v", a, b, ok)
	}
	if err := e.EndMark(); err != nil {
		t.Fatalf("EndMark() error = %v", err)
	}
	if e.Marking() {
		t.Fatal("mark should have ended")
	}
	if clip := e.Clipboard(); clip.W != 3 || clip.H != 2 || len(clip.Offsets) != 3 {
		t.Fatalf("Clipboard() = %+v", clip)
	}

	e.SetCursor(10, 10)
	if err := e.Paste(); err != nil {
		t.Fatalf("Paste() error = %v", err)
	}
	for _, c := range [][2]int{{10, 10}, {11, 10}, {12, 11}} {
		if !sim.IsLive(c[0], c[1]) {
			t.Fatalf("pasted cell (%d,%d) not live", c[0], c[1])
		}
	}
	if sim.Population() != 6 {
		t.Fatalf("Population() = %d, want 6", sim.Population())
	}
}

func TestToggleMark(t *testing.T) {
	e := newEditor(t, 8, 8)
	e.SetCursor(1, 1)
	_ = e.ToggleMark()
	if !e.Marking() {
		t.Fatal("first toggle should start a mark")
	}
	e.MoveCursor(1, 0)
	_ = e.ToggleMark()
	if e.Marking() || e.Clipboard().W != 2 {
		t.Fatalf("second toggle should capture, clipboard %+v", e.Clipboard())
	}
}

func TestPasteWithEmptyClipboard(t *testing.T) {
	e := newEditor(t, 8, 8)
	if err := e.Paste(); !errors.Is(err, lifelike.ErrEmptySelection) {
		t.Fatalf("Paste() error = %v, want ErrEmptySelection", err)
	}
	if e.Status() == "" {
		t.Fatal("failed paste should set a status message")
	}
}

func TestSlots(t *testing.T) {
	ctx := context.Background()
	e := newEditor(t, 16, 16)
	sim := e.Sim()

	if err := e.StoreSlot(ctx, 1); !errors.Is(err, lifelike.ErrEmptySelection) {
		t.Fatalf("StoreSlot(empty clipboard) error = %v", err)
	}
	if err := e.LoadSlot(ctx, 2); !errors.Is(err, store.ErrSlotEmpty) {
		t.Fatalf("LoadSlot(empty) error = %v", err)
	}

	_ = sim.SetCell(0, 0, 1)
	_ = sim.SetCell(1, 1, 1)
	e.SetCursor(0, 0)
	e.StartMark()
	e.SetCursor(1, 1)
	if err := e.EndMark(); err != nil {
		t.Fatal(err)
	}
	if err := e.StoreSlot(ctx, 4); err != nil {
		t.Fatalf("StoreSlot() error = %v", err)
	}

	sim.Clear()
	e.SetCursor(7, 7)
	if err := e.LoadSlot(ctx, 4); err != nil {
		t.Fatalf("LoadSlot() error = %v", err)
	}
	if !sim.IsLive(7, 7) || !sim.IsLive(8, 8) || sim.Population() != 2 {
		t.Fatalf("slot paste wrong, population %d", sim.Population())
	}
	if err := e.StoreSlot(ctx, 10); !errors.Is(err, store.ErrInvalidSlot) {
		t.Fatalf("StoreSlot(10) error = %v, want ErrInvalidSlot", err)
	}
}

func TestPauseAndSingleStep(t *testing.T) {
	e := newEditor(t, 8, 8)
	sim := e.Sim()

	if !e.Tick() {
		t.Fatal("first tick while running should step")
	}
	if sim.Generation() != 1 {
		t.Fatalf("Generation() = %d, want 1", sim.Generation())
	}

	e.TogglePause()
	time.Sleep(5 * time.Millisecond)
	if e.Tick() {
		t.Fatal("paused editor must not step")
	}
	if sim.Generation() != 1 {
		t.Fatalf("pause changed the simulation, generation %d", sim.Generation())
	}

	e.SingleStep()
	if !e.Tick() || sim.Generation() != 2 {
		t.Fatalf("single step: generation %d, want 2", sim.Generation())
	}
	if e.Tick() {
		t.Fatal("single step must run exactly once")
	}
	if !e.Paused() {
		t.Fatal("single step should leave the editor paused")
	}
}

func TestSpeedControls(t *testing.T) {
	sim := lifelike.New(4, 4)
	e := New(sim, nil, 100*time.Millisecond)
	e.Faster()
	if e.Interval() >= 100*time.Millisecond {
		t.Fatalf("Faster() interval = %v", e.Interval())
	}
	e.Slower()
	e.Slower()
	if e.Interval() <= 90*time.Millisecond {
		t.Fatalf("Slower() interval = %v", e.Interval())
	}
}

func TestCommands(t *testing.T) {
	e := newEditor(t, 16, 16)
	sim := e.Sim()

	if on := e.ToggleAutoReap(); !on || !sim.AutoReap() {
		t.Fatal("ToggleAutoReap should enable reaping")
	}
	if err := e.SetRule("B36/S23"); err != nil {
		t.Fatalf("SetRule() error = %v", err)
	}
	if err := e.SetRule("nope"); !errors.Is(err, lifelike.ErrInvalidRule) {
		t.Fatalf("SetRule(nope) error = %v", err)
	}
	if sim.Rule().String() != "B36/S23" {
		t.Fatalf("rule changed on error: %s", sim.Rule())
	}

	for _, c := range [][2]int{{4, 4}, {5, 4}, {4, 5}, {5, 5}} {
		_ = sim.SetCell(c[0], c[1], 1)
	}
	if n := e.Reap(); n != 1 || sim.Population() != 0 {
		t.Fatalf("Reap() = %d, population %d", n, sim.Population())
	}

	e.NewPattern()
	if sim.Generation() != 0 {
		t.Fatalf("NewPattern should restart the generation count")
	}
	e.Clear()
	if sim.Population() != 0 {
		t.Fatal("Clear should empty the grid")
	}
}

func TestResizeClampsCursor(t *testing.T) {
	e := newEditor(t, 20, 20)
	e.SetCursor(19, 19)
	e.StartMark()
	e.Resize(10, 5)
	if got := e.Cursor(); got != (lifelike.Point{X: 9, Y: 4}) {
		t.Fatalf("Cursor() = %+v, want (9,4)", got)
	}
	if a, _, _ := e.MarkRect(); a != (lifelike.Point{X: 9, Y: 4}) {
		t.Fatalf("mark anchor = %+v, want (9,4)", a)
	}
	if s := e.Sim().Size(); s.W != 10 || s.H != 5 {
		t.Fatalf("Size() = %+v", s)
	}
}
