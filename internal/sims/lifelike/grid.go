package lifelike

import (
	"fmt"

	"lifelike/internal/core"
)

const (
	dead uint8 = 0
	live uint8 = 1
)

// Grid is a toroidal double-buffered field of binary cells. The current
// buffer is read by rule evaluation and rendering; the working buffer
// receives the next generation. Swap exchanges the roles without copying.
type Grid struct {
	w, h int
	bufs [2]*core.ByteGrid
	cur  int
}

// NewGrid allocates both buffers with identical dimensions.
func NewGrid(w, h int) *Grid {
	g := &Grid{}
	g.alloc(w, h)
	return g
}

func (g *Grid) alloc(w, h int) {
	g.bufs[0] = core.NewByteGrid(w, h)
	g.bufs[1] = core.NewByteGrid(w, h)
	g.w, g.h = g.bufs[0].W, g.bufs[0].H
	g.cur = 0
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Empty reports whether the grid has no cells at all.
func (g *Grid) Empty() bool { return g.w == 0 || g.h == 0 }

func (g *Grid) current() *core.ByteGrid { return g.bufs[g.cur] }

func (g *Grid) working() *core.ByteGrid { return g.bufs[1-g.cur] }

// Cells exposes the current buffer in row-major order.
func (g *Grid) Cells() []uint8 { return g.current().Cells() }

// Get returns the state of (x, y) in the current buffer.
func (g *Grid) Get(x, y int) (uint8, error) {
	cur := g.current()
	if !cur.InBounds(x, y) {
		return dead, fmt.Errorf("get (%d,%d) on %dx%d grid: %w", x, y, g.w, g.h, ErrOutOfBounds)
	}
	return cur.Cells()[cur.Index(x, y)], nil
}

// Set writes v (normalized to 0/1) at (x, y) in the current buffer.
func (g *Grid) Set(x, y int, v uint8) error {
	cur := g.current()
	if !cur.InBounds(x, y) {
		return fmt.Errorf("set (%d,%d) on %dx%d grid: %w", x, y, g.w, g.h, ErrOutOfBounds)
	}
	cur.Cells()[cur.Index(x, y)] = normalize(v)
	return nil
}

// Alive reports whether (x, y) is live; coordinates outside the grid are dead.
func (g *Grid) Alive(x, y int) bool {
	cur := g.current()
	return cur.InBounds(x, y) && cur.Cells()[cur.Index(x, y)] != dead
}

// Wrapped reads the current buffer at (x, y) modulo the grid extent.
func (g *Grid) Wrapped(x, y int) uint8 {
	if g.Empty() {
		return dead
	}
	cur := g.current()
	x, y = cur.Wrap(x, y)
	return cur.Cells()[cur.Index(x, y)]
}

// paint sets (x, y) live in the current buffer, dropping writes outside the
// grid. Pattern generators rely on this to stay inside the extent.
func (g *Grid) paint(x, y int) {
	cur := g.current()
	if cur.InBounds(x, y) {
		cur.Cells()[cur.Index(x, y)] = live
	}
}

func (g *Grid) setWorking(x, y int, v uint8) {
	wb := g.working()
	wb.Cells()[wb.Index(x, y)] = v
}

func (g *Grid) clearWorkingWrapped(x, y int) {
	wb := g.working()
	x, y = wb.Wrap(x, y)
	wb.Cells()[wb.Index(x, y)] = dead
}

// Swap makes the working buffer current.
func (g *Grid) Swap() { g.cur = 1 - g.cur }

// CopyToWorking mirrors the current buffer into the working buffer.
func (g *Grid) CopyToWorking() {
	copy(g.working().Cells(), g.current().Cells())
}

// FillDead zeroes the current buffer.
func (g *Grid) FillDead() { g.current().Clear() }

// Resize reallocates both buffers, keeping the overlap of the current buffer
// and leaving new cells dead.
func (g *Grid) Resize(w, h int) {
	old := g.current()
	g.alloc(w, h)
	g.current().CopyFrom(old)
}

// Population counts live cells in the current buffer.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.current().Cells() {
		if c != dead {
			n++
		}
	}
	return n
}

func normalize(v uint8) uint8 {
	if v != dead {
		return live
	}
	return dead
}
