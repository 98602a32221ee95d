package lifelike

// Shape is an immutable pattern of live (1) and dead (0) cells.
type Shape struct {
	Name string
	rows []string
}

// NewShape builds a shape from equal-length rows of '0' and '1'.
func NewShape(name string, rows ...string) Shape {
	return Shape{Name: name, rows: rows}
}

// Width is the number of columns of the bounding box.
func (s Shape) Width() int {
	if len(s.rows) == 0 {
		return 0
	}
	return len(s.rows[0])
}

// Height is the number of rows of the bounding box.
func (s Shape) Height() int { return len(s.rows) }

// At returns the state of the shape at (x, y) within its bounding box.
func (s Shape) At(x, y int) uint8 {
	if s.rows[y][x] == '1' {
		return live
	}
	return dead
}

// ShapeLibrary is the ordered catalog of static structures the reaper removes.
var ShapeLibrary = []Shape{
	NewShape("block", "11", "11"),
	NewShape("bar-3", "111"),
	NewShape("bar-3-vertical", "1", "1", "1"),
	NewShape("ring-3x3", "010", "101", "010"),
	NewShape("elongated-hex-4", "010", "101", "101", "010"),
	NewShape("hex-6", "0110", "1001", "0110"),
}

// DefaultReapMargin is the width of the dead band required around a shape.
const DefaultReapMargin = 2

// Reaper removes isolated instances of library shapes.
type Reaper struct {
	Shapes []Shape
	Margin int
}

// NewReaper returns a reaper over ShapeLibrary with the given margin.
func NewReaper(margin int) *Reaper {
	if margin < 0 {
		margin = 0
	}
	return &Reaper{Shapes: ShapeLibrary, Margin: margin}
}

// Matches reports whether shape sits at origin (x, y) of the current buffer
// with every cell of the surrounding margin band dead. Lookups wrap.
func (r *Reaper) Matches(g *Grid, x, y int, shape Shape) bool {
	sw, sh := shape.Width(), shape.Height()
	for dy := -r.Margin; dy < sh+r.Margin; dy++ {
		for dx := -r.Margin; dx < sw+r.Margin; dx++ {
			state := g.Wrapped(x+dx, y+dy)
			if dx < 0 || dy < 0 || dx >= sw || dy >= sh {
				if state != dead {
					return false
				}
				continue
			}
			if state != shape.At(dx, dy) {
				return false
			}
		}
	}
	return true
}

func erase(g *Grid, x, y int, shape Shape) {
	for dy := 0; dy < shape.Height(); dy++ {
		for dx := 0; dx < shape.Width(); dx++ {
			g.clearWorkingWrapped(x+dx, y+dy)
		}
	}
}

// Pass scans every origin for every shape, in library order, and clears
// matches in the working buffer. Matching always reads the current buffer,
// so the outcome does not depend on the order of matches within a pass. The
// caller must prepare the working buffer and swap afterwards. Pass returns the
// number of shapes removed.
func (r *Reaper) Pass(g *Grid) int {
	if g.Empty() {
		return 0
	}
	removed := 0
	for _, shape := range r.Shapes {
		for y := 0; y < g.h; y++ {
			for x := 0; x < g.w; x++ {
				if r.Matches(g, x, y, shape) {
					erase(g, x, y, shape)
					removed++
				}
			}
		}
	}
	return removed
}
