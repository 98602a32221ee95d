package lifelike

import (
	"encoding/json"
	"fmt"
)

// Point is a cell offset.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Selection is a captured rectangle of cells: its size plus the offsets of
// the live cells relative to its top-left corner. The zero value is empty.
type Selection struct {
	W, H    int
	Offsets []Point
}

// Empty reports whether nothing has been captured.
func (s Selection) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Capture records the live cells of the rectangle spanned by the two corners,
// which may be given in any order and are inclusive.
func Capture(g *Grid, x0, y0, x1, y1 int) (Selection, error) {
	for _, p := range [...]Point{{x0, y0}, {x1, y1}} {
		if !g.current().InBounds(p.X, p.Y) {
			return Selection{}, fmt.Errorf("capture corner (%d,%d): %w", p.X, p.Y, ErrOutOfBounds)
		}
	}
	minX, minY := min(x0, x1), min(y0, y1)
	sel := Selection{W: abs(x1-x0) + 1, H: abs(y1-y0) + 1}
	for y := 0; y < sel.H; y++ {
		for x := 0; x < sel.W; x++ {
			if g.Alive(minX+x, minY+y) {
				sel.Offsets = append(sel.Offsets, Point{X: x, Y: y})
			}
		}
	}
	return sel, nil
}

// Paste clears the w x h destination rectangle at origin (ox, oy) and stamps
// the selection's live cells into it. Coordinates do not wrap; destination
// cells outside the grid are skipped.
func Paste(g *Grid, ox, oy int, sel Selection) error {
	if sel.Empty() {
		return ErrEmptySelection
	}
	cur := g.current()
	for y := oy; y < oy+sel.H; y++ {
		for x := ox; x < ox+sel.W; x++ {
			if cur.InBounds(x, y) {
				cur.Cells()[cur.Index(x, y)] = dead
			}
		}
	}
	for _, p := range sel.Offsets {
		g.paint(ox+p.X, oy+p.Y)
	}
	return nil
}

// MarshalJSON encodes the selection as a list of points whose first element
// carries the size: [{"x":w,"y":h},{"x":dx,"y":dy},...].
func (s Selection) MarshalJSON() ([]byte, error) {
	pts := make([]Point, 0, len(s.Offsets)+1)
	pts = append(pts, Point{X: s.W, Y: s.H})
	pts = append(pts, s.Offsets...)
	return json.Marshal(pts)
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var pts []Point
	if err := json.Unmarshal(data, &pts); err != nil {
		return err
	}
	if len(pts) == 0 {
		return fmt.Errorf("decode selection: %w", ErrEmptySelection)
	}
	size := pts[0]
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("decode selection: invalid size %dx%d", size.X, size.Y)
	}
	offsets := pts[1:]
	for _, p := range offsets {
		if p.X < 0 || p.Y < 0 || p.X >= size.X || p.Y >= size.Y {
			return fmt.Errorf("decode selection: offset (%d,%d) outside %dx%d", p.X, p.Y, size.X, size.Y)
		}
	}
	*s = Selection{W: size.X, H: size.Y, Offsets: append([]Point(nil), offsets...)}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
