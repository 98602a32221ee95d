package lifelike

import "testing"

func stamp(t *testing.T, g *Grid, x, y int, shape Shape) {
	t.Helper()
	for dy := 0; dy < shape.Height(); dy++ {
		for dx := 0; dx < shape.Width(); dx++ {
			if shape.At(dx, dy) == 1 {
				if err := g.Set(x+dx, y+dy, 1); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
}

func reapOnce(g *Grid, r *Reaper) int {
	g.CopyToWorking()
	n := r.Pass(g)
	g.Swap()
	return n
}

func TestReapIsolatedBlock(t *testing.T) {
	g := NewGrid(10, 10)
	stamp(t, g, 4, 4, ShapeLibrary[0])
	if n := reapOnce(g, NewReaper(DefaultReapMargin)); n != 1 {
		t.Fatalf("removed %d shapes, want 1", n)
	}
	if g.Population() != 0 {
		t.Fatalf("population after reap = %d, want 0", g.Population())
	}
}

func TestReapKeepsCrowdedBlock(t *testing.T) {
	g := NewGrid(12, 12)
	stamp(t, g, 4, 4, ShapeLibrary[0])
	// One dead column between the block and a stray cell: margin 1 < 2.
	_ = g.Set(7, 4, 1)
	if n := reapOnce(g, NewReaper(DefaultReapMargin)); n != 0 {
		t.Fatalf("removed %d shapes, want 0", n)
	}
	if g.Population() != 5 {
		t.Fatalf("population after reap = %d, want 5", g.Population())
	}

	// Two dead columns satisfy the margin.
	g.FillDead()
	stamp(t, g, 4, 4, ShapeLibrary[0])
	_ = g.Set(8, 4, 1)
	if n := reapOnce(g, NewReaper(DefaultReapMargin)); n != 1 {
		t.Fatalf("removed %d shapes with a full margin, want 1", n)
	}
	if !g.Alive(8, 4) || g.Population() != 1 {
		t.Fatal("the stray cell must survive the reap")
	}
}

func TestReapLibraryShapes(t *testing.T) {
	for _, shape := range ShapeLibrary {
		g := NewGrid(16, 16)
		stamp(t, g, 6, 6, shape)
		if n := reapOnce(g, NewReaper(DefaultReapMargin)); n != 1 {
			t.Fatalf("%s: removed %d shapes, want 1", shape.Name, n)
		}
		if g.Population() != 0 {
			t.Fatalf("%s: population after reap = %d, want 0", shape.Name, g.Population())
		}
	}
}

func TestReapAcrossWrap(t *testing.T) {
	g := NewGrid(10, 10)
	for _, p := range [][2]int{{9, 9}, {0, 9}, {9, 0}, {0, 0}} {
		_ = g.Set(p[0], p[1], 1)
	}
	if n := reapOnce(g, NewReaper(DefaultReapMargin)); n != 1 {
		t.Fatalf("removed %d shapes, want 1", n)
	}
	if g.Population() != 0 {
		t.Fatal("block split across the corners should be reaped")
	}
}

func TestReapPassReadsCurrentBuffer(t *testing.T) {
	g := NewGrid(10, 10)
	stamp(t, g, 3, 3, ShapeLibrary[0])
	g.CopyToWorking()
	before := AppendSnapshot(nil, g)
	NewReaper(DefaultReapMargin).Pass(g)
	if !AppendSnapshot(nil, g).Equal(before) {
		t.Fatal("Pass must not modify the current buffer")
	}
	for _, c := range g.working().Cells() {
		if c != 0 {
			t.Fatal("Pass should clear the match in the working buffer")
		}
	}
}

func TestReapIgnoresOscillatorInMotion(t *testing.T) {
	g := NewGrid(12, 12)
	// A bar with a fourth cell is not a library shape.
	for x := 4; x < 8; x++ {
		_ = g.Set(x, 5, 1)
	}
	if n := reapOnce(g, NewReaper(DefaultReapMargin)); n != 0 {
		t.Fatalf("removed %d shapes from a 4-cell bar, want 0", n)
	}
}
