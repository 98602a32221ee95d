package lifelike

import (
	"fmt"

	"lifelike/pkg/core"
)

// Strategy identifies one of the seeding algorithms.
type Strategy int

const (
	// StrategyRandom fills a centred box with uniform noise.
	StrategyRandom Strategy = iota
	// StrategyXY stamps 4-way symmetric noise from the upper-left quadrant.
	StrategyXY
	// StrategyXYWalk draws a symmetric random walk out of the centre.
	StrategyXYWalk
	// StrategyXMirror draws a horizontal band fading away from the centre row.
	StrategyXMirror
)

var strategyNames = map[Strategy]string{
	StrategyRandom:  "random",
	StrategyXY:      "xy",
	StrategyXYWalk:  "xywalk",
	StrategyXMirror: "xmirror",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy maps a strategy name back to its value.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown pattern %q", name)
}

// pickStrategy maps a uniform draw in [0,1) onto the strategy weights:
// xy 10%, xywalk 10%, xmirror 15%, random 65%.
func pickStrategy(r float64) Strategy {
	switch {
	case r < 0.10:
		return StrategyXY
	case r < 0.20:
		return StrategyXYWalk
	case r < 0.35:
		return StrategyXMirror
	default:
		return StrategyRandom
	}
}

// Box is a half-open rectangle [XMin,XMax) x [YMin,YMax).
type Box struct {
	XMin, XMax int
	YMin, YMax int
}

// Generator paints stochastic starting patterns. Callers clear the grid
// first; generators only ever set cells live.
type Generator struct {
	rng *core.RNG
}

// NewGenerator returns a Generator drawing from rng.
func NewGenerator(rng *core.RNG) *Generator {
	return &Generator{rng: rng}
}

// Generate picks a strategy by weighted draw, paints it and returns it.
func (gen *Generator) Generate(g *Grid) Strategy {
	s := pickStrategy(gen.rng.Float64())
	gen.Paint(g, s)
	return s
}

// Paint runs a specific strategy.
func (gen *Generator) Paint(g *Grid, s Strategy) {
	if g.Empty() {
		return
	}
	switch s {
	case StrategyXY:
		gen.xy(g)
	case StrategyXYWalk:
		gen.xyWalk(g)
	case StrategyXMirror:
		gen.xMirror(g)
	default:
		gen.random(g)
	}
}

// Containment returns a box centred on the grid whose half-extent is a random
// fraction in [lo, hi) of half the grid.
func (gen *Generator) Containment(g *Grid, lo, hi float64) Box {
	val := lo + gen.rng.Float64()*(hi-lo)
	halfX, halfY := g.w/2, g.h/2
	dx := int(float64(halfX) * val)
	dy := int(float64(halfY) * val)
	return Box{XMin: halfX - dx, XMax: halfX + dx, YMin: halfY - dy, YMax: halfY + dy}
}

func (gen *Generator) random(g *Grid) {
	box := gen.Containment(g, 0.2, 1.0)
	pct := gen.rng.Range(5, 35)
	for y := box.YMin; y < box.YMax; y++ {
		for x := box.XMin; x < box.XMax; x++ {
			if gen.rng.Percent(pct) {
				g.paint(x, y)
			}
		}
	}
}

func (gen *Generator) xy(g *Grid) {
	box := gen.Containment(g, 0.2, 1.0)
	halfX, halfY := g.w/2, g.h/2
	right, bottom := g.w-1, g.h-1
	pct := gen.rng.Range(15, 40)
	for x := box.XMin; x < halfX; x++ {
		for y := box.YMin; y < halfY; y++ {
			if gen.rng.Float64()*100 > float64(pct) {
				continue
			}
			g.paint(x, y)
			g.paint(x, bottom-y)
			g.paint(right-x, y)
			g.paint(right-x, bottom-y)
		}
	}
}

func (gen *Generator) xyWalk(g *Grid) {
	cx, cy := g.w/2, g.h/2
	ox, oy := 0, 0
	if gen.rng.Bool() {
		ox = 1
	}
	if gen.rng.Bool() {
		oy = 1
	}
	limitX := gen.rng.Range(5, float64(g.w)/3)
	limitY := gen.rng.Range(5, float64(g.h)/3)
	bias := 2.0
	if gen.rng.Bool() {
		bias = 1 + float64(g.w)/float64(g.h)
	}
	x, y := 0, 0
	for x < limitX && y < limitY {
		if gen.rng.Range(0, bias) != 0 {
			y++
		} else {
			x++
		}
		g.paint(cx-x+ox, cy-y+oy)
		g.paint(cx-x+ox, cy+y)
		g.paint(cx+x, cy-y+oy)
		g.paint(cx+x, cy+y)
	}
}

func (gen *Generator) xMirror(g *Grid) {
	margin := gen.rng.Range(float64(g.w)/8, float64(g.w)/3)
	sizeY := gen.rng.Range(float64(g.h)/8, float64(g.h)/3)
	cy := g.h / 2
	for x := margin; x < g.w-margin; x++ {
		for y := 0; y < sizeY; y++ {
			weight := float64(sizeY-y) / float64(sizeY) * 0.8
			if gen.rng.Float64() < weight {
				g.paint(x, cy-y)
				g.paint(x, cy+y)
			}
		}
	}
}
