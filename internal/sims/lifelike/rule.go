package lifelike

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// NeighborSet is a bitmask over neighbor counts 0..8.
type NeighborSet uint16

const maxNeighbors = 8

// NewNeighborSet builds a set from the provided counts, ignoring values
// outside 0..8.
func NewNeighborSet(counts ...int) NeighborSet {
	var s NeighborSet
	for _, c := range counts {
		if c >= 0 && c <= maxNeighbors {
			s |= 1 << c
		}
	}
	return s
}

// Has reports whether n is in the set.
func (s NeighborSet) Has(n int) bool {
	return n >= 0 && n <= maxNeighbors && s&(1<<n) != 0
}

// Counts lists the members in ascending order.
func (s NeighborSet) Counts() []int {
	var out []int
	for n := 0; n <= maxNeighbors; n++ {
		if s.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

func (s NeighborSet) digits() string {
	var b strings.Builder
	for _, n := range s.Counts() {
		b.WriteByte(byte('0' + n))
	}
	return b.String()
}

// Rule is a Life-like birth/survival rule.
type Rule struct {
	Birth    NeighborSet
	Survival NeighborSet
}

// DefaultRule is Conway's Life, B3/S23.
var DefaultRule = Rule{Birth: NewNeighborSet(3), Survival: NewNeighborSet(2, 3)}

var rulePattern = regexp.MustCompile(`B(\d+)/S(\d+)`)

// ParseRule parses a rule of the form B<digits>/S<digits>. Each digit is one
// member of the corresponding set; digits above 8 are rejected.
func ParseRule(s string) (Rule, error) {
	m := rulePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Rule{}, fmt.Errorf("%w: %q", ErrInvalidRule, s)
	}
	birth, err := parseDigits(m[1])
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %q: birth %v", ErrInvalidRule, s, err)
	}
	survival, err := parseDigits(m[2])
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %q: survival %v", ErrInvalidRule, s, err)
	}
	return Rule{Birth: birth, Survival: survival}, nil
}

func parseDigits(digits string) (NeighborSet, error) {
	var s NeighborSet
	for _, r := range digits {
		n := int(r - '0')
		if n > maxNeighbors {
			return 0, fmt.Errorf("neighbor count %d exceeds %d", n, maxNeighbors)
		}
		s |= 1 << n
	}
	return s, nil
}

// String formats the rule canonically, e.g. "B3/S23".
func (r Rule) String() string {
	return "B" + r.Birth.digits() + "/S" + r.Survival.digits()
}

// Neighbors counts the live cells among the eight wrapped neighbors of (x, y).
func Neighbors(g *Grid, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n += int(g.Wrapped(x+dx, y+dy))
		}
	}
	return n
}

// Next computes the next state of (x, y) from the current buffer.
func (r Rule) Next(g *Grid, x, y int) uint8 {
	n := Neighbors(g, x, y)
	if g.Wrapped(x, y) == dead {
		if r.Birth.Has(n) {
			return live
		}
		return dead
	}
	if r.Survival.Has(n) {
		return live
	}
	return dead
}

// Preset names a well-known Life-like rule.
type Preset struct {
	Name string
	Rule string
}

// Presets lists the named rules available to the shells.
var Presets = []Preset{
	{Name: "life", Rule: "B3/S23"},
	{Name: "highlife", Rule: "B36/S23"},
	{Name: "daynight", Rule: "B3678/S34678"},
	{Name: "maze", Rule: "B3/S12345"},
	{Name: "morley", Rule: "B368/S245"},
	{Name: "2x2", Rule: "B36/S125"},
	{Name: "amoeba", Rule: "B357/S1358"},
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (Preset, bool) {
	i := slices.IndexFunc(Presets, func(p Preset) bool { return p.Name == name })
	if i < 0 {
		return Preset{}, false
	}
	return Presets[i], true
}
