package app

// Options sizes the GUI.
type Options struct {
	// CellSize is the edge of one cell in logical pixels.
	CellSize int
	// HUDWidth is the width of the parameter panel; 0 hides it.
	HUDWidth int
}

const (
	minCellSize     = 1
	defaultCellSize = 6
)

func (o Options) normalized() Options {
	if o.CellSize < minCellSize {
		o.CellSize = defaultCellSize
	}
	o.HUDWidth = max(o.HUDWidth, 0)
	return o
}
