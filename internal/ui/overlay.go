//go:build ebiten

package ui

import (
	"image/color"

	"lifelike/internal/editor"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws the cursor, the selection being marked and optional grid
// lines on top of the cells.
type Overlay struct {
	ed       *editor.Editor
	showGrid bool
	pixel    *ebiten.Image
}

var (
	cursorColor = color.RGBA{R: 230, G: 60, B: 60, A: 255}
	markColor   = color.NRGBA{R: 64, G: 164, B: 223, A: 90}
	gridColor   = color.RGBA{R: 60, G: 60, B: 70, A: 255}
)

// NewOverlay constructs a new overlay instance.
func NewOverlay(ed *editor.Editor) *Overlay {
	o := &Overlay{ed: ed}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles grid lines with G.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGrid = !o.showGrid
	}
}

// Draw renders the overlay onto the provided screen at cell pixels per cell.
func (o *Overlay) Draw(screen *ebiten.Image, cell int) {
	size := o.ed.Sim().Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if cell <= 0 {
		cell = 1
	}
	if o.showGrid && cell >= 4 {
		for x := 1; x < size.W; x++ {
			o.fillRect(screen, float64(x*cell), 0, 1, float64(size.H*cell), gridColor)
		}
		for y := 1; y < size.H; y++ {
			o.fillRect(screen, 0, float64(y*cell), float64(size.W*cell), 1, gridColor)
		}
	}
	if a, b, ok := o.ed.MarkRect(); ok {
		minX, minY := min(a.X, b.X), min(a.Y, b.Y)
		w, h := max(a.X, b.X)-minX+1, max(a.Y, b.Y)-minY+1
		o.fillRect(screen, float64(minX*cell), float64(minY*cell), float64(w*cell), float64(h*cell), markColor)
	}
	c := o.ed.Cursor()
	o.strokeRect(screen, float64(c.X*cell), float64(c.Y*cell), float64(cell), float64(cell), cursorColor)
}

func (o *Overlay) fillRect(screen *ebiten.Image, x, y, w, h float64, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) strokeRect(screen *ebiten.Image, x, y, w, h float64, col color.Color) {
	if w < 3 || h < 3 {
		o.fillRect(screen, x, y, w, h, col)
		return
	}
	o.fillRect(screen, x, y, w, 1, col)
	o.fillRect(screen, x, y+h-1, w, 1, col)
	o.fillRect(screen, x, y, 1, h, col)
	o.fillRect(screen, x+w-1, y, 1, h, col)
}
