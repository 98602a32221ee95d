//go:build ebiten

package app

import (
	"context"
	"image/color"

	"lifelike/internal/editor"
	"lifelike/internal/render"
	"lifelike/internal/sims/lifelike"
	"lifelike/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts an editor to the ebiten.Game interface. The grid follows the
// window size: the cell area is the window minus the HUD panel, divided by
// the cell size.
type Game struct {
	ed      *editor.Editor
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	onColor  color.Color
	offColor color.Color

	cell   int
	preset int
}

// New constructs a Game for the provided editor.
func New(ed *editor.Editor, opts Options) *Game {
	opts = opts.normalized()
	sim := ed.Sim()
	size := sim.Size()
	return &Game{
		ed:       ed,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(ed),
		hud:      ui.NewHUD(sim, opts.HUDWidth, ed.Status),
		onColor:  color.White,
		offColor: color.Black,
		cell:     opts.CellSize,
	}
}

// WindowSize returns the initial window size for the current grid.
func (g *Game) WindowSize() (int, int) {
	size := g.ed.Sim().Size()
	return size.W*g.cell + g.hud.Width(), size.H * g.cell
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.handleKeys()
	g.handleMouse()

	g.overlay.Update()
	size := g.ed.Sim().Size()
	g.hud.Update(size.W * g.cell)

	g.ed.Tick()
	return nil
}

func (g *Game) handleKeys() {
	ctx := context.Background()
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.ed.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		_ = g.ed.Paint(editor.PaintToggle)
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		_ = g.ed.ToggleMark()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.ed.ToggleAutoReap()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.ed.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.ed.NewPattern()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		_ = g.ed.Paste()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.ed.Reap()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.ed.SingleStep()
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		g.preset = (g.preset + 1) % len(lifelike.Presets)
		_ = g.ed.SetRule(lifelike.Presets[g.preset].Rule)
	case justPressed(ebiten.KeyEqual, ebiten.KeyNumpadAdd):
		if shift {
			g.ed.Faster()
		} else {
			g.cell++
		}
	case justPressed(ebiten.KeyMinus, ebiten.KeyNumpadSubtract):
		if shift {
			g.ed.Slower()
		} else {
			g.cell = max(g.cell-1, minCellSize)
		}
	}

	for dir, key := range map[[2]int]ebiten.Key{
		{-1, 0}: ebiten.KeyArrowLeft,
		{1, 0}:  ebiten.KeyArrowRight,
		{0, -1}: ebiten.KeyArrowUp,
		{0, 1}:  ebiten.KeyArrowDown,
	} {
		if repeating(key) {
			g.ed.MoveCursor(dir[0], dir[1])
		}
	}

	for i, key := range digitKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if shift {
			_ = g.ed.StoreSlot(ctx, i)
		} else {
			_ = g.ed.LoadSlot(ctx, i)
		}
	}
}

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	size := g.ed.Sim().Size()
	x, y := mx/g.cell, my/g.cell
	if mx < 0 || my < 0 || x >= size.W || y >= size.H {
		return
	}
	g.ed.SetCursor(x, y)
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		_ = g.ed.Paint(editor.PaintSet)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		_ = g.ed.Paint(editor.PaintClear)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	sim := g.ed.Sim()
	size := sim.Size()
	g.painter.Blit(screen, sim.Cells(), size.W, size.H, g.onColor, g.offColor, g.cell)
	g.overlay.Draw(screen, g.cell)
	g.hud.Draw(screen, size.W*g.cell, screen.Bounds().Dy())
}

// Layout resizes the grid to fill the window and returns the logical screen
// size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := max((outsideWidth-g.hud.Width())/g.cell, 1)
	h := max(outsideHeight/g.cell, 1)
	if size := g.ed.Sim().Size(); size.W != w || size.H != h {
		g.ed.Resize(w, h)
	}
	return outsideWidth, outsideHeight
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// repeating reports a press on the first frame and then every few frames
// while the key is held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > repeatDelay && d%repeatEvery == 0)
}

var digitKeys = [...]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

const (
	repeatDelay = 20
	repeatEvery = 3
)
