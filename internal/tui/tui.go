// Package tui is the terminal shell of lifelike, built on tcell. One cell of
// the grid maps to one terminal cell; the bottom row holds the status line.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lifelike/internal/editor"

	"github.com/gdamore/tcell/v2"
)

// frameInterval is how often the loop polls the editor clock and redraws.
const frameInterval = 16 * time.Millisecond

// shiftDigits maps the shifted digit keys of a US layout to their digit.
const shiftDigits = ")!@#$%^&*("

var (
	styleDead   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)
	styleLive   = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	styleCursor = tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite)
	styleMark   = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleMarkOn = tcell.StyleDefault.Background(tcell.ColorAqua).Foreground(tcell.ColorBlack)
	styleStatus = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	stylePrompt = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
)

const (
	cellRune   = ' '
	cursorRune = '+'
)

// Shell runs an editor on a tcell screen.
type Shell struct {
	screen tcell.Screen
	ed     *editor.Editor
	logger *slog.Logger

	// prompt is non-nil while a rule is being typed.
	prompt *strings.Builder
	quit   bool
}

// New returns a shell drawing ed on screen. The screen must not be
// initialized yet; Run owns its lifecycle.
func New(screen tcell.Screen, ed *editor.Editor, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Shell{screen: screen, ed: ed, logger: logger}
}

// Run initializes the screen and processes input and ticks until the user
// quits or ctx is cancelled. Input and stepping share this goroutine.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer s.screen.Fini()
	s.screen.EnableMouse()
	s.screen.HideCursor()

	w, h := s.screen.Size()
	s.resize(w, h)

	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		defer close(events)
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	s.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.HandleEvent(ev)
			if s.quit {
				return nil
			}
			s.Draw()
		case <-ticker.C:
			if s.ed.Tick() {
				s.Draw()
			}
		}
	}
}

// Quit reports whether the user asked to leave.
func (s *Shell) Quit() bool { return s.quit }

func (s *Shell) resize(w, h int) {
	// Reserve the status row.
	s.ed.Resize(max(w, 1), max(h-1, 1))
	s.logger.Debug("terminal resized", "w", w, "h", h)
}

// HandleEvent applies one tcell event to the editor.
func (s *Shell) HandleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if s.prompt != nil {
			s.handlePrompt(e)
			return
		}
		s.handleKey(e)
	case *tcell.EventMouse:
		s.handleMouse(e)
	case *tcell.EventResize:
		w, h := e.Size()
		s.screen.Sync()
		s.resize(w, h)
	}
}

func (s *Shell) handleKey(e *tcell.EventKey) {
	ctx := context.Background()
	switch e.Key() {
	case tcell.KeyEscape:
		s.ed.TogglePause()
		return
	case tcell.KeyLeft:
		s.ed.MoveCursor(-1, 0)
		return
	case tcell.KeyRight:
		s.ed.MoveCursor(1, 0)
		return
	case tcell.KeyUp:
		s.ed.MoveCursor(0, -1)
		return
	case tcell.KeyDown:
		s.ed.MoveCursor(0, 1)
		return
	case tcell.KeyCtrlC:
		s.quit = true
		return
	case tcell.KeyRune:
	default:
		return
	}

	r := e.Rune()
	switch r {
	case 'q', 'Q':
		s.quit = true
	case ' ':
		_ = s.ed.Paint(editor.PaintToggle)
	case 'v', 'V':
		_ = s.ed.ToggleMark()
	case 'a', 'A':
		s.ed.ToggleAutoReap()
	case 'c', 'C':
		s.ed.Clear()
	case 'n', 'N':
		s.ed.NewPattern()
	case 'p', 'P':
		_ = s.ed.Paste()
	case 'r', 'R':
		s.ed.Reap()
	case 's', 'S':
		s.ed.SingleStep()
	case 'u', 'U':
		s.prompt = &strings.Builder{}
		s.prompt.WriteString(s.ed.Sim().Rule().String())
	case '+', '=':
		s.ed.Faster()
	case '-', '_':
		s.ed.Slower()
	default:
		if r >= '0' && r <= '9' {
			_ = s.ed.LoadSlot(ctx, int(r-'0'))
			return
		}
		if i := strings.IndexRune(shiftDigits, r); i >= 0 {
			_ = s.ed.StoreSlot(ctx, i)
		}
	}
}

func (s *Shell) handlePrompt(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyEscape:
		s.prompt = nil
	case tcell.KeyEnter:
		rule := s.prompt.String()
		s.prompt = nil
		_ = s.ed.SetRule(rule)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		text := s.prompt.String()
		if text != "" {
			s.prompt.Reset()
			s.prompt.WriteString(text[:len(text)-1])
		}
	case tcell.KeyRune:
		s.prompt.WriteRune(e.Rune())
	}
}

func (s *Shell) handleMouse(e *tcell.EventMouse) {
	x, y := e.Position()
	size := s.ed.Sim().Size()
	if x < 0 || y < 0 || x >= size.W || y >= size.H {
		return
	}
	s.ed.SetCursor(x, y)
	switch {
	case e.Buttons()&tcell.Button1 != 0:
		_ = s.ed.Paint(editor.PaintSet)
	case e.Buttons()&tcell.Button2 != 0:
		_ = s.ed.Paint(editor.PaintClear)
	}
}

// Draw renders the grid and the status line.
func (s *Shell) Draw() {
	sim := s.ed.Sim()
	size := sim.Size()
	cursor := s.ed.Cursor()
	a, b, marking := s.ed.MarkRect()
	minX, maxX := min(a.X, b.X), max(a.X, b.X)
	minY, maxY := min(a.Y, b.Y), max(a.Y, b.Y)

	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			live := sim.IsLive(x, y)
			style := styleDead
			if live {
				style = styleLive
			}
			if marking && x >= minX && x <= maxX && y >= minY && y <= maxY {
				style = styleMark
				if live {
					style = styleMarkOn
				}
			}
			r := cellRune
			if x == cursor.X && y == cursor.Y {
				style = styleCursor
				r = cursorRune
			}
			s.screen.SetContent(x, y, r, nil, style)
		}
	}
	s.drawStatus(size.H, size.W)
	s.screen.Show()
}

func (s *Shell) drawStatus(row, width int) {
	line, style := s.StatusLine(), styleStatus
	if s.prompt != nil {
		line, style = "rule: "+s.prompt.String(), stylePrompt
	}
	col := 0
	for _, r := range line {
		if col >= width {
			break
		}
		s.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		s.screen.SetContent(col, row, ' ', nil, style)
	}
}

// StatusLine summarizes the simulation and editor state.
func (s *Shell) StatusLine() string {
	sim := s.ed.Sim()
	var b strings.Builder
	fmt.Fprintf(&b, "gen %d  pop %d  reseeds %d  %s  %v",
		sim.Generation(), sim.Population(), sim.Reseeds(), sim.Rule(), s.ed.Interval())
	if s.ed.Paused() {
		b.WriteString("  [paused]")
	}
	if sim.AutoReap() {
		b.WriteString("  [reap]")
	}
	if s.ed.Marking() {
		b.WriteString("  [mark]")
	}
	if msg := s.ed.Status(); msg != "" {
		b.WriteString("  | ")
		b.WriteString(msg)
	}
	return b.String()
}
