// Package tui displays the formatted formula on a terminal screen.
//
// The formula is shown as its raw LaTeX markup; glyph typesetting is the
// job of an external renderer. The cursor token produced by the render
// package is replaced by a styled caret cell so the edit position is
// visible while editing.
package tui

import (
	"regexp"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// cursorToken matches the color-tagged caret token in the rendered string.
var cursorToken = regexp.MustCompile(`\\textcolor\{(#[0-9a-fA-F]{6})\}\{\\cursor\}`)

// View is one frame of screen content.
type View struct {
	// Title is shown on the top line.
	Title string

	// Formula is the rendered markup, cursor token included.
	Formula string

	// Status is shown on the bottom line.
	Status string
}

// Screen draws Views on a tcell screen.
type Screen struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// New creates a screen on the real terminal.
func New() (*Screen, error) {
	ts, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Screen{screen: ts}, nil
}

// NewWithScreen wraps an existing tcell screen. Used with
// tcell.NewSimulationScreen in tests.
func NewWithScreen(ts tcell.Screen) *Screen {
	return &Screen{screen: ts}
}

// Init initializes the terminal.
func (s *Screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen.Init()
}

// Fini restores the terminal.
func (s *Screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.Fini()
}

// Size returns the terminal dimensions.
func (s *Screen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen.Size()
}

// PollEvent blocks until the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Draw renders one frame.
func (s *Screen) Draw(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Clear()
	width, height := s.screen.Size()

	titleStyle := tcell.StyleDefault.Bold(true)
	s.drawText(0, 0, width, v.Title, titleStyle)
	s.drawFormula(0, 2, width, v.Formula)
	if height > 1 {
		s.drawText(0, height-1, width, v.Status, tcell.StyleDefault.Dim(true))
	}
	s.screen.Show()
}

// drawFormula writes the markup, substituting the cursor token with a
// caret cell colored per the token's embedded hex color.
func (s *Screen) drawFormula(x, y, width int, formula string) {
	loc := cursorToken.FindStringSubmatchIndex(formula)
	if loc == nil {
		s.drawText(x, y, width, formula, tcell.StyleDefault)
		return
	}

	before := formula[:loc[0]]
	color := formula[loc[2]:loc[3]]
	after := formula[loc[1]:]

	x = s.drawText(x, y, width, before, tcell.StyleDefault)
	caretStyle := tcell.StyleDefault.Foreground(tcell.GetColor(color)).Bold(true)
	if x < width {
		s.screen.SetContent(x, y, '|', nil, caretStyle)
		x++
	}
	s.drawText(x, y, width, after, tcell.StyleDefault)
}

// drawText writes text left to right, grapheme cluster by grapheme
// cluster, and returns the next free column.
func (s *Screen) drawText(x, y, width int, text string, style tcell.Style) int {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if x >= width {
			break
		}
		runes := g.Runes()
		if len(runes) == 0 {
			continue
		}
		s.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += g.Width()
	}
	return x
}
