package input

import (
	"errors"

	"github.com/dshills/mathstorm/internal/engine"
	"github.com/dshills/mathstorm/internal/engine/history"
)

// Key identifies a non-printable key.
type Key uint8

const (
	// KeyRune is a printable character; Event.Rune holds it.
	KeyRune Key = iota
	KeyLeft
	KeyRight
	KeyBackspace
	KeyUndo
	KeyRedo
	KeyClear
)

// Event is a single key press.
type Event struct {
	Key  Key
	Rune rune
}

// Handler maps key events onto engine operations.
type Handler struct {
	palette *Palette
}

// NewHandler creates a handler using the given palette, or the default
// palette when nil.
func NewHandler(palette *Palette) *Handler {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Handler{palette: palette}
}

// Handle applies ev to eng. Unbound printable keys are ignored and report
// handled == false; exhausted undo/redo stacks are not errors.
func (h *Handler) Handle(ev Event, eng *engine.Engine) (handled bool, err error) {
	switch ev.Key {
	case KeyRune:
		entry, ok := h.palette.Lookup(ev.Rune)
		if !ok {
			return false, nil
		}
		if entry.IsFunction() {
			return true, eng.InsertFunction(entry.Expr, entry.Kinds)
		}
		eng.InsertSymbol(entry.Expr)
		return true, nil

	case KeyLeft:
		eng.MoveLeft()
		return true, nil

	case KeyRight:
		eng.MoveRight()
		return true, nil

	case KeyBackspace:
		eng.DeleteBackward()
		return true, nil

	case KeyUndo:
		if err := eng.Undo(); err != nil && !errors.Is(err, history.ErrNothingToUndo) {
			return true, err
		}
		return true, nil

	case KeyRedo:
		if err := eng.Redo(); err != nil && !errors.Is(err, history.ErrNothingToRedo) {
			return true, err
		}
		return true, nil

	case KeyClear:
		eng.Clear()
		return true, nil

	default:
		return false, nil
	}
}
