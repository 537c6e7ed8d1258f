// Package history provides snapshot-based undo/redo for formula documents.
//
// Each undo entry is an encoded snapshot of the whole document taken just
// before a mutating edit. Formula documents are small, so whole-document
// snapshots are cheaper and simpler than command inversion.
package history

import (
	"errors"
	"sync"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is configured.
const DefaultMaxEntries = 200

// History manages undo/redo snapshots for a document.
type History struct {
	mu sync.Mutex

	undoStack [][]byte
	redoStack [][]byte

	maxEntries int
}

// New creates a history bounded to maxEntries snapshots. A non-positive
// limit selects DefaultMaxEntries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records the document state preceding an edit.
// Clears the redo stack.
func (h *History) Push(snapshot []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, snapshot)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo exchanges the current state for the most recent snapshot. The
// current state is pushed onto the redo stack.
func (h *History) Undo(current []byte) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}
	snapshot := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return snapshot, nil
}

// Redo exchanges the current state for the most recently undone snapshot.
// The current state is pushed onto the undo stack.
func (h *History) Redo(current []byte) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}
	snapshot := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return snapshot, nil
}

// CanUndo reports whether an undo snapshot is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo reports whether a redo snapshot is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// Clear discards all snapshots, e.g. after loading a new document.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}
