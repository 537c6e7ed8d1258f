package engine

import (
	"fmt"

	"github.com/dshills/mathstorm/internal/codec"
	"github.com/dshills/mathstorm/internal/engine/history"
	"github.com/dshills/mathstorm/internal/engine/node"
	"github.com/dshills/mathstorm/internal/render/latex"
)

// Engine edits a single formula document. It owns the root node and tracks
// which node currently holds the cursor.
type Engine struct {
	root   *node.Node
	active *node.Node
	hist   *history.History
}

// New creates an engine with an empty document and the cursor active at
// the root.
func New(opts ...Option) *Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	root := node.New()
	root.Activate()
	return &Engine{
		root:   root,
		active: root,
		hist:   history.New(o.maxUndo),
	}
}

// Root returns the document's root node.
func (e *Engine) Root() *node.Node {
	return e.root
}

// Active returns the node currently holding the cursor.
func (e *Engine) Active() *node.Node {
	return e.active
}

// InsertSymbol inserts a terminal fragment at the cursor.
func (e *Engine) InsertSymbol(expr string) {
	e.checkpoint()
	e.active.Insert(&node.Leaf{Expr: expr})
}

// InsertFunction inserts a function at the cursor and moves the cursor
// into its first argument.
func (e *Engine) InsertFunction(expr string, kinds []node.ArgumentKind) error {
	f, err := node.NewFunction(expr, kinds)
	if err != nil {
		return fmt.Errorf("inserting %q: %w", expr, err)
	}
	e.checkpoint()
	e.active.Insert(f)
	e.active.Deactivate()
	e.active = f.Arg(0)
	e.active.ActivateEnd()
	return nil
}

// MoveLeft moves the cursor one position left, crossing into and out of
// function arguments as needed. At the document's left edge it is a no-op.
func (e *Engine) MoveLeft() {
	switch e.active.MoveLeft() {
	case node.Moved:
	case node.Descend:
		// The position indexes the function just crossed; enter its last
		// argument from the right.
		f := e.functionAt(e.active.Pos())
		e.setActive(f.Arg(f.NArgs()-1), true)
	case node.Boundary:
		e.ascendLeft()
	}
}

// MoveRight moves the cursor one position right, crossing into and out of
// function arguments as needed. At the document's right edge it is a no-op.
func (e *Engine) MoveRight() {
	switch e.active.MoveRight() {
	case node.Moved:
	case node.Descend:
		// The function just crossed sits left of the position; enter its
		// first argument from the left.
		f := e.functionAt(e.active.Pos() - 1)
		e.setActive(f.Arg(0), false)
	case node.Boundary:
		e.ascendRight()
	}
}

// DeleteBackward deletes the element left of the cursor. Crossing into a
// function repositions the cursor inside its trailing argument instead of
// deleting; deleting at the very start of an empty function's first
// argument collapses the function itself.
func (e *Engine) DeleteBackward() {
	before, err := codec.Encode(e.root)

	switch e.active.DeleteBackward() {
	case node.Moved:
		if err == nil {
			e.hist.Push(before)
		}
	case node.Descend:
		f := e.functionAt(e.active.Pos())
		e.setActive(f.Arg(f.NArgs()-1), true)
	case node.Boundary:
		e.deleteAscend(before, err)
	}
}

// deleteAscend handles DeleteBackward at a node's left edge.
func (e *Engine) deleteAscend(before []byte, encErr error) {
	f := e.active.Parent()
	if f == nil {
		// Left edge of the document.
		return
	}
	if i := f.ArgIndex(e.active); i > 0 {
		// Hop to the end of the previous argument.
		e.setActive(f.Arg(i-1), true)
		return
	}

	owner := f.Owner()
	idx := owner.IndexOf(f)
	e.active.Deactivate()
	if f.Empty() {
		// Nothing worth keeping inside; remove the function outright.
		owner.RemoveAt(idx)
		if encErr == nil {
			e.hist.Push(before)
		}
	}
	owner.ActivateAt(idx)
	e.active = owner
}

// ascendLeft handles MoveLeft at a node's left edge.
func (e *Engine) ascendLeft() {
	f := e.active.Parent()
	if f == nil {
		return
	}
	if i := f.ArgIndex(e.active); i > 0 {
		e.setActive(f.Arg(i-1), true)
		return
	}
	owner := f.Owner()
	idx := owner.IndexOf(f)
	e.active.Deactivate()
	owner.ActivateAt(idx)
	e.active = owner
}

// ascendRight handles MoveRight at a node's right edge.
func (e *Engine) ascendRight() {
	f := e.active.Parent()
	if f == nil {
		return
	}
	if i := f.ArgIndex(e.active); i < f.NArgs()-1 {
		e.setActive(f.Arg(i+1), false)
		return
	}
	owner := f.Owner()
	idx := owner.IndexOf(f)
	e.active.Deactivate()
	owner.ActivateAt(idx + 1)
	e.active = owner
}

// setActive switches the cursor to n, at its end or start.
func (e *Engine) setActive(n *node.Node, atEnd bool) {
	e.active.Deactivate()
	e.active = n
	if atEnd {
		n.ActivateEnd()
	} else {
		n.ActivateStart()
	}
}

// functionAt returns the Function child of the active node at index i.
// Only called after a Descend outcome, which guarantees the element kind.
func (e *Engine) functionAt(i int) *node.Function {
	f, ok := e.active.Children()[i].(*node.Function)
	if !ok {
		panic(fmt.Sprintf("engine: descend outcome without function at %d", i))
	}
	return f
}

// CursorAtDocumentEnd reports whether the cursor trails the last element
// of the outermost node. A cursor deep inside a trailing function does not
// count.
func (e *Engine) CursorAtDocumentEnd() bool {
	return e.active == e.root && e.root.CursorAtEnd()
}

// Render returns the formatted string for the document.
func (e *Engine) Render(opts ...latex.Option) (string, error) {
	return latex.Render(e.root, opts...)
}

// Encode serializes the document to the interchange form.
func (e *Engine) Encode(opts ...codec.EncodeOption) ([]byte, error) {
	return codec.Encode(e.root, opts...)
}

// Load replaces the document with the decoded interchange form. The cursor
// activates in the root node at its stored position, and history is
// cleared.
func (e *Engine) Load(data []byte) error {
	root, err := codec.Decode(data)
	if err != nil {
		return err
	}
	e.root = root
	e.active = root
	e.root.Activate()
	e.hist.Clear()
	return nil
}

// Clear resets the engine to an empty document. The previous state is
// recorded for undo.
func (e *Engine) Clear() {
	e.checkpoint()
	e.root = node.New()
	e.root.Activate()
	e.active = e.root
}

// Undo restores the document state preceding the last edit.
func (e *Engine) Undo() error {
	current, err := codec.Encode(e.root)
	if err != nil {
		return err
	}
	snapshot, err := e.hist.Undo(current)
	if err != nil {
		return err
	}
	return e.restore(snapshot)
}

// Redo restores the most recently undone document state.
func (e *Engine) Redo() error {
	current, err := codec.Encode(e.root)
	if err != nil {
		return err
	}
	snapshot, err := e.hist.Redo(current)
	if err != nil {
		return err
	}
	return e.restore(snapshot)
}

// CanUndo reports whether Undo would succeed.
func (e *Engine) CanUndo() bool {
	return e.hist.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (e *Engine) CanRedo() bool {
	return e.hist.CanRedo()
}

// restore replaces the document from a history snapshot without touching
// the history stacks.
func (e *Engine) restore(snapshot []byte) error {
	root, err := codec.Decode(snapshot)
	if err != nil {
		return err
	}
	e.root = root
	e.active = root
	e.root.Activate()
	return nil
}

// checkpoint records the current state for undo. Encoding an in-memory
// tree cannot fail in practice; a failure just skips the checkpoint.
func (e *Engine) checkpoint() {
	if snapshot, err := codec.Encode(e.root); err == nil {
		e.hist.Push(snapshot)
	}
}
