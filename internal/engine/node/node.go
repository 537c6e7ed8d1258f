package node

import (
	"errors"
	"fmt"
)

// ErrCursorOutOfRange indicates an edit position outside [0, element count].
var ErrCursorOutOfRange = errors.New("cursor position out of range")

// Outcome reports how a navigation or deletion operation ended.
type Outcome uint8

const (
	// Moved indicates the operation completed within this Node.
	Moved Outcome = iota

	// Boundary indicates the edit position is already at the Node's edge.
	// The caller ascends to the parent Function's owning Node (or stops at
	// the root) and continues there.
	Boundary

	// Descend indicates the edit position crossed a Function. The caller
	// enters one of the Function's argument Nodes (first argument when
	// moving right, last when moving left or deleting) and continues
	// there. This Node is left without a cursor marker; its position
	// indexes the Function for MoveLeft/DeleteBackward and the slot just
	// past it for MoveRight.
	Descend
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Boundary:
		return "boundary"
	case Descend:
		return "descend"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// Node is an ordered, mutable sequence of Elements with an edit position.
// The edit position is persistent state (it survives serialization); the
// CursorMarker element is its transient materialization while the Node is
// the active edit target.
type Node struct {
	children []Element
	pos      int
	parent   *Function
}

// New creates an empty Node.
func New() *Node {
	return &Node{}
}

// FromElements creates a Node holding the given Elements with the edit
// position at pos. Any Function elements are re-parented to the new Node.
// The Elements must not include a CursorMarker.
func FromElements(elements []Element, pos int) (*Node, error) {
	if pos < 0 || pos > len(elements) {
		return nil, fmt.Errorf("%w: %d with %d children", ErrCursorOutOfRange, pos, len(elements))
	}
	n := &Node{
		children: append([]Element(nil), elements...),
		pos:      pos,
	}
	for _, el := range n.children {
		if f, ok := el.(*Function); ok {
			f.owner = n
		}
	}
	return n, nil
}

// Parent returns the Function whose argument slot owns this Node, or nil
// for the root. The reference is navigational only.
func (n *Node) Parent() *Function {
	return n.parent
}

// Children returns the Node's Elements, including a materialized
// CursorMarker if the Node is active. Callers must not modify the slice.
func (n *Node) Children() []Element {
	return n.children
}

// Pos returns the edit position. When the Node is active, the CursorMarker
// sits at this index.
func (n *Node) Pos() int {
	return n.pos
}

// Len returns the number of Elements excluding any CursorMarker.
func (n *Node) Len() int {
	if n.cursorIndex() >= 0 {
		return len(n.children) - 1
	}
	return len(n.children)
}

// cursorIndex returns the index of the materialized CursorMarker, or -1.
func (n *Node) cursorIndex() int {
	for i, el := range n.children {
		if _, ok := el.(*CursorMarker); ok {
			return i
		}
	}
	return -1
}

// Activate materializes the CursorMarker at the edit position, making this
// Node the active edit target. Idempotent.
func (n *Node) Activate() {
	if i := n.cursorIndex(); i >= 0 {
		if i == n.pos {
			return
		}
		n.children = append(n.children[:i], n.children[i+1:]...)
	}
	if n.pos > len(n.children) {
		n.pos = len(n.children)
	}
	n.children = insertAt(n.children, n.pos, &CursorMarker{})
}

// ActivateAt moves the edit position to i and materializes the
// CursorMarker there. The position is clamped to [0, Len].
func (n *Node) ActivateAt(i int) {
	n.Deactivate()
	if i < 0 {
		i = 0
	}
	if i > len(n.children) {
		i = len(n.children)
	}
	n.pos = i
	n.Activate()
}

// ActivateStart places the cursor before the first Element.
func (n *Node) ActivateStart() {
	n.ActivateAt(0)
}

// ActivateEnd places the cursor after the last Element.
func (n *Node) ActivateEnd() {
	n.Deactivate()
	n.pos = len(n.children)
	n.Activate()
}

// Deactivate removes the CursorMarker. The edit position is retained.
// Idempotent.
func (n *Node) Deactivate() {
	if i := n.cursorIndex(); i >= 0 {
		n.children = append(n.children[:i], n.children[i+1:]...)
	}
}

// Insert places el at the edit position and advances the position past it.
// A materialized CursorMarker stays immediately after the new Element.
// Inserted Functions are re-parented to this Node.
func (n *Node) Insert(el Element) {
	if f, ok := el.(*Function); ok {
		f.owner = n
	}
	n.children = insertAt(n.children, n.pos, el)
	n.pos++
}

// MoveLeft moves the edit position one Element to the left.
//
// At the left edge it returns Boundary without mutating. If the Element
// crossed is a Function it returns Descend, leaving the position indexing
// that Function and no CursorMarker in this Node; the caller enters the
// Function's last argument. Otherwise the CursorMarker is re-materialized
// at the new position and Moved is returned.
func (n *Node) MoveLeft() Outcome {
	if n.pos == 0 {
		return Boundary
	}
	n.Deactivate()
	n.pos--
	if _, ok := n.children[n.pos].(*Function); ok {
		return Descend
	}
	n.Activate()
	return Moved
}

// MoveRight moves the edit position one Element to the right.
//
// At the right edge it returns Boundary without mutating. If the Element
// crossed is a Function it returns Descend, leaving the position just past
// that Function and no CursorMarker in this Node; the caller enters the
// Function's first argument. Otherwise the CursorMarker is re-materialized
// at the new position and Moved is returned.
func (n *Node) MoveRight() Outcome {
	if n.pos >= n.Len() {
		return Boundary
	}
	n.Deactivate()
	n.pos++
	if _, ok := n.children[n.pos-1].(*Function); ok {
		return Descend
	}
	n.Activate()
	return Moved
}

// DeleteBackward removes the Element immediately left of the edit position.
//
// At the left edge it returns Boundary without mutating. If that Element is
// a Function it returns Descend instead of deleting it, leaving the
// position indexing the Function and no CursorMarker in this Node; the
// caller continues inside the Function's last argument. Otherwise the
// Element is removed, the CursorMarker is re-materialized, and Moved is
// returned.
func (n *Node) DeleteBackward() Outcome {
	if n.pos == 0 {
		return Boundary
	}
	n.Deactivate()
	n.pos--
	if _, ok := n.children[n.pos].(*Function); ok {
		return Descend
	}
	n.children = append(n.children[:n.pos], n.children[n.pos+1:]...)
	n.Activate()
	return Moved
}

// RemoveAt removes the Element at index i and clamps the edit position.
// Used by the driver to collapse an empty Function during deletion.
func (n *Node) RemoveAt(i int) {
	if i < 0 || i >= len(n.children) {
		return
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	if n.pos > i {
		n.pos--
	}
}

// IndexOf returns the index of el among the children, or -1.
func (n *Node) IndexOf(el Element) int {
	for i, child := range n.children {
		if child == el {
			return i
		}
	}
	return -1
}

// CursorAtEnd reports whether the last child is the CursorMarker. It is
// false for an empty Node and does not look into nested Functions.
func (n *Node) CursorAtEnd() bool {
	if len(n.children) == 0 {
		return false
	}
	_, ok := n.children[len(n.children)-1].(*CursorMarker)
	return ok
}

// insertAt returns s with el inserted at index i.
func insertAt(s []Element, i int, el Element) []Element {
	s = append(s, nil)
	copy(s[i+1:], s[i:])
	s[i] = el
	return s
}
