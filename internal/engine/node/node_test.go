package node

import (
	"testing"
)

// leaves builds a Node containing one Leaf per expression, cursor at end.
func leaves(t *testing.T, exprs ...string) *Node {
	t.Helper()
	n := New()
	n.Activate()
	for _, e := range exprs {
		n.Insert(&Leaf{Expr: e})
	}
	return n
}

func mustFunction(t *testing.T, expr string, kinds ...ArgumentKind) *Function {
	t.Helper()
	f, err := NewFunction(expr, kinds)
	if err != nil {
		t.Fatalf("NewFunction(%q): %v", expr, err)
	}
	return f
}

// exprsOf returns the Leaf expressions of a Node in order, skipping the
// cursor marker and naming functions by their fragment.
func exprsOf(n *Node) []string {
	var out []string
	for _, el := range n.Children() {
		switch el := el.(type) {
		case *Leaf:
			out = append(out, el.Expr)
		case *Function:
			out = append(out, el.Expr)
		case *CursorMarker:
		}
	}
	return out
}

func TestInsertAdvancesPosition(t *testing.T) {
	n := New()
	n.Activate()

	n.Insert(&Leaf{Expr: "1"})
	n.Insert(&Leaf{Expr: "2"})

	if n.Pos() != 2 {
		t.Errorf("expected pos 2, got %d", n.Pos())
	}
	if n.Len() != 2 {
		t.Errorf("expected 2 elements, got %d", n.Len())
	}
	if !n.CursorAtEnd() {
		t.Error("cursor should be at end after trailing inserts")
	}
}

func TestInsertKeepsMarkerAtPosition(t *testing.T) {
	n := leaves(t, "1", "2")

	if got := n.Children(); len(got) != 3 {
		t.Fatalf("expected 3 children with marker, got %d", len(got))
	}
	if _, ok := n.Children()[n.Pos()].(*CursorMarker); !ok {
		t.Error("marker should sit at the edit position")
	}
}

func TestMoveLeftAtBoundary(t *testing.T) {
	n := New()
	n.Activate()

	if got := n.MoveLeft(); got != Boundary {
		t.Errorf("expected Boundary, got %v", got)
	}
	if n.Pos() != 0 {
		t.Errorf("boundary must not mutate, pos = %d", n.Pos())
	}
	if len(n.Children()) != 1 {
		t.Error("boundary must leave the marker in place")
	}
}

func TestMoveRightAtBoundary(t *testing.T) {
	n := leaves(t, "1")

	if got := n.MoveRight(); got != Boundary {
		t.Errorf("expected Boundary, got %v", got)
	}
	if n.Pos() != 1 {
		t.Errorf("boundary must not mutate, pos = %d", n.Pos())
	}
}

func TestMoveLeftThenRightRestores(t *testing.T) {
	n := leaves(t, "1", "2", "3")
	before := exprsOf(n)

	if got := n.MoveLeft(); got != Moved {
		t.Fatalf("expected Moved, got %v", got)
	}
	if n.Pos() != 2 {
		t.Errorf("expected pos 2 after MoveLeft, got %d", n.Pos())
	}
	if got := n.MoveRight(); got != Moved {
		t.Fatalf("expected Moved, got %v", got)
	}
	if n.Pos() != 3 {
		t.Errorf("expected pos 3 after MoveRight, got %d", n.Pos())
	}

	after := exprsOf(n)
	if len(before) != len(after) {
		t.Fatalf("content changed: %v vs %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("content changed at %d: %q vs %q", i, before[i], after[i])
		}
	}
}

func TestMoveLeftDescendsIntoFunction(t *testing.T) {
	n := New()
	n.Activate()
	f := mustFunction(t, `\frac`, Braces, Braces)
	n.Insert(f)

	if got := n.MoveLeft(); got != Descend {
		t.Fatalf("expected Descend, got %v", got)
	}
	if n.Pos() != 0 {
		t.Errorf("position should index the function, got %d", n.Pos())
	}
	for _, el := range n.Children() {
		if _, ok := el.(*CursorMarker); ok {
			t.Error("no marker may remain after Descend")
		}
	}
}

func TestMoveRightDescendsIntoFunction(t *testing.T) {
	n := New()
	n.Activate()
	f := mustFunction(t, `\sqrt`, Braces)
	n.Insert(f)
	n.ActivateStart()

	if got := n.MoveRight(); got != Descend {
		t.Fatalf("expected Descend, got %v", got)
	}
	if n.Pos() != 1 {
		t.Errorf("position should be past the function, got %d", n.Pos())
	}
}

func TestDeleteBackwardRemovesLeaf(t *testing.T) {
	n := leaves(t, "1", "2")

	if got := n.DeleteBackward(); got != Moved {
		t.Fatalf("expected Moved, got %v", got)
	}
	if n.Len() != 1 {
		t.Errorf("expected 1 element, got %d", n.Len())
	}
	got := exprsOf(n)
	if len(got) != 1 || got[0] != "1" {
		t.Errorf("expected [1], got %v", got)
	}
	if n.Pos() != 1 {
		t.Errorf("expected pos 1, got %d", n.Pos())
	}
}

func TestDeleteBackwardAtBoundary(t *testing.T) {
	n := leaves(t, "1")
	n.ActivateStart()

	if got := n.DeleteBackward(); got != Boundary {
		t.Errorf("expected Boundary, got %v", got)
	}
	if n.Len() != 1 {
		t.Error("boundary must not delete")
	}
}

func TestDeleteBackwardDescendsIntoFunction(t *testing.T) {
	n := New()
	n.Activate()
	f := mustFunction(t, `\sqrt`, Braces)
	n.Insert(f)

	if got := n.DeleteBackward(); got != Descend {
		t.Fatalf("expected Descend, got %v", got)
	}
	if n.Len() != 1 {
		t.Error("the function must not be deleted on Descend")
	}
}

func TestInsertThenDeleteIsInverse(t *testing.T) {
	n := leaves(t, "1", "2")
	n.ActivateAt(1)
	before := exprsOf(n)
	posBefore := n.Pos()

	n.Insert(&Leaf{Expr: "x"})
	if got := n.DeleteBackward(); got != Moved {
		t.Fatalf("expected Moved, got %v", got)
	}

	after := exprsOf(n)
	if n.Pos() != posBefore {
		t.Errorf("position not restored: %d vs %d", n.Pos(), posBefore)
	}
	if len(before) != len(after) {
		t.Fatalf("content not restored: %v vs %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("content differs at %d: %q vs %q", i, before[i], after[i])
		}
	}
}

func TestActivateIsIdempotent(t *testing.T) {
	n := leaves(t, "1")
	n.Activate()
	n.Activate()

	markers := 0
	for _, el := range n.Children() {
		if _, ok := el.(*CursorMarker); ok {
			markers++
		}
	}
	if markers != 1 {
		t.Errorf("expected exactly 1 marker, got %d", markers)
	}
}

func TestDeactivateRetainsPosition(t *testing.T) {
	n := leaves(t, "1", "2")
	n.ActivateAt(1)
	n.Deactivate()
	n.Deactivate()

	if n.Pos() != 1 {
		t.Errorf("expected pos 1 after deactivate, got %d", n.Pos())
	}
	if len(n.Children()) != 2 {
		t.Errorf("expected 2 children without marker, got %d", len(n.Children()))
	}
}

func TestCursorAtEnd(t *testing.T) {
	n := New()
	if n.CursorAtEnd() {
		t.Error("empty node is never at end")
	}

	n.Activate()
	if !n.CursorAtEnd() {
		t.Error("lone marker is the last child")
	}

	n.Insert(&Leaf{Expr: "1"})
	if !n.CursorAtEnd() {
		t.Error("marker should trail the inserted leaf")
	}

	n.ActivateStart()
	if n.CursorAtEnd() {
		t.Error("marker at start is not at end")
	}
}

func TestActivateEnd(t *testing.T) {
	n := leaves(t, "1", "2", "3")
	n.ActivateStart()
	n.ActivateEnd()

	if n.Pos() != 3 {
		t.Errorf("expected pos 3, got %d", n.Pos())
	}
	if !n.CursorAtEnd() {
		t.Error("cursor should be at end")
	}
}

func TestRemoveAtClampsPosition(t *testing.T) {
	n := leaves(t, "1", "2", "3")
	n.Deactivate()

	n.RemoveAt(0)
	if n.Pos() != 2 {
		t.Errorf("expected pos 2 after removing earlier element, got %d", n.Pos())
	}
	n.RemoveAt(5) // out of range, no-op
	if n.Len() != 2 {
		t.Errorf("expected 2 elements, got %d", n.Len())
	}
}

func TestFromElements(t *testing.T) {
	f := mustFunction(t, `\frac`, Braces, Braces)
	n, err := FromElements([]Element{&Leaf{Expr: "1"}, f}, 1)
	if err != nil {
		t.Fatalf("FromElements: %v", err)
	}
	if n.Pos() != 1 {
		t.Errorf("expected pos 1, got %d", n.Pos())
	}
	if f.Owner() != n {
		t.Error("function should be re-parented to the new node")
	}
}

func TestFromElementsRejectsBadPosition(t *testing.T) {
	if _, err := FromElements([]Element{&Leaf{Expr: "1"}}, 2); err == nil {
		t.Error("expected error for out-of-range position")
	}
	if _, err := FromElements(nil, -1); err == nil {
		t.Error("expected error for negative position")
	}
}
