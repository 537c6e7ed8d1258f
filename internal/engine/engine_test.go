package engine

import (
	"testing"

	"github.com/dshills/mathstorm/internal/engine/node"
	"github.com/dshills/mathstorm/internal/render/latex"
)

func render(t *testing.T, e *Engine) string {
	t.Helper()
	out, err := e.Render(latex.WithCursorColor("#000000"), latex.WithoutPlaceholder())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

// plain renders without the cursor token for easy comparison.
func plain(t *testing.T, e *Engine) string {
	t.Helper()
	e.Active().Deactivate()
	defer e.Active().Activate()
	out, err := e.Render(latex.WithoutPlaceholder())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

var fracKinds = []node.ArgumentKind{node.Braces, node.Braces}

func TestInsertSymbols(t *testing.T) {
	e := New()
	e.InsertSymbol("1")
	e.InsertSymbol("+")
	e.InsertSymbol("2")

	if got := plain(t, e); got != "1+2" {
		t.Errorf("expected 1+2, got %q", got)
	}
	if !e.CursorAtDocumentEnd() {
		t.Error("cursor should trail the document")
	}
}

func TestInsertFunctionEntersFirstArgument(t *testing.T) {
	e := New()
	if err := e.InsertFunction(`\frac`, fracKinds); err != nil {
		t.Fatalf("InsertFunction: %v", err)
	}
	e.InsertSymbol("1")

	if got := plain(t, e); got != `\frac{1}{}` {
		t.Errorf("typing should land in the numerator, got %q", got)
	}
	if e.Active() == e.Root() {
		t.Error("active node should be the first argument, not the root")
	}
}

func TestInsertFunctionRejectsNoArguments(t *testing.T) {
	e := New()
	if err := e.InsertFunction(`\frac`, nil); err == nil {
		t.Error("expected error for function without argument slots")
	}
}

func TestMoveRightAcrossArguments(t *testing.T) {
	e := New()
	if err := e.InsertFunction(`\frac`, fracKinds); err != nil {
		t.Fatalf("InsertFunction: %v", err)
	}
	e.InsertSymbol("1") // numerator

	// End of numerator -> start of denominator.
	e.MoveRight()
	e.InsertSymbol("2")

	if got := plain(t, e); got != `\frac{1}{2}` {
		t.Errorf("expected \\frac{1}{2}, got %q", got)
	}

	// End of denominator -> after the function in the root.
	e.MoveRight()
	if e.Active() != e.Root() {
		t.Fatal("cursor should have ascended to the root")
	}
	if !e.CursorAtDocumentEnd() {
		t.Error("cursor should trail the function")
	}
}

func TestMoveLeftAcrossArguments(t *testing.T) {
	e := New()
	e.InsertSymbol("a")
	if err := e.InsertFunction(`\frac`, fracKinds); err != nil {
		t.Fatalf("InsertFunction: %v", err)
	}
	e.InsertSymbol("1")
	e.MoveRight() // denominator
	e.InsertSymbol("2")

	// Start of denominator is reached after one left move past "2".
	e.MoveLeft()
	e.MoveLeft() // -> end of numerator
	if e.Active().Parent() == nil {
		t.Fatal("cursor should still be inside the function")
	}
	if !e.Active().CursorAtEnd() {
		t.Error("cursor should sit at the end of the numerator")
	}

	e.MoveLeft() // past "1"
	e.MoveLeft() // -> root, before the function
	if e.Active() != e.Root() {
		t.Fatal("cursor should have ascended to the root")
	}
	if e.Root().Pos() != 1 {
		t.Errorf("cursor should sit between a and the function, pos = %d", e.Root().Pos())
	}
}

func TestMoveRightDescendsIntoFunction(t *testing.T) {
	e := New()
	if err := e.InsertFunction(`\sqrt`, []node.ArgumentKind{node.Braces}); err != nil {
		t.Fatalf("InsertFunction: %v", err)
	}
	e.InsertSymbol("x")
	e.MoveRight() // ascend to root, after the function
	e.MoveLeft()  // descend back to the end of the argument

	if e.Active().Parent() == nil {
		t.Fatal("cursor should be inside the function")
	}
	if !e.Active().CursorAtEnd() {
		t.Error("descending from the right should land at the argument's end")
	}

	e.MoveLeft() // past "x"
	e.MoveLeft() // -> root, before function
	e.MoveRight() // descend into first argument from the left
	if e.Active().Parent() == nil {
		t.Fatal("cursor should be inside the function")
	}
	if e.Active().Pos() != 0 {
		t.Errorf("descending from the left should land at the start, pos = %d", e.Active().Pos())
	}
}

func TestMoveAtDocumentEdges(t *testing.T) {
	e := New()
	e.InsertSymbol("1")

	e.MoveRight() // no-op at right edge
	if !e.CursorAtDocumentEnd() {
		t.Error("right edge move should be a no-op")
	}

	e.MoveLeft()
	e.MoveLeft() // no-op at left edge
	if e.Root().Pos() != 0 {
		t.Errorf("left edge move should be a no-op, pos = %d", e.Root().Pos())
	}
}

func TestDeleteBackward(t *testing.T) {
	e := New()
	e.InsertSymbol("1")
	e.InsertSymbol("2")
	e.DeleteBackward()

	if got := plain(t, e); got != "1" {
		t.Errorf("expected 1, got %q", got)
	}
}

func TestDeleteBackwardEntersFunction(t *testing.T) {
	e := New()
	if err := e.InsertFunction(`\frac`, fracKinds); err != nil {
		t.Fatalf("InsertFunction: %v", err)
	}
	e.InsertSymbol("1")
	e.MoveRight()
	e.InsertSymbol("2")
	e.MoveRight() // root, after the function

	e.DeleteBackward()
	if got := plain(t, e); got != `\frac{1}{2}` {
		t.Errorf("function must survive the first backspace, got %q", got)
	}
	if e.Active().Parent() == nil {
		t.Error("cursor should have moved inside the function")
	}

	e.DeleteBackward() // removes "2"
	if got := plain(t, e); got != `\frac{1}{}` {
		t.Errorf("expected \\frac{1}{}, got %q", got)
	}
}

func TestDeleteBackwardCollapsesEmptyFunction(t *testing.T) {
	e := New()
	e.InsertSymbol("a")
	if err := e.InsertFunction(`\sqrt`, []node.ArgumentKind{node.Braces}); err != nil {
		t.Fatalf("InsertFunction: %v", err)
	}

	// Cursor is at the start of the empty argument; backspace removes the
	// whole function.
	e.DeleteBackward()
	if got := plain(t, e); got != "a" {
		t.Errorf("expected a, got %q", got)
	}
	if e.Active() != e.Root() {
		t.Error("cursor should be back in the root")
	}
	if e.Root().Pos() != 1 {
		t.Errorf("cursor should sit where the function was, pos = %d", e.Root().Pos())
	}
}

func TestDeleteBackwardKeepsPopulatedFunction(t *testing.T) {
	e := New()
	if err := e.InsertFunction(`\frac`, fracKinds); err != nil {
		t.Fatalf("InsertFunction: %v", err)
	}
	e.InsertSymbol("1")
	e.MoveLeft() // before "1", at start of numerator

	e.DeleteBackward() // boundary; function stays, cursor moves before it
	if got := plain(t, e); got != `\frac{1}{}` {
		t.Errorf("populated function must not be deleted, got %q", got)
	}
	if e.Active() != e.Root() || e.Root().Pos() != 0 {
		t.Error("cursor should sit before the function in the root")
	}
}

func TestDeleteBackwardHopsToPreviousArgument(t *testing.T) {
	e := New()
	if err := e.InsertFunction(`\frac`, fracKinds); err != nil {
		t.Fatalf("InsertFunction: %v", err)
	}
	e.InsertSymbol("1")
	e.MoveRight() // denominator start

	e.DeleteBackward()
	if !e.Active().CursorAtEnd() || e.Active().Parent() == nil {
		t.Error("cursor should sit at the end of the numerator")
	}
	if got := plain(t, e); got != `\frac{1}{}` {
		t.Errorf("nothing should be deleted, got %q", got)
	}
}

func TestUndoRedo(t *testing.T) {
	e := New()
	e.InsertSymbol("1")
	e.InsertSymbol("2")

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := plain(t, e); got != "1" {
		t.Errorf("expected 1 after undo, got %q", got)
	}

	if err := e.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := plain(t, e); got != "12" {
		t.Errorf("expected 12 after redo, got %q", got)
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	e := New()
	if err := e.Undo(); err == nil {
		t.Error("expected error undoing with empty history")
	}
}

func TestMovementDoesNotCheckpoint(t *testing.T) {
	e := New()
	e.InsertSymbol("1")
	e.MoveLeft()
	e.MoveRight()

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := plain(t, e); got != "" {
		t.Errorf("single undo should remove the insert, got %q", got)
	}
	if e.CanUndo() {
		t.Error("movement must not add history entries")
	}
}

func TestEncodeLoadRoundTrip(t *testing.T) {
	e := New()
	e.InsertSymbol("1")
	if err := e.InsertFunction(`\frac`, fracKinds); err != nil {
		t.Fatalf("InsertFunction: %v", err)
	}
	e.InsertSymbol("2")

	data, err := e.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	loaded := New()
	if err := loaded.Load(data); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := plain(t, loaded), plain(t, e); got != want {
		t.Errorf("round trip mismatch: %q vs %q", got, want)
	}
	if loaded.CanUndo() {
		t.Error("load should clear history")
	}
}

func TestLoadRejectsBadDocument(t *testing.T) {
	e := New()
	e.InsertSymbol("1")

	if err := e.Load([]byte(`{"cursorPosition": 9, "children": []}`)); err == nil {
		t.Fatal("expected load error")
	}
	// Document must be untouched after a failed load.
	if got := plain(t, e); got != "1" {
		t.Errorf("failed load must not modify the document, got %q", got)
	}
}

func TestClear(t *testing.T) {
	e := New()
	e.InsertSymbol("1")
	e.Clear()

	if got := plain(t, e); got != "" {
		t.Errorf("expected empty document, got %q", got)
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := plain(t, e); got != "1" {
		t.Errorf("undo should restore the cleared document, got %q", got)
	}
}

func TestRenderWithCursor(t *testing.T) {
	e := New()
	e.InsertSymbol("1")

	got := render(t, e)
	want := `1\textcolor{#000000}{\cursor}`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
