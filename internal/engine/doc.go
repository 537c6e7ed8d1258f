// Package engine drives editing of a formula document.
//
// The engine package serves as the main facade. It owns the tree's root
// node and the single active node (the one holding the materialized cursor
// marker), and it is the only place that branches on navigation outcomes:
// when a node reports Descend or Boundary, the engine switches the active
// node — into a function argument, across sibling arguments, or up past a
// function — and the nodes themselves stay ignorant of the tree above and
// below them.
//
// # Sub-packages
//
//   - node: the expression tree and per-node cursor navigation
//   - history: snapshot-based undo/redo
//
// # Basic Usage
//
//	e := engine.New()
//	e.InsertSymbol("1")
//	e.InsertSymbol("+")
//	e.InsertFunction(`\frac`, []node.ArgumentKind{node.Braces, node.Braces})
//	e.InsertSymbol("2")       // typing lands in the numerator
//
//	out, _ := e.Render(latex.WithCursorColor("#4A90D9"))
//
// # Persistence
//
//	data, _ := e.Encode()     // JSON interchange form, cursor skipped
//	err := e.Load(data)       // replaces the document, clears history
//
// # Thread Safety
//
// An Engine is a single logical document with single-writer semantics.
// Callers needing concurrent access must serialize externally.
package engine
