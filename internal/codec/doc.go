// Package codec converts formula trees to and from the JSON interchange
// form.
//
// The wire shape mirrors the tree:
//
//	Container := { "cursorPosition": int, "children": [Element, ...] }
//	Element   := { "type": "Leaf", "expression": string }
//	           | { "type": "Function", "expression": string,
//	               "args": [kindName, ...], "argNodes": [Container, ...] }
//
// The cursor marker is transient state and never appears on the wire: the
// encoder skips it (the persistent cursorPosition index survives), and the
// decoder never materializes one. A stray element with type "Cursor" in an
// incoming document is dropped.
//
// Decoding is all-or-nothing. Any unknown argument kind, missing field,
// mismatched args/argNodes pair, or out-of-range cursorPosition fails the
// whole decode with a *DecodeError carrying the JSON path of the offending
// value.
package codec
