// Package node provides the editable expression tree for Mathstorm.
//
// The node package handles:
//
//   - The Element variant (Leaf, Function, CursorMarker) that a Node holds
//   - Argument delimiter kinds for Function argument slots
//   - The Node container: an ordered Element sequence with an edit position
//   - Cursor navigation, insertion, and deletion within a single Node
//
// # Tree Shape
//
// A formula is a tree of Nodes. Each Node owns an ordered sequence of
// Elements. A Leaf is a terminal expression fragment such as a digit or an
// operator symbol. A Function is a command fragment (for example `\frac`)
// that owns one child Node per argument slot, each slot tagged with an
// ArgumentKind controlling its delimiters. A CursorMarker is a transient
// sentinel marking the edit position; it exists only in the Node that is
// currently active.
//
// # Navigation Outcomes
//
// MoveLeft, MoveRight, and DeleteBackward return an Outcome. The Node never
// crosses its own boundary: when the cursor would enter a Function's
// argument or leave the Node entirely, the operation reports Descend or
// Boundary and the caller (see the engine package) switches the active Node
// and continues there. This keeps each Node self-contained; a Node only
// knows its direct parent Function, never the rest of the tree.
//
// # Ownership
//
// A Node owns its Elements and, through Functions, the entire subtree below
// it. The back-references (Node to parent Function, Function to owning
// Node) are navigational only and play no part in ownership; the garbage
// collector handles the reference cycle.
//
// # Thread Safety
//
// Nodes are not safe for concurrent use. A formula document is a single
// logical unit with one writer at a time; callers needing concurrency must
// serialize externally.
package node
