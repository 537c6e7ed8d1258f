package node

import (
	"errors"
	"fmt"
)

// Errors returned by element construction and kind parsing.
var (
	// ErrNoArguments indicates a Function was constructed without argument slots.
	ErrNoArguments = errors.New("function requires at least one argument slot")

	// ErrArgumentMismatch indicates kinds and argument nodes differ in length.
	ErrArgumentMismatch = errors.New("argument kinds and argument nodes differ in length")

	// ErrUnknownArgumentKind indicates an unrecognized argument kind name.
	ErrUnknownArgumentKind = errors.New("unknown argument kind")
)

// ArgumentKind specifies how a Function argument slot is delimited when the
// formula is rendered.
type ArgumentKind uint8

const (
	// Braces delimits the argument with { and }.
	Braces ArgumentKind = iota

	// Brackets delimits the argument with [ and ].
	Brackets

	// VerticalBars delimits the argument with | and |.
	VerticalBars

	// Parentheses delimits the argument with ( and ).
	Parentheses

	// Power emits only a bare ^ separator. The argument slot's content is
	// not rendered; the slot exists for structural symmetry with the kind
	// list. See Function for details.
	Power
)

// argumentKindNames holds the wire names used in the interchange format.
var argumentKindNames = map[ArgumentKind]string{
	Braces:       "braces",
	Brackets:     "brackets",
	VerticalBars: "verticalBars",
	Parentheses:  "parentheses",
	Power:        "power",
}

// String returns the kind's wire name.
func (k ArgumentKind) String() string {
	if name, ok := argumentKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ArgumentKind(%d)", uint8(k))
}

// Valid reports whether k is a known argument kind.
func (k ArgumentKind) Valid() bool {
	_, ok := argumentKindNames[k]
	return ok
}

// Delimiters returns the opening and closing strings emitted around an
// argument slot of this kind. Power has no opening delimiter; its closing
// string is the bare ^ separator.
func (k ArgumentKind) Delimiters() (opening, closing string) {
	switch k {
	case Braces:
		return "{", "}"
	case Brackets:
		return "[", "]"
	case VerticalBars:
		return "|", "|"
	case Parentheses:
		return "(", ")"
	case Power:
		return "", "^"
	default:
		return "", ""
	}
}

// RendersContent reports whether an argument slot of this kind renders its
// node's content. Only Power skips its content.
func (k ArgumentKind) RendersContent() bool {
	return k != Power
}

// ParseArgumentKind parses a wire name into an ArgumentKind.
func ParseArgumentKind(name string) (ArgumentKind, error) {
	for kind, n := range argumentKindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownArgumentKind, name)
}

// Element is anything a Node can hold: a Leaf, a Function, or a
// CursorMarker. The set of implementations is closed; rendering and
// encoding switch exhaustively over it.
type Element interface {
	element()
}

// Leaf is a terminal expression fragment, such as a digit, a variable, or
// an operator symbol. Leaves have no children and are immutable.
type Leaf struct {
	// Expr is the literal fragment emitted when rendering.
	Expr string
}

func (*Leaf) element() {}

// CursorMarker marks the current edit position. It is transient: at most
// one exists in the whole tree, in the Node that is currently active, and
// it is never written to the interchange form.
type CursorMarker struct{}

func (*CursorMarker) element() {}

// Function is an expression fragment with one or more argument slots. Each
// slot pairs an ArgumentKind with an owned argument Node; the two lists
// always have equal length.
type Function struct {
	// Expr is the command fragment emitted before the argument slots,
	// for example `\frac` or `\sqrt`.
	Expr string

	kinds []ArgumentKind
	args  []*Node
	owner *Node
}

func (*Function) element() {}

// NewFunction creates a Function with one empty argument Node per kind.
func NewFunction(expr string, kinds []ArgumentKind) (*Function, error) {
	args := make([]*Node, len(kinds))
	for i := range args {
		args[i] = New()
	}
	return NewFunctionWithArgs(expr, kinds, args)
}

// NewFunctionWithArgs creates a Function around pre-built argument Nodes.
// Each argument Node's parent is set to the new Function.
func NewFunctionWithArgs(expr string, kinds []ArgumentKind, args []*Node) (*Function, error) {
	if len(kinds) == 0 {
		return nil, ErrNoArguments
	}
	if len(kinds) != len(args) {
		return nil, fmt.Errorf("%w: %d kinds, %d nodes", ErrArgumentMismatch, len(kinds), len(args))
	}
	f := &Function{
		Expr:  expr,
		kinds: append([]ArgumentKind(nil), kinds...),
		args:  append([]*Node(nil), args...),
	}
	for _, arg := range f.args {
		arg.parent = f
	}
	return f, nil
}

// NArgs returns the number of argument slots.
func (f *Function) NArgs() int {
	return len(f.args)
}

// Kind returns the ArgumentKind of slot i.
func (f *Function) Kind(i int) ArgumentKind {
	return f.kinds[i]
}

// Kinds returns a copy of the argument kind list.
func (f *Function) Kinds() []ArgumentKind {
	return append([]ArgumentKind(nil), f.kinds...)
}

// Arg returns the argument Node of slot i.
func (f *Function) Arg(i int) *Node {
	return f.args[i]
}

// ArgIndex returns the slot index of the given argument Node, or -1 if the
// Node is not an argument of this Function.
func (f *Function) ArgIndex(n *Node) int {
	for i, arg := range f.args {
		if arg == n {
			return i
		}
	}
	return -1
}

// Owner returns the Node this Function was inserted into, or nil if the
// Function is not part of a tree yet. The reference is navigational only.
func (f *Function) Owner() *Node {
	return f.owner
}

// Empty reports whether every argument Node has no content. Cursor markers
// do not count as content.
func (f *Function) Empty() bool {
	for _, arg := range f.args {
		if arg.Len() > 0 {
			return false
		}
	}
	return true
}
