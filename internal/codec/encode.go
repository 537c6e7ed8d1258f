package codec

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/pretty"

	"github.com/dshills/mathstorm/internal/engine/node"
)

// containerEnc is the wire form of a Node.
type containerEnc struct {
	CursorPosition int          `json:"cursorPosition"`
	Children       []elementEnc `json:"children"`
}

// elementEnc is the wire form of a Leaf or Function, discriminated by Type.
type elementEnc struct {
	Type       string         `json:"type"`
	Expression string         `json:"expression"`
	Args       []string       `json:"args,omitempty"`
	ArgNodes   []containerEnc `json:"argNodes,omitempty"`
}

// Discriminant values for the "type" tag.
const (
	typeLeaf     = "Leaf"
	typeFunction = "Function"
	typeCursor   = "Cursor"
)

// encOptions holds encoding configuration.
type encOptions struct {
	indent bool
}

// EncodeOption configures encoding.
type EncodeOption func(*encOptions)

// WithIndent produces human-readable indented output.
func WithIndent() EncodeOption {
	return func(o *encOptions) {
		o.indent = true
	}
}

// Encode serializes the tree rooted at n. A materialized cursor marker
// anywhere in the tree is skipped; only the persistent cursorPosition
// indexes survive.
func Encode(n *node.Node, opts ...EncodeOption) ([]byte, error) {
	var o encOptions
	for _, opt := range opts {
		opt(&o)
	}

	enc, err := encodeContainer(n)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(enc)
	if err != nil {
		return nil, fmt.Errorf("encoding formula: %w", err)
	}
	if o.indent {
		data = pretty.Pretty(data)
	}
	return data, nil
}

func encodeContainer(n *node.Node) (containerEnc, error) {
	children := make([]elementEnc, 0, n.Len())
	for _, el := range n.Children() {
		switch el := el.(type) {
		case *node.Leaf:
			children = append(children, elementEnc{
				Type:       typeLeaf,
				Expression: el.Expr,
			})
		case *node.Function:
			fn, err := encodeFunction(el)
			if err != nil {
				return containerEnc{}, err
			}
			children = append(children, fn)
		case *node.CursorMarker:
			// Transient, never persisted.
		default:
			return containerEnc{}, fmt.Errorf("unhandled element %T", el)
		}
	}

	pos := n.Pos()
	if pos > len(children) {
		pos = len(children)
	}
	return containerEnc{CursorPosition: pos, Children: children}, nil
}

func encodeFunction(f *node.Function) (elementEnc, error) {
	kinds := f.Kinds()
	args := make([]string, len(kinds))
	for i, k := range kinds {
		args[i] = k.String()
	}
	argNodes := make([]containerEnc, f.NArgs())
	for i := 0; i < f.NArgs(); i++ {
		enc, err := encodeContainer(f.Arg(i))
		if err != nil {
			return elementEnc{}, err
		}
		argNodes[i] = enc
	}
	return elementEnc{
		Type:       typeFunction,
		Expression: f.Expr,
		Args:       args,
		ArgNodes:   argNodes,
	}, nil
}
