package codec

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/mathstorm/internal/engine/node"
)

// Errors returned by decoding.
var (
	// ErrInvalidJSON indicates the input is not well-formed JSON.
	ErrInvalidJSON = errors.New("invalid JSON document")

	// ErrMissingField indicates a required field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidField indicates a field holds the wrong JSON type.
	ErrInvalidField = errors.New("invalid field value")

	// ErrUnknownElementType indicates an unrecognized "type" discriminant.
	ErrUnknownElementType = errors.New("unknown element type")
)

// DecodeError wraps a decoding failure with the JSON path of the offending
// value.
type DecodeError struct {
	// Path locates the failure, e.g. "children.2.argNodes.0".
	Path string

	// Err is the underlying error.
	Err error
}

// Error returns the formatted error message.
func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode: %v", e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(path string, err error) error {
	return &DecodeError{Path: path, Err: err}
}

// Decode reconstructs a formula tree from the interchange form. The whole
// decode fails on the first invalid value; no partially-built tree is ever
// returned. The result carries no cursor marker; callers activate a node
// themselves.
func Decode(data []byte) (*node.Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, decodeErr("", ErrInvalidJSON)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, decodeErr("", fmt.Errorf("%w: document is not an object", ErrInvalidField))
	}
	return decodeContainer(root, "")
}

func decodeContainer(res gjson.Result, path string) (*node.Node, error) {
	pos := res.Get("cursorPosition")
	if !pos.Exists() {
		return nil, decodeErr(join(path, "cursorPosition"), ErrMissingField)
	}
	if pos.Type != gjson.Number {
		return nil, decodeErr(join(path, "cursorPosition"), fmt.Errorf("%w: expected number", ErrInvalidField))
	}

	childrenRes := res.Get("children")
	if !childrenRes.Exists() {
		return nil, decodeErr(join(path, "children"), ErrMissingField)
	}
	if !childrenRes.IsArray() {
		return nil, decodeErr(join(path, "children"), fmt.Errorf("%w: expected array", ErrInvalidField))
	}

	var elements []node.Element
	for i, child := range childrenRes.Array() {
		childPath := fmt.Sprintf("%s.%d", join(path, "children"), i)
		el, err := decodeElement(child, childPath)
		if err != nil {
			return nil, err
		}
		if el == nil {
			// Dropped cursor artifact.
			continue
		}
		elements = append(elements, el)
	}

	n, err := node.FromElements(elements, int(pos.Int()))
	if err != nil {
		return nil, decodeErr(join(path, "cursorPosition"), err)
	}
	return n, nil
}

// decodeElement returns the decoded Element, or nil for a stray cursor
// artifact that must be dropped rather than reinstated.
func decodeElement(res gjson.Result, path string) (node.Element, error) {
	if !res.IsObject() {
		return nil, decodeErr(path, fmt.Errorf("%w: expected object", ErrInvalidField))
	}
	typ := res.Get("type")
	if !typ.Exists() {
		return nil, decodeErr(join(path, "type"), ErrMissingField)
	}

	switch typ.String() {
	case typeLeaf:
		expr := res.Get("expression")
		if !expr.Exists() {
			return nil, decodeErr(join(path, "expression"), ErrMissingField)
		}
		if expr.Type != gjson.String {
			return nil, decodeErr(join(path, "expression"), fmt.Errorf("%w: expected string", ErrInvalidField))
		}
		return &node.Leaf{Expr: expr.String()}, nil

	case typeFunction:
		return decodeFunction(res, path)

	case typeCursor:
		return nil, nil

	default:
		return nil, decodeErr(join(path, "type"), fmt.Errorf("%w: %q", ErrUnknownElementType, typ.String()))
	}
}

func decodeFunction(res gjson.Result, path string) (node.Element, error) {
	expr := res.Get("expression")
	if !expr.Exists() {
		return nil, decodeErr(join(path, "expression"), ErrMissingField)
	}
	if expr.Type != gjson.String {
		return nil, decodeErr(join(path, "expression"), fmt.Errorf("%w: expected string", ErrInvalidField))
	}

	argsRes := res.Get("args")
	if !argsRes.Exists() {
		return nil, decodeErr(join(path, "args"), ErrMissingField)
	}
	if !argsRes.IsArray() {
		return nil, decodeErr(join(path, "args"), fmt.Errorf("%w: expected array", ErrInvalidField))
	}
	var kinds []node.ArgumentKind
	for i, arg := range argsRes.Array() {
		argPath := fmt.Sprintf("%s.%d", join(path, "args"), i)
		if arg.Type != gjson.String {
			return nil, decodeErr(argPath, fmt.Errorf("%w: expected string", ErrInvalidField))
		}
		kind, err := node.ParseArgumentKind(arg.String())
		if err != nil {
			return nil, decodeErr(argPath, err)
		}
		kinds = append(kinds, kind)
	}

	nodesRes := res.Get("argNodes")
	if !nodesRes.Exists() {
		return nil, decodeErr(join(path, "argNodes"), ErrMissingField)
	}
	if !nodesRes.IsArray() {
		return nil, decodeErr(join(path, "argNodes"), fmt.Errorf("%w: expected array", ErrInvalidField))
	}
	var argNodes []*node.Node
	for i, argNode := range nodesRes.Array() {
		nodePath := fmt.Sprintf("%s.%d", join(path, "argNodes"), i)
		child, err := decodeContainer(argNode, nodePath)
		if err != nil {
			return nil, err
		}
		argNodes = append(argNodes, child)
	}

	f, err := node.NewFunctionWithArgs(expr.String(), kinds, argNodes)
	if err != nil {
		return nil, decodeErr(path, err)
	}
	return f, nil
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}
