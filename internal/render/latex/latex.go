// Package latex builds the formatted LaTeX string for a formula tree.
//
// Rendering walks a node's Elements in order. A Leaf contributes its
// literal fragment, a Function contributes its command fragment followed by
// its delimited argument slots, and a CursorMarker contributes a
// color-tagged caret token. An empty node renders as the \Box placeholder
// unless suppressed with WithoutPlaceholder.
//
// A CursorMarker can only be rendered when a cursor color was supplied via
// WithCursorColor; rendering an active tree without one fails with
// ErrNoCursorColor rather than substituting a default.
package latex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/mathstorm/internal/engine/node"
)

// Placeholder is emitted for a node without content.
const Placeholder = `\Box`

// ErrNoCursorColor indicates a cursor marker was rendered without a color.
var ErrNoCursorColor = errors.New("cursor marker rendered without a cursor color")

// options holds rendering configuration.
type options struct {
	cursorColor   string
	noPlaceholder bool
}

// Option configures rendering.
type Option func(*options)

// WithCursorColor sets the caret color as a 6-digit hex string. A leading
// '#' is accepted and stripped.
func WithCursorColor(hex string) Option {
	return func(o *options) {
		o.cursorColor = strings.TrimPrefix(hex, "#")
	}
}

// WithoutPlaceholder renders empty nodes as the empty string instead of
// the \Box placeholder.
func WithoutPlaceholder() Option {
	return func(o *options) {
		o.noPlaceholder = true
	}
}

// Render returns the formatted string for the tree rooted at n.
func Render(n *node.Node, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var b strings.Builder
	if err := renderNode(&b, n, &o); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderNode(b *strings.Builder, n *node.Node, o *options) error {
	children := n.Children()
	if len(children) == 0 {
		if !o.noPlaceholder {
			b.WriteString(Placeholder)
		}
		return nil
	}

	for _, el := range children {
		switch el := el.(type) {
		case *node.Leaf:
			b.WriteString(el.Expr)
		case *node.Function:
			if err := renderFunction(b, el, o); err != nil {
				return err
			}
		case *node.CursorMarker:
			if o.cursorColor == "" {
				return ErrNoCursorColor
			}
			fmt.Fprintf(b, `\textcolor{#%s}{\cursor}`, o.cursorColor)
		default:
			return fmt.Errorf("unhandled element %T", el)
		}
	}
	return nil
}

func renderFunction(b *strings.Builder, f *node.Function, o *options) error {
	b.WriteString(f.Expr)
	for i := 0; i < f.NArgs(); i++ {
		kind := f.Kind(i)
		opening, closing := kind.Delimiters()
		b.WriteString(opening)
		// A power slot contributes only its bare separator; the paired
		// argument node is never rendered.
		if kind.RendersContent() {
			if err := renderNode(b, f.Arg(i), o); err != nil {
				return err
			}
		}
		b.WriteString(closing)
	}
	return nil
}
