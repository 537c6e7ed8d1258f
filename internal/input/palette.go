package input

import "github.com/dshills/mathstorm/internal/engine/node"

// Entry describes what a palette key inserts.
type Entry struct {
	// Expr is the expression fragment to insert.
	Expr string

	// Kinds is non-empty for a function insertion; empty for a symbol.
	Kinds []node.ArgumentKind
}

// IsFunction reports whether the entry inserts a function.
func (e Entry) IsFunction() bool {
	return len(e.Kinds) > 0
}

// Palette maps printable keys to insertions.
type Palette struct {
	entries map[rune]Entry
}

// NewPalette creates an empty palette.
func NewPalette() *Palette {
	return &Palette{entries: make(map[rune]Entry)}
}

// DefaultPalette returns the standard key layout.
func DefaultPalette() *Palette {
	p := NewPalette()

	for r := '0'; r <= '9'; r++ {
		p.BindSymbol(r, string(r))
	}
	for r := 'a'; r <= 'z'; r++ {
		p.BindSymbol(r, string(r))
	}
	for r := 'A'; r <= 'Z'; r++ {
		p.BindSymbol(r, string(r))
	}
	for _, r := range "+-=<>,.!()" {
		p.BindSymbol(r, string(r))
	}
	p.BindSymbol('*', `\cdot`)
	p.BindSymbol('%', `\%`)

	p.BindFunction('/', `\frac`, node.Braces, node.Braces)
	p.BindFunction('^', `^`, node.Braces)
	p.BindFunction('_', `_`, node.Braces)
	p.BindFunction('|', ``, node.VerticalBars)
	p.BindFunction('#', `\sqrt`, node.Braces)

	return p
}

// BindSymbol maps r to a plain symbol insertion.
func (p *Palette) BindSymbol(r rune, expr string) {
	p.entries[r] = Entry{Expr: expr}
}

// BindFunction maps r to a function insertion.
func (p *Palette) BindFunction(r rune, expr string, kinds ...node.ArgumentKind) {
	p.entries[r] = Entry{Expr: expr, Kinds: kinds}
}

// Lookup returns the entry bound to r.
func (p *Palette) Lookup(r rune) (Entry, bool) {
	e, ok := p.entries[r]
	return e, ok
}
