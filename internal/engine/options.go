package engine

// options holds engine configuration.
type options struct {
	maxUndo int
}

// Option configures an Engine at creation time.
type Option func(*options)

// WithMaxUndo bounds the undo history to n snapshots. A non-positive n
// selects the history package default.
func WithMaxUndo(n int) Option {
	return func(o *options) {
		o.maxUndo = n
	}
}
