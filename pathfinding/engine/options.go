package engine

// Options controls a Search
type Options struct {
	// MaxExpansions caps the number of nodes whose neighbors are relaxed.
	// Zero means unbounded.
	MaxExpansions int
}

// Option is a function that modifies Options
type Option func(*Options)

// WithExpansionLimit aborts the search with ErrExpansionLimitExceeded once
// limit nodes have been expanded without reaching the goal. A limit of zero
// or less disables the cap.
func WithExpansionLimit(limit int) Option {
	return func(options *Options) {
		if limit < 0 {
			limit = 0
		}
		options.MaxExpansions = limit
	}
}
