package json0diff

const defaultMaxDepth = 1000

// Option configures value normalization.
type Option func(*config)

type config struct {
	maxDepth int
}

// WithMaxDepth bounds how deeply nested an input may be. Inputs that nest
// deeper, including cyclic ones, are rejected with ErrTooDeep.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

func newConfig(opts []Option) config {
	c := config{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
