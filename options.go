package janconf

import "fmt"

// Option configures parsing and serialization. Options that do not apply to
// an operation are ignored by it.
type Option func(*options) error

type options struct {
	indent       int
	valueSpacing bool
	maxDepth     int
}

const (
	defaultIndent   = 2
	defaultMaxDepth = 1000
)

func newOptions(opts []Option) (*options, error) {
	o := &options{
		indent:       defaultIndent,
		valueSpacing: true,
		maxDepth:     defaultMaxDepth,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Indent sets the number of spaces each group level is indented by when
// serializing. The default is 2; n must be at least 1.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return fmt.Errorf("%w: indent must be at least 1 space, got %d", ErrConfiguration, n)
		}
		o.indent = n
		return nil
	}
}

// ValueSpacing controls whether a single space follows the ':' of a scalar
// entry when serializing. It is on by default.
func ValueSpacing(on bool) Option {
	return func(o *options) error {
		o.valueSpacing = on
		return nil
	}
}

// MaxDepth sets the maximum group nesting depth accepted by the parser. This
// guards against stack exhaustion on hostile input.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("%w: max depth must be a positive integer", ErrConfiguration)
		}
		o.maxDepth = n
		return nil
	}
}
