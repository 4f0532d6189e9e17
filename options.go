package resourceez

import "fmt"

// An Option configures construction.
type Option func(*options) error

type options struct {
	maxDepth int
	resolver *Resolver
}

const defaultMaxDepth = 1000

func newOptions(opts []Option) (options, error) {
	o := options{
		maxDepth: defaultMaxDepth,
		resolver: defaultResolver,
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return o, err
		}
	}
	return o, nil
}

// MaxDepth returns an Option that sets the maximum recursion depth for
// construction. This helps prevent stack overflows when constructing from
// highly nested raw mappings.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("resourceez: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// WithResolver returns an Option that routes shape resolution through r
// instead of the process-wide default cache. Tests that declare throwaway
// model types can use this to keep their tables isolated.
func WithResolver(r *Resolver) Option {
	return func(o *options) error {
		if r == nil {
			return fmt.Errorf("resourceez: resolver must not be nil")
		}
		o.resolver = r
		return nil
	}
}
