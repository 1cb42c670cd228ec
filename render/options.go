package render

import "log/slog"

// Option configures a Context during creation.
//
//	ctx, err := render.NewFramebuffer(fb,
//		render.WithAllocator(render.NewBudget(1<<20)),
//		render.WithLogger(slog.Default()),
//	)
type Option func(*options)

type options struct {
	alloc  Allocator
	logger *slog.Logger
}

func defaultOptions() options {
	return options{
		alloc:  HeapAllocator,
		logger: newNopLogger(),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithAllocator injects the allocation strategy used for every buffer the
// context and its backend create. A nil allocator keeps HeapAllocator.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithLogger sets the context's logger. The renderer only logs at debug
// level. By default nothing is logged; nil restores that.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = newNopLogger()
		}
		o.logger = l
	}
}
