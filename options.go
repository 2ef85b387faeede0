package sqrtrank

import "go.uber.org/zap"

type options struct {
	blockWidth int
	logger     *zap.Logger
	metrics    *Metrics
}

// Option configures a BlockIndex at build time.
type Option func(*options)

// WithBlockWidth overrides the number of indices per block.
// Values <= 0 select the default, ceil(sqrt(N)).
func WithBlockWidth(width int) Option {
	return func(o *options) {
		o.blockWidth = width
	}
}

// WithLogger sets the logger used for build and rebuild events.
//
// If nil is passed, logging is disabled.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = zap.NewNop()
		}
		o.logger = logger
	}
}

// WithMetrics attaches a metrics collector. A nil collector records nothing.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
