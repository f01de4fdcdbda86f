package chainmap

import (
	"go.uber.org/zap"
)

const (
	// DefaultCapacity is the number of buckets of a new map, and the
	// default growth floor.
	DefaultCapacity = 100

	// DefaultGrowthFactor is the capacity multiplier applied on growth.
	// Growth triggers once size exceeds DefaultGrowthFactor/2 entries per
	// bucket.
	DefaultGrowthFactor = 4
)

type options struct {
	capacity     int
	growthFloor  int
	growthFactor int
	logger       *zap.Logger
	metricsName  string
}

// Option configures a Map at construction time.
type Option func(*options)

// WithCapacity sets the initial number of buckets. Values <= 0 keep
// DefaultCapacity.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithGrowthFloor sets the size and capacity below which growth is never
// considered. Values < 0 keep the default.
func WithGrowthFloor(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.growthFloor = n
		}
	}
}

// WithGrowthFactor sets the capacity multiplier used on growth. Factors
// below 2 would never grow the table and panic.
func WithGrowthFactor(f int) Option {
	if f < 2 {
		panic("chainmap: growth factor must be at least 2")
	}
	return func(o *options) {
		o.growthFactor = f
	}
}

// WithLogger sets the logger used to report growth.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics enables Prometheus instrumentation. name is used as the
// "name" label of every metric, so maps sharing a name share series.
func WithMetrics(name string) Option {
	return func(o *options) {
		o.metricsName = name
	}
}

func buildOptions(opts []Option) options {
	o := options{
		capacity:     DefaultCapacity,
		growthFloor:  DefaultCapacity,
		growthFactor: DefaultGrowthFactor,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
