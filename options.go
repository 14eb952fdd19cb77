package celllist

import (
	"log/slog"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	indexOffset      int
	compression      Compression
}

// Option configures store construction, snapshot and query behavior.
//
// A built store keeps the options it was created with; Merge results inherit
// the options of the left operand.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := celllist.NewJSONLogger(slog.LevelDebug)
//	s, _ := celllist.Build(points, 0.01, celllist.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &celllist.BasicMetricsCollector{}
//	s, _ := celllist.Build(points, r, celllist.WithMetricsCollector(metrics))
//	_ = s.NearNeighbors()
//	stats := metrics.GetStats()
//	fmt.Printf("Builds: %d, Pairs: %d\n", stats.BuildCount, stats.PairsEmitted)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithIndexOffset shifts every point index recorded by a build by offset.
//
// Row i of the input is stored as index offset+i. This lets independently
// built batches of one logical point array be merged without their indices
// colliding. Negative offsets are rejected by the builders.
func WithIndexOffset(offset int) Option {
	return func(o *options) {
		o.indexOffset = offset
	}
}

// WithCompression selects the body compression used by (*Store).WriteTo.
// Readers detect the compression from the snapshot header.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		compression:      CompressionNone,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
