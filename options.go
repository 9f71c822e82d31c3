package vecrank

import (
	"log/slog"

	"github.com/hupe1980/vecrank/graph"
	"github.com/hupe1980/vecrank/hnsw"
	"github.com/hupe1980/vecrank/rank"
)

// DefaultEFSearch is the search queue size used while materializing the graph.
const DefaultEFSearch = 64

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	workers          int
	overQuery        bool
	efSearch         int
	hnswM            int
	efConstruction   int
	randomSeed       *int64
	zeroMass         rank.ZeroMassPolicy
	weightModel      graph.WeightModel
}

// Option configures a ranking call.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &vecrank.BasicMetricsCollector{}
//	ranks, _ := vecrank.RankSimilarity(in, vecrank.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Edges: %d, Avg rank latency: %dns\n", stats.MaterializeEdges, stats.RankAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for ranking runs.
// Pass nil to disable logging.
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

// WithWorkers bounds the number of goroutines querying the index while the
// similarity graph is materialized. Values <= 0 use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithOverQuery controls how many candidates are requested per node.
// Enabled (default) requests 2*m candidates for better recall; disabled
// requests m+1 so the node's own hit does not take one of the m slots.
func WithOverQuery(enabled bool) Option {
	return func(o *options) {
		o.overQuery = enabled
	}
}

// WithEFSearch sets the search queue size used for neighbour queries.
// It is raised to the query width when smaller.
func WithEFSearch(ef int) Option {
	return func(o *options) {
		o.efSearch = ef
	}
}

// WithHNSW sets the index connectivity M and construction queue size.
// Zero keeps the respective default.
func WithHNSW(m, efConstruction int) Option {
	return func(o *options) {
		o.hnswM = m
		o.efConstruction = efConstruction
	}
}

// WithRandomSeed makes index construction deterministic.
func WithRandomSeed(seed int64) Option {
	return func(o *options) {
		o.randomSeed = &seed
	}
}

// WithZeroMassPolicy selects what a rank vector summing to zero turns into.
// The default is rank.ZeroMassUniform.
func WithZeroMassPolicy(p rank.ZeroMassPolicy) Option {
	return func(o *options) {
		o.zeroMass = p
	}
}

// WithWeightModel replaces the composite edge weight model.
// Pass nil to restore graph.DefaultWeightModel.
func WithWeightModel(m graph.WeightModel) Option {
	return func(o *options) {
		o.weightModel = m
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		overQuery:        true,
		efSearch:         DefaultEFSearch,
		hnswM:            hnsw.DefaultM,
		efConstruction:   hnsw.DefaultEF,
		zeroMass:         rank.ZeroMassUniform,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.hnswM <= 0 {
		o.hnswM = hnsw.DefaultM
	}
	if o.efConstruction <= 0 {
		o.efConstruction = hnsw.DefaultEF
	}
	if o.weightModel == nil {
		o.weightModel = graph.DefaultWeightModel
	}
	return o
}

// queryWidth returns the number of candidates requested per node for m neighbours.
func (o options) queryWidth(m int) int {
	if o.overQuery {
		return max(2*m, m+1)
	}
	return m + 1
}
