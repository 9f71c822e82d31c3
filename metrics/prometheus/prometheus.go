// Package prometheus exports ranking metrics to Prometheus.
//
//	c := prometheus.NewCollector()
//	if err := c.Register(reg); err != nil {
//	    return err
//	}
//	ranks, err := vecrank.RankSimilarity(in, vecrank.WithMetricsCollector(c))
package prometheus

import (
	"time"

	"github.com/hupe1980/vecrank"
	prom "github.com/prometheus/client_golang/prometheus"
)

// Metric names.
const (
	MetricIndexBuildDuration  = "vecrank_index_build_duration_seconds"
	MetricIndexBuildNodes     = "vecrank_index_build_nodes_total"
	MetricMaterializeDuration = "vecrank_materialize_duration_seconds"
	MetricMaterializeEdges    = "vecrank_materialize_edges_total"
	MetricMaterializeErrors   = "vecrank_materialize_errors_total"
	MetricRankDuration        = "vecrank_rank_duration_seconds"
	MetricRankTotal           = "vecrank_rank_total"
	MetricRankIterations      = "vecrank_rank_iterations_total"
	MetricLastRankNodes       = "vecrank_last_rank_nodes"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30}

// Collector implements vecrank.MetricsCollector on top of Prometheus collectors.
// All operations are thread-safe.
type Collector struct {
	indexBuildDuration  prom.Histogram
	indexBuildNodes     prom.Counter
	materializeDuration prom.Histogram
	materializeEdges    prom.Counter
	materializeErrors   prom.Counter
	rankDuration        *prom.HistogramVec
	rankTotal           *prom.CounterVec
	rankIterations      *prom.CounterVec
	lastRankNodes       *prom.GaugeVec
}

var _ vecrank.MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector. The metrics are not registered; call
// Register to add them to a registry.
func NewCollector() *Collector {
	return &Collector{
		indexBuildDuration: prom.NewHistogram(prom.HistogramOpts{
			Name:    MetricIndexBuildDuration,
			Help:    "Histogram of similarity index build duration in seconds",
			Buckets: durationBuckets,
		}),
		indexBuildNodes: prom.NewCounter(prom.CounterOpts{
			Name: MetricIndexBuildNodes,
			Help: "Total number of vectors inserted into similarity indexes",
		}),
		materializeDuration: prom.NewHistogram(prom.HistogramOpts{
			Name:    MetricMaterializeDuration,
			Help:    "Histogram of similarity graph materialization duration in seconds",
			Buckets: durationBuckets,
		}),
		materializeEdges: prom.NewCounter(prom.CounterOpts{
			Name: MetricMaterializeEdges,
			Help: "Total number of edges produced by graph materialization",
		}),
		materializeErrors: prom.NewCounter(prom.CounterOpts{
			Name: MetricMaterializeErrors,
			Help: "Total number of failed graph materializations",
		}),
		rankDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    MetricRankDuration,
			Help:    "Histogram of rank propagation duration in seconds",
			Buckets: durationBuckets,
		}, []string{"mode"}),
		rankTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: MetricRankTotal,
			Help: "Total number of ranking runs",
		}, []string{"mode"}),
		rankIterations: prom.NewCounterVec(prom.CounterOpts{
			Name: MetricRankIterations,
			Help: "Total number of propagation rounds",
		}, []string{"mode"}),
		lastRankNodes: prom.NewGaugeVec(prom.GaugeOpts{
			Name: MetricLastRankNodes,
			Help: "Number of nodes in the last ranking run",
		}, []string{"mode"}),
	}
}

// Register registers all metrics with the given registry.
func (c *Collector) Register(reg prom.Registerer) error {
	for _, col := range c.Collectors() {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// Collectors returns all Prometheus collectors.
func (c *Collector) Collectors() []prom.Collector {
	return []prom.Collector{
		c.indexBuildDuration,
		c.indexBuildNodes,
		c.materializeDuration,
		c.materializeEdges,
		c.materializeErrors,
		c.rankDuration,
		c.rankTotal,
		c.rankIterations,
		c.lastRankNodes,
	}
}

// RecordIndexBuild implements vecrank.MetricsCollector.
func (c *Collector) RecordIndexBuild(nodes int, duration time.Duration) {
	c.indexBuildDuration.Observe(duration.Seconds())
	c.indexBuildNodes.Add(float64(nodes))
}

// RecordMaterialize implements vecrank.MetricsCollector.
func (c *Collector) RecordMaterialize(_, edges int, duration time.Duration, err error) {
	c.materializeDuration.Observe(duration.Seconds())
	if err != nil {
		c.materializeErrors.Inc()
		return
	}
	c.materializeEdges.Add(float64(edges))
}

// RecordRank implements vecrank.MetricsCollector.
func (c *Collector) RecordRank(mode string, nodes, iterations int, duration time.Duration) {
	c.rankDuration.WithLabelValues(mode).Observe(duration.Seconds())
	c.rankTotal.WithLabelValues(mode).Inc()
	c.rankIterations.WithLabelValues(mode).Add(float64(iterations))
	c.lastRankNodes.WithLabelValues(mode).Set(float64(nodes))
}
