package vecrank

import (
	"sync/atomic"
	"time"
)

// Ranking modes reported to MetricsCollector and Logger.
const (
	ModeSimilarity = "similarity"
	ModeTemporal   = "temporal"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// metrics/prometheus package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordIndexBuild is called after the similarity index is built.
	RecordIndexBuild(nodes int, duration time.Duration)

	// RecordMaterialize is called after the similarity graph is materialized.
	// edges is the number of edges produced, err is nil if successful.
	RecordMaterialize(nodes, edges int, duration time.Duration, err error)

	// RecordRank is called after a propagation run of the given mode.
	RecordRank(mode string, nodes, iterations int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIndexBuild(int, time.Duration)              {}
func (NoopMetricsCollector) RecordMaterialize(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRank(string, int, int, time.Duration)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IndexBuildCount       atomic.Int64
	IndexBuildNodes       atomic.Int64
	IndexBuildTotalNanos  atomic.Int64
	MaterializeCount      atomic.Int64
	MaterializeErrors     atomic.Int64
	MaterializeEdges      atomic.Int64
	MaterializeTotalNanos atomic.Int64
	SimilarityRankCount   atomic.Int64
	TemporalRankCount     atomic.Int64
	RankIterations        atomic.Int64
	RankTotalNanos        atomic.Int64
}

// RecordIndexBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIndexBuild(nodes int, duration time.Duration) {
	b.IndexBuildCount.Add(1)
	b.IndexBuildNodes.Add(int64(nodes))
	b.IndexBuildTotalNanos.Add(duration.Nanoseconds())
}

// RecordMaterialize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMaterialize(nodes, edges int, duration time.Duration, err error) {
	b.MaterializeCount.Add(1)
	b.MaterializeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MaterializeErrors.Add(1)
		return
	}
	b.MaterializeEdges.Add(int64(edges))
}

// RecordRank implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRank(mode string, nodes, iterations int, duration time.Duration) {
	switch mode {
	case ModeSimilarity:
		b.SimilarityRankCount.Add(1)
	case ModeTemporal:
		b.TemporalRankCount.Add(1)
	}
	b.RankIterations.Add(int64(iterations))
	b.RankTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	ranks := b.SimilarityRankCount.Load() + b.TemporalRankCount.Load()
	return BasicMetricsStats{
		IndexBuildCount:     b.IndexBuildCount.Load(),
		IndexBuildNodes:     b.IndexBuildNodes.Load(),
		MaterializeCount:    b.MaterializeCount.Load(),
		MaterializeErrors:   b.MaterializeErrors.Load(),
		MaterializeEdges:    b.MaterializeEdges.Load(),
		SimilarityRankCount: b.SimilarityRankCount.Load(),
		TemporalRankCount:   b.TemporalRankCount.Load(),
		RankIterations:      b.RankIterations.Load(),
		RankAvgNanos:        avg(b.RankTotalNanos.Load(), ranks),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	IndexBuildCount     int64
	IndexBuildNodes     int64
	MaterializeCount    int64
	MaterializeErrors   int64
	MaterializeEdges    int64
	SimilarityRankCount int64
	TemporalRankCount   int64
	RankIterations      int64
	RankAvgNanos        int64
}
