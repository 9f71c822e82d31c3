package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/vecrank"
	"github.com/hupe1980/vecrank/graph"
	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prom.Registry) map[string]*dto.MetricFamily {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func labelled(f *dto.MetricFamily, mode string) *dto.Metric {
	for _, m := range f.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "mode" && l.GetValue() == mode {
				return m
			}
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	c := NewCollector()
	assert.Len(t, c.Collectors(), 9)

	reg := prom.NewRegistry()
	require.NoError(t, c.Register(reg))

	assert.Error(t, NewCollector().Register(reg))
}

func TestRecord(t *testing.T) {
	c := NewCollector()
	reg := prom.NewRegistry()
	require.NoError(t, c.Register(reg))

	c.RecordIndexBuild(10, 20*time.Millisecond)
	c.RecordMaterialize(10, 30, 5*time.Millisecond, nil)
	c.RecordMaterialize(10, 0, time.Millisecond, errors.New("boom"))
	c.RecordRank(vecrank.ModeSimilarity, 10, 20, time.Millisecond)
	c.RecordRank(vecrank.ModeSimilarity, 12, 20, time.Millisecond)
	c.RecordRank(vecrank.ModeTemporal, 4, 3, time.Millisecond)

	families := gather(t, reg)

	assert.Equal(t, uint64(1), families[MetricIndexBuildDuration].GetMetric()[0].GetHistogram().GetSampleCount())
	assert.Equal(t, 10.0, families[MetricIndexBuildNodes].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, uint64(2), families[MetricMaterializeDuration].GetMetric()[0].GetHistogram().GetSampleCount())
	assert.Equal(t, 30.0, families[MetricMaterializeEdges].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 1.0, families[MetricMaterializeErrors].GetMetric()[0].GetCounter().GetValue())

	sim := labelled(families[MetricRankTotal], vecrank.ModeSimilarity)
	require.NotNil(t, sim)
	assert.Equal(t, 2.0, sim.GetCounter().GetValue())

	iters := labelled(families[MetricRankIterations], vecrank.ModeSimilarity)
	require.NotNil(t, iters)
	assert.Equal(t, 40.0, iters.GetCounter().GetValue())

	nodes := labelled(families[MetricLastRankNodes], vecrank.ModeSimilarity)
	require.NotNil(t, nodes)
	assert.Equal(t, 12.0, nodes.GetGauge().GetValue())

	temporal := labelled(families[MetricRankDuration], vecrank.ModeTemporal)
	require.NotNil(t, temporal)
	assert.Equal(t, uint64(1), temporal.GetHistogram().GetSampleCount())
}

func TestCollectorWithRanking(t *testing.T) {
	c := NewCollector()
	reg := prom.NewRegistry()
	require.NoError(t, c.Register(reg))

	_, err := vecrank.RankTemporal(vecrank.TemporalInput{
		NumNodes:              2,
		Edges:                 []graph.Link{{Source: 0, Target: 1}, {Source: 1, Target: 0}},
		HoursSinceInteraction: []float64{1, 2},
		Damping:               0.85,
		DecayLambda:           0.1,
		Iterations:            7,
	}, vecrank.WithMetricsCollector(c))
	require.NoError(t, err)

	families := gather(t, reg)
	m := labelled(families[MetricRankIterations], vecrank.ModeTemporal)
	require.NotNil(t, m)
	assert.Equal(t, 7.0, m.GetCounter().GetValue())
}
