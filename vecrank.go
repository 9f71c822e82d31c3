package vecrank

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/vecrank/graph"
	"github.com/hupe1980/vecrank/hnsw"
	"github.com/hupe1980/vecrank/rank"
)

// Node is an item to be ranked: an opaque id and its embedding.
type Node[ID comparable] struct {
	ID     ID
	Vector []float32
}

// SimilarityInput holds the arguments of RankSimilarity.
type SimilarityInput[ID comparable] struct {
	// Nodes to rank. All vectors must have the same length.
	Nodes []Node[ID]

	// Popularity maps a node id to its weight. Missing ids weigh 1.
	Popularity map[ID]float64

	// Transitions counts source -> target moves. Missing pairs count 0.
	Transitions map[ID]map[ID]int

	// Neighbors is the number of nearest neighbours m per node.
	Neighbors int

	// Damping is the probability of following an edge, within [0, 1].
	Damping float64

	// Iterations is the fixed number of propagation rounds.
	Iterations int
}

// TemporalInput holds the arguments of RankTemporal.
type TemporalInput struct {
	// NumNodes is the number of nodes; edges refer to indices in [0, NumNodes).
	NumNodes int

	// Edges are directed interactions. Out-of-range pairs are dropped.
	Edges []graph.Link

	// HoursSinceInteraction holds one value per node.
	HoursSinceInteraction []float64

	// Damping scales every propagated share, within [0, 1].
	Damping float64

	// DecayLambda is the exponential decay coefficient per hour.
	DecayLambda float64

	// Iterations is the fixed number of propagation rounds.
	Iterations int
}

// RankSimilarity ranks nodes over their approximate k-nearest-neighbour graph.
//
// The pipeline inserts every vector into an HNSW index (single writer),
// materializes weighted outgoing edges with a bounded worker pool, and runs
// a fixed number of damped power-iteration rounds. The result sums to 1.
// An empty node list yields an empty result without building an index.
func RankSimilarity[ID comparable](in SimilarityInput[ID], optFns ...Option) (*Result[ID], error) {
	o := applyOptions(optFns)
	ctx := context.Background()
	log := o.logger.WithMode(ModeSimilarity)

	if err := validateDamping(in.Damping); err != nil {
		return nil, err
	}
	if err := validateIterations(in.Iterations); err != nil {
		return nil, err
	}
	if in.Neighbors < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNeighbors, in.Neighbors)
	}

	n := len(in.Nodes)
	if n == 0 {
		return NewResult[ID](nil, nil), nil
	}

	ids := make([]ID, n)
	for i, node := range in.Nodes {
		ids[i] = node.ID
	}
	idMap, err := graph.NewIDMap(ids)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	idx, err := buildIndex(in.Nodes, o)
	log.LogIndexBuild(ctx, n, len(in.Nodes[0].Vector), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	o.metricsCollector.RecordIndexBuild(n, time.Since(start))

	width := o.queryWidth(in.Neighbors)
	start = time.Now()
	g, err := graph.Materialize(idx, idMap, in.Popularity, in.Transitions, graph.MaterializeOptions{
		QueryWidth: width,
		EFSearch:   max(o.efSearch, width),
		Workers:    o.workers,
		Model:      o.weightModel,
	})
	elapsed := time.Since(start)
	if err != nil {
		log.LogMaterialize(ctx, n, 0, o.workers, elapsed, err)
		o.metricsCollector.RecordMaterialize(n, 0, elapsed, err)
		return nil, fmt.Errorf("materialize graph: %w", err)
	}
	log.LogMaterialize(ctx, n, g.NumEdges(), o.workers, elapsed, nil)
	o.metricsCollector.RecordMaterialize(n, g.NumEdges(), elapsed, nil)

	start = time.Now()
	ranker := rank.NewPowerIteration(g, in.Damping)
	values := ranker.Run(in.Iterations, o.zeroMass)
	elapsed = time.Since(start)

	if ranker.ZeroMass() {
		o.logger.LogZeroMass(ctx, ModeSimilarity, o.zeroMass.String())
	}
	o.logger.LogRank(ctx, ModeSimilarity, n, in.Iterations, ranker.DanglingCount(), elapsed)
	o.metricsCollector.RecordRank(ModeSimilarity, n, in.Iterations, elapsed)

	return NewResult(ids, values), nil
}

// RankTemporal ranks an explicit interaction graph with per-source time decay.
// The returned slice is index-aligned with the nodes and sums to 1 after
// every round. NumNodes == 0 yields an empty slice.
func RankTemporal(in TemporalInput, optFns ...Option) ([]float64, error) {
	o := applyOptions(optFns)
	ctx := context.Background()

	if in.NumNodes < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNodeCount, in.NumNodes)
	}
	if err := validateDamping(in.Damping); err != nil {
		return nil, err
	}
	if err := validateIterations(in.Iterations); err != nil {
		return nil, err
	}
	if in.NumNodes == 0 {
		return []float64{}, nil
	}
	if len(in.HoursSinceInteraction) != in.NumNodes {
		return nil, &ErrShapeMismatch{Field: "hours since interaction", Expected: in.NumNodes, Actual: len(in.HoursSinceInteraction)}
	}

	start := time.Now()
	g := graph.FromLinks(in.NumNodes, in.Edges)
	ranker := rank.NewTemporal(g, in.HoursSinceInteraction, in.DecayLambda)
	values := ranker.Run(in.Damping, in.Iterations, o.zeroMass)
	elapsed := time.Since(start)

	if ranker.ZeroMassRounds() > 0 {
		o.logger.LogZeroMass(ctx, ModeTemporal, o.zeroMass.String())
	}

	o.logger.LogRank(ctx, ModeTemporal, in.NumNodes, in.Iterations, 0, elapsed)
	o.metricsCollector.RecordRank(ModeTemporal, in.NumNodes, in.Iterations, elapsed)

	return values, nil
}

func buildIndex[ID comparable](nodes []Node[ID], o options) (*hnsw.HNSW, error) {
	dim := len(nodes[0].Vector)
	for i, node := range nodes {
		if len(node.Vector) != dim {
			return nil, &ErrDimensionMismatch{Index: i, Expected: dim, Actual: len(node.Vector)}
		}
	}

	idx, err := hnsw.New(dim, func(ho *hnsw.Options) {
		ho.M = o.hnswM
		ho.EF = o.efConstruction
		ho.RandomSeed = o.randomSeed
	})
	if err != nil {
		return nil, err
	}

	for _, node := range nodes {
		if _, err := idx.Insert(node.Vector); err != nil {
			return nil, err
		}
	}

	return idx, nil
}
