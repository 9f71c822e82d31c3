// Package vecrank ranks embedded items by combining an approximate
// similarity graph with popularity and transition signals, then running a
// damped random walk over the result.
//
// Two pipelines are provided:
//
//   - RankSimilarity builds an HNSW index over the item vectors, turns every
//     item's approximate neighbours into weighted edges in parallel, and runs
//     a fixed number of PageRank rounds with uniform dangling redistribution.
//   - RankTemporal ranks an explicit interaction graph, scaling each source's
//     influence by exp(-lambda * hours since its last interaction) and
//     renormalizing after every round.
//
// All state is built per call and discarded afterwards.
//
// # Quick Start
//
//	ranks, err := vecrank.RankSimilarity(vecrank.SimilarityInput[string]{
//	    Nodes: []vecrank.Node[string]{
//	        {ID: "a", Vector: []float32{1, 0, 0}},
//	        {ID: "b", Vector: []float32{0.9, 0.1, 0}},
//	        {ID: "c", Vector: []float32{0, 0, 1}},
//	    },
//	    Popularity:  map[string]float64{"b": 2},
//	    Transitions: map[string]map[string]int{"a": {"b": 5}},
//	    Neighbors:   2,
//	    Damping:     0.85,
//	    Iterations:  30,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range ranks.Top(3) {
//	    fmt.Println(s.ID, s.Rank)
//	}
//
// # Observability
//
// Pass WithLogger for structured slog output and WithMetricsCollector to
// record timings; see metrics/prometheus for a Prometheus collector.
package vecrank
