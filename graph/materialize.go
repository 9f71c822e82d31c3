package graph

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/hupe1980/vecrank/hnsw"
	"golang.org/x/sync/errgroup"
)

// ErrSizeMismatch is returned when the index and the id map disagree on the node count.
var ErrSizeMismatch = errors.New("index size does not match node count")

// Searcher answers neighbour queries for already inserted nodes.
// *hnsw.HNSW satisfies it.
type Searcher interface {
	Len() int
	SearchByID(id uint32, k int, efSearch int) ([]hnsw.SearchResult, error)
}

// MaterializeOptions configures Materialize.
type MaterializeOptions struct {
	// QueryWidth is the number of candidates requested per node.
	QueryWidth int

	// EFSearch is the search queue size handed to the index.
	EFSearch int

	// Workers bounds the number of concurrent queries. Zero means GOMAXPROCS.
	Workers int

	// Model computes edge weights. Nil means DefaultWeightModel.
	Model WeightModel
}

// Materialize queries idx once per node and converts every returned neighbour
// except the node itself into a weighted outgoing edge.
//
// Node i of the index must correspond to ids.ID(i). Each worker reads the
// shared index and tables and writes only its own node's edge list, so no
// locking is needed.
func Materialize[ID comparable](idx Searcher, ids *IDMap[ID], popularity PopularityTable[ID], transitions TransitionTable[ID], opts MaterializeOptions) (*Graph, error) {
	n := ids.Len()
	if idx.Len() != n {
		return nil, fmt.Errorf("%w: index has %d nodes, expected %d", ErrSizeMismatch, idx.Len(), n)
	}

	g := New(n)
	if n == 0 || opts.QueryWidth <= 0 {
		return g, nil
	}

	model := opts.Model
	if model == nil {
		model = DefaultWeightModel
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var eg errgroup.Group
	eg.SetLimit(workers)

	for i := 0; i < n; i++ {
		eg.Go(func() error {
			hits, err := idx.SearchByID(uint32(i), opts.QueryWidth, opts.EFSearch)
			if err != nil {
				return fmt.Errorf("query node %d: %w", i, err)
			}
			g.adj[i] = neighbours(i, hits, ids, popularity, transitions, model)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return g, nil
}

func neighbours[ID comparable](src int, hits []hnsw.SearchResult, ids *IDMap[ID], popularity PopularityTable[ID], transitions TransitionTable[ID], model WeightModel) []Neighbor {
	srcID := ids.ID(src)

	out := make([]Neighbor, 0, len(hits))
	for _, hit := range hits {
		dst := int(hit.ID)
		if dst == src {
			continue
		}
		dstID := ids.ID(dst)

		out = append(out, Neighbor{
			Target: dst,
			Weight: model.Weight(hit.Distance, popularity.Weight(dstID), transitions.Count(srcID, dstID)),
		})
	}
	return out
}
