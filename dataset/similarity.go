package dataset

import (
	"fmt"

	"github.com/hupe1980/vecrank"
	"github.com/hupe1980/vecrank/graph"
)

// SimilarityFile is the document layout of a similarity ranking input.
type SimilarityFile struct {
	Nodes       []NodeRecord              `json:"nodes" yaml:"nodes"`
	Popularity  map[string]float64        `json:"popularity,omitempty" yaml:"popularity,omitempty"`
	Transitions map[string]map[string]int `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// Similarity is a validated similarity ranking input.
type Similarity struct {
	Nodes       []vecrank.Node[string]
	Popularity  map[string]float64
	Transitions map[string]map[string]int
}

// Input turns s into a vecrank.SimilarityInput with the given parameters.
func (s *Similarity) Input(neighbors int, damping float64, iterations int) vecrank.SimilarityInput[string] {
	return vecrank.SimilarityInput[string]{
		Nodes:       s.Nodes,
		Popularity:  s.Popularity,
		Transitions: s.Transitions,
		Neighbors:   neighbors,
		Damping:     damping,
		Iterations:  iterations,
	}
}

// LoadSimilarity decodes and validates a similarity input file.
func LoadSimilarity(path string) (*Similarity, error) {
	var f SimilarityFile
	if err := Decode(path, &f); err != nil {
		return nil, err
	}
	return f.Validate()
}

// Validate checks ids and vector shapes. Table entries naming unknown ids
// are rejected.
func (f *SimilarityFile) Validate() (*Similarity, error) {
	nodes := make([]vecrank.Node[string], len(f.Nodes))
	ids := make([]string, len(f.Nodes))

	for i, rec := range f.Nodes {
		if rec.ID == "" {
			return nil, fmt.Errorf("%w: node %d", ErrEmptyID, i)
		}
		if len(rec.Vector) != len(f.Nodes[0].Vector) {
			return nil, &vecrank.ErrDimensionMismatch{Index: i, Expected: len(f.Nodes[0].Vector), Actual: len(rec.Vector)}
		}
		ids[i] = rec.ID
		nodes[i] = vecrank.Node[string]{ID: rec.ID, Vector: rec.Vector}
	}

	idMap, err := graph.NewIDMap(ids)
	if err != nil {
		return nil, err
	}

	for id := range f.Popularity {
		if _, ok := idMap.Index(id); !ok {
			return nil, fmt.Errorf("%w: popularity %q", ErrUnknownID, id)
		}
	}
	for src, row := range f.Transitions {
		if _, ok := idMap.Index(src); !ok {
			return nil, fmt.Errorf("%w: transition source %q", ErrUnknownID, src)
		}
		for dst := range row {
			if _, ok := idMap.Index(dst); !ok {
				return nil, fmt.Errorf("%w: transition target %q", ErrUnknownID, dst)
			}
		}
	}

	return &Similarity{
		Nodes:       nodes,
		Popularity:  f.Popularity,
		Transitions: f.Transitions,
	}, nil
}
