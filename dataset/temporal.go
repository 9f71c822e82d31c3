package dataset

import (
	"fmt"

	"github.com/hupe1980/vecrank"
	"github.com/hupe1980/vecrank/graph"
)

// TemporalFile is the document layout of a temporal ranking input.
type TemporalFile struct {
	Nodes []NodeRecord `json:"nodes" yaml:"nodes"`
	Edges []EdgeRecord `json:"edges" yaml:"edges"`
}

// Temporal is a validated temporal ranking input with edges translated to
// node indices.
type Temporal struct {
	IDs   []string
	Edges []graph.Link
	Hours []float64
}

// Input turns t into a vecrank.TemporalInput with the given parameters.
func (t *Temporal) Input(damping, decayLambda float64, iterations int) vecrank.TemporalInput {
	return vecrank.TemporalInput{
		NumNodes:              len(t.IDs),
		Edges:                 t.Edges,
		HoursSinceInteraction: t.Hours,
		Damping:               damping,
		DecayLambda:           decayLambda,
		Iterations:            iterations,
	}
}

// LoadTemporal decodes and validates a temporal input file.
func LoadTemporal(path string) (*Temporal, error) {
	var f TemporalFile
	if err := Decode(path, &f); err != nil {
		return nil, err
	}
	return f.Validate()
}

// Validate checks ids, resolves edges and fills missing hours with
// DefaultHoursSinceInteraction.
func (f *TemporalFile) Validate() (*Temporal, error) {
	t := &Temporal{
		IDs:   make([]string, len(f.Nodes)),
		Edges: make([]graph.Link, 0, len(f.Edges)),
		Hours: make([]float64, len(f.Nodes)),
	}

	for i, rec := range f.Nodes {
		if rec.ID == "" {
			return nil, fmt.Errorf("%w: node %d", ErrEmptyID, i)
		}
		t.IDs[i] = rec.ID
		t.Hours[i] = DefaultHoursSinceInteraction
		if rec.HoursSinceInteraction != nil {
			t.Hours[i] = *rec.HoursSinceInteraction
		}
	}

	idMap, err := graph.NewIDMap(t.IDs)
	if err != nil {
		return nil, err
	}

	for _, e := range f.Edges {
		src, ok := idMap.Index(e.Source)
		if !ok {
			return nil, fmt.Errorf("%w: edge source %q", ErrUnknownID, e.Source)
		}
		dst, ok := idMap.Index(e.Target)
		if !ok {
			return nil, fmt.Errorf("%w: edge target %q", ErrUnknownID, e.Target)
		}
		t.Edges = append(t.Edges, graph.Link{Source: src, Target: dst})
	}

	return t, nil
}
