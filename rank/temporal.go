package rank

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/vecrank/graph"
)

// Temporal ranks an explicit interaction graph where each source's influence
// decays with the hours since its last interaction.
type Temporal struct {
	g       *graph.Graph
	factors []float64
	sources *roaring.Bitmap

	zeroRounds int
}

// NewTemporal precomputes exp(-decayLambda*hours[u]) for every node. Edge
// weights in g are ignored; a source splits its share evenly over its edges.
// hours must have length g.Len().
func NewTemporal(g *graph.Graph, hours []float64, decayLambda float64) *Temporal {
	t := &Temporal{
		g:       g,
		factors: make([]float64, g.Len()),
		sources: roaring.New(),
	}

	for u := range t.factors {
		t.factors[u] = math.Exp(-decayLambda * hours[u])
		if len(g.Out(u)) > 0 {
			t.sources.Add(uint32(u))
		}
	}

	return t
}

// TimeFactor returns the decay multiplier of node u.
func (t *Temporal) TimeFactor(u int) float64 { return t.factors[u] }

// Step computes one unnormalized propagation round from rank into next.
func (t *Temporal) Step(rank, next []float64, damping float64) {
	for v := range next {
		next[v] = 0
	}

	it := t.sources.Iterator()
	for it.HasNext() {
		u := int(it.Next())
		out := t.g.Out(u)
		share := damping * rank[u] * t.factors[u] / float64(len(out))
		for _, nb := range out {
			next[nb.Target] += share
		}
	}
}

// Run starts from the uniform distribution and performs iterations rounds,
// renormalizing after each. A round whose mass is exactly zero is resolved
// by policy before the next round starts.
func (t *Temporal) Run(damping float64, iterations int, policy ZeroMassPolicy) []float64 {
	n := t.g.Len()
	rank := make([]float64, n)
	if n == 0 {
		return rank
	}
	Uniform(rank)

	t.zeroRounds = 0
	next := make([]float64, n)
	for range iterations {
		t.Step(rank, next, damping)
		if Normalize(next, policy) {
			t.zeroRounds++
		}
		rank, next = next, rank
	}

	return rank
}

// ZeroMassRounds returns how many rounds of the last Run produced zero mass.
func (t *Temporal) ZeroMassRounds() int { return t.zeroRounds }
