package rank

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/vecrank/graph"
	"gonum.org/v1/gonum/floats"
)

// PowerIteration ranks a weighted graph. The graph must not change while the
// ranker is in use.
type PowerIteration struct {
	g        *graph.Graph
	damping  float64
	totals   []float64
	dangling *roaring.Bitmap
	zeroMass bool
}

// NewPowerIteration precomputes out-weight totals and the dangling set of g.
func NewPowerIteration(g *graph.Graph, damping float64) *PowerIteration {
	p := &PowerIteration{
		g:        g,
		damping:  damping,
		totals:   make([]float64, g.Len()),
		dangling: roaring.New(),
	}

	for i := range p.totals {
		p.totals[i] = g.OutWeight(i)
		if len(g.Out(i)) == 0 || p.totals[i] == 0 {
			p.dangling.Add(uint32(i))
		}
	}

	return p
}

// DanglingCount returns the number of nodes whose mass is redistributed uniformly.
func (p *PowerIteration) DanglingCount() int {
	return int(p.dangling.GetCardinality())
}

// IsDangling reports whether node i has no usable outgoing weight.
func (p *PowerIteration) IsDangling(i int) bool {
	return p.dangling.Contains(uint32(i))
}

// Step computes one propagation round from rank into next.
// Both slices must have length g.Len().
func (p *PowerIteration) Step(rank, next []float64) {
	n := len(rank)
	if n == 0 {
		return
	}
	nf := float64(n)

	base := (1 - p.damping) / nf
	for j := range next {
		next[j] = base
	}

	for i, mass := range rank {
		total := p.totals[i]
		if total == 0 {
			continue
		}
		scale := p.damping * mass / total
		for _, nb := range p.g.Out(i) {
			next[nb.Target] += scale * nb.Weight
		}
	}

	var danglingSum float64
	it := p.dangling.Iterator()
	for it.HasNext() {
		danglingSum += rank[it.Next()]
	}

	if danglingSum != 0 {
		floats.AddConst(p.damping*danglingSum/nf, next)
	}
}

// Run starts from the uniform distribution, performs iterations rounds and
// normalizes the result. An empty graph yields an empty slice.
func (p *PowerIteration) Run(iterations int, policy ZeroMassPolicy) []float64 {
	n := p.g.Len()
	rank := make([]float64, n)
	if n == 0 {
		return rank
	}
	Uniform(rank)

	next := make([]float64, n)
	for range iterations {
		p.Step(rank, next)
		rank, next = next, rank
	}

	p.zeroMass = Normalize(rank, policy)
	return rank
}

// ZeroMass reports whether the last Run ended with a rank vector summing to zero.
func (p *PowerIteration) ZeroMass() bool { return p.zeroMass }

// PageRank is a convenience wrapper around NewPowerIteration and Run.
func PageRank(g *graph.Graph, damping float64, iterations int, policy ZeroMassPolicy) []float64 {
	return NewPowerIteration(g, damping).Run(iterations, policy)
}
