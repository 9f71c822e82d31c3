package graph

import "iter"

// Edge is a directed weighted edge between two dense node indices.
type Edge struct {
	Source int
	Target int
	Weight float64
}

// Link is an unweighted directed pair of node indices.
type Link struct {
	Source int
	Target int
}

// Neighbor is one entry of an outgoing edge list.
type Neighbor struct {
	Target int
	Weight float64
}

// Graph is an ordered collection of outgoing edge lists, one per node index.
// It is built once per ranking run and treated as read-only afterwards.
type Graph struct {
	adj [][]Neighbor
}

// New creates a graph with n nodes and no edges.
func New(n int) *Graph {
	return &Graph{adj: make([][]Neighbor, n)}
}

// FromEdges builds a graph with n nodes. Edges with an endpoint outside
// [0, n) or a negative weight are dropped.
func FromEdges(n int, edges []Edge) *Graph {
	g := New(n)
	for _, e := range edges {
		if !g.inRange(e.Source) || !g.inRange(e.Target) || e.Weight < 0 {
			continue
		}
		g.adj[e.Source] = append(g.adj[e.Source], Neighbor{Target: e.Target, Weight: e.Weight})
	}
	return g
}

// FromLinks builds a graph with n nodes where every in-range link gets weight 1.
// Out-of-range links are dropped silently; self-loops and duplicates are kept.
func FromLinks(n int, links []Link) *Graph {
	g := New(n)
	for _, l := range links {
		if !g.inRange(l.Source) || !g.inRange(l.Target) {
			continue
		}
		g.adj[l.Source] = append(g.adj[l.Source], Neighbor{Target: l.Target, Weight: 1})
	}
	return g
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.adj) }

// Out returns the outgoing edges of node i. The slice must not be modified.
func (g *Graph) Out(i int) []Neighbor { return g.adj[i] }

// OutWeight returns the total outgoing weight of node i.
func (g *Graph) OutWeight(i int) float64 {
	var total float64
	for _, nb := range g.adj[i] {
		total += nb.Weight
	}
	return total
}

// NumEdges returns the total number of edges, duplicates included.
func (g *Graph) NumEdges() int {
	var total int
	for _, out := range g.adj {
		total += len(out)
	}
	return total
}

// Edges iterates over all edges in source order.
func (g *Graph) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for src, out := range g.adj {
			for _, nb := range out {
				if !yield(Edge{Source: src, Target: nb.Target, Weight: nb.Weight}) {
					return
				}
			}
		}
	}
}

func (g *Graph) inRange(i int) bool {
	return i >= 0 && i < len(g.adj)
}
