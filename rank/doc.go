// Package rank runs damped random-walk propagation over a graph.Graph.
//
// PowerIteration is the weighted PageRank used for similarity graphs:
// every round starts from the teleport base (1-d)/n, spreads d*rank[i]
// along normalized out-weights, and hands the mass of dangling nodes
// (no edges, or zero total weight) back to all nodes uniformly in O(n).
//
// Temporal propagates along unweighted edges scaled by exp(-lambda*hours)
// of the source and renormalizes the whole vector after every round. It
// applies neither teleport nor dangling redistribution.
//
// Both run a fixed number of rounds; there is no convergence check.
package rank
