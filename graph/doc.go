// Package graph holds the weighted adjacency structure ranked by package rank
// and the code that derives it from a similarity index.
//
// Materialize turns every node's approximate neighbours into outgoing edges.
// Each edge weight is
//
//	max(0, 1-distance) * popularity(target) * (1 + 0.5*transitions(source, target))
//
// Self-loops are dropped. Duplicate (source, target) pairs are kept as
// separate edges, so their weights add up during propagation.
package graph
