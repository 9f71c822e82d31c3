// Package hnsw implements the approximate nearest-neighbour index used to
// derive similarity graphs.
//
// Construction is single-writer: Insert takes an exclusive lock. Once all
// vectors are inserted, KNNSearch and SearchByID are safe to call
// concurrently; each query draws its own visited set from a pool.
//
// # Parameters
//
//   - M: Max connections per node and layer (default: 16, 2*M at layer 0)
//   - EF: Construction queue size (default: 200)
//   - efSearch: Search queue size, raised to k when smaller
//
// # Reference
//
// Malkov & Yashunin, "Efficient and robust approximate nearest neighbor search
// using Hierarchical Navigable Small World graphs", IEEE TPAMI 2018.
package hnsw
