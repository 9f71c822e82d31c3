// Package distance provides the vector kernels used by the similarity index.
//
// Kernels are backed by github.com/viterin/vek/vek32, which dispatches to
// AVX2 code paths on x86-64 when the CPU supports them.
//
// # Supported Metrics
//
//   - MetricCosine: 1 - cosine similarity (vectors are L2-normalized on insert)
//   - MetricDot: negated inner product, so smaller is closer
//
// # Usage
//
//	v, ok := distance.NormalizeL2Copy(vec)
//	d := distance.CosineNormalized(v, w)
package distance
