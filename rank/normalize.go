package rank

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ZeroMassPolicy decides what happens when a rank vector sums to exactly zero.
type ZeroMassPolicy int

const (
	// ZeroMassUniform replaces the vector with 1/n everywhere.
	ZeroMassUniform ZeroMassPolicy = iota
	// ZeroMassKeep leaves the all-zero vector untouched.
	ZeroMassKeep
)

func (p ZeroMassPolicy) String() string {
	switch p {
	case ZeroMassUniform:
		return "uniform"
	case ZeroMassKeep:
		return "keep"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// ParseZeroMassPolicy converts the String form back into a policy.
func ParseZeroMassPolicy(s string) (ZeroMassPolicy, error) {
	switch s {
	case "uniform", "":
		return ZeroMassUniform, nil
	case "keep":
		return ZeroMassKeep, nil
	default:
		return 0, fmt.Errorf("unknown zero mass policy %q", s)
	}
}

// Normalize scales v in place so it sums to 1. A zero sum is resolved by
// policy; the result never contains NaN. It reports whether the sum was zero.
func Normalize(v []float64, policy ZeroMassPolicy) bool {
	if len(v) == 0 {
		return false
	}

	sum := floats.Sum(v)
	if sum != 0 {
		floats.Scale(1/sum, v)
		return false
	}

	if policy == ZeroMassUniform {
		Uniform(v)
	}
	return true
}

// Uniform fills v with 1/len(v).
func Uniform(v []float64) {
	if len(v) == 0 {
		return
	}
	u := 1 / float64(len(v))
	for i := range v {
		v[i] = u
	}
}
