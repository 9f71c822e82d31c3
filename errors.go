package vecrank

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDamping is returned when the damping factor is outside [0, 1].
	ErrInvalidDamping = errors.New("damping must be within [0, 1]")

	// ErrInvalidIterations is returned when the iteration count is not positive.
	ErrInvalidIterations = errors.New("iterations must be positive")

	// ErrInvalidNeighbors is returned when the neighbour count is not positive.
	ErrInvalidNeighbors = errors.New("neighbors must be positive")

	// ErrInvalidNodeCount is returned when the node count is negative.
	ErrInvalidNodeCount = errors.New("node count must not be negative")
)

// ErrDimensionMismatch indicates that a node's vector differs in length from the first node's.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("node %d: dimension mismatch: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

// ErrShapeMismatch indicates that a per-node input does not have one entry per node.
type ErrShapeMismatch struct {
	Field    string
	Expected int
	Actual   int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("%s: expected %d entries, got %d", e.Field, e.Expected, e.Actual)
}

func validateDamping(d float64) error {
	if math.IsNaN(d) || d < 0 || d > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidDamping, d)
	}
	return nil
}

func validateIterations(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidIterations, n)
	}
	return nil
}
