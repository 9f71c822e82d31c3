package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompositeWeight(t *testing.T) {
	tests := []struct {
		name        string
		distance    float32
		popularity  float64
		transitions int
		expected    float64
	}{
		{"Identical", 0, 1, 0, 1},
		{"HalfSimilar", 0.5, 1, 0, 0.5},
		{"Popular", 0.5, 2, 0, 1},
		{"OneTransition", 0, 1, 1, 1.5},
		{"TenTransitions", 0.2, 1, 10, 0.8 * 6},
		{"Orthogonal", 1, 5, 3, 0},
		{"OppositeClamped", 1.7, 5, 3, 0},
		{"ZeroPopularity", 0, 0, 4, 0},
		{"NegativePopularity", 0, -1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultWeightModel.Weight(tt.distance, tt.popularity, tt.transitions)
			assert.InDelta(t, tt.expected, got, 1e-6)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestCompositeWeightCustomBoost(t *testing.T) {
	m := CompositeWeight{TransitionBoost: 2}
	assert.InDelta(t, 7.0, m.Weight(0, 1, 3), 1e-9)

	negative := CompositeWeight{TransitionBoost: -1}
	assert.Equal(t, 0.0, negative.Weight(0, 1, 5))
}
