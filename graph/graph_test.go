package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromLinks(t *testing.T) {
	g := FromLinks(3, []Link{
		{0, 1},
		{0, 1},
		{1, 1},
		{2, 5},
		{-1, 0},
		{3, 0},
	})

	require.Equal(t, 3, g.Len())
	assert.Len(t, g.Out(0), 2, "duplicates are kept")
	assert.Equal(t, []Neighbor{{Target: 1, Weight: 1}}, g.Out(1), "self-loops are kept")
	assert.Empty(t, g.Out(2), "out-of-range targets are dropped")
	assert.Equal(t, 3, g.NumEdges())
	assert.Equal(t, 2.0, g.OutWeight(0))
}

func TestFromEdges(t *testing.T) {
	g := FromEdges(2, []Edge{
		{Source: 0, Target: 1, Weight: 0.5},
		{Source: 1, Target: 0, Weight: -1},
		{Source: 1, Target: 2, Weight: 1},
	})

	assert.Equal(t, []Neighbor{{Target: 1, Weight: 0.5}}, g.Out(0))
	assert.Empty(t, g.Out(1))
}

func TestEdges(t *testing.T) {
	g := FromEdges(3, []Edge{
		{Source: 2, Target: 0, Weight: 3},
		{Source: 0, Target: 1, Weight: 1},
		{Source: 0, Target: 2, Weight: 2},
	})

	var got []Edge
	for e := range g.Edges() {
		got = append(got, e)
	}
	assert.Equal(t, []Edge{
		{Source: 0, Target: 1, Weight: 1},
		{Source: 0, Target: 2, Weight: 2},
		{Source: 2, Target: 0, Weight: 3},
	}, got)

	count := 0
	for range g.Edges() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}
