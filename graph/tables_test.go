package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopularityTable(t *testing.T) {
	p := PopularityTable[string]{"a": 2, "b": 0, "c": -3}

	assert.Equal(t, 2.0, p.Weight("a"))
	assert.Equal(t, 0.0, p.Weight("b"))
	assert.Equal(t, 0.0, p.Weight("c"))
	assert.Equal(t, DefaultPopularity, p.Weight("missing"))

	var empty PopularityTable[int]
	assert.Equal(t, DefaultPopularity, empty.Weight(7))
}

func TestTransitionTable(t *testing.T) {
	tr := TransitionTable[string]{}
	assert.Equal(t, 0, tr.Count("a", "b"))

	tr.Record("a", "b")
	tr.Record("a", "b")
	tr.Record("b", "a")

	assert.Equal(t, 2, tr.Count("a", "b"))
	assert.Equal(t, 1, tr.Count("b", "a"))
	assert.Equal(t, 0, tr.Count("a", "c"))

	var empty TransitionTable[string]
	assert.Equal(t, 0, empty.Count("a", "b"))
}

func TestIDMap(t *testing.T) {
	m, err := NewIDMap([]string{"x", "y", "z"})
	require.NoError(t, err)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, "y", m.ID(1))

	i, ok := m.Index("z")
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = m.Index("w")
	assert.False(t, ok)

	_, err = NewIDMap([]int{1, 2, 1})
	var dup *ErrDuplicateID[int]
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 1, dup.ID)
}
