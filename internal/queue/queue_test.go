package queue

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueOrdering(t *testing.T) {
	tests := []struct {
		name      string
		isMaxHeap bool
	}{
		{"MinHeap", false},
		{"MaxHeap", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New(tt.isMaxHeap, 4)
			r := rand.New(rand.NewSource(7))
			for i := 0; i < 100; i++ {
				q.Push(Item{Node: uint32(i), Distance: r.Float32()})
			}
			require.Equal(t, 100, q.Len())

			prev, ok := q.Pop()
			require.True(t, ok)
			for q.Len() > 0 {
				curr, _ := q.Pop()
				if tt.isMaxHeap {
					assert.LessOrEqual(t, curr.Distance, prev.Distance)
				} else {
					assert.GreaterOrEqual(t, curr.Distance, prev.Distance)
				}
				prev = curr
			}

			_, ok = q.Pop()
			assert.False(t, ok)
		})
	}
}

func TestQueuePushBounded(t *testing.T) {
	q := New(true, 3)
	for i, d := range []float32{0.9, 0.1, 0.5, 0.3, 0.7, 0.2} {
		q.PushBounded(Item{Node: uint32(i), Distance: d}, 3)
	}
	require.Equal(t, 3, q.Len())

	top, ok := q.Top()
	require.True(t, ok)
	assert.Equal(t, float32(0.3), top.Distance)

	assert.False(t, q.PushBounded(Item{Node: 9, Distance: 0.95}, 3))
	assert.True(t, q.PushBounded(Item{Node: 9, Distance: 0.05}, 3))

	var got []float32
	for q.Len() > 0 {
		it, _ := q.Pop()
		got = append(got, it.Distance)
	}
	assert.Equal(t, []float32{0.2, 0.1, 0.05}, got)
}

func TestQueueReset(t *testing.T) {
	q := New(false, 2)
	q.Push(Item{Node: 1, Distance: 1})
	q.Reset(true)
	assert.Equal(t, 0, q.Len())

	q.Push(Item{Node: 1, Distance: 1})
	q.Push(Item{Node: 2, Distance: 2})
	top, _ := q.Top()
	assert.Equal(t, uint32(2), top.Node)
}
