// Package queue provides the candidate heaps used by the similarity index.
package queue

// Item is a node/distance pair held by a Queue.
type Item struct {
	Node     uint32
	Distance float32
}

// Queue is a value-based binary heap of Items.
//
// A max-heap keeps the farthest candidate on top (result sets bounded by ef),
// a min-heap keeps the closest candidate on top (the expansion frontier).
type Queue struct {
	isMaxHeap bool
	items     []Item
}

// New creates an empty queue with the given ordering.
func New(isMaxHeap bool, capacity int) *Queue {
	return &Queue{
		isMaxHeap: isMaxHeap,
		items:     make([]Item, 0, capacity),
	}
}

// Reset empties the queue and sets its ordering, keeping the backing array.
func (q *Queue) Reset(isMaxHeap bool) {
	q.isMaxHeap = isMaxHeap
	q.items = q.items[:0]
}

// Len returns the number of queued items.
func (q *Queue) Len() int { return len(q.items) }

// Top returns the top item without removing it.
func (q *Queue) Top() (Item, bool) {
	if len(q.items) == 0 {
		return Item{}, false
	}
	return q.items[0], true
}

// Push inserts an item while maintaining the heap invariant.
func (q *Queue) Push(item Item) {
	q.items = append(q.items, item)
	q.siftUp(len(q.items) - 1)
}

// PushBounded inserts item into a heap holding at most capacity items.
// When the heap is full the item replaces the top only if it ranks better.
// It reports whether the item was kept.
func (q *Queue) PushBounded(item Item, capacity int) bool {
	if len(q.items) < capacity {
		q.Push(item)
		return true
	}

	top := q.items[0]
	if q.isMaxHeap && item.Distance < top.Distance || !q.isMaxHeap && item.Distance > top.Distance {
		q.items[0] = item
		q.siftDown(0)
		return true
	}
	return false
}

// Pop removes and returns the top item.
func (q *Queue) Pop() (Item, bool) {
	n := len(q.items)
	if n == 0 {
		return Item{}, false
	}
	root := q.items[0]
	q.items[0] = q.items[n-1]
	q.items = q.items[:n-1]
	if len(q.items) > 0 {
		q.siftDown(0)
	}
	return root, true
}

// Items returns the underlying slice in heap order.
func (q *Queue) Items() []Item { return q.items }

func (q *Queue) less(i, j int) bool {
	if q.isMaxHeap {
		return q.items[i].Distance > q.items[j].Distance
	}
	return q.items[i].Distance < q.items[j].Distance
}

func (q *Queue) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !q.less(i, p) {
			return
		}
		q.items[i], q.items[p] = q.items[p], q.items[i]
		i = p
	}
}

func (q *Queue) siftDown(i int) {
	n := len(q.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && q.less(r, l) {
			best = r
		}
		if !q.less(best, i) {
			return
		}
		q.items[i], q.items[best] = q.items[best], q.items[i]
		i = best
	}
}
