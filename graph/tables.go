package graph

import "fmt"

// DefaultPopularity is the weight of a node missing from a PopularityTable.
const DefaultPopularity = 1.0

// PopularityTable maps a node id to a non-negative weight.
type PopularityTable[ID comparable] map[ID]float64

// Weight returns the popularity of id, DefaultPopularity when absent.
// Negative entries count as zero.
func (p PopularityTable[ID]) Weight(id ID) float64 {
	w, ok := p[id]
	if !ok {
		return DefaultPopularity
	}
	return max(0, w)
}

// TransitionTable counts observed source -> target moves.
type TransitionTable[ID comparable] map[ID]map[ID]int

// Count returns how often src was followed by dst. Absent or negative counts are zero.
func (t TransitionTable[ID]) Count(src, dst ID) int {
	row, ok := t[src]
	if !ok {
		return 0
	}
	return max(0, row[dst])
}

// Record adds one observed transition from src to dst.
func (t TransitionTable[ID]) Record(src, dst ID) {
	row, ok := t[src]
	if !ok {
		row = make(map[ID]int)
		t[src] = row
	}
	row[dst]++
}

// ErrDuplicateID is returned when the same id is assigned to two nodes.
type ErrDuplicateID[ID comparable] struct {
	ID ID
}

func (e *ErrDuplicateID[ID]) Error() string {
	return fmt.Sprintf("duplicate node id: %v", e.ID)
}

// IDMap translates between external node ids and dense indices.
// Side tables are keyed by id, the graph and rank vector by index.
type IDMap[ID comparable] struct {
	ids   []ID
	index map[ID]int
}

// NewIDMap assigns index i to ids[i].
func NewIDMap[ID comparable](ids []ID) (*IDMap[ID], error) {
	m := &IDMap[ID]{
		ids:   ids,
		index: make(map[ID]int, len(ids)),
	}
	for i, id := range ids {
		if _, ok := m.index[id]; ok {
			return nil, &ErrDuplicateID[ID]{ID: id}
		}
		m.index[id] = i
	}
	return m, nil
}

// Len returns the number of ids.
func (m *IDMap[ID]) Len() int { return len(m.ids) }

// ID returns the id at index i.
func (m *IDMap[ID]) ID(i int) ID { return m.ids[i] }

// Index returns the index of id.
func (m *IDMap[ID]) Index(id ID) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}
