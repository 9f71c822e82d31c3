package vecrank

import "sort"

// Scored pairs a node id with its rank.
type Scored[ID comparable] struct {
	ID   ID
	Rank float64
}

// Result holds the final rank of every node, in input order.
type Result[ID comparable] struct {
	ids    []ID
	values []float64
	index  map[ID]int
}

// NewResult pairs ids with index-aligned rank values.
func NewResult[ID comparable](ids []ID, values []float64) *Result[ID] {
	r := &Result[ID]{
		ids:    ids,
		values: values,
		index:  make(map[ID]int, len(ids)),
	}
	for i, id := range ids {
		r.index[id] = i
	}
	return r
}

// Len returns the number of ranked nodes.
func (r *Result[ID]) Len() int { return len(r.ids) }

// Rank returns the rank of id.
func (r *Result[ID]) Rank(id ID) (float64, bool) {
	i, ok := r.index[id]
	if !ok {
		return 0, false
	}
	return r.values[i], true
}

// Values returns the ranks index-aligned with the input nodes.
func (r *Result[ID]) Values() []float64 { return r.values }

// Map returns the ranks keyed by node id.
func (r *Result[ID]) Map() map[ID]float64 {
	m := make(map[ID]float64, len(r.ids))
	for i, id := range r.ids {
		m[id] = r.values[i]
	}
	return m
}

// Top returns the k highest ranked nodes, best first. Ties keep input order.
// k <= 0 or k > Len returns every node.
func (r *Result[ID]) Top(k int) []Scored[ID] {
	out := make([]Scored[ID], len(r.ids))
	for i, id := range r.ids {
		out[i] = Scored[ID]{ID: id, Rank: r.values[i]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank > out[j].Rank })

	if k > 0 && k < len(out) {
		out = out[:k]
	}
	return out
}
