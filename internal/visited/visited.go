// Package visited tracks which graph nodes a single query has already expanded.
package visited

// Set is a bitset over node ids with a dirty list, so clearing costs
// O(visited) rather than O(capacity).
type Set struct {
	bits  []uint64
	dirty []uint32
}

// New creates a set able to hold ids in [0, capacity).
func New(capacity int) *Set {
	return &Set{
		bits:  make([]uint64, (capacity+63)/64),
		dirty: make([]uint32, 0, 64),
	}
}

// Visit marks id as visited and reports whether it was newly marked.
func (s *Set) Visit(id uint32) bool {
	word := int(id >> 6)
	mask := uint64(1) << (id & 63)

	if word >= len(s.bits) {
		s.grow(word + 1)
	}

	if s.bits[word]&mask != 0 {
		return false
	}
	s.bits[word] |= mask
	s.dirty = append(s.dirty, id)
	return true
}

// Visited reports whether id has been marked since the last Reset.
func (s *Set) Visited(id uint32) bool {
	word := int(id >> 6)
	if word >= len(s.bits) {
		return false
	}
	return s.bits[word]&(uint64(1)<<(id&63)) != 0
}

// Len returns the number of marked ids.
func (s *Set) Len() int { return len(s.dirty) }

// Reset clears every id marked since the previous Reset.
func (s *Set) Reset() {
	for _, id := range s.dirty {
		s.bits[id>>6] &^= uint64(1) << (id & 63)
	}
	s.dirty = s.dirty[:0]
}

// EnsureCapacity grows the set so ids below capacity need no reallocation.
func (s *Set) EnsureCapacity(capacity int) {
	if words := (capacity + 63) / 64; words > len(s.bits) {
		s.grow(words)
	}
}

func (s *Set) grow(words int) {
	newCap := len(s.bits) * 2
	if newCap < words {
		newCap = words
	}
	bits := make([]uint64, newCap)
	copy(bits, s.bits)
	s.bits = bits
}
