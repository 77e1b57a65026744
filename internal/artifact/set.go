package artifact

import "sort"

// Set is an insertion-ordered set of artifact IDs. Iteration order is the
// order in which IDs were first added, which for analysis results means
// first-encountered order during traversal. Callers that need a stable
// textual ordering should use Sorted.
type Set struct {
	order []ID
	index map[ID]int
}

func NewSet(ids ...ID) *Set {
	s := &Set{index: make(map[ID]int)}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id if not already present and reports whether it was added.
func (s *Set) Add(id ID) bool {
	if _, exists := s.index[id]; exists {
		return false
	}
	s.index[id] = len(s.order)
	s.order = append(s.order, id)
	return true
}

func (s *Set) Contains(id ID) bool {
	_, exists := s.index[id]
	return exists
}

func (s *Set) Len() int {
	return len(s.order)
}

// Values returns the IDs in first-added order. The returned slice is shared;
// callers must not mutate it.
func (s *Set) Values() []ID {
	return s.order
}

// Sorted returns the IDs ordered by their string form.
func (s *Set) Sorted() []ID {
	ids := make([]ID, len(s.order))
	copy(ids, s.order)
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// Equal reports whether both sets contain exactly the same IDs, regardless
// of insertion order.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, id := range s.order {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}
