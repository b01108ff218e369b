package ecs

// SparseSet maps slot ids to component values. Values live in a dense
// slice so iteration touches only entities that have the component; the
// sparse slice holds each id's dense index, or -1.
type SparseSet struct {
	ids    []int
	values []any
	index  []int
}

func (s *SparseSet) Has(id int) bool {
	if s == nil || id <= 0 || id > len(s.index) {
		return false
	}
	i := s.index[id-1]
	return i >= 0 && i < len(s.ids) && s.ids[i] == id
}

// Get returns the value stored for id, or nil.
func (s *SparseSet) Get(id int) any {
	if !s.Has(id) {
		return nil
	}
	return s.values[s.index[id-1]]
}

// Set stores v for id, replacing any previous value.
func (s *SparseSet) Set(id int, v any) {
	if s == nil || id <= 0 {
		return
	}
	for len(s.index) < id {
		s.index = append(s.index, -1)
	}
	if s.Has(id) {
		s.values[s.index[id-1]] = v
		return
	}
	s.index[id-1] = len(s.ids)
	s.ids = append(s.ids, id)
	s.values = append(s.values, v)
}

// Remove swaps the last dense entry into id's place.
func (s *SparseSet) Remove(id int) {
	if !s.Has(id) {
		return
	}
	i := s.index[id-1]
	last := len(s.ids) - 1
	moved := s.ids[last]

	s.ids[i] = moved
	s.values[i] = s.values[last]
	s.index[moved-1] = i

	s.ids = s.ids[:last]
	s.values = s.values[:last]
	s.index[id-1] = -1
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Entities returns the dense id slice. Callers must not modify it.
func (s *SparseSet) Entities() []int {
	if s == nil {
		return nil
	}
	return s.ids
}
