package descriptor

import (
	"iter"
	"slices"
)

// Identified is anything keyed by an identifier.
type Identified interface {
	Identifier() string
}

// Set is an insertion-ordered collection keyed by identifier. The zero value
// is an empty set.
type Set[T Identified] struct {
	items []T
	index map[string]int
}

// Add appends v unless an item with the same identifier exists. It reports
// whether v was added.
func (s *Set[T]) Add(v T) bool {
	id := v.Identifier()
	if _, ok := s.index[id]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[id] = len(s.items)
	s.items = append(s.items, v)
	return true
}

// Put inserts v, replacing an item with the same identifier in place.
func (s *Set[T]) Put(v T) {
	if i, ok := s.index[v.Identifier()]; ok {
		s.items[i] = v
		return
	}
	s.Add(v)
}

func (s *Set[T]) Get(id string) (T, bool) {
	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

func (s *Set[T]) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Set[T]) Len() int { return len(s.items) }

// All iterates items in insertion order.
func (s *Set[T]) All() iter.Seq[T] {
	return slices.Values(s.items)
}

// Map returns a new set with f applied to every item.
func (s *Set[T]) Map(f func(T) T) Set[T] {
	out := Set[T]{items: make([]T, len(s.items))}
	if len(s.items) > 0 {
		out.index = make(map[string]int, len(s.items))
	}
	for i, v := range s.items {
		out.items[i] = f(v)
		out.index[v.Identifier()] = i
	}
	return out
}
