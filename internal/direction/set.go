package direction

import (
	"iter"
	"math/bits"
	"strings"
)

// Set is a bitmask of directions. The zero value is empty.
type Set uint16

// SetOf builds a set from the given directions.
func SetOf(ds ...Direction) Set {
	var s Set
	for _, d := range ds {
		s.Add(d)
	}
	return s
}

func (s *Set) Add(d Direction)    { *s |= 1 << d }
func (s *Set) Remove(d Direction) { *s &^= 1 << d }
func (s *Set) Clear()             { *s = 0 }

func (s Set) Has(d Direction) bool { return s&(1<<d) != 0 }
func (s Set) Len() int             { return bits.OnesCount16(uint16(s)) }
func (s Set) Empty() bool          { return s == 0 }

// Union returns the directions present in either set.
func (s Set) Union(other Set) Set { return s | other }

// All iterates the members in ordinal order.
func (s Set) All() iter.Seq[Direction] {
	return func(yield func(Direction) bool) {
		for d := Up; d < Count; d++ {
			if s.Has(d) && !yield(d) {
				return
			}
		}
	}
}

// Slice returns the members in ordinal order.
func (s Set) Slice() []Direction {
	out := make([]Direction, 0, s.Len())
	for d := range s.All() {
		out = append(out, d)
	}
	return out
}

func (s Set) String() string {
	names := make([]string, 0, s.Len())
	for d := range s.All() {
		names = append(names, d.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
