package composite

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/udisondev/vitreous/internal/registry"
)

// Container variant tags.
const (
	NullContainerKind = "null"
	HeapContainerKind = "heap"
	SetContainerKind  = "set"
)

// ErrUnknownContainer is returned for an unregistered container type.
var ErrUnknownContainer = errors.New("unknown element container")

// Container holds the elements placed in a structure.
type Container interface {
	Kind() string
	// Add reports whether the element was accepted.
	Add(e *Element) bool
	// Remove reports whether the element was held.
	Remove(e *Element) bool
	Len() int
	All() iter.Seq[*Element]
}

// ContainerSpec is the parsed "container" object of a structure entry.
type ContainerSpec struct {
	Kind string
	// Capacity bounds a heap container; zero is unbounded.
	Capacity int
}

type containerJSON struct {
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
}

// ParseContainerSpec reads a container declaration. A missing declaration
// yields a null container.
func ParseContainerSpec(raw json.RawMessage) (ContainerSpec, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return ContainerSpec{Kind: NullContainerKind}, nil
	}
	var j containerJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return ContainerSpec{}, fmt.Errorf("container: %w", err)
	}
	spec := ContainerSpec{Kind: registry.VariantTag(j.Type, "Container"), Capacity: j.Capacity}
	switch spec.Kind {
	case "":
		spec.Kind = NullContainerKind
	case NullContainerKind, HeapContainerKind, SetContainerKind:
	default:
		return ContainerSpec{}, fmt.Errorf("%q: %w", j.Type, ErrUnknownContainer)
	}
	if spec.Capacity < 0 {
		return ContainerSpec{}, fmt.Errorf("container capacity %d: must not be negative", spec.Capacity)
	}
	return spec, nil
}

// New creates an empty container for the spec.
func (s ContainerSpec) New() Container {
	switch s.Kind {
	case HeapContainerKind:
		return &HeapContainer{capacity: s.Capacity}
	case SetContainerKind:
		return &SetContainer{ids: mapset.New[string]()}
	default:
		return NullContainer{}
	}
}

// NullContainer accepts nothing.
type NullContainer struct{}

func (NullContainer) Kind() string            { return NullContainerKind }
func (NullContainer) Add(*Element) bool       { return false }
func (NullContainer) Remove(*Element) bool    { return false }
func (NullContainer) Len() int                { return 0 }
func (NullContainer) All() iter.Seq[*Element] { return func(func(*Element) bool) {} }

// HeapContainer is an ordered pile of elements with an optional capacity.
type HeapContainer struct {
	elements []*Element
	capacity int
}

func (h *HeapContainer) Kind() string { return HeapContainerKind }

func (h *HeapContainer) Add(e *Element) bool {
	if e == nil || (h.capacity > 0 && len(h.elements) >= h.capacity) {
		return false
	}
	h.elements = append(h.elements, e)
	return true
}

func (h *HeapContainer) Remove(e *Element) bool {
	i := slices.Index(h.elements, e)
	if i < 0 {
		return false
	}
	h.elements = slices.Delete(h.elements, i, i+1)
	return true
}

func (h *HeapContainer) Len() int                { return len(h.elements) }
func (h *HeapContainer) All() iter.Seq[*Element] { return slices.Values(h.elements) }

// SetContainer holds at most one element per element entry, except for
// distinct entries whose elements are always accepted.
type SetContainer struct {
	ids      mapset.Set[string]
	elements []*Element
}

func (s *SetContainer) Kind() string { return SetContainerKind }

func (s *SetContainer) Add(e *Element) bool {
	if e == nil || slices.Contains(s.elements, e) {
		return false
	}
	if !e.entry.Distinct() {
		if s.ids.Has(e.Identifier()) {
			return false
		}
		s.ids.Put(e.Identifier())
	}
	s.elements = append(s.elements, e)
	return true
}

func (s *SetContainer) Remove(e *Element) bool {
	i := slices.Index(s.elements, e)
	if i < 0 {
		return false
	}
	s.elements = slices.Delete(s.elements, i, i+1)
	if !e.entry.Distinct() {
		s.ids.Remove(e.Identifier())
	}
	return true
}

func (s *SetContainer) Len() int                { return len(s.elements) }
func (s *SetContainer) All() iter.Seq[*Element] { return slices.Values(s.elements) }
