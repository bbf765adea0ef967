package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/udisondev/vitreous/internal/descriptor"
	"github.com/udisondev/vitreous/internal/spatial"
)

// ErrNoDescriptor is returned when the inspected layer lacks the descriptor.
var ErrNoDescriptor = errors.New("descriptor not present")

// Layer selects the half of a tile an inspector operation targets.
type Layer uint8

const (
	StructureLayer Layer = iota
	FloorLayer
)

func (l Layer) String() string {
	if l == FloorLayer {
		return "floor"
	}
	return "structure"
}

func bundle(t *spatial.Tile, l Layer) *descriptor.Bundle {
	if l == FloorLayer {
		return &t.Floor.Bundle
	}
	return &t.Structure.Bundle
}

// SetAttribute writes an attribute value, clamped to its range, and marks
// the tile for a connection update. It returns the stored value.
func SetAttribute(t *spatial.Tile, l Layer, id string, v int) (int, error) {
	a, ok := bundle(t, l).Attribute(id)
	if !ok {
		return 0, fmt.Errorf("%s attribute %s: %w", l, id, ErrNoDescriptor)
	}
	got := a.SetValue(v)
	t.Invalidated = true
	return got, nil
}

// SelectState switches a state to one of its declared values. Determinants
// read states, so the neighbourhood is invalidated too.
func SelectState(t *spatial.Tile, l Layer, id, value string) error {
	s, ok := bundle(t, l).State(id)
	if !ok {
		return fmt.Errorf("%s state %s: %w", l, id, ErrNoDescriptor)
	}
	if err := s.SetValue(value); err != nil {
		return err
	}
	t.Invalidated = true
	t.InvalidateAdjacencies = true
	return nil
}

// ToggleQualifier flips a qualifier and returns its new value.
func ToggleQualifier(t *spatial.Tile, l Layer, id string) (bool, error) {
	q, ok := bundle(t, l).Qualifier(id)
	if !ok {
		return false, fmt.Errorf("%s qualifier %s: %w", l, id, ErrNoDescriptor)
	}
	v := q.Toggle()
	t.Invalidated = true
	t.InvalidateAdjacencies = true
	return v, nil
}

// Describe renders a tile as text lines for display.
func Describe(t *spatial.Tile) []string {
	if t == nil {
		return nil
	}
	lines := []string{"structure: " + t.Structure.Identifier()}
	lines = appendBundle(lines, &t.Structure.Bundle)
	if n := t.Structure.Elements().Len(); n > 0 {
		ids := make([]string, 0, n)
		for el := range t.Structure.Elements().All() {
			ids = append(ids, el.Identifier())
		}
		lines = append(lines, "  elements: "+strings.Join(ids, ", "))
	}
	lines = append(lines, "floor: "+t.Floor.Identifier())
	lines = appendBundle(lines, &t.Floor.Bundle)
	lines = append(lines, "connections: "+t.StructureConnections().String())
	return lines
}

func appendBundle(lines []string, b *descriptor.Bundle) []string {
	for a := range b.Attributes.All() {
		lines = append(lines, fmt.Sprintf("  %s = %d [%d..%d]", a.Identifier(), a.Value(), a.Min(), a.Max()))
	}
	for s := range b.States.All() {
		lines = append(lines, fmt.Sprintf("  %s = %s", s.Identifier(), s.Value().ID))
	}
	for q := range b.Qualifiers.All() {
		lines = append(lines, fmt.Sprintf("  %s = %t", q.Identifier(), q.Value()))
	}
	return lines
}
