package main

import (
	"fmt"
	"slices"

	"github.com/udisondev/vitreous/internal/descriptor"
	"github.com/udisondev/vitreous/internal/editor"
	"github.com/udisondev/vitreous/internal/spatial"
)

type fieldKind uint8

const (
	attributeField fieldKind = iota
	stateField
	qualifierField
)

var fieldKindNames = [...]string{
	attributeField: "attribute",
	stateField:     "state",
	qualifierField: "qualifier",
}

// field is one editable descriptor of the inspected tile.
type field struct {
	layer editor.Layer
	kind  fieldKind
	id    string
}

func (f field) String() string {
	return fmt.Sprintf("%s %s %s", f.layer, fieldKindNames[f.kind], f.id)
}

func layerBundle(t *spatial.Tile, l editor.Layer) *descriptor.Bundle {
	if l == editor.FloorLayer {
		return &t.Floor.Bundle
	}
	return &t.Structure.Bundle
}

// fieldsOf lists the descriptors of t in panel order, structure first.
func fieldsOf(t *spatial.Tile) []field {
	if t == nil {
		return nil
	}
	var out []field
	for _, l := range []editor.Layer{editor.StructureLayer, editor.FloorLayer} {
		b := layerBundle(t, l)
		for a := range b.Attributes.All() {
			out = append(out, field{l, attributeField, a.Identifier()})
		}
		for s := range b.States.All() {
			out = append(out, field{l, stateField, s.Identifier()})
		}
		for q := range b.Qualifiers.All() {
			out = append(out, field{l, qualifierField, q.Identifier()})
		}
	}
	return out
}

// adjust edits f on t by d steps. Attributes move by d, states move d values
// along their declaration order and qualifiers toggle. It returns the new
// value as display text.
func adjust(t *spatial.Tile, f field, d int) (string, error) {
	switch f.kind {
	case attributeField:
		a, ok := layerBundle(t, f.layer).Attribute(f.id)
		if !ok {
			return "", fmt.Errorf("%s: %w", f, editor.ErrNoDescriptor)
		}
		v, err := editor.SetAttribute(t, f.layer, f.id, a.Value()+d)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s = %d", f.layer, f.id, v), nil
	case stateField:
		s, ok := layerBundle(t, f.layer).State(f.id)
		if !ok {
			return "", fmt.Errorf("%s: %w", f, editor.ErrNoDescriptor)
		}
		values := s.Entry().Values()
		if len(values) == 0 {
			return "", fmt.Errorf("%s has no values", f)
		}
		i := slices.IndexFunc(values, func(v descriptor.StateValue) bool { return v.ID == s.Value().ID })
		next := values[((i+d)%len(values)+len(values))%len(values)]
		if err := editor.SelectState(t, f.layer, f.id, next.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s = %s", f.layer, f.id, next.ID), nil
	default:
		v, err := editor.ToggleQualifier(t, f.layer, f.id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s = %t", f.layer, f.id, v), nil
	}
}

func (g *game) inspected() *spatial.Tile {
	return g.inspector.Tile(g.frame().Area)
}

// currentField returns the selected field of the inspected tile.
func (g *game) currentField() (field, bool) {
	fs := fieldsOf(g.inspected())
	if len(fs) == 0 {
		return field{}, false
	}
	return fs[min(g.field, len(fs)-1)], true
}

func (g *game) moveField(d int) {
	fs := fieldsOf(g.inspected())
	if len(fs) == 0 {
		return
	}
	g.field = ((min(g.field, len(fs)-1)+d)%len(fs) + len(fs)) % len(fs)
}

// editField changes the selected field. Edits mark the tile for the next
// connection update and are not recorded in the history.
func (g *game) editField(d int) {
	f, ok := g.currentField()
	if !ok {
		g.status = "nothing to edit"
		return
	}
	s, err := adjust(g.inspected(), f, d)
	if err != nil {
		g.status = err.Error()
		return
	}
	g.status = s
}
