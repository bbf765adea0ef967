package descriptor

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/udisondev/vitreous/internal/registry"
)

// Attribute bounds when an entry does not declare them.
const (
	DefaultMin = math.MinInt32
	DefaultMax = math.MaxInt32
)

// AttributeEntry names a numeric attribute.
type AttributeEntry struct {
	registry.Base
}

func NewAttributeEntry(id string) *AttributeEntry {
	return &AttributeEntry{Base: registry.NewBase(id, "")}
}

func DecodeAttributeEntry(raw json.RawMessage, _ registry.Source) (*AttributeEntry, error) {
	base, err := registry.DecodeBase(raw)
	if err != nil {
		return nil, err
	}
	return &AttributeEntry{Base: base}, nil
}

// Modifier is a named signed adjustment applied on top of an attribute value.
type Modifier struct {
	ID    string `json:"idn"`
	Desc  string `json:"dsc,omitempty"`
	Value int    `json:"value"`
}

// AttributeData is the JSON shape of an attribute instance. Pointer fields are
// optional; exports only carry ref, value and modifiers.
type AttributeData struct {
	Ref       string     `json:"ref"`
	Min       *int       `json:"min,omitempty"`
	Max       *int       `json:"max,omitempty"`
	Base      *int       `json:"base,omitempty"`
	Value     *int       `json:"value,omitempty"`
	Modifiers []Modifier `json:"modifiers,omitempty"`
}

// Attribute is a bounded integer. Writes are clamped to [Min, Max].
type Attribute struct {
	entry     *AttributeEntry
	min, max  int
	base      int
	value     int
	modifiers []Modifier
}

// NewAttribute returns an attribute whose value starts at base.
func NewAttribute(entry *AttributeEntry, base, lo, hi int) *Attribute {
	if lo > hi {
		lo, hi = hi, lo
	}
	a := &Attribute{entry: entry, min: lo, max: hi}
	a.base = a.clamp(base)
	a.value = a.base
	return a
}

// DecodeAttribute builds an attribute from its declaration. min and max
// default to the int32 range, base defaults to max and value to base.
func DecodeAttribute(d AttributeData, entries *registry.Registry[*AttributeEntry]) (*Attribute, error) {
	if err := registry.RequireRef(d.Ref); err != nil {
		return nil, fmt.Errorf("attribute: %w", err)
	}
	entry, err := entries.Lookup(d.Ref)
	if err != nil {
		return nil, err
	}

	lo, hi := deref(d.Min, DefaultMin), deref(d.Max, DefaultMax)
	if lo > hi {
		return nil, fmt.Errorf("attribute %s [%d, %d]: %w", d.Ref, lo, hi, ErrInvalidRange)
	}
	a := NewAttribute(entry, deref(d.Base, hi), lo, hi)
	a.SetValue(deref(d.Value, a.base))
	for _, m := range d.Modifiers {
		a.AddModifier(m)
	}
	return a, nil
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func (a *Attribute) Entry() *AttributeEntry { return a.entry }
func (a *Attribute) Identifier() string     { return a.entry.Identifier() }
func (a *Attribute) Min() int               { return a.min }
func (a *Attribute) Max() int               { return a.max }
func (a *Attribute) Base() int              { return a.base }
func (a *Attribute) Value() int             { return a.value }

// SetValue stores v clamped to the attribute bounds and returns the stored value.
func (a *Attribute) SetValue(v int) int {
	a.value = a.clamp(v)
	return a.value
}

// Reset restores the base value.
func (a *Attribute) Reset() { a.value = a.base }

func (a *Attribute) clamp(v int) int {
	return min(max(v, a.min), a.max)
}

// Modifiers returns a copy of the modifier list.
func (a *Attribute) Modifiers() []Modifier {
	return slices.Clone(a.modifiers)
}

// AddModifier adds m, replacing a modifier with the same identifier.
func (a *Attribute) AddModifier(m Modifier) {
	if i := a.modifierIndex(m.ID); i >= 0 {
		a.modifiers[i] = m
		return
	}
	a.modifiers = append(a.modifiers, m)
}

// RemoveModifier removes the modifier with the identifier and reports whether it existed.
func (a *Attribute) RemoveModifier(id string) bool {
	i := a.modifierIndex(id)
	if i < 0 {
		return false
	}
	a.modifiers = slices.Delete(a.modifiers, i, i+1)
	return true
}

func (a *Attribute) modifierIndex(id string) int {
	return slices.IndexFunc(a.modifiers, func(m Modifier) bool { return m.ID == id })
}

// Total is the value plus every modifier, clamped to the bounds.
func (a *Attribute) Total() int {
	sum := int64(a.value)
	for _, m := range a.modifiers {
		sum += int64(m.Value)
	}
	return int(min(max(sum, int64(a.min)), int64(a.max)))
}

// Duplicate returns an independent copy, value and modifiers included.
func (a *Attribute) Duplicate() *Attribute {
	dup := *a
	dup.modifiers = slices.Clone(a.modifiers)
	return &dup
}

// ImportExtraData applies a sparse override: an explicit value and any modifiers.
func (a *Attribute) ImportExtraData(d AttributeData) {
	if d.Value != nil {
		a.SetValue(*d.Value)
	}
	for _, m := range d.Modifiers {
		a.AddModifier(m)
	}
}

func (a *Attribute) Export() AttributeData {
	v := a.value
	return AttributeData{
		Ref:       a.Identifier(),
		Value:     &v,
		Modifiers: a.Modifiers(),
	}
}

// Differs reports whether a carries instance data not present in def.
func (a *Attribute) Differs(def *Attribute) bool {
	return def == nil || a.value != def.value || !slices.Equal(a.modifiers, def.modifiers)
}
