package composite

import (
	"encoding/json"
	"fmt"

	"github.com/udisondev/vitreous/internal/registry"
)

// ElementEntry is a registered element definition. Instances of a distinct
// entry are not interchangeable with each other.
type ElementEntry struct {
	CompositeEntry
	distinct bool
}

func (c *Catalog) decodeElementEntry(raw json.RawMessage, _ registry.Source) (*ElementEntry, error) {
	ce, err := c.decodeComposite(raw)
	if err != nil {
		return nil, err
	}
	var j struct {
		Distinct bool `json:"distinct"`
	}
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("%s: %w", ce.ID, err)
	}
	return &ElementEntry{CompositeEntry: ce, distinct: j.Distinct}, nil
}

func (e *ElementEntry) Distinct() bool { return e.distinct }

func (e *ElementEntry) Inherit(targets []*ElementEntry) {
	for _, t := range targets {
		e.Bundle.Inherit(&t.Bundle)
	}
}

// Element is an instance of an ElementEntry.
type Element struct {
	entry *ElementEntry
	Composite
}

// NewElement instantiates an element and its parts.
func (c *Catalog) NewElement(e *ElementEntry) (*Element, error) {
	inst, err := c.newComposite(&e.CompositeEntry, nil)
	if err != nil {
		return nil, err
	}
	return &Element{entry: e, Composite: inst}, nil
}

// DecodeElement restores a persisted element.
func (c *Catalog) DecodeElement(d CompositeData) (*Element, error) {
	e, err := resolve(c.Elements, d.InstanceData)
	if err != nil {
		return nil, fmt.Errorf("element: %w", err)
	}
	inst, err := c.restoreComposite(&e.CompositeEntry, d, nil)
	if err != nil {
		return nil, err
	}
	return &Element{entry: e, Composite: inst}, nil
}

func (el *Element) Entry() *ElementEntry  { return el.entry }
func (el *Element) Identifier() string    { return el.entry.ID }
func (el *Element) Export() CompositeData { return el.export(el.entry.ID) }

func (el *Element) Duplicate() *Element {
	return &Element{entry: el.entry, Composite: el.duplicate()}
}
