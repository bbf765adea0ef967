package composite

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/udisondev/vitreous/internal/descriptor"
	"github.com/udisondev/vitreous/internal/registry"
)

// PartCount declares how many instances of a part an entry contains.
type PartCount struct {
	ID    string `json:"idn"`
	Count int    `json:"count"`
}

// CompositeEntry is a described entry that declares sub-parts. Declarations
// are resolved lazily, on instantiation.
type CompositeEntry struct {
	DescribedEntry
	parts []PartCount
}

type partCountJSON struct {
	ID    string `json:"idn"`
	Count *int   `json:"count"`
}

func (c *Catalog) decodeComposite(raw json.RawMessage) (CompositeEntry, error) {
	de, err := c.decodeDescribed(raw)
	if err != nil {
		return CompositeEntry{}, err
	}
	var j struct {
		Parts []partCountJSON `json:"parts"`
	}
	if err := json.Unmarshal(raw, &j); err != nil {
		return CompositeEntry{}, fmt.Errorf("%s: %w", de.ID, err)
	}

	e := CompositeEntry{DescribedEntry: de}
	for _, p := range j.Parts {
		if p.ID == "" {
			return CompositeEntry{}, fmt.Errorf("%s parts: %w %q", de.ID, registry.ErrMissingKey, registry.KeyIdentifier)
		}
		n := 1
		if p.Count != nil {
			n = *p.Count
		}
		if n < 0 {
			return CompositeEntry{}, fmt.Errorf("%s part %s: negative count %d", de.ID, p.ID, n)
		}
		// Later declarations of the same part replace the count.
		if i := slices.IndexFunc(e.parts, func(pc PartCount) bool { return pc.ID == p.ID }); i >= 0 {
			e.parts[i].Count = n
			continue
		}
		e.parts = append(e.parts, PartCount{ID: p.ID, Count: n})
	}
	return e, nil
}

// Parts returns the declared part counts in declaration order.
func (e *CompositeEntry) Parts() []PartCount { return slices.Clone(e.parts) }

// CompositeData is the persisted form of a part or element instance.
type CompositeData struct {
	InstanceData
	Parts []CompositeData `json:"parts,omitempty"`
}

// Composite is the instance state shared by parts and elements.
type Composite struct {
	descriptor.Bundle
	parts []*Part
}

// Parts returns the instantiated sub-parts.
func (c *Composite) Parts() []*Part { return slices.Clone(c.parts) }

func (c *Composite) duplicate() Composite {
	dup := Composite{Bundle: c.Bundle.Duplicate(), parts: make([]*Part, len(c.parts))}
	for i, p := range c.parts {
		dup.parts[i] = p.Duplicate()
	}
	return dup
}

func (c *Composite) export(ref string) CompositeData {
	d := CompositeData{InstanceData: InstanceData{Ref: ref, BundleData: c.Bundle.Export()}}
	for _, p := range c.parts {
		d.Parts = append(d.Parts, p.Export())
	}
	return d
}

// newComposite instantiates e: descriptors are copied and every declared part
// is instantiated Count times. path holds the part identifiers being built.
func (c *Catalog) newComposite(e *CompositeEntry, path []string) (Composite, error) {
	inst := Composite{Bundle: e.Bundle.Duplicate()}
	for _, pc := range e.parts {
		if slices.Contains(path, pc.ID) {
			return Composite{}, fmt.Errorf("%s via %v: %w", pc.ID, path, ErrPartCycle)
		}
		pe, err := c.Parts.Lookup(pc.ID)
		if err != nil {
			return Composite{}, fmt.Errorf("%s: %w", e.ID, err)
		}
		next := append(slices.Clone(path), pc.ID)
		for range pc.Count {
			sub, err := c.newComposite(&pe.CompositeEntry, next)
			if err != nil {
				return Composite{}, err
			}
			inst.parts = append(inst.parts, &Part{entry: pe, Composite: sub})
		}
	}
	return inst, nil
}

// restoreComposite restores persisted instance data on top of e's defaults.
// Persisted parts, when present, replace the default part list.
func (c *Catalog) restoreComposite(e *CompositeEntry, d CompositeData, path []string) (Composite, error) {
	if d.Parts == nil {
		inst, err := c.newComposite(e, path)
		if err != nil {
			return Composite{}, err
		}
		if err := inst.Bundle.Restore(d.BundleData, c.Catalog); err != nil {
			return Composite{}, fmt.Errorf("%s: %w", e.ID, err)
		}
		return inst, nil
	}

	inst := Composite{Bundle: e.Bundle.Duplicate()}
	if err := inst.Bundle.Restore(d.BundleData, c.Catalog); err != nil {
		return Composite{}, fmt.Errorf("%s: %w", e.ID, err)
	}
	for _, pd := range d.Parts {
		p, err := c.decodePart(pd, path)
		if err != nil {
			return Composite{}, err
		}
		inst.parts = append(inst.parts, p)
	}
	return inst, nil
}

// PartEntry is a registered part definition.
type PartEntry struct {
	CompositeEntry
}

func (c *Catalog) decodePartEntry(raw json.RawMessage, _ registry.Source) (*PartEntry, error) {
	ce, err := c.decodeComposite(raw)
	if err != nil {
		return nil, err
	}
	return &PartEntry{CompositeEntry: ce}, nil
}

func (e *PartEntry) Inherit(targets []*PartEntry) {
	for _, t := range targets {
		e.Bundle.Inherit(&t.Bundle)
	}
}

// Part is an instance of a PartEntry.
type Part struct {
	entry *PartEntry
	Composite
}

// NewPart instantiates a part and its sub-parts.
func (c *Catalog) NewPart(e *PartEntry) (*Part, error) {
	inst, err := c.newComposite(&e.CompositeEntry, []string{e.ID})
	if err != nil {
		return nil, err
	}
	return &Part{entry: e, Composite: inst}, nil
}

// DecodePart restores a persisted part.
func (c *Catalog) DecodePart(d CompositeData) (*Part, error) {
	return c.decodePart(d, nil)
}

func (c *Catalog) decodePart(d CompositeData, path []string) (*Part, error) {
	e, err := resolve(c.Parts, d.InstanceData)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	if slices.Contains(path, e.ID) {
		return nil, fmt.Errorf("%s via %v: %w", e.ID, path, ErrPartCycle)
	}
	inst, err := c.restoreComposite(&e.CompositeEntry, d, append(slices.Clone(path), e.ID))
	if err != nil {
		return nil, err
	}
	return &Part{entry: e, Composite: inst}, nil
}

func (p *Part) Entry() *PartEntry     { return p.entry }
func (p *Part) Identifier() string    { return p.entry.ID }
func (p *Part) Export() CompositeData { return p.export(p.entry.ID) }

func (p *Part) Duplicate() *Part {
	return &Part{entry: p.entry, Composite: p.duplicate()}
}
