package descriptor

import "fmt"

// BundleData is the JSON shape shared by described entries and instances.
type BundleData struct {
	Attributes []AttributeData `json:"attributes,omitempty"`
	States     []StateData     `json:"states,omitempty"`
	Qualifiers []QualifierData `json:"qualifiers,omitempty"`
}

// Empty reports whether d carries no descriptors.
func (d BundleData) Empty() bool {
	return len(d.Attributes) == 0 && len(d.States) == 0 && len(d.Qualifiers) == 0
}

// Bundle holds the attributes, states and qualifiers of one entry or instance.
type Bundle struct {
	Attributes Set[*Attribute]
	States     Set[*State]
	Qualifiers Set[*Qualifier]
}

// DecodeBundle resolves every descriptor reference. Duplicate references keep
// the first declaration.
func DecodeBundle(d BundleData, c *Catalog) (Bundle, error) {
	var b Bundle
	for _, ad := range d.Attributes {
		a, err := DecodeAttribute(ad, c.Attributes)
		if err != nil {
			return Bundle{}, err
		}
		b.Attributes.Add(a)
	}
	for _, sd := range d.States {
		s, err := DecodeState(sd, c.States)
		if err != nil {
			return Bundle{}, err
		}
		b.States.Add(s)
	}
	for _, qd := range d.Qualifiers {
		q, err := DecodeQualifier(qd, c.Qualifiers)
		if err != nil {
			return Bundle{}, err
		}
		b.Qualifiers.Add(q)
	}
	return b, nil
}

func (b *Bundle) Attribute(id string) (*Attribute, bool) { return b.Attributes.Get(id) }
func (b *Bundle) State(id string) (*State, bool)         { return b.States.Get(id) }
func (b *Bundle) Qualifier(id string) (*Qualifier, bool) { return b.Qualifiers.Get(id) }

// Duplicate deep-copies every descriptor.
func (b *Bundle) Duplicate() Bundle {
	return Bundle{
		Attributes: b.Attributes.Map((*Attribute).Duplicate),
		States:     b.States.Map((*State).Duplicate),
		Qualifiers: b.Qualifiers.Map((*Qualifier).Duplicate),
	}
}

// Inherit adds copies of descriptors from o that b does not declare.
func (b *Bundle) Inherit(o *Bundle) {
	for a := range o.Attributes.All() {
		if !b.Attributes.Has(a.Identifier()) {
			b.Attributes.Add(a.Duplicate())
		}
	}
	for s := range o.States.All() {
		if !b.States.Has(s.Identifier()) {
			b.States.Add(s.Duplicate())
		}
	}
	for q := range o.Qualifiers.All() {
		if !b.Qualifiers.Has(q.Identifier()) {
			b.Qualifiers.Add(q.Duplicate())
		}
	}
}

// ImportExtraData applies sparse overrides to descriptors b already holds.
// References b does not hold are ignored.
func (b *Bundle) ImportExtraData(d BundleData) {
	for _, ad := range d.Attributes {
		if a, ok := b.Attributes.Get(ad.Ref); ok {
			a.ImportExtraData(ad)
		}
	}
	for _, sd := range d.States {
		if s, ok := b.States.Get(sd.Ref); ok {
			s.ImportExtraData(sd)
		}
	}
	for _, qd := range d.Qualifiers {
		if q, ok := b.Qualifiers.Get(qd.Ref); ok {
			q.ImportExtraData(qd)
		}
	}
}

// Restore applies d on top of entry defaults: known references are patched,
// unknown ones are decoded and appended so persisted data is never dropped.
func (b *Bundle) Restore(d BundleData, c *Catalog) error {
	for _, ad := range d.Attributes {
		if a, ok := b.Attributes.Get(ad.Ref); ok {
			a.ImportExtraData(ad)
			continue
		}
		a, err := DecodeAttribute(ad, c.Attributes)
		if err != nil {
			return fmt.Errorf("restoring attributes: %w", err)
		}
		b.Attributes.Add(a)
	}
	for _, sd := range d.States {
		if s, ok := b.States.Get(sd.Ref); ok {
			if sd.Value != nil {
				if err := s.SetValue(*sd.Value); err != nil {
					return fmt.Errorf("restoring states: %w", err)
				}
			}
			continue
		}
		s, err := DecodeState(sd, c.States)
		if err != nil {
			return fmt.Errorf("restoring states: %w", err)
		}
		b.States.Add(s)
	}
	for _, qd := range d.Qualifiers {
		if q, ok := b.Qualifiers.Get(qd.Ref); ok {
			q.ImportExtraData(qd)
			continue
		}
		q, err := DecodeQualifier(qd, c.Qualifiers)
		if err != nil {
			return fmt.Errorf("restoring qualifiers: %w", err)
		}
		b.Qualifiers.Add(q)
	}
	return nil
}

// Export writes every descriptor.
func (b *Bundle) Export() BundleData {
	return b.ExportDiff(nil)
}

// ExportDiff writes only descriptors that differ from def. A nil def exports all.
func (b *Bundle) ExportDiff(def *Bundle) BundleData {
	var d BundleData
	for a := range b.Attributes.All() {
		if def != nil {
			if other, ok := def.Attributes.Get(a.Identifier()); ok && !a.Differs(other) {
				continue
			}
		}
		d.Attributes = append(d.Attributes, a.Export())
	}
	for s := range b.States.All() {
		if def != nil {
			if other, ok := def.States.Get(s.Identifier()); ok && !s.Differs(other) {
				continue
			}
		}
		d.States = append(d.States, s.Export())
	}
	for q := range b.Qualifiers.All() {
		if def != nil {
			if other, ok := def.Qualifiers.Get(q.Identifier()); ok && !q.Differs(other) {
				continue
			}
		}
		d.Qualifiers = append(d.Qualifiers, q.Export())
	}
	return d
}
