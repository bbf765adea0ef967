package descriptor

import (
	"encoding/json"
	"fmt"

	"github.com/udisondev/vitreous/internal/registry"
)

// QualifierEntry declares a boolean flag and its base value.
type QualifierEntry struct {
	registry.Base
	base bool
}

func NewQualifierEntry(id string, base bool) *QualifierEntry {
	return &QualifierEntry{Base: registry.NewBase(id, ""), base: base}
}

func DecodeQualifierEntry(raw json.RawMessage, _ registry.Source) (*QualifierEntry, error) {
	base, err := registry.DecodeBase(raw)
	if err != nil {
		return nil, err
	}
	var j struct {
		Base bool `json:"base"`
	}
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("qualifier %s: %w", base.ID, err)
	}
	return &QualifierEntry{Base: base, base: j.Base}, nil
}

func (e *QualifierEntry) BaseValue() bool { return e.base }

// QualifierData is the JSON shape of a qualifier instance.
type QualifierData struct {
	Ref   string `json:"ref"`
	Value *bool  `json:"value,omitempty"`
}

type Qualifier struct {
	entry *QualifierEntry
	value bool
}

func NewQualifier(entry *QualifierEntry) *Qualifier {
	return &Qualifier{entry: entry, value: entry.base}
}

// DecodeQualifier builds a qualifier; value defaults to the entry's base.
func DecodeQualifier(d QualifierData, entries *registry.Registry[*QualifierEntry]) (*Qualifier, error) {
	if err := registry.RequireRef(d.Ref); err != nil {
		return nil, fmt.Errorf("qualifier: %w", err)
	}
	entry, err := entries.Lookup(d.Ref)
	if err != nil {
		return nil, err
	}
	q := NewQualifier(entry)
	if d.Value != nil {
		q.value = *d.Value
	}
	return q, nil
}

func (q *Qualifier) Entry() *QualifierEntry { return q.entry }
func (q *Qualifier) Identifier() string     { return q.entry.Identifier() }
func (q *Qualifier) Value() bool            { return q.value }
func (q *Qualifier) SetValue(v bool)        { q.value = v }

// Toggle flips the value and returns the new one.
func (q *Qualifier) Toggle() bool {
	q.value = !q.value
	return q.value
}

func (q *Qualifier) Duplicate() *Qualifier {
	dup := *q
	return &dup
}

func (q *Qualifier) ImportExtraData(d QualifierData) {
	if d.Value != nil {
		q.value = *d.Value
	}
}

func (q *Qualifier) Export() QualifierData {
	v := q.value
	return QualifierData{Ref: q.Identifier(), Value: &v}
}

func (q *Qualifier) Differs(def *Qualifier) bool {
	return def == nil || q.value != def.value
}
