package descriptor

import (
	"encoding/json"
	"fmt"

	"github.com/udisondev/vitreous/internal/registry"
)

// StateValue is one of the named values a state may take.
type StateValue struct {
	ID   string `json:"idn"`
	Desc string `json:"dsc,omitempty"`
}

// StateEntry declares an enumerated state: its values and the base value.
type StateEntry struct {
	registry.Base
	values []StateValue
	index  map[string]int
	base   int
}

// NewStateEntry builds an entry with the given values; the first is the base.
func NewStateEntry(id string, values ...string) (*StateEntry, error) {
	sv := make([]StateValue, len(values))
	for i, v := range values {
		sv[i] = StateValue{ID: v}
	}
	return newStateEntry(registry.NewBase(id, ""), sv, "")
}

type stateEntryJSON struct {
	Base   string       `json:"base"`
	Values []StateValue `json:"values"`
}

func DecodeStateEntry(raw json.RawMessage, _ registry.Source) (*StateEntry, error) {
	base, err := registry.DecodeBase(raw)
	if err != nil {
		return nil, err
	}
	var j stateEntryJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("state %s: %w", base.ID, err)
	}
	return newStateEntry(base, j.Values, j.Base)
}

func newStateEntry(base registry.Base, values []StateValue, baseValue string) (*StateEntry, error) {
	e := &StateEntry{Base: base, index: make(map[string]int, len(values))}
	for _, v := range values {
		if v.ID == "" {
			return nil, fmt.Errorf("state %s: value %w %q", base.ID, registry.ErrMissingKey, registry.KeyIdentifier)
		}
		if _, dup := e.index[v.ID]; dup {
			continue
		}
		e.index[v.ID] = len(e.values)
		e.values = append(e.values, v)
	}
	if len(e.values) == 0 {
		return nil, fmt.Errorf("state %s: %w", base.ID, ErrNoStateValues)
	}
	if baseValue != "" {
		i, ok := e.index[baseValue]
		if !ok {
			return nil, fmt.Errorf("state %s base %q: %w", base.ID, baseValue, ErrUnknownStateValue)
		}
		e.base = i
	}
	return e, nil
}

func (e *StateEntry) BaseValue() StateValue { return e.values[e.base] }

func (e *StateEntry) HasValue(id string) bool {
	_, ok := e.index[id]
	return ok
}

func (e *StateEntry) Value(id string) (StateValue, bool) {
	i, ok := e.index[id]
	if !ok {
		return StateValue{}, false
	}
	return e.values[i], true
}

// Values returns the declared values in declaration order.
func (e *StateEntry) Values() []StateValue {
	out := make([]StateValue, len(e.values))
	copy(out, e.values)
	return out
}

// StateData is the JSON shape of a state instance.
type StateData struct {
	Ref   string  `json:"ref"`
	Value *string `json:"value,omitempty"`
}

// State holds one value of its entry.
type State struct {
	entry *StateEntry
	value StateValue
}

// NewState returns a state holding the entry's base value.
func NewState(entry *StateEntry) *State {
	return &State{entry: entry, value: entry.BaseValue()}
}

// DecodeState builds a state; value defaults to the entry's base value.
func DecodeState(d StateData, entries *registry.Registry[*StateEntry]) (*State, error) {
	if err := registry.RequireRef(d.Ref); err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}
	entry, err := entries.Lookup(d.Ref)
	if err != nil {
		return nil, err
	}
	s := NewState(entry)
	if d.Value != nil {
		if err := s.SetValue(*d.Value); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *State) Entry() *StateEntry { return s.entry }
func (s *State) Identifier() string { return s.entry.Identifier() }
func (s *State) Value() StateValue  { return s.value }

// Is reports whether the current value has the identifier.
func (s *State) Is(id string) bool { return s.value.ID == id }

// SetValue switches to the value with the identifier.
func (s *State) SetValue(id string) error {
	v, ok := s.entry.Value(id)
	if !ok {
		return fmt.Errorf("state %s value %q: %w", s.Identifier(), id, ErrUnknownStateValue)
	}
	s.value = v
	return nil
}

func (s *State) Duplicate() *State {
	dup := *s
	return &dup
}

// ImportExtraData applies the value only if the entry declares it.
func (s *State) ImportExtraData(d StateData) {
	if d.Value != nil && s.entry.HasValue(*d.Value) {
		s.value, _ = s.entry.Value(*d.Value)
	}
}

func (s *State) Export() StateData {
	v := s.value.ID
	return StateData{Ref: s.Identifier(), Value: &v}
}

func (s *State) Differs(def *State) bool {
	return def == nil || s.value.ID != def.value.ID
}
