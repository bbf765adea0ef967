// Package descriptor implements Attributes, States and Qualifiers: named
// values attached to described entries and copied into their instances.
//
// Entries live in registries and are shared; instances are owned by exactly
// one described instance and duplicated when that instance is copied.
package descriptor

import (
	"errors"

	"github.com/udisondev/vitreous/internal/registry"
)

// Registry keys and content folders.
const (
	AttributeKey = "attribute"
	StateKey     = "state"
	QualifierKey = "qualifier"

	AttributeFolder = "attributes"
	StateFolder     = "states"
	QualifierFolder = "qualifiers"
)

var (
	// ErrUnknownStateValue is returned when a state is set to a value its entry does not declare.
	ErrUnknownStateValue = errors.New("unknown state value")
	// ErrNoStateValues is returned for a state entry declaring no values.
	ErrNoStateValues = errors.New("state entry declares no values")
	// ErrInvalidRange is returned when an attribute's min exceeds its max.
	ErrInvalidRange = errors.New("attribute min exceeds max")
)

// Catalog groups the descriptor entry registries.
type Catalog struct {
	Attributes *registry.Registry[*AttributeEntry]
	States     *registry.Registry[*StateEntry]
	Qualifiers *registry.Registry[*QualifierEntry]
}

func NewCatalog() *Catalog {
	return &Catalog{
		Attributes: registry.New(AttributeKey, AttributeFolder, DecodeAttributeEntry),
		States:     registry.New(StateKey, StateFolder, DecodeStateEntry),
		Qualifiers: registry.New(QualifierKey, QualifierFolder, DecodeQualifierEntry),
	}
}

// Importers lists the registries in import order.
func (c *Catalog) Importers() []registry.Importer {
	return []registry.Importer{c.Attributes, c.Qualifiers, c.States}
}
