package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
)

var (
	// ErrNotFound is returned by strict lookups of an unknown identifier.
	ErrNotFound = errors.New("registry entry not found")
	// ErrTypeMismatch is returned when an import file declares another registry's type.
	ErrTypeMismatch = errors.New("registry type mismatch")
	// ErrMissingKey is returned when a required JSON key is absent.
	ErrMissingKey = errors.New("missing required key")
)

// Common JSON keys shared by every entry and instance.
const (
	KeyIdentifier  = "idn"
	KeyDescription = "dsc"
	KeyReference   = "ref"
	KeyInherits    = "inherits"
	KeyType        = "type"
	KeyEntries     = "entries"

	// Empty is the identifier of the sentinel entry standing in for absence.
	Empty = "empty"
	// Unknown is the identifier of the fallback area type.
	Unknown = "unknown"
)

// Base holds the fields common to every registry entry.
type Base struct {
	ID   string `json:"idn"`
	Desc string `json:"dsc,omitempty"`
}

// NewBase returns a Base with the given identifier and description.
func NewBase(id, desc string) Base {
	return Base{ID: id, Desc: desc}
}

func (b Base) Identifier() string  { return b.ID }
func (b Base) Description() string { return b.Desc }

// DecodeBase reads the common entry fields and requires a non-empty identifier.
func DecodeBase(raw json.RawMessage) (Base, error) {
	var b Base
	if err := json.Unmarshal(raw, &b); err != nil {
		return Base{}, fmt.Errorf("decoding entry: %w", err)
	}
	if b.ID == "" {
		return Base{}, fmt.Errorf("entry: %w %q", ErrMissingKey, KeyIdentifier)
	}
	return b, nil
}

// Source describes where a raw entry came from.
type Source struct {
	// Path of the import file; empty for entries built in memory.
	Path string
}

// Dir returns the directory of the import file.
func (s Source) Dir() string {
	if s.Path == "" {
		return ""
	}
	return filepath.Dir(s.Path)
}

// RequireRef validates an instance reference field.
func RequireRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("instance: %w %q", ErrMissingKey, KeyReference)
	}
	return nil
}
