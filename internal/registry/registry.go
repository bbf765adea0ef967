// Package registry provides keyed stores of JSON-defined entries.
//
// Entries are owned by their registry and treated as immutable once imported.
// Import is lenient: a malformed file or entry is logged and skipped, the rest
// of the import continues.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
)

// Entry is the constraint satisfied by registry values (normally pointers).
type Entry interface {
	comparable
	Identifier() string
}

// DecodeFunc constructs an entry from its raw JSON definition.
type DecodeFunc[V Entry] func(raw json.RawMessage, src Source) (V, error)

// Inheritor is implemented by entries that merge declarations from other
// entries listed under "inherits". Local declarations always win.
type Inheritor[V Entry] interface {
	Inherit(targets []V)
}

// Observer receives import outcomes. metrics.Metrics implements it.
type Observer interface {
	EntryImported(registry string)
	EntrySkipped(registry string)
	FileSkipped(registry string)
}

// Importer is the type-erased view used by bootstrap code.
type Importer interface {
	Key() string
	Folder() string
	Len() int
	ImportDir(ctx context.Context, dir string) error
	SetObserver(o Observer)
}

// Registry stores entries of type V by identifier, in insertion order.
type Registry[V Entry] struct {
	key    string
	folder string
	decode DecodeFunc[V]

	entries  map[string]V
	order    []string
	observer Observer
}

// New creates an empty registry. key is the type tag import files must declare,
// folder is the directory (relative to a content module root) holding them.
func New[V Entry](key, folder string, decode DecodeFunc[V]) *Registry[V] {
	return &Registry[V]{
		key:     key,
		folder:  folder,
		decode:  decode,
		entries: make(map[string]V),
	}
}

func (r *Registry[V]) Key() string    { return r.key }
func (r *Registry[V]) Folder() string { return r.folder }
func (r *Registry[V]) Len() int       { return len(r.entries) }

// SetObserver installs an import observer (nil disables).
func (r *Registry[V]) SetObserver(o Observer) { r.observer = o }

// Register inserts or overwrites an entry by identifier. The zero value is ignored.
func (r *Registry[V]) Register(v V) {
	var zero V
	if v == zero {
		return
	}
	id := v.Identifier()
	if _, ok := r.entries[id]; !ok {
		r.order = append(r.order, id)
	}
	r.entries[id] = v
}

// Has reports whether an entry with the identifier exists.
func (r *Registry[V]) Has(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// Get returns the entry and whether it exists.
func (r *Registry[V]) Get(id string) (V, bool) {
	v, ok := r.entries[id]
	return v, ok
}

// GetOrDefault returns the entry or def when absent.
func (r *Registry[V]) GetOrDefault(id string, def V) V {
	if v, ok := r.entries[id]; ok {
		return v
	}
	return def
}

// Lookup is the strict accessor: unknown identifiers yield ErrNotFound.
func (r *Registry[V]) Lookup(id string) (V, error) {
	v, ok := r.entries[id]
	if !ok {
		return v, fmt.Errorf("%s %q: %w", r.key, id, ErrNotFound)
	}
	return v, nil
}

// MustGet panics on unknown identifiers. Use only where absence is a content bug.
func (r *Registry[V]) MustGet(id string) V {
	v, err := r.Lookup(id)
	if err != nil {
		panic(err)
	}
	return v
}

// Entries iterates entries in insertion order.
func (r *Registry[V]) Entries() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, id := range r.order {
			if !yield(r.entries[id]) {
				return
			}
		}
	}
}

// Identifiers returns identifiers in insertion order.
func (r *Registry[V]) Identifiers() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// envelope is the shape of a registry import file.
type envelope struct {
	Type    string            `json:"type"`
	Entries []json.RawMessage `json:"entries"`
}

type inherits struct {
	Inherits []string `json:"inherits"`
}

// ImportJSON imports one registry file. A file-level problem (bad JSON, wrong
// type tag, no entries array) is returned; per-entry failures are logged and
// skipped. It returns the number of entries registered.
func (r *Registry[V]) ImportJSON(data []byte, src Source) (int, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return 0, fmt.Errorf("parsing %s: %w", src.Path, err)
	}
	return r.importEnvelope(env, src)
}

func (r *Registry[V]) importEnvelope(env envelope, src Source) (int, error) {
	if env.Type != r.key {
		return 0, fmt.Errorf("type %q does not match registry %q: %w", env.Type, r.key, ErrTypeMismatch)
	}
	if env.Entries == nil {
		return 0, fmt.Errorf("registry %s: %w %q", r.key, ErrMissingKey, KeyEntries)
	}

	imported := 0
	for i, raw := range env.Entries {
		if err := r.importEntry(raw, src); err != nil {
			slog.Warn("skipping entry",
				"registry", r.key,
				"source", src.Path,
				"index", i,
				"err", err)
			if r.observer != nil {
				r.observer.EntrySkipped(r.key)
			}
			continue
		}
		imported++
		if r.observer != nil {
			r.observer.EntryImported(r.key)
		}
	}
	return imported, nil
}

func (r *Registry[V]) importEntry(raw json.RawMessage, src Source) error {
	var inh inherits
	if err := json.Unmarshal(raw, &inh); err != nil {
		return fmt.Errorf("decoding entry: %w", err)
	}

	v, err := r.decode(raw, src)
	if err != nil {
		return err
	}

	if len(inh.Inherits) > 0 {
		targets := make([]V, 0, len(inh.Inherits))
		for _, id := range inh.Inherits {
			t, ok := r.entries[id]
			if !ok {
				slog.Warn("inherited entry not found",
					"registry", r.key,
					"entry", v.Identifier(),
					"inherits", id)
				continue
			}
			targets = append(targets, t)
		}
		if in, ok := any(v).(Inheritor[V]); ok {
			in.Inherit(targets)
		}
	}

	r.Register(v)
	return nil
}
