package composite

import (
	"encoding/json"
	"fmt"

	"github.com/udisondev/vitreous/internal/descriptor"
	"github.com/udisondev/vitreous/internal/registry"
)

// DescribedEntry is an entry carrying default descriptors that every instance
// copies.
type DescribedEntry struct {
	registry.Base
	descriptor.Bundle
}

func (c *Catalog) decodeDescribed(raw json.RawMessage) (DescribedEntry, error) {
	base, err := registry.DecodeBase(raw)
	if err != nil {
		return DescribedEntry{}, err
	}
	var data descriptor.BundleData
	if err := json.Unmarshal(raw, &data); err != nil {
		return DescribedEntry{}, fmt.Errorf("%s: %w", base.ID, err)
	}
	b, err := descriptor.DecodeBundle(data, c.Catalog)
	if err != nil {
		return DescribedEntry{}, fmt.Errorf("%s: %w", base.ID, err)
	}
	return DescribedEntry{Base: base, Bundle: b}, nil
}

// InstanceData is the persisted form of a described instance.
type InstanceData struct {
	Ref string `json:"ref"`
	descriptor.BundleData
}

// resolve looks up the entry an instance refers to.
func resolve[V registry.Entry](reg *registry.Registry[V], d InstanceData) (V, error) {
	if err := registry.RequireRef(d.Ref); err != nil {
		var zero V
		return zero, err
	}
	return reg.Lookup(d.Ref)
}
