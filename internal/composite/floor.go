package composite

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/udisondev/vitreous/internal/descriptor"
	"github.com/udisondev/vitreous/internal/direction"
	"github.com/udisondev/vitreous/internal/patchwork"
	"github.com/udisondev/vitreous/internal/registry"
	"github.com/udisondev/vitreous/internal/texture"
)

// FloorEntry is a registered floor definition.
type FloorEntry struct {
	DescribedEntry
	texture     *texture.Resource
	connections *texture.Resource
	connector   patchwork.Connector
}

type floorJSON struct {
	Res                string `json:"res"`
	Connections        string `json:"connections"`
	PatchworkConnector string `json:"patchwork_connector"`
}

func (c *Catalog) decodeFloorEntry(raw json.RawMessage, _ registry.Source) (*FloorEntry, error) {
	de, err := c.decodeDescribed(raw)
	if err != nil {
		return nil, err
	}
	var j floorJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("floor %s: %w", de.ID, err)
	}

	e := &FloorEntry{DescribedEntry: de}
	if e.texture, err = c.texture(j.Res); err != nil {
		return nil, fmt.Errorf("floor %s: %w", de.ID, err)
	}
	if e.connections, err = c.texture(j.Connections); err != nil {
		return nil, fmt.Errorf("floor %s: %w", de.ID, err)
	}
	if e.connections != nil {
		// Floors are viewed from directly above unless a connector says otherwise.
		var opts []patchwork.Option
		if j.PatchworkConnector == "" {
			opts = append(opts, patchwork.WithSkew(1, 2))
		}
		if e.connector, err = patchwork.New(j.PatchworkConnector, e.connections, opts...); err != nil {
			return nil, fmt.Errorf("floor %s: %w", de.ID, err)
		}
	}
	return e, nil
}

func (e *FloorEntry) Inherit(targets []*FloorEntry) {
	for _, t := range targets {
		e.Bundle.Inherit(&t.Bundle)
	}
}

func (e *FloorEntry) IsEmpty() bool                  { return e.ID == registry.Empty }
func (e *FloorEntry) Texture() *texture.Resource     { return e.texture }
func (e *FloorEntry) Connector() patchwork.Connector { return e.connector }

// Layers returns the draw ops for a floor tile: the base texture, then one
// patch per connection.
func (e *FloorEntry) Layers(area image.Rectangle, connections direction.Set) []patchwork.DrawOp {
	if e.IsEmpty() {
		return nil
	}
	var ops []patchwork.DrawOp
	if e.texture != nil {
		ops = append(ops, patchwork.DrawOp{Texture: e.texture, Src: e.texture.Bounds(), Dst: area})
	}
	if e.connector != nil {
		ops = patchwork.Patches(ops, e.connector, area, connections)
	}
	return ops
}

// Floor is an instance of a FloorEntry.
type Floor struct {
	entry *FloorEntry
	descriptor.Bundle
}

func NewFloor(e *FloorEntry) *Floor {
	return &Floor{entry: e, Bundle: e.Bundle.Duplicate()}
}

// DecodeFloor restores a persisted floor on top of its entry defaults.
func (c *Catalog) DecodeFloor(d InstanceData) (*Floor, error) {
	e, err := resolve(c.Floors, d)
	if err != nil {
		return nil, fmt.Errorf("floor: %w", err)
	}
	f := NewFloor(e)
	if err := f.Bundle.Restore(d.BundleData, c.Catalog); err != nil {
		return nil, fmt.Errorf("floor %s: %w", e.ID, err)
	}
	return f, nil
}

func (f *Floor) Entry() *FloorEntry { return f.entry }
func (f *Floor) Identifier() string { return f.entry.ID }
func (f *Floor) IsEmpty() bool      { return f.entry.IsEmpty() }

func (f *Floor) Duplicate() *Floor {
	return &Floor{entry: f.entry, Bundle: f.Bundle.Duplicate()}
}

func (f *Floor) Export() InstanceData {
	return InstanceData{Ref: f.entry.ID, BundleData: f.Bundle.Export()}
}

// ExportSlim writes only descriptor values differing from the entry defaults.
func (f *Floor) ExportSlim() InstanceData {
	return InstanceData{Ref: f.entry.ID, BundleData: f.Bundle.ExportDiff(&f.entry.Bundle)}
}

// ImportExtraData applies sparse descriptor overrides.
func (f *Floor) ImportExtraData(d descriptor.BundleData) {
	f.Bundle.ImportExtraData(d)
}
