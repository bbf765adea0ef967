package composite

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"iter"

	"github.com/udisondev/vitreous/internal/descriptor"
	"github.com/udisondev/vitreous/internal/determinant"
	"github.com/udisondev/vitreous/internal/direction"
	"github.com/udisondev/vitreous/internal/patchwork"
	"github.com/udisondev/vitreous/internal/registry"
	"github.com/udisondev/vitreous/internal/texture"
)

// StructureEntry is a registered structure definition.
type StructureEntry struct {
	DescribedEntry

	element     *ElementEntry
	texture     *texture.Resource
	connections *texture.Resource
	partitions  *texture.Resource

	connector   patchwork.Connector
	determinant determinant.Structure
	container   ContainerSpec

	overlays map[string]*ConnectionOverlay
}

type structureJSON struct {
	Element             *string           `json:"element"`
	Res                 string            `json:"res"`
	Connections         string            `json:"connections"`
	Partitions          string            `json:"partitions"`
	Container           json.RawMessage   `json:"container"`
	ResourceDeterminant string            `json:"resource_determinant"`
	PatchworkConnector  string            `json:"patchwork_connector"`
	ExtraConnections    []json.RawMessage `json:"extra_connections"`
}

func (c *Catalog) decodeStructureEntry(raw json.RawMessage, _ registry.Source) (*StructureEntry, error) {
	de, err := c.decodeDescribed(raw)
	if err != nil {
		return nil, err
	}
	var j structureJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("structure %s: %w", de.ID, err)
	}
	wrap := func(err error) error { return fmt.Errorf("structure %s: %w", de.ID, err) }

	e := &StructureEntry{DescribedEntry: de}

	// An explicit element must exist; the implicit one (same identifier) is optional.
	if j.Element != nil {
		if e.element, err = c.Elements.Lookup(*j.Element); err != nil {
			return nil, wrap(err)
		}
	} else {
		e.element, _ = c.Elements.Get(de.ID)
	}

	if e.texture, err = c.texture(j.Res); err != nil {
		return nil, wrap(err)
	}
	if e.connections, err = c.texture(j.Connections); err != nil {
		return nil, wrap(err)
	}
	if e.partitions, err = c.texture(j.Partitions); err != nil {
		return nil, wrap(err)
	}
	if e.container, err = ParseContainerSpec(j.Container); err != nil {
		return nil, wrap(err)
	}

	if e.connections != nil {
		if e.connector, err = patchwork.New(j.PatchworkConnector, e.connections); err != nil {
			return nil, wrap(err)
		}
	}
	if e.partitions != nil && j.ResourceDeterminant != "" {
		if e.determinant, err = determinant.New(j.ResourceDeterminant, e.partitions); err != nil {
			return nil, wrap(err)
		}
	}

	for i, oraw := range j.ExtraConnections {
		ov, err := c.decodeOverlay(oraw)
		if err != nil {
			return nil, wrap(fmt.Errorf("extra_connections[%d]: %w", i, err))
		}
		if ov.ref == de.ID {
			continue
		}
		if e.overlays == nil {
			e.overlays = make(map[string]*ConnectionOverlay)
		}
		e.overlays[ov.ref] = ov
	}
	return e, nil
}

func (e *StructureEntry) Inherit(targets []*StructureEntry) {
	for _, t := range targets {
		e.Bundle.Inherit(&t.Bundle)
	}
}

func (e *StructureEntry) IsEmpty() bool                     { return e.ID == registry.Empty }
func (e *StructureEntry) Element() *ElementEntry            { return e.element }
func (e *StructureEntry) Texture() *texture.Resource        { return e.texture }
func (e *StructureEntry) Connector() patchwork.Connector    { return e.connector }
func (e *StructureEntry) Determinant() determinant.Structure { return e.determinant }
func (e *StructureEntry) Container() ContainerSpec          { return e.container }

// HasExtraConnection reports whether an overlay is declared for the structure id.
func (e *StructureEntry) HasExtraConnection(id string) bool {
	_, ok := e.overlays[id]
	return ok
}

func (e *StructureEntry) HasAnyExtraConnections() bool { return len(e.overlays) > 0 }

// ConnectionAllowed consults the determinant; structures without one accept
// every connection.
func (e *StructureEntry) ConnectionAllowed(d direction.Direction, s *Structure) bool {
	if e.determinant == nil {
		return true
	}
	return e.determinant.ConnectionAllowed(d, &s.Bundle)
}

// Layers returns the draw ops for a structure tile: the base texture (or the
// determinant-selected partition), connection patches, then extra connection
// overlays for adjacent structures.
func (e *StructureEntry) Layers(area image.Rectangle, s *Structure, connections direction.Set, extras iter.Seq2[direction.Direction, *Structure]) []patchwork.DrawOp {
	if e.IsEmpty() {
		return nil
	}
	var ops []patchwork.DrawOp
	switch {
	case e.determinant != nil && s != nil:
		ops = append(ops, patchwork.DrawOp{Texture: e.partitions, Src: e.determinant.DeterminePartition(&s.Bundle), Dst: area})
	case e.texture != nil:
		ops = append(ops, patchwork.DrawOp{Texture: e.texture, Src: e.texture.Bounds(), Dst: area})
	}
	if e.connector != nil {
		ops = patchwork.Patches(ops, e.connector, area, connections)
	}
	if extras != nil {
		for d, other := range extras {
			if ov, ok := e.overlays[other.Identifier()]; ok {
				ops = append(ops, ov.Render(area, d, other))
			}
		}
	}
	return ops
}

// ConnectionOverlay draws extra art where a structure meets a specific other
// structure, chosen by the other structure's state.
type ConnectionOverlay struct {
	ref         string
	connector   patchwork.Connector
	determinant determinant.Structure
}

type overlayJSON struct {
	Ref                 string `json:"ref"`
	Overlay             string `json:"overlay"`
	ResourceDeterminant string `json:"resource_determinant"`
	PatchworkConnector  string `json:"patchwork_connector"`
}

var errOverlayTexture = errors.New("overlay texture required")

func (c *Catalog) decodeOverlay(raw json.RawMessage) (*ConnectionOverlay, error) {
	var j overlayJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, err
	}
	if err := registry.RequireRef(j.Ref); err != nil {
		return nil, err
	}
	res, err := c.texture(j.Overlay)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, errOverlayTexture
	}

	ov := &ConnectionOverlay{ref: j.Ref}
	if ov.connector, err = patchwork.New(j.PatchworkConnector, res); err != nil {
		return nil, err
	}
	if j.ResourceDeterminant != "" {
		if ov.determinant, err = determinant.New(j.ResourceDeterminant, res); err != nil {
			return nil, err
		}
	}
	return ov, nil
}

func (o *ConnectionOverlay) Ref() string { return o.ref }

// Render picks the atlas region for other's state, then the patch for d
// within both that region and area.
func (o *ConnectionOverlay) Render(area image.Rectangle, d direction.Direction, other *Structure) patchwork.DrawOp {
	src := o.connector.Resource().Bounds()
	if o.determinant != nil {
		src = o.determinant.DeterminePartition(&other.Bundle)
	}
	return patchwork.DynamicPatch(o.connector, area, src, d)
}

// StructureData is the persisted form of a structure instance.
type StructureData struct {
	InstanceData
	Elements []CompositeData `json:"elements,omitempty"`
}

// Structure is an instance of a StructureEntry.
type Structure struct {
	entry *StructureEntry
	descriptor.Bundle
	elements Container
}

func NewStructure(e *StructureEntry) *Structure {
	return &Structure{entry: e, Bundle: e.Bundle.Duplicate(), elements: e.container.New()}
}

// DecodeStructure restores a persisted structure on top of its entry defaults.
func (c *Catalog) DecodeStructure(d StructureData) (*Structure, error) {
	e, err := resolve(c.Structures, d.InstanceData)
	if err != nil {
		return nil, fmt.Errorf("structure: %w", err)
	}
	s := NewStructure(e)
	if err := s.Bundle.Restore(d.BundleData, c.Catalog); err != nil {
		return nil, fmt.Errorf("structure %s: %w", e.ID, err)
	}
	for _, ed := range d.Elements {
		el, err := c.DecodeElement(ed)
		if err != nil {
			return nil, fmt.Errorf("structure %s: %w", e.ID, err)
		}
		s.elements.Add(el)
	}
	return s, nil
}

func (s *Structure) Entry() *StructureEntry { return s.entry }
func (s *Structure) Identifier() string     { return s.entry.ID }
func (s *Structure) IsEmpty() bool          { return s.entry.IsEmpty() }
func (s *Structure) Elements() Container    { return s.elements }

// ConnectionAllowed reports whether this structure accepts a connection from d.
func (s *Structure) ConnectionAllowed(d direction.Direction) bool {
	return s.entry.ConnectionAllowed(d, s)
}

// Duplicate copies descriptors and held elements.
func (s *Structure) Duplicate() *Structure {
	dup := &Structure{entry: s.entry, Bundle: s.Bundle.Duplicate(), elements: s.entry.container.New()}
	for el := range s.elements.All() {
		dup.elements.Add(el.Duplicate())
	}
	return dup
}

func (s *Structure) Export() StructureData {
	return StructureData{InstanceData: InstanceData{Ref: s.entry.ID, BundleData: s.Bundle.Export()}, Elements: s.exportElements()}
}

// ExportSlim writes only descriptor values differing from the entry defaults.
func (s *Structure) ExportSlim() StructureData {
	return StructureData{InstanceData: InstanceData{Ref: s.entry.ID, BundleData: s.Bundle.ExportDiff(&s.entry.Bundle)}, Elements: s.exportElements()}
}

func (s *Structure) exportElements() []CompositeData {
	var out []CompositeData
	for el := range s.elements.All() {
		out = append(out, el.Export())
	}
	return out
}

// ImportExtraData applies sparse descriptor overrides; unknown references are ignored.
func (s *Structure) ImportExtraData(d descriptor.BundleData) {
	s.Bundle.ImportExtraData(d)
}
