// Package composite implements the described and composite content model:
// Parts and Elements built from sub-part counts, and the Structures and Floors
// placed on tiles.
package composite

import (
	"errors"
	"fmt"

	"github.com/udisondev/vitreous/internal/descriptor"
	"github.com/udisondev/vitreous/internal/registry"
	"github.com/udisondev/vitreous/internal/texture"
)

// Registry keys and content folders.
const (
	PartKey      = "part"
	ElementKey   = "element"
	StructureKey = "structure"
	FloorKey     = "floor"

	PartFolder      = "composites/parts"
	ElementFolder   = "composites/elements"
	StructureFolder = "composites/structures"
	FloorFolder     = "composites/floors"
)

// ErrPartCycle is returned when a part (transitively) contains itself.
var ErrPartCycle = errors.New("part contains itself")

// Catalog owns every content registry up to the composite layer.
type Catalog struct {
	*descriptor.Catalog

	Textures   *registry.Registry[*texture.Resource]
	Parts      *registry.Registry[*PartEntry]
	Elements   *registry.Registry[*ElementEntry]
	Structures *registry.Registry[*StructureEntry]
	Floors     *registry.Registry[*FloorEntry]
}

// NewCatalog creates empty registries and registers the "empty" sentinel of
// each composite registry. Content may later redefine a sentinel.
func NewCatalog() *Catalog {
	c := &Catalog{
		Catalog:  descriptor.NewCatalog(),
		Textures: texture.NewRegistry(),
	}
	c.Parts = registry.New(PartKey, PartFolder, c.decodePartEntry)
	c.Elements = registry.New(ElementKey, ElementFolder, c.decodeElementEntry)
	c.Structures = registry.New(StructureKey, StructureFolder, c.decodeStructureEntry)
	c.Floors = registry.New(FloorKey, FloorFolder, c.decodeFloorEntry)

	c.Parts.Register(&PartEntry{CompositeEntry: CompositeEntry{DescribedEntry: emptyDescribed()}})
	c.Elements.Register(&ElementEntry{CompositeEntry: CompositeEntry{DescribedEntry: emptyDescribed()}})
	c.Structures.Register(&StructureEntry{DescribedEntry: emptyDescribed()})
	c.Floors.Register(&FloorEntry{DescribedEntry: emptyDescribed()})
	return c
}

func emptyDescribed() DescribedEntry {
	return DescribedEntry{Base: registry.NewBase(registry.Empty, "Nothing")}
}

// Importers lists every registry in dependency order.
func (c *Catalog) Importers() []registry.Importer {
	out := []registry.Importer{c.Textures}
	out = append(out, c.Catalog.Importers()...)
	return append(out, c.Parts, c.Elements, c.Structures, c.Floors)
}

// EmptyStructure returns the sentinel structure entry.
func (c *Catalog) EmptyStructure() *StructureEntry { return c.Structures.MustGet(registry.Empty) }

// EmptyFloor returns the sentinel floor entry.
func (c *Catalog) EmptyFloor() *FloorEntry { return c.Floors.MustGet(registry.Empty) }

// texture resolves an optional texture reference.
func (c *Catalog) texture(id string) (*texture.Resource, error) {
	if id == "" {
		return nil, nil
	}
	r, err := c.Textures.Lookup(id)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	return r, nil
}
