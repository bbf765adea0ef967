// Package spatial implements the tile grid: tiles holding a floor and a
// structure, fixed-size areas of tiles and sectors of areas.
package spatial

import (
	"image"

	"github.com/udisondev/vitreous/internal/composite"
	"github.com/udisondev/vitreous/internal/registry"
)

// Registry keys and content folders.
const (
	AreaTypeKey = "area_type"
	AreaKey     = "area"
	SectorKey   = "sector"

	AreaTypeFolder = "spatial/area_types"
	AreaFolder     = "spatial/areas"
	SectorFolder   = "spatial/sectors"
)

// Options holds the process-wide grid dimensions.
type Options struct {
	GridWidth  int
	GridHeight int

	TileWidth  int
	TileHeight int

	SectorGridWidth  int
	SectorGridHeight int
}

func DefaultOptions() Options {
	return Options{
		GridWidth:        48,
		GridHeight:       32,
		TileWidth:        24,
		TileHeight:       24,
		SectorGridWidth:  48,
		SectorGridHeight: 32,
	}
}

// TileRect returns the pixel rectangle of grid position p relative to origin.
func (o Options) TileRect(origin, p image.Point) image.Rectangle {
	min := origin.Add(image.Pt(p.X*o.TileWidth, p.Y*o.TileHeight))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(o.TileWidth, o.TileHeight))}
}

// TileAt maps a pixel position back to a grid position.
func (o Options) TileAt(origin, px image.Point) image.Point {
	d := px.Sub(origin)
	return image.Pt(floorDiv(d.X, o.TileWidth), floorDiv(d.Y, o.TileHeight))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Catalog extends the composite catalog with area types, areas and sectors.
type Catalog struct {
	*composite.Catalog

	Options Options

	AreaTypes *registry.Registry[*AreaType]
	Areas     *registry.Registry[*Area]
	Sectors   *registry.Registry[*Sector]
}

// NewCatalog creates every content registry. The "unknown" area type is
// registered up front.
func NewCatalog(opts Options) *Catalog {
	c := &Catalog{
		Catalog: composite.NewCatalog(),
		Options: opts,
	}
	c.AreaTypes = registry.New(AreaTypeKey, AreaTypeFolder, c.decodeAreaType)
	c.Areas = registry.New(AreaKey, AreaFolder, c.decodeAreaEntry)
	c.Sectors = registry.New(SectorKey, SectorFolder, c.decodeSectorEntry)

	c.AreaTypes.Register(&AreaType{Base: registry.NewBase(registry.Unknown, "Unknown")})
	return c
}

// Importers lists every registry in dependency order.
func (c *Catalog) Importers() []registry.Importer {
	return append(c.Catalog.Importers(), c.AreaTypes, c.Areas, c.Sectors)
}

// UnknownAreaType returns the sentinel area type.
func (c *Catalog) UnknownAreaType() *AreaType { return c.AreaTypes.MustGet(registry.Unknown) }
