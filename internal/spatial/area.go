package spatial

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"iter"

	"github.com/udisondev/vitreous/internal/composite"
	"github.com/udisondev/vitreous/internal/direction"
	"github.com/udisondev/vitreous/internal/registry"
)

// ErrOutOfBounds is returned for grid data past the configured dimensions.
var ErrOutOfBounds = errors.New("position out of bounds")

// Area is a fixed-size grid of tiles. Tiles are created on first access.
type Area struct {
	registry.Base
	Type *AreaType

	catalog *Catalog
	size    image.Point
	tiles   []*Tile

	// stand-ins for positions outside the grid
	outsideStructure *composite.Structure
	outsideFloor     *composite.Floor
}

// AreaData is the persisted form of an area. Tiles are rows indexed by y.
type AreaData struct {
	registry.Base
	AreaType string        `json:"area_type"`
	Tiles    [][]*TileData `json:"tiles"`
}

// NewArea returns an area of unknown type with no tiles materialised.
func (c *Catalog) NewArea(id string) *Area {
	size := image.Pt(c.Options.GridWidth, c.Options.GridHeight)
	return &Area{
		Base:             registry.NewBase(id, ""),
		Type:             c.UnknownAreaType(),
		catalog:          c,
		size:             size,
		tiles:            make([]*Tile, size.X*size.Y),
		outsideStructure: composite.NewStructure(c.EmptyStructure()),
		outsideFloor:     composite.NewFloor(c.EmptyFloor()),
	}
}

// DecodeArea builds an area from persisted data.
func (c *Catalog) DecodeArea(d AreaData) (*Area, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("area: %w %q", registry.ErrMissingKey, registry.KeyIdentifier)
	}
	a := c.NewArea(d.ID)
	a.Desc = d.Desc
	if d.AreaType != "" {
		t, err := c.AreaTypes.Lookup(d.AreaType)
		if err != nil {
			return nil, fmt.Errorf("area %s: area type: %w", d.ID, err)
		}
		a.Type = t
	}
	if len(d.Tiles) > a.size.Y {
		return nil, fmt.Errorf("area %s: %d rows: %w", d.ID, len(d.Tiles), ErrOutOfBounds)
	}
	for y, row := range d.Tiles {
		if len(row) > a.size.X {
			return nil, fmt.Errorf("area %s: row %d has %d tiles: %w", d.ID, y, len(row), ErrOutOfBounds)
		}
		for x, td := range row {
			if td == nil {
				continue
			}
			t, err := c.DecodeTile(*td)
			if err != nil {
				return nil, fmt.Errorf("area %s: tile (%d,%d): %w", d.ID, x, y, err)
			}
			a.tiles[a.index(image.Pt(x, y))] = t
		}
	}
	return a, nil
}

func (c *Catalog) decodeAreaEntry(raw json.RawMessage, _ registry.Source) (*Area, error) {
	var d AreaData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("area: %w", err)
	}
	return c.DecodeArea(d)
}

func (a *Area) Size() image.Point       { return a.size }
func (a *Area) Bounds() image.Rectangle { return image.Rectangle{Max: a.size} }

// ContainsPosition reports whether p lies within [0,w)x[0,h).
func (a *Area) ContainsPosition(p image.Point) bool {
	return p.In(a.Bounds())
}

func (a *Area) index(p image.Point) int { return p.Y*a.size.X + p.X }

// At returns the tile at p, creating an empty one if needed. It returns nil
// only for positions outside the grid.
func (a *Area) At(p image.Point) *Tile {
	if !a.ContainsPosition(p) {
		return nil
	}
	i := a.index(p)
	if a.tiles[i] == nil {
		a.tiles[i] = a.catalog.NewTile()
	}
	return a.tiles[i]
}

// Set replaces the tile at p and marks it invalidated. Nil tiles and
// positions outside the grid are ignored.
func (a *Area) Set(p image.Point, t *Tile) bool {
	if t == nil || !a.ContainsPosition(p) {
		return false
	}
	a.tiles[a.index(p)] = t
	t.Invalidated = true
	return true
}

// Structure returns the structure at p, or an empty one outside the grid.
func (a *Area) Structure(p image.Point) *composite.Structure {
	if t := a.At(p); t != nil {
		return t.Structure
	}
	return a.outsideStructure
}

// Floor returns the floor at p, or an empty one outside the grid.
func (a *Area) Floor(p image.Point) *composite.Floor {
	if t := a.At(p); t != nil {
		return t.Floor
	}
	return a.outsideFloor
}

// SetStructure replaces the structure at p and invalidates its neighbourhood.
func (a *Area) SetStructure(p image.Point, s *composite.Structure) bool {
	t := a.At(p)
	if t == nil || s == nil {
		return false
	}
	t.Structure = s
	a.InvalidateNeighbors(p)
	return true
}

// SetFloor replaces the floor at p and invalidates its neighbourhood.
func (a *Area) SetFloor(p image.Point, f *composite.Floor) bool {
	t := a.At(p)
	if t == nil || f == nil {
		return false
	}
	t.Floor = f
	a.InvalidateNeighbors(p)
	return true
}

// InvalidateNeighbors marks the 3x3 block around p invalidated and clears the
// adjacency request of the tile at p.
func (a *Area) InvalidateNeighbors(p image.Point) {
	if t := a.At(p); t != nil {
		t.InvalidateAdjacencies = false
	}
	for y := p.Y - 1; y <= p.Y+1; y++ {
		for x := p.X - 1; x <= p.X+1; x++ {
			if t := a.At(image.Pt(x, y)); t != nil {
				t.Invalidated = true
			}
		}
	}
}

// AddElement puts el into the container of the structure at p and reports
// whether the container changed.
func (a *Area) AddElement(p image.Point, el *composite.Element) bool {
	t := a.At(p)
	if t == nil {
		return false
	}
	c := t.Structure.Elements()
	n := c.Len()
	c.Add(el)
	return c.Len() != n
}

// RemoveElement takes el out of the container of the structure at p and
// reports whether the container changed.
func (a *Area) RemoveElement(p image.Point, el *composite.Element) bool {
	t := a.At(p)
	if t == nil {
		return false
	}
	c := t.Structure.Elements()
	n := c.Len()
	c.Remove(el)
	return c.Len() != n
}

// Update runs the per-frame pass in row-major order: invalidated tiles
// recompute their connections, then tiles requesting it invalidate their
// neighbourhood. It returns the number of recomputed tiles.
func (a *Area) Update() int {
	n := 0
	for y := range a.size.Y {
		for x := range a.size.X {
			p := image.Pt(x, y)
			t := a.At(p)
			if t.Invalidated {
				t.UpdateConnections(a, p)
				t.Invalidated = false
				n++
			}
			if t.InvalidateAdjacencies {
				a.InvalidateNeighbors(p)
				t.InvalidateAdjacencies = false
			}
		}
	}
	return n
}

// Tiles iterates materialised tiles in row-major order.
func (a *Area) Tiles() iter.Seq2[image.Point, *Tile] {
	return func(yield func(image.Point, *Tile) bool) {
		for i, t := range a.tiles {
			if t == nil {
				continue
			}
			if !yield(image.Pt(i%a.size.X, i/a.size.X), t) {
				return
			}
		}
	}
}

// CompareStructures links positions holding the same structure entry.
func (a *Area) CompareStructures(p, q image.Point) bool {
	return a.Structure(p).Entry() == a.Structure(q).Entry()
}

// CompareFloors links positions holding the same floor entry.
func (a *Area) CompareFloors(p, q image.Point) bool {
	return a.Floor(p).Entry() == a.Floor(q).Entry()
}

// CompareStructureExtensions links the structure at p to the one at q when p
// declares an extra connection to q's entry and q accepts a connection from
// that side.
func (a *Area) CompareStructureExtensions(p, q image.Point) bool {
	s, ext := a.Structure(p), a.Structure(q)
	if s.IsEmpty() || ext.IsEmpty() {
		return false
	}
	d, ok := direction.OfOffset(q.Sub(p))
	if !ok {
		return false
	}
	return s.Entry().HasExtraConnection(ext.Identifier()) && ext.ConnectionAllowed(d)
}

func (a *Area) Export() AreaData     { return a.export((*Tile).Export) }
func (a *Area) ExportSlim() AreaData { return a.export((*Tile).ExportSlim) }

func (a *Area) export(tile func(*Tile) TileData) AreaData {
	d := AreaData{Base: a.Base, AreaType: a.Type.ID, Tiles: make([][]*TileData, a.size.Y)}
	for y := range a.size.Y {
		row := make([]*TileData, a.size.X)
		for x := range a.size.X {
			td := tile(a.At(image.Pt(x, y)))
			row[x] = &td
		}
		d.Tiles[y] = row
	}
	return d
}
