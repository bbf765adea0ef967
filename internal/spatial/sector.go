package spatial

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/udisondev/vitreous/internal/registry"
)

// Sector is a fixed-size grid of areas. Areas referenced by identifier are
// shared with the area registry.
type Sector struct {
	registry.Base
	size  image.Point
	areas []*Area
}

// SectorData is the persisted form of a sector. Each cell is an inline area
// object, an area identifier or null.
type SectorData struct {
	registry.Base
	Areas [][]json.RawMessage `json:"areas"`
}

func (c *Catalog) NewSector(id string) *Sector {
	size := image.Pt(c.Options.SectorGridWidth, c.Options.SectorGridHeight)
	return &Sector{
		Base:  registry.NewBase(id, ""),
		size:  size,
		areas: make([]*Area, size.X*size.Y),
	}
}

// AreaLookup resolves an area identifier inside a sector.
type AreaLookup func(id string) (*Area, bool)

// DecodeSector builds a sector. Identifiers missing from the area registry
// leave their cell empty; malformed inline areas fail.
func (c *Catalog) DecodeSector(d SectorData) (*Sector, error) {
	return c.DecodeSectorWith(d, c.Areas.Get)
}

// DecodeSectorWith is DecodeSector resolving identifiers through lookup.
func (c *Catalog) DecodeSectorWith(d SectorData, lookup AreaLookup) (*Sector, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("sector: %w %q", registry.ErrMissingKey, registry.KeyIdentifier)
	}
	s := c.NewSector(d.ID)
	s.Desc = d.Desc
	if len(d.Areas) > s.size.Y {
		return nil, fmt.Errorf("sector %s: %d rows: %w", d.ID, len(d.Areas), ErrOutOfBounds)
	}
	for y, row := range d.Areas {
		if len(row) > s.size.X {
			return nil, fmt.Errorf("sector %s: row %d has %d areas: %w", d.ID, y, len(row), ErrOutOfBounds)
		}
		for x, cell := range row {
			a, err := c.decodeSectorCell(cell, lookup)
			if err != nil {
				return nil, fmt.Errorf("sector %s: area (%d,%d): %w", d.ID, x, y, err)
			}
			s.areas[y*s.size.X+x] = a
		}
	}
	return s, nil
}

func (c *Catalog) decodeSectorCell(raw json.RawMessage, lookup AreaLookup) (*Area, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	switch raw[0] {
	case '"':
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, err
		}
		a, _ := lookup(id)
		return a, nil
	case '{':
		var d AreaData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return c.DecodeArea(d)
	}
	return nil, nil
}

func (c *Catalog) decodeSectorEntry(raw json.RawMessage, _ registry.Source) (*Sector, error) {
	var d SectorData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("sector: %w", err)
	}
	return c.DecodeSector(d)
}

func (s *Sector) Size() image.Point { return s.size }

// ContainsCoordinate reports whether p lies within [0,w)x[0,h).
func (s *Sector) ContainsCoordinate(p image.Point) bool {
	return p.In(image.Rectangle{Max: s.size})
}

// At returns the area at p, or nil for holes and positions outside the grid.
func (s *Sector) At(p image.Point) *Area {
	if !s.ContainsCoordinate(p) {
		return nil
	}
	return s.areas[p.Y*s.size.X+p.X]
}

// Set places a at p; nil clears the cell.
func (s *Sector) Set(p image.Point, a *Area) bool {
	if !s.ContainsCoordinate(p) {
		return false
	}
	s.areas[p.Y*s.size.X+p.X] = a
	return true
}

// Export writes every area inline; holes are null.
func (s *Sector) Export() (SectorData, error) {
	return s.export(func(a *Area) any {
		if a == nil {
			return nil
		}
		return a.Export()
	})
}

// ExportSlim writes area identifiers, "empty" for holes.
func (s *Sector) ExportSlim() (SectorData, error) {
	return s.export(func(a *Area) any {
		if a == nil {
			return registry.Empty
		}
		return a.ID
	})
}

func (s *Sector) export(cell func(*Area) any) (SectorData, error) {
	d := SectorData{Base: s.Base, Areas: make([][]json.RawMessage, s.size.Y)}
	for y := range s.size.Y {
		row := make([]json.RawMessage, s.size.X)
		for x := range s.size.X {
			var err error
			if row[x], err = json.Marshal(cell(s.At(image.Pt(x, y)))); err != nil {
				return SectorData{}, fmt.Errorf("sector %s: area (%d,%d): %w", s.ID, x, y, err)
			}
		}
		d.Areas[y] = row
	}
	return d, nil
}
