package spatial

import (
	"fmt"
	"image"
	"iter"

	"github.com/udisondev/vitreous/internal/composite"
	"github.com/udisondev/vitreous/internal/direction"
	"github.com/udisondev/vitreous/internal/patchwork"
)

// Tile is one grid cell: a floor, a structure and their cached connections.
// Floor and Structure are never nil; the "empty" sentinel stands in for
// absence.
type Tile struct {
	Floor     *composite.Floor
	Structure *composite.Structure

	// Invalidated requests a connection recompute on the next update.
	Invalidated bool
	// InvalidateAdjacencies requests invalidation of the 3x3 neighbourhood.
	InvalidateAdjacencies bool

	structures patchwork.ConnectionProcessor
	floors     patchwork.ConnectionProcessor
	extras     patchwork.ExtraConnectionProcessor[*composite.Structure]
}

// TileData is the persisted form of a tile. A missing half decodes as empty.
type TileData struct {
	Structure *composite.StructureData `json:"structure,omitempty"`
	Floor     *composite.InstanceData  `json:"floor,omitempty"`
}

// NewTile returns an empty tile awaiting its first connection update.
func (c *Catalog) NewTile() *Tile {
	return &Tile{
		Floor:       composite.NewFloor(c.EmptyFloor()),
		Structure:   composite.NewStructure(c.EmptyStructure()),
		Invalidated: true,
	}
}

// DecodeTile builds a tile from persisted data. Unresolved references fail.
func (c *Catalog) DecodeTile(d TileData) (*Tile, error) {
	t := c.NewTile()
	if d.Floor != nil {
		f, err := c.DecodeFloor(*d.Floor)
		if err != nil {
			return nil, fmt.Errorf("tile: %w", err)
		}
		t.Floor = f
	}
	if d.Structure != nil {
		s, err := c.DecodeStructure(*d.Structure)
		if err != nil {
			return nil, fmt.Errorf("tile: %w", err)
		}
		t.Structure = s
	}
	return t, nil
}

// UpdateConnections recomputes the connection caches of the tile at p.
func (t *Tile) UpdateConnections(a *Area, p image.Point) {
	t.structures.Process(p, a.CompareStructures)

	if t.Structure.Entry().HasAnyExtraConnections() {
		t.extras.Process(p, a.CompareStructureExtensions, a.Structure)
	} else {
		t.extras.ClearCache()
	}

	if !t.Floor.IsEmpty() {
		t.floors.Process(p, a.CompareFloors)
	} else {
		t.floors.ClearCache()
	}
}

func (t *Tile) StructureConnections() direction.Set { return t.structures.Connections() }
func (t *Tile) FloorConnections() direction.Set     { return t.floors.Connections() }

// ExtraConnections yields the adjacent structures this tile's structure
// links to through extra connections.
func (t *Tile) ExtraConnections() iter.Seq2[direction.Direction, *composite.Structure] {
	return t.extras.Connections()
}

// Layers returns the draw ops for the tile within dst, floor first.
func (t *Tile) Layers(dst image.Rectangle) []patchwork.DrawOp {
	ops := t.Floor.Entry().Layers(dst, t.FloorConnections())
	return append(ops, t.Structure.Entry().Layers(dst, t.Structure, t.StructureConnections(), t.ExtraConnections())...)
}

// DebugOverlay classifies the structure connections for display.
func (t *Tile) DebugOverlay(dst image.Rectangle) []patchwork.DebugRect {
	c := t.Structure.Entry().Connector()
	if c == nil {
		return nil
	}
	return patchwork.DebugOverlay(c, dst, t.StructureConnections())
}

func (t *Tile) Export() TileData {
	s, f := t.Structure.Export(), t.Floor.Export()
	return TileData{Structure: &s, Floor: &f}
}

// ExportSlim writes references plus descriptor values differing from the
// entry defaults.
func (t *Tile) ExportSlim() TileData {
	s, f := t.Structure.ExportSlim(), t.Floor.ExportSlim()
	return TileData{Structure: &s, Floor: &f}
}
