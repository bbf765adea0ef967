// Package editor implements the area editing tools, their undo history and
// the persisted editor workspace.
package editor

import (
	"image"
	"log/slog"

	"github.com/udisondev/vitreous/internal/composite"
	"github.com/udisondev/vitreous/internal/registry"
	"github.com/udisondev/vitreous/internal/spatial"
)

// Tool names.
const (
	StructurePlacement = "structure_placement"
	FloorPlacement     = "floor_placement"
	ElementAddition    = "element_addition"
	TileInspection     = "tile_inspection"
)

// Tool edits positions of an area.
type Tool interface {
	Name() string
	// Edit changes the area at ps and reports whether anything changed.
	Edit(a *spatial.Area, ps ...image.Point) bool
	// Restore reverts the changes made by the last Edit.
	Restore(a *spatial.Area, ps ...image.Point)
	// End finishes this invocation and returns the tool for the next one.
	End() Tool
}

// StructurePlace replaces the structure at each position with a fresh
// instance of its entry. Placing the empty entry erases.
type StructurePlace struct {
	entry    *composite.StructureEntry
	previous map[image.Point]*composite.Structure
}

func NewStructurePlace(e *composite.StructureEntry) *StructurePlace {
	return &StructurePlace{entry: e, previous: make(map[image.Point]*composite.Structure)}
}

func (t *StructurePlace) Name() string                     { return StructurePlacement }
func (t *StructurePlace) Entry() *composite.StructureEntry { return t.entry }

func (t *StructurePlace) Edit(a *spatial.Area, ps ...image.Point) bool {
	edited := false
	for _, p := range ps {
		if !a.ContainsPosition(p) {
			continue
		}
		prev := a.Structure(p)
		if prev.Entry() == t.entry {
			continue
		}
		t.previous[p] = prev
		a.SetStructure(p, composite.NewStructure(t.entry))
		edited = true
	}
	return edited
}

func (t *StructurePlace) Restore(a *spatial.Area, _ ...image.Point) {
	for p, prev := range t.previous {
		a.SetStructure(p, prev)
	}
}

func (t *StructurePlace) End() Tool { return NewStructurePlace(t.entry) }

// FloorPlace is StructurePlace for floors.
type FloorPlace struct {
	entry    *composite.FloorEntry
	previous map[image.Point]*composite.Floor
}

func NewFloorPlace(e *composite.FloorEntry) *FloorPlace {
	return &FloorPlace{entry: e, previous: make(map[image.Point]*composite.Floor)}
}

func (t *FloorPlace) Name() string                 { return FloorPlacement }
func (t *FloorPlace) Entry() *composite.FloorEntry { return t.entry }

func (t *FloorPlace) Edit(a *spatial.Area, ps ...image.Point) bool {
	edited := false
	for _, p := range ps {
		if !a.ContainsPosition(p) {
			continue
		}
		prev := a.Floor(p)
		if prev.Entry() == t.entry {
			continue
		}
		t.previous[p] = prev
		a.SetFloor(p, composite.NewFloor(t.entry))
		edited = true
	}
	return edited
}

func (t *FloorPlace) Restore(a *spatial.Area, _ ...image.Point) {
	for p, prev := range t.previous {
		a.SetFloor(p, prev)
	}
}

func (t *FloorPlace) End() Tool { return NewFloorPlace(t.entry) }

// ElementAdd puts a new element into the container of the structure at each
// position.
type ElementAdd struct {
	catalog *composite.Catalog
	entry   *composite.ElementEntry
	added   map[image.Point]*composite.Element
}

func NewElementAdd(c *composite.Catalog, e *composite.ElementEntry) *ElementAdd {
	return &ElementAdd{catalog: c, entry: e, added: make(map[image.Point]*composite.Element)}
}

func (t *ElementAdd) Name() string                   { return ElementAddition }
func (t *ElementAdd) Entry() *composite.ElementEntry { return t.entry }

func (t *ElementAdd) Edit(a *spatial.Area, ps ...image.Point) bool {
	if t.entry.ID == registry.Empty {
		return false
	}
	edited := false
	for _, p := range ps {
		el, err := t.catalog.NewElement(t.entry)
		if err != nil {
			slog.Warn("element not instantiated", "element", t.entry.ID, "err", err)
			return edited
		}
		if a.AddElement(p, el) {
			t.added[p] = el
			slog.Debug("added element", "element", el.Identifier(), "x", p.X, "y", p.Y)
			edited = true
		}
	}
	return edited
}

func (t *ElementAdd) Restore(a *spatial.Area, ps ...image.Point) {
	for _, p := range ps {
		el, ok := t.added[p]
		if ok && a.RemoveElement(p, el) {
			slog.Debug("removed element", "element", el.Identifier(), "x", p.X, "y", p.Y)
		}
	}
}

func (t *ElementAdd) End() Tool { return NewElementAdd(t.catalog, t.entry) }

// TileInspector selects a tile without changing it.
type TileInspector struct {
	inspected image.Point
	ok        bool

	// OnInspect, when set, receives every inspected tile.
	OnInspect func(p image.Point, t *spatial.Tile)
}

func (t *TileInspector) Name() string { return TileInspection }

func (t *TileInspector) Edit(a *spatial.Area, ps ...image.Point) bool {
	if len(ps) == 0 || !a.ContainsPosition(ps[0]) {
		return false
	}
	t.inspected, t.ok = ps[0], true
	if t.OnInspect != nil {
		t.OnInspect(ps[0], a.At(ps[0]))
	}
	return false
}

func (t *TileInspector) Restore(*spatial.Area, ...image.Point) {}

func (t *TileInspector) End() Tool { return t }

// Inspected returns the last inspected position.
func (t *TileInspector) Inspected() (image.Point, bool) { return t.inspected, t.ok }

// Tile returns the inspected tile of a, or nil.
func (t *TileInspector) Tile(a *spatial.Area) *spatial.Tile {
	if !t.ok {
		return nil
	}
	return a.At(t.inspected)
}
