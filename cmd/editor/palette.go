package main

import (
	"slices"

	"github.com/udisondev/vitreous/internal/composite"
	"github.com/udisondev/vitreous/internal/editor"
	"github.com/udisondev/vitreous/internal/registry"
	"github.com/udisondev/vitreous/internal/spatial"
)

// Tool slots, bound to the number keys.
const (
	slotStructure = iota
	slotFloor
	slotElement
	slotInspect
	slotCount
)

// palette cycles through the identifiers of one registry.
type palette struct {
	ids []string
	i   int
}

func newPalette(ids []string, skip ...string) palette {
	ids = slices.DeleteFunc(slices.Clone(ids), func(id string) bool {
		return slices.Contains(skip, id)
	})
	return palette{ids: ids}
}

func (p *palette) current() string {
	if len(p.ids) == 0 {
		return ""
	}
	return p.ids[p.i]
}

func (p *palette) next() { p.step(1) }
func (p *palette) prev() { p.step(-1) }

func (p *palette) step(d int) {
	if len(p.ids) == 0 {
		return
	}
	p.i = (p.i + d + len(p.ids)) % len(p.ids)
}

// palettes holds one palette per placing slot. The inspector slot has none.
type palettes [slotInspect]palette

func newPalettes(c *spatial.Catalog) palettes {
	return palettes{
		slotStructure: newPalette(c.Structures.Identifiers(), registry.Empty),
		slotFloor:     newPalette(c.Floors.Identifiers()),
		slotElement:   newPalette(c.Elements.Identifiers(), registry.Empty),
	}
}

// toolFor builds the tool of slot with the palette's current entry. It
// returns nil when the slot has nothing to place.
func toolFor(c *spatial.Catalog, slot int, ps *palettes, insp *editor.TileInspector) editor.Tool {
	if slot == slotInspect {
		return insp
	}
	if slot < 0 || slot >= len(ps) {
		return nil
	}
	id := ps[slot].current()
	if id == "" {
		return nil
	}
	switch slot {
	case slotStructure:
		if e, ok := c.Structures.Get(id); ok {
			return editor.NewStructurePlace(e)
		}
	case slotFloor:
		if e, ok := c.Floors.Get(id); ok {
			return editor.NewFloorPlace(e)
		}
	case slotElement:
		if e, ok := c.Elements.Get(id); ok {
			return editor.NewElementAdd(c.Catalog, e)
		}
	}
	return nil
}

// eraser places the empty structure.
func eraser(c *composite.Catalog) editor.Tool {
	return editor.NewStructurePlace(c.EmptyStructure())
}
