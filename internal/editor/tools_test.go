package editor

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vitreous/internal/composite"
	"github.com/udisondev/vitreous/internal/registry"
	"github.com/udisondev/vitreous/internal/spatial"
	"github.com/udisondev/vitreous/internal/testutil"
)

func newTestCatalog(tb testing.TB) *spatial.Catalog {
	tb.Helper()
	c := spatial.NewCatalog(spatial.DefaultOptions())
	testutil.ImportAll(tb, testutil.WriteContent(tb), c.Importers())
	return c
}

func TestStructurePlace(t *testing.T) {
	c := newTestCatalog(t)
	a := c.NewArea("workshop")
	wall := c.Structures.MustGet("stone_wall")
	ps := []image.Point{{1, 1}, {2, 1}}

	tool := NewStructurePlace(wall)
	assert.Equal(t, StructurePlacement, tool.Name())
	require.True(t, tool.Edit(a, ps...))
	for _, p := range ps {
		assert.Equal(t, "stone_wall", a.Structure(p).Identifier())
	}
	assert.False(t, tool.End().Edit(a, ps...), "same entry is not placed twice")

	tool.Restore(a, ps...)
	for _, p := range ps {
		assert.True(t, a.Structure(p).IsEmpty())
	}
}

func TestStructurePlace_Erase(t *testing.T) {
	c := newTestCatalog(t)
	a := c.NewArea("workshop")
	p := image.Pt(3, 3)
	a.SetStructure(p, composite.NewStructure(c.Structures.MustGet("stone_wall")))
	wall := a.Structure(p)

	eraser := NewStructurePlace(c.EmptyStructure())
	require.True(t, eraser.Edit(a, p))
	assert.True(t, a.Structure(p).IsEmpty())

	eraser.Restore(a, p)
	assert.Same(t, wall, a.Structure(p), "the previous instance comes back")
}

func TestStructurePlace_OutOfBounds(t *testing.T) {
	c := newTestCatalog(t)
	a := c.NewArea("workshop")

	tool := NewStructurePlace(c.Structures.MustGet("stone_wall"))
	assert.False(t, tool.Edit(a, image.Pt(-1, 0), image.Pt(48, 0)))
}

func TestFloorPlace(t *testing.T) {
	c := newTestCatalog(t)
	a := c.NewArea("workshop")
	p := image.Pt(0, 0)

	grass := NewFloorPlace(c.Floors.MustGet("grass"))
	require.True(t, grass.Edit(a, p))
	assert.Equal(t, "grass", a.Floor(p).Identifier())

	dirt := NewFloorPlace(c.Floors.MustGet("dirt"))
	require.True(t, dirt.Edit(a, p))
	assert.Equal(t, "dirt", a.Floor(p).Identifier())

	dirt.Restore(a, p)
	assert.Equal(t, "grass", a.Floor(p).Identifier())
	grass.Restore(a, p)
	assert.True(t, a.Floor(p).IsEmpty())
}

func TestElementAdd(t *testing.T) {
	c := newTestCatalog(t)
	a := c.NewArea("workshop")
	p := image.Pt(4, 2)
	a.SetStructure(p, composite.NewStructure(c.Structures.MustGet("chest")))
	coin := c.Elements.MustGet("coin")

	first := NewElementAdd(c.Catalog, coin)
	require.True(t, first.Edit(a, p))
	second := first.End()
	require.True(t, second.Edit(a, p))
	assert.False(t, second.End().Edit(a, p), "chest holds two elements")
	assert.Equal(t, 2, a.Structure(p).Elements().Len())

	second.Restore(a, p)
	assert.Equal(t, 1, a.Structure(p).Elements().Len())
	first.Restore(a, p)
	assert.Equal(t, 0, a.Structure(p).Elements().Len())
}

func TestElementAdd_NotApplicable(t *testing.T) {
	c := newTestCatalog(t)
	a := c.NewArea("workshop")
	p := image.Pt(1, 1)

	empty := NewElementAdd(c.Catalog, c.Elements.MustGet(registry.Empty))
	assert.False(t, empty.Edit(a, p))

	// the empty structure has no container
	coin := NewElementAdd(c.Catalog, c.Elements.MustGet("coin"))
	assert.False(t, coin.Edit(a, p))
}

func TestTileInspector(t *testing.T) {
	c := newTestCatalog(t)
	a := c.NewArea("workshop")
	p := image.Pt(5, 6)
	a.SetStructure(p, composite.NewStructure(c.Structures.MustGet("door")))

	var got *spatial.Tile
	insp := &TileInspector{OnInspect: func(_ image.Point, tile *spatial.Tile) { got = tile }}

	_, ok := insp.Inspected()
	assert.False(t, ok)
	assert.Nil(t, insp.Tile(a))

	assert.False(t, insp.Edit(a, p), "inspection never edits")
	at, ok := insp.Inspected()
	require.True(t, ok)
	assert.Equal(t, p, at)
	assert.Same(t, a.At(p), got)
	assert.Same(t, insp, insp.End())

	assert.False(t, insp.Edit(a, image.Pt(-1, -1)))
	at, _ = insp.Inspected()
	assert.Equal(t, p, at)
}
