package main

import (
	"context"
	"image"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vitreous/internal/composite"
	"github.com/udisondev/vitreous/internal/determinant"
	"github.com/udisondev/vitreous/internal/editor"
	"github.com/udisondev/vitreous/internal/metrics"
	"github.com/udisondev/vitreous/internal/store/memstore"
)

func newTestGame(t *testing.T) *game {
	t.Helper()
	c := newTestCatalog(t)
	d, err := editor.LoadData(context.Background(), memstore.New(), c)
	require.NoError(t, err)
	g, err := newGame(context.Background(), c, d, metrics.New(prometheus.NewRegistry()), 640, 480, false)
	require.NoError(t, err)
	return g
}

// inspectAt places structure id at p, settles the area and inspects p.
func inspectAt(t *testing.T, g *game, id string, p image.Point) {
	t.Helper()
	a := g.frame().Area
	a.SetStructure(p, composite.NewStructure(g.catalog.Structures.MustGet(id)))
	a.Update()
	a.Update()

	g.selectSlot(slotInspect)
	g.frame().Apply(p)
	require.NotNil(t, g.inspected())
}

func TestGame_EditDoor(t *testing.T) {
	g := newTestGame(t)
	p := image.Pt(1, 1)
	inspectAt(t, g, "door", p)

	fs := fieldsOf(g.inspected())
	require.GreaterOrEqual(t, len(fs), 2)
	assert.Equal(t, []field{
		{editor.StructureLayer, stateField, determinant.AxisState},
		{editor.StructureLayer, qualifierField, determinant.OpenQualifier},
	}, fs[:2])

	door := g.catalog.Structures.MustGet("door")
	dd, ok := door.Determinant().(*determinant.DoorDeterminant)
	require.True(t, ok)
	partition := func(key string) image.Rectangle {
		r, ok := dd.Partition(key)
		require.True(t, ok)
		return r
	}
	current := func() image.Rectangle {
		return dd.DeterminePartition(&g.inspected().Structure.Bundle)
	}
	require.Equal(t, partition(determinant.HorizontalClosed), current())

	g.moveField(1)
	g.editField(1)
	assert.Equal(t, partition(determinant.HorizontalOpen), current())
	assert.Equal(t, "structure open = true", g.status)
	assert.True(t, g.inspected().InvalidateAdjacencies)

	g.moveField(-1)
	g.editField(1)
	assert.Equal(t, partition(determinant.VerticalOpen), current())
	assert.Equal(t, "structure axis = vertical", g.status)

	g.editField(1)
	assert.Equal(t, partition(determinant.HorizontalOpen), current(), "states wrap around")

	g.moveField(1)
	g.editField(-1)
	assert.Equal(t, partition(determinant.HorizontalClosed), current())
}

func TestGame_EditAttribute(t *testing.T) {
	g := newTestGame(t)
	inspectAt(t, g, "stone_wall", image.Pt(2, 2))

	f, ok := g.currentField()
	require.True(t, ok)
	assert.Equal(t, field{editor.StructureLayer, attributeField, "durability"}, f)

	durability := func() int {
		a, ok := g.inspected().Structure.Attribute("durability")
		require.True(t, ok)
		return a.Value()
	}
	require.Equal(t, 100, durability())

	g.editField(-1)
	assert.Equal(t, 99, durability())
	assert.True(t, g.inspected().Invalidated)
	g.editField(1)
	g.editField(1)
	assert.Equal(t, 100, durability(), "clamped to the maximum")
	assert.Equal(t, "structure durability = 100", g.status)
}

func TestGame_InspectResetsField(t *testing.T) {
	g := newTestGame(t)
	inspectAt(t, g, "door", image.Pt(1, 1))
	g.moveField(1)
	assert.NotZero(t, g.field)

	inspectAt(t, g, "stone_wall", image.Pt(3, 1))
	assert.Zero(t, g.field)
	f, _ := g.currentField()
	assert.Equal(t, "durability", f.id)
}

func TestGame_EditNothing(t *testing.T) {
	g := newTestGame(t)
	g.selectSlot(slotInspect)
	g.moveField(1)
	g.editField(1)
	assert.Equal(t, "nothing to edit", g.status)
}

func TestGame_Cycle(t *testing.T) {
	g := newTestGame(t)
	g.selectSlot(slotStructure)
	first := g.palettes[slotStructure].current()

	g.cycle(1)
	assert.NotEqual(t, first, g.palettes[slotStructure].current())
	assert.Equal(t, g.palettes[slotStructure].current(), g.frame().Tool().(*editor.StructurePlace).Entry().Identifier())
	g.cycle(-1)
	assert.Equal(t, first, g.palettes[slotStructure].current())
}
