package editor

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory(t *testing.T) {
	var log []string
	action := func(name string) Action {
		return Action{
			Name: name,
			Do:   func() { log = append(log, "do "+name) },
			Undo: func() { log = append(log, "undo "+name) },
		}
	}

	h := NewHistory()
	_, ok := h.Undo()
	assert.False(t, ok)
	_, ok = h.Redo()
	assert.False(t, ok)

	h.Push(action("a"))
	h.Push(action("b"))

	got, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "b", got.Name)
	assert.True(t, h.CanRedo())

	got, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, "b", got.Name)

	h.Undo()
	h.Push(action("c"))
	assert.False(t, h.CanRedo(), "push drops the redo stack")

	assert.Equal(t, []string{"undo b", "do b", "undo b"}, log)
}

func TestAreaFrame(t *testing.T) {
	c := newTestCatalog(t)
	f := NewAreaFrame(c.NewArea("workshop"))
	p := image.Pt(2, 2)

	assert.False(t, f.Apply(p), "no tool")

	tool := NewStructurePlace(c.Structures.MustGet("stone_wall"))
	f.SetTool(tool)
	require.True(t, f.Apply(p))
	assert.NotSame(t, tool, f.Tool(), "tool is renewed after an edit")
	assert.False(t, f.Apply(p), "unchanged edits are not recorded")

	a, ok := f.History.Undo()
	require.True(t, ok)
	assert.Equal(t, StructurePlacement, a.Name)
	assert.True(t, f.Area.Structure(p).IsEmpty())
	assert.False(t, f.History.CanUndo())

	_, ok = f.History.Redo()
	require.True(t, ok)
	assert.Equal(t, "stone_wall", f.Area.Structure(p).Identifier())
}

func TestAreaFrame_Inspector(t *testing.T) {
	c := newTestCatalog(t)
	f := NewAreaFrame(c.NewArea("workshop"))
	insp := &TileInspector{}
	f.SetTool(insp)

	assert.False(t, f.Apply(image.Pt(1, 1)))
	assert.False(t, f.History.CanUndo())
	assert.Same(t, insp, f.Tool())
}
