package patchwork

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vitreous/internal/direction"
)

// grid builds a comparator over occupied cells of an ASCII map ('#' occupied).
func grid(rows ...string) Comparator {
	occupied := make(map[image.Point]bool)
	for y, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				occupied[image.Pt(x, y)] = true
			}
		}
	}
	return func(a, b image.Point) bool { return occupied[a] && occupied[b] }
}

func TestConnectionProcessor(t *testing.T) {
	center := image.Pt(1, 1)
	tests := []struct {
		name string
		rows []string
		want direction.Set
	}{
		{
			name: "isolated",
			rows: []string{"...", ".#.", "..."},
			want: 0,
		},
		{
			name: "horizontal line",
			rows: []string{"...", "###", "..."},
			want: direction.SetOf(direction.Left, direction.Right),
		},
		{
			name: "corner without diagonal",
			rows: []string{".#.", ".##", "..."},
			want: direction.SetOf(direction.Up, direction.Right, direction.UpAndRight),
		},
		{
			name: "plus",
			rows: []string{".#.", "###", ".#."},
			want: direction.SetOf(direction.UpAndLeft, direction.UpAndRight, direction.DownAndRight, direction.DownAndLeft),
		},
		{
			// Up is culled by the unions flanking it; the sides keep theirs.
			name: "tee",
			rows: []string{".#.", "###", "..."},
			want: direction.SetOf(direction.Left, direction.Right, direction.UpAndLeft, direction.UpAndRight),
		},
		{
			name: "diagonals without the cardinal between them",
			rows: []string{"#.#", "###", "..."},
			want: direction.SetOf(direction.Left, direction.Right),
		},
		{
			// One corner is an intersection and the other a union, so Up stays.
			name: "tee with one top corner",
			rows: []string{"##.", "###", "..."},
			want: direction.SetOf(direction.Up, direction.Left, direction.Right, direction.UpAndRight, direction.UpLeft),
		},
		{
			name: "tee with full top row",
			rows: []string{"###", "###", "..."},
			want: direction.SetOf(direction.Left, direction.Right, direction.UpLeft, direction.UpRight),
		},
		{
			// Interior cells resolve to the four intersections; every cardinal
			// is culled by the intersections on both of its sides.
			name: "uniform block",
			rows: []string{"###", "###", "###"},
			want: direction.SetOf(direction.UpLeft, direction.UpRight, direction.DownRight, direction.DownLeft),
		},
		{
			name: "diagonal only",
			rows: []string{"#..", ".#.", "..#"},
			want: 0,
		},
	}

	var p ConnectionProcessor
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.Process(center, grid(tt.rows...))
			assert.Equal(t, tt.want.String(), p.Connections().String())
		})
	}
}

func TestConnectionProcessor_Partitions(t *testing.T) {
	var p ConnectionProcessor
	p.Process(image.Pt(1, 1), grid(".#.", ".##", "..."))

	assert.Equal(t, direction.SetOf(direction.Up, direction.Right), p.Cardinals())
	assert.Equal(t, direction.SetOf(direction.UpAndRight), p.Unions())
	assert.True(t, p.Intersections().Empty())

	p.ClearCache()
	assert.True(t, p.Connections().Empty())
}

func TestConnectionProcessor_ComparatorArguments(t *testing.T) {
	center := image.Pt(4, 4)
	var calls []image.Point
	cmp := func(a, b image.Point) bool {
		require.Equal(t, center, b)
		calls = append(calls, a)
		return true
	}

	var p ConnectionProcessor
	p.Process(center, cmp)

	assert.Len(t, calls, 8, "positive links are compared once")
	for _, c := range calls {
		assert.NotEqual(t, center, c)
	}
}

func TestConnectionProcessor_OutOfBoundsIsNoLink(t *testing.T) {
	bounds := image.Rect(0, 0, 2, 2)
	cmp := func(a, b image.Point) bool { return a.In(bounds) && b.In(bounds) }

	var p ConnectionProcessor
	p.Process(image.Pt(0, 0), cmp)

	assert.Equal(t, direction.SetOf(direction.Right, direction.Down, direction.DownRight), p.Connections())
}

func TestExtraConnectionProcessor(t *testing.T) {
	cells := map[image.Point]string{
		{X: 1, Y: 1}: "wall",
		{X: 1, Y: 0}: "door",
		{X: 2, Y: 2}: "door",
		{X: 0, Y: 1}: "window",
	}
	cmp := func(_, q image.Point) bool { return cells[q] == "door" }
	access := func(q image.Point) string { return cells[q] + "@" + q.String() }

	var p ExtraConnectionProcessor[string]
	p.Process(image.Pt(1, 1), cmp, access)

	assert.Equal(t, direction.SetOf(direction.Up, direction.DownRight), p.Directions())
	v, ok := p.Get(direction.Up)
	require.True(t, ok)
	assert.Equal(t, "door@(1,0)", v)

	_, ok = p.Get(direction.Left)
	assert.False(t, ok)

	var dirs []direction.Direction
	for d := range p.Connections() {
		dirs = append(dirs, d)
	}
	assert.Equal(t, []direction.Direction{direction.Up, direction.DownRight}, dirs)

	p.Process(image.Pt(5, 5), cmp, access)
	assert.Equal(t, 0, p.Len())
}

func BenchmarkConnectionProcessor(b *testing.B) {
	cmp := grid("###", "###", "###")
	var p ConnectionProcessor
	for b.Loop() {
		p.Process(image.Pt(1, 1), cmp)
	}
}
