package direction

import (
	"image"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextCardinal_Cycle(t *testing.T) {
	tests := []struct {
		from, want Direction
	}{
		{Up, Right},
		{Right, Down},
		{Down, Left},
		{Left, Up},
		{UpRight, UpRight},
		{DownAndLeft, DownAndLeft},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.NextCardinal())
		})
	}

	assert.Equal(t, Left, Up.PreviousCardinal())
	assert.Equal(t, Up, Right.PreviousCardinal())
}

func TestUnionAndIntersection(t *testing.T) {
	tests := []struct {
		a, b              Direction
		union, intersect Direction
	}{
		{Up, Right, UpAndRight, UpRight},
		{Right, Up, UpAndRight, UpRight},
		{Down, Left, DownAndLeft, DownLeft},
		{Left, Up, UpAndLeft, UpLeft},
		{Right, Down, DownAndRight, DownRight},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"+"+tt.b.String(), func(t *testing.T) {
			assert.Equal(t, tt.union, tt.a.Union(tt.b))
			assert.Equal(t, tt.intersect, tt.a.Intersection(tt.b))
		})
	}
}

func TestUnion_NonPerpendicularReturnsReceiver(t *testing.T) {
	assert.Equal(t, Up, Up.Union(Down))
	assert.Equal(t, Up, Up.Union(Up))
	assert.Equal(t, Left, Left.Intersection(Right))
	assert.Equal(t, UpLeft, UpLeft.Union(Right))
}

func TestPredicates(t *testing.T) {
	assert.True(t, Up.IsVertical())
	assert.False(t, Up.IsHorizontal())
	assert.True(t, Left.IsHorizontal())
	assert.False(t, UpLeft.IsVertical())
	assert.False(t, UpLeft.IsHorizontal())

	assert.True(t, UpAndLeft.IsUnion())
	assert.False(t, UpAndLeft.IsIntersection())
	assert.True(t, DownRight.IsIntersection())

	assert.True(t, UpAndRight.IsUp())
	assert.True(t, DownLeft.IsDown())
	assert.False(t, Left.IsUp())
	assert.False(t, Left.IsDown())
}

func TestOffsets(t *testing.T) {
	origin := image.Pt(5, 5)

	assert.Equal(t, image.Pt(5, 4), Up.Offset(origin))
	assert.Equal(t, image.Pt(6, 5), Right.Offset(origin))
	assert.Equal(t, image.Pt(4, 6), DownLeft.Offset(origin))
	assert.Equal(t, UpRight.Offset(origin), UpAndRight.Offset(origin))
}

func TestOfOffset_DiagonalsResolveToIntersections(t *testing.T) {
	d, ok := OfOffset(image.Pt(1, -1))
	require.True(t, ok)
	assert.Equal(t, UpRight, d)

	d, ok = OfOffset(image.Pt(-1, 0))
	require.True(t, ok)
	assert.Equal(t, Left, d)

	_, ok = OfOffset(image.Pt(0, 0))
	assert.False(t, ok)
	_, ok = OfOffset(image.Pt(2, 0))
	assert.False(t, ok)
}

func TestOf(t *testing.T) {
	for d := range All() {
		got, ok := Of(d.String())
		require.True(t, ok, d.String())
		assert.Equal(t, d, got)
	}

	_, ok := Of("sideways")
	assert.False(t, ok)
}

func TestStandard(t *testing.T) {
	got := slices.Collect(Standard())
	assert.Equal(t, []Direction{Up, Right, Down, Left, UpLeft, UpRight, DownRight, DownLeft}, got)
}

func TestSet(t *testing.T) {
	var s Set
	assert.True(t, s.Empty())

	s.Add(DownLeft)
	s.Add(Up)
	s.Add(UpAndRight)
	s.Add(Up)

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has(Up))
	assert.False(t, s.Has(Down))
	assert.Equal(t, []Direction{Up, UpAndRight, DownLeft}, s.Slice())

	s.Remove(Up)
	assert.False(t, s.Has(Up))
	assert.Equal(t, "{up_and_right,down_left}", s.String())

	assert.Equal(t, SetOf(Up, Down, Left), SetOf(Up).Union(SetOf(Down, Left)))
}
