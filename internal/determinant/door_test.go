package determinant

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vitreous/internal/descriptor"
	"github.com/udisondev/vitreous/internal/direction"
	"github.com/udisondev/vitreous/internal/texture"
)

func doorBundle(t *testing.T, axisValue string, open bool) *descriptor.Bundle {
	t.Helper()
	axisEntry, err := descriptor.NewStateEntry(AxisState, AxisHorizontal, AxisVertical)
	require.NoError(t, err)

	var b descriptor.Bundle
	s := descriptor.NewState(axisEntry)
	require.NoError(t, s.SetValue(axisValue))
	b.States.Add(s)

	q := descriptor.NewQualifier(descriptor.NewQualifierEntry(OpenQualifier, false))
	q.SetValue(open)
	b.Qualifiers.Add(q)
	return &b
}

func TestDoor_DeterminePartition(t *testing.T) {
	d := NewDoor(texture.New("door", 96, 32))

	tests := []struct {
		axis string
		open bool
		want image.Rectangle
	}{
		{AxisHorizontal, false, image.Rect(0, 0, 24, 32)},
		{AxisVertical, false, image.Rect(24, 0, 48, 32)},
		{AxisHorizontal, true, image.Rect(48, 0, 72, 32)},
		{AxisVertical, true, image.Rect(72, 0, 96, 32)},
	}
	for _, tt := range tests {
		name := tt.axis
		if tt.open {
			name += "/open"
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.DeterminePartition(doorBundle(t, tt.axis, tt.open)))
		})
	}
}

func TestDoor_MissingDescriptorsFallBack(t *testing.T) {
	d := NewDoor(texture.New("door", 96, 32))

	var empty descriptor.Bundle
	assert.Equal(t, image.Rect(0, 0, 24, 32), d.DeterminePartition(&empty))
	assert.False(t, d.ConnectionAllowed(direction.Left, &empty))
}

func TestDoor_ConnectionAllowed(t *testing.T) {
	d := NewDoor(texture.New("door", 96, 32))

	horizontal := doorBundle(t, AxisHorizontal, false)
	assert.True(t, d.ConnectionAllowed(direction.Left, horizontal))
	assert.True(t, d.ConnectionAllowed(direction.Right, horizontal))
	assert.False(t, d.ConnectionAllowed(direction.Up, horizontal))
	assert.False(t, d.ConnectionAllowed(direction.UpLeft, horizontal))

	vertical := doorBundle(t, AxisVertical, true)
	assert.True(t, d.ConnectionAllowed(direction.Down, vertical))
	assert.False(t, d.ConnectionAllowed(direction.Right, vertical))
}

func TestDoor_PartitionsSealed(t *testing.T) {
	d := NewDoor(texture.New("door", 96, 32))
	d.setPartition(HorizontalClosed, image.Rect(0, 0, 1, 1))

	got, ok := d.Partition(HorizontalClosed)
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 24, 32), got)
}

func TestNew(t *testing.T) {
	res := texture.New("door", 96, 32)
	for _, kind := range []string{"door", "DoorResourceDeterminant", "Vitreous.Procedural.DoorResourceDeterminant"} {
		d, err := New(kind, res)
		require.NoError(t, err, kind)
		assert.Equal(t, Door, d.Kind())
	}

	_, err := New("window", res)
	require.ErrorIs(t, err, ErrUnknownDeterminant)
}
