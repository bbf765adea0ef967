package determinant

import (
	"image"

	"github.com/udisondev/vitreous/internal/descriptor"
	"github.com/udisondev/vitreous/internal/direction"
	"github.com/udisondev/vitreous/internal/texture"
)

// Door partition keys, left to right in the atlas.
const (
	HorizontalClosed = "hzc"
	VerticalClosed   = "vtc"
	HorizontalOpen   = "hzo"
	VerticalOpen     = "vto"
)

// Descriptor identifiers read by the door determinant.
const (
	OpenQualifier = "open"
	AxisState     = "axis"

	AxisHorizontal = "horizontal"
	AxisVertical   = "vertical"
)

// DoorDeterminant splits its atlas into four equal columns: horizontal closed,
// vertical closed, horizontal open, vertical open.
type DoorDeterminant struct {
	partitions
}

func NewDoor(res *texture.Resource) *DoorDeterminant {
	d := &DoorDeterminant{partitions: partitions{res: res}}

	w, h := res.Width()/4, res.Height()
	for i, key := range []string{HorizontalClosed, VerticalClosed, HorizontalOpen, VerticalOpen} {
		d.setPartition(key, image.Rect(i*w, 0, (i+1)*w, h))
	}
	d.seal()
	return d
}

func (d *DoorDeterminant) Kind() string { return Door }

// DeterminePartition reads the "open" qualifier and "axis" state. A missing
// qualifier counts as closed; a missing or unrecognised axis falls back to
// horizontal closed.
func (d *DoorDeterminant) DeterminePartition(b *descriptor.Bundle) image.Rectangle {
	open := false
	if q, ok := b.Qualifier(OpenQualifier); ok {
		open = q.Value()
	}

	key := HorizontalClosed
	switch axis(b) {
	case AxisHorizontal:
		if open {
			key = HorizontalOpen
		}
	case AxisVertical:
		key = VerticalClosed
		if open {
			key = VerticalOpen
		}
	}
	r, _ := d.Partition(key)
	return r
}

// ConnectionAllowed accepts horizontal connections on a horizontal door and
// vertical ones on a vertical door.
func (d *DoorDeterminant) ConnectionAllowed(dir direction.Direction, b *descriptor.Bundle) bool {
	switch axis(b) {
	case AxisHorizontal:
		return dir.IsHorizontal()
	case AxisVertical:
		return dir.IsVertical()
	}
	return false
}

func axis(b *descriptor.Bundle) string {
	s, ok := b.State(AxisState)
	if !ok {
		return ""
	}
	return s.Value().ID
}
