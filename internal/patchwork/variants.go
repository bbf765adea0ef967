package patchwork

import (
	"image"

	"github.com/udisondev/vitreous/internal/direction"
	"github.com/udisondev/vitreous/internal/texture"
)

// OverheadConnector expects four horizontally adjacent square sections:
// unions, up/down, left/right, intersections. Corner patches are quarter
// tiles; vertical bands follow the skew ratio.
type OverheadConnector struct {
	patches
	num, den int
}

func NewOverhead(res *texture.Resource, num, den int) *OverheadConnector {
	c := &OverheadConnector{patches: patches{res: res}, num: num, den: den}

	sec := res.Width() / 4
	section := func(i int) image.Rectangle { return image.Rect(i*sec, 0, (i+1)*sec, sec) }

	for d := range direction.Unions() {
		c.setPatch(d, c.PatchWithin(section(0), d))
	}
	for d := range direction.Cardinals() {
		if d.IsVertical() {
			c.setPatch(d, c.PatchWithin(section(1), d))
		} else {
			c.setPatch(d, c.PatchWithin(section(2), d))
		}
	}
	for d := range direction.Intersections() {
		c.setPatch(d, c.PatchWithin(section(3), d))
	}
	c.seal()
	return c
}

func (c *OverheadConnector) Kind() string { return Overhead }

// Skew returns the configured numerator and denominator.
func (c *OverheadConnector) Skew() (num, den int) { return c.num, c.den }

func (c *OverheadConnector) PatchWithin(area image.Rectangle, d direction.Direction) image.Rectangle {
	w, h := area.Dx(), area.Dy()

	width := w
	if d.IsUnion() || d.IsIntersection() || d.IsHorizontal() {
		width = w / 2
	}
	height := h
	if d.IsUnion() || d.IsIntersection() || d.IsVertical() {
		height = ApplyHeightSkew(h, c.num, c.den, d)
	}

	sx := area.Min.X + max(d.OX(), 0)*(w/2)
	sy := area.Min.Y + max(d.OY(), 0)*(c.num*h/c.den)
	return image.Rect(sx, sy, sx+width, sy+height)
}

// GenericConnector gives every direction its own square cell, laid out in
// ordinal order. Patches cover the whole destination.
type GenericConnector struct {
	patches
}

func NewGeneric(res *texture.Resource) *GenericConnector {
	c := &GenericConnector{patches: patches{res: res}}

	w := res.Width() / direction.Count
	cell := image.Rect(0, 0, w, w)
	for d := range direction.All() {
		c.setPatch(d, cell)
		cell = cell.Add(image.Pt(w, 0))
	}
	c.seal()
	return c
}

func (c *GenericConnector) Kind() string { return Generic }

func (c *GenericConnector) PatchWithin(area image.Rectangle, _ direction.Direction) image.Rectangle {
	return area
}

// AxisOverheadConnector handles cardinals only. The atlas holds a left/right
// half followed by an up/down half.
type AxisOverheadConnector struct {
	patches
	num, den int
}

func NewAxisOverhead(res *texture.Resource, num, den int) *AxisOverheadConnector {
	c := &AxisOverheadConnector{patches: patches{res: res}, num: num, den: den}

	w, h := res.Width()/2, res.Height()
	leftRight := image.Rect(0, 0, w, h)
	upDown := image.Rect(w, 0, 2*w, h)

	for d := range direction.Cardinals() {
		area := leftRight
		if d.IsVertical() {
			area = upDown
		}
		c.setPatch(d, c.PatchWithin(area, d))
	}
	c.seal()
	return c
}

func (c *AxisOverheadConnector) Kind() string { return AxisOverhead }

// PatchWithin returns the empty rectangle for non-cardinal directions.
func (c *AxisOverheadConnector) PatchWithin(area image.Rectangle, d direction.Direction) image.Rectangle {
	if !d.IsCardinal() {
		return image.Rectangle{}
	}
	x, y := area.Min.X, area.Min.Y
	w, h := area.Dx(), area.Dy()

	switch {
	case d.IsHorizontal():
		w /= 2
		if d == direction.Right {
			x += w
		}
	case d.IsVertical():
		h = ApplyHeightSkew(h, c.num, c.den, d)
		if d == direction.Down {
			y += area.Dy() - h
		}
	}
	return image.Rect(x, y, x+w, y+h)
}
