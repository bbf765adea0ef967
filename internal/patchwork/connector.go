package patchwork

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/udisondev/vitreous/internal/direction"
	"github.com/udisondev/vitreous/internal/registry"
	"github.com/udisondev/vitreous/internal/texture"
)

// Connector variant tags.
const (
	Overhead     = "overhead"
	Generic      = "generic"
	AxisOverhead = "axis_overhead"
)

// Default vertical skew: the top "half" of a 24px tile is 7px.
const (
	DefaultNumerator   = 7
	DefaultDenominator = 24
)

// ErrUnknownConnector is returned by New for an unregistered variant tag.
var ErrUnknownConnector = errors.New("unknown patchwork connector")

// DrawOp copies Src from Texture into Dst. The core produces draw ops; the
// render package executes them.
type DrawOp struct {
	Texture *texture.Resource
	Src     image.Rectangle
	Dst     image.Rectangle
}

// Connector divides a texture atlas into per-direction patches once, at
// construction, and maps destination rectangles to per-direction sub-rectangles.
type Connector interface {
	Kind() string
	Resource() *texture.Resource
	// Patch returns the atlas rectangle for d, if one was assigned.
	Patch(d direction.Direction) (image.Rectangle, bool)
	// PatchWithin maps area to the sub-rectangle covered by d's overlay.
	PatchWithin(area image.Rectangle, d direction.Direction) image.Rectangle
}

// patches is the write-once atlas table shared by every connector.
type patches struct {
	res    *texture.Resource
	rects  [direction.Count]image.Rectangle
	set    direction.Set
	sealed bool
}

func (p *patches) Resource() *texture.Resource { return p.res }

func (p *patches) Patch(d direction.Direction) (image.Rectangle, bool) {
	if !d.Valid() || !p.set.Has(d) {
		return image.Rectangle{}, false
	}
	return p.rects[d], true
}

// setPatch is ignored once the connector has been sealed.
func (p *patches) setPatch(d direction.Direction, r image.Rectangle) {
	if p.sealed {
		return
	}
	p.rects[d] = r
	p.set.Add(d)
}

func (p *patches) seal() { p.sealed = true }

// ApplyHeightSkew returns the height of the top or bottom band of a skewed
// tile. Directions without a vertical component keep the full height.
func ApplyHeightSkew(height, num, den int, d direction.Direction) int {
	switch {
	case d.IsUp():
		return num * height / den
	case d.IsDown():
		return (den - num) * height / den
	}
	return height
}

// Option configures a connector built by New.
type Option func(*options)

type options struct {
	num, den int
}

// WithSkew overrides the vertical skew ratio of skewed connectors.
func WithSkew(num, den int) Option {
	return func(o *options) {
		if den > 0 && num >= 0 && num <= den {
			o.num, o.den = num, den
		}
	}
}

// New builds a connector from a variant tag or a legacy type name.
func New(kind string, res *texture.Resource, opts ...Option) (Connector, error) {
	if res == nil {
		return nil, fmt.Errorf("patchwork connector %q: nil texture", kind)
	}
	o := options{num: DefaultNumerator, den: DefaultDenominator}
	for _, opt := range opts {
		opt(&o)
	}

	switch tag := registry.VariantTag(kind, "PatchworkConnector"); tag {
	case Overhead, "":
		return NewOverhead(res, o.num, o.den), nil
	case Generic:
		return NewGeneric(res), nil
	case AxisOverhead:
		return NewAxisOverhead(res, o.num, o.den), nil
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownConnector)
	}
}

// Render returns the op overlaying d's patch onto area. ok is false when the
// connector has no patch for d.
func Render(c Connector, area image.Rectangle, d direction.Direction) (DrawOp, bool) {
	src, ok := c.Patch(d)
	if !ok {
		return DrawOp{}, false
	}
	return DrawOp{Texture: c.Resource(), Src: src, Dst: c.PatchWithin(area, d)}, true
}

// Patches appends the overlay op for every direction in set, in ordinal order.
func Patches(ops []DrawOp, c Connector, area image.Rectangle, set direction.Set) []DrawOp {
	for d := range set.All() {
		if op, ok := Render(c, area, d); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// DynamicPatch maps d through both a caller-chosen source region (typically a
// determinant partition) and the destination area.
func DynamicPatch(c Connector, area, dynamicSource image.Rectangle, d direction.Direction) DrawOp {
	return DrawOp{
		Texture: c.Resource(),
		Src:     c.PatchWithin(dynamicSource, d),
		Dst:     c.PatchWithin(area, d),
	}
}

// DebugRect is a translucent highlight of one patch.
type DebugRect struct {
	Rect  image.Rectangle
	Color color.RGBA
}

// DebugOverlay colours patches red for unions, green for intersections and
// blue for cardinals.
func DebugOverlay(c Connector, area image.Rectangle, set direction.Set) []DebugRect {
	out := make([]DebugRect, 0, set.Len())
	for d := range set.All() {
		col := color.RGBA{A: 50}
		switch {
		case d.IsUnion():
			col.R = 255
		case d.IsIntersection():
			col.G = 255
		default:
			col.B = 255
		}
		out = append(out, DebugRect{Rect: c.PatchWithin(area, d), Color: col})
	}
	return out
}
