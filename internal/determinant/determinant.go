// Package determinant maps the live descriptor state of an instance to a
// partition of a texture atlas.
package determinant

import (
	"errors"
	"fmt"
	"image"

	"github.com/udisondev/vitreous/internal/descriptor"
	"github.com/udisondev/vitreous/internal/direction"
	"github.com/udisondev/vitreous/internal/registry"
	"github.com/udisondev/vitreous/internal/texture"
)

// Determinant variant tags.
const (
	Door = "door"
)

// ErrUnknownDeterminant is returned by New for an unregistered variant tag.
var ErrUnknownDeterminant = errors.New("unknown resource determinant")

// Determinant picks a texture partition from descriptor values.
type Determinant interface {
	Kind() string
	Resource() *texture.Resource
	// Partition returns a named partition assigned at construction.
	Partition(key string) (image.Rectangle, bool)
	DeterminePartition(b *descriptor.Bundle) image.Rectangle
}

// Structure is a determinant that also gates incoming connections.
type Structure interface {
	Determinant
	// ConnectionAllowed reports whether a connection arriving from d is
	// accepted in the current state.
	ConnectionAllowed(d direction.Direction, b *descriptor.Bundle) bool
}

// partitions is the write-once named partition table.
type partitions struct {
	res    *texture.Resource
	rects  map[string]image.Rectangle
	sealed bool
}

func (p *partitions) Resource() *texture.Resource { return p.res }

func (p *partitions) Partition(key string) (image.Rectangle, bool) {
	r, ok := p.rects[key]
	return r, ok
}

func (p *partitions) setPartition(key string, r image.Rectangle) {
	if p.sealed {
		return
	}
	if p.rects == nil {
		p.rects = make(map[string]image.Rectangle)
	}
	p.rects[key] = r
}

func (p *partitions) seal() { p.sealed = true }

// New builds a structure determinant from a variant tag or legacy type name.
func New(kind string, res *texture.Resource) (Structure, error) {
	if res == nil {
		return nil, fmt.Errorf("resource determinant %q: nil texture", kind)
	}
	switch registry.VariantTag(kind, "ResourceDeterminant") {
	case Door:
		return NewDoor(res), nil
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownDeterminant)
	}
}
