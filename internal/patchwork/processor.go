// Package patchwork computes tile adjacency and maps connection directions to
// overlay sub-rectangles of a texture atlas.
package patchwork

import (
	"image"
	"iter"

	"github.com/udisondev/vitreous/internal/direction"
)

// Comparator reports whether the occupant at a links to the occupant at b.
// Positions outside the grid are the comparator's concern.
type Comparator func(a, b image.Point) bool

// ConnectionProcessor scans the eight neighbours of a position and reduces the
// result to cardinals, unions and intersections. The zero value is ready to use
// and is reused across frames; it is not safe for concurrent use.
type ConnectionProcessor struct {
	cardinals     direction.Set
	unions        direction.Set
	intersections direction.Set
}

// Process clears the cache, scans around v and resolves overlaps.
func (p *ConnectionProcessor) Process(v image.Point, cmp Comparator) {
	p.ClearCache()
	p.ScanConnections(v, cmp)
	p.ResolveOverlaps()
}

func (p *ConnectionProcessor) ClearCache() {
	p.cardinals.Clear()
	p.unions.Clear()
	p.intersections.Clear()
}

// ScanConnections walks the cardinal cycle. For each cardinal A with clockwise
// neighbour C and diagonal B between them: all three linked records B as an
// intersection, A and C linked without B records the union of A and C.
// Positive links are cached so each neighbour is compared at most once.
func (p *ConnectionProcessor) ScanConnections(v image.Point, cmp Comparator) {
	var linked direction.Set
	link := func(d direction.Direction) bool {
		if linked.Has(d) {
			return true
		}
		if cmp(d.Offset(v), v) {
			linked.Add(d)
			return true
		}
		return false
	}

	for a := range direction.Cardinals() {
		c := a.NextCardinal()
		b := a.Intersection(c)

		linkA, linkB, linkC := link(a), link(b), link(c)

		if linkA {
			p.cardinals.Add(a)
		}
		if linkC {
			p.cardinals.Add(c)
		}

		switch {
		case linkA && linkB && linkC:
			p.intersections.Add(b)
		case linkA && linkC:
			p.unions.Add(a.Union(c))
		}
	}
}

// ResolveOverlaps drops a cardinal when both corners on its side are covered by
// unions, or both by intersections.
func (p *ConnectionProcessor) ResolveOverlaps() {
	var culled direction.Set
	for card := range p.cardinals.All() {
		var side1, side2 direction.Direction
		if card.IsVertical() {
			side1, side2 = direction.Left, direction.Right
		} else {
			side1, side2 = direction.Up, direction.Down
		}
		if p.unions.Has(card.Union(side1)) && p.unions.Has(card.Union(side2)) {
			culled.Add(card)
		} else if p.intersections.Has(card.Intersection(side1)) && p.intersections.Has(card.Intersection(side2)) {
			culled.Add(card)
		}
	}
	p.cardinals &^= culled
}

// Connections returns cardinals, unions and intersections together.
func (p *ConnectionProcessor) Connections() direction.Set {
	return p.cardinals | p.unions | p.intersections
}

func (p *ConnectionProcessor) Cardinals() direction.Set     { return p.cardinals }
func (p *ConnectionProcessor) Unions() direction.Set        { return p.unions }
func (p *ConnectionProcessor) Intersections() direction.Set { return p.intersections }

// ExtraConnectionProcessor records, for each of the eight standard directions
// whose neighbour matches, a value read from that neighbour. It performs no
// overlap resolution.
type ExtraConnectionProcessor[V any] struct {
	found direction.Set
	data  [direction.Count]V
}

func (p *ExtraConnectionProcessor[V]) Process(v image.Point, cmp Comparator, accessor func(image.Point) V) {
	p.ClearCache()
	p.ScanConnections(v, cmp, accessor)
}

func (p *ExtraConnectionProcessor[V]) ClearCache() {
	var zero V
	for d := range p.found.All() {
		p.data[d] = zero
	}
	p.found.Clear()
}

// ScanConnections compares v against each neighbour (self first) and stores the
// accessor result for matches.
func (p *ExtraConnectionProcessor[V]) ScanConnections(v image.Point, cmp Comparator, accessor func(image.Point) V) {
	for d := range direction.Standard() {
		q := d.Offset(v)
		if cmp(v, q) {
			p.found.Add(d)
			p.data[d] = accessor(q)
		}
	}
}

// Get returns the value recorded for d.
func (p *ExtraConnectionProcessor[V]) Get(d direction.Direction) (V, bool) {
	if !d.Valid() || !p.found.Has(d) {
		var zero V
		return zero, false
	}
	return p.data[d], true
}

func (p *ExtraConnectionProcessor[V]) Directions() direction.Set { return p.found }
func (p *ExtraConnectionProcessor[V]) Len() int                  { return p.found.Len() }

// Connections iterates recorded directions in ordinal order with their values.
func (p *ExtraConnectionProcessor[V]) Connections() iter.Seq2[direction.Direction, V] {
	return func(yield func(direction.Direction, V) bool) {
		for d := range p.found.All() {
			if !yield(d, p.data[d]) {
				return
			}
		}
	}
}
