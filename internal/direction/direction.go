// Package direction describes the twelve adjacency directions used by tile
// connection processing: four cardinals, four unions and four intersections.
//
// A union (e.g. UpAndRight) names two perpendicular cardinals meeting without
// the diagonal between them; an intersection (e.g. UpRight) names the diagonal
// itself. Both share the same grid offset.
package direction

import (
	"image"
	"iter"
	"strings"
)

// Direction is one of the twelve adjacency directions. The zero value is Up.
type Direction uint8

// Ordinals are fixed: cardinals in clockwise order, then unions, then intersections.
const (
	Up Direction = iota
	Right
	Down
	Left

	UpAndLeft
	UpAndRight
	DownAndRight
	DownAndLeft

	UpLeft
	UpRight
	DownRight
	DownLeft

	// Count is the number of directions.
	Count = 12
)

type info struct {
	name   string
	ox, oy int
}

var table = [Count]info{
	Up:    {"up", 0, -1},
	Right: {"right", 1, 0},
	Down:  {"down", 0, 1},
	Left:  {"left", -1, 0},

	UpAndLeft:    {"up_and_left", -1, -1},
	UpAndRight:   {"up_and_right", 1, -1},
	DownAndRight: {"down_and_right", 1, 1},
	DownAndLeft:  {"down_and_left", -1, 1},

	UpLeft:    {"up_left", -1, -1},
	UpRight:   {"up_right", 1, -1},
	DownRight: {"down_right", 1, 1},
	DownLeft:  {"down_left", -1, 1},
}

var byName = func() map[string]Direction {
	m := make(map[string]Direction, Count)
	for d := range Direction(Count) {
		m[table[d].name] = d
	}
	return m
}()

// Valid reports whether d is one of the twelve directions.
func (d Direction) Valid() bool { return d < Count }

func (d Direction) String() string {
	if !d.Valid() {
		return "invalid"
	}
	return table[d].name
}

// OX returns the horizontal grid offset (-1, 0 or 1).
func (d Direction) OX() int { return table[d].ox }

// OY returns the vertical grid offset; up is negative.
func (d Direction) OY() int { return table[d].oy }

// Offset returns p moved one cell in direction d.
func (d Direction) Offset(p image.Point) image.Point {
	return image.Pt(p.X+table[d].ox, p.Y+table[d].oy)
}

func (d Direction) IsCardinal() bool     { return d <= Left }
func (d Direction) IsUnion() bool        { return d >= UpAndLeft && d <= DownAndLeft }
func (d Direction) IsIntersection() bool { return d >= UpLeft && d <= DownLeft }

// IsHorizontal is true only for Left and Right.
func (d Direction) IsHorizontal() bool { return table[d].ox != 0 && table[d].oy == 0 }

// IsVertical is true only for Up and Down.
func (d Direction) IsVertical() bool { return table[d].oy != 0 && table[d].ox == 0 }

// IsUp is true for every direction whose name contains "up".
func (d Direction) IsUp() bool { return strings.Contains(table[d].name, "up") }

// IsDown is true for every direction whose name contains "down".
func (d Direction) IsDown() bool { return strings.Contains(table[d].name, "down") }

// NextCardinal returns the next cardinal clockwise. Non-cardinals return themselves.
func (d Direction) NextCardinal() Direction {
	if !d.IsCardinal() {
		return d
	}
	return (d + 1) % 4
}

// PreviousCardinal returns the next cardinal anticlockwise. Non-cardinals return themselves.
func (d Direction) PreviousCardinal() Direction {
	if !d.IsCardinal() {
		return d
	}
	return (d + 3) % 4
}

// Union returns the union of two perpendicular cardinals (Up.Union(Right) == UpAndRight).
// Any other combination returns d unchanged.
func (d Direction) Union(other Direction) Direction {
	v, h, ok := perpendicular(d, other)
	if !ok {
		return d
	}
	return byName[v.String()+"_and_"+h.String()]
}

// Intersection returns the diagonal between two perpendicular cardinals
// (Up.Intersection(Right) == UpRight). Any other combination returns d unchanged.
func (d Direction) Intersection(other Direction) Direction {
	v, h, ok := perpendicular(d, other)
	if !ok {
		return d
	}
	return byName[v.String()+"_"+h.String()]
}

func perpendicular(a, b Direction) (vertical, horizontal Direction, ok bool) {
	if a == b || !a.IsCardinal() || !b.IsCardinal() {
		return 0, 0, false
	}
	switch {
	case a.IsVertical() && b.IsHorizontal():
		return a, b, true
	case a.IsHorizontal() && b.IsVertical():
		return b, a, true
	}
	return 0, 0, false
}

// Of resolves a direction by name.
func Of(name string) (Direction, bool) {
	d, ok := byName[name]
	return d, ok
}

// OfOffset resolves a direction by grid offset. Diagonal offsets resolve to
// intersections, never unions.
func OfOffset(p image.Point) (Direction, bool) {
	for _, d := range standard {
		if table[d].ox == p.X && table[d].oy == p.Y {
			return d, true
		}
	}
	return 0, false
}

var standard = [8]Direction{Up, Right, Down, Left, UpLeft, UpRight, DownRight, DownLeft}

// Standard iterates the eight neighbor directions: cardinals then intersections.
func Standard() iter.Seq[Direction] { return seq(standard[:]) }

// Cardinals iterates Up, Right, Down, Left.
func Cardinals() iter.Seq[Direction] { return rangeSeq(Up, Left) }

// Unions iterates the four union directions.
func Unions() iter.Seq[Direction] { return rangeSeq(UpAndLeft, DownAndLeft) }

// Intersections iterates the four intersection directions.
func Intersections() iter.Seq[Direction] { return rangeSeq(UpLeft, DownLeft) }

// All iterates every direction in ordinal order.
func All() iter.Seq[Direction] { return rangeSeq(Up, DownLeft) }

func rangeSeq(from, to Direction) iter.Seq[Direction] {
	return func(yield func(Direction) bool) {
		for d := from; d <= to; d++ {
			if !yield(d) {
				return
			}
		}
	}
}

func seq(ds []Direction) iter.Seq[Direction] {
	return func(yield func(Direction) bool) {
		for _, d := range ds {
			if !yield(d) {
				return
			}
		}
	}
}
