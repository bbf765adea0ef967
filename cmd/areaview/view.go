package main

import (
	"context"
	"fmt"
	"hash/fnv"
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/udisondev/vitreous/internal/direction"
	"github.com/udisondev/vitreous/internal/spatial"
)

// cardinal connections, indexed by up=1 right=2 down=4 left=8.
var glyphs = [16]rune{
	'■', '│', '─', '└',
	'│', '│', '┌', '├',
	'─', '┘', '─', '┴',
	'┐', '┤', '┬', '┼',
}

var structureColors = []tcell.Color{
	tcell.ColorWhite, tcell.ColorYellow, tcell.ColorAqua, tcell.ColorFuchsia,
	tcell.ColorRed, tcell.ColorBlue, tcell.ColorSilver, tcell.ColorOrange,
}

var (
	floorStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	headerStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// cellSetter is the part of tcell.Screen the drawing code writes to.
type cellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// glyph picks the terminal cell for a tile.
func glyph(t *spatial.Tile) (rune, tcell.Style) {
	if t == nil {
		return ' ', tcell.StyleDefault
	}
	if !t.Structure.IsEmpty() {
		conns := t.StructureConnections()
		var mask int
		for i, d := range []direction.Direction{direction.Up, direction.Right, direction.Down, direction.Left} {
			if conns.Has(d) {
				mask |= 1 << i
			}
		}
		style := tcell.StyleDefault.Foreground(colorFor(t.Structure.Identifier()))
		if t.Structure.Elements().Len() > 0 {
			style = style.Bold(true)
		}
		return glyphs[mask], style
	}
	if !t.Floor.IsEmpty() {
		return '·', floorStyle
	}
	return ' ', tcell.StyleDefault
}

func colorFor(id string) tcell.Color {
	h := fnv.New32a()
	h.Write([]byte(id))
	return structureColors[h.Sum32()%uint32(len(structureColors))]
}

// drawArea writes the tiles of a visible in a w by h window, top-left at
// (0, top), scrolled by offset.
func drawArea(dst cellSetter, a *spatial.Area, offset image.Point, top, w, h int) {
	for y := range h {
		for x := range w {
			p := image.Pt(x, y).Add(offset)
			r, style := ' ', tcell.StyleDefault
			if a.ContainsPosition(p) {
				r, style = glyph(a.At(p))
			}
			dst.SetContent(x, top+y, r, nil, style)
		}
	}
}

func drawText(dst cellSetter, x, y, w int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= w {
			return
		}
		dst.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		dst.SetContent(x, y, ' ', nil, style)
	}
}

type viewer struct {
	screen tcell.Screen
	areas  []*spatial.Area
	index  int
	offset image.Point
}

func (v *viewer) area() *spatial.Area { return v.areas[v.index] }

func (v *viewer) header() string {
	return fmt.Sprintf(" %s (%d/%d)  n/p: area  arrows: scroll  q: quit", v.area().ID, v.index+1, len(v.areas))
}

func (v *viewer) draw() {
	w, h := v.screen.Size()
	v.screen.Clear()
	drawText(v.screen, 0, 0, w, v.header(), headerStyle)
	drawArea(v.screen, v.area(), v.offset, 1, w, h-1)
	v.screen.Show()
}

func (v *viewer) switchArea(d int) {
	n := len(v.areas)
	v.index = (v.index + d + n) % n
	v.offset = image.Point{}
	v.area().Update()
}

func (v *viewer) scroll(d image.Point) {
	next := v.offset.Add(d)
	size := v.area().Size()
	if next.X < 0 || next.Y < 0 || next.X >= size.X || next.Y >= size.Y {
		return
	}
	v.offset = next
}

// handle applies one event; it returns false when the viewer should exit.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.scroll(image.Pt(0, -1))
		case tcell.KeyDown:
			v.scroll(image.Pt(0, 1))
		case tcell.KeyLeft:
			v.scroll(image.Pt(-1, 0))
		case tcell.KeyRight:
			v.scroll(image.Pt(1, 0))
		case tcell.KeyTab:
			v.switchArea(1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'n':
				v.switchArea(1)
			case 'p':
				v.switchArea(-1)
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) run(ctx context.Context) {
	v.area().Update()
	v.draw()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || !v.handle(ev) {
				return
			}
			v.draw()
		}
	}
}
