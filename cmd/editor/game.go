package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/udisondev/vitreous/internal/editor"
	"github.com/udisondev/vitreous/internal/metrics"
	"github.com/udisondev/vitreous/internal/render"
	"github.com/udisondev/vitreous/internal/spatial"
)

const lineHeight = 14

var (
	backgroundColor = color.NRGBA{R: 0x18, G: 0x18, B: 0x20, A: 0xff}
	panelColor      = color.NRGBA{R: 30, G: 30, B: 40, A: 220}
	statusColor     = color.NRGBA{R: 240, G: 196, B: 25, A: 255}
)

var slotNames = [slotCount]string{
	slotStructure: "structure",
	slotFloor:     "floor",
	slotElement:   "element",
	slotInspect:   "inspect",
}

type game struct {
	ctx     context.Context
	catalog *spatial.Catalog
	data    *editor.Data
	metrics *metrics.Metrics
	atlas   *render.Atlas
	width   int
	height  int

	frames    map[string]*editor.AreaFrame
	area      int
	slot      int
	palettes  palettes
	inspector *editor.TileInspector
	field     int

	cursor image.Point
	debug  bool
	status string
}

func newGame(ctx context.Context, c *spatial.Catalog, d *editor.Data, m *metrics.Metrics, width, height int, debug bool) (*game, error) {
	g := &game{
		ctx:       ctx,
		catalog:   c,
		data:      d,
		metrics:   m,
		atlas:     render.NewAtlas(render.FileLoader),
		width:     width,
		height:    height,
		frames:    make(map[string]*editor.AreaFrame),
		palettes:  newPalettes(c),
		inspector: &editor.TileInspector{},
		debug:     debug,
	}
	g.inspector.OnInspect = func(image.Point, *spatial.Tile) { g.field = 0 }
	if len(d.Areas) == 0 {
		if _, err := d.NewArea("untitled"); err != nil {
			return nil, err
		}
	}
	g.selectSlot(slotStructure)
	return g, nil
}

func (g *game) frame() *editor.AreaFrame {
	a := g.data.Areas[g.area]
	f, ok := g.frames[a.ID]
	if !ok {
		f = editor.NewAreaFrame(a)
		g.frames[a.ID] = f
	}
	return f
}

func (g *game) selectSlot(slot int) {
	g.slot = slot
	g.frame().SetTool(toolFor(g.catalog, slot, &g.palettes, g.inspector))
}

func (g *game) cycle(d int) {
	if g.slot >= len(g.palettes) {
		return
	}
	if d > 0 {
		g.palettes[g.slot].next()
	} else {
		g.palettes[g.slot].prev()
	}
	g.selectSlot(g.slot)
}

func (g *game) switchArea(d int) {
	n := len(g.data.Areas)
	g.showArea((g.area + d + n) % n)
}

func (g *game) showArea(i int) {
	g.area = i
	g.selectSlot(g.slot)
	g.status = "area " + g.data.Areas[i].ID
}

func (g *game) newArea() {
	id := fmt.Sprintf("area_%d", len(g.data.Areas)+1)
	if _, err := g.data.NewArea(id); err != nil {
		g.status = err.Error()
		return
	}
	g.showArea(len(g.data.Areas) - 1)
}

func (g *game) save() {
	if err := g.data.Save(g.ctx); err != nil {
		slog.Error("saving editor data", "err", err)
		g.status = "save failed: " + err.Error()
		return
	}
	g.status = "saved"
}

func (g *game) copyInspected() {
	t := g.inspected()
	if t == nil {
		g.status = "nothing inspected"
		return
	}
	b, err := json.MarshalIndent(t.Export(), "", "\t")
	if err != nil {
		g.status = err.Error()
		return
	}
	if err := clipboard.WriteAll(string(b)); err != nil {
		slog.Warn("clipboard unavailable", "err", err)
		g.status = "clipboard unavailable"
		return
	}
	g.status = "tile copied to clipboard"
}

func (g *game) undo() {
	if a, ok := g.frame().History.Undo(); ok {
		g.status = "undo " + a.Name
	}
}

func (g *game) redo() {
	if a, ok := g.frame().History.Redo(); ok {
		g.status = "redo " + a.Name
	}
}

// erase clears the structure at p through the frame, keeping the active tool.
func (g *game) erase(p image.Point) {
	f := g.frame()
	tool := f.Tool()
	f.SetTool(eraser(g.catalog.Catalog))
	f.Apply(p)
	f.SetTool(tool)
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.handleKeys()
	g.handleMouse()

	n := g.frame().Area.Update()
	g.metrics.TilesUpdated(n)
	return nil
}

func (g *game) handleKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	inspecting := g.slot == slotInspect
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		switch {
		case inspecting && k == ebiten.KeyArrowUp:
			g.moveField(-1)
		case inspecting && k == ebiten.KeyArrowDown:
			g.moveField(1)
		case inspecting && (k == ebiten.KeyArrowLeft || k == ebiten.KeyMinus || k == ebiten.KeyNumpadSubtract):
			g.editField(-1)
		case inspecting && (k == ebiten.KeyArrowRight || k == ebiten.KeyEqual || k == ebiten.KeyNumpadAdd || k == ebiten.KeySpace):
			g.editField(1)
		case k >= ebiten.KeyDigit1 && k < ebiten.KeyDigit1+slotCount:
			g.selectSlot(int(k - ebiten.KeyDigit1))
		case k == ebiten.KeyE:
			g.cycle(1)
		case k == ebiten.KeyQ:
			g.cycle(-1)
		case k == ebiten.KeyPageDown:
			g.switchArea(1)
		case k == ebiten.KeyPageUp:
			g.switchArea(-1)
		case k == ebiten.KeyF3:
			g.debug = !g.debug
		case ctrl && k == ebiten.KeyZ:
			g.undo()
		case ctrl && k == ebiten.KeyY:
			g.redo()
		case ctrl && k == ebiten.KeyS:
			g.save()
		case ctrl && k == ebiten.KeyC:
			g.copyInspected()
		case ctrl && k == ebiten.KeyN:
			g.newArea()
		}
	}
}

func (g *game) handleMouse() {
	g.cursor = g.catalog.Options.TileAt(image.Point{}, image.Pt(ebiten.CursorPosition()))

	f := g.frame()
	switch g.slot {
	case slotStructure, slotFloor:
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			f.Apply(g.cursor)
		}
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
			g.erase(g.cursor)
		}
	default:
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			f.Apply(g.cursor)
		}
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	opts := g.catalog.Options
	a := g.frame().Area

	render.DrawArea(screen, g.atlas, a, opts, image.Point{}, g.debug)
	if a.ContainsPosition(g.cursor) {
		render.DrawCursor(screen, opts, image.Point{}, g.cursor)
	}

	g.drawInspector(screen)

	y := a.Size().Y*opts.TileHeight + lineHeight
	text.Draw(screen, g.hud(), basicfont.Face7x13, 8, y, color.White)
	if g.status != "" {
		text.Draw(screen, g.status, basicfont.Face7x13, 8, y+lineHeight, statusColor)
	}
}

func (g *game) hud() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", g.frame().Area.ID, slotNames[g.slot])
	if g.slot < len(g.palettes) {
		fmt.Fprintf(&b, ": %s", g.palettes[g.slot].current())
	}
	fmt.Fprintf(&b, "  tile %d,%d", g.cursor.X, g.cursor.Y)
	if g.debug {
		b.WriteString("  debug")
	}
	return b.String()
}

func (g *game) drawInspector(screen *ebiten.Image) {
	if g.slot != slotInspect {
		return
	}
	lines := editor.Describe(g.inspected())
	if len(lines) == 0 {
		return
	}
	if f, ok := g.currentField(); ok {
		lines = append(lines, "> "+f.String())
	}
	const w = 260
	x := float64(g.width - w - 8)
	ebitenutil.DrawRect(screen, x, 8, w, float64(len(lines)*lineHeight+12), panelColor)
	for i, l := range lines {
		text.Draw(screen, l, basicfont.Face7x13, int(x)+8, 8+lineHeight*(i+1), color.White)
	}
}

func (g *game) Layout(int, int) (int, int) {
	return g.width, g.height
}
