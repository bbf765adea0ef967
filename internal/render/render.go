// Package render executes the draw ops produced by tiles on ebiten images.
package render

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/udisondev/vitreous/internal/patchwork"
	"github.com/udisondev/vitreous/internal/spatial"
	"github.com/udisondev/vitreous/internal/texture"
)

// Loader reads the image file at path.
type Loader func(path string) (*ebiten.Image, error)

// FileLoader decodes an image file from disk.
func FileLoader(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	return img, err
}

// Atlas caches loaded textures by path. Resources without a file and files
// that fail to load resolve to nil; a failure is logged once.
type Atlas struct {
	load   Loader
	images map[string]*ebiten.Image
}

func NewAtlas(load Loader) *Atlas {
	return &Atlas{load: load, images: make(map[string]*ebiten.Image)}
}

// Image returns the loaded image of r, or nil.
func (a *Atlas) Image(r *texture.Resource) *ebiten.Image {
	if r == nil || r.Path() == "" {
		return nil
	}
	if img, ok := a.images[r.Path()]; ok {
		return img
	}
	img, err := a.load(r.Path())
	if err != nil {
		slog.Warn("texture not loaded", "texture", r.ID, "path", r.Path(), "err", err)
		img = nil
	}
	a.images[r.Path()] = img
	return img
}

// Len returns the number of cached paths, failed ones included.
func (a *Atlas) Len() int { return len(a.images) }

// Options maps the source rectangle of op onto its destination.
func Options(op patchwork.DrawOp) *ebiten.DrawImageOptions {
	o := &ebiten.DrawImageOptions{}
	sw, sh := op.Src.Dx(), op.Src.Dy()
	if sw > 0 && sh > 0 {
		o.GeoM.Scale(float64(op.Dst.Dx())/float64(sw), float64(op.Dst.Dy())/float64(sh))
	}
	o.GeoM.Translate(float64(op.Dst.Min.X), float64(op.Dst.Min.Y))
	return o
}

// Draw executes ops in order. Ops with a missing texture or an empty
// rectangle are skipped.
func Draw(dst *ebiten.Image, atlas *Atlas, ops []patchwork.DrawOp) {
	for _, op := range ops {
		if op.Src.Empty() || op.Dst.Empty() {
			continue
		}
		img := atlas.Image(op.Texture)
		if img == nil {
			continue
		}
		sub, ok := img.SubImage(op.Src).(*ebiten.Image)
		if !ok {
			continue
		}
		dst.DrawImage(sub, Options(op))
	}
}

// DrawDebug fills each rectangle with its translucent colour.
func DrawDebug(dst *ebiten.Image, rects []patchwork.DebugRect) {
	for _, r := range rects {
		vector.DrawFilledRect(dst,
			float32(r.Rect.Min.X), float32(r.Rect.Min.Y),
			float32(r.Rect.Dx()), float32(r.Rect.Dy()),
			r.Color, false)
	}
}

// AreaOps collects the draw ops of every materialised tile of a, the area
// type backdrop first.
func AreaOps(a *spatial.Area, opts spatial.Options, origin image.Point) []patchwork.DrawOp {
	var ops []patchwork.DrawOp
	if res := a.Type.Texture(); res != nil {
		size := a.Size()
		ops = append(ops, patchwork.DrawOp{
			Texture: res,
			Src:     res.Bounds(),
			Dst: image.Rectangle{
				Min: origin,
				Max: origin.Add(image.Pt(size.X*opts.TileWidth, size.Y*opts.TileHeight)),
			},
		})
	}
	for p, t := range a.Tiles() {
		ops = append(ops, t.Layers(opts.TileRect(origin, p))...)
	}
	return ops
}

// DebugOps collects the connection highlights of every materialised tile.
func DebugOps(a *spatial.Area, opts spatial.Options, origin image.Point) []patchwork.DebugRect {
	var rects []patchwork.DebugRect
	for p, t := range a.Tiles() {
		rects = append(rects, t.DebugOverlay(opts.TileRect(origin, p))...)
	}
	return rects
}

// DrawArea draws a at origin, with connection highlights when debug is set.
func DrawArea(dst *ebiten.Image, atlas *Atlas, a *spatial.Area, opts spatial.Options, origin image.Point, debug bool) {
	Draw(dst, atlas, AreaOps(a, opts, origin))
	if debug {
		DrawDebug(dst, DebugOps(a, opts, origin))
	}
}

var cursorColor = color.RGBA{R: 255, G: 255, B: 255, A: 160}

// DrawCursor outlines the tile at p.
func DrawCursor(dst *ebiten.Image, opts spatial.Options, origin, p image.Point) {
	r := opts.TileRect(origin, p)
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, cursorColor, false)
}
