// Package texture registers image resources referenced by content entries.
//
// The core only needs texture dimensions to compute patch rectangles; pixel
// data is loaded lazily by the render package.
package texture

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/udisondev/vitreous/internal/registry"
)

const (
	// Key is the registry type tag for texture files.
	Key = "texture"
	// Folder is where texture definitions live inside a content module.
	Folder = "textures"
)

// Resource is a loaded image description.
type Resource struct {
	registry.Base
	path   string
	width  int
	height int
}

// New returns an in-memory resource of the given size with no backing file.
func New(id string, width, height int) *Resource {
	return &Resource{Base: registry.NewBase(id, ""), width: width, height: height}
}

func (r *Resource) Path() string { return r.path }
func (r *Resource) Width() int   { return r.width }
func (r *Resource) Height() int  { return r.height }

// Bounds returns the full texture rectangle anchored at the origin.
func (r *Resource) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

type resourceJSON struct {
	Res    string `json:"res"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Decode reads a texture entry. "res" is resolved relative to the definition
// file. Explicit width/height skip reading the image header.
func Decode(raw json.RawMessage, src registry.Source) (*Resource, error) {
	base, err := registry.DecodeBase(raw)
	if err != nil {
		return nil, err
	}
	var j resourceJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("texture %s: %w", base.ID, err)
	}

	r := &Resource{Base: base, width: j.Width, height: j.Height}
	if j.Res == "" {
		if r.width <= 0 || r.height <= 0 {
			return nil, fmt.Errorf("texture %s: %w \"res\"", base.ID, registry.ErrMissingKey)
		}
		return r, nil
	}

	r.path = j.Res
	if !filepath.IsAbs(r.path) && src.Dir() != "" {
		r.path = filepath.Join(src.Dir(), r.path)
	}
	if r.width > 0 && r.height > 0 {
		return r, nil
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", base.ID, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("texture %s: decoding %s: %w", base.ID, r.path, err)
	}
	r.width, r.height = cfg.Width, cfg.Height
	return r, nil
}

// NewRegistry creates the texture registry.
func NewRegistry() *registry.Registry[*Resource] {
	return registry.New(Key, Folder, Decode)
}
