package spatial

import (
	"encoding/json"
	"fmt"

	"github.com/udisondev/vitreous/internal/registry"
	"github.com/udisondev/vitreous/internal/texture"
)

// AreaType classifies areas, optionally with a backdrop texture.
type AreaType struct {
	registry.Base
	texture *texture.Resource
}

func (c *Catalog) decodeAreaType(raw json.RawMessage, _ registry.Source) (*AreaType, error) {
	base, err := registry.DecodeBase(raw)
	if err != nil {
		return nil, err
	}
	var j struct {
		Res string `json:"res"`
	}
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("area type %s: %w", base.ID, err)
	}
	t := &AreaType{Base: base}
	if j.Res != "" {
		if t.texture, err = c.Textures.Lookup(j.Res); err != nil {
			return nil, fmt.Errorf("area type %s: texture: %w", base.ID, err)
		}
	}
	return t, nil
}

// Texture returns the backdrop texture or nil.
func (t *AreaType) Texture() *texture.Resource { return t.texture }
