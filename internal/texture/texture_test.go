package texture

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vitreous/internal/registry"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func TestDecode_ReadsImageHeader(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "wall.png"), 96, 48)

	r, err := Decode([]byte(`{"idn":"wall","res":"wall.png"}`), registry.Source{Path: filepath.Join(dir, "textures.json")})
	require.NoError(t, err)

	assert.Equal(t, "wall", r.Identifier())
	assert.Equal(t, 96, r.Width())
	assert.Equal(t, 48, r.Height())
	assert.Equal(t, filepath.Join(dir, "wall.png"), r.Path())
	assert.Equal(t, image.Rect(0, 0, 96, 48), r.Bounds())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no id", `{"res":"a.png"}`},
		{"no res or size", `{"idn":"a"}`},
		{"missing file", `{"idn":"a","res":"absent.png"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw), registry.Source{Path: filepath.Join(t.TempDir(), "t.json")})
			require.Error(t, err)
		})
	}
}

func TestDecode_ExplicitSize(t *testing.T) {
	r, err := Decode([]byte(`{"idn":"virtual","width":24,"height":32}`), registry.Source{})
	require.NoError(t, err)
	assert.Equal(t, 24, r.Width())
	assert.Empty(t, r.Path())
}
