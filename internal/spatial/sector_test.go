package spatial

import (
	"encoding/json"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vitreous/internal/registry"
)

func TestSector_Decode(t *testing.T) {
	c := newTestCatalog(t)

	s, err := c.Sectors.Lookup("realm")
	require.NoError(t, err)

	assert.Same(t, c.Areas.MustGet("courtyard"), s.At(image.Pt(0, 0)), "referenced areas are shared")
	assert.Nil(t, s.At(image.Pt(1, 0)), "unknown identifiers leave a hole")

	pocket := s.At(image.Pt(2, 0))
	require.NotNil(t, pocket)
	assert.Equal(t, "pocket", pocket.ID)
	assert.Equal(t, "cave", pocket.Type.ID)
	assert.False(t, c.Areas.Has("pocket"), "inline areas are not registered")
}

func TestSector_ContainsCoordinate(t *testing.T) {
	s := NewCatalog(DefaultOptions()).NewSector("test")

	tests := []struct {
		p    image.Point
		want bool
	}{
		{image.Pt(0, 0), true},
		{image.Pt(47, 31), true},
		{image.Pt(48, 31), false},
		{image.Pt(47, 32), false},
		{image.Pt(-1, 0), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.ContainsCoordinate(tt.p), "coordinate %v", tt.p)
	}
	assert.Nil(t, s.At(image.Pt(48, 0)))
	assert.False(t, s.Set(image.Pt(48, 0), &Area{}))
}

func TestSector_ExportSlim(t *testing.T) {
	c := newTestCatalog(t)
	s := c.Sectors.MustGet("realm")

	d, err := s.ExportSlim()
	require.NoError(t, err)
	require.Len(t, d.Areas, 32)
	require.Len(t, d.Areas[0], 48)

	assert.JSONEq(t, `"courtyard"`, string(d.Areas[0][0]))
	assert.JSONEq(t, `"`+registry.Empty+`"`, string(d.Areas[0][1]))
	assert.JSONEq(t, `"pocket"`, string(d.Areas[0][2]))
	assert.JSONEq(t, `"empty"`, string(d.Areas[31][47]))
}

func TestSector_ExportRoundTrip(t *testing.T) {
	c := newTestCatalog(t)
	s := c.Sectors.MustGet("realm")

	d, err := s.Export()
	require.NoError(t, err)
	assert.JSONEq(t, `null`, string(d.Areas[0][1]))

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var back SectorData
	require.NoError(t, json.Unmarshal(raw, &back))
	s2, err := c.DecodeSector(back)
	require.NoError(t, err)

	assert.Equal(t, "courtyard", s2.At(image.Pt(0, 0)).ID)
	assert.NotSame(t, s.At(image.Pt(0, 0)), s2.At(image.Pt(0, 0)), "inline areas are decoded afresh")
	assert.Nil(t, s2.At(image.Pt(1, 0)))

	d2, err := s2.Export()
	require.NoError(t, err)
	raw2, err := json.Marshal(d2)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(raw2))
}

func TestDecodeSector_Errors(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"missing idn", `{"areas":[]}`, registry.ErrMissingKey},
		{"broken inline area", `{"idn":"s","areas":[[{"area_type":"cave"}]]}`, registry.ErrMissingKey},
		{"too many columns", `{"idn":"s","areas":[[` + nulls(49) + `]]}`, ErrOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d SectorData
			require.NoError(t, json.Unmarshal([]byte(tt.data), &d))
			_, err := c.DecodeSector(d)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func nulls(n int) string {
	b, _ := json.Marshal(make([]any, n))
	return string(b[1 : len(b)-1])
}
