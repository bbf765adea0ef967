package content

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vitreous/internal/config"
	"github.com/udisondev/vitreous/internal/spatial"
	"github.com/udisondev/vitreous/internal/testutil"
)

const testTimeout = 10 * time.Second

type tally struct {
	mu       sync.Mutex
	imported map[string]int
	skipped  map[string]int
	files    map[string]int
}

func newTally() *tally {
	return &tally{imported: map[string]int{}, skipped: map[string]int{}, files: map[string]int{}}
}

func (t *tally) EntryImported(r string) { t.mu.Lock(); t.imported[r]++; t.mu.Unlock() }
func (t *tally) EntrySkipped(r string)  { t.mu.Lock(); t.skipped[r]++; t.mu.Unlock() }
func (t *tally) FileSkipped(r string)   { t.mu.Lock(); t.files[r]++; t.mu.Unlock() }

func TestBootstrap(t *testing.T) {
	ctx := testutil.ContextWithTimeout(t, testTimeout)
	root := testutil.WriteContent(t)

	obs := newTally()
	c, rep, err := Bootstrap(ctx, spatial.DefaultOptions(), []Module{{Name: "base", Root: root}}, obs)
	require.NoError(t, err)

	tests := []struct {
		registry string
		want     int
	}{
		{"texture", 10},
		{"attribute", 2},
		{"qualifier", 2},
		{"state", 1},
		{"part", 3},
		{"element", 4},
		{"structure", 5},
		{"floor", 3},
		{"area_type", 3},
		{"area", 1},
		{"sector", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rep.Entries(tt.registry), tt.registry)
	}

	keys := make([]string, 0, len(rep.Counts))
	for _, cnt := range rep.Counts {
		keys = append(keys, cnt.Registry)
	}
	assert.Equal(t, []string{
		"texture", "attribute", "qualifier", "state",
		"part", "element", "structure", "floor",
		"area_type", "area", "sector",
	}, keys)

	assert.Equal(t, 4, obs.imported["structure"], "sentinels are not imported")
	assert.Equal(t, 2, obs.imported["floor"])
	assert.Zero(t, obs.skipped["structure"])
	assert.True(t, c.Sectors.Has("realm"))
}

func TestLoad_LaterModuleOverrides(t *testing.T) {
	ctx := testutil.ContextWithTimeout(t, testTimeout)
	base := testutil.WriteContent(t)
	mod := testutil.WriteFiles(t, map[string]string{
		"composites/structures/override.json": `{"type":"structure","entries":[
			{"idn":"stone_wall","attributes":[{"ref":"durability","min":0,"max":250}]},
			{"idn":"broken","element":"nonexistent"}
		]}`,
		"composites/floors/bad.json": `{"type":"structure","entries":[]}`,
	})

	obs := newTally()
	c, rep, err := Bootstrap(ctx, spatial.DefaultOptions(), []Module{
		{Name: "base", Root: base},
		{Name: "mod", Root: mod},
	}, obs)
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "mod"}, rep.Modules)

	wall := c.Structures.MustGet("stone_wall")
	dur, ok := wall.Attribute("durability")
	require.True(t, ok)
	assert.Equal(t, 250, dur.Max())
	assert.Nil(t, wall.Texture(), "overrides replace the whole entry")

	assert.False(t, c.Structures.Has("broken"))
	assert.Equal(t, 1, obs.skipped["structure"])
	assert.Equal(t, 1, obs.files["floor"])
}

func TestLoad_Errors(t *testing.T) {
	ctx := testutil.ContextWithTimeout(t, testTimeout)

	_, _, err := Bootstrap(ctx, spatial.DefaultOptions(), nil, nil)
	assert.ErrorIs(t, err, ErrNoModules)

	_, _, err = Bootstrap(ctx, spatial.DefaultOptions(), []Module{{Name: "gone", Root: filepath.Join(t.TempDir(), "gone")}}, nil)
	assert.Error(t, err)

	cctx, cancel := testutil.ContextWithCancel(t)
	cancel()
	_, _, err = Bootstrap(cctx, spatial.DefaultOptions(), []Module{{Name: "base", Root: testutil.WriteContent(t)}}, nil)
	assert.ErrorIs(t, err, cctx.Err())
}

func TestModules(t *testing.T) {
	got := Modules(config.ContentConfig{Modules: []config.ModuleConfig{
		{Name: "base", Root: "content/base"},
		{Name: "mod", Root: "mods/mod"},
	}})
	assert.Equal(t, []Module{{Name: "base", Root: "content/base"}, {Name: "mod", Root: "mods/mod"}}, got)
	assert.Empty(t, Modules(config.ContentConfig{}))
}
