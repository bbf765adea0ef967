package main

import (
	"bytes"
	"context"
	"maps"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vitreous/internal/composite"
	"github.com/udisondev/vitreous/internal/config"
	"github.com/udisondev/vitreous/internal/content"
	"github.com/udisondev/vitreous/internal/testutil"
)

func TestRun(t *testing.T) {
	t.Setenv(config.EnvPath, filepath.Join(t.TempDir(), "missing.yaml"))

	files := maps.Clone(testutil.ContentFiles)
	files["composites/floors/broken.json"] = `{"type":"floor","entries":[`
	root := testutil.WriteFiles(t, files)

	var out bytes.Buffer
	problems, err := run(context.Background(), []string{root}, &out)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, problems, 1)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "REGISTRY"))

	var floor []string
	for _, l := range lines[1:] {
		if f := strings.Fields(l); len(f) == 5 && f[0] == composite.FloorKey {
			floor = f
		}
	}
	require.NotNil(t, floor, out.String())
	// empty, grass and dirt; two imported from files, one file skipped
	assert.Equal(t, []string{composite.FloorKey, "3", "2", "0", "1"}, floor)
}

func TestRun_MissingModule(t *testing.T) {
	t.Setenv(config.EnvPath, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := run(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestModulesFrom(t *testing.T) {
	cfg := config.ContentConfig{Modules: []config.ModuleConfig{{Name: "base", Root: "content/base"}}}

	assert.Equal(t, []content.Module{{Name: "base", Root: "content/base"}}, modulesFrom(nil, cfg))
	assert.Equal(t,
		[]content.Module{{Name: "core", Root: "content/core"}, {Name: "extra", Root: "mods/extra"}},
		modulesFrom([]string{"content/core", "mods/extra"}, cfg))
}

func TestTally(t *testing.T) {
	tl := newTally()
	tl.EntryImported("floor")
	tl.EntrySkipped("floor")
	tl.FileSkipped("area")
	tl.FileSkipped("area")
	assert.Equal(t, 3, tl.problems())

	var out bytes.Buffer
	require.NoError(t, report(&out, content.Report{Counts: []content.Count{{Registry: "floor", Entries: 4}}}, tl))
	assert.Contains(t, out.String(), "floor")
	assert.Equal(t, []string{"floor", "4", "1", "1", "0"}, strings.Fields(strings.Split(out.String(), "\n")[1]))
}
