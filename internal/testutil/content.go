package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/vitreous/internal/registry"
)

// ContentFiles is a small but complete content module keyed by path relative
// to the module root. Textures declare their size so no image files are needed.
//
// Highlights:
//   - "door" has a door determinant reading qualifier "open" and state "axis"
//   - "fence" connects to "door" through an extra connection overlay
//   - "chest" holds up to two elements
//   - area "courtyard" is a row of stone walls over grass
//   - sector "realm" mixes a referenced area, a dangling id and an inline area
var ContentFiles = map[string]string{
	"textures/textures.json": `{"type":"texture","entries":[
		{"idn":"stone_wall","res":"stone_wall.png","width":24,"height":24},
		{"idn":"stone_wall_connections","res":"stone_wall_connections.png","width":96,"height":24},
		{"idn":"door_partitions","res":"door.png","width":96,"height":24},
		{"idn":"door_frame","res":"door_frame.png","width":96,"height":24},
		{"idn":"fence","res":"fence.png","width":24,"height":24},
		{"idn":"fence_connections","res":"fence_connections.png","width":96,"height":24},
		{"idn":"grass","res":"grass.png","width":24,"height":24},
		{"idn":"grass_connections","res":"grass_connections.png","width":96,"height":24},
		{"idn":"dirt","res":"dirt.png","width":24,"height":24},
		{"idn":"meadow","res":"meadow.png","width":1152,"height":768}
	]}`,
	"attributes/attributes.json": `{"type":"attribute","entries":[
		{"idn":"durability","dsc":"How much damage a thing takes before breaking"},
		{"idn":"weight"}
	]}`,
	"qualifiers/qualifiers.json": `{"type":"qualifier","entries":[
		{"idn":"open"},
		{"idn":"burning"}
	]}`,
	"states/states.json": `{"type":"state","entries":[
		{"idn":"axis","base":"horizontal","values":[{"idn":"horizontal"},{"idn":"vertical"}]}
	]}`,
	"composites/parts/parts.json": `{"type":"part","entries":[
		{"idn":"hinge","attributes":[{"ref":"weight","min":0,"max":5,"base":1}]},
		{"idn":"plank","parts":[{"idn":"hinge","count":2}]}
	]}`,
	"composites/elements/elements.json": `{"type":"element","entries":[
		{"idn":"door","parts":[{"idn":"plank","count":3}]},
		{"idn":"coin"},
		{"idn":"letter","distinct":true}
	]}`,
	"composites/structures/walls.json": `{"type":"structure","entries":[
		{"idn":"stone_wall","res":"stone_wall","connections":"stone_wall_connections",
		 "attributes":[{"ref":"durability","min":0,"max":100}]},
		{"idn":"fence","res":"fence","connections":"fence_connections","inherits":["stone_wall"],
		 "extra_connections":[{"ref":"door","overlay":"door_frame","resource_determinant":"door"}]}
	]}`,
	"composites/structures/furniture.json": `{"type":"structure","entries":[
		{"idn":"door","partitions":"door_partitions","resource_determinant":"DoorResourceDeterminant",
		 "states":[{"ref":"axis"}],"qualifiers":[{"ref":"open"}]},
		{"idn":"chest","container":{"type":"heap","capacity":2},
		 "attributes":[{"ref":"durability","min":0,"max":40}]}
	]}`,
	"composites/floors/floors.json": `{"type":"floor","entries":[
		{"idn":"grass","res":"grass","connections":"grass_connections"},
		{"idn":"dirt","res":"dirt"}
	]}`,
	"spatial/area_types/area_types.json": `{"type":"area_type","entries":[
		{"idn":"meadow","res":"meadow"},
		{"idn":"cave"}
	]}`,
	"spatial/areas/areas.json": `{"type":"area","entries":[
		{"idn":"courtyard","area_type":"meadow","tiles":[
			[{"structure":{"ref":"stone_wall"},"floor":{"ref":"grass"}},
			 {"structure":{"ref":"stone_wall"},"floor":{"ref":"grass"}},
			 {"structure":{"ref":"stone_wall","attributes":[{"ref":"durability","value":10}]},"floor":{"ref":"grass"}}]
		]}
	]}`,
	"spatial/sectors/sectors.json": `{"type":"sector","entries":[
		{"idn":"realm","areas":[
			["courtyard","missing",{"idn":"pocket","area_type":"cave"}]
		]}
	]}`,
}

// WriteContent writes ContentFiles under a fresh temp dir and returns it.
func WriteContent(tb testing.TB) string {
	tb.Helper()
	return WriteFiles(tb, ContentFiles)
}

// WriteFiles writes files (relative path to content) under a temp dir.
func WriteFiles(tb testing.TB, files map[string]string) string {
	tb.Helper()
	root := tb.TempDir()
	for rel, body := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(tb, os.WriteFile(path, []byte(body), 0o644))
	}
	return root
}

// ImportAll imports every registry from root in order and fails the test on error.
func ImportAll(tb testing.TB, root string, importers []registry.Importer) {
	tb.Helper()
	ctx := ContextWithTimeout(tb, importTimeout)
	for _, imp := range importers {
		require.NoError(tb, imp.ImportDir(ctx, filepath.Join(root, imp.Folder())), imp.Key())
	}
}
