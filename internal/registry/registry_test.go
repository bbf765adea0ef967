package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Base
	Tags []string `json:"tags"`
}

func (it *item) Inherit(targets []*item) {
	for _, t := range targets {
		for _, tag := range t.Tags {
			if !slices.Contains(it.Tags, tag) {
				it.Tags = append(it.Tags, tag)
			}
		}
	}
}

func decodeItem(raw json.RawMessage, _ Source) (*item, error) {
	base, err := DecodeBase(raw)
	if err != nil {
		return nil, err
	}
	it := &item{}
	if err := json.Unmarshal(raw, it); err != nil {
		return nil, err
	}
	it.Base = base
	return it, nil
}

type countingObserver struct {
	imported, skipped, files int
}

func (o *countingObserver) EntryImported(string) { o.imported++ }
func (o *countingObserver) EntrySkipped(string)  { o.skipped++ }
func (o *countingObserver) FileSkipped(string)   { o.files++ }

func newItems() *Registry[*item] {
	return New("item", "items", decodeItem)
}

func TestRegister(t *testing.T) {
	r := newItems()
	r.Register(nil)
	assert.Equal(t, 0, r.Len())

	r.Register(&item{Base: NewBase("a", "")})
	r.Register(&item{Base: NewBase("b", "")})
	r.Register(&item{Base: NewBase("a", "again")})

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"a", "b"}, r.Identifiers())

	a, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "again", a.Description())
}

func TestLookup(t *testing.T) {
	r := newItems()
	fallback := &item{Base: NewBase("fallback", "")}
	r.Register(&item{Base: NewBase("a", "")})

	_, err := r.Lookup("missing")
	require.ErrorIs(t, err, ErrNotFound)

	assert.Same(t, fallback, r.GetOrDefault("missing", fallback))
	assert.True(t, r.Has("a"))
	assert.False(t, r.Has("missing"))
	assert.Panics(t, func() { r.MustGet("missing") })
}

func TestImportJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		want     int
		wantErr  error
		skipped  int
		imported []string
	}{
		{
			name:     "valid",
			data:     `{"type":"item","entries":[{"idn":"a"},{"idn":"b","dsc":"second"}]}`,
			want:     2,
			imported: []string{"a", "b"},
		},
		{
			name:    "type mismatch",
			data:    `{"type":"other","entries":[{"idn":"a"}]}`,
			wantErr: ErrTypeMismatch,
		},
		{
			name:    "no entries",
			data:    `{"type":"item"}`,
			wantErr: ErrMissingKey,
		},
		{
			name:     "bad entry skipped",
			data:     `{"type":"item","entries":[{"dsc":"no id"},{"idn":"c"},{"idn":7}]}`,
			want:     1,
			skipped:  2,
			imported: []string{"c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newItems()
			obs := &countingObserver{}
			r.SetObserver(obs)

			n, err := r.ImportJSON([]byte(tt.data), Source{Path: "test.json"})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, r.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
			assert.Equal(t, tt.skipped, obs.skipped)
			assert.Equal(t, tt.want, obs.imported)
			assert.Equal(t, tt.imported, r.Identifiers())
		})
	}
}

func TestImportJSON_Inheritance(t *testing.T) {
	r := newItems()
	data := `{"type":"item","entries":[
		{"idn":"base","tags":["x","y"]},
		{"idn":"mixin","tags":["z"]},
		{"idn":"child","tags":["y","w"],"inherits":["base","missing","mixin"]}
	]}`

	_, err := r.ImportJSON([]byte(data), Source{})
	require.NoError(t, err)

	child := r.MustGet("child")
	assert.Equal(t, []string{"y", "w", "x", "z"}, child.Tags)
	assert.Equal(t, []string{"x", "y"}, r.MustGet("base").Tags, "inherited entries are not modified")
}

func TestImportDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}

	write("a.json", `{"type":"item","entries":[{"idn":"base","tags":["x"]}]}`)
	write("nested/b.json", `{"type":"item","entries":[{"idn":"child","inherits":["base"]}]}`)
	write("broken.json", `{"type":"item","entries":[`)
	write("other.json", `{"type":"other","entries":[{"idn":"foreign"}]}`)
	write("notes.txt", `ignored`)

	r := newItems()
	obs := &countingObserver{}
	r.SetObserver(obs)

	require.NoError(t, r.ImportDir(context.Background(), dir))

	assert.Equal(t, []string{"base", "child"}, r.Identifiers())
	assert.Equal(t, []string{"x"}, r.MustGet("child").Tags)
	assert.Equal(t, 2, obs.files)
	assert.Equal(t, 2, obs.imported)
}

func TestImportDir_Missing(t *testing.T) {
	r := newItems()
	require.NoError(t, r.ImportDir(context.Background(), filepath.Join(t.TempDir(), "absent")))
	assert.Equal(t, 0, r.Len())
}

func TestImportDir_Cancelled(t *testing.T) {
	dir := t.TempDir()
	for i := range 4 {
		body := fmt.Sprintf(`{"type":"item","entries":[{"idn":"e%d"}]}`, i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("%d.json", i)), []byte(body), 0o644))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newItems().ImportDir(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func BenchmarkImportJSON(b *testing.B) {
	entries := make([]map[string]any, 256)
	for i := range entries {
		entries[i] = map[string]any{"idn": fmt.Sprintf("e%d", i), "tags": []string{"a", "b"}}
	}
	data, err := json.Marshal(map[string]any{"type": "item", "entries": entries})
	require.NoError(b, err)

	b.ResetTimer()
	for b.Loop() {
		r := newItems()
		if _, err := r.ImportJSON(data, Source{}); err != nil {
			b.Fatal(err)
		}
	}
}
