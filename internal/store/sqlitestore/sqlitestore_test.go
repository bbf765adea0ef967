package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vitreous/internal/store/core"
	"github.com/udisondev/vitreous/internal/store/storetest"
)

func open(t *testing.T, path string) *Store {
	t.Helper()
	s, err := New(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) core.Documents {
		return open(t, filepath.Join(t.TempDir(), "editor", "vitreous.db"))
	})
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vitreous.db")
	ctx := context.Background()

	s, err := New(ctx, path)
	require.NoError(t, err)
	_, err = s.Save(ctx, "editor_sectors.json", []byte(`{"entries":[{"idn":"realm"}]}`))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// migrations are idempotent on an existing database
	s = open(t, path)
	got, err := s.Load(ctx, "editor_sectors.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"entries":[{"idn":"realm"}]}`, string(got))

	var fp string
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT fingerprint FROM editor_documents WHERE name = ?`, "editor_sectors.json").Scan(&fp))
	assert.Equal(t, core.Fingerprint(got), fp)
}

func TestNew_EmptyPath(t *testing.T) {
	_, err := New(context.Background(), "")
	assert.Error(t, err)
}
