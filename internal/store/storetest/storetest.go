// Package storetest holds the behaviour every document store must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vitreous/internal/store/core"
)

// Run exercises a fresh, empty store returned by open.
func Run(t *testing.T, open func(t *testing.T) core.Documents) {
	t.Run("load missing", func(t *testing.T) {
		s := open(t)
		_, err := s.Load(ctxFor(t), "editor_areas.json")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("save then load", func(t *testing.T) {
		s := open(t)
		ctx := ctxFor(t)

		written, err := s.Save(ctx, "editor_areas.json", []byte(`{"entries":[]}`))
		require.NoError(t, err)
		assert.True(t, written)

		got, err := s.Load(ctx, "editor_areas.json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"entries":[]}`, string(got))
	})

	t.Run("unchanged save is skipped", func(t *testing.T) {
		s := open(t)
		ctx := ctxFor(t)

		_, err := s.Save(ctx, "doc.json", []byte(`{"a":1}`))
		require.NoError(t, err)

		written, err := s.Save(ctx, "doc.json", []byte(`{"a":1}`))
		require.NoError(t, err)
		assert.False(t, written)

		written, err = s.Save(ctx, "doc.json", []byte(`{"a":2}`))
		require.NoError(t, err)
		assert.True(t, written)

		got, err := s.Load(ctx, "doc.json")
		require.NoError(t, err)
		assert.Equal(t, `{"a":2}`, string(got))
	})

	t.Run("documents are independent", func(t *testing.T) {
		s := open(t)
		ctx := ctxFor(t)

		_, err := s.Save(ctx, "a.json", []byte(`"a"`))
		require.NoError(t, err)
		_, err = s.Save(ctx, "b.json", []byte(`"b"`))
		require.NoError(t, err)

		got, err := s.Load(ctx, "a.json")
		require.NoError(t, err)
		assert.Equal(t, `"a"`, string(got))
	})

	t.Run("invalid names", func(t *testing.T) {
		s := open(t)
		ctx := ctxFor(t)

		for _, name := range []string{"", "..", "../escape.json", `dir\doc.json`} {
			_, err := s.Save(ctx, name, []byte(`{}`))
			assert.ErrorIs(t, err, core.ErrInvalidName, name)
			_, err = s.Load(ctx, name)
			assert.ErrorIs(t, err, core.ErrInvalidName, name)
		}
	})
}

func ctxFor(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
