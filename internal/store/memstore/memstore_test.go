package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vitreous/internal/store/core"
	"github.com/udisondev/vitreous/internal/store/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) core.Documents { return New() })
}

func TestStore_CopiesData(t *testing.T) {
	s := New()
	data := []byte(`{"a":1}`)
	_, err := s.Save(context.Background(), "doc.json", data)
	require.NoError(t, err)
	data[1] = 'x'

	got, err := s.Load(context.Background(), "doc.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}
