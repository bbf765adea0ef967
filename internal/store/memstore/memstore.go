// Package memstore keeps editor documents in memory.
package memstore

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/udisondev/vitreous/internal/store/core"
)

// Store is a map-backed core.Documents.
type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func New() *Store {
	return &Store{docs: make(map[string][]byte)}
}

func (s *Store) Load(_ context.Context, name string) ([]byte, error) {
	if err := core.ValidateName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, core.ErrNotFound)
	}
	return bytes.Clone(data), nil
}

func (s *Store) Save(_ context.Context, name string, data []byte) (bool, error) {
	if err := core.ValidateName(name); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.docs[name]; ok && bytes.Equal(prev, data) {
		return false, nil
	}
	s.docs[name] = bytes.Clone(data)
	return true, nil
}

func (s *Store) Close() error { return nil }

func (s *Store) Driver() core.Driver { return core.DriverMemory }
