package storage

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps values for the lifetime of the process.
type MemoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: gocache.New(gocache.NoExpiration, 0)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	if m == nil {
		return "", false, ErrNotInitialised
	}
	v, ok := m.c.Get(key)
	if !ok {
		return "", false, nil
	}
	s, _ := v.(string)
	return s, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	if m == nil {
		return ErrNotInitialised
	}
	m.c.Set(key, value, gocache.NoExpiration)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	if m == nil {
		return ErrNotInitialised
	}
	for _, key := range keys {
		m.c.Delete(key)
	}
	return nil
}

// Len reports the number of stored keys.
func (m *MemoryStore) Len() int {
	if m == nil {
		return 0
	}
	return m.c.ItemCount()
}
