package kvstore

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// Memory keeps values in process memory. Entries never expire.
type Memory struct {
	items *cache.Cache
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: cache.New(cache.NoExpiration, 0)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	raw, ok := m.items.Get(key)
	if !ok {
		return "", false, nil
	}
	value, _ := raw.(string)
	return value, true, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.items.Set(key, value, cache.NoExpiration)
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

// Len reports the number of stored keys.
func (m *Memory) Len() int {
	return m.items.ItemCount()
}

func (m *Memory) Close() error {
	return nil
}
