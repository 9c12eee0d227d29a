// Package prefs persists small user preferences as string key/value pairs.
package prefs

import (
	"context"
	"errors"
	"sync"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// LastCityKey holds the last city searched in the weather widget.
const LastCityKey = "ultimaCidade"

var ErrNotFound = errors.New("prefs: key not found")

// Store is the minimal key/value interface the widgets depend on.
// Set overwrites; values are never merged.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore keeps preferences for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
