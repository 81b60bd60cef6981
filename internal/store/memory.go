package store

import (
	"context"
	"sync"

	"github.com/agentstation/pagetree/pkg/errors"
)

// Memory is an in-process KV.
type Memory struct {
	mu    sync.Mutex
	items map[string]Item
}

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]Item)}
}

// Get implements KV.
func (m *Memory) Get(_ context.Context, key string) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[key]
	if !ok {
		return Item{}, errors.NewNotFoundError("key", key)
	}
	return Item{Data: append([]byte(nil), item.Data...), Revision: item.Revision}, nil
}

// Put implements KV.
func (m *Memory) Put(_ context.Context, key string, data []byte, revision string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current := m.items[key].Revision
	if current != revision {
		return "", conflict(key, revision, current)
	}
	rev := newRevision()
	m.items[key] = Item{Data: append([]byte(nil), data...), Revision: rev}
	return rev, nil
}

// Close implements KV.
func (m *Memory) Close() error { return nil }
