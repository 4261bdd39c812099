package options

import (
	"context"
	"sync"
)

// Memory is an in-process Store for tests and local development.
type Memory struct {
	mu   sync.RWMutex
	vals map[string]string
}

// NewMemory returns a Memory seeded with kv (may be nil).
func NewMemory(kv map[string]string) *Memory {
	m := &Memory{vals: make(map[string]string, len(kv))}
	for k, v := range kv {
		m.vals[k] = v
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vals[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.vals[key] = value
	m.mu.Unlock()
	return nil
}
