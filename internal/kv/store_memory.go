package kv

import (
	"context"
	"sync"

	"curator/pkg/platform/sentinel"
)

// Memory is the in-process backend. It doubles as the session-scoped store
// (lifetime = host process) and as the persistent store for embedded and
// test setups. It intentionally favors clarity over performance.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if raw, ok := m.values[key]; ok {
		out := make([]byte, len(raw))
		copy(out, raw)
		return out, nil
	}
	return nil, sentinel.ErrNotFound
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Keys returns a snapshot of stored keys, used by tests asserting that
// operations touch only their own namespace.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys
}
