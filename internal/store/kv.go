package store

import (
	"sync"
)

// KV is the minimal string key/value contract shared by local (persistent) and
// session (per-process) storage. Implementations may fail; callers decide how to
// degrade.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Memory is an in-memory KV. It backs session storage: values live for the
// lifetime of one process run.
type Memory struct {
	mu   sync.Mutex
	vals map[string]string
}

func NewMemory() *Memory {
	return &Memory{vals: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vals[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vals, key)
	return nil
}
