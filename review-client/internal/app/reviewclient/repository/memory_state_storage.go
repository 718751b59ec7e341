package repository

import (
	"context"
	"sync"
)

// MemoryStateStorage хранит снимки в памяти процесса (тесты, локальный запуск)
type MemoryStateStorage struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryStateStorage() *MemoryStateStorage {
	return &MemoryStateStorage{entries: make(map[string][]byte)}
}

func (m *MemoryStateStorage) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[name]
	if !ok {
		return nil, ErrStateNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryStateStorage) Save(_ context.Context, name string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[name] = append([]byte(nil), value...)
	return nil
}
