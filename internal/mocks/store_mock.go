package mocks

import (
	"context"
	"sync"

	"github.com/intelicop/console/internal/core/ports"
)

// MockKeyValueStore is an in-memory ports.KeyValueStore with error
// injection.
type MockKeyValueStore struct {
	mu     sync.RWMutex
	Values map[string]string

	GetError    error
	SetError    error
	DeleteError error

	SetCallCount    int
	DeleteCallCount int
}

var _ ports.KeyValueStore = (*MockKeyValueStore)(nil)

func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{Values: make(map[string]string)}
}

func (m *MockKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return "", false, m.GetError
	}
	v, ok := m.Values[key]
	return v, ok, nil
}

func (m *MockKeyValueStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCallCount++
	if m.SetError != nil {
		return m.SetError
	}
	m.Values[key] = value
	return nil
}

func (m *MockKeyValueStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCallCount++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Values, key)
	return nil
}

func (m *MockKeyValueStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.Values[key]
	return ok
}
