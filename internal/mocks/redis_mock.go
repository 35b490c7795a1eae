package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient implements storage.RedisClient over a map.
type MockRedisClient struct {
	mu   sync.RWMutex
	data map[string]string

	// Error injection
	SetError error
	GetError error
	DelError error
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{data: make(map[string]string)}
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewStatusCmd(ctx)
	if m.SetError != nil {
		cmd.SetErr(m.SetError)
		return cmd
	}
	m.data[key] = value.(string)
	cmd.SetVal("OK")
	return cmd
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cmd := redis.NewStringCmd(ctx)
	if m.GetError != nil {
		cmd.SetErr(m.GetError)
		return cmd
	}
	val, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(val)
	return cmd
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewIntCmd(ctx)
	if m.DelError != nil {
		cmd.SetErr(m.DelError)
		return cmd
	}
	var deleted int64
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			delete(m.data, key)
			deleted++
		}
	}
	cmd.SetVal(deleted)
	return cmd
}

// SetKey sets a raw key for test setup.
func (m *MockRedisClient) SetKey(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Value returns a raw key for assertions.
func (m *MockRedisClient) Value(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MockRedisClient) HasKey(key string) bool {
	_, ok := m.Value(key)
	return ok
}
