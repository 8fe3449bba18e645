package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
)

// RedisActivityStore reads operator-published values from redis
type RedisActivityStore struct {
	client redis.UniversalClient
}

var _ gateway.ActivityStore = (*RedisActivityStore)(nil)

// NewRedisActivityStore creates a redis-backed activity store
func NewRedisActivityStore(client redis.UniversalClient) *RedisActivityStore {
	return &RedisActivityStore{client: client}
}

// Get returns the value under key, false when the key is absent
func (s *RedisActivityStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// MemoryActivityStore keeps values in process; used when redis is disabled
type MemoryActivityStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ gateway.ActivityStore = (*MemoryActivityStore)(nil)

// NewMemoryActivityStore creates an empty in-process store
func NewMemoryActivityStore() *MemoryActivityStore {
	return &MemoryActivityStore{values: make(map[string]string)}
}

// Get returns the value under key, false when the key is absent
func (s *MemoryActivityStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// Set publishes a value
func (s *MemoryActivityStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}
