package gateway

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockRateLimiter is a mock implementation of gateway.RateLimiter
type MockRateLimiter struct {
	mock.Mock
}

// NewMockRateLimiter creates a MockRateLimiter that asserts its expectations on cleanup
func NewMockRateLimiter(t *testing.T) *MockRateLimiter {
	m := new(MockRateLimiter)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string, limit entity.RateLimit) (bool, error) {
	args := m.Called(ctx, key, limit)
	return args.Bool(0), args.Error(1)
}

// MockActivityStore is a mock implementation of gateway.ActivityStore
type MockActivityStore struct {
	mock.Mock
}

// NewMockActivityStore creates a MockActivityStore that asserts its expectations on cleanup
func NewMockActivityStore(t *testing.T) *MockActivityStore {
	m := new(MockActivityStore)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockActivityStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}
