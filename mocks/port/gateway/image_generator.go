package gateway

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
	"github.com/stretchr/testify/mock"
)

// MockImageGenerator is a mock implementation of gateway.ImageGenerator
type MockImageGenerator struct {
	mock.Mock
}

// NewMockImageGenerator creates a MockImageGenerator that asserts its expectations on cleanup
func NewMockImageGenerator(t *testing.T) *MockImageGenerator {
	m := new(MockImageGenerator)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockImageGenerator) Generate(ctx context.Context, req gateway.GenerationRequest) (*gateway.GenerationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.GenerationResult), args.Error(1)
}

func (m *MockImageGenerator) Fetch(ctx context.Context, taskID string) (*gateway.GenerationResult, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.GenerationResult), args.Error(1)
}
