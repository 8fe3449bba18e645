package usecase

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockTaskUseCase is a mock implementation of usecase.TaskUseCase
type MockTaskUseCase struct {
	mock.Mock
}

// NewMockTaskUseCase creates a MockTaskUseCase that asserts its expectations on cleanup
func NewMockTaskUseCase(t *testing.T) *MockTaskUseCase {
	m := new(MockTaskUseCase)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTaskUseCase) Query(ctx context.Context, principal *entity.Principal, publicID string) (*entity.Generation, error) {
	args := m.Called(ctx, principal, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Generation), args.Error(1)
}

func (m *MockTaskUseCase) Reconcile(ctx context.Context) (*usecase.ReconcileReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ReconcileReport), args.Error(1)
}
