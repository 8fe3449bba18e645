package usecase

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockHistoryUseCase is a mock implementation of usecase.HistoryUseCase
type MockHistoryUseCase struct {
	mock.Mock
}

// NewMockHistoryUseCase creates a MockHistoryUseCase that asserts its expectations on cleanup
func NewMockHistoryUseCase(t *testing.T) *MockHistoryUseCase {
	m := new(MockHistoryUseCase)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHistoryUseCase) List(ctx context.Context, userID string, query usecase.HistoryQuery) (*usecase.HistoryPage, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.HistoryPage), args.Error(1)
}

func (m *MockHistoryUseCase) Delete(ctx context.Context, userID string, publicIDs []string) (int64, error) {
	args := m.Called(ctx, userID, publicIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryUseCase) Stats(ctx context.Context, userID string) (*entity.GenerationStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GenerationStats), args.Error(1)
}

func (m *MockHistoryUseCase) Gallery(ctx context.Context, query usecase.GalleryQuery) (*usecase.GalleryPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.GalleryPage), args.Error(1)
}

func (m *MockHistoryUseCase) Get(ctx context.Context, principal *entity.Principal, publicID string) (*entity.Generation, error) {
	args := m.Called(ctx, principal, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Generation), args.Error(1)
}
