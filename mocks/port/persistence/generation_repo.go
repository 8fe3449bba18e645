package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockGenerationRepository is a mock implementation of persistence.GenerationRepository
type MockGenerationRepository struct {
	mock.Mock
}

// NewMockGenerationRepository creates a MockGenerationRepository that asserts its expectations on cleanup
func NewMockGenerationRepository(t *testing.T) *MockGenerationRepository {
	m := new(MockGenerationRepository)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockGenerationRepository) Create(ctx context.Context, generation *entity.Generation) error {
	args := m.Called(ctx, generation)
	return args.Error(0)
}

func (m *MockGenerationRepository) GetByID(ctx context.Context, id uint64) (*entity.Generation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Generation), args.Error(1)
}

func (m *MockGenerationRepository) GetByRequestID(ctx context.Context, requestID string) (*entity.Generation, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Generation), args.Error(1)
}

func (m *MockGenerationRepository) SetVendorTaskID(ctx context.Context, id uint64, vendorTaskID string) error {
	args := m.Called(ctx, id, vendorTaskID)
	return args.Error(0)
}

func (m *MockGenerationRepository) MarkCompleted(ctx context.Context, generation *entity.Generation) (bool, error) {
	args := m.Called(ctx, generation)
	return args.Bool(0), args.Error(1)
}

func (m *MockGenerationRepository) MarkFailed(ctx context.Context, generation *entity.Generation) (bool, error) {
	args := m.Called(ctx, generation)
	return args.Bool(0), args.Error(1)
}

func (m *MockGenerationRepository) ListByUser(ctx context.Context, userID string, filter entity.HistoryFilter, page entity.PageRequest) ([]*entity.Generation, int64, error) {
	args := m.Called(ctx, userID, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Generation), args.Get(1).(int64), args.Error(2)
}

func (m *MockGenerationRepository) ListPublic(ctx context.Context, inputType entity.InputType, page entity.PageRequest) ([]*entity.Generation, int64, error) {
	args := m.Called(ctx, inputType, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Generation), args.Get(1).(int64), args.Error(2)
}

func (m *MockGenerationRepository) DeleteByUser(ctx context.Context, userID string, ids []uint64) (int64, error) {
	args := m.Called(ctx, userID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGenerationRepository) CountByStatus(ctx context.Context, userID string) (*entity.GenerationStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GenerationStats), args.Error(1)
}

func (m *MockGenerationRepository) ListProcessing(ctx context.Context, createdBefore time.Time, limit int) ([]*entity.Generation, error) {
	args := m.Called(ctx, createdBefore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Generation), args.Error(1)
}

func (m *MockGenerationRepository) IncrementDownloads(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGenerationRepository) IncrementViews(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
