package usecase

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockGenerationUseCase is a mock implementation of usecase.GenerationUseCase
type MockGenerationUseCase struct {
	mock.Mock
}

// NewMockGenerationUseCase creates a MockGenerationUseCase that asserts its expectations on cleanup
func NewMockGenerationUseCase(t *testing.T) *MockGenerationUseCase {
	m := new(MockGenerationUseCase)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockGenerationUseCase) Create(ctx context.Context, principal *entity.Principal, input usecase.CreateGenerationInput) (*usecase.GenerationOutcome, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.GenerationOutcome), args.Error(1)
}

func (m *MockGenerationUseCase) Quick(ctx context.Context, principal *entity.Principal, input usecase.QuickGenerationInput) (*usecase.QuickGenerationOutcome, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.QuickGenerationOutcome), args.Error(1)
}

// MockSettlementService is a mock implementation of usecase.SettlementService
type MockSettlementService struct {
	mock.Mock
}

// NewMockSettlementService creates a MockSettlementService that asserts its expectations on cleanup
func NewMockSettlementService(t *testing.T) *MockSettlementService {
	m := new(MockSettlementService)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSettlementService) Settle(ctx context.Context, generation *entity.Generation, result *gateway.GenerationResult, processingTime int64) (*entity.Generation, error) {
	args := m.Called(ctx, generation, result, processingTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Generation), args.Error(1)
}

func (m *MockSettlementService) Fail(ctx context.Context, generation *entity.Generation, reason string) (*entity.Generation, error) {
	args := m.Called(ctx, generation, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Generation), args.Error(1)
}
