package usecase

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockEngagementUseCase is a mock implementation of usecase.EngagementUseCase
type MockEngagementUseCase struct {
	mock.Mock
}

// NewMockEngagementUseCase creates a MockEngagementUseCase that asserts its expectations on cleanup
func NewMockEngagementUseCase(t *testing.T) *MockEngagementUseCase {
	m := new(MockEngagementUseCase)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEngagementUseCase) RecordDownload(ctx context.Context, principal *entity.Principal, input usecase.DownloadInput) (*entity.DownloadRecord, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DownloadRecord), args.Error(1)
}

func (m *MockEngagementUseCase) RecordView(ctx context.Context, principal *entity.Principal, input usecase.ViewInput) (*entity.ViewRecord, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ViewRecord), args.Error(1)
}

// MockCatalogUseCase is a mock implementation of usecase.CatalogUseCase
type MockCatalogUseCase struct {
	mock.Mock
}

// NewMockCatalogUseCase creates a MockCatalogUseCase that asserts its expectations on cleanup
func NewMockCatalogUseCase(t *testing.T) *MockCatalogUseCase {
	m := new(MockCatalogUseCase)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCatalogUseCase) ListChargeProducts(ctx context.Context, locale string) ([]*entity.ChargeProduct, error) {
	args := m.Called(ctx, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ChargeProduct), args.Error(1)
}

func (m *MockCatalogUseCase) Activity(ctx context.Context) (*string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}
