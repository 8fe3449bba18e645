package persistence

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockGiftCodeRepository is a mock implementation of persistence.GiftCodeRepository
type MockGiftCodeRepository struct {
	mock.Mock
}

// NewMockGiftCodeRepository creates a MockGiftCodeRepository that asserts its expectations on cleanup
func NewMockGiftCodeRepository(t *testing.T) *MockGiftCodeRepository {
	m := new(MockGiftCodeRepository)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockGiftCodeRepository) GetByCodeForUpdate(ctx context.Context, code string) (*entity.GiftCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GiftCode), args.Error(1)
}

func (m *MockGiftCodeRepository) MarkUsed(ctx context.Context, giftCode *entity.GiftCode) error {
	args := m.Called(ctx, giftCode)
	return args.Error(0)
}

func (m *MockGiftCodeRepository) Create(ctx context.Context, giftCode *entity.GiftCode) error {
	args := m.Called(ctx, giftCode)
	return args.Error(0)
}

// MockChargeProductRepository is a mock implementation of persistence.ChargeProductRepository
type MockChargeProductRepository struct {
	mock.Mock
}

// NewMockChargeProductRepository creates a MockChargeProductRepository that asserts its expectations on cleanup
func NewMockChargeProductRepository(t *testing.T) *MockChargeProductRepository {
	m := new(MockChargeProductRepository)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockChargeProductRepository) ListByLocale(ctx context.Context, locale string) ([]*entity.ChargeProduct, error) {
	args := m.Called(ctx, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ChargeProduct), args.Error(1)
}

func (m *MockChargeProductRepository) Create(ctx context.Context, product *entity.ChargeProduct) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockChargeOrderRepository is a mock implementation of persistence.ChargeOrderRepository
type MockChargeOrderRepository struct {
	mock.Mock
}

// NewMockChargeOrderRepository creates a MockChargeOrderRepository that asserts its expectations on cleanup
func NewMockChargeOrderRepository(t *testing.T) *MockChargeOrderRepository {
	m := new(MockChargeOrderRepository)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockChargeOrderRepository) Create(ctx context.Context, order *entity.ChargeOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockMediaRepository is a mock implementation of persistence.MediaRepository
type MockMediaRepository struct {
	mock.Mock
}

// NewMockMediaRepository creates a MockMediaRepository that asserts its expectations on cleanup
func NewMockMediaRepository(t *testing.T) *MockMediaRepository {
	m := new(MockMediaRepository)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMediaRepository) GetByMD5(ctx context.Context, md5 string) (*entity.Media, error) {
	args := m.Called(ctx, md5)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Media), args.Error(1)
}

func (m *MockMediaRepository) Create(ctx context.Context, media *entity.Media) error {
	args := m.Called(ctx, media)
	return args.Error(0)
}

// MockEngagementRepository is a mock implementation of persistence.EngagementRepository
type MockEngagementRepository struct {
	mock.Mock
}

// NewMockEngagementRepository creates a MockEngagementRepository that asserts its expectations on cleanup
func NewMockEngagementRepository(t *testing.T) *MockEngagementRepository {
	m := new(MockEngagementRepository)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEngagementRepository) CreateDownload(ctx context.Context, record *entity.DownloadRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockEngagementRepository) CreateView(ctx context.Context, record *entity.ViewRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
