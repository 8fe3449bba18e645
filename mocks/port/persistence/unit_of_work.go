package persistence

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a mock implementation of persistence.UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

// NewMockUnitOfWork creates a MockUnitOfWork that asserts its expectations on cleanup
func NewMockUnitOfWork(t *testing.T) *MockUnitOfWork {
	m := new(MockUnitOfWork)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) GetGenerationRepository(ctx context.Context) persistence.GenerationRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.GenerationRepository)
}

func (m *MockUnitOfWork) GetCreditAccountRepository(ctx context.Context) persistence.CreditAccountRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.CreditAccountRepository)
}

func (m *MockUnitOfWork) GetBillingRepository(ctx context.Context) persistence.BillingRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.BillingRepository)
}

func (m *MockUnitOfWork) GetCreditTransactionRepository(ctx context.Context) persistence.CreditTransactionRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.CreditTransactionRepository)
}

func (m *MockUnitOfWork) GetGiftCodeRepository(ctx context.Context) persistence.GiftCodeRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.GiftCodeRepository)
}

func (m *MockUnitOfWork) GetChargeOrderRepository(ctx context.Context) persistence.ChargeOrderRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.ChargeOrderRepository)
}

func (m *MockUnitOfWork) GetMediaRepository(ctx context.Context) persistence.MediaRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.MediaRepository)
}

func (m *MockUnitOfWork) GetEngagementRepository(ctx context.Context) persistence.EngagementRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.EngagementRepository)
}
