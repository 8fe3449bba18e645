package persistence

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockCreditAccountRepository is a mock implementation of persistence.CreditAccountRepository
type MockCreditAccountRepository struct {
	mock.Mock
}

// NewMockCreditAccountRepository creates a MockCreditAccountRepository that asserts its expectations on cleanup
func NewMockCreditAccountRepository(t *testing.T) *MockCreditAccountRepository {
	m := new(MockCreditAccountRepository)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCreditAccountRepository) GetByUserID(ctx context.Context, userID string) (*entity.CreditAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreditAccount), args.Error(1)
}

func (m *MockCreditAccountRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*entity.CreditAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreditAccount), args.Error(1)
}

func (m *MockCreditAccountRepository) Create(ctx context.Context, account *entity.CreditAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockCreditAccountRepository) UpdateCredit(ctx context.Context, account *entity.CreditAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockBillingRepository is a mock implementation of persistence.BillingRepository
type MockBillingRepository struct {
	mock.Mock
}

// NewMockBillingRepository creates a MockBillingRepository that asserts its expectations on cleanup
func NewMockBillingRepository(t *testing.T) *MockBillingRepository {
	m := new(MockBillingRepository)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBillingRepository) Create(ctx context.Context, billing *entity.Billing) error {
	args := m.Called(ctx, billing)
	return args.Error(0)
}

func (m *MockBillingRepository) ListByUser(ctx context.Context, userID string, page entity.PageRequest) ([]*entity.Billing, int64, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Billing), args.Get(1).(int64), args.Error(2)
}

// MockCreditTransactionRepository is a mock implementation of persistence.CreditTransactionRepository
type MockCreditTransactionRepository struct {
	mock.Mock
}

// NewMockCreditTransactionRepository creates a MockCreditTransactionRepository that asserts its expectations on cleanup
func NewMockCreditTransactionRepository(t *testing.T) *MockCreditTransactionRepository {
	m := new(MockCreditTransactionRepository)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCreditTransactionRepository) Create(ctx context.Context, transaction *entity.CreditTransaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}
