package usecase

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockCreditLedger is a mock implementation of usecase.CreditLedger
type MockCreditLedger struct {
	mock.Mock
}

// NewMockCreditLedger creates a MockCreditLedger that asserts its expectations on cleanup
func NewMockCreditLedger(t *testing.T) *MockCreditLedger {
	m := new(MockCreditLedger)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCreditLedger) Debit(ctx context.Context, req usecase.ChargeRequest) (*usecase.ChargeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ChargeResult), args.Error(1)
}

// MockCreditUseCase is a mock implementation of usecase.CreditUseCase
type MockCreditUseCase struct {
	mock.Mock
}

// NewMockCreditUseCase creates a MockCreditUseCase that asserts its expectations on cleanup
func NewMockCreditUseCase(t *testing.T) *MockCreditUseCase {
	m := new(MockCreditUseCase)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCreditUseCase) GetOrCreateAccount(ctx context.Context, principal *entity.Principal) (*entity.CreditAccount, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreditAccount), args.Error(1)
}

func (m *MockCreditUseCase) Charge(ctx context.Context, req usecase.ChargeRequest) (*usecase.ChargeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ChargeResult), args.Error(1)
}

func (m *MockCreditUseCase) ListBillings(ctx context.Context, userID string, page entity.PageRequest) (*usecase.BillingPage, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BillingPage), args.Error(1)
}

func (m *MockCreditUseCase) RedeemGiftCode(ctx context.Context, principal *entity.Principal, code string) (*usecase.GiftCodeRedemption, error) {
	args := m.Called(ctx, principal, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.GiftCodeRedemption), args.Error(1)
}
