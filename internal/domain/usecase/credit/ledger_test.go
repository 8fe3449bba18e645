package credit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	mcore "github.com/amirhossein-jamali/polaroid-studio/mocks/port/core"
	mpers "github.com/amirhossein-jamali/polaroid-studio/mocks/port/persistence"
)

type ledgerFixture struct {
	uow          *mpers.MockUnitOfWork
	accounts     *mpers.MockCreditAccountRepository
	billings     *mpers.MockBillingRepository
	transactions *mpers.MockCreditTransactionRepository
	ledger       *Ledger
}

func newLedgerFixture(t *testing.T, now time.Time) *ledgerFixture {
	f := &ledgerFixture{
		uow:          mpers.NewMockUnitOfWork(t),
		accounts:     mpers.NewMockCreditAccountRepository(t),
		billings:     mpers.NewMockBillingRepository(t),
		transactions: mpers.NewMockCreditTransactionRepository(t),
	}
	f.uow.On("GetCreditAccountRepository", mock.Anything).Return(f.accounts).Maybe()
	f.uow.On("GetBillingRepository", mock.Anything).Return(f.billings).Maybe()
	f.uow.On("GetCreditTransactionRepository", mock.Anything).Return(f.transactions).Maybe()
	f.ledger = NewLedger(f.uow, mcore.NewFixedTimeProvider(t, now), mcore.NewPermissiveMockLogger(t))
	return f
}

func TestLedger_Debit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	req := usecase.ChargeRequest{
		UserID:      "user-1",
		Amount:      5,
		PolaroidID:  42,
		Description: "Polaroid text generation - classic_polaroid",
	}

	t.Run("should write billing and transaction rows", func(t *testing.T) {
		// Arrange
		f := newLedgerFixture(t, now)
		account := entity.RestoreCreditAccount(1, "user-1", 100, now, now)
		f.accounts.On("GetByUserIDForUpdate", ctx, "user-1").Return(account, nil)
		f.accounts.On("UpdateCredit", ctx, account).Return(nil)
		f.billings.On("Create", ctx, mock.AnythingOfType("*entity.Billing")).
			Run(func(args mock.Arguments) { args.Get(1).(*entity.Billing).ID = 7 }).
			Return(nil)
		f.transactions.On("Create", ctx, mock.AnythingOfType("*entity.CreditTransaction")).Return(nil)

		// Act
		result, err := f.ledger.Debit(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(95), result.Account.Credit())

		assert.Equal(t, int64(-5), result.Billing.Amount)
		assert.Equal(t, entity.BillingStateDone, result.Billing.State)
		assert.Equal(t, entity.BillingTypeWithdraw, result.Billing.Type)
		assert.Equal(t, uint64(42), result.Billing.PolaroidID)
		assert.Equal(t, req.Description, result.Billing.Description)

		assert.Equal(t, int64(-5), result.Transaction.Credit)
		assert.Equal(t, int64(95), result.Transaction.Balance)
		assert.Equal(t, uint64(7), result.Transaction.BillingID)
		assert.Equal(t, entity.CreditTransactionGenerate, result.Transaction.Type)
		assert.Equal(t, now, result.Transaction.CreatedAt)
	})

	t.Run("should reject insufficient credit without writes", func(t *testing.T) {
		f := newLedgerFixture(t, now)
		account := entity.RestoreCreditAccount(1, "user-1", 3, now, now)
		f.accounts.On("GetByUserIDForUpdate", ctx, "user-1").Return(account, nil)

		result, err := f.ledger.Debit(ctx, req)

		assert.Nil(t, result)
		assert.True(t, errs.IsInsufficientCreditError(err))
		assert.Equal(t, errs.CodeInsufficientCredit, errs.ErrorCode(err))
		assert.Equal(t, int64(3), account.Credit())
		f.accounts.AssertNotCalled(t, "UpdateCredit", mock.Anything, mock.Anything)
		f.billings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should treat a missing account as empty", func(t *testing.T) {
		f := newLedgerFixture(t, now)
		f.accounts.On("GetByUserIDForUpdate", ctx, "user-1").Return(nil, errs.ErrAccountNotFound)

		_, err := f.ledger.Debit(ctx, req)

		var creditErr *errs.InsufficientCreditError
		require.True(t, errors.As(err, &creditErr))
		assert.Equal(t, int64(0), creditErr.Available)
		assert.Equal(t, int64(5), creditErr.Required)
	})

	t.Run("should propagate repository failures", func(t *testing.T) {
		f := newLedgerFixture(t, now)
		account := entity.RestoreCreditAccount(1, "user-1", 100, now, now)
		dbErr := errors.New("connection reset")
		f.accounts.On("GetByUserIDForUpdate", ctx, "user-1").Return(account, nil)
		f.accounts.On("UpdateCredit", ctx, account).Return(nil)
		f.billings.On("Create", ctx, mock.Anything).Return(dbErr)

		_, err := f.ledger.Debit(ctx, req)

		assert.Equal(t, dbErr, err)
		f.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should reject non-positive amounts", func(t *testing.T) {
		f := newLedgerFixture(t, now)

		_, err := f.ledger.Debit(ctx, usecase.ChargeRequest{UserID: "user-1", Amount: 0})

		assert.True(t, errs.IsValidationError(err))
	})
}
