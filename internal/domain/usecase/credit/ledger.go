package credit

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
)

// Ledger writes credit movements through repositories bound to the caller's
// transaction
type Ledger struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewLedger creates a new ledger
func NewLedger(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider, logger coreport.Logger) *Ledger {
	return &Ledger{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Debit implements usecase.CreditLedger. ctx must carry an open transaction.
func (l *Ledger) Debit(ctx context.Context, req usecase.ChargeRequest) (*usecase.ChargeResult, error) {
	if req.Amount <= 0 {
		return nil, errs.NewValidationError("Charge amount must be positive")
	}

	accounts := l.uow.GetCreditAccountRepository(ctx)
	account, err := accounts.GetByUserIDForUpdate(ctx, req.UserID)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.NewInsufficientCreditError(req.UserID, req.Amount, 0)
		}
		return nil, err
	}

	if err := account.Debit(req.Amount, l.timeProvider); err != nil {
		l.logger.Warn("Charge rejected", map[string]any{
			"user_id":   req.UserID,
			"amount":    req.Amount,
			"available": account.Credit(),
		})
		return nil, err
	}

	if err := accounts.UpdateCredit(ctx, account); err != nil {
		return nil, err
	}

	now := l.timeProvider.Now()
	billing := &entity.Billing{
		UserID:      req.UserID,
		State:       entity.BillingStateDone,
		Amount:      -req.Amount,
		Type:        entity.BillingTypeWithdraw,
		PolaroidID:  req.PolaroidID,
		Description: req.Description,
		CreatedAt:   now,
	}
	if err := l.uow.GetBillingRepository(ctx).Create(ctx, billing); err != nil {
		return nil, err
	}

	transaction := &entity.CreditTransaction{
		UserID:    req.UserID,
		Credit:    -req.Amount,
		Balance:   account.Credit(),
		BillingID: billing.ID,
		Type:      entity.CreditTransactionGenerate,
		CreatedAt: now,
	}
	if err := l.uow.GetCreditTransactionRepository(ctx).Create(ctx, transaction); err != nil {
		return nil, err
	}

	l.logger.Debug("Credit debited", map[string]any{
		"user_id":     req.UserID,
		"amount":      req.Amount,
		"balance":     account.Credit(),
		"billing_id":  billing.ID,
		"polaroid_id": req.PolaroidID,
	})

	return &usecase.ChargeResult{
		Account:     account,
		Billing:     billing,
		Transaction: transaction,
	}, nil
}
