package credit

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/usecase/txutil"
)

// Options tunes account behavior
type Options struct {
	// GuestInitialCredits is the opening balance of guest accounts
	GuestInitialCredits int64
	Features            entity.FeatureFlags
}

// CreditUseCase implements usecase.CreditUseCase
type CreditUseCase struct {
	uow          persistence.UnitOfWork
	ledger       usecase.CreditLedger
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder
	options      Options
}

// NewCreditUseCase creates a new credit use case
func NewCreditUseCase(
	uow persistence.UnitOfWork,
	ledger usecase.CreditLedger,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
	options Options,
) *CreditUseCase {
	return &CreditUseCase{
		uow:          uow,
		ledger:       ledger,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		options:      options,
	}
}

// GetOrCreateAccount returns the caller's account, opening it on first use
func (u *CreditUseCase) GetOrCreateAccount(ctx context.Context, principal *entity.Principal) (*entity.CreditAccount, error) {
	if principal == nil || principal.UserID == "" {
		return nil, errs.ErrAuthRequired
	}

	accounts := u.uow.GetCreditAccountRepository(ctx)
	account, err := accounts.GetByUserID(ctx, principal.UserID)
	if err == nil {
		return account, nil
	}
	if !errs.IsNotFoundError(err) {
		return nil, err
	}

	var opening int64
	if principal.Guest {
		opening = u.options.GuestInitialCredits
	}

	account, err = entity.NewCreditAccount(principal.UserID, opening, u.timeProvider)
	if err != nil {
		return nil, err
	}

	err = txutil.Run(ctx, u.uow, u.logger, func(txCtx context.Context) error {
		if err := u.uow.GetCreditAccountRepository(txCtx).Create(txCtx, account); err != nil {
			return err
		}
		if opening == 0 {
			return nil
		}
		return u.uow.GetCreditTransactionRepository(txCtx).Create(txCtx, &entity.CreditTransaction{
			UserID:    principal.UserID,
			Credit:    opening,
			Balance:   opening,
			Type:      entity.CreditTransactionGrant,
			CreatedAt: account.CreatedAt,
		})
	})
	if err != nil {
		// A concurrent request opened the account first
		if errors.Is(err, errs.ErrConstraintViolation) {
			return accounts.GetByUserID(ctx, principal.UserID)
		}
		return nil, err
	}

	u.logger.Info("Credit account opened", map[string]any{
		"user_id": principal.UserID,
		"guest":   principal.Guest,
		"credit":  opening,
	})
	return account, nil
}

// Charge deducts credit in its own transaction
func (u *CreditUseCase) Charge(ctx context.Context, req usecase.ChargeRequest) (*usecase.ChargeResult, error) {
	var result *usecase.ChargeResult
	err := txutil.Run(ctx, u.uow, u.logger, func(txCtx context.Context) error {
		var err error
		result, err = u.ledger.Debit(txCtx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.metrics.RecordCreditCharge(req.Amount)
	u.logger.Info("Credit charged", map[string]any{
		"user_id": req.UserID,
		"amount":  req.Amount,
		"balance": result.Account.Credit(),
	})
	return result, nil
}

// ListBillings returns one page of the user's billing history
func (u *CreditUseCase) ListBillings(ctx context.Context, userID string, page entity.PageRequest) (*usecase.BillingPage, error) {
	if !u.options.Features.Enabled(entity.FeatureOrderHistory) {
		return nil, errs.ErrFeatureDisabled
	}

	page = page.Normalize()
	records, total, err := u.uow.GetBillingRepository(ctx).ListByUser(ctx, userID, page)
	if err != nil {
		return nil, err
	}

	return &usecase.BillingPage{
		Records:    records,
		Pagination: entity.NewPageInfo(page, total),
	}, nil
}

// RedeemGiftCode credits the caller's account with an unused gift code
func (u *CreditUseCase) RedeemGiftCode(ctx context.Context, principal *entity.Principal, code string) (*usecase.GiftCodeRedemption, error) {
	if !u.options.Features.Enabled(entity.FeatureGiftCode) {
		return nil, errs.ErrFeatureDisabled
	}

	normalized := entity.NormalizeGiftCode(code)
	if normalized == "" {
		return nil, errs.NewValidationError("Gift code is required", errs.FieldViolation{Field: "code", Rule: "required"})
	}

	if _, err := u.GetOrCreateAccount(ctx, principal); err != nil {
		return nil, err
	}

	var redemption *usecase.GiftCodeRedemption
	err := txutil.Run(ctx, u.uow, u.logger, func(txCtx context.Context) error {
		now := u.timeProvider.Now()

		giftCodes := u.uow.GetGiftCodeRepository(txCtx)
		giftCode, err := giftCodes.GetByCodeForUpdate(txCtx, normalized)
		if err != nil {
			return err
		}
		if err := giftCode.Redeemable(now); err != nil {
			return err
		}

		accounts := u.uow.GetCreditAccountRepository(txCtx)
		account, err := accounts.GetByUserIDForUpdate(txCtx, principal.UserID)
		if err != nil {
			return err
		}
		if err := account.Deposit(giftCode.CreditAmount, u.timeProvider); err != nil {
			return err
		}
		if err := accounts.UpdateCredit(txCtx, account); err != nil {
			return err
		}

		paidAt := now
		order := &entity.ChargeOrder{
			UserID:    principal.UserID,
			UserInfo:  map[string]any{"email": principal.Email, "name": principal.Name},
			Credit:    giftCode.CreditAmount,
			Phase:     entity.OrderPhasePaid,
			Channel:   entity.PaymentChannelGiftCode,
			Currency:  entity.CurrencyUSD,
			PaymentAt: &paidAt,
			Result:    map[string]any{"gift_code": giftCode.Code},
			CreatedAt: now,
		}
		if err := u.uow.GetChargeOrderRepository(txCtx).Create(txCtx, order); err != nil {
			return err
		}

		transaction := &entity.CreditTransaction{
			UserID:    principal.UserID,
			Credit:    giftCode.CreditAmount,
			Balance:   account.Credit(),
			Type:      entity.CreditTransactionGiftCode,
			CreatedAt: now,
		}
		if err := u.uow.GetCreditTransactionRepository(txCtx).Create(txCtx, transaction); err != nil {
			return err
		}

		if err := giftCode.Redeem(principal.UserID, transaction.ID, now); err != nil {
			return err
		}
		if err := giftCodes.MarkUsed(txCtx, giftCode); err != nil {
			return err
		}

		redemption = &usecase.GiftCodeRedemption{
			Account:     account,
			Order:       order,
			Transaction: transaction,
			Credited:    giftCode.CreditAmount,
		}
		return nil
	})
	if err != nil {
		u.logger.Warn("Gift code redemption failed", map[string]any{
			"user_id": principal.UserID,
			"code":    normalized,
			"error":   err.Error(),
		})
		return nil, err
	}

	u.logger.Info("Gift code redeemed", map[string]any{
		"user_id": principal.UserID,
		"code":    normalized,
		"credit":  redemption.Credited,
		"balance": redemption.Account.Credit(),
	})
	return redemption, nil
}
