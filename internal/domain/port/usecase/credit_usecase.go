package usecase

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
)

// ChargeRequest describes one credit deduction
type ChargeRequest struct {
	UserID      string
	Amount      int64
	PolaroidID  uint64
	Description string
}

// ChargeResult holds the rows written by a charge
type ChargeResult struct {
	Account     *entity.CreditAccount
	Billing     *entity.Billing
	Transaction *entity.CreditTransaction
}

// BillingPage is one page of billing history
type BillingPage struct {
	Records    []*entity.Billing
	Pagination entity.PageInfo
}

// GiftCodeRedemption is the outcome of a redeemed gift code
type GiftCodeRedemption struct {
	Account     *entity.CreditAccount
	Order       *entity.ChargeOrder
	Transaction *entity.CreditTransaction
	Credited    int64
}

// CreditLedger applies credit movements inside a transaction the caller owns
type CreditLedger interface {
	// Debit locks the account, checks the balance, decrements it and writes the
	// billing and credit transaction rows. It never begins or ends a transaction.
	Debit(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// CreditUseCase defines account and credit operations
type CreditUseCase interface {
	// GetOrCreateAccount returns the caller's account, opening it when missing
	GetOrCreateAccount(ctx context.Context, principal *entity.Principal) (*entity.CreditAccount, error)

	// Charge deducts credit in its own transaction
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)

	// ListBillings returns the caller's billing history
	ListBillings(ctx context.Context, userID string, page entity.PageRequest) (*BillingPage, error)

	// RedeemGiftCode credits the caller with a gift code
	RedeemGiftCode(ctx context.Context, principal *entity.Principal, code string) (*GiftCodeRedemption, error)
}
