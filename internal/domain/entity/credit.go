package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
)

// CreditAccount holds the consumable credit balance of one user
type CreditAccount struct {
	ID        uint64
	UserID    string
	credit    int64 // never negative (private)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCreditAccount creates an account with an opening balance
func NewCreditAccount(userID string, openingCredit int64, timeProvider coreport.TimeProvider) (*CreditAccount, error) {
	if userID == "" {
		return nil, errs.ErrAuthRequired
	}
	if openingCredit < 0 {
		return nil, errs.NewValidationError("Opening credit cannot be negative")
	}

	now := timeProvider.Now()
	return &CreditAccount{
		UserID:    userID,
		credit:    openingCredit,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// RestoreCreditAccount rebuilds an account from stored values
func RestoreCreditAccount(id uint64, userID string, credit int64, createdAt, updatedAt time.Time) *CreditAccount {
	return &CreditAccount{
		ID:        id,
		UserID:    userID,
		credit:    credit,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Credit returns the current balance
func (a *CreditAccount) Credit() int64 {
	return a.credit
}

// CanAfford checks if the balance covers the amount
func (a *CreditAccount) CanAfford(amount int64) bool {
	return amount >= 0 && a.credit >= amount
}

// Debit subtracts the amount if the balance covers it
func (a *CreditAccount) Debit(amount int64, timeProvider coreport.TimeProvider) error {
	if amount <= 0 {
		return errs.NewValidationError("Charge amount must be positive")
	}
	if !a.CanAfford(amount) {
		return errs.NewInsufficientCreditError(a.UserID, amount, a.credit)
	}

	a.credit -= amount
	a.UpdatedAt = timeProvider.Now()
	return nil
}

// Deposit adds the amount to the balance
func (a *CreditAccount) Deposit(amount int64, timeProvider coreport.TimeProvider) error {
	if amount <= 0 {
		return errs.NewValidationError("Deposit amount must be positive")
	}

	a.credit += amount
	a.UpdatedAt = timeProvider.Now()
	return nil
}

// BillingState is the settlement state of a billing row
type BillingState string

const BillingStateDone BillingState = "Done"

// BillingType distinguishes charges from refunds
type BillingType string

const (
	BillingTypeWithdraw BillingType = "Withdraw"
	BillingTypeRefund   BillingType = "Refund"
)

// Billing is a user-facing audit row of a credit movement
type Billing struct {
	ID          uint64
	UserID      string
	State       BillingState
	Amount      int64 // signed
	Type        BillingType
	PolaroidID  uint64 // zero when not tied to a generation
	Description string
	CreatedAt   time.Time
}

// CreditTransactionType is the reason of a balance change
type CreditTransactionType string

const (
	CreditTransactionGenerate CreditTransactionType = "Generate"
	CreditTransactionGrant    CreditTransactionType = "Grant"
	CreditTransactionGiftCode CreditTransactionType = "GiftCode"
)

// CreditTransaction records a signed balance change and the balance after it
type CreditTransaction struct {
	ID        uint64
	UserID    string
	Credit    int64
	Balance   int64
	BillingID uint64 // zero when no billing row exists
	Type      CreditTransactionType
	CreatedAt time.Time
}
