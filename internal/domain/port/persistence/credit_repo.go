package persistence

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
)

// CreditAccountRepository persists user credit balances
type CreditAccountRepository interface {
	// GetByUserID retrieves the account of a user
	//
	// Possible errors:
	// - ErrAccountNotFound: If the user has no account yet
	// - ErrDatabaseConnection: If database connection fails
	GetByUserID(ctx context.Context, userID string) (*entity.CreditAccount, error)

	// GetByUserIDForUpdate retrieves the account and locks its row until the
	// surrounding transaction ends
	GetByUserIDForUpdate(ctx context.Context, userID string) (*entity.CreditAccount, error)

	// Create inserts a new account and sets its ID
	//
	// Possible errors:
	// - ErrConstraintViolation: If the user already has an account
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, account *entity.CreditAccount) error

	// UpdateCredit stores the current balance of the account
	UpdateCredit(ctx context.Context, account *entity.CreditAccount) error
}

// BillingRepository persists billing audit rows
type BillingRepository interface {
	// Create inserts a billing row and sets its ID
	Create(ctx context.Context, billing *entity.Billing) error

	// ListByUser returns one page of a user's billing rows, newest first
	ListByUser(ctx context.Context, userID string, page entity.PageRequest) ([]*entity.Billing, int64, error)
}

// CreditTransactionRepository persists balance change rows
type CreditTransactionRepository interface {
	// Create inserts a credit transaction and sets its ID
	Create(ctx context.Context, transaction *entity.CreditTransaction) error
}
