package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating transaction operations
// across multiple repositories to maintain data consistency
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetGenerationRepository returns a generation repository bound to the current transaction
	GetGenerationRepository(ctx context.Context) GenerationRepository

	// GetCreditAccountRepository returns a credit account repository bound to the current transaction
	GetCreditAccountRepository(ctx context.Context) CreditAccountRepository

	// GetBillingRepository returns a billing repository bound to the current transaction
	GetBillingRepository(ctx context.Context) BillingRepository

	// GetCreditTransactionRepository returns a credit transaction repository bound to the current transaction
	GetCreditTransactionRepository(ctx context.Context) CreditTransactionRepository

	// GetGiftCodeRepository returns a gift code repository bound to the current transaction
	GetGiftCodeRepository(ctx context.Context) GiftCodeRepository

	// GetChargeOrderRepository returns a charge order repository bound to the current transaction
	GetChargeOrderRepository(ctx context.Context) ChargeOrderRepository

	// GetMediaRepository returns a media repository bound to the current transaction
	GetMediaRepository(ctx context.Context) MediaRepository

	// GetEngagementRepository returns an engagement repository bound to the current transaction
	GetEngagementRepository(ctx context.Context) EngagementRepository
}
