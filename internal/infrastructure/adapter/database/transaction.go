package database

import (
	"context"
	"fmt"
	"strings"

	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const txKey contextKey = "tx"

// UnitOfWork implements persistence.UnitOfWork with a context-carried GORM transaction
type UnitOfWork struct {
	db           *gorm.DB
	driver       string
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	errorMapper  *ErrorMapper
	metrics      *MetricsCollector
	retry        RetryConfig
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, driver string, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		driver:       driver,
		logger:       logger,
		timeProvider: timeProvider,
		errorMapper:  NewErrorMapper(),
		metrics:      NewMetricsCollector(logger, timeProvider),
		retry:        DefaultRetryConfig(),
	}
}

// Begin starts a transaction and returns a context that carries it. Row locks
// taken inside are held until Commit or Rollback, so READ COMMITTED is enough
// on postgres.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return ctx, fmt.Errorf("transaction already in progress")
	}

	var tx *gorm.DB
	err := RetryOnTransientError(ctx, u.retry, func() error {
		tx = u.db.WithContext(ctx).Begin()
		return tx.Error
	}, u.errorMapper, u.logger)
	if err != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": err.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if u.driver == DriverPostgres {
		if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL READ COMMITTED").Error; err != nil {
			tx.Rollback()
			u.logger.Error("Failed to set transaction isolation level", map[string]any{"error": err.Error()})
			return ctx, fmt.Errorf("failed to set transaction isolation level: %w", err)
		}
	}

	u.logger.Debug("Database transaction started", map[string]any{"driver": u.driver})
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the transaction carried by ctx
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	_, err := u.metrics.MeasureQuery(ctx, "commit", func() (int64, error) {
		return 0, tx.Commit().Error
	})
	if err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", u.errorMapper.MapError(err, "commit"))
	}

	u.logger.Debug("Database transaction committed", nil)
	return nil
}

// Rollback rolls back the transaction carried by ctx. Rolling back a finished
// transaction only logs a warning.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	err := tx.Rollback().Error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		u.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return nil
	}
	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.logger.Debug("Database transaction rolled back", nil)
	return nil
}

func (u *UnitOfWork) GetGenerationRepository(ctx context.Context) persistence.GenerationRepository {
	return repository.NewGenerationRepository(u.getDbFromContext(ctx), u.logger)
}

func (u *UnitOfWork) GetCreditAccountRepository(ctx context.Context) persistence.CreditAccountRepository {
	return repository.NewCreditAccountRepository(u.getDbFromContext(ctx), u.logger)
}

func (u *UnitOfWork) GetBillingRepository(ctx context.Context) persistence.BillingRepository {
	return repository.NewBillingRepository(u.getDbFromContext(ctx), u.logger)
}

func (u *UnitOfWork) GetCreditTransactionRepository(ctx context.Context) persistence.CreditTransactionRepository {
	return repository.NewCreditTransactionRepository(u.getDbFromContext(ctx), u.logger)
}

func (u *UnitOfWork) GetGiftCodeRepository(ctx context.Context) persistence.GiftCodeRepository {
	return repository.NewGiftCodeRepository(u.getDbFromContext(ctx), u.logger)
}

func (u *UnitOfWork) GetChargeOrderRepository(ctx context.Context) persistence.ChargeOrderRepository {
	return repository.NewChargeOrderRepository(u.getDbFromContext(ctx), u.logger)
}

func (u *UnitOfWork) GetMediaRepository(ctx context.Context) persistence.MediaRepository {
	return repository.NewMediaRepository(u.getDbFromContext(ctx), u.logger)
}

func (u *UnitOfWork) GetEngagementRepository(ctx context.Context) persistence.EngagementRepository {
	return repository.NewEngagementRepository(u.getDbFromContext(ctx), u.logger)
}

// getDbFromContext returns the transaction carried by ctx, or the pool
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
