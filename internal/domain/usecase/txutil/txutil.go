// Package txutil runs use case steps inside a unit of work
package txutil

import (
	"context"
	"fmt"

	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/persistence"
)

// Run begins a transaction, calls fn with the transactional context and
// commits when fn succeeds. Any error from fn rolls the transaction back and
// is returned unchanged.
func Run(ctx context.Context, uow persistence.UnitOfWork, logger coreport.Logger, fn func(txCtx context.Context) error) error {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(txCtx); err != nil {
		if rbErr := uow.Rollback(txCtx); rbErr != nil {
			logger.Error("Failed to rollback transaction", map[string]any{
				"error":          rbErr.Error(),
				"original_error": err.Error(),
			})
		}
		return err
	}

	if err := uow.Commit(txCtx); err != nil {
		if rbErr := uow.Rollback(txCtx); rbErr != nil {
			logger.Debug("Rollback after failed commit", map[string]any{
				"error": rbErr.Error(),
			})
		}
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
