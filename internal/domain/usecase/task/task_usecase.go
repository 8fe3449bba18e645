package task

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
)

// TimedOutReason is stored on records that did not settle in time
const TimedOutReason = "generation timed out"

const defaultBatchSize = 100

// Options tunes reconciliation
type Options struct {
	// StaleAfter is how long a record may stay processing
	StaleAfter time.Duration
	// BatchSize caps the records examined per sweep
	BatchSize int
}

// TaskUseCase implements usecase.TaskUseCase
type TaskUseCase struct {
	uow          persistence.UnitOfWork
	generator    gateway.ImageGenerator
	settler      usecase.SettlementService
	codec        coreport.IDCodec
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	options      Options
}

// NewTaskUseCase creates a new task use case
func NewTaskUseCase(
	uow persistence.UnitOfWork,
	generator gateway.ImageGenerator,
	settler usecase.SettlementService,
	codec coreport.IDCodec,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	options Options,
) *TaskUseCase {
	if options.BatchSize <= 0 {
		options.BatchSize = defaultBatchSize
	}
	return &TaskUseCase{
		uow:          uow,
		generator:    generator,
		settler:      settler,
		codec:        codec,
		timeProvider: timeProvider,
		logger:       logger,
		options:      options,
	}
}

// Query returns the caller's generation. Records still running at the vendor
// are refreshed and settled before they are returned.
func (u *TaskUseCase) Query(ctx context.Context, principal *entity.Principal, publicID string) (*entity.Generation, error) {
	if principal == nil || principal.UserID == "" {
		return nil, errs.ErrAuthRequired
	}

	id, ok := u.codec.Decode(publicID)
	if !ok {
		return nil, errs.ErrGenerationNotFound
	}

	generation, err := u.uow.GetGenerationRepository(ctx).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !generation.OwnedBy(principal.UserID) {
		u.logger.Warn("Task query for another user's record", map[string]any{
			"generation_id": id,
			"user_id":       principal.UserID,
		})
		return nil, errs.ErrGenerationNotFound
	}

	return u.refresh(ctx, generation)
}

// Reconcile refreshes records with a vendor task and fails records that
// stayed processing past StaleAfter, with or without a vendor task
func (u *TaskUseCase) Reconcile(ctx context.Context) (*usecase.ReconcileReport, error) {
	now := u.timeProvider.Now()
	pending, err := u.uow.GetGenerationRepository(ctx).ListProcessing(ctx, now, u.options.BatchSize)
	if err != nil {
		return nil, err
	}

	report := &usecase.ReconcileReport{}
	staleBefore := now.Add(-u.options.StaleAfter)

	for _, generation := range pending {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		report.Checked++

		if generation.VendorTaskID != "" {
			refreshed, err := u.refresh(ctx, generation)
			if err != nil {
				u.logger.Error("Failed to reconcile generation", map[string]any{
					"generation_id": generation.ID,
					"error":         err.Error(),
				})
				continue
			}
			switch refreshed.TaskStatus {
			case entity.TaskStatusCompleted:
				report.Completed++
				continue
			case entity.TaskStatusFailed:
				report.Failed++
				continue
			}
		}

		if !generation.CreatedAt.Before(staleBefore) {
			continue
		}
		if _, err := u.settler.Fail(ctx, generation, TimedOutReason); err != nil {
			u.logger.Error("Failed to time out generation", map[string]any{
				"generation_id": generation.ID,
				"error":         err.Error(),
			})
			continue
		}
		u.logger.Warn("Generation timed out", map[string]any{
			"generation_id":  generation.ID,
			"vendor_task_id": generation.VendorTaskID,
		})
		report.TimedOut++
	}

	if report.Checked > 0 {
		u.logger.Info("Reconciliation finished", map[string]any{
			"checked":   report.Checked,
			"completed": report.Completed,
			"failed":    report.Failed,
			"timed_out": report.TimedOut,
		})
	}
	return report, nil
}

// refresh fetches the vendor state of a processing record and settles it
func (u *TaskUseCase) refresh(ctx context.Context, generation *entity.Generation) (*entity.Generation, error) {
	if generation.IsSettled() || generation.VendorTaskID == "" {
		return generation, nil
	}

	result, err := u.generator.Fetch(ctx, generation.VendorTaskID)
	if err != nil {
		u.logger.Warn("Vendor status check failed", map[string]any{
			"generation_id":  generation.ID,
			"vendor_task_id": generation.VendorTaskID,
			"error":          err.Error(),
		})
		return generation, nil
	}

	switch result.Status {
	case gateway.VendorStatusSucceeded:
		if result.ImageURL == "" {
			return u.settler.Fail(ctx, generation, entity.NoImageReason)
		}
		settled, err := u.settler.Settle(ctx, generation, result, 0)
		if err != nil {
			if errs.IsInsufficientCreditError(err) {
				return u.uow.GetGenerationRepository(ctx).GetByID(ctx, generation.ID)
			}
			return nil, err
		}
		return settled, nil

	case gateway.VendorStatusFailed:
		reason := result.FailureReason
		if reason == "" {
			reason = "Generation failed"
		}
		return u.settler.Fail(ctx, generation, reason)

	default:
		return generation, nil
	}
}
