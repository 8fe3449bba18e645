package generation

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/usecase/txutil"
)

// insufficientCreditReason is stored on records whose charge could not be paid
const insufficientCreditReason = "Insufficient credit"

// Settler implements usecase.SettlementService
type Settler struct {
	uow          persistence.UnitOfWork
	ledger       usecase.CreditLedger
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder
}

// NewSettler creates a new settler
func NewSettler(
	uow persistence.UnitOfWork,
	ledger usecase.CreditLedger,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
) *Settler {
	return &Settler{
		uow:          uow,
		ledger:       ledger,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// BillingDescription describes the charge of a generation
func BillingDescription(generation *entity.Generation) string {
	return fmt.Sprintf("Polaroid %s generation - %s", generation.InputType, generation.StyleType)
}

// Settle flips the record to completed and charges its cost in one transaction.
// The flip only applies to processing rows, so a record is charged at most once.
// A result without an image fails the record instead and charges nothing.
func (s *Settler) Settle(
	ctx context.Context,
	generation *entity.Generation,
	result *gateway.GenerationResult,
	processingTime int64,
) (*entity.Generation, error) {
	if generation.IsSettled() {
		return generation, nil
	}
	if result.ImageURL == "" {
		s.logger.Warn("Vendor finished without an image", map[string]any{
			"generation_id":  generation.ID,
			"vendor_task_id": result.TaskID,
		})
		return s.Fail(ctx, generation, entity.NoImageReason)
	}

	completed := *generation
	if err := completed.Complete(entity.Completion{
		OutputImageURL:  result.ImageURL,
		ProcessingTime:  processingTime,
		GeminiRequestID: result.TaskID,
		GeminiResponse:  result.Raw,
	}, s.timeProvider.Now()); err != nil {
		return nil, err
	}

	alreadySettled := false
	err := txutil.Run(ctx, s.uow, s.logger, func(txCtx context.Context) error {
		changed, err := s.uow.GetGenerationRepository(txCtx).MarkCompleted(txCtx, &completed)
		if err != nil {
			return err
		}
		if !changed {
			alreadySettled = true
			return nil
		}

		_, err = s.ledger.Debit(txCtx, usecase.ChargeRequest{
			UserID:      completed.UserID,
			Amount:      completed.CreditCost,
			PolaroidID:  completed.ID,
			Description: BillingDescription(&completed),
		})
		return err
	})
	if err != nil {
		if errs.IsInsufficientCreditError(err) {
			s.logger.Warn("Generation succeeded but could not be paid", map[string]any{
				"generation_id": generation.ID,
				"user_id":       generation.UserID,
				"credit_cost":   generation.CreditCost,
			})
			if _, failErr := s.Fail(ctx, generation, insufficientCreditReason); failErr != nil {
				s.logger.Error("Failed to mark unpaid generation as failed", map[string]any{
					"generation_id": generation.ID,
					"error":         failErr.Error(),
				})
			}
		}
		return nil, err
	}

	if alreadySettled {
		s.logger.Debug("Generation already settled", map[string]any{
			"generation_id": generation.ID,
		})
		return s.uow.GetGenerationRepository(ctx).GetByID(ctx, generation.ID)
	}

	s.metrics.RecordCreditCharge(completed.CreditCost)
	s.logger.Info("Generation settled", map[string]any{
		"generation_id":   completed.ID,
		"user_id":         completed.UserID,
		"credit_cost":     completed.CreditCost,
		"processing_time": completed.ProcessingTime,
	})
	return &completed, nil
}

// Fail moves a processing record to failed
func (s *Settler) Fail(ctx context.Context, generation *entity.Generation, reason string) (*entity.Generation, error) {
	if generation.IsSettled() {
		return generation, nil
	}

	failed := *generation
	if err := failed.Fail(reason, s.timeProvider.Now()); err != nil {
		return nil, err
	}

	generations := s.uow.GetGenerationRepository(ctx)
	changed, err := generations.MarkFailed(ctx, &failed)
	if err != nil {
		return nil, err
	}
	if !changed {
		return generations.GetByID(ctx, generation.ID)
	}

	s.logger.Info("Generation failed", map[string]any{
		"generation_id": failed.ID,
		"user_id":       failed.UserID,
		"reason":        reason,
	})
	return &failed, nil
}
