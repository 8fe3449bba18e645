package engagement

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/usecase/txutil"
)

// EngagementUseCase implements usecase.EngagementUseCase
type EngagementUseCase struct {
	uow          persistence.UnitOfWork
	codec        coreport.IDCodec
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewEngagementUseCase creates a new engagement use case
func NewEngagementUseCase(
	uow persistence.UnitOfWork,
	codec coreport.IDCodec,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *EngagementUseCase {
	return &EngagementUseCase{
		uow:          uow,
		codec:        codec,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// RecordDownload bumps the download counter and logs the download
func (u *EngagementUseCase) RecordDownload(
	ctx context.Context,
	principal *entity.Principal,
	input usecase.DownloadInput,
) (*entity.DownloadRecord, error) {
	if principal == nil || principal.UserID == "" {
		return nil, errs.ErrAuthRequired
	}
	if input.DownloadType == "" {
		input.DownloadType = entity.DownloadTypeOriginal
	}
	if !input.DownloadType.Valid() {
		return nil, errs.NewValidationError("Invalid download type", errs.FieldViolation{Field: "download_type", Rule: "oneof"})
	}

	id, ok := u.codec.Decode(input.PublicID)
	if !ok {
		return nil, errs.ErrGenerationNotFound
	}

	record := &entity.DownloadRecord{
		PolaroidID:   id,
		UserID:       principal.UserID,
		DownloadType: input.DownloadType,
		UserAgent:    input.UserAgent,
		IPAddress:    input.IPAddress,
		CreatedAt:    u.timeProvider.Now(),
	}

	err := txutil.Run(ctx, u.uow, u.logger, func(txCtx context.Context) error {
		generations := u.uow.GetGenerationRepository(txCtx)
		generation, err := generations.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !generation.VisibleTo(principal.UserID) {
			return errs.ErrGenerationNotFound
		}
		if generation.TaskStatus != entity.TaskStatusCompleted {
			return errs.NewBusinessError("Image is not ready for download", "")
		}

		if err := generations.IncrementDownloads(txCtx, id); err != nil {
			return err
		}
		return u.uow.GetEngagementRepository(txCtx).CreateDownload(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	u.logger.Debug("Download recorded", map[string]any{
		"polaroid_id":   id,
		"user_id":       principal.UserID,
		"download_type": input.DownloadType,
	})
	return record, nil
}

// RecordView bumps the view counter and logs the view
func (u *EngagementUseCase) RecordView(
	ctx context.Context,
	principal *entity.Principal,
	input usecase.ViewInput,
) (*entity.ViewRecord, error) {
	if principal == nil || principal.UserID == "" {
		return nil, errs.ErrAuthRequired
	}
	if input.ViewDuration != nil && *input.ViewDuration < 0 {
		return nil, errs.NewValidationError("View duration cannot be negative", errs.FieldViolation{Field: "view_duration", Rule: "min"})
	}

	id, ok := u.codec.Decode(input.PublicID)
	if !ok {
		return nil, errs.ErrGenerationNotFound
	}

	record := &entity.ViewRecord{
		PolaroidID:   id,
		UserID:       principal.UserID,
		ViewDuration: input.ViewDuration,
		Referrer:     input.Referrer,
		CreatedAt:    u.timeProvider.Now(),
	}

	err := txutil.Run(ctx, u.uow, u.logger, func(txCtx context.Context) error {
		generations := u.uow.GetGenerationRepository(txCtx)
		generation, err := generations.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !generation.VisibleTo(principal.UserID) {
			return errs.ErrGenerationNotFound
		}

		if err := generations.IncrementViews(txCtx, id); err != nil {
			return err
		}
		return u.uow.GetEngagementRepository(txCtx).CreateView(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}
