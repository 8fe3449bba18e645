package history

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
)

// MaxDeleteIDs caps the ids accepted by one delete request
const MaxDeleteIDs = 100

// HistoryUseCase implements usecase.HistoryUseCase
type HistoryUseCase struct {
	uow    persistence.UnitOfWork
	codec  coreport.IDCodec
	logger coreport.Logger
}

// NewHistoryUseCase creates a new history use case
func NewHistoryUseCase(uow persistence.UnitOfWork, codec coreport.IDCodec, logger coreport.Logger) *HistoryUseCase {
	return &HistoryUseCase{
		uow:    uow,
		codec:  codec,
		logger: logger,
	}
}

// List returns one page of the user's generations with private content hidden
func (u *HistoryUseCase) List(ctx context.Context, userID string, query usecase.HistoryQuery) (*usecase.HistoryPage, error) {
	if userID == "" {
		return nil, errs.ErrAuthRequired
	}

	page := query.Page.Normalize()
	filter := query.Filter.Normalize()

	records, total, err := u.uow.GetGenerationRepository(ctx).ListByUser(ctx, userID, filter, page)
	if err != nil {
		return nil, err
	}

	return &usecase.HistoryPage{
		Records:    redactAll(records),
		Pagination: entity.NewPageInfo(page, total),
		Filters:    filter,
	}, nil
}

// Delete removes the user's records; ids that do not decode are ignored
func (u *HistoryUseCase) Delete(ctx context.Context, userID string, publicIDs []string) (int64, error) {
	if userID == "" {
		return 0, errs.ErrAuthRequired
	}
	if len(publicIDs) > MaxDeleteIDs {
		return 0, errs.NewValidationError("Too many ids", errs.FieldViolation{Field: "ids", Rule: "max"})
	}

	seen := make(map[uint64]struct{}, len(publicIDs))
	ids := make([]uint64, 0, len(publicIDs))
	for _, publicID := range publicIDs {
		id, ok := u.codec.Decode(publicID)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return 0, errs.ErrNoValidIDs
	}

	deleted, err := u.uow.GetGenerationRepository(ctx).DeleteByUser(ctx, userID, ids)
	if err != nil {
		return 0, err
	}

	u.logger.Info("History records deleted", map[string]any{
		"user_id":   userID,
		"requested": len(publicIDs),
		"deleted":   deleted,
	})
	return deleted, nil
}

// Stats counts the user's generations by status
func (u *HistoryUseCase) Stats(ctx context.Context, userID string) (*entity.GenerationStats, error) {
	if userID == "" {
		return nil, errs.ErrAuthRequired
	}
	return u.uow.GetGenerationRepository(ctx).CountByStatus(ctx, userID)
}

// Gallery lists completed public generations, newest first
func (u *HistoryUseCase) Gallery(ctx context.Context, query usecase.GalleryQuery) (*usecase.GalleryPage, error) {
	if query.PageSize < 1 {
		query.PageSize = entity.DefaultGallerySize
	}
	if query.Type != "" && !query.Type.Valid() {
		return nil, errs.NewValidationError("Invalid type", errs.FieldViolation{Field: "type", Rule: "oneof"})
	}

	page := entity.PageRequest{Page: query.Page, Limit: query.PageSize}.Normalize()
	records, total, err := u.uow.GetGenerationRepository(ctx).ListPublic(ctx, query.Type, page)
	if err != nil {
		return nil, err
	}

	return &usecase.GalleryPage{
		Total:    total,
		Page:     page.Page,
		PageSize: page.Limit,
		Records:  redactAll(records),
	}, nil
}

// Get returns a generation when it is public or owned by the principal
func (u *HistoryUseCase) Get(ctx context.Context, principal *entity.Principal, publicID string) (*entity.Generation, error) {
	id, ok := u.codec.Decode(publicID)
	if !ok {
		return nil, errs.ErrGenerationNotFound
	}

	generation, err := u.uow.GetGenerationRepository(ctx).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var userID string
	if principal != nil {
		userID = principal.UserID
	}
	if !generation.VisibleTo(userID) {
		return nil, errs.ErrGenerationNotFound
	}
	if generation.OwnedBy(userID) {
		return generation, nil
	}
	return generation.Redacted(), nil
}

func redactAll(records []*entity.Generation) []*entity.Generation {
	redacted := make([]*entity.Generation, 0, len(records))
	for _, record := range records {
		redacted = append(redacted, record.Redacted())
	}
	return redacted
}
