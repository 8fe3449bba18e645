package usecase

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
)

// HistoryQuery selects one page of a user's history
type HistoryQuery struct {
	Page   entity.PageRequest
	Filter entity.HistoryFilter
}

// HistoryPage is one page of history with the applied filters
type HistoryPage struct {
	Records    []*entity.Generation
	Pagination entity.PageInfo
	Filters    entity.HistoryFilter
}

// GalleryQuery selects one page of the public gallery
type GalleryQuery struct {
	Page     int
	PageSize int
	Type     entity.InputType
}

// GalleryPage is one page of public records
type GalleryPage struct {
	Total    int64
	Page     int
	PageSize int
	Records  []*entity.Generation
}

// HistoryUseCase defines history and gallery operations
type HistoryUseCase interface {
	// List returns the user's generations
	List(ctx context.Context, userID string, query HistoryQuery) (*HistoryPage, error)

	// Delete removes the user's generations by public id and returns the number deleted
	Delete(ctx context.Context, userID string, publicIDs []string) (int64, error)

	// Stats counts the user's generations by status
	Stats(ctx context.Context, userID string) (*entity.GenerationStats, error)

	// Gallery lists completed public generations
	Gallery(ctx context.Context, query GalleryQuery) (*GalleryPage, error)

	// Get returns a generation visible to the principal, which may be nil
	Get(ctx context.Context, principal *entity.Principal, publicID string) (*entity.Generation, error)
}
