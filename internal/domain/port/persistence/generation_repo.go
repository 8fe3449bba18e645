package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
)

// GenerationRepository persists generation records
type GenerationRepository interface {
	// Create inserts a new generation and sets its ID
	//
	// Possible errors:
	// - ErrDuplicateRequest: If the request id is already stored
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, generation *entity.Generation) error

	// GetByID retrieves a generation by ID
	//
	// Possible errors:
	// - ErrGenerationNotFound: If no record exists
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Generation, error)

	// GetByRequestID retrieves a generation by its client request id
	GetByRequestID(ctx context.Context, requestID string) (*entity.Generation, error)

	// SetVendorTaskID stores the vendor task id of a processing record
	SetVendorTaskID(ctx context.Context, id uint64, vendorTaskID string) error

	// MarkCompleted writes the completion fields only if the record is still processing.
	// It reports whether a row was changed.
	MarkCompleted(ctx context.Context, generation *entity.Generation) (bool, error)

	// MarkFailed writes the failure fields only if the record is still processing.
	// It reports whether a row was changed.
	MarkFailed(ctx context.Context, generation *entity.Generation) (bool, error)

	// ListByUser returns one page of a user's records and the total match count
	ListByUser(ctx context.Context, userID string, filter entity.HistoryFilter, page entity.PageRequest) ([]*entity.Generation, int64, error)

	// ListPublic returns completed non-private records, newest first
	ListPublic(ctx context.Context, inputType entity.InputType, page entity.PageRequest) ([]*entity.Generation, int64, error)

	// DeleteByUser removes the user's records among ids and returns the number deleted
	DeleteByUser(ctx context.Context, userID string, ids []uint64) (int64, error)

	// CountByStatus summarizes a user's records by task status
	CountByStatus(ctx context.Context, userID string) (*entity.GenerationStats, error)

	// ListProcessing returns processing records created before the cutoff, oldest first
	ListProcessing(ctx context.Context, createdBefore time.Time, limit int) ([]*entity.Generation, error)

	// IncrementDownloads bumps the download counter
	IncrementDownloads(ctx context.Context, id uint64) error

	// IncrementViews bumps the view counter
	IncrementViews(ctx context.Context, id uint64) error
}
