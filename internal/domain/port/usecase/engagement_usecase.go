package usecase

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
)

// DownloadInput describes one download of a generation
type DownloadInput struct {
	PublicID     string
	DownloadType entity.DownloadType
	UserAgent    string
	IPAddress    string
}

// ViewInput describes one view of a generation
type ViewInput struct {
	PublicID     string
	ViewDuration *int
	Referrer     string
}

// EngagementUseCase records downloads and views
type EngagementUseCase interface {
	RecordDownload(ctx context.Context, principal *entity.Principal, input DownloadInput) (*entity.DownloadRecord, error)
	RecordView(ctx context.Context, principal *entity.Principal, input ViewInput) (*entity.ViewRecord, error)
}

// CatalogUseCase serves read-only product and activity data
type CatalogUseCase interface {
	// ListChargeProducts returns purchasable packs for a locale
	ListChargeProducts(ctx context.Context, locale string) ([]*entity.ChargeProduct, error)

	// Activity returns the published app activity value, nil when unset
	Activity(ctx context.Context) (*string, error)
}
