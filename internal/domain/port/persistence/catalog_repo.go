package persistence

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
)

// GiftCodeRepository persists gift codes
type GiftCodeRepository interface {
	// GetByCodeForUpdate retrieves a gift code and locks its row
	//
	// Possible errors:
	// - ErrGiftCodeNotFound: If the code does not exist
	// - ErrDatabaseConnection: If database connection fails
	GetByCodeForUpdate(ctx context.Context, code string) (*entity.GiftCode, error)

	// MarkUsed stores the redemption fields of the code
	MarkUsed(ctx context.Context, giftCode *entity.GiftCode) error

	// Create inserts a gift code
	Create(ctx context.Context, giftCode *entity.GiftCode) error
}

// ChargeProductRepository persists purchasable credit packs
type ChargeProductRepository interface {
	// ListByLocale returns enabled products of a locale ordered by credit
	ListByLocale(ctx context.Context, locale string) ([]*entity.ChargeProduct, error)

	// Create inserts a product
	Create(ctx context.Context, product *entity.ChargeProduct) error
}

// ChargeOrderRepository persists credit purchase orders
type ChargeOrderRepository interface {
	// Create inserts an order and sets its ID
	Create(ctx context.Context, order *entity.ChargeOrder) error
}

// MediaRepository persists uploaded file references
type MediaRepository interface {
	// GetByMD5 retrieves media by content digest
	//
	// Possible errors:
	// - ErrNotFound: If no media has the digest
	GetByMD5(ctx context.Context, md5 string) (*entity.Media, error)

	// Create inserts media and sets its ID
	Create(ctx context.Context, media *entity.Media) error
}

// EngagementRepository persists download and view events
type EngagementRepository interface {
	CreateDownload(ctx context.Context, record *entity.DownloadRecord) error
	CreateView(ctx context.Context, record *entity.ViewRecord) error
}
