package catalog

import (
	"context"
	"strings"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/persistence"
)

// ActivityKey is where operators publish the current app activity
const ActivityKey = "activity:app"

// CatalogUseCase implements usecase.CatalogUseCase
type CatalogUseCase struct {
	products persistence.ChargeProductRepository
	activity gateway.ActivityStore
	features entity.FeatureFlags
	logger   coreport.Logger
}

// NewCatalogUseCase creates a new catalog use case
func NewCatalogUseCase(
	products persistence.ChargeProductRepository,
	activity gateway.ActivityStore,
	features entity.FeatureFlags,
	logger coreport.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		products: products,
		activity: activity,
		features: features,
		logger:   logger,
	}
}

// ListChargeProducts returns the enabled packs for a locale
func (u *CatalogUseCase) ListChargeProducts(ctx context.Context, locale string) ([]*entity.ChargeProduct, error) {
	if !u.features.Enabled(entity.FeaturePayment) {
		return nil, errs.ErrFeatureDisabled
	}

	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = entity.DefaultLocale
	}

	products, err := u.products.ListByLocale(ctx, locale)
	if err != nil {
		u.logger.Error("Failed to list charge products", map[string]any{
			"error":  err.Error(),
			"locale": locale,
		})
		return nil, err
	}
	return products, nil
}

// Activity returns the published activity value, nil when nothing is published
func (u *CatalogUseCase) Activity(ctx context.Context) (*string, error) {
	value, ok, err := u.activity.Get(ctx, ActivityKey)
	if err != nil {
		u.logger.Error("Failed to read app activity", map[string]any{"error": err.Error()})
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &value, nil
}
