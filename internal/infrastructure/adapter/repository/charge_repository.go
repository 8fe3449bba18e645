package repository

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChargeProductRepository implements persistence.ChargeProductRepository using GORM
type ChargeProductRepository struct {
	db     *gorm.DB
	logger coreport.Logger
	dbErrors
}

// NewChargeProductRepository creates a new ChargeProductRepository instance
func NewChargeProductRepository(db *gorm.DB, logger coreport.Logger) *ChargeProductRepository {
	return &ChargeProductRepository{
		db:       db,
		logger:   logger,
		dbErrors: newDBErrors(logger, "Charge product", errs.ErrNotFound),
	}
}

// ListByLocale returns the enabled products of a locale, cheapest credit first
func (r *ChargeProductRepository) ListByLocale(ctx context.Context, locale string) ([]*entity.ChargeProduct, error) {
	r.logger.Debug("Listing charge products", map[string]any{"locale": locale})

	var rows []model.ChargeProduct
	err := r.db.WithContext(ctx).
		Where("locale = ? AND state = ?", locale, string(entity.ChargeProductEnabled)).
		Order("credit ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing charge products", err, map[string]any{"locale": locale})
	}

	products := make([]*entity.ChargeProduct, 0, len(rows))
	for _, row := range rows {
		products = append(products, &entity.ChargeProduct{
			ID:             row.ID,
			Amount:         row.Amount,
			OriginalAmount: row.OriginalAmount,
			Credit:         row.Credit,
			Currency:       entity.Currency(row.Currency),
			Locale:         row.Locale,
			Title:          row.Title,
			Tag:            []string(row.Tag),
			Message:        row.Message,
			State:          entity.ChargeProductState(row.State),
			CreatedAt:      row.CreatedAt,
		})
	}
	return products, nil
}

// Create inserts a charge product
func (r *ChargeProductRepository) Create(ctx context.Context, product *entity.ChargeProduct) error {
	state := product.State
	if state == "" {
		state = entity.ChargeProductEnabled
	}

	row := model.ChargeProduct{
		Amount:         product.Amount,
		OriginalAmount: product.OriginalAmount,
		Credit:         product.Credit,
		Currency:       string(product.Currency),
		Locale:         product.Locale,
		Title:          product.Title,
		Tag:            datatypes.JSONSlice[string](product.Tag),
		Message:        product.Message,
		State:          string(state),
		CreatedAt:      product.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.handleDatabaseError("creating charge product", err, map[string]any{"locale": product.Locale})
	}

	product.ID = row.ID
	r.logger.Info("Charge product created", map[string]any{
		"product_id": row.ID,
		"locale":     row.Locale,
		"credit":     row.Credit,
	})
	return nil
}

// ChargeOrderRepository implements persistence.ChargeOrderRepository using GORM
type ChargeOrderRepository struct {
	db     *gorm.DB
	logger coreport.Logger
	dbErrors
}

// NewChargeOrderRepository creates a new ChargeOrderRepository instance
func NewChargeOrderRepository(db *gorm.DB, logger coreport.Logger) *ChargeOrderRepository {
	return &ChargeOrderRepository{
		db:       db,
		logger:   logger,
		dbErrors: newDBErrors(logger, "Charge order", errs.ErrNotFound),
	}
}

// Create inserts a charge order
func (r *ChargeOrderRepository) Create(ctx context.Context, order *entity.ChargeOrder) error {
	r.logger.Debug("Creating charge order", map[string]any{
		"user_id": order.UserID,
		"channel": order.Channel,
		"credit":  order.Credit,
	})

	row := model.ChargeOrder{
		UserID:    order.UserID,
		UserInfo:  datatypes.JSONMap(order.UserInfo),
		Amount:    order.Amount,
		Credit:    order.Credit,
		Phase:     string(order.Phase),
		Channel:   string(order.Channel),
		Currency:  string(order.Currency),
		PaymentAt: order.PaymentAt,
		Result:    datatypes.JSONMap(order.Result),
		CreatedAt: order.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.handleDatabaseError("creating charge order", err, map[string]any{"user_id": order.UserID})
	}

	order.ID = row.ID
	r.logger.Info("Charge order created", map[string]any{
		"order_id": row.ID,
		"user_id":  row.UserID,
		"phase":    row.Phase,
		"channel":  row.Channel,
	})
	return nil
}
