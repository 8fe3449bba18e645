package repository

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// BillingRepository implements persistence.BillingRepository using GORM
type BillingRepository struct {
	db     *gorm.DB
	logger coreport.Logger
	dbErrors
}

// NewBillingRepository creates a new BillingRepository instance
func NewBillingRepository(db *gorm.DB, logger coreport.Logger) *BillingRepository {
	return &BillingRepository{
		db:       db,
		logger:   logger,
		dbErrors: newDBErrors(logger, "Billing", errs.ErrNotFound),
	}
}

// Create inserts a billing row and copies the assigned id back
func (r *BillingRepository) Create(ctx context.Context, billing *entity.Billing) error {
	r.logger.Debug("Creating billing", map[string]any{
		"user_id":     billing.UserID,
		"amount":      billing.Amount,
		"type":        billing.Type,
		"polaroid_id": billing.PolaroidID,
	})

	row := model.UserBilling{
		UserID:      billing.UserID,
		State:       string(billing.State),
		Amount:      billing.Amount,
		Type:        string(billing.Type),
		PolaroidID:  optionalID(billing.PolaroidID),
		Description: billing.Description,
		CreatedAt:   billing.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.handleDatabaseError("creating billing", err, map[string]any{"user_id": billing.UserID})
	}

	billing.ID = row.ID
	r.logger.Info("Billing created", map[string]any{
		"billing_id": row.ID,
		"user_id":    row.UserID,
		"amount":     row.Amount,
	})
	return nil
}

// ListByUser returns one page of a user's billings, newest first
func (r *BillingRepository) ListByUser(ctx context.Context, userID string, page entity.PageRequest) ([]*entity.Billing, int64, error) {
	page = page.Normalize()
	r.logger.Debug("Listing billings", map[string]any{
		"user_id": userID,
		"page":    page.Page,
		"limit":   page.Limit,
	})

	query := r.db.WithContext(ctx).Model(&model.UserBilling{}).Where("user_id = ?", userID).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.handleDatabaseError("counting billings", err, map[string]any{"user_id": userID})
	}

	var rows []model.UserBilling
	if err := paginate(query.Order("created_at DESC, id DESC"), page.Limit, page.Offset()).Find(&rows).Error; err != nil {
		return nil, 0, r.handleDatabaseError("listing billings", err, map[string]any{"user_id": userID})
	}

	billings := make([]*entity.Billing, 0, len(rows))
	for _, row := range rows {
		billings = append(billings, &entity.Billing{
			ID:          row.ID,
			UserID:      row.UserID,
			State:       entity.BillingState(row.State),
			Amount:      row.Amount,
			Type:        entity.BillingType(row.Type),
			PolaroidID:  idOrZero(row.PolaroidID),
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
		})
	}
	return billings, total, nil
}

// CreditTransactionRepository implements persistence.CreditTransactionRepository using GORM
type CreditTransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
	dbErrors
}

// NewCreditTransactionRepository creates a new CreditTransactionRepository instance
func NewCreditTransactionRepository(db *gorm.DB, logger coreport.Logger) *CreditTransactionRepository {
	return &CreditTransactionRepository{
		db:       db,
		logger:   logger,
		dbErrors: newDBErrors(logger, "Credit transaction", errs.ErrNotFound),
	}
}

// Create inserts a credit transaction and copies the assigned id back
func (r *CreditTransactionRepository) Create(ctx context.Context, transaction *entity.CreditTransaction) error {
	r.logger.Debug("Creating credit transaction", map[string]any{
		"user_id": transaction.UserID,
		"credit":  transaction.Credit,
		"balance": transaction.Balance,
		"type":    transaction.Type,
	})

	row := model.UserCreditTransaction{
		UserID:    transaction.UserID,
		Credit:    transaction.Credit,
		Balance:   transaction.Balance,
		BillingID: optionalID(transaction.BillingID),
		Type:      string(transaction.Type),
		CreatedAt: transaction.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.handleDatabaseError("creating credit transaction", err, map[string]any{"user_id": transaction.UserID})
	}

	transaction.ID = row.ID
	r.logger.Info("Credit transaction created", map[string]any{
		"transaction_id": row.ID,
		"user_id":        row.UserID,
		"credit":         row.Credit,
		"balance":        row.Balance,
	})
	return nil
}
