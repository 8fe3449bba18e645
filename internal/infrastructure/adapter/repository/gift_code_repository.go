package repository

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GiftCodeRepository implements persistence.GiftCodeRepository using GORM
type GiftCodeRepository struct {
	db     *gorm.DB
	logger coreport.Logger
	dbErrors
}

// NewGiftCodeRepository creates a new GiftCodeRepository instance
func NewGiftCodeRepository(db *gorm.DB, logger coreport.Logger) *GiftCodeRepository {
	return &GiftCodeRepository{
		db:       db,
		logger:   logger,
		dbErrors: newDBErrors(logger, "Gift code", errs.ErrGiftCodeNotFound),
	}
}

// GetByCodeForUpdate retrieves a gift code and locks its row
func (r *GiftCodeRepository) GetByCodeForUpdate(ctx context.Context, code string) (*entity.GiftCode, error) {
	r.logger.Debug("Locking gift code", map[string]any{"code": code})

	var row model.GiftCode
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).
		First(&row).Error
	if err != nil {
		return nil, r.handleDatabaseError("locking gift code", err, map[string]any{"code": code})
	}

	return &entity.GiftCode{
		ID:            row.ID,
		Code:          row.Code,
		CreditAmount:  row.CreditAmount,
		Used:          row.Used,
		UsedBy:        row.UsedBy,
		UsedAt:        row.UsedAt,
		TransactionID: idOrZero(row.TransactionID),
		ExpiredAt:     row.ExpiredAt,
		CreatedAt:     row.CreatedAt,
	}, nil
}

// MarkUsed records the redemption of a gift code. A code that was redeemed
// concurrently is reported as used.
func (r *GiftCodeRepository) MarkUsed(ctx context.Context, giftCode *entity.GiftCode) error {
	result := r.db.WithContext(ctx).Model(&model.GiftCode{}).
		Where("id = ? AND used = ?", giftCode.ID, false).
		Updates(map[string]any{
			"used":           true,
			"used_by":        giftCode.UsedBy,
			"used_at":        giftCode.UsedAt,
			"transaction_id": optionalID(giftCode.TransactionID),
		})
	if result.Error != nil {
		return r.handleDatabaseError("marking gift code used", result.Error, map[string]any{"code": giftCode.Code})
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Gift code already used", map[string]any{"code": giftCode.Code})
		return errs.ErrGiftCodeUsed
	}

	r.logger.Info("Gift code redeemed", map[string]any{
		"code":    giftCode.Code,
		"used_by": giftCode.UsedBy,
		"credit":  giftCode.CreditAmount,
	})
	return nil
}

// Create inserts a gift code
func (r *GiftCodeRepository) Create(ctx context.Context, giftCode *entity.GiftCode) error {
	row := model.GiftCode{
		Code:         entity.NormalizeGiftCode(giftCode.Code),
		CreditAmount: giftCode.CreditAmount,
		ExpiredAt:    giftCode.ExpiredAt,
		CreatedAt:    giftCode.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.handleDatabaseError("creating gift code", err, map[string]any{"code": row.Code})
	}

	giftCode.ID = row.ID
	r.logger.Info("Gift code created", map[string]any{
		"code":   row.Code,
		"credit": row.CreditAmount,
	})
	return nil
}
