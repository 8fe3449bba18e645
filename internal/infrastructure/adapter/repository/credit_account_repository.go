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

// CreditAccountRepository implements persistence.CreditAccountRepository using GORM
type CreditAccountRepository struct {
	db     *gorm.DB
	logger coreport.Logger
	dbErrors
}

// NewCreditAccountRepository creates a new CreditAccountRepository instance
func NewCreditAccountRepository(db *gorm.DB, logger coreport.Logger) *CreditAccountRepository {
	return &CreditAccountRepository{
		db:       db,
		logger:   logger,
		dbErrors: newDBErrors(logger, "Credit account", errs.ErrAccountNotFound),
	}
}

func creditAccountToEntity(m *model.UserCredit) *entity.CreditAccount {
	return entity.RestoreCreditAccount(m.ID, m.UserID, m.Credit, m.CreatedAt, m.UpdatedAt)
}

// GetByUserID retrieves the account of a user
func (r *CreditAccountRepository) GetByUserID(ctx context.Context, userID string) (*entity.CreditAccount, error) {
	r.logger.Debug("Getting credit account", map[string]any{"user_id": userID})

	var row model.UserCredit
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, r.handleDatabaseError("getting credit account", err, map[string]any{"user_id": userID})
	}
	return creditAccountToEntity(&row), nil
}

// GetByUserIDForUpdate retrieves the account of a user and locks its row
// until the surrounding transaction ends
func (r *CreditAccountRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*entity.CreditAccount, error) {
	r.logger.Debug("Locking credit account", map[string]any{"user_id": userID})

	var row model.UserCredit
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&row).Error
	if err != nil {
		return nil, r.handleDatabaseError("locking credit account", err, map[string]any{"user_id": userID})
	}
	return creditAccountToEntity(&row), nil
}

// Create opens a new account
func (r *CreditAccountRepository) Create(ctx context.Context, account *entity.CreditAccount) error {
	r.logger.Debug("Creating credit account", map[string]any{
		"user_id": account.UserID,
		"credit":  account.Credit(),
	})

	row := model.UserCredit{
		UserID:    account.UserID,
		Credit:    account.Credit(),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.handleDatabaseError("creating credit account", err, map[string]any{"user_id": account.UserID})
	}

	account.ID = row.ID
	r.logger.Info("Credit account created", map[string]any{
		"account_id": row.ID,
		"user_id":    row.UserID,
		"credit":     row.Credit,
	})
	return nil
}

// UpdateCredit writes the account's balance
func (r *CreditAccountRepository) UpdateCredit(ctx context.Context, account *entity.CreditAccount) error {
	r.logger.Debug("Updating credit", map[string]any{
		"user_id": account.UserID,
		"credit":  account.Credit(),
	})

	result := r.db.WithContext(ctx).Model(&model.UserCredit{}).
		Where("user_id = ?", account.UserID).
		Updates(map[string]any{
			"credit":     account.Credit(),
			"updated_at": account.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating credit", result.Error, map[string]any{"user_id": account.UserID})
	}
	if result.RowsAffected == 0 {
		return r.handleDatabaseError("updating credit", gorm.ErrRecordNotFound, map[string]any{"user_id": account.UserID})
	}

	r.logger.Info("Credit updated", map[string]any{
		"user_id": account.UserID,
		"credit":  account.Credit(),
	})
	return nil
}
