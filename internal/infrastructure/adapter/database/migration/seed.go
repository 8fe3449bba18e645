package migration

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/model"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// DemoGiftCode is seeded for local development
const DemoGiftCode = "POLAROID-DEMO"

// DemoGiftCodeCredit is the credit granted by DemoGiftCode
const DemoGiftCodeCredit int64 = 50

var defaultChargeProducts = []model.ChargeProduct{
	{Amount: 499, OriginalAmount: 699, Credit: 100, Currency: "USD", Locale: "en", Title: "Starter", Tag: datatypes.JSONSlice[string]{"starter"}, Message: "20 text polaroids", State: "enable"},
	{Amount: 1999, OriginalAmount: 2999, Credit: 500, Currency: "USD", Locale: "en", Title: "Studio", Tag: datatypes.JSONSlice[string]{"popular"}, Message: "Best value for regular shooters", State: "enable"},
	{Amount: 3900, OriginalAmount: 4900, Credit: 100, Currency: "CNY", Locale: "zh", Title: "入门包", Tag: datatypes.JSONSlice[string]{"starter"}, Message: "20 张文字拍立得", State: "enable"},
	{Amount: 14900, OriginalAmount: 19900, Credit: 500, Currency: "CNY", Locale: "zh", Title: "工作室包", Tag: datatypes.JSONSlice[string]{"popular"}, Message: "常用用户的最佳选择", State: "enable"},
}

// SeedDevelopmentData inserts the default charge products and the demo gift
// code. Running it again changes nothing.
func (m *MigrationManager) SeedDevelopmentData(ctx context.Context) error {
	now := m.timeProvider.Now()

	var products int64
	if err := m.db.WithContext(ctx).Model(&model.ChargeProduct{}).Count(&products).Error; err != nil {
		return err
	}
	if products == 0 {
		rows := make([]model.ChargeProduct, len(defaultChargeProducts))
		copy(rows, defaultChargeProducts)
		for i := range rows {
			rows[i].CreatedAt = now
		}
		if err := m.db.WithContext(ctx).Create(&rows).Error; err != nil {
			m.logger.Error("Failed to seed charge products", map[string]any{"error": err.Error()})
			return err
		}
		m.logger.Info("Seeded charge products", map[string]any{"count": len(rows)})
	}

	expiredAt := now.Add(365 * 24 * time.Hour)
	giftCode := model.GiftCode{
		Code:         DemoGiftCode,
		CreditAmount: DemoGiftCodeCredit,
		ExpiredAt:    &expiredAt,
		CreatedAt:    now,
	}
	result := m.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&giftCode)
	if result.Error != nil {
		m.logger.Error("Failed to seed demo gift code", map[string]any{"error": result.Error.Error()})
		return result.Error
	}
	if result.RowsAffected > 0 {
		m.logger.Info("Seeded demo gift code", map[string]any{
			"code":   DemoGiftCode,
			"credit": DemoGiftCodeCredit,
		})
	}

	return nil
}
