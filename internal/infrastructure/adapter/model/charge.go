package model

import (
	"time"

	"gorm.io/datatypes"
)

// ChargeProduct is a purchasable credit package
type ChargeProduct struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	Amount         int64  `gorm:"not null"`
	OriginalAmount int64  `gorm:"not null"`
	Credit         int64  `gorm:"not null"`
	Currency       string `gorm:"type:varchar(8);not null"`
	Locale         string `gorm:"type:varchar(16);not null;index"`
	Title          string `gorm:"type:varchar(255)"`
	Tag            datatypes.JSONSlice[string]
	Message        string    `gorm:"type:text"`
	State          string    `gorm:"type:varchar(16);not null;default:enable"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for ChargeProduct
func (ChargeProduct) TableName() string {
	return TablePrefix + "charge_product"
}

// ChargeOrder records a credit purchase or grant
type ChargeOrder struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"type:varchar(64);not null;index"`
	UserInfo  datatypes.JSONMap
	Amount    int64  `gorm:"not null;default:0"`
	Credit    int64  `gorm:"not null"`
	Phase     string `gorm:"type:varchar(16);not null"`
	Channel   string `gorm:"type:varchar(32);not null"`
	Currency  string `gorm:"type:varchar(8)"`
	PaymentAt *time.Time
	Result    datatypes.JSONMap
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for ChargeOrder
func (ChargeOrder) TableName() string {
	return TablePrefix + "charge_order"
}
