package model

import "time"

// GiftCode is a one-time code that grants credit
type GiftCode struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	Code          string `gorm:"type:varchar(64);not null;uniqueIndex"`
	CreditAmount  int64  `gorm:"not null"`
	Used          bool   `gorm:"not null;default:false"`
	UsedBy        string `gorm:"type:varchar(64)"`
	UsedAt        *time.Time
	TransactionID *uint64
	ExpiredAt     *time.Time
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for GiftCode
func (GiftCode) TableName() string {
	return TablePrefix + "gift_code"
}
