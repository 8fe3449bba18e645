package model

import "time"

// UserCredit holds the spendable credit of one user
type UserCredit struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Credit    int64     `gorm:"not null;default:0;check:credit >= 0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for UserCredit
func (UserCredit) TableName() string {
	return TablePrefix + "user_credit"
}

// UserBilling is one money-side audit row of a credit movement
type UserBilling struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      string    `gorm:"type:varchar(64);not null;index"`
	State       string    `gorm:"type:varchar(16);not null"`
	Amount      int64     `gorm:"not null"`
	Type        string    `gorm:"type:varchar(16);not null"`
	PolaroidID  *uint64   `gorm:"index"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for UserBilling
func (UserBilling) TableName() string {
	return TablePrefix + "user_billing"
}

// UserCreditTransaction is one credit-side audit row with the balance after it
type UserCreditTransaction struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:varchar(64);not null;index"`
	Credit    int64     `gorm:"not null"`
	Balance   int64     `gorm:"not null"`
	BillingID *uint64   `gorm:"index"`
	Type      string    `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for UserCreditTransaction
func (UserCreditTransaction) TableName() string {
	return TablePrefix + "user_credit_transaction"
}
