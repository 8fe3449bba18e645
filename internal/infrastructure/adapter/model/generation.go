package model

import (
	"time"

	"gorm.io/datatypes"
)

// TablePrefix is prepended to every application table
const TablePrefix = "polaroidai_"

// Generation represents the database model for polaroid generation records
type Generation struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement"`
	UserID    string  `gorm:"type:varchar(64);not null;index:idx_generation_user_created,priority:1"`
	RequestID *string `gorm:"type:varchar(128);uniqueIndex"`

	InputType     string `gorm:"type:varchar(16);not null"`
	InputContent  string `gorm:"type:text"`
	InputImageURL string `gorm:"type:text"`

	OutputImageURL string `gorm:"type:text"`
	ThumbnailURL   string `gorm:"type:text"`
	StyleType      string `gorm:"type:varchar(64);not null;default:classic_polaroid"`

	TaskStatus string `gorm:"type:varchar(16);not null;index"`
	IsPrivate  bool   `gorm:"not null;default:false"`

	DownloadNum    int64 `gorm:"not null;default:0"`
	ViewsNum       int64 `gorm:"not null;default:0"`
	CreditCost     int64 `gorm:"not null;default:0"`
	ProcessingTime int64 `gorm:"not null;default:0"`

	VendorTaskID    string `gorm:"type:varchar(128)"`
	GeminiRequestID string `gorm:"type:varchar(128)"`
	GeminiResponse  datatypes.JSON

	Locale   string `gorm:"type:varchar(16);not null;default:en"`
	ErrorMsg string `gorm:"type:text"`

	ExecuteStartTime int64 `gorm:"not null;default:0"`
	ExecuteEndTime   int64 `gorm:"not null;default:0"`

	RetryCount int `gorm:"not null;default:0"`
	Metadata   datatypes.JSONMap

	CreatedAt time.Time `gorm:"not null;index:idx_generation_user_created,priority:2"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Generation
func (Generation) TableName() string {
	return TablePrefix + "polaroid_generation"
}
