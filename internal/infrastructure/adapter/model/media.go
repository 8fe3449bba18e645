package model

import (
	"time"

	"gorm.io/datatypes"
)

// Media represents an uploaded reference image
type Media struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:varchar(255)"`
	Key       string `gorm:"type:varchar(255);not null;uniqueIndex"`
	URL       string `gorm:"type:text"`
	Color     string `gorm:"type:varchar(32)"`
	Blurhash  string `gorm:"type:varchar(128)"`
	FileSize  int64  `gorm:"not null;default:0"`
	FileType  string `gorm:"type:varchar(64)"`
	MD5       string `gorm:"column:md5;type:varchar(32);not null;uniqueIndex"`
	Ext       datatypes.JSONMap
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Media
func (Media) TableName() string {
	return TablePrefix + "media"
}
