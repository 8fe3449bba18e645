package model

import "time"

// Download logs one download of a generation
type Download struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	PolaroidID   uint64    `gorm:"not null;index"`
	UserID       string    `gorm:"type:varchar(64);not null"`
	DownloadType string    `gorm:"type:varchar(16);not null;default:original"`
	UserAgent    string    `gorm:"type:text"`
	IPAddress    string    `gorm:"type:varchar(64)"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for Download
func (Download) TableName() string {
	return TablePrefix + "polaroid_downloads"
}

// View logs one view of a generation
type View struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	PolaroidID   uint64 `gorm:"not null;index"`
	UserID       string `gorm:"type:varchar(64);not null"`
	ViewDuration *int
	Referrer     string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for View
func (View) TableName() string {
	return TablePrefix + "polaroid_views"
}
