package entity

import "time"

// DownloadType is the variant of an image that was downloaded
type DownloadType string

const (
	DownloadTypeOriginal  DownloadType = "original"
	DownloadTypeThumbnail DownloadType = "thumbnail"
)

// Valid reports whether the download type is supported
func (t DownloadType) Valid() bool {
	return t == DownloadTypeOriginal || t == DownloadTypeThumbnail
}

// DownloadRecord logs one download of a generation
type DownloadRecord struct {
	ID           uint64
	PolaroidID   uint64
	UserID       string
	DownloadType DownloadType
	UserAgent    string
	IPAddress    string
	CreatedAt    time.Time
}

// ViewRecord logs one view of a generation
type ViewRecord struct {
	ID           uint64
	PolaroidID   uint64
	UserID       string
	ViewDuration *int // seconds
	Referrer     string
	CreatedAt    time.Time
}
