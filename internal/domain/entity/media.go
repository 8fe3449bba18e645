package entity

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
)

// Upload limits for reference images
const (
	MinUploadImages  = 1
	MaxUploadImages  = 5
	MaxUploadSize    = 10 * 1024 * 1024
	MaxContentLength = 500
)

// AllowedImageTypes lists accepted upload content types and their file extension
var AllowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Media is a stored reference to an uploaded file
type Media struct {
	ID        uint64
	Name      string
	Key       string
	URL       string
	Color     string
	Blurhash  string
	FileSize  int64
	FileType  string
	MD5       string
	Ext       map[string]any
	CreatedAt time.Time
}

// ImageUpload is an uploaded image held in memory
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Validate checks type and size of the upload; position is 1-based for messages
func (u ImageUpload) Validate(position int) error {
	if _, ok := AllowedImageTypes[strings.ToLower(u.ContentType)]; !ok {
		return errs.NewValidationError(
			fmt.Sprintf("Image %d has unsupported format: %s", position, u.ContentType),
			errs.FieldViolation{Field: "images", Rule: "mimetype"},
		)
	}
	if len(u.Data) == 0 {
		return errs.NewValidationError(
			fmt.Sprintf("Image %d is empty", position),
			errs.FieldViolation{Field: "images", Rule: "required"},
		)
	}
	if len(u.Data) > MaxUploadSize {
		return errs.NewValidationError(
			fmt.Sprintf("Image %d exceeds the size limit: %.1fMB > %dMB",
				position, float64(len(u.Data))/1024/1024, MaxUploadSize/1024/1024),
			errs.FieldViolation{Field: "images", Rule: "max"},
		)
	}
	return nil
}

// MD5 returns the hex digest of the upload
func (u ImageUpload) MD5() string {
	sum := md5.Sum(u.Data)
	return hex.EncodeToString(sum[:])
}

// DataURL encodes the upload as a base64 data URL
func (u ImageUpload) DataURL() string {
	return "data:" + strings.ToLower(u.ContentType) + ";base64," + base64.StdEncoding.EncodeToString(u.Data)
}

// ToMedia builds the media row describing the upload
func (u ImageUpload) ToMedia(now time.Time) *Media {
	digest := u.MD5()
	ext := AllowedImageTypes[strings.ToLower(u.ContentType)]
	return &Media{
		Name:      u.Filename,
		Key:       fmt.Sprintf("uploads/%s.%s", digest, ext),
		FileSize:  int64(len(u.Data)),
		FileType:  strings.ToLower(u.ContentType),
		MD5:       digest,
		CreatedAt: now,
	}
}
