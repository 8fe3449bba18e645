package entity

import (
	"strings"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	"github.com/stretchr/testify/assert"
)

func TestImageUploadValidate(t *testing.T) {
	testCases := []struct {
		name    string
		upload  ImageUpload
		wantErr string
	}{
		{"Valid png", ImageUpload{ContentType: "image/png", Data: []byte("png")}, ""},
		{"Upper case type", ImageUpload{ContentType: "IMAGE/JPEG", Data: []byte("jpg")}, ""},
		{"Unsupported type", ImageUpload{ContentType: "image/gif", Data: []byte("gif")}, "Image 2 has unsupported format: image/gif"},
		{"Empty file", ImageUpload{ContentType: "image/webp"}, "Image 2 is empty"},
		{"Too large", ImageUpload{ContentType: "image/png", Data: make([]byte, MaxUploadSize+1)}, "Image 2 exceeds the size limit"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.upload.Validate(2)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errs.IsValidationError(err))
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestImageUploadEncoding(t *testing.T) {
	upload := ImageUpload{Filename: "cat.png", ContentType: "image/png", Data: []byte("hello")}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", upload.MD5())
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", upload.DataURL())

	media := upload.ToMedia(now)
	assert.Equal(t, "uploads/5d41402abc4b2a76b9719d911017c592.png", media.Key)
	assert.Equal(t, "cat.png", media.Name)
	assert.Equal(t, int64(5), media.FileSize)
	assert.Equal(t, "image/png", media.FileType)
	assert.True(t, strings.HasPrefix(media.Key, "uploads/"))
	assert.Equal(t, now, media.CreatedAt)
}
