package repository

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MediaRepository implements persistence.MediaRepository using GORM
type MediaRepository struct {
	db     *gorm.DB
	logger coreport.Logger
	dbErrors
}

// NewMediaRepository creates a new MediaRepository instance
func NewMediaRepository(db *gorm.DB, logger coreport.Logger) *MediaRepository {
	return &MediaRepository{
		db:       db,
		logger:   logger,
		dbErrors: newDBErrors(logger, "Media", errs.ErrNotFound),
	}
}

// GetByMD5 retrieves an uploaded image by its content digest
func (r *MediaRepository) GetByMD5(ctx context.Context, md5 string) (*entity.Media, error) {
	r.logger.Debug("Getting media by md5", map[string]any{"md5": md5})

	var row model.Media
	if err := r.db.WithContext(ctx).Where("md5 = ?", md5).First(&row).Error; err != nil {
		return nil, r.handleDatabaseError("getting media", err, map[string]any{"md5": md5})
	}

	media := &entity.Media{
		ID:        row.ID,
		Name:      row.Name,
		Key:       row.Key,
		URL:       row.URL,
		Color:     row.Color,
		Blurhash:  row.Blurhash,
		FileSize:  row.FileSize,
		FileType:  row.FileType,
		MD5:       row.MD5,
		CreatedAt: row.CreatedAt,
	}
	media.Ext = plainJSONMap(row.Ext)
	return media, nil
}

// Create registers an uploaded image
func (r *MediaRepository) Create(ctx context.Context, media *entity.Media) error {
	row := model.Media{
		Name:      media.Name,
		Key:       media.Key,
		URL:       media.URL,
		Color:     media.Color,
		Blurhash:  media.Blurhash,
		FileSize:  media.FileSize,
		FileType:  media.FileType,
		MD5:       media.MD5,
		Ext:       datatypes.JSONMap(media.Ext),
		CreatedAt: media.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.handleDatabaseError("creating media", err, map[string]any{"md5": media.MD5})
	}

	media.ID = row.ID
	r.logger.Info("Media registered", map[string]any{
		"media_id":  row.ID,
		"key":       row.Key,
		"file_size": row.FileSize,
	})
	return nil
}

// EngagementRepository implements persistence.EngagementRepository using GORM
type EngagementRepository struct {
	db     *gorm.DB
	logger coreport.Logger
	dbErrors
}

// NewEngagementRepository creates a new EngagementRepository instance
func NewEngagementRepository(db *gorm.DB, logger coreport.Logger) *EngagementRepository {
	return &EngagementRepository{
		db:       db,
		logger:   logger,
		dbErrors: newDBErrors(logger, "Engagement record", errs.ErrNotFound),
	}
}

// CreateDownload logs one download
func (r *EngagementRepository) CreateDownload(ctx context.Context, record *entity.DownloadRecord) error {
	row := model.Download{
		PolaroidID:   record.PolaroidID,
		UserID:       record.UserID,
		DownloadType: string(record.DownloadType),
		UserAgent:    record.UserAgent,
		IPAddress:    record.IPAddress,
		CreatedAt:    record.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.handleDatabaseError("recording download", err, map[string]any{"polaroid_id": record.PolaroidID})
	}

	record.ID = row.ID
	r.logger.Debug("Download recorded", map[string]any{
		"polaroid_id": row.PolaroidID,
		"user_id":     row.UserID,
		"type":        row.DownloadType,
	})
	return nil
}

// CreateView logs one view
func (r *EngagementRepository) CreateView(ctx context.Context, record *entity.ViewRecord) error {
	row := model.View{
		PolaroidID:   record.PolaroidID,
		UserID:       record.UserID,
		ViewDuration: record.ViewDuration,
		Referrer:     record.Referrer,
		CreatedAt:    record.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.handleDatabaseError("recording view", err, map[string]any{"polaroid_id": record.PolaroidID})
	}

	record.ID = row.ID
	r.logger.Debug("View recorded", map[string]any{
		"polaroid_id": row.PolaroidID,
		"user_id":     row.UserID,
	})
	return nil
}
