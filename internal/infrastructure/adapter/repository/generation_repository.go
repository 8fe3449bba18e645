package repository

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GenerationRepository implements persistence.GenerationRepository using GORM
type GenerationRepository struct {
	db     *gorm.DB
	logger coreport.Logger
	dbErrors
}

// NewGenerationRepository creates a new GenerationRepository instance
func NewGenerationRepository(db *gorm.DB, logger coreport.Logger) *GenerationRepository {
	return &GenerationRepository{
		db:       db,
		logger:   logger,
		dbErrors: newDBErrors(logger, "Generation", errs.ErrGenerationNotFound),
	}
}

func generationToModel(g *entity.Generation) *model.Generation {
	return &model.Generation{
		ID:               g.ID,
		UserID:           g.UserID,
		RequestID:        optionalString(g.RequestID),
		InputType:        string(g.InputType),
		InputContent:     g.InputContent,
		InputImageURL:    g.InputImageURL,
		OutputImageURL:   g.OutputImageURL,
		ThumbnailURL:     g.ThumbnailURL,
		StyleType:        g.StyleType,
		TaskStatus:       string(g.TaskStatus),
		IsPrivate:        g.IsPrivate,
		DownloadNum:      g.DownloadNum,
		ViewsNum:         g.ViewsNum,
		CreditCost:       g.CreditCost,
		ProcessingTime:   g.ProcessingTime,
		VendorTaskID:     g.VendorTaskID,
		GeminiRequestID:  g.GeminiRequestID,
		GeminiResponse:   datatypes.JSON(g.GeminiResponse),
		Locale:           g.Locale,
		ErrorMsg:         g.ErrorMsg,
		ExecuteStartTime: g.ExecuteStartTime,
		ExecuteEndTime:   g.ExecuteEndTime,
		RetryCount:       g.RetryCount,
		Metadata:         datatypes.JSONMap(g.Metadata),
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}
}

func generationToEntity(m *model.Generation) *entity.Generation {
	g := &entity.Generation{
		ID:               m.ID,
		UserID:           m.UserID,
		InputType:        entity.InputType(m.InputType),
		InputContent:     m.InputContent,
		InputImageURL:    m.InputImageURL,
		StyleType:        m.StyleType,
		Locale:           m.Locale,
		IsPrivate:        m.IsPrivate,
		TaskStatus:       entity.TaskStatus(m.TaskStatus),
		OutputImageURL:   m.OutputImageURL,
		ThumbnailURL:     m.ThumbnailURL,
		ErrorMsg:         m.ErrorMsg,
		CreditCost:       m.CreditCost,
		ProcessingTime:   m.ProcessingTime,
		DownloadNum:      m.DownloadNum,
		ViewsNum:         m.ViewsNum,
		RetryCount:       m.RetryCount,
		VendorTaskID:     m.VendorTaskID,
		GeminiRequestID:  m.GeminiRequestID,
		ExecuteStartTime: m.ExecuteStartTime,
		ExecuteEndTime:   m.ExecuteEndTime,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.RequestID != nil {
		g.RequestID = *m.RequestID
	}
	if len(m.GeminiResponse) > 0 {
		g.GeminiResponse = []byte(m.GeminiResponse)
	}
	g.Metadata = plainJSONMap(m.Metadata)
	return g
}

// Create inserts a generation and copies the assigned id back
func (r *GenerationRepository) Create(ctx context.Context, generation *entity.Generation) error {
	r.logger.Debug("Creating generation", map[string]any{
		"user_id":    generation.UserID,
		"request_id": generation.RequestID,
		"input_type": generation.InputType,
	})

	row := generationToModel(generation)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return r.handleDatabaseError("creating generation", err, map[string]any{
			"user_id":    generation.UserID,
			"request_id": generation.RequestID,
		})
	}

	generation.ID = row.ID
	r.logger.Info("Generation created", map[string]any{
		"generation_id": row.ID,
		"user_id":       row.UserID,
		"credit_cost":   row.CreditCost,
	})
	return nil
}

// GetByID retrieves a generation by id
func (r *GenerationRepository) GetByID(ctx context.Context, id uint64) (*entity.Generation, error) {
	r.logger.Debug("Getting generation by ID", map[string]any{"generation_id": id})

	var row model.Generation
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, r.handleDatabaseError("getting generation", err, map[string]any{"generation_id": id})
	}
	return generationToEntity(&row), nil
}

// GetByRequestID retrieves a generation by its idempotency key
func (r *GenerationRepository) GetByRequestID(ctx context.Context, requestID string) (*entity.Generation, error) {
	r.logger.Debug("Getting generation by request ID", map[string]any{"request_id": requestID})

	if requestID == "" {
		return nil, errs.ErrGenerationNotFound
	}

	var row model.Generation
	if err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&row).Error; err != nil {
		return nil, r.handleDatabaseError("getting generation by request id", err, map[string]any{"request_id": requestID})
	}
	return generationToEntity(&row), nil
}

// SetVendorTaskID stores the vendor task id of a generation that is still running
func (r *GenerationRepository) SetVendorTaskID(ctx context.Context, id uint64, vendorTaskID string) error {
	result := r.db.WithContext(ctx).Model(&model.Generation{}).
		Where("id = ?", id).
		Update("vendor_task_id", vendorTaskID)
	if result.Error != nil {
		return r.handleDatabaseError("setting vendor task id", result.Error, map[string]any{"generation_id": id})
	}
	if result.RowsAffected == 0 {
		return r.handleDatabaseError("setting vendor task id", gorm.ErrRecordNotFound, map[string]any{"generation_id": id})
	}

	r.logger.Info("Vendor task attached to generation", map[string]any{
		"generation_id":  id,
		"vendor_task_id": vendorTaskID,
	})
	return nil
}

// MarkCompleted flips a processing generation to completed. It reports false
// when the row was already settled.
func (r *GenerationRepository) MarkCompleted(ctx context.Context, generation *entity.Generation) (bool, error) {
	updates := map[string]any{
		"task_status":       string(entity.TaskStatusCompleted),
		"output_image_url":  generation.OutputImageURL,
		"thumbnail_url":     generation.ThumbnailURL,
		"processing_time":   generation.ProcessingTime,
		"execute_end_time":  generation.ExecuteEndTime,
		"gemini_request_id": generation.GeminiRequestID,
		"error_msg":         "",
		"updated_at":        generation.UpdatedAt,
	}
	if len(generation.GeminiResponse) > 0 {
		updates["gemini_response"] = datatypes.JSON(generation.GeminiResponse)
	}
	return r.settle(ctx, generation.ID, entity.TaskStatusCompleted, updates)
}

// MarkFailed flips a processing generation to failed. It reports false when
// the row was already settled.
func (r *GenerationRepository) MarkFailed(ctx context.Context, generation *entity.Generation) (bool, error) {
	return r.settle(ctx, generation.ID, entity.TaskStatusFailed, map[string]any{
		"task_status":      string(entity.TaskStatusFailed),
		"error_msg":        generation.ErrorMsg,
		"execute_end_time": generation.ExecuteEndTime,
		"updated_at":       generation.UpdatedAt,
	})
}

func (r *GenerationRepository) settle(ctx context.Context, id uint64, status entity.TaskStatus, updates map[string]any) (bool, error) {
	r.logger.Debug("Settling generation", map[string]any{
		"generation_id": id,
		"status":        status,
	})

	result := r.db.WithContext(ctx).Model(&model.Generation{}).
		Where("id = ? AND task_status = ?", id, string(entity.TaskStatusProcessing)).
		Updates(updates)
	if result.Error != nil {
		return false, r.handleDatabaseError("settling generation", result.Error, map[string]any{
			"generation_id": id,
			"status":        status,
		})
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Generation already settled", map[string]any{
			"generation_id": id,
			"status":        status,
		})
		return false, nil
	}

	r.logger.Info("Generation settled", map[string]any{
		"generation_id": id,
		"status":        status,
	})
	return true, nil
}

// ListByUser returns one page of a user's generations
func (r *GenerationRepository) ListByUser(ctx context.Context, userID string, filter entity.HistoryFilter, page entity.PageRequest) ([]*entity.Generation, int64, error) {
	filter = filter.Normalize()
	page = page.Normalize()
	r.logger.Debug("Listing generations by user", map[string]any{
		"user_id": userID,
		"type":    filter.Type,
		"status":  filter.Status,
		"sort":    filter.Sort,
		"page":    page.Page,
		"limit":   page.Limit,
	})

	query := r.db.WithContext(ctx).Model(&model.Generation{}).Where("user_id = ?", userID)
	if inputType := filter.InputType(); inputType != "" {
		query = query.Where("input_type = ?", string(inputType))
	}
	if status := filter.TaskStatus(); status != "" {
		query = query.Where("task_status = ?", string(status))
	}

	order := "created_at DESC, id DESC"
	if filter.Sort == entity.HistorySortOldest {
		order = "created_at ASC, id ASC"
	}

	return r.list(query, order, page, map[string]any{"user_id": userID})
}

// ListPublic returns one page of completed non-private generations
func (r *GenerationRepository) ListPublic(ctx context.Context, inputType entity.InputType, page entity.PageRequest) ([]*entity.Generation, int64, error) {
	page = page.Normalize()
	r.logger.Debug("Listing public generations", map[string]any{
		"input_type": inputType,
		"page":       page.Page,
		"limit":      page.Limit,
	})

	query := r.db.WithContext(ctx).Model(&model.Generation{}).
		Where("task_status = ? AND is_private = ?", string(entity.TaskStatusCompleted), false)
	if inputType != "" {
		query = query.Where("input_type = ?", string(inputType))
	}

	return r.list(query, "created_at DESC, id DESC", page, map[string]any{"input_type": inputType})
}

func (r *GenerationRepository) list(query *gorm.DB, order string, page entity.PageRequest, fields map[string]any) ([]*entity.Generation, int64, error) {
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.handleDatabaseError("counting generations", err, fields)
	}

	var rows []model.Generation
	if err := paginate(query.Order(order), page.Limit, page.Offset()).Find(&rows).Error; err != nil {
		return nil, 0, r.handleDatabaseError("listing generations", err, fields)
	}

	generations := make([]*entity.Generation, 0, len(rows))
	for i := range rows {
		generations = append(generations, generationToEntity(&rows[i]))
	}
	return generations, total, nil
}

// DeleteByUser removes the given generations that belong to the user
func (r *GenerationRepository) DeleteByUser(ctx context.Context, userID string, ids []uint64) (int64, error) {
	r.logger.Debug("Deleting generations", map[string]any{
		"user_id": userID,
		"count":   len(ids),
	})

	if len(ids) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&model.Generation{})
	if result.Error != nil {
		return 0, r.handleDatabaseError("deleting generations", result.Error, map[string]any{"user_id": userID})
	}

	r.logger.Info("Generations deleted", map[string]any{
		"user_id":   userID,
		"requested": len(ids),
		"deleted":   result.RowsAffected,
	})
	return result.RowsAffected, nil
}

// CountByStatus summarizes a user's generations by status
func (r *GenerationRepository) CountByStatus(ctx context.Context, userID string) (*entity.GenerationStats, error) {
	r.logger.Debug("Counting generations by status", map[string]any{"user_id": userID})

	var rows []struct {
		TaskStatus string
		Count      int64
	}
	err := r.db.WithContext(ctx).Model(&model.Generation{}).
		Select("task_status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("task_status").
		Scan(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("counting generations", err, map[string]any{"user_id": userID})
	}

	stats := &entity.GenerationStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch entity.TaskStatus(row.TaskStatus) {
		case entity.TaskStatusCompleted:
			stats.Completed = row.Count
		case entity.TaskStatusProcessing:
			stats.Processing = row.Count
		case entity.TaskStatusFailed:
			stats.Failed = row.Count
		}
	}
	return stats, nil
}

// ListProcessing returns the oldest processing generations created before the cutoff
func (r *GenerationRepository) ListProcessing(ctx context.Context, createdBefore time.Time, limit int) ([]*entity.Generation, error) {
	r.logger.Debug("Listing processing generations", map[string]any{
		"created_before": createdBefore,
		"limit":          limit,
	})

	query := r.db.WithContext(ctx).
		Where("task_status = ? AND created_at < ?", string(entity.TaskStatusProcessing), createdBefore).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []model.Generation
	if err := query.Find(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("listing processing generations", err, nil)
	}

	generations := make([]*entity.Generation, 0, len(rows))
	for i := range rows {
		generations = append(generations, generationToEntity(&rows[i]))
	}
	return generations, nil
}

// IncrementDownloads bumps the download counter of a generation
func (r *GenerationRepository) IncrementDownloads(ctx context.Context, id uint64) error {
	return r.increment(ctx, id, "download_num")
}

// IncrementViews bumps the view counter of a generation
func (r *GenerationRepository) IncrementViews(ctx context.Context, id uint64) error {
	return r.increment(ctx, id, "views_num")
}

func (r *GenerationRepository) increment(ctx context.Context, id uint64, column string) error {
	result := r.db.WithContext(ctx).Model(&model.Generation{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return r.handleDatabaseError("incrementing "+column, result.Error, map[string]any{"generation_id": id})
	}
	if result.RowsAffected == 0 {
		return r.handleDatabaseError("incrementing "+column, gorm.ErrRecordNotFound, map[string]any{"generation_id": id})
	}
	return nil
}
