package handler

import (
	"fmt"
	"net/http"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// HistoryHandler serves a user's history, the public gallery and single records
type HistoryHandler struct {
	historyUseCase usecase.HistoryUseCase
	polaroidCodec  coreport.IDCodec
	logger         coreport.Logger
}

// NewHistoryHandler creates a new history handler instance
func NewHistoryHandler(
	historyUseCase usecase.HistoryUseCase,
	polaroidCodec coreport.IDCodec,
	logger coreport.Logger,
) *HistoryHandler {
	return &HistoryHandler{
		historyUseCase: historyUseCase,
		polaroidCodec:  polaroidCodec,
		logger:         logger,
	}
}

// List handles the GET /api/polaroid-history endpoint
func (h *HistoryHandler) List(c *gin.Context) {
	var req dto.HistoryQueryRequest
	if err := middleware.BindQuery(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	principal := middleware.PrincipalFrom(c)
	page, err := h.historyUseCase.List(c.Request.Context(), principal.UserID, req.ToQuery())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewHistoryResponse(page, h.polaroidCodec))
}

// Delete handles the DELETE /api/polaroid-history endpoint
func (h *HistoryHandler) Delete(c *gin.Context) {
	var req dto.DeleteHistoryRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	principal := middleware.PrincipalFrom(c)
	deleted, err := h.historyUseCase.Delete(c.Request.Context(), principal.UserID, req.IDs)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	h.logger.Info("History records deleted", map[string]any{
		"user_id":   principal.UserID,
		"requested": len(req.IDs),
		"deleted":   deleted,
	})

	c.JSON(http.StatusOK, dto.DeleteHistoryResponse{
		Deleted: deleted,
		Message: fmt.Sprintf("Successfully deleted %d records", deleted),
	})
}

// Stats handles the GET /api/polaroid-history/stats endpoint
func (h *HistoryHandler) Stats(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)
	stats, err := h.historyUseCase.Stats(c.Request.Context(), principal.UserID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		Total:      stats.Total,
		Completed:  stats.Completed,
		Processing: stats.Processing,
		Failed:     stats.Failed,
	})
}

// Gallery handles the public GET /api/gallery endpoint
func (h *HistoryHandler) Gallery(c *gin.Context) {
	var req dto.GalleryQueryRequest
	if err := middleware.BindQuery(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	page, err := h.historyUseCase.Gallery(c.Request.Context(), usecase.GalleryQuery{
		Page:     req.Page,
		PageSize: req.PageSize,
		Type:     entity.InputType(req.Type),
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGalleryResponse(page, h.polaroidCodec))
}

// Get handles the GET /api/polaroid/:id endpoint
func (h *HistoryHandler) Get(c *gin.Context) {
	generation, err := h.historyUseCase.Get(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGenerationRecord(generation, h.polaroidCodec))
}
