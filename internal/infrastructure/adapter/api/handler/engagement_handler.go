package handler

import (
	"net/http"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// EngagementHandler records downloads and views of generations
type EngagementHandler struct {
	engagementUseCase usecase.EngagementUseCase
}

// NewEngagementHandler creates a new engagement handler instance
func NewEngagementHandler(engagementUseCase usecase.EngagementUseCase) *EngagementHandler {
	return &EngagementHandler{engagementUseCase: engagementUseCase}
}

// Download handles the POST /api/polaroid/:id/download endpoint
func (h *EngagementHandler) Download(c *gin.Context) {
	var req dto.DownloadRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	_, err := h.engagementUseCase.RecordDownload(c.Request.Context(), middleware.PrincipalFrom(c), usecase.DownloadInput{
		PublicID:     c.Param("id"),
		DownloadType: entity.DownloadType(req.DownloadType),
		UserAgent:    c.Request.UserAgent(),
		IPAddress:    c.ClientIP(),
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EngagementResponse{Success: true})
}

// View handles the POST /api/polaroid/:id/view endpoint
func (h *EngagementHandler) View(c *gin.Context) {
	var req dto.ViewRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	_, err := h.engagementUseCase.RecordView(c.Request.Context(), middleware.PrincipalFrom(c), usecase.ViewInput{
		PublicID:     c.Param("id"),
		ViewDuration: req.ViewDuration,
		Referrer:     req.Referrer,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EngagementResponse{Success: true})
}

// bindOptionalJSON binds the body when one was sent
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	return middleware.BindJSON(c, obj)
}
