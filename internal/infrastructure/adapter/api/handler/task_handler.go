package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// TaskHandler handles task status requests
type TaskHandler struct {
	taskUseCase   usecase.TaskUseCase
	polaroidCodec coreport.IDCodec
}

// NewTaskHandler creates a new task handler instance
func NewTaskHandler(taskUseCase usecase.TaskUseCase, polaroidCodec coreport.IDCodec) *TaskHandler {
	return &TaskHandler{
		taskUseCase:   taskUseCase,
		polaroidCodec: polaroidCodec,
	}
}

// Query handles the POST /api/task endpoint
func (h *TaskHandler) Query(c *gin.Context) {
	var req dto.TaskRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	generation, err := h.taskUseCase.Query(c.Request.Context(), middleware.PrincipalFrom(c), req.FluxID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskResponse(generation, h.polaroidCodec))
}
