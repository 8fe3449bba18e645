package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey lets clients retry a generation without paying twice
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLength = 64

// GenerationHandler handles generation HTTP requests
type GenerationHandler struct {
	generationUseCase usecase.GenerationUseCase
	polaroidCodec     coreport.IDCodec
	logger            coreport.Logger
}

// NewGenerationHandler creates a new generation handler instance
func NewGenerationHandler(
	generationUseCase usecase.GenerationUseCase,
	polaroidCodec coreport.IDCodec,
	logger coreport.Logger,
) *GenerationHandler {
	return &GenerationHandler{
		generationUseCase: generationUseCase,
		polaroidCodec:     polaroidCodec,
		logger:            logger,
	}
}

// Generate handles the POST /api/polaroid-generate endpoint
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req dto.CreateGenerationRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	requestID := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
	if len(requestID) > maxIdempotencyKeyLength {
		middleware.AbortWithError(c, errs.NewValidationError("Invalid request body",
			errs.FieldViolation{Field: HeaderIdempotencyKey, Rule: "max", Message: fmt.Sprintf("must be at most %d", maxIdempotencyKeyLength)}))
		return
	}

	outcome, err := h.generationUseCase.Create(c.Request.Context(), middleware.PrincipalFrom(c), usecase.CreateGenerationInput{
		InputType:     entity.InputType(req.InputType),
		InputContent:  req.InputContent,
		InputImageURL: req.InputImageURL,
		StyleType:     req.StyleType,
		IsPrivate:     req.IsPrivate,
		Locale:        req.Locale,
		RequestID:     requestID,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	if outcome.Replayed {
		h.logger.Debug("Replayed generation for idempotency key", map[string]any{
			"generation_id": outcome.Generation.ID,
			"request_id":    requestID,
		})
	}

	c.JSON(http.StatusOK, dto.NewGenerationResponse(outcome.Generation, h.polaroidCodec))
}

// QuickGenerate handles the POST /api/mvp-generate endpoint. It accepts a
// multipart form with images or a JSON body for text.
func (h *GenerationHandler) QuickGenerate(c *gin.Context) {
	input, err := h.quickInput(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	outcome, err := h.generationUseCase.Quick(c.Request.Context(), middleware.PrincipalFrom(c), input)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuickGenerationResponse{
		Success: true,
		Data: dto.QuickGenerationData{
			ID:              h.polaroidCodec.Encode(outcome.Generation.ID),
			OutputImageURL:  outcome.Generation.OutputImageURL,
			ProcessingTime:  outcome.Generation.ProcessingTime,
			DetectedStyle:   string(outcome.DetectedStyle),
			InputImageCount: outcome.InputImageCount,
		},
	})
}

func (h *GenerationHandler) quickInput(c *gin.Context) (usecase.QuickGenerationInput, error) {
	var req dto.QuickGenerationRequest

	if !strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		if err := middleware.BindJSON(c, &req); err != nil {
			return usecase.QuickGenerationInput{}, err
		}
		return usecase.QuickGenerationInput{Type: entity.QuickType(req.Type), Content: req.Content}, nil
	}

	if err := middleware.BindForm(c, &req); err != nil {
		return usecase.QuickGenerationInput{}, err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return usecase.QuickGenerationInput{}, errs.NewValidationError("Invalid request body",
			errs.FieldViolation{Field: "images", Rule: "format", Message: err.Error()})
	}

	files := form.File["images"]
	if len(files) > entity.MaxUploadImages {
		return usecase.QuickGenerationInput{}, errs.NewValidationError(
			fmt.Sprintf("At most %d images are allowed", entity.MaxUploadImages),
			errs.FieldViolation{Field: "images", Rule: "max"})
	}

	images := make([]entity.ImageUpload, 0, len(files))
	for i, file := range files {
		upload, err := readUpload(file)
		if err != nil {
			h.logger.Warn("Failed to read uploaded image", map[string]any{
				"position": i + 1,
				"filename": file.Filename,
				"error":    err.Error(),
			})
			return usecase.QuickGenerationInput{}, errs.NewValidationError(
				fmt.Sprintf("Image %d could not be read", i+1),
				errs.FieldViolation{Field: "images", Rule: "format"})
		}
		images = append(images, upload)
	}

	return usecase.QuickGenerationInput{
		Type:    entity.QuickType(req.Type),
		Content: req.Content,
		Images:  images,
	}, nil
}

// readUpload loads at most one byte over the size limit so oversized files
// still fail the size check
func readUpload(file *multipart.FileHeader) (entity.ImageUpload, error) {
	src, err := file.Open()
	if err != nil {
		return entity.ImageUpload{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, entity.MaxUploadSize+1))
	if err != nil {
		return entity.ImageUpload{}, err
	}

	return entity.ImageUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
