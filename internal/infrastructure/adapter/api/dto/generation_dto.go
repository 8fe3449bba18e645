package dto

import (
	"time"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
)

// CreateGenerationRequest is the body of POST /api/polaroid-generate
type CreateGenerationRequest struct {
	InputType     string `json:"input_type" binding:"required,oneof=text image"`
	InputContent  string `json:"input_content" binding:"max=500"`
	InputImageURL string `json:"input_image_url" binding:"omitempty,url"`
	StyleType     string `json:"style_type"`
	IsPrivate     bool   `json:"is_private"`
	Locale        string `json:"locale"`
}

// GenerationResponse is returned by POST /api/polaroid-generate
type GenerationResponse struct {
	ID             string `json:"id"`
	OutputImageURL string `json:"output_image_url"`
	ThumbnailURL   string `json:"thumbnail_url"`
	ProcessingTime int64  `json:"processing_time"`
	CreditCost     int64  `json:"credit_cost"`
	TaskStatus     string `json:"task_status"`
}

// NewGenerationResponse maps a generation to the create response
func NewGenerationResponse(g *entity.Generation, codec coreport.IDCodec) GenerationResponse {
	return GenerationResponse{
		ID:             codec.Encode(g.ID),
		OutputImageURL: g.OutputImageURL,
		ThumbnailURL:   g.ThumbnailURL,
		ProcessingTime: g.ProcessingTime,
		CreditCost:     g.CreditCost,
		TaskStatus:     string(g.TaskStatus),
	}
}

// QuickGenerationRequest is the JSON form of POST /api/mvp-generate. The
// multipart form carries the same fields plus images.
type QuickGenerationRequest struct {
	Type    string `json:"type" form:"type" binding:"required,oneof=text multiImage"`
	Content string `json:"content" form:"content"`
}

// QuickGenerationData is the payload of a quick generation
type QuickGenerationData struct {
	ID              string `json:"id"`
	OutputImageURL  string `json:"outputImageUrl"`
	ProcessingTime  int64  `json:"processingTime"`
	DetectedStyle   string `json:"detectedStyle"`
	InputImageCount int    `json:"inputImageCount,omitempty"`
}

// QuickGenerationResponse wraps the quick generation payload
type QuickGenerationResponse struct {
	Success bool                `json:"success"`
	Data    QuickGenerationData `json:"data"`
}

// TaskRequest is the body of POST /api/task
type TaskRequest struct {
	FluxID string `json:"fluxId" binding:"required"`
}

// GenerationRecord is a generation as listed in history, gallery and task responses
type GenerationRecord struct {
	ID             string    `json:"id"`
	InputType      string    `json:"input_type"`
	InputContent   *string   `json:"input_content"`
	InputImageURL  *string   `json:"input_image_url"`
	OutputImageURL *string   `json:"output_image_url"`
	ThumbnailURL   *string   `json:"thumbnail_url"`
	StyleType      string    `json:"style_type"`
	TaskStatus     string    `json:"task_status"`
	IsPrivate      bool      `json:"is_private"`
	CreditCost     int64     `json:"credit_cost"`
	ProcessingTime int64     `json:"processing_time"`
	DownloadNum    int64     `json:"download_num"`
	ViewsNum       int64     `json:"views_num"`
	ErrorMsg       string    `json:"error_msg,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewGenerationRecord maps a generation; empty input content is rendered as
// null, so records redacted by the use case carry no content
func NewGenerationRecord(g *entity.Generation, codec coreport.IDCodec) GenerationRecord {
	return GenerationRecord{
		ID:             codec.Encode(g.ID),
		InputType:      string(g.InputType),
		InputContent:   nullable(g.InputContent),
		InputImageURL:  nullable(g.InputImageURL),
		OutputImageURL: nullable(g.OutputImageURL),
		ThumbnailURL:   nullable(g.ThumbnailURL),
		StyleType:      g.StyleType,
		TaskStatus:     string(g.TaskStatus),
		IsPrivate:      g.IsPrivate,
		CreditCost:     g.CreditCost,
		ProcessingTime: g.ProcessingTime,
		DownloadNum:    g.DownloadNum,
		ViewsNum:       g.ViewsNum,
		ErrorMsg:       g.ErrorMsg,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

// NewGenerationRecords maps a slice of generations
func NewGenerationRecords(generations []*entity.Generation, codec coreport.IDCodec) []GenerationRecord {
	records := make([]GenerationRecord, 0, len(generations))
	for _, g := range generations {
		records = append(records, NewGenerationRecord(g, codec))
	}
	return records
}

// TaskResponse is returned by POST /api/task
type TaskResponse struct {
	GenerationRecord
	ExecuteTime int64 `json:"executeTime"`
}

// NewTaskResponse maps a generation to the task response
func NewTaskResponse(g *entity.Generation, codec coreport.IDCodec) TaskResponse {
	return TaskResponse{
		GenerationRecord: NewGenerationRecord(g, codec),
		ExecuteTime:      g.ExecuteTime(),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
