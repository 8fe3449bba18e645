package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
)

// InputType is the kind of source a generation starts from
type InputType string

const (
	// InputTypeText generates from a text description
	InputTypeText InputType = "text"
	// InputTypeImage transforms a source image
	InputTypeImage InputType = "image"
)

// Valid reports whether the input type is supported
func (t InputType) Valid() bool {
	return t == InputTypeText || t == InputTypeImage
}

// QuickType is the kind of a quick generation request
type QuickType string

const (
	QuickTypeText       QuickType = "text"
	QuickTypeMultiImage QuickType = "multiImage"
)

// TaskStatus is the lifecycle state of a generation record
type TaskStatus string

const (
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
	TaskStatusCanceled   TaskStatus = "canceled"
)

// DefaultStyleType is used when a request does not name a style
const DefaultStyleType = "classic_polaroid"

// DefaultLocale is used when a request does not name a locale
const DefaultLocale = "en"

// NoImageReason is stored on records the vendor finished without an image
const NoImageReason = "No image returned"

// Credit costs per generation kind
const (
	CreditCostText       int64 = 5
	CreditCostImage      int64 = 8
	CreditCostMultiImage int64 = 8
)

// CreditCost returns the price of a generation for the given input type
func CreditCost(inputType InputType) int64 {
	if inputType == InputTypeImage {
		return CreditCostImage
	}
	return CreditCostText
}

// Generation is one image-generation request and its outcome
type Generation struct {
	ID        uint64
	UserID    string
	RequestID string

	InputType     InputType
	InputContent  string
	InputImageURL string
	StyleType     string
	Locale        string
	IsPrivate     bool

	TaskStatus     TaskStatus
	OutputImageURL string
	ThumbnailURL   string
	ErrorMsg       string

	CreditCost     int64
	ProcessingTime int64 // milliseconds
	DownloadNum    int64
	ViewsNum       int64
	RetryCount     int

	VendorTaskID    string
	GeminiRequestID string
	GeminiResponse  []byte
	Metadata        map[string]any

	// Unix milliseconds, zero when unknown
	ExecuteStartTime int64
	ExecuteEndTime   int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGenerationParams holds the caller-supplied fields of a new generation
type NewGenerationParams struct {
	UserID        string
	RequestID     string
	InputType     InputType
	InputContent  string
	InputImageURL string
	StyleType     string
	Locale        string
	IsPrivate     bool
	CreditCost    int64
	Metadata      map[string]any
}

// NewGeneration creates a generation in the processing state
func NewGeneration(params NewGenerationParams, now time.Time) (*Generation, error) {
	if strings.TrimSpace(params.UserID) == "" {
		return nil, errs.ErrAuthRequired
	}
	if !params.InputType.Valid() {
		return nil, errs.NewValidationError("Invalid input type", errs.FieldViolation{
			Field: "input_type",
			Rule:  "oneof",
		})
	}

	styleType := params.StyleType
	if styleType == "" {
		styleType = DefaultStyleType
	}
	locale := params.Locale
	if locale == "" {
		locale = DefaultLocale
	}

	return &Generation{
		UserID:           params.UserID,
		RequestID:        params.RequestID,
		InputType:        params.InputType,
		InputContent:     params.InputContent,
		InputImageURL:    params.InputImageURL,
		StyleType:        styleType,
		Locale:           locale,
		IsPrivate:        params.IsPrivate,
		TaskStatus:       TaskStatusProcessing,
		CreditCost:       params.CreditCost,
		Metadata:         params.Metadata,
		ExecuteStartTime: now.UnixMilli(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Completion carries the vendor output used to complete a generation
type Completion struct {
	OutputImageURL  string
	ThumbnailURL    string
	ProcessingTime  int64
	GeminiRequestID string
	GeminiResponse  []byte
}

// IsSettled reports whether the generation has left the processing state
func (g *Generation) IsSettled() bool {
	return g.TaskStatus != TaskStatusProcessing
}

// Complete moves a processing generation to completed
func (g *Generation) Complete(c Completion, now time.Time) error {
	if g.IsSettled() {
		return errs.ErrGenerationSettled
	}

	g.TaskStatus = TaskStatusCompleted
	g.OutputImageURL = c.OutputImageURL
	g.ThumbnailURL = c.ThumbnailURL
	if g.ThumbnailURL == "" {
		g.ThumbnailURL = c.OutputImageURL
	}
	g.GeminiRequestID = c.GeminiRequestID
	g.GeminiResponse = c.GeminiResponse
	g.ExecuteEndTime = now.UnixMilli()
	g.ProcessingTime = c.ProcessingTime
	if g.ProcessingTime <= 0 {
		g.ProcessingTime = g.ExecuteTime()
	}
	g.ErrorMsg = ""
	g.UpdatedAt = now
	return nil
}

// Fail moves a processing generation to failed with the given reason
func (g *Generation) Fail(reason string, now time.Time) error {
	if g.IsSettled() {
		return errs.ErrGenerationSettled
	}

	g.TaskStatus = TaskStatusFailed
	g.ErrorMsg = reason
	g.ExecuteEndTime = now.UnixMilli()
	g.UpdatedAt = now
	return nil
}

// ExecuteTime returns the elapsed execution time in milliseconds, zero when unknown
func (g *Generation) ExecuteTime() int64 {
	if g.ExecuteStartTime == 0 || g.ExecuteEndTime == 0 || g.ExecuteEndTime < g.ExecuteStartTime {
		return 0
	}
	return g.ExecuteEndTime - g.ExecuteStartTime
}

// OwnedBy reports whether the generation belongs to the user
func (g *Generation) OwnedBy(userID string) bool {
	return userID != "" && g.UserID == userID
}

// VisibleTo reports whether the user may read the generation
func (g *Generation) VisibleTo(userID string) bool {
	return !g.IsPrivate || g.OwnedBy(userID)
}

// Redacted returns a copy with private input content removed
func (g *Generation) Redacted() *Generation {
	clone := *g
	if clone.IsPrivate {
		clone.InputContent = ""
	}
	return &clone
}

// GenerationStats summarizes a user's generations by status
type GenerationStats struct {
	Total      int64
	Completed  int64
	Processing int64
	Failed     int64
}
