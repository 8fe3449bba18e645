package usecase

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
)

// CreateGenerationInput is a classic polaroid generation request
type CreateGenerationInput struct {
	InputType     entity.InputType
	InputContent  string
	InputImageURL string
	StyleType     string
	IsPrivate     bool
	Locale        string
	// RequestID deduplicates retried submissions, optional
	RequestID string
}

// GenerationOutcome is the result of a generation request
type GenerationOutcome struct {
	Generation *entity.Generation
	// Replayed is true when an earlier record with the same request id was returned
	Replayed bool
}

// QuickGenerationInput is a style-detected generation request
type QuickGenerationInput struct {
	Type    entity.QuickType
	Content string
	Images  []entity.ImageUpload
}

// QuickGenerationOutcome is the result of a quick generation
type QuickGenerationOutcome struct {
	Generation      *entity.Generation
	DetectedStyle   entity.PhotoStyle
	InputImageCount int
}

// GenerationUseCase defines generation entry points
type GenerationUseCase interface {
	// Create runs a classic polaroid generation and charges on success
	Create(ctx context.Context, principal *entity.Principal, input CreateGenerationInput) (*GenerationOutcome, error)

	// Quick runs a generation with automatic style detection and charges on success
	Quick(ctx context.Context, principal *entity.Principal, input QuickGenerationInput) (*QuickGenerationOutcome, error)
}

// SettlementService moves processing generations to a final state
type SettlementService interface {
	// Settle completes the generation and charges its cost in one transaction.
	// Already settled records are returned unchanged without a charge.
	Settle(ctx context.Context, generation *entity.Generation, result *gateway.GenerationResult, processingTime int64) (*entity.Generation, error)

	// Fail marks the generation failed unless it is already settled
	Fail(ctx context.Context, generation *entity.Generation, reason string) (*entity.Generation, error)
}
