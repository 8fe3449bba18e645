package generation

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
)

// Metric labels of generation kinds and outcomes
const (
	kindClassic = "classic"
	kindQuick   = "quick"

	outcomeSucceeded = "succeeded"
	outcomeFailed    = "failed"
	outcomePending   = "pending"
)

// defaultFailureReason is stored when the vendor gives no reason
const defaultFailureReason = "Generation failed"

// GenerationUseCase implements usecase.GenerationUseCase
type GenerationUseCase struct {
	uow          persistence.UnitOfWork
	credit       usecase.CreditUseCase
	generator    gateway.ImageGenerator
	settler      usecase.SettlementService
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder
}

// NewGenerationUseCase creates a new generation use case
func NewGenerationUseCase(
	uow persistence.UnitOfWork,
	credit usecase.CreditUseCase,
	generator gateway.ImageGenerator,
	settler usecase.SettlementService,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
) *GenerationUseCase {
	return &GenerationUseCase{
		uow:          uow,
		credit:       credit,
		generator:    generator,
		settler:      settler,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// Create runs a classic polaroid generation
func (u *GenerationUseCase) Create(
	ctx context.Context,
	principal *entity.Principal,
	input usecase.CreateGenerationInput,
) (*usecase.GenerationOutcome, error) {
	if principal == nil || principal.UserID == "" {
		return nil, errs.ErrAuthRequired
	}
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	if input.RequestID != "" {
		existing, err := u.findReplay(ctx, principal.UserID, input.RequestID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &usecase.GenerationOutcome{Generation: existing, Replayed: true}, nil
		}
	}

	cost := entity.CreditCost(input.InputType)
	if err := u.ensureCredit(ctx, principal, cost); err != nil {
		return nil, err
	}

	generation, err := entity.NewGeneration(entity.NewGenerationParams{
		UserID:        principal.UserID,
		RequestID:     requestIDOrNew(input.RequestID),
		InputType:     input.InputType,
		InputContent:  strings.TrimSpace(input.InputContent),
		InputImageURL: input.InputImageURL,
		StyleType:     input.StyleType,
		Locale:        input.Locale,
		IsPrivate:     input.IsPrivate,
		CreditCost:    cost,
	}, u.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	if err := u.uow.GetGenerationRepository(ctx).Create(ctx, generation); err != nil {
		if input.RequestID == "" || !errors.Is(err, errs.ErrConstraintViolation) {
			return nil, err
		}
		// a concurrent request with the same key won the insert
		existing, replayErr := u.findReplay(ctx, principal.UserID, input.RequestID)
		if replayErr != nil {
			return nil, replayErr
		}
		if existing == nil {
			return nil, err
		}
		return &usecase.GenerationOutcome{Generation: existing, Replayed: true}, nil
	}

	req := gateway.GenerationRequest{
		Prompt: entity.ClassicPolaroidPrompt(generation.InputType, generation.InputContent, generation.Locale),
	}
	if generation.InputType == entity.InputTypeImage {
		req.ReferenceImages = []string{generation.InputImageURL}
	}

	generation, err = u.execute(ctx, generation, req, kindClassic)
	if err != nil {
		return nil, err
	}
	return &usecase.GenerationOutcome{Generation: generation}, nil
}

// Quick runs a generation whose style is detected from the description
func (u *GenerationUseCase) Quick(
	ctx context.Context,
	principal *entity.Principal,
	input usecase.QuickGenerationInput,
) (*usecase.QuickGenerationOutcome, error) {
	if principal == nil || principal.UserID == "" {
		return nil, errs.ErrAuthRequired
	}

	content := strings.TrimSpace(input.Content)
	if err := validateQuickInput(input.Type, content, input.Images); err != nil {
		return nil, err
	}

	inputType := entity.InputTypeText
	cost := entity.CreditCostText
	if input.Type == entity.QuickTypeMultiImage {
		inputType = entity.InputTypeImage
		cost = entity.CreditCostMultiImage
	}

	if err := u.ensureCredit(ctx, principal, cost); err != nil {
		return nil, err
	}

	references, mediaIDs, err := u.registerUploads(ctx, input.Images)
	if err != nil {
		return nil, err
	}

	style := entity.StylePortrait
	description := entity.ReferenceImagesPrompt
	if content != "" {
		style = entity.DetectStyle(content)
		description = content
	}

	generation, err := entity.NewGeneration(entity.NewGenerationParams{
		UserID:       principal.UserID,
		RequestID:    uuid.NewString(),
		InputType:    inputType,
		InputContent: content,
		StyleType:    string(style),
		CreditCost:   cost,
		Metadata: map[string]any{
			"source":            kindQuick,
			"input_image_count": len(input.Images),
			"media_ids":         mediaIDs,
		},
	}, u.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	if err := u.uow.GetGenerationRepository(ctx).Create(ctx, generation); err != nil {
		return nil, err
	}

	generation, err = u.execute(ctx, generation, gateway.GenerationRequest{
		Prompt:          entity.BuildStylePrompt(description, style),
		ReferenceImages: references,
	}, kindQuick)
	if err != nil {
		return nil, err
	}

	return &usecase.QuickGenerationOutcome{
		Generation:      generation,
		DetectedStyle:   style,
		InputImageCount: len(input.Images),
	}, nil
}

// execute calls the vendor and moves the record to its next state
func (u *GenerationUseCase) execute(
	ctx context.Context,
	generation *entity.Generation,
	req gateway.GenerationRequest,
	kind string,
) (*entity.Generation, error) {
	start := u.timeProvider.Now()
	result, err := u.generator.Generate(ctx, req)
	elapsed := u.timeProvider.Since(start)

	if err != nil {
		u.logger.Error("Image vendor call failed", map[string]any{
			"generation_id": generation.ID,
			"user_id":       generation.UserID,
			"error":         err.Error(),
		})
		return nil, u.fail(ctx, generation, err.Error(), kind, elapsed)
	}

	switch result.Status {
	case gateway.VendorStatusRunning:
		if err := u.uow.GetGenerationRepository(ctx).SetVendorTaskID(ctx, generation.ID, result.TaskID); err != nil {
			return nil, err
		}
		generation.VendorTaskID = result.TaskID
		u.metrics.RecordGeneration(kind, outcomePending, elapsed.Std())
		u.logger.Info("Generation still running at vendor", map[string]any{
			"generation_id":  generation.ID,
			"vendor_task_id": result.TaskID,
		})
		return generation, nil

	case gateway.VendorStatusSucceeded:
		if result.ImageURL == "" {
			return nil, u.fail(ctx, generation, entity.NoImageReason, kind, elapsed)
		}
		generation.VendorTaskID = result.TaskID
		settled, err := u.settler.Settle(ctx, generation, result, elapsed.Milliseconds())
		if err != nil {
			u.metrics.RecordGeneration(kind, outcomeFailed, elapsed.Std())
			return nil, err
		}
		u.metrics.RecordGeneration(kind, outcomeSucceeded, elapsed.Std())
		return settled, nil

	default:
		reason := result.FailureReason
		if reason == "" {
			reason = defaultFailureReason
		}
		return nil, u.fail(ctx, generation, reason, kind, elapsed)
	}
}

// fail records the failure and returns the client-facing error
func (u *GenerationUseCase) fail(
	ctx context.Context,
	generation *entity.Generation,
	reason string,
	kind string,
	elapsed coreport.Duration,
) error {
	u.metrics.RecordGeneration(kind, outcomeFailed, elapsed.Std())
	// the failure must be stored even when the caller has gone away
	if _, err := u.settler.Fail(context.WithoutCancel(ctx), generation, reason); err != nil {
		u.logger.Error("Failed to mark generation as failed", map[string]any{
			"generation_id": generation.ID,
			"error":         err.Error(),
		})
	}
	return errs.NewGenerationError(generation.ID, reason)
}

// findReplay returns the caller's earlier record with the same request id
func (u *GenerationUseCase) findReplay(ctx context.Context, userID, requestID string) (*entity.Generation, error) {
	existing, err := u.uow.GetGenerationRepository(ctx).GetByRequestID(ctx, requestID)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	if !existing.OwnedBy(userID) {
		return nil, errs.ErrDuplicateRequest
	}

	u.logger.Info("Replaying generation request", map[string]any{
		"generation_id": existing.ID,
		"request_id":    requestID,
	})
	return existing, nil
}

// ensureCredit rejects callers whose balance does not cover cost
func (u *GenerationUseCase) ensureCredit(ctx context.Context, principal *entity.Principal, cost int64) error {
	account, err := u.credit.GetOrCreateAccount(ctx, principal)
	if err != nil {
		return err
	}
	if !account.CanAfford(cost) {
		return errs.NewInsufficientCreditError(principal.UserID, cost, account.Credit())
	}
	return nil
}

// registerUploads stores media rows for uploads and returns their data urls
func (u *GenerationUseCase) registerUploads(ctx context.Context, uploads []entity.ImageUpload) ([]string, []uint64, error) {
	if len(uploads) == 0 {
		return nil, nil, nil
	}

	mediaRepo := u.uow.GetMediaRepository(ctx)
	references := make([]string, 0, len(uploads))
	mediaIDs := make([]uint64, 0, len(uploads))

	for _, upload := range uploads {
		media, err := mediaRepo.GetByMD5(ctx, upload.MD5())
		if err != nil {
			if !errs.IsNotFoundError(err) {
				return nil, nil, err
			}
			media = upload.ToMedia(u.timeProvider.Now())
			if err := mediaRepo.Create(ctx, media); err != nil {
				return nil, nil, err
			}
		}
		mediaIDs = append(mediaIDs, media.ID)
		references = append(references, upload.DataURL())
	}

	return references, mediaIDs, nil
}

func validateCreateInput(input usecase.CreateGenerationInput) error {
	if !input.InputType.Valid() {
		return errs.NewValidationError("Invalid input type", errs.FieldViolation{Field: "input_type", Rule: "oneof"})
	}
	if utf8.RuneCountInString(input.InputContent) > entity.MaxContentLength {
		return errs.NewValidationError("Input content is too long", errs.FieldViolation{Field: "input_content", Rule: "max"})
	}

	switch input.InputType {
	case entity.InputTypeText:
		if strings.TrimSpace(input.InputContent) == "" {
			return errs.ErrTextContentRequired
		}
	case entity.InputTypeImage:
		if strings.TrimSpace(input.InputImageURL) == "" {
			return errs.ErrImageURLRequired
		}
	}
	return nil
}

func validateQuickInput(quickType entity.QuickType, content string, images []entity.ImageUpload) error {
	if utf8.RuneCountInString(content) > entity.MaxContentLength {
		return errs.NewValidationError("Content must be at most 500 characters", errs.FieldViolation{Field: "content", Rule: "max"})
	}

	switch quickType {
	case entity.QuickTypeText:
		if content == "" {
			return errs.NewValidationError("Content is required for text generation", errs.FieldViolation{Field: "content", Rule: "required"})
		}
	case entity.QuickTypeMultiImage:
		if len(images) < entity.MinUploadImages {
			return errs.NewValidationError("At least one image is required", errs.FieldViolation{Field: "images", Rule: "min"})
		}
		if len(images) > entity.MaxUploadImages {
			return errs.NewValidationError("At most 5 images are allowed", errs.FieldViolation{Field: "images", Rule: "max"})
		}
		for i, image := range images {
			if err := image.Validate(i + 1); err != nil {
				return err
			}
		}
	default:
		return errs.NewValidationError("Invalid generation type", errs.FieldViolation{Field: "type", Rule: "oneof"})
	}
	return nil
}

func requestIDOrNew(requestID string) string {
	if requestID != "" {
		return requestID
	}
	return uuid.NewString()
}
