package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	mcore "github.com/amirhossein-jamali/polaroid-studio/mocks/port/core"
	mgate "github.com/amirhossein-jamali/polaroid-studio/mocks/port/gateway"
	mpers "github.com/amirhossein-jamali/polaroid-studio/mocks/port/persistence"
	muse "github.com/amirhossein-jamali/polaroid-studio/mocks/port/usecase"
)

var fixedNow = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

type generationFixture struct {
	uow         *mpers.MockUnitOfWork
	generations *mpers.MockGenerationRepository
	media       *mpers.MockMediaRepository
	credit      *muse.MockCreditUseCase
	generator   *mgate.MockImageGenerator
	settler     *muse.MockSettlementService
	useCase     *GenerationUseCase
}

func newGenerationFixture(t *testing.T) *generationFixture {
	f := &generationFixture{
		uow:         mpers.NewMockUnitOfWork(t),
		generations: mpers.NewMockGenerationRepository(t),
		media:       mpers.NewMockMediaRepository(t),
		credit:      muse.NewMockCreditUseCase(t),
		generator:   mgate.NewMockImageGenerator(t),
		settler:     muse.NewMockSettlementService(t),
	}
	f.uow.On("GetGenerationRepository", mock.Anything).Return(f.generations).Maybe()
	f.uow.On("GetMediaRepository", mock.Anything).Return(f.media).Maybe()

	timeProvider := mcore.NewFixedTimeProvider(t, fixedNow)
	timeProvider.On("Since", mock.Anything).Return(coreport.Duration(1500 * time.Millisecond)).Maybe()

	f.useCase = NewGenerationUseCase(
		f.uow,
		f.credit,
		f.generator,
		f.settler,
		timeProvider,
		mcore.NewPermissiveMockLogger(t),
		mcore.NewPermissiveMockMetricsRecorder(t),
	)
	return f
}

func (f *generationFixture) withBalance(principal *entity.Principal, credit int64) {
	account := entity.RestoreCreditAccount(1, principal.UserID, credit, fixedNow, fixedNow)
	f.credit.On("GetOrCreateAccount", mock.Anything, principal).Return(account, nil)
}

func (f *generationFixture) expectInsert(id uint64) {
	f.generations.On("Create", mock.Anything, mock.AnythingOfType("*entity.Generation")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Generation).ID = id }).
		Return(nil).Once()
}

func TestGenerationUseCase_Create(t *testing.T) {
	ctx := context.Background()
	principal := &entity.Principal{UserID: "user-1"}
	textInput := usecase.CreateGenerationInput{
		InputType:    entity.InputTypeText,
		InputContent: "a dog on a skateboard",
	}

	t.Run("should generate and settle a text polaroid", func(t *testing.T) {
		// Arrange
		f := newGenerationFixture(t)
		f.withBalance(principal, 100)
		f.expectInsert(11)

		result := &gateway.GenerationResult{
			TaskID:   "task-1",
			Status:   gateway.VendorStatusSucceeded,
			ImageURL: "https://cdn.example.com/1.png",
		}
		f.generator.On("Generate", ctx, mock.MatchedBy(func(req gateway.GenerationRequest) bool {
			return strings.Contains(req.Prompt, "The image should capture: a dog on a skateboard") &&
				len(req.ReferenceImages) == 0
		})).Return(result, nil)

		f.settler.On("Settle", ctx, mock.MatchedBy(func(g *entity.Generation) bool {
			return g.ID == 11 && g.CreditCost == 5 && g.StyleType == entity.DefaultStyleType && g.RequestID != ""
		}), result, int64(1500)).
			Return(&entity.Generation{ID: 11, TaskStatus: entity.TaskStatusCompleted, OutputImageURL: result.ImageURL}, nil)

		// Act
		outcome, err := f.useCase.Create(ctx, principal, textInput)

		// Assert
		require.NoError(t, err)
		assert.False(t, outcome.Replayed)
		assert.Equal(t, entity.TaskStatusCompleted, outcome.Generation.TaskStatus)
		assert.Equal(t, "https://cdn.example.com/1.png", outcome.Generation.OutputImageURL)
	})

	t.Run("should pass the source image for image input", func(t *testing.T) {
		f := newGenerationFixture(t)
		f.withBalance(principal, 8)
		f.expectInsert(12)

		result := &gateway.GenerationResult{TaskID: "t", Status: gateway.VendorStatusSucceeded, ImageURL: "https://cdn.example.com/2.png"}
		f.generator.On("Generate", ctx, mock.MatchedBy(func(req gateway.GenerationRequest) bool {
			return strings.HasPrefix(req.Prompt, "Transform this image") &&
				len(req.ReferenceImages) == 1 && req.ReferenceImages[0] == "https://example.com/src.jpg"
		})).Return(result, nil)
		f.settler.On("Settle", ctx, mock.MatchedBy(func(g *entity.Generation) bool { return g.CreditCost == 8 }), result, int64(1500)).
			Return(&entity.Generation{ID: 12, TaskStatus: entity.TaskStatusCompleted}, nil)

		outcome, err := f.useCase.Create(ctx, principal, usecase.CreateGenerationInput{
			InputType:     entity.InputTypeImage,
			InputImageURL: "https://example.com/src.jpg",
		})

		require.NoError(t, err)
		assert.Equal(t, uint64(12), outcome.Generation.ID)
	})

	t.Run("should reject insufficient credit before calling the vendor", func(t *testing.T) {
		f := newGenerationFixture(t)
		f.withBalance(principal, 4)

		_, err := f.useCase.Create(ctx, principal, textInput)

		assert.True(t, errs.IsInsufficientCreditError(err))
		assert.Equal(t, "1000402", errs.ErrorCode(err))
		assert.Equal(t, http.StatusBadRequest, errs.HTTPStatus(err))
		f.generations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("should validate content rules", func(t *testing.T) {
		testCases := []struct {
			name     string
			input    usecase.CreateGenerationInput
			expected error
		}{
			{"Text without content", usecase.CreateGenerationInput{InputType: entity.InputTypeText, InputContent: "  "}, errs.ErrTextContentRequired},
			{"Image without url", usecase.CreateGenerationInput{InputType: entity.InputTypeImage}, errs.ErrImageURLRequired},
			{"Unknown type", usecase.CreateGenerationInput{InputType: "video"}, errs.ErrValidation},
			{"Content too long", usecase.CreateGenerationInput{InputType: entity.InputTypeText, InputContent: strings.Repeat("a", 501)}, errs.ErrValidation},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				f := newGenerationFixture(t)

				_, err := f.useCase.Create(ctx, principal, tc.input)

				assert.ErrorIs(t, err, tc.expected)
				assert.Equal(t, http.StatusBadRequest, errs.HTTPStatus(err))
			})
		}
	})

	t.Run("should mark the record failed when the vendor errors", func(t *testing.T) {
		f := newGenerationFixture(t)
		f.withBalance(principal, 100)
		f.expectInsert(13)
		f.generator.On("Generate", ctx, mock.Anything).Return(nil, errors.New("vendor timeout"))
		f.settler.On("Fail", mock.Anything, mock.MatchedBy(func(g *entity.Generation) bool { return g.ID == 13 }), "vendor timeout").
			Return(&entity.Generation{ID: 13, TaskStatus: entity.TaskStatusFailed}, nil)

		_, err := f.useCase.Create(ctx, principal, textInput)

		assert.ErrorIs(t, err, errs.ErrGenerationFailed)
		assert.Equal(t, "Generation failed, please try again", errs.PublicMessage(err))
		f.settler.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should use the vendor failure reason", func(t *testing.T) {
		f := newGenerationFixture(t)
		f.withBalance(principal, 100)
		f.expectInsert(14)
		f.generator.On("Generate", ctx, mock.Anything).Return(&gateway.GenerationResult{
			TaskID:        "task-14",
			Status:        gateway.VendorStatusFailed,
			FailureReason: "content policy",
		}, nil)
		f.settler.On("Fail", mock.Anything, mock.Anything, "content policy").Return(&entity.Generation{ID: 14}, nil)

		_, err := f.useCase.Create(ctx, principal, textInput)

		var genErr *errs.GenerationError
		require.True(t, errors.As(err, &genErr))
		assert.Equal(t, "content policy", genErr.Reason)
	})

	t.Run("should store the failure after the caller disconnects", func(t *testing.T) {
		f := newGenerationFixture(t)
		f.withBalance(principal, 100)
		f.expectInsert(19)

		reqCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		f.generator.On("Generate", reqCtx, mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(nil, context.Canceled)
		f.settler.On("Fail", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }),
			mock.MatchedBy(func(g *entity.Generation) bool { return g.ID == 19 }), context.Canceled.Error()).
			Return(&entity.Generation{ID: 19, TaskStatus: entity.TaskStatusFailed}, nil).Once()

		_, err := f.useCase.Create(reqCtx, principal, textInput)

		assert.ErrorIs(t, err, errs.ErrGenerationFailed)
	})

	t.Run("should fail a vendor success without an image", func(t *testing.T) {
		f := newGenerationFixture(t)
		f.withBalance(principal, 100)
		f.expectInsert(20)
		f.generator.On("Generate", ctx, mock.Anything).
			Return(&gateway.GenerationResult{TaskID: "task-20", Status: gateway.VendorStatusSucceeded}, nil)
		f.settler.On("Fail", mock.Anything, mock.Anything, entity.NoImageReason).Return(&entity.Generation{ID: 20}, nil)

		_, err := f.useCase.Create(ctx, principal, textInput)

		var genErr *errs.GenerationError
		require.True(t, errors.As(err, &genErr))
		assert.Equal(t, entity.NoImageReason, genErr.Reason)
		f.settler.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should keep processing when the vendor is still running", func(t *testing.T) {
		f := newGenerationFixture(t)
		f.withBalance(principal, 100)
		f.expectInsert(15)
		f.generator.On("Generate", ctx, mock.Anything).
			Return(&gateway.GenerationResult{TaskID: "task-15", Status: gateway.VendorStatusRunning}, nil)
		f.generations.On("SetVendorTaskID", ctx, uint64(15), "task-15").Return(nil)

		outcome, err := f.useCase.Create(ctx, principal, textInput)

		require.NoError(t, err)
		assert.Equal(t, entity.TaskStatusProcessing, outcome.Generation.TaskStatus)
		assert.Equal(t, "task-15", outcome.Generation.VendorTaskID)
		f.settler.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should replay a known request id", func(t *testing.T) {
		f := newGenerationFixture(t)
		existing := &entity.Generation{ID: 16, UserID: "user-1", RequestID: "req-1", TaskStatus: entity.TaskStatusCompleted}
		f.generations.On("GetByRequestID", ctx, "req-1").Return(existing, nil)

		input := textInput
		input.RequestID = "req-1"
		outcome, err := f.useCase.Create(ctx, principal, input)

		require.NoError(t, err)
		assert.True(t, outcome.Replayed)
		assert.Same(t, existing, outcome.Generation)
		f.credit.AssertNotCalled(t, "GetOrCreateAccount", mock.Anything, mock.Anything)
	})

	t.Run("should replay a request that won a concurrent insert", func(t *testing.T) {
		f := newGenerationFixture(t)
		f.withBalance(principal, 100)
		winner := &entity.Generation{ID: 16, UserID: "user-1", RequestID: "req-1", TaskStatus: entity.TaskStatusProcessing}
		f.generations.On("GetByRequestID", ctx, "req-1").Return(nil, errs.ErrGenerationNotFound).Once()
		f.generations.On("Create", ctx, mock.Anything).
			Return(fmt.Errorf("%w: idx_polaroid_request_id", errs.ErrConstraintViolation)).Once()
		f.generations.On("GetByRequestID", ctx, "req-1").Return(winner, nil).Once()

		input := textInput
		input.RequestID = "req-1"
		outcome, err := f.useCase.Create(ctx, principal, input)

		require.NoError(t, err)
		assert.True(t, outcome.Replayed)
		assert.Same(t, winner, outcome.Generation)
		f.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("should surface constraint violations without a request id", func(t *testing.T) {
		f := newGenerationFixture(t)
		f.withBalance(principal, 100)
		f.generations.On("Create", ctx, mock.Anything).Return(errs.ErrConstraintViolation).Once()

		_, err := f.useCase.Create(ctx, principal, textInput)

		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
		f.generations.AssertNotCalled(t, "GetByRequestID", mock.Anything, mock.Anything)
	})

	t.Run("should refuse a request id owned by someone else", func(t *testing.T) {
		f := newGenerationFixture(t)
		f.generations.On("GetByRequestID", ctx, "req-1").
			Return(&entity.Generation{ID: 17, UserID: "user-2", RequestID: "req-1"}, nil)

		input := textInput
		input.RequestID = "req-1"
		_, err := f.useCase.Create(ctx, principal, input)

		assert.ErrorIs(t, err, errs.ErrDuplicateRequest)
	})

	t.Run("should surface an unpaid settlement", func(t *testing.T) {
		f := newGenerationFixture(t)
		f.withBalance(principal, 100)
		f.expectInsert(18)
		result := &gateway.GenerationResult{TaskID: "t", Status: gateway.VendorStatusSucceeded, ImageURL: "https://cdn.example.com/18.png"}
		f.generator.On("Generate", ctx, mock.Anything).Return(result, nil)
		f.settler.On("Settle", ctx, mock.Anything, result, int64(1500)).
			Return(nil, errs.NewInsufficientCreditError("user-1", 5, 0))

		_, err := f.useCase.Create(ctx, principal, textInput)

		assert.True(t, errs.IsInsufficientCreditError(err))
	})

	t.Run("should require a principal", func(t *testing.T) {
		f := newGenerationFixture(t)

		_, err := f.useCase.Create(ctx, nil, textInput)

		assert.ErrorIs(t, err, errs.ErrAuthRequired)
	})
}

func TestGenerationUseCase_Quick(t *testing.T) {
	ctx := context.Background()
	principal := &entity.Principal{UserID: "guest_1", Guest: true}
	png := entity.ImageUpload{Filename: "a.png", ContentType: "image/png", Data: []byte("first")}
	jpg := entity.ImageUpload{Filename: "b.jpg", ContentType: "image/jpeg", Data: []byte("second")}

	t.Run("should detect the style of a text request", func(t *testing.T) {
		f := newGenerationFixture(t)
		f.withBalance(principal, 100)
		f.generations.On("Create", ctx, mock.MatchedBy(func(g *entity.Generation) bool {
			return g.StyleType == string(entity.StyleParty) && g.CreditCost == 5 && g.InputType == entity.InputTypeText
		})).Run(func(args mock.Arguments) { args.Get(1).(*entity.Generation).ID = 21 }).Return(nil)

		result := &gateway.GenerationResult{TaskID: "t", Status: gateway.VendorStatusSucceeded, ImageURL: "https://cdn.example.com/21.png"}
		f.generator.On("Generate", ctx, mock.MatchedBy(func(req gateway.GenerationRequest) bool {
			return strings.HasPrefix(req.Prompt, "A vintage instant camera party photograph") &&
				strings.Contains(req.Prompt, "of birthday party on the roof.")
		})).Return(result, nil)
		f.settler.On("Settle", ctx, mock.Anything, result, int64(1500)).
			Return(&entity.Generation{ID: 21, TaskStatus: entity.TaskStatusCompleted, ProcessingTime: 1500}, nil)

		outcome, err := f.useCase.Quick(ctx, principal, usecase.QuickGenerationInput{
			Type:    entity.QuickTypeText,
			Content: "birthday party on the roof",
		})

		require.NoError(t, err)
		assert.Equal(t, entity.StyleParty, outcome.DetectedStyle)
		assert.Equal(t, 0, outcome.InputImageCount)
		assert.Equal(t, int64(1500), outcome.Generation.ProcessingTime)
	})

	t.Run("should register uploads and send them as references", func(t *testing.T) {
		f := newGenerationFixture(t)
		f.withBalance(principal, 100)

		f.media.On("GetByMD5", ctx, png.MD5()).Return(&entity.Media{ID: 3, MD5: png.MD5()}, nil)
		f.media.On("GetByMD5", ctx, jpg.MD5()).Return(nil, errs.ErrNotFound)
		f.media.On("Create", ctx, mock.MatchedBy(func(m *entity.Media) bool { return m.MD5 == jpg.MD5() })).
			Run(func(args mock.Arguments) { args.Get(1).(*entity.Media).ID = 4 }).Return(nil)

		f.generations.On("Create", ctx, mock.MatchedBy(func(g *entity.Generation) bool {
			return g.InputType == entity.InputTypeImage && g.CreditCost == 8 &&
				g.StyleType == string(entity.StylePortrait) && g.Metadata["input_image_count"] == 2
		})).Run(func(args mock.Arguments) { args.Get(1).(*entity.Generation).ID = 22 }).Return(nil)

		result := &gateway.GenerationResult{TaskID: "t", Status: gateway.VendorStatusSucceeded, ImageURL: "https://cdn.example.com/22.png"}
		f.generator.On("Generate", ctx, mock.MatchedBy(func(req gateway.GenerationRequest) bool {
			return len(req.ReferenceImages) == 2 &&
				req.ReferenceImages[0] == png.DataURL() &&
				strings.Contains(req.Prompt, entity.ReferenceImagesPrompt)
		})).Return(result, nil)
		f.settler.On("Settle", ctx, mock.Anything, result, int64(1500)).
			Return(&entity.Generation{ID: 22, TaskStatus: entity.TaskStatusCompleted}, nil)

		outcome, err := f.useCase.Quick(ctx, principal, usecase.QuickGenerationInput{
			Type:   entity.QuickTypeMultiImage,
			Images: []entity.ImageUpload{png, jpg},
		})

		require.NoError(t, err)
		assert.Equal(t, entity.StylePortrait, outcome.DetectedStyle)
		assert.Equal(t, 2, outcome.InputImageCount)
	})

	t.Run("should validate input", func(t *testing.T) {
		gif := entity.ImageUpload{ContentType: "image/gif", Data: []byte("gif")}
		six := []entity.ImageUpload{png, png, png, png, png, png}

		testCases := []struct {
			name  string
			input usecase.QuickGenerationInput
		}{
			{"Text without content", usecase.QuickGenerationInput{Type: entity.QuickTypeText}},
			{"Content too long", usecase.QuickGenerationInput{Type: entity.QuickTypeText, Content: strings.Repeat("字", 501)}},
			{"No images", usecase.QuickGenerationInput{Type: entity.QuickTypeMultiImage}},
			{"Too many images", usecase.QuickGenerationInput{Type: entity.QuickTypeMultiImage, Images: six}},
			{"Unsupported image", usecase.QuickGenerationInput{Type: entity.QuickTypeMultiImage, Images: []entity.ImageUpload{gif}}},
			{"Unknown type", usecase.QuickGenerationInput{Type: "video", Content: "x"}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				f := newGenerationFixture(t)

				_, err := f.useCase.Quick(ctx, principal, tc.input)

				assert.True(t, errs.IsValidationError(err))
			})
		}
	})
}
