package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	mockcore "github.com/amirhossein-jamali/polaroid-studio/mocks/port/core"
	mockusecase "github.com/amirhossein-jamali/polaroid-studio/mocks/port/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerationHandler_Generate(t *testing.T) {
	t.Run("should create a generation with the idempotency key", func(t *testing.T) {
		generationUseCase := mockusecase.NewMockGenerationUseCase(t)
		generationUseCase.On("Create", mock.Anything, testUser, usecase.CreateGenerationInput{
			InputType:    entity.InputTypeText,
			InputContent: "a cat on a windowsill",
			IsPrivate:    true,
			RequestID:    "retry-1",
		}).Return(&usecase.GenerationOutcome{Generation: completedGeneration(42)}, nil).Once()

		h := NewGenerationHandler(generationUseCase, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.POST("/api/polaroid-generate", h.Generate)

		req := httptest.NewRequest(http.MethodPost, "/api/polaroid-generate",
			bytes.NewBufferString(`{"input_type":"text","input_content":"a cat on a windowsill","is_private":true}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(HeaderIdempotencyKey, "retry-1")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, testCodec.Polaroid.Encode(42), body["id"])
		assert.Equal(t, "completed", body["task_status"])
		assert.Equal(t, "https://cdn.example/out.png", body["output_image_url"])
		assert.EqualValues(t, entity.CreditCostText, body["credit_cost"])
		assert.EqualValues(t, 1500, body["processing_time"])
	})

	t.Run("should reject invalid bodies before calling the use case", func(t *testing.T) {
		h := NewGenerationHandler(mockusecase.NewMockGenerationUseCase(t), testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.POST("/api/polaroid-generate", h.Generate)

		recorder := doJSON(router, http.MethodPost, "/api/polaroid-generate", `{"input_type":"image","input_image_url":"not a url"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Invalid request body", body["error"])
		assert.Equal(t, errs.CodeValidation, body["code"])
		assert.NotEmpty(t, body["details"])
	})

	t.Run("should render insufficient credit", func(t *testing.T) {
		generationUseCase := mockusecase.NewMockGenerationUseCase(t)
		generationUseCase.On("Create", mock.Anything, testUser, mock.Anything).
			Return(nil, errs.NewInsufficientCreditError(testUser.UserID, 8, 3)).Once()

		h := NewGenerationHandler(generationUseCase, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.POST("/api/polaroid-generate", h.Generate)

		recorder := doJSON(router, http.MethodPost, "/api/polaroid-generate",
			`{"input_type":"image","input_image_url":"https://example.com/cat.png"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, errs.CodeInsufficientCredit, decodeBody(t, recorder)["code"])
	})
}

func TestGenerationHandler_QuickGenerate(t *testing.T) {
	quickOutcome := func(imageCount int) *usecase.QuickGenerationOutcome {
		generation := completedGeneration(7)
		return &usecase.QuickGenerationOutcome{
			Generation:      generation,
			DetectedStyle:   entity.StylePortrait,
			InputImageCount: imageCount,
		}
	}

	multipartBody := func(t *testing.T, imageCount int) (*bytes.Buffer, string) {
		t.Helper()
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)
		require.NoError(t, writer.WriteField("type", "multiImage"))
		require.NoError(t, writer.WriteField("content", "my dog at the beach"))
		for i := 0; i < imageCount; i++ {
			part, err := writer.CreatePart(textproto.MIMEHeader{
				"Content-Disposition": {fmt.Sprintf(`form-data; name="images"; filename="dog-%d.png"`, i)},
				"Content-Type":        {"image/png"},
			})
			require.NoError(t, err)
			_, err = part.Write([]byte("png-bytes"))
			require.NoError(t, err)
		}
		require.NoError(t, writer.Close())
		return buf, writer.FormDataContentType()
	}

	t.Run("should accept a json text request", func(t *testing.T) {
		generationUseCase := mockusecase.NewMockGenerationUseCase(t)
		generationUseCase.On("Quick", mock.Anything, testUser, usecase.QuickGenerationInput{
			Type:    entity.QuickTypeText,
			Content: "portrait of my grandmother",
		}).Return(quickOutcome(0), nil).Once()

		h := NewGenerationHandler(generationUseCase, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.POST("/api/mvp-generate", h.QuickGenerate)

		recorder := doJSON(router, http.MethodPost, "/api/mvp-generate", `{"type":"text","content":"portrait of my grandmother"}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, true, body["success"])
		data := body["data"].(map[string]any)
		assert.Equal(t, testCodec.Polaroid.Encode(7), data["id"])
		assert.Equal(t, string(entity.StylePortrait), data["detectedStyle"])
		assert.NotContains(t, data, "inputImageCount")
	})

	t.Run("should read uploaded images from a multipart form", func(t *testing.T) {
		generationUseCase := mockusecase.NewMockGenerationUseCase(t)
		generationUseCase.On("Quick", mock.Anything, testUser, mock.MatchedBy(func(input usecase.QuickGenerationInput) bool {
			return input.Type == entity.QuickTypeMultiImage &&
				input.Content == "my dog at the beach" &&
				len(input.Images) == 2 &&
				input.Images[0].ContentType == "image/png" &&
				input.Images[1].Filename == "dog-1.png" &&
				string(input.Images[0].Data) == "png-bytes"
		})).Return(quickOutcome(2), nil).Once()

		h := NewGenerationHandler(generationUseCase, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.POST("/api/mvp-generate", h.QuickGenerate)

		body, contentType := multipartBody(t, 2)
		req := httptest.NewRequest(http.MethodPost, "/api/mvp-generate", body)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		data := decodeBody(t, recorder)["data"].(map[string]any)
		assert.EqualValues(t, 2, data["inputImageCount"])
	})

	t.Run("should reject more images than allowed", func(t *testing.T) {
		h := NewGenerationHandler(mockusecase.NewMockGenerationUseCase(t), testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.POST("/api/mvp-generate", h.QuickGenerate)

		body, contentType := multipartBody(t, entity.MaxUploadImages+1)
		req := httptest.NewRequest(http.MethodPost, "/api/mvp-generate", body)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "At most 5 images are allowed", decodeBody(t, recorder)["error"])
	})

	t.Run("should reject unknown types", func(t *testing.T) {
		h := NewGenerationHandler(mockusecase.NewMockGenerationUseCase(t), testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.POST("/api/mvp-generate", h.QuickGenerate)

		recorder := doJSON(router, http.MethodPost, "/api/mvp-generate", `{"type":"video"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestTaskHandler_Query(t *testing.T) {
	t.Run("should return the record with its execute time", func(t *testing.T) {
		publicID := testCodec.Polaroid.Encode(42)
		taskUseCase := mockusecase.NewMockTaskUseCase(t)
		taskUseCase.On("Query", mock.Anything, testUser, publicID).Return(completedGeneration(42), nil).Once()

		h := NewTaskHandler(taskUseCase, testCodec.Polaroid)
		router := newTestRouter(t, testUser)
		router.POST("/api/task", h.Query)

		recorder := doJSON(router, http.MethodPost, "/api/task", fmt.Sprintf(`{"fluxId":%q}`, publicID))

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, publicID, body["id"])
		assert.EqualValues(t, 1500, body["executeTime"])
		assert.Equal(t, "completed", body["task_status"])
	})

	t.Run("should require a flux id", func(t *testing.T) {
		h := NewTaskHandler(mockusecase.NewMockTaskUseCase(t), testCodec.Polaroid)
		router := newTestRouter(t, testUser)
		router.POST("/api/task", h.Query)

		recorder := doJSON(router, http.MethodPost, "/api/task", `{}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("should hide records of other users", func(t *testing.T) {
		taskUseCase := mockusecase.NewMockTaskUseCase(t)
		taskUseCase.On("Query", mock.Anything, testUser, "someone-else").Return(nil, errs.ErrGenerationNotFound).Once()

		h := NewTaskHandler(taskUseCase, testCodec.Polaroid)
		router := newTestRouter(t, testUser)
		router.POST("/api/task", h.Query)

		recorder := doJSON(router, http.MethodPost, "/api/task", `{"fluxId":"someone-else"}`)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
