package handler

import (
	"net/http"
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

func TestHistoryHandler_List(t *testing.T) {
	t.Run("should pass filters and null redacted content", func(t *testing.T) {
		private := completedGeneration(2)
		private.IsPrivate = true
		query := usecase.HistoryQuery{
			Page: entity.PageRequest{Page: 2, Limit: 10},
			Filter: entity.HistoryFilter{
				Type:   entity.HistoryTypeText,
				Status: entity.HistoryStatusCompleted,
				Sort:   entity.HistorySortOldest,
			},
		}

		historyUseCase := mockusecase.NewMockHistoryUseCase(t)
		historyUseCase.On("List", mock.Anything, testUser.UserID, query).Return(&usecase.HistoryPage{
			Records:    []*entity.Generation{completedGeneration(1), private.Redacted()},
			Pagination: entity.NewPageInfo(query.Page, 12),
			Filters:    query.Filter,
		}, nil).Once()

		h := NewHistoryHandler(historyUseCase, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.GET("/api/polaroid-history", h.List)

		recorder := doJSON(router, http.MethodGet, "/api/polaroid-history?page=2&limit=10&type=text&status=completed&sort=oldest", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)

		records := body["records"].([]any)
		require.Len(t, records, 2)
		assert.Equal(t, "a cat on a windowsill", records[0].(map[string]any)["input_content"])
		assert.Nil(t, records[1].(map[string]any)["input_content"])
		assert.Equal(t, testCodec.Polaroid.Encode(2), records[1].(map[string]any)["id"])

		pagination := body["pagination"].(map[string]any)
		assert.EqualValues(t, 12, pagination["total"])
		assert.EqualValues(t, 2, pagination["totalPages"])
		assert.Equal(t, true, pagination["hasPrev"])
		assert.Equal(t, false, pagination["hasNext"])

		filters := body["filters"].(map[string]any)
		assert.Equal(t, "oldest", filters["sort"])
	})

	t.Run("should reject out of range limits", func(t *testing.T) {
		h := NewHistoryHandler(mockusecase.NewMockHistoryUseCase(t), testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.GET("/api/polaroid-history", h.List)

		recorder := doJSON(router, http.MethodGet, "/api/polaroid-history?limit=500", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Invalid query parameters", body["error"])
		details := body["details"].([]any)
		assert.Equal(t, "limit", details[0].(map[string]any)["field"])
	})
}

func TestHistoryHandler_Delete(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setup       func(m *mockusecase.MockHistoryUseCase)
		wantStatus  int
		wantMessage string
	}{
		{
			name: "should report the deleted count",
			body: `{"ids":["a","b","c"]}`,
			setup: func(m *mockusecase.MockHistoryUseCase) {
				m.On("Delete", mock.Anything, testUser.UserID, []string{"a", "b", "c"}).Return(int64(2), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "should require at least one id",
			body:       `{"ids":[]}`,
			setup:      func(m *mockusecase.MockHistoryUseCase) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "should render no valid ids as a business error",
			body: `{"ids":["junk"]}`,
			setup: func(m *mockusecase.MockHistoryUseCase) {
				m.On("Delete", mock.Anything, testUser.UserID, []string{"junk"}).Return(int64(0), errs.ErrNoValidIDs).Once()
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "No valid ids provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			historyUseCase := mockusecase.NewMockHistoryUseCase(t)
			tt.setup(historyUseCase)

			h := NewHistoryHandler(historyUseCase, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
			router := newTestRouter(t, testUser)
			router.DELETE("/api/polaroid-history", h.Delete)

			recorder := doJSON(router, http.MethodDelete, "/api/polaroid-history", tt.body)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			body := decodeBody(t, recorder)
			if tt.wantStatus == http.StatusOK {
				assert.EqualValues(t, 2, body["deleted"])
				assert.Equal(t, "Successfully deleted 2 records", body["message"])
			}
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body["error"])
			}
		})
	}
}

func TestHistoryHandler_Stats(t *testing.T) {
	historyUseCase := mockusecase.NewMockHistoryUseCase(t)
	historyUseCase.On("Stats", mock.Anything, testUser.UserID).Return(&entity.GenerationStats{
		Total: 6, Completed: 4, Processing: 1, Failed: 1,
	}, nil).Once()

	h := NewHistoryHandler(historyUseCase, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
	router := newTestRouter(t, testUser)
	router.GET("/api/polaroid-history/stats", h.Stats)

	recorder := doJSON(router, http.MethodGet, "/api/polaroid-history/stats", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"total":6,"completed":4,"processing":1,"failed":1}`, recorder.Body.String())
}

func TestHistoryHandler_Gallery(t *testing.T) {
	historyUseCase := mockusecase.NewMockHistoryUseCase(t)
	historyUseCase.On("Gallery", mock.Anything, usecase.GalleryQuery{Page: 1, PageSize: 12, Type: entity.InputTypeImage}).
		Return(&usecase.GalleryPage{
			Total:    1,
			Page:     1,
			PageSize: 12,
			Records:  []*entity.Generation{completedGeneration(9)},
		}, nil).Once()

	h := NewHistoryHandler(historyUseCase, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
	router := newTestRouter(t, nil)
	router.GET("/api/gallery", h.Gallery)

	recorder := doJSON(router, http.MethodGet, "/api/gallery?page=1&pageSize=12&type=image", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.EqualValues(t, 1, body["total"])
	assert.EqualValues(t, 12, body["pageSize"])
	assert.Len(t, body["data"], 1)
}

func TestHistoryHandler_Get(t *testing.T) {
	t.Run("should serve public records to anonymous callers", func(t *testing.T) {
		publicID := testCodec.Polaroid.Encode(5)
		historyUseCase := mockusecase.NewMockHistoryUseCase(t)
		historyUseCase.On("Get", mock.Anything, (*entity.Principal)(nil), publicID).Return(completedGeneration(5), nil).Once()

		h := NewHistoryHandler(historyUseCase, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, nil)
		router.GET("/api/polaroid/:id", h.Get)

		recorder := doJSON(router, http.MethodGet, "/api/polaroid/"+publicID, "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, publicID, decodeBody(t, recorder)["id"])
	})

	t.Run("should show owners their private content", func(t *testing.T) {
		private := completedGeneration(6)
		private.IsPrivate = true
		publicID := testCodec.Polaroid.Encode(6)
		historyUseCase := mockusecase.NewMockHistoryUseCase(t)
		historyUseCase.On("Get", mock.Anything, testUser, publicID).Return(private, nil).Once()

		h := NewHistoryHandler(historyUseCase, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.GET("/api/polaroid/:id", h.Get)

		recorder := doJSON(router, http.MethodGet, "/api/polaroid/"+publicID, "")

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, true, body["is_private"])
		assert.Equal(t, "a cat on a windowsill", body["input_content"])
	})

	t.Run("should return 404 for hidden records", func(t *testing.T) {
		historyUseCase := mockusecase.NewMockHistoryUseCase(t)
		historyUseCase.On("Get", mock.Anything, testUser, "hidden").Return(nil, errs.ErrGenerationNotFound).Once()

		h := NewHistoryHandler(historyUseCase, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.GET("/api/polaroid/:id", h.Get)

		recorder := doJSON(router, http.MethodGet, "/api/polaroid/hidden", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, errs.CodeNotFound, decodeBody(t, recorder)["code"])
	})
}
