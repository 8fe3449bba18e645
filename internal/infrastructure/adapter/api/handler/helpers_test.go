package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/hashid"
	mockcore "github.com/amirhossein-jamali/polaroid-studio/mocks/port/core"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	baseTime  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testUser  = &entity.Principal{UserID: "user-1", Email: "user@example.com"}
	testCodec = mustCodecs()
)

func mustCodecs() *hashid.Codecs {
	codecs, err := hashid.NewCodecs("handler-test-salt")
	if err != nil {
		panic(err)
	}
	return codecs
}

// newTestRouter runs handlers behind the error renderer, acting as principal
func newTestRouter(t *testing.T, principal *entity.Principal) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler(mockcore.NewPermissiveMockLogger(t), false))
	router.Use(func(c *gin.Context) {
		if principal != nil {
			middleware.SetPrincipal(c, principal)
		}
		c.Next()
	})
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func completedGeneration(id uint64) *entity.Generation {
	return &entity.Generation{
		ID:               id,
		UserID:           testUser.UserID,
		InputType:        entity.InputTypeText,
		InputContent:     "a cat on a windowsill",
		StyleType:        entity.DefaultStyleType,
		TaskStatus:       entity.TaskStatusCompleted,
		OutputImageURL:   "https://cdn.example/out.png",
		ThumbnailURL:     "https://cdn.example/thumb.png",
		CreditCost:       entity.CreditCostText,
		ProcessingTime:   1500,
		ExecuteStartTime: baseTime.UnixMilli(),
		ExecuteEndTime:   baseTime.Add(1500 * time.Millisecond).UnixMilli(),
		CreatedAt:        baseTime,
		UpdatedAt:        baseTime,
	}
}
