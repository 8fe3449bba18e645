package handler

import (
	"context"
	"errors"
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

func TestAccountHandler(t *testing.T) {
	account := entity.RestoreCreditAccount(3, testUser.UserID, 95, baseTime, baseTime)

	t.Run("should return the account with a hashed id", func(t *testing.T) {
		creditUseCase := mockusecase.NewMockCreditUseCase(t)
		creditUseCase.On("GetOrCreateAccount", mock.Anything, testUser).Return(account, nil).Once()

		h := NewAccountHandler(creditUseCase, testCodec.Account, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.GET("/api/account", h.GetAccount)

		recorder := doJSON(router, http.MethodGet, "/api/account", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, testCodec.Account.Encode(3), body["id"])
		assert.Equal(t, testUser.UserID, body["userId"])
		assert.EqualValues(t, 95, body["credit"])
	})

	t.Run("should list billings with hashed polaroid ids", func(t *testing.T) {
		page := entity.PageRequest{Page: 1, Limit: 20}
		creditUseCase := mockusecase.NewMockCreditUseCase(t)
		creditUseCase.On("ListBillings", mock.Anything, testUser.UserID, page).Return(&usecase.BillingPage{
			Records: []*entity.Billing{
				{ID: 1, UserID: testUser.UserID, State: entity.BillingStateDone, Amount: -5, Type: entity.BillingTypeWithdraw, PolaroidID: 42, Description: "Generate polaroid", CreatedAt: baseTime},
			},
			Pagination: entity.NewPageInfo(page, 1),
		}, nil).Once()

		h := NewAccountHandler(creditUseCase, testCodec.Account, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.GET("/api/account/billing", h.ListBillings)

		recorder := doJSON(router, http.MethodGet, "/api/account/billing?page=1&limit=20", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		records := decodeBody(t, recorder)["records"].([]any)
		require.Len(t, records, 1)
		billing := records[0].(map[string]any)
		assert.Equal(t, testCodec.Polaroid.Encode(42), billing["polaroidId"])
		assert.EqualValues(t, -5, billing["amount"])
		assert.Equal(t, "Withdraw", billing["type"])
	})

	t.Run("should render disabled features as 403", func(t *testing.T) {
		creditUseCase := mockusecase.NewMockCreditUseCase(t)
		creditUseCase.On("ListBillings", mock.Anything, testUser.UserID, mock.Anything).Return(nil, errs.ErrFeatureDisabled).Once()

		h := NewAccountHandler(creditUseCase, testCodec.Account, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.GET("/api/account/billing", h.ListBillings)

		recorder := doJSON(router, http.MethodGet, "/api/account/billing", "")

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Equal(t, errs.CodeFeatureDisabled, decodeBody(t, recorder)["code"])
	})

	t.Run("should redeem a gift code", func(t *testing.T) {
		credited := entity.RestoreCreditAccount(3, testUser.UserID, 145, baseTime, baseTime)
		creditUseCase := mockusecase.NewMockCreditUseCase(t)
		creditUseCase.On("RedeemGiftCode", mock.Anything, testUser, "POLAROID-DEMO").Return(&usecase.GiftCodeRedemption{
			Account:  credited,
			Credited: 50,
		}, nil).Once()

		h := NewAccountHandler(creditUseCase, testCodec.Account, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.POST("/api/gift-code/redeem", h.RedeemGiftCode)

		recorder := doJSON(router, http.MethodPost, "/api/gift-code/redeem", `{"code":"POLAROID-DEMO"}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"credited":50,"credit":145}`, recorder.Body.String())
	})

	t.Run("should render used gift codes", func(t *testing.T) {
		creditUseCase := mockusecase.NewMockCreditUseCase(t)
		creditUseCase.On("RedeemGiftCode", mock.Anything, testUser, "USED").Return(nil, errs.ErrGiftCodeUsed).Once()

		h := NewAccountHandler(creditUseCase, testCodec.Account, testCodec.Polaroid, mockcore.NewPermissiveMockLogger(t))
		router := newTestRouter(t, testUser)
		router.POST("/api/gift-code/redeem", h.RedeemGiftCode)

		recorder := doJSON(router, http.MethodPost, "/api/gift-code/redeem", `{"code":"USED"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Gift code has already been used", body["error"])
		assert.Equal(t, errs.CodeGiftCodeInvalid, body["code"])
	})
}

func TestCatalogHandler(t *testing.T) {
	t.Run("should list charge products for the locale", func(t *testing.T) {
		catalogUseCase := mockusecase.NewMockCatalogUseCase(t)
		catalogUseCase.On("ListChargeProducts", mock.Anything, "zh").Return([]*entity.ChargeProduct{
			{ID: 3, Amount: 3900, OriginalAmount: 4900, Credit: 100, Currency: entity.CurrencyCNY, Locale: "zh", Title: "Starter"},
		}, nil).Once()

		h := NewCatalogHandler(catalogUseCase, testCodec.ChargeProduct)
		router := newTestRouter(t, nil)
		router.GET("/api/charge-products", h.ChargeProducts)

		recorder := doJSON(router, http.MethodGet, "/api/charge-products?locale=zh", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		data := decodeBody(t, recorder)["data"].([]any)
		require.Len(t, data, 1)
		product := data[0].(map[string]any)
		assert.Equal(t, testCodec.ChargeProduct.Encode(3), product["id"])
		assert.Equal(t, "CNY", product["currency"])
		assert.Equal(t, []any{}, product["tag"])
	})

	t.Run("should return a null activity when unset", func(t *testing.T) {
		catalogUseCase := mockusecase.NewMockCatalogUseCase(t)
		catalogUseCase.On("Activity", mock.Anything).Return(nil, nil).Once()

		h := NewCatalogHandler(catalogUseCase, testCodec.ChargeProduct)
		router := newTestRouter(t, nil)
		router.GET("/api/activity", h.Activity)

		recorder := doJSON(router, http.MethodGet, "/api/activity", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"app":null}`, recorder.Body.String())
	})

	t.Run("should return the published activity", func(t *testing.T) {
		app := `{"banner":"spring"}`
		catalogUseCase := mockusecase.NewMockCatalogUseCase(t)
		catalogUseCase.On("Activity", mock.Anything).Return(&app, nil).Once()

		h := NewCatalogHandler(catalogUseCase, testCodec.ChargeProduct)
		router := newTestRouter(t, nil)
		router.GET("/api/activity", h.Activity)

		recorder := doJSON(router, http.MethodGet, "/api/activity", "")

		assert.Equal(t, app, decodeBody(t, recorder)["app"])
	})
}

func TestEngagementHandler(t *testing.T) {
	t.Run("should record a download without a body", func(t *testing.T) {
		engagementUseCase := mockusecase.NewMockEngagementUseCase(t)
		engagementUseCase.On("RecordDownload", mock.Anything, testUser, usecase.DownloadInput{
			PublicID:  "abc",
			IPAddress: "192.0.2.1",
		}).Return(&entity.DownloadRecord{}, nil).Once()

		h := NewEngagementHandler(engagementUseCase)
		router := newTestRouter(t, testUser)
		router.POST("/api/polaroid/:id/download", h.Download)

		recorder := doJSON(router, http.MethodPost, "/api/polaroid/abc/download", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"success":true}`, recorder.Body.String())
	})

	t.Run("should reject unknown download types", func(t *testing.T) {
		h := NewEngagementHandler(mockusecase.NewMockEngagementUseCase(t))
		router := newTestRouter(t, testUser)
		router.POST("/api/polaroid/:id/download", h.Download)

		recorder := doJSON(router, http.MethodPost, "/api/polaroid/abc/download", `{"download_type":"raw"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("should record a view with its duration", func(t *testing.T) {
		duration := 12
		engagementUseCase := mockusecase.NewMockEngagementUseCase(t)
		engagementUseCase.On("RecordView", mock.Anything, testUser, usecase.ViewInput{
			PublicID:     "abc",
			ViewDuration: &duration,
			Referrer:     "https://gallery.example",
		}).Return(&entity.ViewRecord{}, nil).Once()

		h := NewEngagementHandler(engagementUseCase)
		router := newTestRouter(t, testUser)
		router.POST("/api/polaroid/:id/view", h.View)

		recorder := doJSON(router, http.MethodPost, "/api/polaroid/abc/view", `{"view_duration":12,"referrer":"https://gallery.example"}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{name: "should report a reachable database", wantStatus: http.StatusOK, wantBody: `{"status":"ok","database":"up"}`},
		{name: "should report an unreachable database", pingErr: errors.New("dial tcp: refused"), wantStatus: http.StatusServiceUnavailable, wantBody: `{"status":"degraded","database":"down"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(stubPinger{err: tt.pingErr}, mockcore.NewPermissiveMockLogger(t))
			router := newTestRouter(t, nil)
			router.GET("/healthz", h.Healthz)

			recorder := doJSON(router, http.MethodGet, "/healthz", "")

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}
