package handler

import (
	"net/http"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles credit account HTTP requests
type AccountHandler struct {
	creditUseCase usecase.CreditUseCase
	accountCodec  coreport.IDCodec
	polaroidCodec coreport.IDCodec
	logger        coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(
	creditUseCase usecase.CreditUseCase,
	accountCodec coreport.IDCodec,
	polaroidCodec coreport.IDCodec,
	logger coreport.Logger,
) *AccountHandler {
	return &AccountHandler{
		creditUseCase: creditUseCase,
		accountCodec:  accountCodec,
		polaroidCodec: polaroidCodec,
		logger:        logger,
	}
}

// GetAccount handles the GET /api/account endpoint
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.creditUseCase.GetOrCreateAccount(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountResponse(account, h.accountCodec))
}

// ListBillings handles the GET /api/account/billing endpoint
func (h *AccountHandler) ListBillings(c *gin.Context) {
	var req dto.PageQueryRequest
	if err := middleware.BindQuery(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	principal := middleware.PrincipalFrom(c)
	page, err := h.creditUseCase.ListBillings(c.Request.Context(), principal.UserID, entity.PageRequest{
		Page:  req.Page,
		Limit: req.Limit,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBillingListResponse(page, h.polaroidCodec))
}

// RedeemGiftCode handles the POST /api/gift-code/redeem endpoint
func (h *AccountHandler) RedeemGiftCode(c *gin.Context) {
	var req dto.RedeemGiftCodeRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	principal := middleware.PrincipalFrom(c)
	redemption, err := h.creditUseCase.RedeemGiftCode(c.Request.Context(), principal, req.Code)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	h.logger.Info("Gift code redeemed", map[string]any{
		"user_id":  principal.UserID,
		"credited": redemption.Credited,
	})

	c.JSON(http.StatusOK, dto.RedeemGiftCodeResponse{
		Credited: redemption.Credited,
		Credit:   redemption.Account.Credit(),
	})
}
