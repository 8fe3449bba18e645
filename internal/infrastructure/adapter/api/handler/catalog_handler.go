package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves charge products and the app activity banner
type CatalogHandler struct {
	catalogUseCase usecase.CatalogUseCase
	productCodec   coreport.IDCodec
}

// NewCatalogHandler creates a new catalog handler instance
func NewCatalogHandler(catalogUseCase usecase.CatalogUseCase, productCodec coreport.IDCodec) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
		productCodec:   productCodec,
	}
}

// ChargeProducts handles the GET /api/charge-products endpoint
func (h *CatalogHandler) ChargeProducts(c *gin.Context) {
	products, err := h.catalogUseCase.ListChargeProducts(c.Request.Context(), c.Query("locale"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ChargeProductsResponse{Data: dto.NewChargeProducts(products, h.productCodec)})
}

// Activity handles the GET /api/activity endpoint
func (h *CatalogHandler) Activity(c *gin.Context) {
	app, err := h.catalogUseCase.Activity(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ActivityResponse{App: app})
}
