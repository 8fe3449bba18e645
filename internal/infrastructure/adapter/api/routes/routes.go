package routes

import (
	"net/http"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler of the API
type Handlers struct {
	Generation *handler.GenerationHandler
	Task       *handler.TaskHandler
	History    *handler.HistoryHandler
	Engagement *handler.EngagementHandler
	Account    *handler.AccountHandler
	Catalog    *handler.CatalogHandler
	Health     *handler.HealthHandler
}

// Dependencies are the cross-cutting collaborators of the middleware chain
type Dependencies struct {
	Logger         coreport.Logger
	TimeProvider   coreport.TimeProvider
	Metrics        coreport.MetricsRecorder
	Authenticator  gateway.Authenticator
	RateLimiter    gateway.RateLimiter // nil disables rate limiting
	Production     bool
	MVPMode        bool
	AllowedOrigins []string
	MetricsPath    string // empty disables the metrics endpoint
	MetricsHandler http.Handler
}

// SetupMiddlewares configures the middlewares shared by every route
func SetupMiddlewares(router *gin.Engine, deps Dependencies) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger, deps.TimeProvider))
	router.Use(middleware.Metrics(deps.Metrics, deps.TimeProvider))
	router.Use(middleware.ErrorHandler(deps.Logger, deps.Production))
	router.Use(middleware.CORS(deps.AllowedOrigins))
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, handlers Handlers, deps Dependencies) {
	required := middleware.Authenticate(deps.Authenticator, true)
	optional := middleware.Authenticate(deps.Authenticator, false)
	owner := middleware.RequireOwner(deps.Production, deps.MVPMode)
	limit := func(rule entity.RateLimit) gin.HandlerFunc {
		if deps.RateLimiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimit(deps.RateLimiter, rule, deps.Metrics, deps.Logger)
	}

	router.GET("/healthz", handlers.Health.Healthz)
	if deps.MetricsPath != "" && deps.MetricsHandler != nil {
		router.GET(deps.MetricsPath, gin.WrapH(deps.MetricsHandler))
	}

	api := router.Group("/api")
	{
		// Generation
		api.POST("/polaroid-generate", required, owner, limit(entity.RateLimitGenerate), handlers.Generation.Generate)
		api.POST("/mvp-generate", required, owner, limit(entity.RateLimitUpload), handlers.Generation.QuickGenerate)
		api.POST("/task", required, limit(entity.RateLimitTask), handlers.Task.Query)

		// History
		api.GET("/polaroid-history", required, limit(entity.RateLimitHistory), handlers.History.List)
		api.DELETE("/polaroid-history", required, limit(entity.RateLimitHistory), handlers.History.Delete)
		api.GET("/polaroid-history/stats", required, limit(entity.RateLimitHistory), handlers.History.Stats)

		// Public records
		api.GET("/gallery", limit(entity.RateLimitGeneral), handlers.History.Gallery)
		api.GET("/polaroid/:id", optional, limit(entity.RateLimitGeneral), handlers.History.Get)
		api.POST("/polaroid/:id/download", required, limit(entity.RateLimitDownload), handlers.Engagement.Download)
		api.POST("/polaroid/:id/view", required, limit(entity.RateLimitGeneral), handlers.Engagement.View)

		// Account
		api.GET("/account", required, limit(entity.RateLimitAccount), handlers.Account.GetAccount)
		api.GET("/account/billing", required, limit(entity.RateLimitAccount), handlers.Account.ListBillings)
		api.POST("/gift-code/redeem", required, limit(entity.RateLimitAccount), handlers.Account.RedeemGiftCode)

		// Catalog
		api.GET("/charge-products", limit(entity.RateLimitGeneral), handlers.Catalog.ChargeProducts)
		api.GET("/activity", limit(entity.RateLimitActivity), handlers.Catalog.Activity)
	}
}
