package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/usecase/catalog"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/usecase/credit"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/usecase/engagement"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/usecase/generation"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/usecase/history"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/usecase/task"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/cache"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/hashid"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/imagegen/nanobanana"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/imagegen/placeholder"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/ratelimit"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/scheduler"
	timeprovider "github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/config"
)

const (
	providerNanoBanana  = "nano_banana"
	providerPlaceholder = "placeholder"
	backendRedis        = "redis"
	backendMemory       = "memory"

	limiterCleanupInterval = time.Minute
	limiterMaxIdle         = 10 * time.Minute
	maxMultipartMemory     = 16 << 20
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logger.Options{
		Production: cfg.IsProduction(),
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		CallerInfo: cfg.Logger.CallerInfo,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
		MaxBackups: cfg.Logger.MaxBackups,
		Compress:   cfg.Logger.Compress,
	})
	defer func() { _ = appLogger.Flush() }()

	tp := timeprovider.NewClock()
	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	// Connect to the database
	dbManager := database.NewManager(database.FromAppConfig(cfg.Database, cfg.Logger.Level), appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	migrationMgr := dbManager.MigrationManager()
	if err := migrationMgr.MigrateAll(rootCtx); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if cfg.Database.SeedData {
		if err := migrationMgr.SeedDevelopmentData(rootCtx); err != nil {
			appLogger.Error("Failed to seed development data", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// Redis backs the rate limiter and the activity store when enabled
	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		redisClient = newRedisClient(rootCtx, cfg.Redis, appLogger)
		defer redisClient.Close()
	}

	codecs, err := hashid.NewCodecs(cfg.Hashid.Salt)
	if err != nil {
		appLogger.Error("Failed to create id codecs", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	prom := metrics.NewPrometheus()
	features := entity.FeatureFlags{
		MVPMode:      cfg.Features.MVPMode,
		Payment:      cfg.Features.Payment,
		GiftCode:     cfg.Features.GiftCode,
		OrderHistory: cfg.Features.OrderHistory,
	}

	authenticator := newAuthenticator(cfg.Auth, appLogger)
	generator := newImageGenerator(cfg.Generator, appLogger)
	rateLimiter := newRateLimiter(rootCtx, cfg.RateLimit, redisClient, tp)
	activityStore := newActivityStore(redisClient)

	// Initialize use cases
	uow := dbManager.CreateUnitOfWork()
	ledger := credit.NewLedger(uow, tp, appLogger)
	creditUseCase := credit.NewCreditUseCase(uow, ledger, tp, appLogger, prom, credit.Options{
		GuestInitialCredits: cfg.Auth.GuestInitialCredits,
		Features:            features,
	})
	settler := generation.NewSettler(uow, ledger, tp, appLogger, prom)
	generationUseCase := generation.NewGenerationUseCase(uow, creditUseCase, generator, settler, tp, appLogger, prom)
	taskUseCase := task.NewTaskUseCase(uow, generator, settler, codecs.Polaroid, tp, appLogger, task.Options{
		StaleAfter: cfg.Scheduler.StaleAfter,
		BatchSize:  cfg.Scheduler.BatchSize,
	})
	historyUseCase := history.NewHistoryUseCase(uow, codecs.Polaroid, appLogger)
	engagementUseCase := engagement.NewEngagementUseCase(uow, codecs.Polaroid, tp, appLogger)
	catalogUseCase := catalog.NewCatalogUseCase(
		repository.NewChargeProductRepository(dbManager.DB(), appLogger),
		activityStore,
		features,
		appLogger,
	)

	// Background reconciliation of generations still running at the vendor
	var reconciler *scheduler.Reconciler
	if cfg.Scheduler.Enabled {
		reconciler = scheduler.NewReconciler(taskUseCase, cfg.Scheduler.ReconcileSpec, 0, appLogger)
		if err := reconciler.Start(); err != nil {
			appLogger.Error("Failed to start reconciler", map[string]any{
				"error": err.Error(),
				"spec":  cfg.Scheduler.ReconcileSpec,
			})
			os.Exit(1)
		}
	}

	// Initialize API handlers
	handlers := routes.Handlers{
		Generation: handler.NewGenerationHandler(generationUseCase, codecs.Polaroid, appLogger),
		Task:       handler.NewTaskHandler(taskUseCase, codecs.Polaroid),
		History:    handler.NewHistoryHandler(historyUseCase, codecs.Polaroid, appLogger),
		Engagement: handler.NewEngagementHandler(engagementUseCase),
		Account:    handler.NewAccountHandler(creditUseCase, codecs.Account, codecs.Polaroid, appLogger),
		Catalog:    handler.NewCatalogHandler(catalogUseCase, codecs.ChargeProduct),
		Health:     handler.NewHealthHandler(dbManager, appLogger),
	}

	deps := routes.Dependencies{
		Logger:         appLogger,
		TimeProvider:   tp,
		Metrics:        prom,
		Authenticator:  authenticator,
		RateLimiter:    rateLimiter,
		Production:     cfg.IsProduction(),
		MVPMode:        cfg.Features.MVPMode,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if cfg.Metrics.Enabled {
		deps.MetricsPath = cfg.Metrics.Path
		deps.MetricsHandler = prom.Handler()
	}

	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory
	routes.SetupMiddlewares(router, deps)
	routes.SetupRoutes(router, handlers, deps)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":      server.Addr,
			"env":       cfg.Environment,
			"auth_mode": authenticator.Mode(),
			"generator": cfg.Generator.Provider,
			"log_level": appLogger.GetLevel().String(),
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	if reconciler != nil {
		reconciler.Stop(ctx)
	}
	cancelRoot()

	appLogger.Info("Server exited gracefully", nil)
}

func newRedisClient(ctx context.Context, cfg config.RedisConfig, appLogger coreport.Logger) redis.UniversalClient {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// Rate limits fail open and the activity read returns an error, so keep going
		appLogger.Warn("Redis is not reachable at startup", map[string]any{
			"addr":  cfg.Addr,
			"error": err.Error(),
		})
	} else {
		appLogger.Info("Connected to redis", map[string]any{"addr": cfg.Addr, "db": cfg.DB})
	}
	return client
}

func newAuthenticator(cfg config.AuthConfig, appLogger coreport.Logger) gateway.Authenticator {
	if gateway.AuthMode(cfg.Mode) == gateway.AuthModeHosted {
		return auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.Issuer, appLogger)
	}
	return auth.NewGuestAuthenticator()
}

func newImageGenerator(cfg config.GeneratorConfig, appLogger coreport.Logger) gateway.ImageGenerator {
	if cfg.Provider == providerPlaceholder {
		appLogger.Warn("Using placeholder image generator", nil)
		return placeholder.NewGenerator()
	}
	return nanobanana.NewClient(nanobanana.Options{
		BaseURL:         cfg.BaseURL,
		APIKey:          cfg.APIKey,
		Model:           cfg.Model,
		PollInterval:    cfg.PollInterval,
		MaxPollAttempts: cfg.MaxPollAttempts,
		RequestTimeout:  cfg.RequestTimeout,
	}, appLogger)
}

// newRateLimiter returns nil when rate limiting is disabled
func newRateLimiter(ctx context.Context, cfg config.RateLimitConfig, redisClient redis.UniversalClient, tp coreport.TimeProvider) gateway.RateLimiter {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Backend == backendRedis && redisClient != nil {
		return ratelimit.NewRedisLimiter(redisClient, tp)
	}
	limiter := ratelimit.NewMemoryLimiter(tp)
	limiter.StartCleanup(ctx, limiterCleanupInterval, limiterMaxIdle)
	return limiter
}

func newActivityStore(redisClient redis.UniversalClient) gateway.ActivityStore {
	if redisClient != nil {
		return cache.NewRedisActivityStore(redisClient)
	}
	return cache.NewMemoryActivityStore()
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration
	switch cfg.Database.Driver {
	case database.DriverPostgres:
		for key, value := range map[string]string{
			"database.host (or PS_DB_HOST)":         cfg.Database.Host,
			"database.port (or PS_DB_PORT)":         cfg.Database.Port,
			"database.username (or PS_DB_USERNAME)": cfg.Database.Username,
			"database.database (or PS_DB_NAME)":     cfg.Database.Database,
		} {
			if value == "" {
				missingConfigs = append(missingConfigs, key)
			}
		}
	case database.DriverSQLite:
		if cfg.Database.Database == "" {
			missingConfigs = append(missingConfigs, "database.database")
		}
	default:
		return fmt.Errorf("invalid database driver: %q, must be one of: %s, %s",
			cfg.Database.Driver, database.DriverPostgres, database.DriverSQLite)
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	// Logger configuration
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	// Authentication
	switch gateway.AuthMode(cfg.Auth.Mode) {
	case gateway.AuthModeHosted:
		if cfg.Auth.JWTSecret == "" {
			missingConfigs = append(missingConfigs, "auth.jwtSecret (or PS_AUTH_JWT_SECRET)")
		}
	case gateway.AuthModeGuest:
	default:
		return fmt.Errorf("invalid auth mode: %q, must be one of: %s, %s",
			cfg.Auth.Mode, gateway.AuthModeHosted, gateway.AuthModeGuest)
	}
	if cfg.Auth.GuestInitialCredits < 0 {
		return fmt.Errorf("auth.guestInitialCredits cannot be negative")
	}

	// Image generator
	switch cfg.Generator.Provider {
	case providerNanoBanana:
		if cfg.Generator.APIKey == "" {
			missingConfigs = append(missingConfigs, "generator.apiKey (or PS_GENERATOR_API_KEY)")
		}
	case providerPlaceholder:
		if cfg.Environment == config.Production {
			return fmt.Errorf("the placeholder generator cannot be used in production")
		}
	default:
		return fmt.Errorf("invalid generator provider: %q, must be one of: %s, %s",
			cfg.Generator.Provider, providerNanoBanana, providerPlaceholder)
	}

	// Rate limiting
	if cfg.RateLimit.Enabled {
		switch cfg.RateLimit.Backend {
		case backendRedis:
			if !cfg.Redis.Enabled {
				return fmt.Errorf("rateLimit.backend %q requires redis.enabled", backendRedis)
			}
		case backendMemory:
		default:
			return fmt.Errorf("invalid rate limit backend: %q, must be one of: %s, %s",
				cfg.RateLimit.Backend, backendRedis, backendMemory)
		}
	}

	if cfg.Scheduler.Enabled && cfg.Scheduler.ReconcileSpec == "" {
		missingConfigs = append(missingConfigs, "scheduler.reconcileSpec")
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/': %q", cfg.Metrics.Path)
	}

	// Return error with list of missing configurations
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// If we're in production, do additional validation for sensitive settings
	if cfg.Environment == config.Production {
		var warnings []string

		if cfg.Database.Driver == database.DriverPostgres {
			sslMode := strings.ToLower(cfg.Database.SSLMode)
			if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
				warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
			}
		}
		if cfg.Hashid.Salt == "" {
			warnings = append(warnings, "hashid.salt should be set (PS_HASHID_SALT) so public ids cannot be guessed")
		}
		for _, origin := range cfg.Server.AllowedOrigins {
			if origin == "*" {
				warnings = append(warnings, "server.allowedOrigins should list explicit origins in production")
				break
			}
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
