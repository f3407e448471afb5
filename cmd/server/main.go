package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/portal/backend/internal/application/catalog"
	orderapp "github.com/portal/backend/internal/application/order"
	storeapp "github.com/portal/backend/internal/application/store"
	syncapp "github.com/portal/backend/internal/application/sync"
	"github.com/portal/backend/internal/infrastructure/auth"
	"github.com/portal/backend/internal/infrastructure/cache"
	"github.com/portal/backend/internal/infrastructure/config"
	"github.com/portal/backend/internal/infrastructure/logger"
	"github.com/portal/backend/internal/infrastructure/persistence"
	"github.com/portal/backend/internal/infrastructure/scheduler"
	"github.com/portal/backend/internal/infrastructure/shopify"
	"github.com/portal/backend/internal/interfaces/http/handler"
	"github.com/portal/backend/internal/interfaces/http/middleware"
	"github.com/portal/backend/internal/interfaces/http/router"
)

//	@title			Portal Sync API
//	@version		1.0
//	@description	Bidirectional storefront sync backend: bulk order and catalog import, product publishing and store connection management.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Portal Sync backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	sessionRepo := persistence.NewGormSessionRepository(db.DB)
	storeVariantRepo := persistence.NewGormStoreVariantRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Credential cache: Redis when configured, in-process otherwise
	var credCache cache.CredentialCache
	if cfg.Redis.Host != "" {
		redisCache, err := cache.NewRedisCredentialCache(cfg.Redis, cfg.Shopify.CredentialCacheTTL)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing redis", zap.Error(err))
			}
		}()
		credCache = redisCache
		log.Info("Credential cache backed by redis",
			zap.String("host", cfg.Redis.Host),
			zap.Duration("ttl", cfg.Shopify.CredentialCacheTTL),
		)
	} else {
		credCache = cache.NewInMemoryCredentialCache(cfg.Shopify.CredentialCacheTTL)
		log.Info("Credential cache in-memory", zap.Duration("ttl", cfg.Shopify.CredentialCacheTTL))
	}

	// Platform client: bulk jobs, JSONL streaming, product pushes and OAuth
	platform := shopify.NewClient(&cfg.Shopify, log)

	// Application services
	resolver := syncapp.NewCredentialResolver(credCache, storeRepo, sessionRepo, log)
	ingestor := persistence.NewGormIngestor(db.DB, log)
	syncService := syncapp.NewSyncService(
		resolver,
		platform,
		platform,
		ingestor,
		platform,
		storeRepo,
		productRepo,
		storeVariantRepo,
		cfg.Shopify.Vendor+" Fulfillment",
		log,
	)
	storeService := storeapp.NewStoreService(storeRepo, sessionRepo, platform, credCache, log)
	productService := catalogapp.NewProductService(productRepo, variantRepo, storeVariantRepo)
	orderService := orderapp.NewOrderService(orderRepo, storeRepo)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Background sync scheduler (off by default)
	if cfg.Sync.SchedulerEnabled {
		syncScheduler := scheduler.NewSyncScheduler(scheduler.Config{
			Enabled:    cfg.Sync.SchedulerEnabled,
			Interval:   cfg.Sync.SchedulerInterval,
			RunTimeout: cfg.Sync.SchedulerRunTimeout,
		}, syncService, storeRepo, log)
		syncScheduler.Start(context.Background())
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := syncScheduler.Stop(stopCtx); err != nil {
				log.Error("Error stopping sync scheduler", zap.Error(err))
			}
		}()
	}

	// HTTP layer
	handlers := router.Handlers{
		System:  handler.NewSystemHandler(db.DB),
		Store:   handler.NewStoreHandler(storeService),
		Product: handler.NewProductHandler(productService),
		Order:   handler.NewOrderHandler(orderService),
		Sync:    handler.NewSyncHandler(syncService),
		Webhook: handler.NewWebhookHandler(storeService, cfg.Shopify),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	limiter := middleware.NewRateLimiter(300, time.Minute)
	defer limiter.Close()
	engine := router.New(cfg, jwtService, handlers, limiter, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
