// Package router assembles the gin engine: the middleware chain and the
// versioned API routes for stores, catalog, orders, sync and webhooks.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/portal/backend/internal/infrastructure/auth"
	"github.com/portal/backend/internal/infrastructure/config"
	"github.com/portal/backend/internal/infrastructure/logger"
	"github.com/portal/backend/internal/interfaces/http/handler"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the API handlers wired into the engine
type Handlers struct {
	System  *handler.SystemHandler
	Store   *handler.StoreHandler
	Product *handler.ProductHandler
	Order   *handler.OrderHandler
	Sync    *handler.SyncHandler
	Webhook *handler.WebhookHandler
}

// New builds the gin engine with the full middleware chain and all
// routes. The caller owns the rate limiter and closes it on shutdown.
func New(cfg *config.Config, jwtService *auth.JWTService, h Handlers, limiter *middleware.RateLimiter, log *zap.Logger) *gin.Engine {
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS())
	engine.Use(middleware.Secure())
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	engine.Use(middleware.RateLimit(limiter))
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.DefaultJWTConfig(jwtService)))

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")
	{
		api.GET("/health", h.System.Health)
		api.GET("/system/info", h.System.GetSystemInfo)

		stores := api.Group("/stores")
		{
			stores.GET("", h.Store.List)
			stores.POST("", h.Store.Connect)
			stores.POST("/exchange-token", h.Store.ExchangeToken)
			stores.GET("/:domain", h.Store.Get)
			stores.POST("/:domain/members", h.Store.AddMember)
		}

		products := api.Group("/products")
		{
			products.GET("", h.Product.List)
			products.POST("", h.Product.Create)
			products.POST("/variants", h.Product.BatchVariants)
			products.GET("/:id", h.Product.Get)
			products.GET("/:id/variants", h.Product.ListVariants)
			products.PUT("/:id", h.Product.Update)
			products.DELETE("/:id", h.Product.Delete)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", h.Order.List)
			orders.GET("/count", h.Order.Count)
			orders.GET("/:id", h.Order.Get)
		}

		sync := api.Group("/sync")
		{
			sync.POST("/orders", h.Sync.PullOrders)
			sync.POST("/products", h.Sync.PullProducts)
			sync.POST("/push", h.Sync.PushProduct)
		}

		// Webhooks are signed by the platform, not by a tenant token;
		// the JWT middleware skips this prefix.
		webhooks := api.Group("/webhooks")
		{
			webhooks.POST("/app-uninstalled", h.Webhook.AppUninstalled)
			webhooks.POST("/fulfillments", h.Webhook.FulfillmentNotification)
			webhooks.POST("/tracking", h.Webhook.TrackingUpdate)
		}
	}

	return engine
}
