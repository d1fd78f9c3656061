package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/api/handlers"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/api/middleware"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/cache"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/config"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, storefront *service.StorefrontService, actions *service.CartActions, store *cache.Store, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))

	if cfg.FrontendURL != "" {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendURL},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Content-Type", "X-Request-ID"},
			AllowCredentials: true,
		}))
	}

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.SiteName,
			"endpoints": []string{
				"GET /health",
				"GET /v1/products",
				"GET /v1/products/:handle",
				"GET /v1/collections",
				"GET /v1/collections/:handle/products",
				"GET /v1/pages/:handle",
				"GET /v1/menu/:handle",
				"GET /v1/cart",
				"POST /v1/cart/items",
				"GET /webhooks/revalidate",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Shopify webhook: product/collection lifecycle events drop the matching cache tag
	router.GET("/webhooks/revalidate", handlers.HandleRevalidateWebhook(cfg, store, logger))

	// Internal trigger: drop the whole catalog cache
	router.GET("/internal/revalidate-cache", handlers.HandleRevalidateAll(store, logger))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/products", handlers.HandleGetProducts(storefront, logger))
		v1.GET("/products/:handle", handlers.HandleGetProduct(storefront, logger))
		v1.GET("/products/:handle/recommendations", handlers.HandleGetProductRecommendations(storefront, logger))
		v1.GET("/collections", handlers.HandleGetCollections(storefront, logger))
		v1.GET("/collections/:handle", handlers.HandleGetCollection(storefront, logger))
		v1.GET("/collections/:handle/products", handlers.HandleGetCollectionProducts(storefront, logger))
		v1.GET("/pages", handlers.HandleGetPages(storefront, logger))
		v1.GET("/pages/:handle", handlers.HandleGetPage(storefront, logger))
		v1.GET("/menu/:handle", handlers.HandleGetMenu(storefront, logger))
		v1.GET("/search", handlers.HandleGetProducts(storefront, logger))
		v1.GET("/search/suggest", handlers.HandleSearchSuggest(storefront, logger))

		v1.GET("/cart", handlers.HandleGetCart(actions, logger))
		v1.POST("/cart/items", handlers.HandleAddCartItem(actions, logger))
		v1.PATCH("/cart/items", handlers.HandleUpdateCartItem(actions, logger))
		v1.DELETE("/cart/items", handlers.HandleRemoveCartItem(actions, logger))
		v1.GET("/cart/checkout", handlers.HandleCheckout(actions, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
