package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/cache"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/config"
)

// Topics that require dropping cached catalog responses. Anything else coming
// through the webhook is acknowledged and ignored.
var collectionWebhookTopics = []string{
	"collections/create",
	"collections/delete",
	"collections/update",
}

var productWebhookTopics = []string{
	"products/create",
	"products/delete",
	"products/update",
}

func topicIn(topic string, topics []string) bool {
	for _, t := range topics {
		if t == topic {
			return true
		}
	}
	return false
}

// HandleRevalidateWebhook handles GET /webhooks/revalidate. Shopify calls it
// on product/collection lifecycle events; the matching cache tag is dropped so
// the next read refetches.
//
// Everything except a secret mismatch answers 200: Shopify retries non-2xx
// responses and would otherwise hammer the endpoint.
func HandleRevalidateWebhook(cfg *config.Config, store *cache.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.Query("secret")
		if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(cfg.Shopify.RevalidationSecret)) != 1 {
			logger.Error("invalid revalidation secret")
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized})
			return
		}

		topic := c.GetHeader("x-shopify-topic")
		if topic == "" {
			topic = "unknown"
		}

		isCollectionUpdate := topicIn(topic, collectionWebhookTopics)
		isProductUpdate := topicIn(topic, productWebhookTopics)

		if !isCollectionUpdate && !isProductUpdate {
			// Nothing to revalidate for other topics.
			c.JSON(http.StatusOK, gin.H{"status": http.StatusOK})
			return
		}

		if isCollectionUpdate {
			n := store.InvalidateTag(cache.TagCollections)
			logger.Info("revalidated collections", zap.String("topic", topic), zap.Int("dropped", n))
		}
		if isProductUpdate {
			n := store.InvalidateTag(cache.TagProducts)
			logger.Info("revalidated products", zap.String("topic", topic), zap.Int("dropped", n))
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      http.StatusOK,
			"revalidated": true,
			"now":         time.Now().UnixMilli(),
		})
	}
}

// HandleRevalidateAll handles GET /internal/revalidate-cache: unconditionally
// drops both product and collection tags.
func HandleRevalidateAll(store *cache.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := store.InvalidateTag(cache.TagProducts)
		collections := store.InvalidateTag(cache.TagCollections)
		logger.Info("revalidated full catalog cache",
			zap.Int("products_dropped", products),
			zap.Int("collections_dropped", collections),
		)

		c.JSON(http.StatusOK, gin.H{
			"revalidated": true,
			"now":         time.Now().UnixMilli(),
			"message":     "Cache revalidated successfully",
		})
	}
}
