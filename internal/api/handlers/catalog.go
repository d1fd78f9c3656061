package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/service"
)

// HandleGetProducts handles GET /v1/products. Optional query params: q (search
// query), sort (Shopify sort key), reverse.
func HandleGetProducts(svc *service.StorefrontService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reverse, _ := strconv.ParseBool(c.Query("reverse"))
		products, err := svc.GetProducts(c.Request.Context(), c.Query("q"), c.Query("sort"), reverse)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// HandleGetProduct handles GET /v1/products/:handle.
func HandleGetProduct(svc *service.StorefrontService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetProduct(c.Request.Context(), c.Param("handle"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

// HandleGetProductRecommendations handles GET /v1/products/:handle/recommendations.
// The recommendations query keys on product ID, so the product is resolved
// from its handle first.
func HandleGetProductRecommendations(svc *service.StorefrontService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetProduct(c.Request.Context(), c.Param("handle"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		recommendations, err := svc.GetProductRecommendations(c.Request.Context(), product.ID)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": recommendations})
	}
}

// HandleGetCollections handles GET /v1/collections.
func HandleGetCollections(svc *service.StorefrontService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		collections, err := svc.GetCollections(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"collections": collections})
	}
}

// HandleGetCollection handles GET /v1/collections/:handle.
func HandleGetCollection(svc *service.StorefrontService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		collection, err := svc.GetCollection(c.Request.Context(), c.Param("handle"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"collection": collection})
	}
}

// HandleGetCollectionProducts handles GET /v1/collections/:handle/products.
func HandleGetCollectionProducts(svc *service.StorefrontService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reverse, _ := strconv.ParseBool(c.Query("reverse"))
		products, err := svc.GetCollectionProducts(c.Request.Context(), c.Param("handle"), c.Query("sort"), reverse)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// HandleSearchSuggest handles GET /v1/search/suggest. Mirrors the suggester
// policy for one-shot callers: queries below the minimum length return an
// empty list without hitting the backend, and at most two suggestions come
// back.
func HandleSearchSuggest(svc *service.StorefrontService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if len(query) < 2 {
			c.JSON(http.StatusOK, gin.H{"products": []interface{}{}})
			return
		}
		products, err := svc.GetProducts(c.Request.Context(), query, "", false)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		if len(products) > 2 {
			products = products[:2]
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}
