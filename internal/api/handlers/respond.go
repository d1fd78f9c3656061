package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/pkg/errors"
)

// respondError maps the typed error taxonomy onto HTTP statuses and renders
// the human-readable message the frontend shows inline near the triggering
// control. Kind information stays in the error types for logging and tests.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ErrMissingCart:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *errors.ErrUpstreamQuery:
		logger.Error("storefront query failed",
			zap.String("message", e.Message),
			zap.String("query", e.Query),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": e.Error()})
	case *errors.ErrTransport:
		logger.Error("storefront unreachable",
			zap.Int("status", e.Status),
			zap.Error(e),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "storefront temporarily unavailable"})
	default:
		logger.Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
