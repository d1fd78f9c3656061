package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/service"
)

// HandleGetPages handles GET /v1/pages.
func HandleGetPages(svc *service.StorefrontService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		pages, err := svc.GetPages(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"pages": pages})
	}
}

// HandleGetPage handles GET /v1/pages/:handle.
func HandleGetPage(svc *service.StorefrontService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := svc.GetPage(c.Request.Context(), c.Param("handle"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"page": page})
	}
}

// HandleGetMenu handles GET /v1/menu/:handle.
func HandleGetMenu(svc *service.StorefrontService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		menu, err := svc.GetMenu(c.Request.Context(), c.Param("handle"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"menu": menu})
	}
}
