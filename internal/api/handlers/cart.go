package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/service"
	"github.com/MorhafGhziel/shopify-ecommerce/pkg/errors"
)

// cartCookieName holds the opaque server-issued cart identifier. One cookie,
// set on cart creation; all cart reads and writes are scoped to it.
const cartCookieName = "cartId"

// Cookie lifetime in seconds. Shopify expires carts on its own schedule; this
// just keeps the browser from holding an identifier forever.
const cartCookieMaxAge = 30 * 24 * 60 * 60

// AddItemRequest adds one unit of a variant to the session cart.
type AddItemRequest struct {
	MerchandiseID string `json:"merchandiseId" binding:"required"`
}

// UpdateItemRequest sets the target quantity for a variant in the session cart.
type UpdateItemRequest struct {
	MerchandiseID string `json:"merchandiseId" binding:"required"`
	Quantity      *int   `json:"quantity" binding:"required,min=0"`
}

func sessionFrom(c *gin.Context) *service.Session {
	cartID, err := c.Cookie(cartCookieName)
	if err != nil {
		cartID = ""
	}
	return &service.Session{CartID: cartID}
}

func setCartCookie(c *gin.Context, cartID string) {
	c.SetCookie(cartCookieName, cartID, cartCookieMaxAge, "/", "", false, true)
}

// HandleGetCart handles GET /v1/cart. A session without a cart, or one whose
// cart has expired upstream, gets a null cart rather than an error; the UI
// renders that as an empty cart.
func HandleGetCart(actions *service.CartActions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		cart, err := actions.Cart(c.Request.Context(), sess)
		if err != nil {
			switch err.(type) {
			case *errors.ErrMissingCart, *errors.ErrNotFound:
				c.JSON(http.StatusOK, gin.H{"cart": nil})
			default:
				respondError(c, logger, err)
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

// HandleAddCartItem handles POST /v1/cart/items. Creates a cart and sets the
// cartId cookie when the session has none yet.
func HandleAddCartItem(actions *service.CartActions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "merchandiseId is required"})
			return
		}

		sess := sessionFrom(c)
		cart, created, err := actions.AddItem(c.Request.Context(), sess, req.MerchandiseID)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		if created {
			setCartCookie(c, sess.CartID)
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

// HandleUpdateCartItem handles PATCH /v1/cart/items. Quantity 0 removes the
// line.
func HandleUpdateCartItem(actions *service.CartActions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "merchandiseId and quantity are required"})
			return
		}

		sess := sessionFrom(c)
		cart, err := actions.UpdateItemQuantity(c.Request.Context(), sess, req.MerchandiseID, *req.Quantity)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/items?merchandiseId=...
// The ID travels as a query param: Shopify GIDs contain slashes.
func HandleRemoveCartItem(actions *service.CartActions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchandiseID := c.Query("merchandiseId")
		if merchandiseID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "merchandiseId is required"})
			return
		}

		sess := sessionFrom(c)
		cart, err := actions.RemoveItem(c.Request.Context(), sess, merchandiseID)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

// HandleCheckout handles GET /v1/cart/checkout: redirects the browser to the
// cart's hosted checkout URL.
func HandleCheckout(actions *service.CartActions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		url, err := actions.CheckoutURL(c.Request.Context(), sess)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.Redirect(http.StatusFound, url)
	}
}
