package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/cache"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/domain"
	"github.com/MorhafGhziel/shopify-ecommerce/pkg/errors"
)

// Session carries the request-scoped cart identity resolved from the cartId
// cookie. It is threaded explicitly through every cart action; CartID is
// updated in place when a cart gets created lazily so the handler can write
// the cookie back.
type Session struct {
	CartID string
}

// CartActions orchestrates UI-facing cart operations on top of CartService:
// lazy cart creation, the add/update/remove decision table, and cart tag
// invalidation after each successful mutation. Errors are typed; rendering
// them as user-facing text is the handler's job.
type CartActions struct {
	carts  *CartService
	store  *cache.Store
	logger *zap.Logger
}

// NewCartActions creates a new cart action orchestrator
func NewCartActions(carts *CartService, store *cache.Store, logger *zap.Logger) *CartActions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartActions{
		carts:  carts,
		store:  store,
		logger: logger,
	}
}

// EnsureCart resolves the session's cart ID, creating a cart first when the
// session has none. Reports whether a new cart was created so the caller can
// persist the identifier.
func (a *CartActions) EnsureCart(ctx context.Context, sess *Session) (string, bool, error) {
	if sess.CartID != "" {
		return sess.CartID, false, nil
	}

	cart, err := a.carts.Create(ctx)
	if err != nil {
		return "", false, err
	}
	sess.CartID = cart.ID
	a.logger.Info("created cart for session", zap.String("cart_id", cart.ID))
	return cart.ID, true, nil
}

// AddItem adds one unit of the given merchandise. Always sends quantity 1 and
// relies on Shopify's merge-by-merchandise semantics instead of reading the
// current quantity first. Returns the updated cart and whether a cart was
// created for this session.
func (a *CartActions) AddItem(ctx context.Context, sess *Session, merchandiseID string) (*domain.Cart, bool, error) {
	cartID, created, err := a.EnsureCart(ctx, sess)
	if err != nil {
		return nil, false, err
	}

	cart, err := a.carts.AddLines(ctx, cartID, []CartLineInput{
		{MerchandiseID: merchandiseID, Quantity: 1},
	})
	if err != nil {
		return nil, created, err
	}

	a.invalidateCart()
	return cart, created, nil
}

// RemoveItem removes the line holding the given merchandise entirely.
func (a *CartActions) RemoveItem(ctx context.Context, sess *Session, merchandiseID string) (*domain.Cart, error) {
	if sess.CartID == "" {
		return nil, &errors.ErrMissingCart{}
	}

	snapshot, err := a.carts.Get(ctx, sess.CartID)
	if err != nil {
		return nil, err
	}

	line := snapshot.LineFor(merchandiseID)
	if line == nil {
		return nil, &errors.ErrNotFound{Resource: "cart line", ID: merchandiseID}
	}

	cart, err := a.carts.RemoveLines(ctx, sess.CartID, []string{line.ID})
	if err != nil {
		return nil, err
	}

	a.invalidateCart()
	return cart, nil
}

// UpdateItemQuantity sets the target quantity for the given merchandise.
// Quantity 0 on an existing line converts to a removal (the update mutation
// rejects zero). Merchandise missing from the cart is added when the target
// quantity is positive and reported not found otherwise.
func (a *CartActions) UpdateItemQuantity(ctx context.Context, sess *Session, merchandiseID string, quantity int) (*domain.Cart, error) {
	if sess.CartID == "" {
		return nil, &errors.ErrMissingCart{}
	}

	snapshot, err := a.carts.Get(ctx, sess.CartID)
	if err != nil {
		return nil, err
	}

	line := snapshot.LineFor(merchandiseID)

	var cart *domain.Cart
	switch {
	case line != nil && quantity == 0:
		cart, err = a.carts.RemoveLines(ctx, sess.CartID, []string{line.ID})
	case line != nil:
		cart, err = a.carts.UpdateLines(ctx, sess.CartID, []CartLineUpdateInput{
			{ID: line.ID, MerchandiseID: merchandiseID, Quantity: quantity},
		})
	case quantity > 0:
		cart, err = a.carts.AddLines(ctx, sess.CartID, []CartLineInput{
			{MerchandiseID: merchandiseID, Quantity: quantity},
		})
	default:
		return nil, &errors.ErrNotFound{Resource: "cart line", ID: merchandiseID}
	}
	if err != nil {
		return nil, err
	}

	a.invalidateCart()
	return cart, nil
}

// Cart returns the session's current cart snapshot.
func (a *CartActions) Cart(ctx context.Context, sess *Session) (*domain.Cart, error) {
	if sess.CartID == "" {
		return nil, &errors.ErrMissingCart{}
	}
	return a.carts.Get(ctx, sess.CartID)
}

// CheckoutURL resolves the cart's checkout URL for redirecting the browser.
func (a *CartActions) CheckoutURL(ctx context.Context, sess *Session) (string, error) {
	if sess.CartID == "" {
		return "", &errors.ErrMissingCart{}
	}
	cart, err := a.carts.Get(ctx, sess.CartID)
	if err != nil {
		return "", err
	}
	return cart.CheckoutURL, nil
}

// invalidateCart drops cached cart responses after a mutation. Fire-and-forget
// relative to the mutation result: readers elsewhere may briefly see stale
// data.
func (a *CartActions) invalidateCart() {
	if a.store != nil {
		a.store.InvalidateTag(cache.TagCart)
	}
}
