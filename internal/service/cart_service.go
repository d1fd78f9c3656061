package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/domain"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/shopify"
	"github.com/MorhafGhziel/shopify-ecommerce/pkg/errors"
)

// CartLineInput adds merchandise to a cart.
type CartLineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

// CartLineUpdateInput sets an existing line's quantity.
type CartLineUpdateInput struct {
	ID            string `json:"id"`
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

// CartService wraps the cart queries and mutations of the Storefront API.
// Every call issues exactly one request, bypasses the response cache (cart
// state must never be served stale) and returns the full reshaped cart.
// Invalidating the cart tag is the caller's follow-up, not done here.
type CartService struct {
	client *shopify.Client
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(client *shopify.Client, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		client: client,
		logger: logger,
	}
}

// Create creates an empty cart. The returned cart's ID becomes the session's
// cart identifier.
func (s *CartService) Create(ctx context.Context) (*domain.Cart, error) {
	resp, _, err := s.client.Execute(ctx, shopify.CartCreateMutation, nil, shopify.WithNoStore())
	if err != nil {
		return nil, err
	}

	var result struct {
		CartCreate struct {
			Cart *wireCart `json:"cart"`
		} `json:"cartCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse cart create response: %w", err)
	}
	if result.CartCreate.Cart == nil {
		return nil, fmt.Errorf("cart create returned no cart")
	}

	return s.checked(reshapeCart(*result.CartCreate.Cart)), nil
}

// Get fetches a cart by ID. Expired or unknown IDs come back null upstream
// and surface as *errors.ErrNotFound.
func (s *CartService) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	if cartID == "" {
		return nil, &errors.ErrMissingCart{}
	}

	resp, _, err := s.client.Execute(ctx, shopify.CartQuery, map[string]interface{}{
		"cartId": cartID,
	}, shopify.WithNoStore())
	if err != nil {
		return nil, err
	}

	var result struct {
		Cart *wireCart `json:"cart"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse cart response: %w", err)
	}
	if result.Cart == nil {
		return nil, &errors.ErrNotFound{Resource: "cart", ID: cartID}
	}

	return s.checked(reshapeCart(*result.Cart)), nil
}

// AddLines appends merchandise to the cart. Shopify merges lines for
// merchandise already present by summing quantities; the client never does
// that arithmetic.
func (s *CartService) AddLines(ctx context.Context, cartID string, lines []CartLineInput) (*domain.Cart, error) {
	if cartID == "" {
		return nil, &errors.ErrMissingCart{}
	}

	resp, _, err := s.client.Execute(ctx, shopify.CartLinesAddMutation, map[string]interface{}{
		"cartId": cartID,
		"lines":  lines,
	}, shopify.WithNoStore())
	if err != nil {
		return nil, err
	}

	var result struct {
		CartLinesAdd struct {
			Cart *wireCart `json:"cart"`
		} `json:"cartLinesAdd"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse cart lines add response: %w", err)
	}
	if result.CartLinesAdd.Cart == nil {
		return nil, &errors.ErrNotFound{Resource: "cart", ID: cartID}
	}

	return s.checked(reshapeCart(*result.CartLinesAdd.Cart)), nil
}

// RemoveLines removes the given line IDs. Removing a line that no longer
// exists is a no-op upstream, not an error.
func (s *CartService) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error) {
	if cartID == "" {
		return nil, &errors.ErrMissingCart{}
	}

	resp, _, err := s.client.Execute(ctx, shopify.CartLinesRemoveMutation, map[string]interface{}{
		"cartId":  cartID,
		"lineIds": lineIDs,
	}, shopify.WithNoStore())
	if err != nil {
		return nil, err
	}

	var result struct {
		CartLinesRemove struct {
			Cart *wireCart `json:"cart"`
		} `json:"cartLinesRemove"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse cart lines remove response: %w", err)
	}
	if result.CartLinesRemove.Cart == nil {
		return nil, &errors.ErrNotFound{Resource: "cart", ID: cartID}
	}

	return s.checked(reshapeCart(*result.CartLinesRemove.Cart)), nil
}

// UpdateLines sets line quantities. Shopify rejects quantity 0 here; callers
// convert zero-quantity updates into RemoveLines before reaching this.
func (s *CartService) UpdateLines(ctx context.Context, cartID string, lines []CartLineUpdateInput) (*domain.Cart, error) {
	if cartID == "" {
		return nil, &errors.ErrMissingCart{}
	}

	resp, _, err := s.client.Execute(ctx, shopify.CartLinesUpdateMutation, map[string]interface{}{
		"cartId": cartID,
		"lines":  lines,
	}, shopify.WithNoStore())
	if err != nil {
		return nil, err
	}

	var result struct {
		CartLinesUpdate struct {
			Cart *wireCart `json:"cart"`
		} `json:"cartLinesUpdate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse cart lines update response: %w", err)
	}
	if result.CartLinesUpdate.Cart == nil {
		return nil, &errors.ErrNotFound{Resource: "cart", ID: cartID}
	}

	return s.checked(reshapeCart(*result.CartLinesUpdate.Cart)), nil
}

// checked warn-logs when a cart snapshot violates its own invariants: the
// reported totalQuantity must equal the line quantity sum, and the line cost
// sum should match the reported subtotal. Upstream data wins either way.
func (s *CartService) checked(cart *domain.Cart) *domain.Cart {
	if sum := cart.SumQuantities(); sum != cart.TotalQuantity {
		s.logger.Warn("cart totalQuantity does not match line sum",
			zap.String("cart_id", cart.ID),
			zap.Int("total_quantity", cart.TotalQuantity),
			zap.Int("line_sum", sum),
		)
	}

	linesTotal := cart.LinesTotal()
	subtotal, err := cart.Cost.SubtotalAmount.Decimal()
	if err != nil {
		return cart
	}
	if computed, err := linesTotal.Decimal(); err == nil && !computed.Equal(subtotal) {
		s.logger.Warn("cart subtotal does not match line cost sum",
			zap.String("cart_id", cart.ID),
			zap.String("subtotal", cart.Cost.SubtotalAmount.Amount),
			zap.String("line_sum", linesTotal.Amount),
		)
	}
	return cart
}
