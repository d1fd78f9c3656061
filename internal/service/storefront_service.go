package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/cache"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/domain"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/shopify"
	"github.com/MorhafGhziel/shopify-ecommerce/pkg/errors"
)

// StorefrontService exposes typed catalog reads over the Storefront API.
// Product reads are cached under the products tag, collection reads under the
// collections tag, so webhook-driven invalidation hits exactly the affected
// responses.
type StorefrontService struct {
	client *shopify.Client
	logger *zap.Logger
}

// NewStorefrontService creates a new storefront read service
func NewStorefrontService(client *shopify.Client, logger *zap.Logger) *StorefrontService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorefrontService{
		client: client,
		logger: logger,
	}
}

// GetProduct fetches a single product by handle.
func (s *StorefrontService) GetProduct(ctx context.Context, handle string) (*domain.Product, error) {
	resp, _, err := s.client.Execute(ctx, shopify.ProductQuery, map[string]interface{}{
		"handle": handle,
	}, shopify.WithTags(cache.TagProducts))
	if err != nil {
		return nil, err
	}

	var result struct {
		Product *wireProduct `json:"product"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse product response: %w", err)
	}
	if result.Product == nil {
		return nil, &errors.ErrNotFound{Resource: "product", ID: handle}
	}

	product := result.Product.toDomain()
	return &product, nil
}

// GetProducts fetches products matching the given search query and sort. All
// arguments are optional; empty values fetch the full catalog in default
// order.
func (s *StorefrontService) GetProducts(ctx context.Context, query, sortKey string, reverse bool) ([]domain.Product, error) {
	variables := map[string]interface{}{}
	if query != "" {
		variables["query"] = query
	}
	if sortKey != "" {
		variables["sortKey"] = sortKey
	}
	if reverse {
		variables["reverse"] = reverse
	}

	resp, _, err := s.client.Execute(ctx, shopify.ProductsQuery, variables, shopify.WithTags(cache.TagProducts))
	if err != nil {
		return nil, err
	}

	var result struct {
		Products shopify.Connection[wireProduct] `json:"products"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse products response: %w", err)
	}

	return reshapeProducts(result.Products.Nodes()), nil
}

// GetProductRecommendations fetches related products for a product ID. The
// upstream returns a flat list here, not a connection.
func (s *StorefrontService) GetProductRecommendations(ctx context.Context, productID string) ([]domain.Product, error) {
	resp, _, err := s.client.Execute(ctx, shopify.ProductRecommendationsQuery, map[string]interface{}{
		"productId": productID,
	}, shopify.WithTags(cache.TagProducts))
	if err != nil {
		return nil, err
	}

	var result struct {
		ProductRecommendations []wireProduct `json:"productRecommendations"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations response: %w", err)
	}

	return reshapeProducts(result.ProductRecommendations), nil
}

// GetCollection fetches a single collection by handle.
func (s *StorefrontService) GetCollection(ctx context.Context, handle string) (*domain.Collection, error) {
	resp, _, err := s.client.Execute(ctx, shopify.CollectionQuery, map[string]interface{}{
		"handle": handle,
	}, shopify.WithTags(cache.TagCollections))
	if err != nil {
		return nil, err
	}

	var result struct {
		Collection *domain.Collection `json:"collection"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse collection response: %w", err)
	}
	if result.Collection == nil {
		return nil, &errors.ErrNotFound{Resource: "collection", ID: handle}
	}

	return result.Collection, nil
}

// GetCollections fetches all collections.
func (s *StorefrontService) GetCollections(ctx context.Context) ([]domain.Collection, error) {
	resp, _, err := s.client.Execute(ctx, shopify.CollectionsQuery, nil, shopify.WithTags(cache.TagCollections))
	if err != nil {
		return nil, err
	}

	var result struct {
		Collections shopify.Connection[domain.Collection] `json:"collections"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse collections response: %w", err)
	}

	return result.Collections.Nodes(), nil
}

// GetCollectionProducts fetches a collection's products with optional sorting.
func (s *StorefrontService) GetCollectionProducts(ctx context.Context, handle, sortKey string, reverse bool) ([]domain.Product, error) {
	variables := map[string]interface{}{
		"handle": handle,
	}
	if sortKey != "" {
		variables["sortKey"] = sortKey
	}
	if reverse {
		variables["reverse"] = reverse
	}

	resp, _, err := s.client.Execute(ctx, shopify.CollectionProductsQuery, variables,
		shopify.WithTags(cache.TagCollections, cache.TagProducts))
	if err != nil {
		return nil, err
	}

	var result struct {
		Collection *struct {
			Products shopify.Connection[wireProduct] `json:"products"`
		} `json:"collection"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse collection products response: %w", err)
	}
	if result.Collection == nil {
		return nil, &errors.ErrNotFound{Resource: "collection", ID: handle}
	}

	return reshapeProducts(result.Collection.Products.Nodes()), nil
}

// GetMenu fetches a navigation menu. Unknown handles yield an empty list.
func (s *StorefrontService) GetMenu(ctx context.Context, handle string) ([]domain.MenuItem, error) {
	resp, _, err := s.client.Execute(ctx, shopify.MenuQuery, map[string]interface{}{
		"handle": handle,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		Menu *struct {
			Items []domain.MenuItem `json:"items"`
		} `json:"menu"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse menu response: %w", err)
	}
	if result.Menu == nil {
		return []domain.MenuItem{}, nil
	}

	return result.Menu.Items, nil
}

// GetPage fetches a content page by handle.
func (s *StorefrontService) GetPage(ctx context.Context, handle string) (*domain.Page, error) {
	resp, _, err := s.client.Execute(ctx, shopify.PageQuery, map[string]interface{}{
		"handle": handle,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		Page *domain.Page `json:"page"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse page response: %w", err)
	}
	if result.Page == nil {
		return nil, &errors.ErrNotFound{Resource: "page", ID: handle}
	}

	return result.Page, nil
}

// GetPages fetches all content pages.
func (s *StorefrontService) GetPages(ctx context.Context) ([]domain.Page, error) {
	resp, _, err := s.client.Execute(ctx, shopify.PagesQuery, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Pages shopify.Connection[domain.Page] `json:"pages"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse pages response: %w", err)
	}

	return result.Pages.Nodes(), nil
}
