package service

import (
	"github.com/MorhafGhziel/shopify-ecommerce/internal/domain"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/shopify"
)

// wireProduct mirrors the Storefront product payload before reshaping:
// variants and images arrive as connections.
type wireProduct struct {
	ID               string                                    `json:"id"`
	Handle           string                                    `json:"handle"`
	AvailableForSale bool                                      `json:"availableForSale"`
	Title            string                                    `json:"title"`
	Description      string                                    `json:"description"`
	DescriptionHTML  string                                    `json:"descriptionHtml"`
	Options          []domain.ProductOption                    `json:"options"`
	PriceRange       domain.PriceRange                         `json:"priceRange"`
	Variants         shopify.Connection[domain.ProductVariant] `json:"variants"`
	FeaturedImage    domain.Image                              `json:"featuredImage"`
	Images           shopify.Connection[domain.Image]          `json:"images"`
	SEO              domain.SEO                                `json:"seo"`
	Tags             []string                                  `json:"tags"`
	UpdatedAt        string                                    `json:"updatedAt"`
}

func (w wireProduct) toDomain() domain.Product {
	return domain.Product{
		ID:               w.ID,
		Handle:           w.Handle,
		AvailableForSale: w.AvailableForSale,
		Title:            w.Title,
		Description:      w.Description,
		DescriptionHTML:  w.DescriptionHTML,
		Options:          w.Options,
		PriceRange:       w.PriceRange,
		Variants:         w.Variants.Nodes(),
		FeaturedImage:    w.FeaturedImage,
		Images:           w.Images.Nodes(),
		SEO:              w.SEO,
		Tags:             w.Tags,
		UpdatedAt:        w.UpdatedAt,
	}
}

func reshapeProducts(wires []wireProduct) []domain.Product {
	products := make([]domain.Product, 0, len(wires))
	for _, w := range wires {
		products = append(products, w.toDomain())
	}
	return products
}

// wireCart mirrors the Storefront cart payload. TotalTaxAmount is a pointer:
// carts without a shipping address come back with null tax.
type wireCart struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkoutUrl"`
	Cost        struct {
		SubtotalAmount domain.Money  `json:"subtotalAmount"`
		TotalAmount    domain.Money  `json:"totalAmount"`
		TotalTaxAmount *domain.Money `json:"totalTaxAmount"`
	} `json:"cost"`
	Lines         shopify.Connection[domain.CartItem] `json:"lines"`
	TotalQuantity int                                 `json:"totalQuantity"`
}

// reshapeCart flattens the line connection and guarantees a tax amount is
// present, defaulting to zero USD when the upstream omits it.
func reshapeCart(w wireCart) *domain.Cart {
	cost := domain.CartCost{
		SubtotalAmount: w.Cost.SubtotalAmount,
		TotalAmount:    w.Cost.TotalAmount,
	}
	if w.Cost.TotalTaxAmount != nil && w.Cost.TotalTaxAmount.Amount != "" {
		cost.TotalTaxAmount = *w.Cost.TotalTaxAmount
	} else {
		cost.TotalTaxAmount = domain.Money{Amount: "0.0", CurrencyCode: "USD"}
	}

	return &domain.Cart{
		ID:            w.ID,
		CheckoutURL:   w.CheckoutURL,
		Cost:          cost,
		Lines:         w.Lines.Nodes(),
		TotalQuantity: w.TotalQuantity,
	}
}
