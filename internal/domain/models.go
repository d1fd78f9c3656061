package domain

// Image is a hosted image with optional alt text and dimensions.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// SEO carries page/product metadata for search engines
type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProductOption is an option axis declared on a product (e.g. Size, Color).
type ProductOption struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// SelectedOption is one (name, value) choice identifying a variant.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductVariant is a purchasable variant of a product. Its selected options
// are a subset of the parent product's declared option names.
type ProductVariant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	AvailableForSale bool             `json:"availableForSale"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
	Price            Money            `json:"price"`
}

// PriceRange is the min/max variant price of a product.
type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
	MaxVariantPrice Money `json:"maxVariantPrice"`
}

// Product is a storefront product snapshot. Variants and images are flat
// ordered lists (connections already reshaped).
type Product struct {
	ID               string           `json:"id"`
	Handle           string           `json:"handle"`
	AvailableForSale bool             `json:"availableForSale"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	DescriptionHTML  string           `json:"descriptionHtml,omitempty"`
	Options          []ProductOption  `json:"options"`
	PriceRange       PriceRange       `json:"priceRange"`
	Variants         []ProductVariant `json:"variants"`
	FeaturedImage    Image            `json:"featuredImage"`
	Images           []Image          `json:"images"`
	SEO              SEO              `json:"seo,omitempty"`
	Tags             []string         `json:"tags"`
	UpdatedAt        string           `json:"updatedAt"`
}

// Collection is a named group of products.
type Collection struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       *Image `json:"image,omitempty"`
}

// CartCost is the cart's cost breakdown. TotalTaxAmount is always present
// after reshaping (defaulted when the upstream omits it).
type CartCost struct {
	SubtotalAmount Money `json:"subtotalAmount"`
	TotalAmount    Money `json:"totalAmount"`
	TotalTaxAmount Money `json:"totalTaxAmount"`
}

// CartProduct is the back-reference from a cart line to its parent product.
type CartProduct struct {
	ID            string `json:"id"`
	Handle        string `json:"handle"`
	Title         string `json:"title"`
	FeaturedImage Image  `json:"featuredImage"`
}

// CartMerchandise is the variant referenced by a cart line.
type CartMerchandise struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
	Product         CartProduct      `json:"product"`
}

// CartItem is one line of a cart, uniquely keyed by merchandise ID within it.
type CartItem struct {
	ID          string          `json:"id"`
	Quantity    int             `json:"quantity"`
	Cost        CartItemCost    `json:"cost"`
	Merchandise CartMerchandise `json:"merchandise"`
}

type CartItemCost struct {
	TotalAmount Money `json:"totalAmount"`
}

// Cart is a server-issued cart snapshot. TotalQuantity equals the sum of all
// line quantities in the same snapshot.
type Cart struct {
	ID            string     `json:"id"`
	CheckoutURL   string     `json:"checkoutUrl"`
	Cost          CartCost   `json:"cost"`
	Lines         []CartItem `json:"lines"`
	TotalQuantity int        `json:"totalQuantity"`
}

// LineFor returns the line holding the given merchandise, or nil.
func (c *Cart) LineFor(merchandiseID string) *CartItem {
	for i := range c.Lines {
		if c.Lines[i].Merchandise.ID == merchandiseID {
			return &c.Lines[i]
		}
	}
	return nil
}

// Page is a content page (about, terms, ...).
type Page struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Body        string `json:"body"`
	BodySummary string `json:"bodySummary"`
	SEO         SEO    `json:"seo,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// MenuItem is a flat navigation entry (no ID, no children).
type MenuItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
