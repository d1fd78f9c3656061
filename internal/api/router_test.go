package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/cache"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/config"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/service"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/shopify"
)

// upstreamFake is a single-cart Storefront stand-in for end-to-end router
// tests: enough of cartCreate, cartLinesAdd, getCart and the products query to
// drive the HTTP surface.
type upstreamFake struct {
	mu           sync.Mutex
	cartID       string
	quantities   map[string]int
	productsHits int
}

func (f *upstreamFake) handle(w http.ResponseWriter, r *http.Request) {
	var req shopify.GraphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.Contains(req.Query, "cartCreate"):
		f.cartID = "gid://shopify/Cart/e2e"
		f.quantities = map[string]int{}
		fmt.Fprintf(w, `{"data":{"cartCreate":{"cart":%s}}}`, f.cartBody())

	case strings.Contains(req.Query, "cartLinesAdd"):
		for _, raw := range req.Variables["lines"].([]interface{}) {
			line := raw.(map[string]interface{})
			f.quantities[line["merchandiseId"].(string)] += int(line["quantity"].(float64))
		}
		fmt.Fprintf(w, `{"data":{"cartLinesAdd":{"cart":%s}}}`, f.cartBody())

	case strings.Contains(req.Query, "getCart"):
		if id, _ := req.Variables["cartId"].(string); id != f.cartID || f.cartID == "" {
			fmt.Fprint(w, `{"data":{"cart":null}}`)
			return
		}
		fmt.Fprintf(w, `{"data":{"cart":%s}}`, f.cartBody())

	case strings.Contains(req.Query, "getProducts"):
		f.productsHits++
		fmt.Fprint(w, `{"data":{"products":{"edges":[
			{"node":{"id":"gid://shopify/Product/1","handle":"tee","title":"Tee",
				"availableForSale":true,"description":"",
				"priceRange":{"minVariantPrice":{"amount":"10.0","currencyCode":"USD"},
					"maxVariantPrice":{"amount":"10.0","currencyCode":"USD"}},
				"variants":{"edges":[]},"images":{"edges":[]},"options":[],"tags":[],
				"updatedAt":"2024-01-01T00:00:00Z"}}
		]}}}`)

	default:
		fmt.Fprint(w, `{"data":{}}`)
	}
}

func (f *upstreamFake) cartBody() string {
	total := 0
	lines := []string{}
	i := 0
	for merchandiseID, quantity := range f.quantities {
		i++
		total += quantity
		lines = append(lines, fmt.Sprintf(`{"node":{"id":"gid://shopify/CartLine/%d","quantity":%d,
			"cost":{"totalAmount":{"amount":"%d.0","currencyCode":"USD"}},
			"merchandise":{"id":"%s","title":"Default","selectedOptions":[],
				"product":{"id":"gid://shopify/Product/1","handle":"tee","title":"Tee",
					"featuredImage":{"url":"https://img/1.png","altText":"tee"}}}}}`,
			i, quantity, quantity*10, merchandiseID))
	}
	return fmt.Sprintf(`{"id":"%s","checkoutUrl":"https://demo.myshopify.com/checkout",
		"cost":{"subtotalAmount":{"amount":"%d.0","currencyCode":"USD"},
			"totalAmount":{"amount":"%d.0","currencyCode":"USD"}},
		"lines":{"edges":[%s]},"totalQuantity":%d}`,
		f.cartID, total*10, total*10, strings.Join(lines, ","), total)
}

func newTestRouter(t *testing.T) (http.Handler, *upstreamFake) {
	t.Helper()
	fake := &upstreamFake{quantities: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(fake.handle))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Environment: "test",
		SiteName:    "Storefront",
		Shopify: config.ShopifyConfig{
			StoreDomain:        srv.URL,
			AccessToken:        "test-token",
			RevalidationSecret: "hook-secret",
		},
	}

	store := cache.New()
	client := shopify.NewClient(cfg.Shopify, store, zap.NewNop())
	storefront := service.NewStorefrontService(client, zap.NewNop())
	carts := service.NewCartService(client, zap.NewNop())
	actions := service.NewCartActions(carts, store, zap.NewNop())

	return NewRouter(cfg, storefront, actions, store, zap.NewNop()), fake
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetCartWithoutCookieReturnsNull(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/cart", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cart":null}`, w.Body.String())
}

func TestAddItemSetsCartCookie(t *testing.T) {
	router, _ := newTestRouter(t)

	body := strings.NewReader(`{"merchandiseId":"gid://shopify/ProductVariant/1"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/cart/items", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "cartId" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "cartId cookie must be set on first add")
	assert.Equal(t, "gid://shopify/Cart/e2e", cookie.Value)
	assert.True(t, cookie.HttpOnly)

	var resp struct {
		Cart struct {
			TotalQuantity int `json:"totalQuantity"`
			Lines         []struct {
				Quantity int `json:"quantity"`
			} `json:"lines"`
		} `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Cart.Lines, 1)
	assert.Equal(t, 1, resp.Cart.Lines[0].Quantity)
	assert.Equal(t, 1, resp.Cart.TotalQuantity)

	// The cookie scopes the follow-up read to the same cart.
	getReq := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	getReq.AddCookie(cookie)
	getW := httptest.NewRecorder()
	router.ServeHTTP(getW, getReq)

	require.Equal(t, http.StatusOK, getW.Code)
	assert.Contains(t, getW.Body.String(), "gid://shopify/Cart/e2e")
}

func TestAddItemRejectsMissingMerchandiseID(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/items", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCartWithStaleCookieReturnsNull(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "cartId", Value: "gid://shopify/Cart/expired"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cart":null}`, w.Body.String())
}

func TestProductsServedFromCache(t *testing.T) {
	router, fake := newTestRouter(t)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/products", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"handle":"tee"`)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, 1, fake.productsHits, "repeated product listings should be served from cache")
}

func TestWebhookInvalidationForcesRefetch(t *testing.T) {
	router, fake := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/products", nil))
	require.Equal(t, http.StatusOK, w.Code)

	hook := httptest.NewRequest(http.MethodGet, "/webhooks/revalidate?secret=hook-secret", nil)
	hook.Header.Set("x-shopify-topic", "products/update")
	hookW := httptest.NewRecorder()
	router.ServeHTTP(hookW, hook)
	require.Equal(t, http.StatusOK, hookW.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/products", nil))
	require.Equal(t, http.StatusOK, w.Code)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, 2, fake.productsHits)
}

func TestSearchSuggestShortQuerySkipsBackend(t *testing.T) {
	router, fake := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/search/suggest?q=a", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"products":[]}`, w.Body.String())

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, 0, fake.productsHits)
}
