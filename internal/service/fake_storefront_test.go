package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/cache"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/config"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/shopify"
)

const fakeUnitPrice = 10

// fakeStorefront is an in-memory cart backend speaking the Storefront cart
// documents over httptest. Every merchandise costs fakeUnitPrice; adding
// merchandise already in the cart merges into the existing line, removing an
// unknown line ID is a no-op, both matching upstream behavior.
type fakeStorefront struct {
	mu       sync.Mutex
	carts    map[string]*fakeCart
	nextCart int
	nextLine int
}

type fakeCart struct {
	id    string
	lines []*fakeLine
}

type fakeLine struct {
	id            string
	merchandiseID string
	quantity      int
}

func newFakeStorefront() *fakeStorefront {
	return &fakeStorefront{carts: map[string]*fakeCart{}}
}

func (f *fakeStorefront) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(srv.Close)
	return srv
}

func (f *fakeStorefront) handle(w http.ResponseWriter, r *http.Request) {
	var req shopify.GraphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.Contains(req.Query, "cartCreate"):
		f.nextCart++
		cart := &fakeCart{id: fmt.Sprintf("gid://shopify/Cart/%d", f.nextCart)}
		f.carts[cart.id] = cart
		writeData(w, map[string]interface{}{"cartCreate": map[string]interface{}{"cart": f.cartJSON(cart)}})

	case strings.Contains(req.Query, "cartLinesAdd"):
		cart := f.carts[stringVar(req, "cartId")]
		if cart != nil {
			for _, raw := range req.Variables["lines"].([]interface{}) {
				line := raw.(map[string]interface{})
				cart.add(line["merchandiseId"].(string), int(line["quantity"].(float64)), f.newLineID())
			}
		}
		writeData(w, map[string]interface{}{"cartLinesAdd": map[string]interface{}{"cart": f.cartJSON(cart)}})

	case strings.Contains(req.Query, "cartLinesRemove"):
		cart := f.carts[stringVar(req, "cartId")]
		if cart != nil {
			for _, raw := range req.Variables["lineIds"].([]interface{}) {
				cart.remove(raw.(string))
			}
		}
		writeData(w, map[string]interface{}{"cartLinesRemove": map[string]interface{}{"cart": f.cartJSON(cart)}})

	case strings.Contains(req.Query, "cartLinesUpdate"):
		cart := f.carts[stringVar(req, "cartId")]
		if cart != nil {
			for _, raw := range req.Variables["lines"].([]interface{}) {
				line := raw.(map[string]interface{})
				cart.setQuantity(line["id"].(string), int(line["quantity"].(float64)))
			}
		}
		writeData(w, map[string]interface{}{"cartLinesUpdate": map[string]interface{}{"cart": f.cartJSON(cart)}})

	default:
		cart := f.carts[stringVar(req, "cartId")]
		writeData(w, map[string]interface{}{"cart": f.cartJSON(cart)})
	}
}

func (f *fakeStorefront) newLineID() string {
	f.nextLine++
	return fmt.Sprintf("gid://shopify/CartLine/%d", f.nextLine)
}

func (c *fakeCart) add(merchandiseID string, quantity int, lineID string) {
	for _, line := range c.lines {
		if line.merchandiseID == merchandiseID {
			line.quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, &fakeLine{id: lineID, merchandiseID: merchandiseID, quantity: quantity})
}

func (c *fakeCart) remove(lineID string) {
	for i, line := range c.lines {
		if line.id == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *fakeCart) setQuantity(lineID string, quantity int) {
	for _, line := range c.lines {
		if line.id == lineID {
			line.quantity = quantity
			return
		}
	}
}

// cartJSON renders the cart in the connection wire shape the real API uses.
// totalTaxAmount is deliberately absent so callers exercise the defaulting
// path.
func (f *fakeStorefront) cartJSON(cart *fakeCart) interface{} {
	if cart == nil {
		return nil
	}

	total := 0
	edges := []interface{}{}
	for _, line := range cart.lines {
		total += line.quantity
		edges = append(edges, map[string]interface{}{"node": map[string]interface{}{
			"id":       line.id,
			"quantity": line.quantity,
			"cost": map[string]interface{}{
				"totalAmount": money(line.quantity * fakeUnitPrice),
			},
			"merchandise": map[string]interface{}{
				"id":              line.merchandiseID,
				"title":           "Default",
				"selectedOptions": []interface{}{},
				"product": map[string]interface{}{
					"id":     "gid://shopify/Product/1",
					"handle": "tee",
					"title":  "Tee",
					"featuredImage": map[string]interface{}{
						"url":     "https://img/1.png",
						"altText": "tee",
					},
				},
			},
		}})
	}

	return map[string]interface{}{
		"id":          cart.id,
		"checkoutUrl": "https://demo.myshopify.com/checkout/" + cart.id,
		"cost": map[string]interface{}{
			"subtotalAmount": money(total * fakeUnitPrice),
			"totalAmount":    money(total * fakeUnitPrice),
		},
		"lines":         map[string]interface{}{"edges": edges},
		"totalQuantity": total,
	}
}

func money(amount int) map[string]interface{} {
	return map[string]interface{}{"amount": fmt.Sprintf("%d.0", amount), "currencyCode": "USD"}
}

func writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
}

func stringVar(req shopify.GraphQLRequest, key string) string {
	s, _ := req.Variables[key].(string)
	return s
}

// newTestActions wires the full cart stack against a fake backend.
func newTestActions(t *testing.T) (*CartActions, *CartService, *cache.Store) {
	t.Helper()
	srv := newFakeStorefront().server(t)

	store := cache.New()
	client := shopify.NewClient(config.ShopifyConfig{
		StoreDomain: srv.URL,
		AccessToken: "test-token",
	}, store, zap.NewNop())
	carts := NewCartService(client, zap.NewNop())
	return NewCartActions(carts, store, zap.NewNop()), carts, store
}
