package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/cache"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/config"
	"github.com/MorhafGhziel/shopify-ecommerce/pkg/errors"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *cache.Store, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := cache.New()
	client := NewClient(config.ShopifyConfig{
		StoreDomain: srv.URL,
		AccessToken: "test-token",
	}, store, zap.NewNop())
	return client, store, srv
}

func TestExecuteSuccess(t *testing.T) {
	var gotToken string
	var gotBody GraphQLRequest
	client, _, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Storefront-Access-Token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"shop":{"name":"demo"}}}`))
	})

	resp, status, err := client.Execute(context.Background(), `query { shop { name } }`, map[string]interface{}{"x": 1})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"shop":{"name":"demo"}}`, string(resp.Data))

	assert.Equal(t, "test-token", gotToken)
	assert.Equal(t, `query { shop { name } }`, gotBody.Query)
	assert.Equal(t, float64(1), gotBody.Variables["x"])
}

func TestExecuteGraphQLErrorFirstWins(t *testing.T) {
	client, _, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"first problem"},{"message":"second problem"}]}`))
	})

	query := `query broken { nope }`
	_, _, err := client.Execute(context.Background(), query, nil)
	require.Error(t, err)

	upstream, ok := err.(*errors.ErrUpstreamQuery)
	require.True(t, ok, "expected *errors.ErrUpstreamQuery, got %T", err)
	assert.Equal(t, "first problem", upstream.Message)
	assert.Equal(t, query, upstream.Query)
}

func TestExecuteHTTPErrorStatus(t *testing.T) {
	client, _, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, status, err := client.Execute(context.Background(), `query { shop { name } }`, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, status)

	transport, ok := err.(*errors.ErrTransport)
	require.True(t, ok, "expected *errors.ErrTransport, got %T", err)
	assert.Equal(t, http.StatusTooManyRequests, transport.Status)
	assert.Equal(t, `query { shop { name } }`, transport.Query)
}

func TestExecuteNetworkFailureDefaultsTo500(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close() // nothing is listening anymore

	client := NewClient(config.ShopifyConfig{StoreDomain: endpoint, AccessToken: "t"}, cache.New(), zap.NewNop())

	_, _, err := client.Execute(context.Background(), `query { shop { name } }`, nil)
	require.Error(t, err)

	transport, ok := err.(*errors.ErrTransport)
	require.True(t, ok, "expected *errors.ErrTransport, got %T", err)
	assert.Equal(t, http.StatusInternalServerError, transport.Status)
}

func TestExecuteCachesTaggedResponses(t *testing.T) {
	var hits atomic.Int64
	client, store, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"data":{"value":"fresh"}}`))
	})

	query := `query cached { value }`
	_, _, err := client.Execute(context.Background(), query, nil, WithTags(cache.TagProducts))
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())

	// Second identical call is served from cache.
	resp, status, err := client.Execute(context.Background(), query, nil, WithTags(cache.TagProducts))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"value":"fresh"}`, string(resp.Data))
	assert.Equal(t, int64(1), hits.Load())

	// Invalidating the tag forces a refetch.
	store.InvalidateTag(cache.TagProducts)
	_, _, err = client.Execute(context.Background(), query, nil, WithTags(cache.TagProducts))
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestExecuteNoStoreBypassesCache(t *testing.T) {
	var hits atomic.Int64
	client, store, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"data":{}}`))
	})

	query := `mutation doThing { thing }`
	for i := 0; i < 2; i++ {
		_, _, err := client.Execute(context.Background(), query, nil, WithNoStore())
		require.NoError(t, err)
	}
	assert.Equal(t, int64(2), hits.Load())
	assert.Equal(t, 0, store.Len())
}

func TestExecuteVariablesDistinguishCacheKeys(t *testing.T) {
	var hits atomic.Int64
	client, _, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"data":{}}`))
	})

	query := `query byHandle($handle: String!) { product(handle: $handle) { id } }`
	_, _, err := client.Execute(context.Background(), query, map[string]interface{}{"handle": "a"}, WithTags(cache.TagProducts))
	require.NoError(t, err)
	_, _, err = client.Execute(context.Background(), query, map[string]interface{}{"handle": "b"}, WithTags(cache.TagProducts))
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}
