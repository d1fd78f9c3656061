package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/cache"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/config"
	"github.com/MorhafGhziel/shopify-ecommerce/pkg/errors"
)

type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
	store       *cache.Store
	logger      *zap.Logger
}

// NewClient creates a Storefront GraphQL client. Responses flow through the
// given tag-indexed store unless a call opts out with WithNoStore.
func NewClient(cfg config.ShopifyConfig, store *cache.Store, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:    cfg.Endpoint(),
		accessToken: cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		store:  store,
		logger: logger,
	}
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

type callOptions struct {
	tags    []string
	noStore bool
}

// CallOption adjusts caching behavior of a single Execute call.
type CallOption func(*callOptions)

// WithTags associates the cached response with the given invalidation tags.
func WithTags(tags ...string) CallOption {
	return func(o *callOptions) {
		o.tags = append(o.tags, tags...)
	}
}

// WithNoStore bypasses the cache entirely. Cart reads and all mutations use
// this: cart state must never be served stale.
func WithNoStore() CallOption {
	return func(o *callOptions) {
		o.noStore = true
	}
}

// Execute runs a GraphQL query/mutation and returns the decoded response plus
// the HTTP status code. GraphQL-level errors surface as *errors.ErrUpstreamQuery
// carrying the first reported error; transport failures as *errors.ErrTransport.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}, opts ...CallOption) (*GraphQLResponse, int, error) {
	var options callOptions
	for _, opt := range opts {
		opt(&options)
	}

	key := cacheKey(query, variables)
	if !options.noStore && c.store != nil {
		if body, ok := c.store.Get(key); ok {
			var cached GraphQLResponse
			if err := json.Unmarshal(body, &cached); err == nil {
				return &cached, http.StatusOK, nil
			}
			// Unreadable entry; fall through and refetch.
		}
	}

	reqBody := GraphQLRequest{
		Query:     query,
		Variables: variables,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response received; status defaults to 500.
		return nil, 0, &errors.ErrTransport{Status: http.StatusInternalServerError, Query: query, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &errors.ErrTransport{Status: resp.StatusCode, Query: query, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Storefront API returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, resp.StatusCode, &errors.ErrTransport{Status: resp.StatusCode, Query: query}
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, resp.StatusCode, &errors.ErrTransport{Status: resp.StatusCode, Query: query, Err: err}
	}

	if len(graphQLResp.Errors) > 0 {
		// First-error-wins; the rest are only logged.
		for _, gqlErr := range graphQLResp.Errors[1:] {
			c.logger.Debug("additional storefront query error", zap.String("message", gqlErr.Message))
		}
		return nil, resp.StatusCode, &errors.ErrUpstreamQuery{
			Message: graphQLResp.Errors[0].Message,
			Query:   query,
		}
	}

	if !options.noStore && c.store != nil {
		c.store.Set(key, body, options.tags...)
	}

	return &graphQLResp, resp.StatusCode, nil
}

// cacheKey derives a stable key from the query text and variables. Map keys
// are sorted by encoding/json, so equal variable sets yield equal keys.
func cacheKey(query string, variables map[string]interface{}) string {
	if len(variables) == 0 {
		return query
	}
	vars, err := json.Marshal(variables)
	if err != nil {
		return query
	}
	return query + "|" + string(vars)
}
