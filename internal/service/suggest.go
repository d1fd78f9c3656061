package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/domain"
)

const (
	suggestDelay      = 300 * time.Millisecond
	suggestMinQuery   = 2
	suggestMaxResults = 2
)

// SearchFunc looks up products for a suggestion query.
type SearchFunc func(ctx context.Context, query string) ([]domain.Product, error)

// PublishFunc receives the outcome of the most recent query. It is never
// called for a query that has been superseded.
type PublishFunc func(query string, products []domain.Product, err error)

// Suggester debounces search-as-you-type lookups. Each Query call resets a
// timer; only after the input has been quiet for the debounce delay does the
// lookup fire. A newer query cancels the pending timer and the in-flight
// lookup of an older one, so exactly the latest query's result is published.
type Suggester struct {
	search  SearchFunc
	publish PublishFunc
	delay   time.Duration

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewSuggester creates a suggester with the standard 300ms debounce.
func NewSuggester(search SearchFunc, publish PublishFunc) *Suggester {
	return &Suggester{
		search:  search,
		publish: publish,
		delay:   suggestDelay,
	}
}

// Query registers a new keystroke. Queries shorter than the minimum length
// clear the suggestions immediately without hitting the backend.
func (s *Suggester) Query(query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	s.supersede()
	s.gen++
	gen := s.gen

	if len([]rune(query)) < suggestMinQuery {
		s.mu.Unlock()
		s.publish(query, []domain.Product{}, nil)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.timer = time.AfterFunc(s.delay, func() {
		s.run(ctx, gen, query)
	})
	s.mu.Unlock()
}

// Close cancels any pending or in-flight lookup.
func (s *Suggester) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersede()
	s.gen++
}

// supersede stops the pending timer and cancels the in-flight lookup, if any.
// Caller holds the lock.
func (s *Suggester) supersede() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Suggester) run(ctx context.Context, gen uint64, query string) {
	products, err := s.search(ctx, query)
	if ctx.Err() != nil {
		// Superseded while in flight
		return
	}

	s.mu.Lock()
	current := gen == s.gen
	s.mu.Unlock()
	if !current {
		return
	}

	if err != nil {
		s.publish(query, nil, err)
		return
	}
	if len(products) > suggestMaxResults {
		products = products[:suggestMaxResults]
	}
	s.publish(query, products, nil)
}
