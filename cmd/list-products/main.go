package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/cache"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/config"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/service"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/shopify"
)

// Dumps the storefront product catalog as JSON. Optional first argument is a
// search query (e.g. `go run cmd/list-products/main.go shirt`).
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	query := ""
	if len(os.Args) > 1 {
		query = os.Args[1]
	}

	client := shopify.NewClient(cfg.Shopify, cache.New(), logger)
	storefront := service.NewStorefrontService(client, logger)

	products, err := storefront.GetProducts(context.Background(), query, "", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch products: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal products: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(out))
	fmt.Fprintf(os.Stderr, "%d products\n", len(products))
}
