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

// Dumps all storefront collections as JSON.
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

	client := shopify.NewClient(cfg.Shopify, cache.New(), logger)
	storefront := service.NewStorefrontService(client, logger)

	collections, err := storefront.GetCollections(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch collections: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(collections, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal collections: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(out))
	fmt.Fprintf(os.Stderr, "%d collections\n", len(collections))
}
