package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/cache"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/config"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/shopify"
)

// Simple connectivity check
const ShopQuery = `
query {
  shop {
    name
  }
}
`

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Testing Storefront API connection...\n\n")
	fmt.Printf("Store Domain: %s\n", cfg.Shopify.StoreDomain)
	fmt.Printf("Endpoint: %s\n", cfg.Shopify.Endpoint())
	fmt.Printf("Access Token: %s...%s\n",
		cfg.Shopify.AccessToken[:min(6, len(cfg.Shopify.AccessToken))],
		cfg.Shopify.AccessToken[max(0, len(cfg.Shopify.AccessToken)-4):])
	fmt.Println()

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopify.NewClient(cfg.Shopify, cache.New(), logger)

	resp, _, err := client.Execute(context.Background(), ShopQuery, nil, shopify.WithNoStore())
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Connection failed: %v\n\n", err)
		fmt.Println("Please check:")
		fmt.Println("  1. SHOPIFY_STORE_DOMAIN format: should be 'store-name.myshopify.com' (no https://)")
		fmt.Println("  2. SHOPIFY_STOREFRONT_ACCESS_TOKEN: the Storefront API token, not an Admin token")
		fmt.Println("  3. The Storefront API must be enabled for the app that issued the token")
		os.Exit(1)
	}

	fmt.Println("✅ Connection successful!")
	fmt.Printf("Response: %s\n", string(resp.Data))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
