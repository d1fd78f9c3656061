package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	SiteName    string
	FrontendURL string // browser origin allowed by CORS; empty disables CORS
	Shopify     ShopifyConfig
}

// ShopifyConfig configures the Storefront API connection.
type ShopifyConfig struct {
	StoreDomain        string // e.g. my-store.myshopify.com
	GraphQLEndpoint    string // path suffix, e.g. /api/2023-01/graphql.json
	AccessToken        string // X-Shopify-Storefront-Access-Token
	RevalidationSecret string // SHOPIFY_REVALIDATION_SECRET: auth for GET /webhooks/revalidate
}

// Endpoint returns the full Storefront GraphQL URL. A bare store domain gets
// https prepended; an explicit scheme is kept as-is.
func (c ShopifyConfig) Endpoint() string {
	domain := strings.TrimSuffix(c.StoreDomain, "/")
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	return domain + c.GraphQLEndpoint
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SHOPIFY_GRAPHQL_API_ENDPOINT", "/api/2023-01/graphql.json")
	viper.SetDefault("SITE_NAME", "Storefront")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		SiteName:    getEnvOrViper("SITE_NAME", "Storefront"),
		FrontendURL: strings.TrimSpace(getEnvOrViper("FRONTEND_URL", "")),
		Shopify: ShopifyConfig{
			StoreDomain:        strings.TrimSpace(getEnvOrViper("SHOPIFY_STORE_DOMAIN", "")),
			GraphQLEndpoint:    getEnvOrViper("SHOPIFY_GRAPHQL_API_ENDPOINT", "/api/2023-01/graphql.json"),
			AccessToken:        strings.TrimSpace(getEnvOrViper("SHOPIFY_STOREFRONT_ACCESS_TOKEN", "")),
			RevalidationSecret: strings.TrimSpace(getEnvOrViper("SHOPIFY_REVALIDATION_SECRET", "")),
		},
	}

	// Validate required fields
	if cfg.Shopify.StoreDomain == "" {
		return nil, fmt.Errorf("SHOPIFY_STORE_DOMAIN is required")
	}
	if cfg.Shopify.AccessToken == "" {
		return nil, fmt.Errorf("SHOPIFY_STOREFRONT_ACCESS_TOKEN is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
