package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/MorhafGhziel/shopify-ecommerce/internal/api"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/cache"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/config"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/service"
	"github.com/MorhafGhziel/shopify-ecommerce/internal/shopify"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting storefront API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("store_domain", cfg.Shopify.StoreDomain),
	)

	// Tagged response cache shared by the client and the revalidation endpoints
	store := cache.New()

	// Storefront client and services
	client := shopify.NewClient(cfg.Shopify, store, logger)
	storefront := service.NewStorefrontService(client, logger)
	carts := service.NewCartService(client, logger)
	actions := service.NewCartActions(carts, store, logger)

	// Initialize router
	router := api.NewRouter(cfg, storefront, actions, store, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
