package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raymond9734/customer-admin/internal/cache"
	"github.com/Raymond9734/customer-admin/internal/config"
	"github.com/Raymond9734/customer-admin/internal/db"
	"github.com/Raymond9734/customer-admin/internal/handler"
	"github.com/Raymond9734/customer-admin/internal/repository"
	"github.com/Raymond9734/customer-admin/internal/service"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting customer API server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to database
	database, err := db.New(cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	logger.Info("connected to database")

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(migrateCtx)
	cancelMigrate()
	if err != nil {
		logger.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Customer detail cache
	customerCache := cache.NewNoop()
	var cacheHealth handler.HealthChecker
	if cfg.Cache.Enabled {
		customerCache, err = cache.NewRedisCache(cache.RedisConfig{
			URL: cfg.Cache.RedisURL,
			TTL: cfg.Cache.TTL,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		cacheHealth = customerCache
	}
	defer customerCache.Close()

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(database.DB)
	addressRepo := repository.NewAddressRepository(database.DB)

	// Initialize services
	customerSvc := service.NewCustomerService(customerRepo, customerCache, logger)
	addressSvc := service.NewAddressService(addressRepo, customerCache, logger)

	router := handler.NewRouter(handler.RouterConfig{
		Customers:     customerSvc,
		Addresses:     addressSvc,
		Database:      database,
		Cache:         cacheHealth,
		AllowedOrigin: cfg.API.AllowedOrigin,
		Logger:        logger,
	})

	// Create server
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}
