package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Raymond9734/customer-admin/internal/client"
	"github.com/Raymond9734/customer-admin/internal/config"
	"github.com/Raymond9734/customer-admin/internal/console"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Diagnostics go to stderr so they do not mix with prompts
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Client.LogLevel}))
	slog.SetDefault(logger)

	api, err := client.New(client.Config{
		BaseURL: cfg.Client.BaseURL,
		Timeout: cfg.Client.Timeout,
	}, logger)
	if err != nil {
		logger.Error("failed to create API client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Debug("using customer API", slog.String("base_url", api.BaseURL()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := console.New(console.NewSurveyDriver(), os.Stdout, api, logger, cfg.Client.PageSize)
	if err := app.Run(ctx); err != nil {
		logger.Error("console stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
