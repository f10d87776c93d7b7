package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/fantasta/internal/api"
	"github.com/mcoot/fantasta/internal/config"
	"github.com/mcoot/fantasta/internal/factory"
	"github.com/mcoot/fantasta/internal/metrics"
)

func main() {
	configPath := flag.String("config", os.Getenv("FANTASTA_CONFIG"), "Path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Create application factory
	app, err := factory.New(ctx, factory.ConfigFrom(cfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("storage close failed", slog.String("error", err.Error()))
		}
	}()

	app.Auction.Restore(ctx)

	// Seed the catalog when the restored session has none
	if cfg.Catalog.Autoload {
		loaded, err := app.AutoloadCatalog(ctx)
		switch {
		case err != nil:
			logger.Warn("could not load default catalog, upload one through the API", slog.String("error", err.Error()))
		case loaded:
			logger.Info("default catalog loaded", slog.Int("players", len(app.Auction.Session(ctx).Players)))
		}
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = app.Metrics
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuctionService: app.Auction,
		Metrics:        m,
		DefaultBudget:  cfg.Auction.InitialBudget,
	})

	// Create server
	server := api.NewServer(router, api.ServerConfigFrom(cfg.Server), logger)

	logger.Info("serving",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.Storage.Type),
		slog.Bool("enforce_role_ceilings", cfg.Auction.EnforceRoleCeilings),
	)
	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
