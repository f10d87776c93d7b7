package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/fantasta/internal/catalog"
	"github.com/mcoot/fantasta/internal/config"
	"github.com/mcoot/fantasta/internal/dependencies/clock"
	"github.com/mcoot/fantasta/internal/dependencies/random"
	"github.com/mcoot/fantasta/internal/metrics"
	"github.com/mcoot/fantasta/internal/services/auction"
	"github.com/mcoot/fantasta/internal/services/ledger"
	"github.com/mcoot/fantasta/internal/services/persistence"
	"github.com/mcoot/fantasta/internal/storage"
	"github.com/mcoot/fantasta/internal/storage/memory"
	pgstorage "github.com/mcoot/fantasta/internal/storage/postgres"
	redisstorage "github.com/mcoot/fantasta/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = config.StorageMemory
	StorageTypeRedis    = config.StorageRedis
	StorageTypePostgres = config.StoragePostgres
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Observability
	Metrics *metrics.Metrics

	// Services
	Persistence *persistence.Service
	Auction     *auction.Service
	Catalog     *catalog.Loader
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres settings (required if StorageType is "postgres")
	PostgresConfig *pgstorage.Config
	// Ledger configures role ceiling enforcement
	Ledger ledger.Options
	// CatalogCandidates are tried in order for the default catalog
	CatalogCandidates []string
}

// ConfigFrom maps loaded server settings onto a factory config
func ConfigFrom(cfg *config.Config, logger *slog.Logger) Config {
	fc := Config{
		Logger:            logger,
		StorageType:       cfg.Storage.Type,
		Ledger:            ledger.Options{EnforceRoleCeilings: cfg.Auction.EnforceRoleCeilings},
		CatalogCandidates: cfg.Catalog.Candidates,
	}
	switch cfg.Storage.Type {
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.Redis.URL
		redisCfg.RecordTTL = cfg.Storage.Redis.RecordTTL
		redisCfg.BackupTTL = cfg.Storage.Redis.BackupTTL
		fc.RedisConfig = &redisCfg
	case StorageTypePostgres:
		fc.PostgresConfig = &pgstorage.Config{
			URL:      cfg.Storage.Postgres.DSN,
			MaxConns: cfg.Storage.Postgres.MaxConns,
		}
	}
	return fc
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(store, clock.New(), random.New(), metrics.New(), cfg.Ledger, logger)
	app.Catalog = catalog.NewLoader(cfg.CatalogCandidates, nil, logger.With(slog.String("component", "catalog")))
	return app, nil
}

func newStorage(ctx context.Context, cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(ctx, *cfg.RedisConfig)
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		return pgstorage.New(ctx, *cfg.PostgresConfig)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'postgres'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	m *metrics.Metrics,
	opts ledger.Options,
	logger *slog.Logger,
) *App {
	persistenceService := persistence.New(store, clk, m, logger.With(slog.String("component", "persistence")))
	auctionService := auction.New(persistenceService, clk, rnd, m, logger.With(slog.String("component", "auction")), opts)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		Metrics:     m,
		Persistence: persistenceService,
		Auction:     auctionService,
	}
}

// AutoloadCatalog loads the default catalog into a session that has no
// players yet. It reports whether a catalog was loaded.
func (a *App) AutoloadCatalog(ctx context.Context) (bool, error) {
	if len(a.Auction.Session(ctx).Players) > 0 {
		return false, nil
	}
	if a.Catalog == nil {
		return false, errors.New("no catalog loader configured")
	}

	data, source, err := a.Catalog.Load(ctx)
	if err != nil {
		return false, err
	}
	if _, err := a.Auction.LoadCatalog(ctx, data, source); err != nil {
		return false, fmt.Errorf("%s: %w", source, err)
	}
	return true, nil
}

// Close releases the storage connection
func (a *App) Close() error {
	return a.Storage.Close()
}
