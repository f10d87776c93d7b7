// Package config loads server settings from a YAML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/fantasta/internal/model"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config holds the server settings
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auction AuctionConfig `yaml:"auction"`
	Catalog CatalogConfig `yaml:"catalog"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig selects and configures the session store
type StorageConfig struct {
	Type     string         `yaml:"type"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// RedisConfig holds Redis settings
type RedisConfig struct {
	URL       string        `yaml:"url"`
	RecordTTL time.Duration `yaml:"record_ttl"`
	BackupTTL time.Duration `yaml:"backup_ttl"`
}

// PostgresConfig holds Postgres settings
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"max_conns"`
}

// AuctionConfig holds ledger settings
type AuctionConfig struct {
	EnforceRoleCeilings bool `yaml:"enforce_role_ceilings"`
	InitialBudget       int  `yaml:"initial_budget"`
}

// CatalogConfig lists where to look for the default catalog
type CatalogConfig struct {
	Autoload   bool     `yaml:"autoload"`
	Candidates []string `yaml:"candidates"`
}

// MetricsConfig toggles the /metrics endpoint
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LogConfig sets the log level
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Type: StorageMemory,
			Redis: RedisConfig{
				BackupTTL: 24 * time.Hour,
			},
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Auction: AuctionConfig{
			InitialBudget: model.DefaultInitialBudget,
		},
		Catalog: CatalogConfig{
			Autoload: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads filename over the defaults, then applies environment
// overrides. A missing file is not an error; an empty filename skips the
// file entirely.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("FANTASTA_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("FANTASTA_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid FANTASTA_PORT value: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("FANTASTA_STORAGE"); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Storage.Redis.URL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Storage.Postgres.DSN = v
	}
	if v := os.Getenv("FANTASTA_ENFORCE_ROLE_CEILINGS"); v != "" {
		c.Auction.EnforceRoleCeilings = v == "true"
	}
	if v := os.Getenv("FANTASTA_CATALOG"); v != "" {
		c.Catalog.Candidates = splitList(v)
	}
	if v := os.Getenv("FANTASTA_CATALOG_AUTOLOAD"); v != "" {
		c.Catalog.Autoload = v == "true"
	}
	if v := os.Getenv("FANTASTA_METRICS"); v != "" {
		c.Metrics.Enabled = v == "true"
	}
	if v := os.Getenv("FANTASTA_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks settings that would otherwise fail later at wiring time
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageMemory:
	case StorageRedis:
		if c.Storage.Redis.URL == "" {
			return errors.New("REDIS_URL required when storage type is redis")
		}
	case StoragePostgres:
		if c.Storage.Postgres.DSN == "" {
			return errors.New("DATABASE_URL required when storage type is postgres")
		}
	default:
		return fmt.Errorf("invalid storage type %q: must be memory, redis or postgres", c.Storage.Type)
	}
	if c.Auction.InitialBudget < model.MinInitialBudget {
		return fmt.Errorf("initial budget %d is below %d", c.Auction.InitialBudget, model.MinInitialBudget)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
