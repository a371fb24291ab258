// Package db provides PostgreSQL access to the course catalog with pooled,
// per-query connection acquisition.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds PostgreSQL pool configuration.
type Config struct {
	// URL is a postgres:// connection string.
	URL string

	// MaxConns caps the pool size. Zero means DefaultMaxConns.
	MaxConns int32

	// HealthCheckPeriod is how often idle connections are checked.
	// Zero means DefaultHealthCheckPeriod.
	HealthCheckPeriod time.Duration
}

// DefaultMaxConns is the pool cap when Config.MaxConns is zero. The catalog
// workload is a handful of short reads per assistant turn.
const DefaultMaxConns = 8

// DefaultHealthCheckPeriod is the idle connection check interval when
// Config.HealthCheckPeriod is zero.
const DefaultHealthCheckPeriod = 30 * time.Second

// Client wraps a pgx connection pool. Broken connections are re-established
// by the pool; every query acquires and releases its own connection.
type Client struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewClient creates a pooled PostgreSQL client and verifies connectivity.
func NewClient(ctx context.Context, cfg Config, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	if poolCfg.MaxConns == 0 {
		poolCfg.MaxConns = DefaultMaxConns
	}
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	if poolCfg.HealthCheckPeriod == 0 {
		poolCfg.HealthCheckPeriod = DefaultHealthCheckPeriod
	}

	log.Info("connecting to PostgreSQL",
		"host", poolCfg.ConnConfig.Host,
		"database", poolCfg.ConnConfig.Database,
		"max_conns", poolCfg.MaxConns,
	)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", wrapQueryError(err))
	}

	log.Info("PostgreSQL connection established")
	return &Client{pool: pool, logger: log}, nil
}

// Ping verifies the database is reachable. Backs the server health check.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", wrapQueryError(err))
	}
	return nil
}

// Close releases all pooled connections.
func (c *Client) Close() {
	c.logger.Info("closing PostgreSQL pool")
	c.pool.Close()
}
