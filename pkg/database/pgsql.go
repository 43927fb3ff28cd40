package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type poolOptions struct {
	ping           bool
	connectTimeout time.Duration
	maxConns       int32
}

// PoolOption customises NewPgxPool.
type PoolOption func(*poolOptions)

// WithPing makes NewPgxPool fail fast when the database is unreachable.
func WithPing(enabled bool) PoolOption {
	return func(o *poolOptions) { o.ping = enabled }
}

// WithConnectTimeout bounds establishing each connection.
func WithConnectTimeout(d time.Duration) PoolOption {
	return func(o *poolOptions) { o.connectTimeout = d }
}

// WithMaxConns caps the pool size.
func WithMaxConns(n int32) PoolOption {
	return func(o *poolOptions) { o.maxConns = n }
}

// NewPgxPool creates a new PostgreSQL connection pool.
func NewPgxPool(ctx context.Context, databaseURL string, opts ...PoolOption) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}
	o := poolOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	if o.connectTimeout > 0 {
		config.ConnConfig.ConnectTimeout = o.connectTimeout
	}
	if o.maxConns > 0 {
		config.MaxConns = o.maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if o.ping {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		slog.Info("Successfully connected to PostgreSQL database.")
	}
	return pool, nil
}

// ClosePgxPool closes the PostgreSQL connection pool.
func ClosePgxPool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
		slog.Info("PostgreSQL connection pool closed.")
	}
}
