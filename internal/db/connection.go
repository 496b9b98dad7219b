// Package db manages the postgres connection pool backing the account and
// instrument tables.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"accounts-api/internal/config"

	// Registers the postgres driver with database/sql
	_ "github.com/lib/pq"
)

// DB bundles the shared connection pool with the logger used for pool
// lifecycle events. Repositories accept it through the Querier interface, so
// the same code path serves both the pool and individual transactions.
type DB struct {
	*sql.DB
	logger *slog.Logger
}

// Connect opens the accounts database pool, applies the configured limits
// and verifies the server is reachable before it is handed to the services.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	logger.Info("opening accounts database pool",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
	)

	pool, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open accounts database: %w", err)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := pool.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping accounts database: %w", err)
	}

	logger.Info("accounts database pool ready",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
		"conn_max_lifetime", cfg.ConnMaxLifetime,
	)

	return &DB{
		DB:     pool,
		logger: logger,
	}, nil
}

// Close shuts down the pool
func (db *DB) Close() error {
	db.logger.Info("closing accounts database pool")
	return db.DB.Close()
}
