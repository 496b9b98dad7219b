package db

import (
	"database/sql"
	"io"
	"log/slog"
)

// NewTestDB wraps an already-open pool for test use. Pool lifecycle logs are
// discarded so repository and service tests stay quiet.
func NewTestDB(pool *sql.DB) *DB {
	return &DB{
		DB:     pool,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
