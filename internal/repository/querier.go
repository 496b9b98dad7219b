// Package repository provides data access layer implementations for the accounts API.
package repository

import (
	"context"
	"database/sql"
)

// Querier is the subset of database/sql used by repositories. Both the
// connection pool and an open *sql.Tx satisfy it, so services can build
// transaction-scoped repositories for multi-statement operations.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
