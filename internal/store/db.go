package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql that the task store needs. Both *sql.DB
// and *sql.Tx satisfy it, so the same store code runs against the pool in
// production and against a transaction when a caller wants atomicity.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
