package store

import (
	"context"
	"database/sql"
)

// DBTX abstracts the database access layer. It is satisfied by *sql.DB,
// *sql.Tx, and *sql.Conn, so stores work identically against the pool, a
// transaction, or the dedicated connection a background worker holds.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
