// Package dbx provides a minimal database abstraction shared by
// repositories: an interface (DBTX) implemented by both *sql.DB and
// *sql.Tx, so repository code is indifferent to running inside a
// transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
