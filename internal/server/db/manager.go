// Package db wires the SQL connection, embedded migrations and repositories
// behind a single manager consumed by the server bootstrap.
package db

import (
	"context"
	"database/sql"

	"github.com/gatehouse-dev/gatehouse/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Close() error
}
