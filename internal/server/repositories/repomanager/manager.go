// Package repomanager binds repositories to a store connection and exposes
// transactions, migrations and connectivity checks to the services.
package repomanager

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/watchlist/internal/server/repositories/users"
)

// MemoryDSN selects the in-memory store.
const MemoryDSN = "memory://"

// RepositoryManager vends repositories and runs units of work.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error

	// Users returns a repository outside any transaction.
	Users() users.Repository

	// WithTx runs fn with a repository bound to a single transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo users.Repository) error) error
}

// Open connects to the store named by dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (RepositoryManager, error) {
	if strings.HasPrefix(dsn, MemoryDSN) {
		return NewMemoryRepositoryManager(), nil
	}
	return OpenPostgres(ctx, dsn)
}
