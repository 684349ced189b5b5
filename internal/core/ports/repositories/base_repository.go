package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by repositories whose writes can span
// several statements under one transaction.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback is a no-op on an already committed transaction, so it can be deferred.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
