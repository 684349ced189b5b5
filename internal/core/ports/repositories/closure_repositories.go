package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ClosureReader defines read operations for monthly closures.
type ClosureReader interface {
	// FindClosure returns the closure row of period or apperrors.ErrNotFound.
	FindClosure(ctx context.Context, period domain.Period) (*domain.MonthlyClosure, error)

	ListClosuresByYear(ctx context.Context, year int) ([]domain.MonthlyClosure, error)
}

// ClosureWriter defines state transitions of monthly closures.
type ClosureWriter interface {
	// UpsertClosed creates or re-stamps the period as CLOSED.
	UpsertClosed(ctx context.Context, period domain.Period, closedBy int64, closedAt time.Time) (*domain.MonthlyClosure, error)

	// FindClosureForUpdate reads the row of period and locks it until tx ends.
	// Returns apperrors.ErrNotFound when the period was never closed.
	FindClosureForUpdate(ctx context.Context, tx pgx.Tx, period domain.Period) (*domain.MonthlyClosure, error)

	// MarkReopened sets the locked row to OPEN with the reopen metadata.
	MarkReopened(ctx context.Context, tx pgx.Tx, period domain.Period, reopenedBy int64, reason string, reopenedAt time.Time) (*domain.MonthlyClosure, error)
}

// ClosureRepositoryFacade combines all closure repository interfaces.
type ClosureRepositoryFacade interface {
	ClosureReader
	ClosureWriter
}

// ClosureRepositoryWithTx extends ClosureRepositoryFacade with transaction capabilities.
type ClosureRepositoryWithTx interface {
	ClosureRepositoryFacade
	TransactionManager
}
