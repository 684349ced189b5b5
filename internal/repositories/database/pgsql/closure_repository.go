package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxClosureRepository struct {
	BaseRepository
}

func newPgxClosureRepository(pool PgxPool) portsrepo.ClosureRepositoryWithTx {
	return &PgxClosureRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClosureRepositoryWithTx = (*PgxClosureRepository)(nil)

const closureColumns = `id, month, year, status, closed_at, closed_by, reopened_at, reopened_by, reopen_reason`

func scanClosure(row pgx.Row) (*domain.MonthlyClosure, error) {
	var c domain.MonthlyClosure
	var status string
	err := row.Scan(
		&c.ClosureID, &c.Month, &c.Year, &status,
		&c.ClosedAt, &c.ClosedBy, &c.ReopenedAt, &c.ReopenedBy, &c.ReopenReason,
	)
	if err != nil {
		return nil, err
	}
	c.Status = domain.ClosureStatus(status)
	return &c, nil
}

func closureNotFound(period domain.Period) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("no closure recorded for %02d/%d", period.Month, period.Year))
}

func (r *PgxClosureRepository) FindClosure(ctx context.Context, period domain.Period) (*domain.MonthlyClosure, error) {
	c, err := scanClosure(r.Pool.QueryRow(ctx,
		`SELECT `+closureColumns+` FROM monthly_closures WHERE month = $1 AND year = $2`,
		period.Month, period.Year,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, closureNotFound(period)
		}
		return nil, queryError("monthly closure", err)
	}
	return c, nil
}

func (r *PgxClosureRepository) ListClosuresByYear(ctx context.Context, year int) ([]domain.MonthlyClosure, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+closureColumns+` FROM monthly_closures WHERE year = $1 ORDER BY month`,
		year,
	)
	if err != nil {
		return nil, queryError("monthly closures", err)
	}
	defer rows.Close()

	closures := []domain.MonthlyClosure{}
	for rows.Next() {
		c, err := scanClosure(rows)
		if err != nil {
			return nil, queryError("monthly closures", err)
		}
		closures = append(closures, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("monthly closures", err)
	}
	return closures, nil
}

// UpsertClosed relies on the (month, year) unique constraint, so concurrent
// closes of the same period leave exactly one row.
func (r *PgxClosureRepository) UpsertClosed(ctx context.Context, period domain.Period, closedBy int64, closedAt time.Time) (*domain.MonthlyClosure, error) {
	c, err := scanClosure(r.Pool.QueryRow(ctx, `
		INSERT INTO monthly_closures (month, year, status, closed_at, closed_by)
		VALUES ($1, $2, 'CLOSED', $3, $4)
		ON CONFLICT (month, year) DO UPDATE SET
			status = 'CLOSED',
			closed_at = EXCLUDED.closed_at,
			closed_by = EXCLUDED.closed_by
		RETURNING `+closureColumns,
		period.Month, period.Year, closedAt, closedBy,
	))
	if err != nil {
		return nil, translateWriteError(err, "monthly closure")
	}
	return c, nil
}

func (r *PgxClosureRepository) FindClosureForUpdate(ctx context.Context, tx pgx.Tx, period domain.Period) (*domain.MonthlyClosure, error) {
	c, err := scanClosure(tx.QueryRow(ctx,
		`SELECT `+closureColumns+` FROM monthly_closures WHERE month = $1 AND year = $2 FOR UPDATE`,
		period.Month, period.Year,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, closureNotFound(period)
		}
		return nil, queryError("monthly closure", err)
	}
	return c, nil
}

func (r *PgxClosureRepository) MarkReopened(ctx context.Context, tx pgx.Tx, period domain.Period, reopenedBy int64, reason string, reopenedAt time.Time) (*domain.MonthlyClosure, error) {
	c, err := scanClosure(tx.QueryRow(ctx, `
		UPDATE monthly_closures
		SET status = 'OPEN', reopened_at = $1, reopened_by = $2, reopen_reason = $3
		WHERE month = $4 AND year = $5
		RETURNING `+closureColumns,
		reopenedAt, reopenedBy, reason, period.Month, period.Year,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, closureNotFound(period)
		}
		return nil, translateWriteError(err, "monthly closure")
	}
	return c, nil
}
