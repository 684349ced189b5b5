package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
)

// reportingRepository computes ledger aggregates in the database so report
// cost does not grow with the number of rows loaded into memory.
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(pool PgxPool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

const sumByTypeColumns = `
	COALESCE(SUM(CASE WHEN e.type = 'IN' THEN e.amount ELSE 0 END), 0) AS total_in,
	COALESCE(SUM(CASE WHEN e.type = 'OUT' THEN e.amount ELSE 0 END), 0) AS total_out`

// SumBefore totals every entry dated before the first instant of cutoff.
func (r *reportingRepository) SumBefore(ctx context.Context, scope domain.TenantScope, cutoff domain.Period) (domain.LedgerSummary, error) {
	args := []any{cutoff.Start()}
	clause, args := scopeClause(scope, "e.association_id", args)
	query := `SELECT` + sumByTypeColumns + `
		FROM ledger_entries e
		WHERE e.entry_date < $1` + clause

	var s domain.LedgerSummary
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&s.TotalIn, &s.TotalOut); err != nil {
		return domain.LedgerSummary{}, fmt.Errorf("error querying opening balance: %w", err)
	}
	s.Balance = s.TotalIn.Sub(s.TotalOut)
	return s, nil
}

func (r *reportingRepository) MonthlyTotals(ctx context.Context, scope domain.TenantScope, year int) ([]domain.MonthTotals, error) {
	first := domain.Period{Month: 1, Year: year}
	args := []any{first.Start(), first.Start().AddDate(1, 0, 0)}
	clause, args := scopeClause(scope, "e.association_id", args)
	query := `SELECT EXTRACT(MONTH FROM e.entry_date AT TIME ZONE 'UTC')::int AS month,` + sumByTypeColumns + `
		FROM ledger_entries e
		WHERE e.entry_date >= $1 AND e.entry_date < $2` + clause + `
		GROUP BY 1
		ORDER BY 1`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly totals: %w", err)
	}
	defer rows.Close()

	result := []domain.MonthTotals{}
	for rows.Next() {
		var t domain.MonthTotals
		if err := rows.Scan(&t.Month, &t.TotalIn, &t.TotalOut); err != nil {
			return nil, fmt.Errorf("error scanning monthly totals: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly totals: %w", err)
	}
	return result, nil
}

func (r *reportingRepository) CategoryTotals(ctx context.Context, scope domain.TenantScope, period domain.Period) ([]domain.CategoryTotal, error) {
	args := []any{period.Start(), period.End()}
	clause, args := scopeClause(scope, "e.association_id", args)
	query := `
		SELECT c.id, c.name, c.color, e.type, SUM(e.amount) AS amount
		FROM ledger_entries e
		JOIN categories c ON c.id = e.category_id
		WHERE e.entry_date >= $1 AND e.entry_date < $2` + clause + `
		GROUP BY c.id, c.name, c.color, e.type
		ORDER BY amount DESC`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying category totals: %w", err)
	}
	defer rows.Close()

	result := []domain.CategoryTotal{}
	for rows.Next() {
		var t domain.CategoryTotal
		var entryType string
		if err := rows.Scan(&t.CategoryID, &t.Name, &t.Color, &entryType, &t.Amount); err != nil {
			return nil, fmt.Errorf("error scanning category totals: %w", err)
		}
		t.Type = domain.EntryType(entryType)
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}
	return result, nil
}
