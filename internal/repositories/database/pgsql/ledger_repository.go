package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for cash-flow entries.
func newPgxLedgerRepository(pool PgxPool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerSelectQuery = `
SELECT
	e.id, e.description, e.amount, e.entry_date, e.type, e.category_id, e.member_id,
	e.operator_id, e.operator_name, e.association_id, e.version, e.created_at, e.updated_at,
	c.name, c.color, c.type, c.version
FROM ledger_entries e
JOIN categories c ON c.id = e.category_id
WHERE 1 = 1`

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var c domain.Category
	var entryType, categoryType string
	err := row.Scan(
		&e.EntryID, &e.Description, &e.Amount, &e.Date, &entryType, &e.CategoryID, &e.MemberID,
		&e.OperatorID, &e.OperatorName, &e.TenantID, &e.Version, &e.CreatedAt, &e.UpdatedAt,
		&c.Name, &c.Color, &categoryType, &c.Version,
	)
	if err != nil {
		return nil, err
	}
	e.Type = domain.EntryType(entryType)
	e.Date = e.Date.UTC()
	c.CategoryID = e.CategoryID
	c.Type = domain.EntryType(categoryType)
	e.Category = &c
	return &e, nil
}

func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, scope domain.TenantScope, entryID int64) (*domain.LedgerEntry, error) {
	args := []any{entryID}
	clause, args := scopeClause(scope, "e.association_id", args)
	e, err := scanLedgerEntry(r.Pool.QueryRow(ctx, ledgerSelectQuery+` AND e.id = $1`+clause, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("ledger entry " + strconv.FormatInt(entryID, 10) + " not found")
		}
		return nil, queryError("ledger entry", err)
	}
	return e, nil
}

func (r *PgxLedgerRepository) ListEntries(ctx context.Context, scope domain.TenantScope, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	query := ledgerSelectQuery
	var args []any
	clause, args := scopeClause(scope, "e.association_id", args)
	query += clause
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND e.entry_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND e.entry_date < $%d", len(args))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		query += fmt.Sprintf(" AND e.type = $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND e.category_id = $%d", len(args))
	}
	if filter.MemberID != nil {
		args = append(args, *filter.MemberID)
		query += fmt.Sprintf(" AND e.member_id = $%d", len(args))
	}
	query += ` ORDER BY e.entry_date DESC, e.id DESC`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, queryError("ledger entries", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, queryError("ledger entries", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("ledger entries", err)
	}
	return entries, nil
}

func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) (int64, error) {
	var id int64
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO ledger_entries (
			description, amount, entry_date, type, category_id, member_id,
			operator_id, operator_name, association_id, version, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11)
		RETURNING id`,
		entry.Description,
		entry.Amount,
		entry.Date,
		string(entry.Type),
		entry.CategoryID,
		entry.MemberID,
		entry.OperatorID,
		entry.OperatorName,
		entry.TenantID,
		entry.CreatedAt,
		entry.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, translateWriteError(err, "ledger entry")
	}
	return id, nil
}

func (r *PgxLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	result, err := r.Pool.Exec(ctx, `
		UPDATE ledger_entries
		SET description = $1, amount = $2, entry_date = $3, type = $4, category_id = $5, member_id = $6,
			operator_id = $7, operator_name = $8, updated_at = $9, version = version + 1
		WHERE id = $10 AND version = $11`,
		entry.Description,
		entry.Amount,
		entry.Date,
		string(entry.Type),
		entry.CategoryID,
		entry.MemberID,
		entry.OperatorID,
		entry.OperatorName,
		entry.UpdatedAt,
		entry.EntryID,
		entry.Version,
	)
	if err != nil {
		return translateWriteError(err, "ledger entry")
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewConflictError("ledger entry was modified concurrently, reload and retry")
	}
	return nil
}

func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, scope domain.TenantScope, entryID int64) error {
	args := []any{entryID}
	clause, args := scopeClause(scope, "association_id", args)
	result, err := r.Pool.Exec(ctx, `DELETE FROM ledger_entries WHERE id = $1`+clause, args...)
	if err != nil {
		return translateWriteError(err, "ledger entry")
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("ledger entry " + strconv.FormatInt(entryID, 10) + " not found")
	}
	return nil
}
