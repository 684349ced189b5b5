package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxAuditRepository stores financial logs. The table has a trigger rejecting
// UPDATE and DELETE, and this type exposes neither.
type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool PgxPool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const auditSelectQuery = `
SELECT l.id, l.user_id, l.user_name, l.action, l.entity_type, l.entity_id,
	l.old_value, l.new_value, l.description, l.logged_at, l.association_id
FROM financial_logs l
WHERE 1 = 1`

func scanLog(row pgx.Row) (*domain.FinancialLog, error) {
	var l domain.FinancialLog
	var action string
	var oldValue, newValue []byte
	err := row.Scan(
		&l.LogID, &l.UserID, &l.UserName, &action, &l.EntityType, &l.EntityID,
		&oldValue, &newValue, &l.Description, &l.Timestamp, &l.TenantID,
	)
	if err != nil {
		return nil, err
	}
	l.Action = domain.AuditAction(action)
	l.OldValue = oldValue
	l.NewValue = newValue
	l.Timestamp = l.Timestamp.UTC()
	return &l, nil
}

func (r *PgxAuditRepository) SaveLog(ctx context.Context, log domain.FinancialLog) (int64, error) {
	var id int64
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO financial_logs (
			user_id, user_name, action, entity_type, entity_id,
			old_value, new_value, description, logged_at, association_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		log.UserID,
		log.UserName,
		string(log.Action),
		log.EntityType,
		log.EntityID,
		nullableJSON(log.OldValue),
		nullableJSON(log.NewValue),
		log.Description,
		log.Timestamp,
		log.TenantID,
	).Scan(&id)
	if err != nil {
		return 0, translateWriteError(err, "financial log")
	}
	return id, nil
}

// nullableJSON maps an empty snapshot to SQL NULL.
func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func (r *PgxAuditRepository) ListLogs(ctx context.Context, scope domain.TenantScope, filter domain.AuditFilter) ([]domain.FinancialLog, error) {
	query := auditSelectQuery
	var args []any
	clause, args := scopeClause(scope, "l.association_id", args)
	query += clause
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND l.logged_at >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND l.logged_at < $%d", len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(" AND l.user_id = $%d", len(args))
	}
	if filter.AfterTimestamp != nil && filter.AfterID != nil {
		args = append(args, *filter.AfterTimestamp, *filter.AfterID)
		query += fmt.Sprintf(" AND (l.logged_at, l.id) < ($%d, $%d)", len(args)-1, len(args))
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY l.logged_at DESC, l.id DESC LIMIT $%d", len(args))

	return r.collectLogs(ctx, query, args...)
}

func (r *PgxAuditRepository) ListLogsForEntity(ctx context.Context, scope domain.TenantScope, entityType, entityID string) ([]domain.FinancialLog, error) {
	args := []any{entityType, entityID}
	clause, args := scopeClause(scope, "l.association_id", args)
	query := auditSelectQuery + ` AND l.entity_type = $1 AND l.entity_id = $2` + clause +
		` ORDER BY l.logged_at DESC, l.id DESC`
	return r.collectLogs(ctx, query, args...)
}

func (r *PgxAuditRepository) collectLogs(ctx context.Context, query string, args ...any) ([]domain.FinancialLog, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, queryError("financial logs", err)
	}
	defer rows.Close()

	logs := []domain.FinancialLog{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, queryError("financial logs", err)
		}
		logs = append(logs, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("financial logs", err)
	}
	return logs, nil
}
