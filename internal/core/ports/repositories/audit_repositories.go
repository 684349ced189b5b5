package repositories

import (
	"context"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
)

// AuditWriter appends financial log records. There is no update or delete.
type AuditWriter interface {
	SaveLog(ctx context.Context, log domain.FinancialLog) (int64, error)
}

// AuditReader lists financial log records.
type AuditReader interface {
	// ListLogs returns logs visible in scope, newest first, at most filter.Limit rows.
	ListLogs(ctx context.Context, scope domain.TenantScope, filter domain.AuditFilter) ([]domain.FinancialLog, error)

	// ListLogsForEntity returns the trail of a single entity, newest first.
	ListLogsForEntity(ctx context.Context, scope domain.TenantScope, entityType, entityID string) ([]domain.FinancialLog, error)
}

// AuditRepositoryFacade combines all audit repository interfaces.
type AuditRepositoryFacade interface {
	AuditWriter
	AuditReader
}
