package services

import (
	"context"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/SscSPs/association_manager_app/internal/dto"
)

// AuditRecorderSvc appends audit records. Record never fails the caller:
// persistence errors are logged and swallowed.
type AuditRecorderSvc interface {
	Record(ctx context.Context, rec domain.AuditRecord)
	Enabled() bool
	SetEnabled(enabled bool)
}

// AuditReaderSvc lists audit records.
type AuditReaderSvc interface {
	ListLogs(ctx context.Context, scope domain.TenantScope, params dto.ListLogsParams) (*dto.ListLogsResponse, error)
}

// AuditSvcFacade combines all audit service interfaces.
type AuditSvcFacade interface {
	AuditRecorderSvc
	AuditReaderSvc
}

// AuditEventPublisher forwards written audit records to an external stream.
type AuditEventPublisher interface {
	Publish(ctx context.Context, log domain.FinancialLog) error
}
