package services

import (
	"context"
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
)

// PeriodGuardSvc tells whether a date falls in a period that still accepts ledger changes.
type PeriodGuardSvc interface {
	// EnsurePeriodOpen returns apperrors.ErrConflict when the month of date is CLOSED.
	EnsurePeriodOpen(ctx context.Context, date time.Time) error
}

// ClosureReaderSvc defines read operations on monthly closures.
type ClosureReaderSvc interface {
	ListClosures(ctx context.Context, scope domain.TenantScope, year int) ([]domain.MonthBalance, error)
	CheckStatus(ctx context.Context, date time.Time) (domain.Period, domain.ClosureStatus, error)

	// GenerateReport builds the month report. A non-nil actor records an EXPORT audit entry.
	GenerateReport(ctx context.Context, scope domain.TenantScope, period domain.Period, actor *domain.Actor) (*domain.ClosureReport, error)
}

// ClosureWriterSvc defines closure state transitions.
type ClosureWriterSvc interface {
	CloseMonth(ctx context.Context, scope domain.TenantScope, period domain.Period, actor domain.Actor) (*domain.MonthlyClosure, error)
	ReopenMonth(ctx context.Context, scope domain.TenantScope, period domain.Period, reason string, actor domain.Actor) (*domain.MonthlyClosure, error)
}

// ClosureSvcFacade combines all closure service interfaces.
type ClosureSvcFacade interface {
	PeriodGuardSvc
	ClosureReaderSvc
	ClosureWriterSvc
}

// ReportRenderer renders a month report into a downloadable document.
type ReportRenderer interface {
	RenderClosureReport(ctx context.Context, report *domain.ClosureReport, association *domain.Association) ([]byte, error)
}
