package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

type closureService struct {
	BaseService
	closureRepo   portsrepo.ClosureRepositoryWithTx
	reportingRepo portsrepo.ReportingRepository
	enforceClosed bool
}

// ClosureOption is a functional option for configuring the closure service
type ClosureOption func(*closureService)

// WithClosureAudit records closes, reopens and report exports.
func WithClosureAudit(audit portssvc.AuditRecorderSvc) ClosureOption {
	return func(s *closureService) {
		s.Audit = audit
	}
}

// WithClosureClock overrides the clock used for "current month" and timestamps.
func WithClosureClock(now func() time.Time) ClosureOption {
	return func(s *closureService) {
		s.Now = now
	}
}

// WithClosedPeriodEnforcement makes EnsurePeriodOpen reject dates in CLOSED months.
func WithClosedPeriodEnforcement(enabled bool) ClosureOption {
	return func(s *closureService) {
		s.enforceClosed = enabled
	}
}

// NewClosureService creates the monthly closure service.
func NewClosureService(closureRepo portsrepo.ClosureRepositoryWithTx, reportingRepo portsrepo.ReportingRepository, options ...ClosureOption) portssvc.ClosureSvcFacade {
	svc := &closureService{
		closureRepo:   closureRepo,
		reportingRepo: reportingRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ClosureSvcFacade = (*closureService)(nil)

func periodLabel(p domain.Period) string {
	return fmt.Sprintf("%02d/%d", p.Month, p.Year)
}

func (s *closureService) statusOf(ctx context.Context, period domain.Period) (domain.ClosureStatus, *domain.MonthlyClosure, error) {
	closure, err := s.closureRepo.FindClosure(ctx, period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.ClosureOpen, nil, nil
		}
		return "", nil, err
	}
	return closure.Status, closure, nil
}

func (s *closureService) EnsurePeriodOpen(ctx context.Context, date time.Time) error {
	if !s.enforceClosed {
		return nil
	}
	period := domain.PeriodOf(date)
	status, _, err := s.statusOf(ctx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to check period status", slog.String("period", periodLabel(period)))
		return err
	}
	if status == domain.ClosureClosed {
		return apperrors.NewConflictError("period " + periodLabel(period) + " is closed")
	}
	return nil
}

func (s *closureService) ListClosures(ctx context.Context, scope domain.TenantScope, year int) ([]domain.MonthBalance, error) {
	if year <= 0 {
		return nil, apperrors.NewValidationFailedError("year must be positive")
	}

	var (
		opening  domain.LedgerSummary
		totals   []domain.MonthTotals
		closures []domain.MonthlyClosure
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		opening, err = s.reportingRepo.SumBefore(gctx, scope, domain.Period{Month: 1, Year: year})
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.reportingRepo.MonthlyTotals(gctx, scope, year)
		return err
	})
	g.Go(func() error {
		var err error
		closures, err = s.closureRepo.ListClosuresByYear(gctx, year)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load closure overview", slog.Int("year", year))
		return nil, err
	}

	return accounting.FoldMonthlyBalances(year, opening.Balance, totals, closures), nil
}

func (s *closureService) CheckStatus(ctx context.Context, date time.Time) (domain.Period, domain.ClosureStatus, error) {
	period := domain.PeriodOf(date)
	status, _, err := s.statusOf(ctx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to check period status", slog.String("period", periodLabel(period)))
		return period, "", err
	}
	return period, status, nil
}

func (s *closureService) CloseMonth(ctx context.Context, scope domain.TenantScope, period domain.Period, actor domain.Actor) (*domain.MonthlyClosure, error) {
	if !period.IsValid() {
		return nil, apperrors.NewValidationFailedError("month must be between 1 and 12")
	}
	now := s.now()
	if period.After(domain.PeriodOf(now)) {
		return nil, apperrors.NewValidationFailedError("cannot close a future month")
	}

	closure, err := s.closureRepo.UpsertClosed(ctx, period, actor.UserID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to close month", slog.String("period", periodLabel(period)))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditClose,
		EntityType:  domain.EntityMonthlyClosure,
		EntityID:    fmt.Sprintf("%d", closure.ClosureID),
		Description: "Month " + periodLabel(period) + " closed",
		New:         closure,
		TenantID:    scope.TenantID(),
	})
	s.LogInfo(ctx, "Month closed", slog.String("period", periodLabel(period)), slog.Int64("user_id", actor.UserID))
	return closure, nil
}

func (s *closureService) ReopenMonth(ctx context.Context, scope domain.TenantScope, period domain.Period, reason string, actor domain.Actor) (*domain.MonthlyClosure, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationFailedError("a reason is required to reopen a month")
	}
	if !period.IsValid() {
		return nil, apperrors.NewValidationFailedError("month must be between 1 and 12")
	}

	tx, err := s.closureRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin reopen transaction")
		return nil, err
	}
	defer func() {
		if rbErr := s.closureRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to rollback reopen transaction")
		}
	}()

	previous, err := s.closureRepo.FindClosureForUpdate(ctx, tx, period)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock closure", slog.String("period", periodLabel(period)))
		}
		return nil, err
	}

	reopened, err := s.closureRepo.MarkReopened(ctx, tx, period, actor.UserID, reason, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to reopen month", slog.String("period", periodLabel(period)))
		return nil, err
	}
	if err := s.closureRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit reopen", slog.String("period", periodLabel(period)))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditReopen,
		EntityType:  domain.EntityMonthlyClosure,
		EntityID:    fmt.Sprintf("%d", reopened.ClosureID),
		Description: "Month " + periodLabel(period) + " reopened: " + reason,
		Old:         previous,
		New:         reopened,
		TenantID:    scope.TenantID(),
	})
	s.LogInfo(ctx, "Month reopened", slog.String("period", periodLabel(period)), slog.Int64("user_id", actor.UserID))
	return reopened, nil
}

func (s *closureService) GenerateReport(ctx context.Context, scope domain.TenantScope, period domain.Period, actor *domain.Actor) (*domain.ClosureReport, error) {
	if !period.IsValid() {
		return nil, apperrors.NewValidationFailedError("month must be between 1 and 12")
	}

	var (
		opening domain.LedgerSummary
		lines   []domain.CategoryTotal
		status  domain.ClosureStatus
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		opening, err = s.reportingRepo.SumBefore(gctx, scope, period)
		return err
	})
	g.Go(func() error {
		var err error
		lines, err = s.reportingRepo.CategoryTotals(gctx, scope, period)
		return err
	})
	g.Go(func() error {
		var err error
		status, _, err = s.statusOf(gctx, period)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to build closure report", slog.String("period", periodLabel(period)))
		return nil, err
	}

	report := accounting.BuildClosureReport(period, status, opening.Balance, lines)

	if actor != nil {
		s.recordAudit(ctx, domain.AuditRecord{
			Actor:       *actor,
			Action:      domain.AuditExport,
			EntityType:  domain.EntityReport,
			EntityID:    fmt.Sprintf("%d-%02d", period.Year, period.Month),
			Description: "Closure report exported for " + periodLabel(period),
			TenantID:    scope.TenantID(),
		})
	}
	return &report, nil
}
