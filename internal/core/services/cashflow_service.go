package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type cashFlowService struct {
	BaseService
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	categoryRepo portsrepo.CategoryReader
	memberRepo   portsrepo.MemberReader
	periodGuard  portssvc.PeriodGuardSvc
}

// CashFlowOption is a functional option for configuring the cash-flow service
type CashFlowOption func(*cashFlowService)

// WithPeriodGuard rejects changes that touch a closed month.
func WithPeriodGuard(guard portssvc.PeriodGuardSvc) CashFlowOption {
	return func(s *cashFlowService) {
		s.periodGuard = guard
	}
}

// WithCashFlowAudit records every ledger mutation.
func WithCashFlowAudit(audit portssvc.AuditRecorderSvc) CashFlowOption {
	return func(s *cashFlowService) {
		s.Audit = audit
	}
}

// WithMemberReader enables member validation and member histories.
func WithMemberReader(repo portsrepo.MemberReader) CashFlowOption {
	return func(s *cashFlowService) {
		s.memberRepo = repo
	}
}

// WithCashFlowClock overrides the creation timestamp source.
func WithCashFlowClock(now func() time.Time) CashFlowOption {
	return func(s *cashFlowService) {
		s.Now = now
	}
}

// NewCashFlowService creates the ledger entry service.
func NewCashFlowService(ledgerRepo portsrepo.LedgerRepositoryFacade, categoryRepo portsrepo.CategoryReader, options ...CashFlowOption) portssvc.CashFlowSvcFacade {
	svc := &cashFlowService{
		ledgerRepo:   ledgerRepo,
		categoryRepo: categoryRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CashFlowSvcFacade = (*cashFlowService)(nil)

func (s *cashFlowService) ListEntries(ctx context.Context, scope domain.TenantScope, params dto.ListLedgerParams) ([]domain.LedgerEntry, domain.LedgerSummary, error) {
	filter, err := ledgerFilterFromParams(params)
	if err != nil {
		return nil, domain.LedgerSummary{}, err
	}

	entries, err := s.ledgerRepo.ListEntries(ctx, scope, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries")
		return nil, domain.LedgerSummary{}, err
	}
	return entries, accounting.SummarizeEntries(entries), nil
}

func ledgerFilterFromParams(params dto.ListLedgerParams) (domain.LedgerFilter, error) {
	var filter domain.LedgerFilter
	if params.StartDate != "" {
		start, err := accounting.ParseQueryDate(params.StartDate)
		if err != nil {
			return filter, apperrors.NewValidationFailedError("invalid startDate: " + err.Error())
		}
		filter.StartDate = &start
	}
	if params.EndDate != "" {
		end, err := accounting.ParseQueryDate(params.EndDate)
		if err != nil {
			return filter, apperrors.NewValidationFailedError("invalid endDate: " + err.Error())
		}
		// A bare end date includes the whole day.
		if accounting.IsBareDate(params.EndDate) {
			end = end.Add(24 * time.Hour)
		}
		filter.EndDate = &end
	}
	if params.Type != "" {
		t := domain.EntryType(params.Type)
		if !t.IsValid() {
			return filter, apperrors.NewValidationFailedError("type must be IN or OUT")
		}
		filter.Type = &t
	}
	if params.CategoryID > 0 {
		id := params.CategoryID
		filter.CategoryID = &id
	}
	return filter, nil
}

func (s *cashFlowService) MemberHistory(ctx context.Context, scope domain.TenantScope, memberID int64) (*domain.MemberHistory, error) {
	if s.memberRepo == nil {
		return nil, apperrors.NewNotFoundError("member history is not available")
	}
	member, err := s.memberRepo.FindMemberByID(ctx, scope, memberID)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.ListEntries(ctx, scope, domain.LedgerFilter{MemberID: &memberID})
	if err != nil {
		s.LogError(ctx, err, "Failed to list member entries", slog.Int64("member_id", memberID))
		return nil, err
	}
	return &domain.MemberHistory{
		Member:  *member,
		Entries: entries,
		Summary: accounting.SummarizeEntries(entries),
	}, nil
}

// maxEntryAmount is the largest value a NUMERIC(14,2) amount column holds.
var maxEntryAmount = decimal.RequireFromString("999999999999.99")

// validatedEntry checks the request and resolves its category.
func (s *cashFlowService) validatedEntry(ctx context.Context, scope domain.TenantScope, req dto.CreateLedgerEntryRequest) (domain.LedgerEntry, error) {
	entry := domain.LedgerEntry{
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Type:        domain.EntryType(req.Type),
		CategoryID:  req.CategoryID,
		MemberID:    req.MemberID,
	}
	if entry.Description == "" {
		return entry, apperrors.NewValidationFailedError("description is required")
	}
	if !entry.Amount.IsPositive() {
		return entry, apperrors.NewValidationFailedError("amount must be greater than zero")
	}
	if !entry.Amount.Equal(entry.Amount.Round(2)) {
		return entry, apperrors.NewValidationFailedError("amount must have at most two decimal places")
	}
	if entry.Amount.GreaterThan(maxEntryAmount) {
		return entry, apperrors.NewValidationFailedError("amount must not exceed " + maxEntryAmount.StringFixed(2))
	}
	if !entry.Type.IsValid() {
		return entry, apperrors.NewValidationFailedError("type must be IN or OUT")
	}
	date, err := accounting.NormalizeEntryDate(req.Date)
	if err != nil {
		return entry, apperrors.NewValidationFailedError(err.Error())
	}
	entry.Date = date

	if entry.CategoryID <= 0 {
		return entry, apperrors.NewValidationFailedError("categoryId is required")
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, entry.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return entry, apperrors.NewValidationFailedError("category " + strconv.FormatInt(entry.CategoryID, 10) + " does not exist")
		}
		return entry, err
	}
	entry.Category = category

	if entry.MemberID != nil && s.memberRepo != nil {
		if _, err := s.memberRepo.FindMemberByID(ctx, scope, *entry.MemberID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return entry, apperrors.NewValidationFailedError("member " + strconv.FormatInt(*entry.MemberID, 10) + " does not exist")
			}
			return entry, err
		}
	}
	return entry, nil
}

func (s *cashFlowService) ensureOpen(ctx context.Context, dates ...time.Time) error {
	if s.periodGuard == nil {
		return nil
	}
	for _, d := range dates {
		if err := s.periodGuard.EnsurePeriodOpen(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (s *cashFlowService) CreateEntry(ctx context.Context, scope domain.TenantScope, req dto.CreateLedgerEntryRequest, actor domain.Actor) (*domain.LedgerEntry, error) {
	entry, err := s.validatedEntry(ctx, scope, req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOpen(ctx, entry.Date); err != nil {
		return nil, err
	}

	now := s.now()
	entry.OperatorID = actor.UserID
	entry.OperatorName = actor.Name
	entry.TenantID = scope.TenantID()
	entry.Version = 1
	entry.AuditFields = domain.AuditFields{CreatedAt: now, UpdatedAt: now}

	id, err := s.ledgerRepo.SaveEntry(ctx, entry)
	if err != nil {
		s.LogError(ctx, err, "Failed to save ledger entry")
		return nil, err
	}
	entry.EntryID = id

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditCreate,
		EntityType:  domain.EntityLedgerEntry,
		EntityID:    strconv.FormatInt(id, 10),
		Description: string(entry.Type) + " " + entry.Amount.StringFixed(2) + ": " + entry.Description,
		New:         entry,
		TenantID:    entry.TenantID,
	})
	s.LogInfo(ctx, "Ledger entry created", slog.Int64("entry_id", id))
	return &entry, nil
}

func (s *cashFlowService) UpdateEntry(ctx context.Context, scope domain.TenantScope, entryID int64, req dto.UpdateLedgerEntryRequest, actor domain.Actor) (*domain.LedgerEntry, error) {
	current, err := s.ledgerRepo.FindEntryByID(ctx, scope, entryID)
	if err != nil {
		return nil, err
	}
	if req.Version != nil && *req.Version != current.Version {
		return nil, apperrors.NewConflictError("ledger entry was modified concurrently, reload and retry")
	}

	updated, err := s.validatedEntry(ctx, scope, req.CreateLedgerEntryRequest)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOpen(ctx, current.Date, updated.Date); err != nil {
		return nil, err
	}

	updated.EntryID = current.EntryID
	updated.OperatorID = current.OperatorID
	updated.OperatorName = current.OperatorName
	updated.TenantID = current.TenantID
	updated.Version = current.Version
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = s.now()

	if err := s.ledgerRepo.UpdateEntry(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update ledger entry", slog.Int64("entry_id", entryID))
		return nil, err
	}
	updated.Version = current.Version + 1

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditUpdate,
		EntityType:  domain.EntityLedgerEntry,
		EntityID:    strconv.FormatInt(entryID, 10),
		Description: "Ledger entry updated: " + updated.Description,
		Old:         current,
		New:         updated,
		TenantID:    updated.TenantID,
	})
	return &updated, nil
}

func (s *cashFlowService) DeleteEntry(ctx context.Context, scope domain.TenantScope, entryID int64, actor domain.Actor) error {
	current, err := s.ledgerRepo.FindEntryByID(ctx, scope, entryID)
	if err != nil {
		return err
	}
	if err := s.ensureOpen(ctx, current.Date); err != nil {
		return err
	}

	if err := s.ledgerRepo.DeleteEntry(ctx, scope, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete ledger entry", slog.Int64("entry_id", entryID))
		return err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditDelete,
		EntityType:  domain.EntityLedgerEntry,
		EntityID:    strconv.FormatInt(entryID, 10),
		Description: "Ledger entry deleted: " + current.Description,
		Old:         current,
		TenantID:    current.TenantID,
	})
	return nil
}
