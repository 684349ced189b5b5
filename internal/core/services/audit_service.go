package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/utils/accounting"
	"github.com/SscSPs/association_manager_app/internal/utils/pagination"
)

const (
	defaultLogPageSize = 50
	maxLogPageSize     = 200
	systemActorName    = "system"
)

type auditService struct {
	BaseService
	repo      portsrepo.AuditRepositoryFacade
	publisher portssvc.AuditEventPublisher
	enabled   atomic.Bool
}

// AuditOption configures the audit service.
type AuditOption func(*auditService)

// WithAuditPublisher forwards every stored record to publisher.
func WithAuditPublisher(publisher portssvc.AuditEventPublisher) AuditOption {
	return func(s *auditService) {
		s.publisher = publisher
	}
}

// WithAuditClock overrides the timestamp source of new records.
func WithAuditClock(now func() time.Time) AuditOption {
	return func(s *auditService) {
		s.Now = now
	}
}

// NewAuditService creates the financial log service. enabled is the initial
// switch; SetEnabled changes it at runtime.
func NewAuditService(repo portsrepo.AuditRepositoryFacade, enabled bool, options ...AuditOption) portssvc.AuditSvcFacade {
	svc := &auditService{repo: repo}
	svc.enabled.Store(enabled)
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) Enabled() bool {
	return s.enabled.Load()
}

func (s *auditService) SetEnabled(enabled bool) {
	s.enabled.Store(enabled)
}

func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(raw) == "null" {
		return nil, nil
	}
	return raw, nil
}

// Record appends rec to the financial log. Failures are logged, never returned.
func (s *auditService) Record(ctx context.Context, rec domain.AuditRecord) {
	if !s.Enabled() {
		return
	}

	oldValue, err := snapshot(rec.Old)
	if err != nil {
		s.LogError(ctx, err, "Failed to serialize audit snapshot", slog.String("entity_type", rec.EntityType))
		oldValue = nil
	}
	newValue, err := snapshot(rec.New)
	if err != nil {
		s.LogError(ctx, err, "Failed to serialize audit snapshot", slog.String("entity_type", rec.EntityType))
		newValue = nil
	}

	log := domain.FinancialLog{
		UserName:    rec.Actor.Name,
		Action:      rec.Action,
		EntityType:  rec.EntityType,
		EntityID:    rec.EntityID,
		OldValue:    oldValue,
		NewValue:    newValue,
		Description: rec.Description,
		Timestamp:   s.now(),
		TenantID:    rec.TenantID,
	}
	if rec.Actor.UserID != 0 {
		userID := rec.Actor.UserID
		log.UserID = &userID
	}
	if log.UserName == "" {
		log.UserName = systemActorName
	}

	id, err := s.repo.SaveLog(ctx, log)
	if err != nil {
		s.LogError(ctx, err, "Failed to write audit log",
			slog.String("action", string(rec.Action)),
			slog.String("entity_type", rec.EntityType),
			slog.String("entity_id", rec.EntityID))
		return
	}
	log.LogID = id

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, log); err != nil {
			s.LogError(ctx, err, "Failed to publish audit event", slog.Int64("log_id", id))
		}
	}
}

func (s *auditService) ListLogs(ctx context.Context, scope domain.TenantScope, params dto.ListLogsParams) (*dto.ListLogsResponse, error) {
	filter := domain.AuditFilter{UserID: params.UserID, Limit: params.Limit}
	if filter.Limit <= 0 {
		filter.Limit = defaultLogPageSize
	}
	if filter.Limit > maxLogPageSize {
		filter.Limit = maxLogPageSize
	}

	if params.StartDate != "" {
		start, err := accounting.ParseQueryDate(params.StartDate)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("invalid startDate: " + err.Error())
		}
		filter.StartDate = &start
	}
	if params.EndDate != "" {
		end, err := accounting.ParseQueryDate(params.EndDate)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("invalid endDate: " + err.Error())
		}
		if accounting.IsBareDate(params.EndDate) {
			end = end.Add(24 * time.Hour)
		}
		filter.EndDate = &end
	}
	if params.NextToken != "" {
		ts, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("invalid nextToken")
		}
		filter.AfterTimestamp = &ts
		filter.AfterID = &id
	}

	// Fetch one extra row to know whether another page exists.
	pageSize := filter.Limit
	filter.Limit = pageSize + 1
	logs, err := s.repo.ListLogs(ctx, scope, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit logs")
		return nil, err
	}

	resp := &dto.ListLogsResponse{}
	if len(logs) > pageSize {
		logs = logs[:pageSize]
		last := logs[len(logs)-1]
		token := pagination.EncodeToken(last.Timestamp, last.LogID)
		resp.NextToken = &token
	}
	resp.Logs = dto.ToFinancialLogListResponse(logs)
	return resp, nil
}
