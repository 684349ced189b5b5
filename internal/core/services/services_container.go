package services

import (
	"time"

	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/platform/config"
)

// ContainerOption customises the collaborators handed to the services.
type ContainerOption func(*containerDeps)

type containerDeps struct {
	publisher portssvc.AuditEventPublisher
	uploads   portssvc.UploadStore
	now       func() time.Time
	validate  IDTokenValidator
}

// WithAuditEventPublisher forwards written audit records to publisher.
func WithAuditEventPublisher(publisher portssvc.AuditEventPublisher) ContainerOption {
	return func(d *containerDeps) { d.publisher = publisher }
}

// WithUploadStore sets where member uploads are kept.
func WithUploadStore(store portssvc.UploadStore) ContainerOption {
	return func(d *containerDeps) { d.uploads = store }
}

// WithClock overrides the clock of every time-dependent service.
func WithClock(now func() time.Time) ContainerOption {
	return func(d *containerDeps) { d.now = now }
}

// WithIDTokenValidator replaces the Google ID token validator.
func WithIDTokenValidator(validate IDTokenValidator) ContainerOption {
	return func(d *containerDeps) { d.validate = validate }
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ContainerOption) *portssvc.ServiceContainer {
	deps := &containerDeps{}
	for _, option := range options {
		option(deps)
	}

	container := &portssvc.ServiceContainer{}

	// Audit comes first since every writer records into it
	auditOptions := []AuditOption{}
	if deps.publisher != nil {
		auditOptions = append(auditOptions, WithAuditPublisher(deps.publisher))
	}
	if deps.now != nil {
		auditOptions = append(auditOptions, WithAuditClock(deps.now))
	}
	container.Audit = NewAuditService(repos.AuditRepo, cfg.AuditEnabled, auditOptions...)

	closureOptions := []ClosureOption{
		WithClosureAudit(container.Audit),
		WithClosedPeriodEnforcement(cfg.EnforceClosedPeriods),
	}
	if deps.now != nil {
		closureOptions = append(closureOptions, WithClosureClock(deps.now))
	}
	container.Closure = NewClosureService(repos.ClosureRepo, repos.ReportingRepo, closureOptions...)

	cashFlowOptions := []CashFlowOption{
		WithPeriodGuard(container.Closure),
		WithCashFlowAudit(container.Audit),
		WithMemberReader(repos.MemberRepo),
	}
	if deps.now != nil {
		cashFlowOptions = append(cashFlowOptions, WithCashFlowClock(deps.now))
	}
	container.CashFlow = NewCashFlowService(repos.LedgerRepo, repos.CategoryRepo, cashFlowOptions...)

	container.Association = NewAssociationService(repos.AssociationRepo, container.Audit)
	container.Category = NewCategoryService(repos.CategoryRepo, container.Audit)
	container.Member = NewMemberService(repos.MemberRepo, repos.AssociationRepo, deps.uploads, container.Audit)
	container.User = NewUserService(repos.UserRepo, container.Audit)
	container.Settings = NewSettingsService(repos.SettingsRepo, container.Audit)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg, container.Token, container.User, deps.validate)

	return container
}
