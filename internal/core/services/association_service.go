package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
)

type associationService struct {
	BaseService
	repo portsrepo.AssociationRepositoryFacade
}

// NewAssociationService creates the tenant service.
func NewAssociationService(repo portsrepo.AssociationRepositoryFacade, audit portssvc.AuditRecorderSvc) portssvc.AssociationSvcFacade {
	return &associationService{BaseService: BaseService{Audit: audit}, repo: repo}
}

var _ portssvc.AssociationSvcFacade = (*associationService)(nil)

func (s *associationService) ResolveActiveTenant(ctx context.Context, associationID int64) (*domain.Association, error) {
	association, err := s.repo.FindAssociationByID(ctx, associationID)
	if err != nil {
		return nil, err
	}
	if !association.IsActive() {
		return nil, apperrors.NewNotFoundError("association " + strconv.FormatInt(associationID, 10) + " is not active")
	}
	return association, nil
}

func (s *associationService) GetAssociation(ctx context.Context, associationID int64) (*domain.Association, error) {
	association, err := s.repo.FindAssociationByID(ctx, associationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find association", slog.Int64("association_id", associationID))
		}
		return nil, err
	}
	return association, nil
}

func (s *associationService) ListAssociations(ctx context.Context) ([]domain.Association, error) {
	associations, err := s.repo.ListAssociations(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list associations")
		return nil, err
	}
	return associations, nil
}

func (s *associationService) CreateAssociation(ctx context.Context, req dto.CreateAssociationRequest, actor domain.Actor) (*domain.Association, error) {
	now := s.now()
	association := domain.Association{
		Name:         strings.TrimSpace(req.Name),
		Document:     strings.TrimSpace(req.Document),
		Status:       domain.AssociationActive,
		PrimaryColor: req.PrimaryColor,
		LogoURL:      req.LogoURL,
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if req.Status != "" {
		association.Status = domain.AssociationStatus(req.Status)
	}
	if association.Name == "" {
		return nil, apperrors.NewValidationFailedError("name is required")
	}

	id, err := s.repo.SaveAssociation(ctx, association)
	if err != nil {
		s.LogError(ctx, err, "Failed to create association")
		return nil, err
	}
	association.AssociationID = id

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditCreate,
		EntityType:  domain.EntityAssociation,
		EntityID:    strconv.FormatInt(id, 10),
		Description: "Association created: " + association.Name,
		New:         association,
		TenantID:    &id,
	})
	return &association, nil
}

func (s *associationService) UpdateAssociation(ctx context.Context, associationID int64, req dto.UpdateAssociationRequest, actor domain.Actor) (*domain.Association, error) {
	current, err := s.GetAssociation(ctx, associationID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
		if updated.Name == "" {
			return nil, apperrors.NewValidationFailedError("name cannot be empty")
		}
	}
	if req.Document != nil {
		updated.Document = strings.TrimSpace(*req.Document)
	}
	if req.Status != nil {
		updated.Status = domain.AssociationStatus(*req.Status)
	}
	if req.PrimaryColor != nil {
		updated.PrimaryColor = *req.PrimaryColor
	}
	if req.LogoURL != nil {
		updated.LogoURL = *req.LogoURL
	}
	updated.UpdatedAt = s.now()

	if err := s.repo.UpdateAssociation(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update association", slog.Int64("association_id", associationID))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditUpdate,
		EntityType:  domain.EntityAssociation,
		EntityID:    strconv.FormatInt(associationID, 10),
		Description: "Association updated: " + updated.Name,
		Old:         current,
		New:         updated,
		TenantID:    &associationID,
	})
	return &updated, nil
}

func (s *associationService) DeleteAssociation(ctx context.Context, associationID int64, actor domain.Actor) error {
	current, err := s.GetAssociation(ctx, associationID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteAssociation(ctx, associationID); err != nil {
		s.LogError(ctx, err, "Failed to delete association", slog.Int64("association_id", associationID))
		return err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditDelete,
		EntityType:  domain.EntityAssociation,
		EntityID:    strconv.FormatInt(associationID, 10),
		Description: "Association deleted: " + current.Name,
		Old:         current,
	})
	return nil
}
