package services

import (
	"context"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/SscSPs/association_manager_app/internal/dto"
)

// TenantResolverSvc resolves the association named by a request header.
type TenantResolverSvc interface {
	// ResolveActiveTenant returns the association only if it exists and is ACTIVE.
	ResolveActiveTenant(ctx context.Context, associationID int64) (*domain.Association, error)
}

// AssociationReaderSvc defines read operations on tenants.
type AssociationReaderSvc interface {
	GetAssociation(ctx context.Context, associationID int64) (*domain.Association, error)
	ListAssociations(ctx context.Context) ([]domain.Association, error)
}

// AssociationWriterSvc defines write operations on tenants.
type AssociationWriterSvc interface {
	CreateAssociation(ctx context.Context, req dto.CreateAssociationRequest, actor domain.Actor) (*domain.Association, error)
	UpdateAssociation(ctx context.Context, associationID int64, req dto.UpdateAssociationRequest, actor domain.Actor) (*domain.Association, error)
	DeleteAssociation(ctx context.Context, associationID int64, actor domain.Actor) error
}

// AssociationSvcFacade combines all tenant service interfaces.
type AssociationSvcFacade interface {
	TenantResolverSvc
	AssociationReaderSvc
	AssociationWriterSvc
}
