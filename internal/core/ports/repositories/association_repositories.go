package repositories

import (
	"context"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
)

// AssociationReader defines read operations for tenants.
type AssociationReader interface {
	// FindAssociationByID retrieves a tenant regardless of its status.
	FindAssociationByID(ctx context.Context, associationID int64) (*domain.Association, error)

	// ListAssociations returns every tenant ordered by name.
	ListAssociations(ctx context.Context) ([]domain.Association, error)
}

// AssociationWriter defines write operations for tenants.
type AssociationWriter interface {
	SaveAssociation(ctx context.Context, association domain.Association) (int64, error)
	UpdateAssociation(ctx context.Context, association domain.Association) error
	DeleteAssociation(ctx context.Context, associationID int64) error
}

// AssociationRepositoryFacade combines all tenant repository interfaces.
type AssociationRepositoryFacade interface {
	AssociationReader
	AssociationWriter
}
