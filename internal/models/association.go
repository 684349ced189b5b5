package models

import "github.com/SscSPs/association_manager_app/internal/core/domain"

// Association is the persisted row of a tenant.
type Association struct {
	AssociationID int64   `db:"id"`
	Name          string  `db:"name"`
	Document      *string `db:"document"`
	Status        string  `db:"status"`
	PrimaryColor  *string `db:"primary_color"`
	LogoURL       *string `db:"logo_url"`
	AuditFields
}

func FromDomainAssociation(a domain.Association) Association {
	return Association{
		AssociationID: a.AssociationID,
		Name:          a.Name,
		Document:      nullIfEmpty(a.Document),
		Status:        string(a.Status),
		PrimaryColor:  nullIfEmpty(a.PrimaryColor),
		LogoURL:       nullIfEmpty(a.LogoURL),
		AuditFields:   AuditFields{CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt},
	}
}

func (r Association) ToDomain() domain.Association {
	return domain.Association{
		AssociationID: r.AssociationID,
		Name:          r.Name,
		Document:      valueOrEmpty(r.Document),
		Status:        domain.AssociationStatus(r.Status),
		PrimaryColor:  valueOrEmpty(r.PrimaryColor),
		LogoURL:       valueOrEmpty(r.LogoURL),
		AuditFields:   domain.AuditFields{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
}
