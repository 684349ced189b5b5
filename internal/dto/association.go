package dto

import (
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
)

// CreateAssociationRequest defines the body for creating a tenant.
type CreateAssociationRequest struct {
	Name         string `json:"name" binding:"required,max=150"`
	Document     string `json:"document" binding:"omitempty,max=20"`
	Status       string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	PrimaryColor string `json:"primaryColor" binding:"omitempty,max=20"`
	LogoURL      string `json:"logoUrl" binding:"omitempty,max=500"`
}

// UpdateAssociationRequest defines the editable fields of a tenant.
type UpdateAssociationRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=150"`
	Document     *string `json:"document" binding:"omitempty,max=20"`
	Status       *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	PrimaryColor *string `json:"primaryColor" binding:"omitempty,max=20"`
	LogoURL      *string `json:"logoUrl" binding:"omitempty,max=500"`
}

// AssociationResponse is the API view of a tenant.
type AssociationResponse struct {
	ID           int64                    `json:"id"`
	Name         string                   `json:"name"`
	Document     string                   `json:"document"`
	Status       domain.AssociationStatus `json:"status"`
	PrimaryColor string                   `json:"primaryColor"`
	LogoURL      string                   `json:"logoUrl"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

// ToAssociationResponse converts a domain tenant.
func ToAssociationResponse(a *domain.Association) AssociationResponse {
	return AssociationResponse{
		ID:           a.AssociationID,
		Name:         a.Name,
		Document:     a.Document,
		Status:       a.Status,
		PrimaryColor: a.PrimaryColor,
		LogoURL:      a.LogoURL,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ToAssociationListResponse converts a slice of tenants.
func ToAssociationListResponse(list []domain.Association) []AssociationResponse {
	out := make([]AssociationResponse, len(list))
	for i := range list {
		out[i] = ToAssociationResponse(&list[i])
	}
	return out
}
