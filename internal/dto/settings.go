package dto

import "github.com/SscSPs/association_manager_app/internal/core/domain"

// UpdateFeaturesRequest toggles SaaS features.
type UpdateFeaturesRequest struct {
	Auditoria *bool `json:"AUDITORIA" binding:"required"`
}

// FeaturesResponse mirrors the stored feature toggles.
type FeaturesResponse struct {
	Auditoria bool `json:"AUDITORIA"`
}

// ToFeaturesResponse converts the feature toggles.
func ToFeaturesResponse(f domain.SaaSFeatures) FeaturesResponse {
	return FeaturesResponse{Auditoria: f.Auditoria}
}
