package services

import (
	"context"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
)

// SettingsSvc reads and updates the SaaS feature toggles.
type SettingsSvc interface {
	GetFeatures(ctx context.Context) (domain.SaaSFeatures, error)
	UpdateFeatures(ctx context.Context, features domain.SaaSFeatures, actor domain.Actor) (domain.SaaSFeatures, error)
}
