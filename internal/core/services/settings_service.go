package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
)

type settingsService struct {
	BaseService
	repo  portsrepo.SettingsRepository
	audit portssvc.AuditRecorderSvc
}

// NewSettingsService creates the feature toggle service. Changing AUDITORIA
// switches audit on the given recorder immediately.
func NewSettingsService(repo portsrepo.SettingsRepository, audit portssvc.AuditRecorderSvc) portssvc.SettingsSvc {
	return &settingsService{BaseService: BaseService{Audit: audit}, repo: repo, audit: audit}
}

var _ portssvc.SettingsSvc = (*settingsService)(nil)

func (s *settingsService) GetFeatures(ctx context.Context) (domain.SaaSFeatures, error) {
	raw, err := s.repo.GetSetting(ctx, domain.SaaSFeaturesKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.SaaSFeatures{Auditoria: s.audit.Enabled()}, nil
		}
		s.LogError(ctx, err, "Failed to read feature settings")
		return domain.SaaSFeatures{}, err
	}
	var features domain.SaaSFeatures
	if err := json.Unmarshal(raw, &features); err != nil {
		return domain.SaaSFeatures{}, apperrors.NewAppError(http.StatusInternalServerError, "stored feature settings are malformed", err)
	}
	return features, nil
}

func (s *settingsService) UpdateFeatures(ctx context.Context, features domain.SaaSFeatures, actor domain.Actor) (domain.SaaSFeatures, error) {
	previous, err := s.GetFeatures(ctx)
	if err != nil {
		return domain.SaaSFeatures{}, err
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return domain.SaaSFeatures{}, apperrors.NewAppError(http.StatusInternalServerError, "failed to encode feature settings", err)
	}
	if err := s.repo.PutSetting(ctx, domain.SaaSFeaturesKey, raw); err != nil {
		s.LogError(ctx, err, "Failed to store feature settings")
		return domain.SaaSFeatures{}, err
	}

	// Switching audit on is logged with the new state; switching it off is
	// logged before the recorder stops writing.
	if features.Auditoria {
		s.audit.SetEnabled(true)
	}
	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditUpdate,
		EntityType:  domain.EntitySettings,
		EntityID:    domain.SaaSFeaturesKey,
		Description: "SaaS features updated",
		Old:         previous,
		New:         features,
	})
	if !features.Auditoria {
		s.audit.SetEnabled(false)
	}
	return features, nil
}
