package repositories

import (
	"context"
	"encoding/json"
)

// SettingsRepository reads and writes keyed JSON system settings.
type SettingsRepository interface {
	// GetSetting returns the raw value or apperrors.ErrNotFound.
	GetSetting(ctx context.Context, key string) (json.RawMessage, error)
	PutSetting(ctx context.Context, key string, value json.RawMessage) error
}
