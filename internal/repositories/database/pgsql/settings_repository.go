package pgsql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool PgxPool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) GetSetting(ctx context.Context, key string) (json.RawMessage, error) {
	var value []byte
	err := r.Pool.QueryRow(ctx, `SELECT value FROM system_settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("setting " + key + " not found")
		}
		return nil, queryError("setting", err)
	}
	return value, nil
}

func (r *PgxSettingsRepository) PutSetting(ctx context.Context, key string, value json.RawMessage) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO system_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(value),
	)
	if err != nil {
		return translateWriteError(err, "setting")
	}
	return nil
}
