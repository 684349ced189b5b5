package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	"github.com/SscSPs/association_manager_app/internal/models"
	"github.com/jackc/pgx/v5"
)

type PgxAssociationRepository struct {
	BaseRepository
}

func newPgxAssociationRepository(pool PgxPool) portsrepo.AssociationRepositoryFacade {
	return &PgxAssociationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AssociationRepositoryFacade = (*PgxAssociationRepository)(nil)

const associationColumns = `id, name, document, status, primary_color, logo_url, created_at, updated_at`

func scanAssociation(row pgx.Row) (*domain.Association, error) {
	var m models.Association
	err := row.Scan(&m.AssociationID, &m.Name, &m.Document, &m.Status, &m.PrimaryColor, &m.LogoURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a := m.ToDomain()
	return &a, nil
}

func associationNotFound(id int64) error {
	return apperrors.NewNotFoundError("association " + strconv.FormatInt(id, 10) + " not found")
}

func (r *PgxAssociationRepository) FindAssociationByID(ctx context.Context, associationID int64) (*domain.Association, error) {
	a, err := scanAssociation(r.Pool.QueryRow(ctx, `SELECT `+associationColumns+` FROM associations WHERE id = $1`, associationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, associationNotFound(associationID)
		}
		return nil, queryError("association", err)
	}
	return a, nil
}

func (r *PgxAssociationRepository) ListAssociations(ctx context.Context) ([]domain.Association, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+associationColumns+` FROM associations ORDER BY name, id`)
	if err != nil {
		return nil, queryError("associations", err)
	}
	defer rows.Close()

	associations := []domain.Association{}
	for rows.Next() {
		a, err := scanAssociation(rows)
		if err != nil {
			return nil, queryError("associations", err)
		}
		associations = append(associations, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("associations", err)
	}
	return associations, nil
}

func (r *PgxAssociationRepository) SaveAssociation(ctx context.Context, association domain.Association) (int64, error) {
	m := models.FromDomainAssociation(association)
	var id int64
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO associations (name, document, status, primary_color, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		m.Name, m.Document, m.Status, m.PrimaryColor, m.LogoURL, m.CreatedAt, m.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, translateWriteError(err, "association")
	}
	return id, nil
}

func (r *PgxAssociationRepository) UpdateAssociation(ctx context.Context, association domain.Association) error {
	m := models.FromDomainAssociation(association)
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE associations
		SET name = $1, document = $2, status = $3, primary_color = $4, logo_url = $5, updated_at = $6
		WHERE id = $7`,
		m.Name, m.Document, m.Status, m.PrimaryColor, m.LogoURL, m.UpdatedAt, m.AssociationID,
	)
	if err != nil {
		return translateWriteError(err, "association")
	}
	if cmdTag.RowsAffected() == 0 {
		return associationNotFound(association.AssociationID)
	}
	return nil
}

func (r *PgxAssociationRepository) DeleteAssociation(ctx context.Context, associationID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM associations WHERE id = $1`, associationID)
	if err != nil {
		return translateWriteError(err, "association")
	}
	if cmdTag.RowsAffected() == 0 {
		return associationNotFound(associationID)
	}
	return nil
}
