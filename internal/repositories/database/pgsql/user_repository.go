package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	"github.com/SscSPs/association_manager_app/internal/models"
	"github.com/jackc/pgx/v5"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool PgxPool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `id, name, email, password_hash, role, association_id, active, google_subject, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.Role,
		&m.AssociationID,
		&m.Active,
		&m.GoogleSubject,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u := m.ToDomain()
	return &u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := scanUser(r.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user " + strconv.FormatInt(userID, 10) + " not found")
		}
		return nil, queryError("user", err)
	}
	return u, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, queryError("user", err)
	}
	return u, nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, scope domain.TenantScope, limit int, offset int) ([]domain.User, error) {
	// Default limit if not specified or invalid
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var args []any
	clause, args := scopeClause(scope, "association_id", args)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+userColumns+` FROM users WHERE 1 = 1%s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		clause, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, queryError("users", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, queryError("users", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("users", err)
	}
	return users, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (int64, error) {
	m := models.FromDomainUser(user)
	var id int64
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role, association_id, active, google_subject, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.Role,
		m.AssociationID,
		m.Active,
		m.GoogleSubject,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, translateWriteError(err, "user")
	}
	return id, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := models.FromDomainUser(user)
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, role = $4, association_id = $5, active = $6, updated_at = $7
		WHERE id = $8`,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.Role,
		m.AssociationID,
		m.Active,
		m.UpdatedAt,
		m.UserID,
	)
	if err != nil {
		return translateWriteError(err, "user")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user " + strconv.FormatInt(user.UserID, 10) + " not found")
	}
	return nil
}

func (r *PgxUserRepository) LinkGoogleSubject(ctx context.Context, userID int64, subject string) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE users SET google_subject = $1, updated_at = NOW() WHERE id = $2`, subject, userID)
	if err != nil {
		return translateWriteError(err, "user")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user " + strconv.FormatInt(userID, 10) + " not found")
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return translateWriteError(err, "user")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user " + strconv.FormatInt(userID, 10) + " not found")
	}
	return nil
}
