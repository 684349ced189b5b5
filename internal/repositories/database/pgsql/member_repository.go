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

type PgxMemberRepository struct {
	BaseRepository
}

func newPgxMemberRepository(pool PgxPool) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

const memberColumns = `id, association_id, name, cpf, email, phone, birth_date, address, status, photo_path, document_path, created_at, updated_at`

func scanMember(row pgx.Row) (*domain.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.MemberID, &m.AssociationID, &m.Name, &m.CPF, &m.Email, &m.Phone, &m.BirthDate,
		&m.Address, &m.Status, &m.PhotoPath, &m.DocumentPath, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d := m.ToDomain()
	return &d, nil
}

func memberNotFound(memberID int64) error {
	return apperrors.NewNotFoundError("member " + strconv.FormatInt(memberID, 10) + " not found")
}

func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, scope domain.TenantScope, memberID int64) (*domain.Member, error) {
	args := []any{memberID}
	clause, args := scopeClause(scope, "association_id", args)
	m, err := scanMember(r.Pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`+clause, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, memberNotFound(memberID)
		}
		return nil, queryError("member", err)
	}
	return m, nil
}

func (r *PgxMemberRepository) ListMembers(ctx context.Context, scope domain.TenantScope, status *domain.MemberStatus, limit, offset int) ([]domain.Member, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	var args []any
	clause, args := scopeClause(scope, "association_id", args)
	query := `SELECT ` + memberColumns + ` FROM members WHERE 1 = 1` + clause
	if status != nil {
		args = append(args, string(*status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY name, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, queryError("members", err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, queryError("members", err)
		}
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("members", err)
	}
	return members, nil
}

func (r *PgxMemberRepository) SaveMember(ctx context.Context, member domain.Member) (int64, error) {
	m := models.FromDomainMember(member)
	var id int64
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO members (
			association_id, name, cpf, email, phone, birth_date, address, status,
			photo_path, document_path, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		m.AssociationID, m.Name, m.CPF, m.Email, m.Phone, m.BirthDate, m.Address, m.Status,
		m.PhotoPath, m.DocumentPath, m.CreatedAt, m.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, translateWriteError(err, "member")
	}
	return id, nil
}

func (r *PgxMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	m := models.FromDomainMember(member)
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE members
		SET name = $1, cpf = $2, email = $3, phone = $4, birth_date = $5, address = $6, status = $7,
			photo_path = $8, document_path = $9, updated_at = $10
		WHERE id = $11`,
		m.Name, m.CPF, m.Email, m.Phone, m.BirthDate, m.Address, m.Status,
		m.PhotoPath, m.DocumentPath, m.UpdatedAt, m.MemberID,
	)
	if err != nil {
		return translateWriteError(err, "member")
	}
	if cmdTag.RowsAffected() == 0 {
		return memberNotFound(member.MemberID)
	}
	return nil
}

func (r *PgxMemberRepository) DeleteMember(ctx context.Context, scope domain.TenantScope, memberID int64) error {
	args := []any{memberID}
	clause, args := scopeClause(scope, "association_id", args)
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM members WHERE id = $1`+clause, args...)
	if err != nil {
		return translateWriteError(err, "member")
	}
	if cmdTag.RowsAffected() == 0 {
		return memberNotFound(memberID)
	}
	return nil
}
