package models

import (
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
)

// Member is the persisted row of an association member. Optional text
// columns are NULL rather than empty.
type Member struct {
	MemberID      int64      `db:"id"`
	AssociationID *int64     `db:"association_id"`
	Name          string     `db:"name"`
	CPF           string     `db:"cpf"`
	Email         *string    `db:"email"`
	Phone         *string    `db:"phone"`
	BirthDate     *time.Time `db:"birth_date"`
	Address       *string    `db:"address"`
	Status        string     `db:"status"`
	PhotoPath     *string    `db:"photo_path"`
	DocumentPath  *string    `db:"document_path"`
	AuditFields
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FromDomainMember builds the row written for m.
func FromDomainMember(m domain.Member) Member {
	return Member{
		MemberID:      m.MemberID,
		AssociationID: m.AssociationID,
		Name:          m.Name,
		CPF:           m.CPF,
		Email:         nullIfEmpty(m.Email),
		Phone:         nullIfEmpty(m.Phone),
		BirthDate:     m.BirthDate,
		Address:       nullIfEmpty(m.Address),
		Status:        string(m.Status),
		PhotoPath:     nullIfEmpty(m.PhotoPath),
		DocumentPath:  nullIfEmpty(m.DocumentPath),
		AuditFields:   AuditFields{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
}

// ToDomain converts the row to the domain member.
func (r Member) ToDomain() domain.Member {
	return domain.Member{
		MemberID:      r.MemberID,
		AssociationID: r.AssociationID,
		Name:          r.Name,
		CPF:           r.CPF,
		Email:         valueOrEmpty(r.Email),
		Phone:         valueOrEmpty(r.Phone),
		BirthDate:     r.BirthDate,
		Address:       valueOrEmpty(r.Address),
		Status:        domain.MemberStatus(r.Status),
		PhotoPath:     valueOrEmpty(r.PhotoPath),
		DocumentPath:  valueOrEmpty(r.DocumentPath),
		AuditFields:   domain.AuditFields{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
}
