package models

import (
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
)

// AuditFields mirrors the timestamp columns shared by most tables.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// User is the persisted row of an operator account.
// Google-only accounts have no password hash.
type User struct {
	UserID        int64   `db:"id"`
	Name          string  `db:"name"`
	Email         string  `db:"email"`
	PasswordHash  *string `db:"password_hash"`
	Role          string  `db:"role"`
	AssociationID *int64  `db:"association_id"`
	Active        bool    `db:"active"`
	GoogleSubject *string `db:"google_subject"`
	AuditFields
}

// FromDomainUser builds the row written for u.
func FromDomainUser(u domain.User) User {
	var hash *string
	if u.PasswordHash != "" {
		h := u.PasswordHash
		hash = &h
	}
	return User{
		UserID:        u.UserID,
		Name:          u.Name,
		Email:         u.Email,
		PasswordHash:  hash,
		Role:          string(u.Role),
		AssociationID: u.AssociationID,
		Active:        u.Active,
		GoogleSubject: u.GoogleSubject,
		AuditFields:   AuditFields{CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt},
	}
}

// ToDomain converts the row to the domain user.
func (m User) ToDomain() domain.User {
	u := domain.User{
		UserID:        m.UserID,
		Name:          m.Name,
		Email:         m.Email,
		Role:          domain.UserRole(m.Role),
		AssociationID: m.AssociationID,
		Active:        m.Active,
		GoogleSubject: m.GoogleSubject,
		AuditFields:   domain.AuditFields{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
	if m.PasswordHash != nil {
		u.PasswordHash = *m.PasswordHash
	}
	return u
}
