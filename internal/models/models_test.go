package models

import (
	"testing"
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestMember_EmptyOptionalFieldsBecomeNull(t *testing.T) {
	row := FromDomainMember(domain.Member{Name: "Ana", CPF: "52998224725", Status: domain.MemberPending})

	assert.Nil(t, row.Email)
	assert.Nil(t, row.Phone)
	assert.Nil(t, row.PhotoPath)
	assert.Equal(t, "PENDING", row.Status)

	back := row.ToDomain()
	assert.Equal(t, "", back.Email)
	assert.Equal(t, domain.MemberPending, back.Status)
}

func TestUser_PasswordHashRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	u := domain.User{UserID: 7, Name: "Op", Email: "op@example.com", Role: domain.RoleOperator, AuditFields: domain.AuditFields{CreatedAt: now}}

	row := FromDomainUser(u)
	assert.Nil(t, row.PasswordHash, "google-only accounts store NULL")

	u.PasswordHash = "hash"
	row = FromDomainUser(u)
	if assert.NotNil(t, row.PasswordHash) {
		assert.Equal(t, "hash", *row.PasswordHash)
	}
	assert.Equal(t, u, row.ToDomain())
}
