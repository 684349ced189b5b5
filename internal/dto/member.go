package dto

import (
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
)

// RegisterMemberRequest holds the text fields of the public registration form.
// Photo and document files travel in the same multipart body.
type RegisterMemberRequest struct {
	Name      string `form:"name" binding:"required,max=150"`
	CPF       string `form:"cpf" binding:"required,cpf"`
	Email     string `form:"email" binding:"omitempty,email"`
	Phone     string `form:"phone" binding:"omitempty,max=30"`
	BirthDate string `form:"birthDate"`
	Address   string `form:"address" binding:"omitempty,max=255"`
}

// UpdateMemberRequest defines the editable fields of a member.
type UpdateMemberRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=150"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=30"`
	BirthDate *string `json:"birthDate"`
	Address   *string `json:"address" binding:"omitempty,max=255"`
}

// UpdateMemberStatusRequest moves a member through its lifecycle.
type UpdateMemberStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING ACTIVE INACTIVE REJECTED"`
}

// ListMembersParams defines query parameters for listing members.
type ListMembersParams struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING ACTIVE INACTIVE REJECTED"`
	Limit  int    `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	Offset int    `form:"offset,default=0" binding:"omitempty,min=0"`
}

// MemberResponse is the API view of a member.
type MemberResponse struct {
	ID            int64               `json:"id"`
	AssociationID *int64              `json:"associationId,omitempty"`
	Name          string              `json:"name"`
	CPF           string              `json:"cpf"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	BirthDate     string              `json:"birthDate,omitempty"`
	Address       string              `json:"address"`
	Status        domain.MemberStatus `json:"status"`
	PhotoURL      string              `json:"photoUrl,omitempty"`
	DocumentURL   string              `json:"documentUrl,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// MemberValidationResponse is the public membership card check.
type MemberValidationResponse struct {
	Valid       bool                `json:"valid"`
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Status      domain.MemberStatus `json:"status"`
	Association string              `json:"association,omitempty"`
}

// MemberHistoryResponse lists a member's ledger movements.
type MemberHistoryResponse struct {
	Member  MemberResponse        `json:"member"`
	Entries []LedgerEntryResponse `json:"entries"`
	Summary LedgerSummaryResponse `json:"summary"`
}

func uploadURL(path string) string {
	if path == "" {
		return ""
	}
	return "/uploads/" + path
}

// ToMemberResponse converts a domain member.
func ToMemberResponse(m *domain.Member) MemberResponse {
	resp := MemberResponse{
		ID:            m.MemberID,
		AssociationID: m.AssociationID,
		Name:          m.Name,
		CPF:           m.CPF,
		Email:         m.Email,
		Phone:         m.Phone,
		Address:       m.Address,
		Status:        m.Status,
		PhotoURL:      uploadURL(m.PhotoPath),
		DocumentURL:   uploadURL(m.DocumentPath),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.BirthDate != nil {
		resp.BirthDate = m.BirthDate.Format("2006-01-02")
	}
	return resp
}

// ToMemberListResponse converts a slice of members.
func ToMemberListResponse(members []domain.Member) []MemberResponse {
	out := make([]MemberResponse, len(members))
	for i := range members {
		out[i] = ToMemberResponse(&members[i])
	}
	return out
}

// ToMemberValidationResponse converts a card check result.
func ToMemberValidationResponse(v *domain.MemberValidation) MemberValidationResponse {
	return MemberValidationResponse{
		Valid:       v.Valid,
		ID:          v.MemberID,
		Name:        v.Name,
		Status:      v.Status,
		Association: v.AssociationName,
	}
}

// ToMemberHistoryResponse converts a member history.
func ToMemberHistoryResponse(h *domain.MemberHistory) MemberHistoryResponse {
	list := ToListLedgerResponse(h.Entries, h.Summary)
	return MemberHistoryResponse{
		Member:  ToMemberResponse(&h.Member),
		Entries: list.Entries,
		Summary: list.Summary,
	}
}
