package domain

import "time"

// MemberStatus is the lifecycle state of an association member.
type MemberStatus string

const (
	MemberPending  MemberStatus = "PENDING"
	MemberActive   MemberStatus = "ACTIVE"
	MemberInactive MemberStatus = "INACTIVE"
	MemberRejected MemberStatus = "REJECTED"
)

// IsValid reports whether s is a known member status.
func (s MemberStatus) IsValid() bool {
	switch s {
	case MemberPending, MemberActive, MemberInactive, MemberRejected:
		return true
	}
	return false
}

// Member is a person registered in an association.
type Member struct {
	MemberID      int64        `json:"id"`
	AssociationID *int64       `json:"associationId,omitempty"`
	Name          string       `json:"name"`
	CPF           string       `json:"cpf"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	BirthDate     *time.Time   `json:"birthDate,omitempty"`
	Address       string       `json:"address"`
	Status        MemberStatus `json:"status"`
	PhotoPath     string       `json:"photoPath"`
	DocumentPath  string       `json:"documentPath"`
	AuditFields
}

// MemberValidation is the public view of a membership card check.
type MemberValidation struct {
	Valid           bool         `json:"valid"`
	MemberID        int64        `json:"id"`
	Name            string       `json:"name"`
	Status          MemberStatus `json:"status"`
	AssociationName string       `json:"association,omitempty"`
}

// MemberHistory is a member's ledger movements with totals.
type MemberHistory struct {
	Member  Member        `json:"member"`
	Entries []LedgerEntry `json:"entries"`
	Summary LedgerSummary `json:"summary"`
}
