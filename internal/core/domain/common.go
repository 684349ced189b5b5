package domain

import "time"

// AuditFields holds standard timestamps for persisted domain entities.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntryType is the direction of a cash movement.
type EntryType string

const (
	EntryTypeIn  EntryType = "IN"
	EntryTypeOut EntryType = "OUT"
)

// IsValid reports whether t is one of the known entry types.
func (t EntryType) IsValid() bool {
	return t == EntryTypeIn || t == EntryTypeOut
}
