package domain

import (
	"encoding/json"
	"time"
)

// AuditAction is the kind of change recorded in the financial log.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
	AuditExport AuditAction = "EXPORT"
	AuditClose  AuditAction = "CLOSE"
	AuditReopen AuditAction = "REOPEN"
)

// Audited entity types.
const (
	EntityLedgerEntry    = "LedgerEntry"
	EntityCategory       = "Category"
	EntityMonthlyClosure = "MonthlyClosure"
	EntityMember         = "Member"
	EntityUser           = "User"
	EntityAssociation    = "Association"
	EntitySettings       = "SystemSetting"
	EntityReport         = "Report"
)

// FinancialLog is an append-only audit record.
type FinancialLog struct {
	LogID       int64           `json:"id"`
	UserID      *int64          `json:"userId,omitempty"`
	UserName    string          `json:"userName"`
	Action      AuditAction     `json:"action"`
	EntityType  string          `json:"entityType"`
	EntityID    string          `json:"entityId"`
	OldValue    json.RawMessage `json:"oldValue,omitempty"`
	NewValue    json.RawMessage `json:"newValue,omitempty"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
	TenantID    *int64          `json:"tenantId,omitempty"`
}

// Actor identifies who performed an action.
type Actor struct {
	UserID int64
	Name   string
}

// AuditFilter narrows a financial log listing.
type AuditFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	UserID    *int64
	// Cursor values from the last row of the previous page.
	AfterTimestamp *time.Time
	AfterID        *int64
	Limit          int
}

// AuditRecord describes one change to append to the financial log.
// Old and New are snapshots marshalled to JSON; nil means absent.
type AuditRecord struct {
	Actor       Actor
	Action      AuditAction
	EntityType  string
	EntityID    string
	Description string
	Old         any
	New         any
	TenantID    *int64
}
