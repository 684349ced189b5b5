package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one cash-in or cash-out movement. Amount is always
// non-negative; Type carries the direction.
type LedgerEntry struct {
	EntryID      int64           `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Type         EntryType       `json:"type"`
	CategoryID   int64           `json:"categoryId"`
	Category     *Category       `json:"category,omitempty"`
	MemberID     *int64          `json:"memberId,omitempty"`
	OperatorID   int64           `json:"operatorId"`
	OperatorName string          `json:"operatorName"`
	TenantID     *int64          `json:"tenantId,omitempty"`
	Version      int             `json:"version"`
	AuditFields
}

// SignedAmount returns the amount with the sign implied by the entry type.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Type == EntryTypeOut {
		return e.Amount.Neg()
	}
	return e.Amount
}

// LedgerSummary folds a set of entries into totals.
type LedgerSummary struct {
	TotalIn  decimal.Decimal `json:"totalIn"`
	TotalOut decimal.Decimal `json:"totalOut"`
	Balance  decimal.Decimal `json:"balance"`
}

// LedgerFilter narrows an entry listing. Nil fields are not applied.
type LedgerFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Type       *EntryType
	CategoryID *int64
	MemberID   *int64
}
