package dto

import (
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest defines the body for a new cash-flow entry.
// Date accepts YYYY-MM-DD or RFC3339.
type CreateLedgerEntryRequest struct {
	Description string          `json:"description" binding:"required,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" binding:"required"`
	Type        string          `json:"type" binding:"required,entrytype"`
	CategoryID  int64           `json:"categoryId" binding:"required,gt=0"`
	MemberID    *int64          `json:"memberId" binding:"omitempty,gt=0"`
}

// UpdateLedgerEntryRequest replaces the editable fields of an entry.
type UpdateLedgerEntryRequest struct {
	CreateLedgerEntryRequest
	Version *int `json:"version"`
}

// ListLedgerParams filters the cash-flow listing.
type ListLedgerParams struct {
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
	Type       string `form:"type" binding:"omitempty,entrytype"`
	CategoryID int64  `form:"categoryId" binding:"omitempty,gt=0"`
}

// LedgerEntryResponse is the API view of a cash-flow entry.
type LedgerEntryResponse struct {
	ID           int64             `json:"id"`
	Description  string            `json:"description"`
	Amount       decimal.Decimal   `json:"amount"`
	Date         time.Time         `json:"date"`
	Type         domain.EntryType  `json:"type"`
	CategoryID   int64             `json:"categoryId"`
	Category     *CategoryResponse `json:"category,omitempty"`
	MemberID     *int64            `json:"memberId,omitempty"`
	OperatorID   int64             `json:"operatorId"`
	OperatorName string            `json:"operatorName"`
	TenantID     *int64            `json:"tenantId,omitempty"`
	Version      int               `json:"version"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// LedgerSummaryResponse holds the totals of a listing.
type LedgerSummaryResponse struct {
	TotalIn  decimal.Decimal `json:"totalIn"`
	TotalOut decimal.Decimal `json:"totalOut"`
	Balance  decimal.Decimal `json:"balance"`
}

// ListLedgerResponse wraps entries and their summary.
type ListLedgerResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
	Summary LedgerSummaryResponse `json:"summary"`
}

// ToLedgerEntryResponse converts a domain entry.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		ID:           e.EntryID,
		Description:  e.Description,
		Amount:       e.Amount,
		Date:         e.Date.UTC(),
		Type:         e.Type,
		CategoryID:   e.CategoryID,
		MemberID:     e.MemberID,
		OperatorID:   e.OperatorID,
		OperatorName: e.OperatorName,
		TenantID:     e.TenantID,
		Version:      e.Version,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.Category != nil {
		c := ToCategoryResponse(e.Category)
		resp.Category = &c
	}
	return resp
}

// ToLedgerSummaryResponse converts domain totals.
func ToLedgerSummaryResponse(s domain.LedgerSummary) LedgerSummaryResponse {
	return LedgerSummaryResponse{TotalIn: s.TotalIn, TotalOut: s.TotalOut, Balance: s.Balance}
}

// ToListLedgerResponse converts entries and summary.
func ToListLedgerResponse(entries []domain.LedgerEntry, summary domain.LedgerSummary) ListLedgerResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	return ListLedgerResponse{Entries: out, Summary: ToLedgerSummaryResponse(summary)}
}
