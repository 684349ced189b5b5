package dto

import (
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CloseMonthRequest defines the body for closing a month.
type CloseMonthRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=1900,max=9999"`
}

// ReopenMonthRequest defines the body for reopening a month. Reason is mandatory.
type ReopenMonthRequest struct {
	Month  int    `json:"month" binding:"required,min=1,max=12"`
	Year   int    `json:"year" binding:"required,min=1900,max=9999"`
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListClosuresParams selects the year of the overview.
type ListClosuresParams struct {
	Year int `form:"year" binding:"omitempty,min=1900,max=9999"`
}

// CheckStatusParams carries the date whose period is checked.
type CheckStatusParams struct {
	Date string `form:"date" binding:"required"`
}

// ReportParams selects the month report and its rendering.
type ReportParams struct {
	Month  int    `form:"month" binding:"required,min=1,max=12"`
	Year   int    `form:"year" binding:"required,min=1900,max=9999"`
	Format string `form:"format" binding:"omitempty,oneof=json pdf"`
}

// MonthlyClosureResponse is the API view of a closure row.
type MonthlyClosureResponse struct {
	ID           int64                `json:"id"`
	Month        int                  `json:"month"`
	Year         int                  `json:"year"`
	Status       domain.ClosureStatus `json:"status"`
	ClosedAt     *time.Time           `json:"closedAt,omitempty"`
	ClosedBy     *int64               `json:"closedBy,omitempty"`
	ReopenedAt   *time.Time           `json:"reopenedAt,omitempty"`
	ReopenedBy   *int64               `json:"reopenedBy,omitempty"`
	ReopenReason *string              `json:"reopenReason,omitempty"`
}

// MonthBalanceResponse is one month of the yearly overview.
type MonthBalanceResponse struct {
	Month          int                     `json:"month"`
	Year           int                     `json:"year"`
	Status         domain.ClosureStatus    `json:"status"`
	InitialBalance decimal.Decimal         `json:"initialBalance"`
	TotalIn        decimal.Decimal         `json:"totalIn"`
	TotalOut       decimal.Decimal         `json:"totalOut"`
	FinalBalance   decimal.Decimal         `json:"finalBalance"`
	ClosureDetails *MonthlyClosureResponse `json:"closureDetails,omitempty"`
}

// ClosureStatusResponse answers a status check.
type ClosureStatusResponse struct {
	Month  int                  `json:"month"`
	Year   int                  `json:"year"`
	Status domain.ClosureStatus `json:"status"`
}

// ReportSummaryResponse holds the balances of a month report.
type ReportSummaryResponse struct {
	InitialBalance decimal.Decimal `json:"initialBalance"`
	TotalIn        decimal.Decimal `json:"totalIn"`
	TotalOut       decimal.Decimal `json:"totalOut"`
	FinalBalance   decimal.Decimal `json:"finalBalance"`
}

// ReportLineResponse is one category line of a month report.
type ReportLineResponse struct {
	CategoryID int64            `json:"categoryId"`
	Name       string           `json:"name"`
	Color      string           `json:"color"`
	Type       domain.EntryType `json:"type"`
	Amount     decimal.Decimal  `json:"amount"`
}

// ClosureReportResponse is the month report.
type ClosureReportResponse struct {
	Month     int                   `json:"month"`
	Year      int                   `json:"year"`
	Status    domain.ClosureStatus  `json:"status"`
	Summary   ReportSummaryResponse `json:"summary"`
	Breakdown []ReportLineResponse  `json:"breakdown"`
}

// ToMonthlyClosureResponse converts a closure row.
func ToMonthlyClosureResponse(c *domain.MonthlyClosure) MonthlyClosureResponse {
	return MonthlyClosureResponse{
		ID:           c.ClosureID,
		Month:        c.Month,
		Year:         c.Year,
		Status:       c.Status,
		ClosedAt:     c.ClosedAt,
		ClosedBy:     c.ClosedBy,
		ReopenedAt:   c.ReopenedAt,
		ReopenedBy:   c.ReopenedBy,
		ReopenReason: c.ReopenReason,
	}
}

// ToMonthBalanceListResponse converts the yearly overview.
func ToMonthBalanceListResponse(rows []domain.MonthBalance) []MonthBalanceResponse {
	out := make([]MonthBalanceResponse, len(rows))
	for i, r := range rows {
		out[i] = MonthBalanceResponse{
			Month:          r.Month,
			Year:           r.Year,
			Status:         r.Status,
			InitialBalance: r.InitialBalance,
			TotalIn:        r.TotalIn,
			TotalOut:       r.TotalOut,
			FinalBalance:   r.FinalBalance,
		}
		if r.Closure != nil {
			details := ToMonthlyClosureResponse(r.Closure)
			out[i].ClosureDetails = &details
		}
	}
	return out
}

// ToClosureReportResponse converts a month report.
func ToClosureReportResponse(r *domain.ClosureReport) ClosureReportResponse {
	lines := make([]ReportLineResponse, len(r.Breakdown))
	for i, l := range r.Breakdown {
		lines[i] = ReportLineResponse{
			CategoryID: l.CategoryID,
			Name:       l.Name,
			Color:      l.Color,
			Type:       l.Type,
			Amount:     l.Amount,
		}
	}
	return ClosureReportResponse{
		Month:  r.Month,
		Year:   r.Year,
		Status: r.Status,
		Summary: ReportSummaryResponse{
			InitialBalance: r.Summary.InitialBalance,
			TotalIn:        r.Summary.TotalIn,
			TotalOut:       r.Summary.TotalOut,
			FinalBalance:   r.Summary.FinalBalance,
		},
		Breakdown: lines,
	}
}
