package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosureStatus is the lock state of an accounting month.
type ClosureStatus string

const (
	ClosureOpen   ClosureStatus = "OPEN"
	ClosureClosed ClosureStatus = "CLOSED"
)

// MonthlyClosure is the persisted state of one (month, year) period.
// A period with no row is implicitly OPEN.
type MonthlyClosure struct {
	ClosureID    int64         `json:"id"`
	Month        int           `json:"month"`
	Year         int           `json:"year"`
	Status       ClosureStatus `json:"status"`
	ClosedAt     *time.Time    `json:"closedAt,omitempty"`
	ClosedBy     *int64        `json:"closedBy,omitempty"`
	ReopenedAt   *time.Time    `json:"reopenedAt,omitempty"`
	ReopenedBy   *int64        `json:"reopenedBy,omitempty"`
	ReopenReason *string       `json:"reopenReason,omitempty"`
}

// Period identifies a calendar month.
type Period struct {
	Month int
	Year  int
}

// PeriodOf returns the UTC calendar month containing t.
func PeriodOf(t time.Time) Period {
	u := t.UTC()
	return Period{Month: int(u.Month()), Year: u.Year()}
}

// Start is the first instant of the period in UTC.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End is the first instant after the period in UTC.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// After reports whether p is strictly later than other, comparing (year, month).
func (p Period) After(other Period) bool {
	if p.Year != other.Year {
		return p.Year > other.Year
	}
	return p.Month > other.Month
}

// IsValid reports whether the month is within 1..12 and the year is positive.
func (p Period) IsValid() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year > 0
}

// MonthTotals is the IN/OUT sum of a single month.
type MonthTotals struct {
	Month    int
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal
}

// MonthBalance is one row of the yearly closure overview.
type MonthBalance struct {
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	Status         ClosureStatus   `json:"status"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	TotalIn        decimal.Decimal `json:"totalIn"`
	TotalOut       decimal.Decimal `json:"totalOut"`
	FinalBalance   decimal.Decimal `json:"finalBalance"`
	Closure        *MonthlyClosure `json:"closureDetails,omitempty"`
}

// CategoryTotal is one aggregated line of a month report.
type CategoryTotal struct {
	CategoryID int64           `json:"categoryId"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Type       EntryType       `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
}

// ReportSummary holds the balances of a month report.
type ReportSummary struct {
	InitialBalance decimal.Decimal `json:"initialBalance"`
	TotalIn        decimal.Decimal `json:"totalIn"`
	TotalOut       decimal.Decimal `json:"totalOut"`
	FinalBalance   decimal.Decimal `json:"finalBalance"`
}

// ClosureReport is the month report: summary plus category breakdown.
type ClosureReport struct {
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Status    ClosureStatus   `json:"status"`
	Summary   ReportSummary   `json:"summary"`
	Breakdown []CategoryTotal `json:"breakdown"`
}
