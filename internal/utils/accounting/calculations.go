package accounting

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const dateOnlyLayout = "2006-01-02"

var bareDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeEntryDate parses an entry date. A bare YYYY-MM-DD date is pinned to
// 12:00 UTC so it renders as the same calendar day in every client time zone.
// Timestamps with a zone are converted to UTC unchanged.
func NormalizeEntryDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if bareDatePattern.MatchString(raw) {
		d, err := time.Parse(dateOnlyLayout, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", raw, err)
		}
		return d.Add(12 * time.Hour), nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", raw)
}

// IsBareDate reports whether raw is a YYYY-MM-DD date without a time part.
func IsBareDate(raw string) bool {
	return bareDatePattern.MatchString(strings.TrimSpace(raw))
}

// ParseQueryDate accepts the same formats as NormalizeEntryDate but keeps bare
// dates at midnight UTC. Used for range filters and period lookups.
func ParseQueryDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if bareDatePattern.MatchString(raw) {
		return time.Parse(dateOnlyLayout, raw)
	}
	return NormalizeEntryDate(raw)
}

// SummarizeEntries folds entries into IN/OUT totals and their balance.
func SummarizeEntries(entries []domain.LedgerEntry) domain.LedgerSummary {
	totalIn := decimal.Zero
	totalOut := decimal.Zero
	for _, e := range entries {
		switch e.Type {
		case domain.EntryTypeIn:
			totalIn = totalIn.Add(e.Amount)
		case domain.EntryTypeOut:
			totalOut = totalOut.Add(e.Amount)
		}
	}
	return domain.LedgerSummary{
		TotalIn:  totalIn,
		TotalOut: totalOut,
		Balance:  totalIn.Sub(totalOut),
	}
}

// FoldMonthlyBalances builds the twelve month rows of a year. The balance
// carried in from earlier years is opening; each month starts where the
// previous one ended. Months without a closure row are OPEN.
func FoldMonthlyBalances(year int, opening decimal.Decimal, totals []domain.MonthTotals, closures []domain.MonthlyClosure) []domain.MonthBalance {
	byMonth := make(map[int]domain.MonthTotals, len(totals))
	for _, t := range totals {
		byMonth[t.Month] = t
	}
	closureByMonth := make(map[int]domain.MonthlyClosure, len(closures))
	for _, c := range closures {
		if c.Year == year {
			closureByMonth[c.Month] = c
		}
	}

	rows := make([]domain.MonthBalance, 0, 12)
	running := opening
	for month := 1; month <= 12; month++ {
		t, ok := byMonth[month]
		if !ok {
			t = domain.MonthTotals{Month: month, TotalIn: decimal.Zero, TotalOut: decimal.Zero}
		}
		row := domain.MonthBalance{
			Month:          month,
			Year:           year,
			Status:         domain.ClosureOpen,
			InitialBalance: running,
			TotalIn:        t.TotalIn,
			TotalOut:       t.TotalOut,
			FinalBalance:   running.Add(t.TotalIn).Sub(t.TotalOut),
		}
		if c, ok := closureByMonth[month]; ok {
			closure := c
			row.Status = closure.Status
			row.Closure = &closure
		}
		rows = append(rows, row)
		running = row.FinalBalance
	}
	return rows
}

// BuildClosureReport derives the month summary from the opening balance and
// the per-category totals, ordering the breakdown by amount, largest first.
func BuildClosureReport(period domain.Period, status domain.ClosureStatus, opening decimal.Decimal, lines []domain.CategoryTotal) domain.ClosureReport {
	totalIn := decimal.Zero
	totalOut := decimal.Zero
	breakdown := make([]domain.CategoryTotal, 0, len(lines))
	for _, l := range lines {
		switch l.Type {
		case domain.EntryTypeIn:
			totalIn = totalIn.Add(l.Amount)
		case domain.EntryTypeOut:
			totalOut = totalOut.Add(l.Amount)
		default:
			continue
		}
		breakdown = append(breakdown, l)
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		if !breakdown[i].Amount.Equal(breakdown[j].Amount) {
			return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
		}
		return breakdown[i].Name < breakdown[j].Name
	})

	return domain.ClosureReport{
		Month:  period.Month,
		Year:   period.Year,
		Status: status,
		Summary: domain.ReportSummary{
			InitialBalance: opening,
			TotalIn:        totalIn,
			TotalOut:       totalOut,
			FinalBalance:   opening.Add(totalIn).Sub(totalOut),
		},
		Breakdown: breakdown,
	}
}
