package repositories

import (
	"context"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
)

// LedgerReader defines read operations for cash-flow entries.
type LedgerReader interface {
	// FindEntryByID returns the entry if it exists and is visible in scope.
	FindEntryByID(ctx context.Context, scope domain.TenantScope, entryID int64) (*domain.LedgerEntry, error)

	// ListEntries returns entries visible in scope, newest first, with their category.
	ListEntries(ctx context.Context, scope domain.TenantScope, filter domain.LedgerFilter) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for cash-flow entries.
type LedgerWriter interface {
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) (int64, error)

	// UpdateEntry persists entry if its version matches the stored one.
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error

	DeleteEntry(ctx context.Context, scope domain.TenantScope, entryID int64) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// ReportingRepository computes database-side aggregates over ledger entries.
type ReportingRepository interface {
	// SumBefore totals every entry dated strictly before cutoff.
	SumBefore(ctx context.Context, scope domain.TenantScope, cutoff domain.Period) (domain.LedgerSummary, error)

	// MonthlyTotals returns IN/OUT sums per UTC month of year. Months without entries are omitted.
	MonthlyTotals(ctx context.Context, scope domain.TenantScope, year int) ([]domain.MonthTotals, error)

	// CategoryTotals groups the entries of period by category and type.
	CategoryTotals(ctx context.Context, scope domain.TenantScope, period domain.Period) ([]domain.CategoryTotal, error)
}
