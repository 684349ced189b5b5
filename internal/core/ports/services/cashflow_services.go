package services

import (
	"context"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/SscSPs/association_manager_app/internal/dto"
)

// CashFlowReaderSvc defines read operations on ledger entries.
type CashFlowReaderSvc interface {
	ListEntries(ctx context.Context, scope domain.TenantScope, params dto.ListLedgerParams) ([]domain.LedgerEntry, domain.LedgerSummary, error)
	MemberHistory(ctx context.Context, scope domain.TenantScope, memberID int64) (*domain.MemberHistory, error)
}

// CashFlowWriterSvc defines write operations on ledger entries.
type CashFlowWriterSvc interface {
	CreateEntry(ctx context.Context, scope domain.TenantScope, req dto.CreateLedgerEntryRequest, actor domain.Actor) (*domain.LedgerEntry, error)
	UpdateEntry(ctx context.Context, scope domain.TenantScope, entryID int64, req dto.UpdateLedgerEntryRequest, actor domain.Actor) (*domain.LedgerEntry, error)
	DeleteEntry(ctx context.Context, scope domain.TenantScope, entryID int64, actor domain.Actor) error
}

// CashFlowSvcFacade combines all cash-flow service interfaces.
type CashFlowSvcFacade interface {
	CashFlowReaderSvc
	CashFlowWriterSvc
}
