package pgsql

import (
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every repository on top of the same pool.
// Pass a *pgxpool.Pool in production and a pgxmock pool in tests.
func NewRepositoryProvider(dbPool PgxPool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AssociationRepo: newPgxAssociationRepository(dbPool),
		CategoryRepo:    newPgxCategoryRepository(dbPool),
		LedgerRepo:      newPgxLedgerRepository(dbPool),
		ClosureRepo:     newPgxClosureRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
		AuditRepo:       newPgxAuditRepository(dbPool),
		MemberRepo:      newPgxMemberRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		SettingsRepo:    newPgxSettingsRepository(dbPool),
	}
}
