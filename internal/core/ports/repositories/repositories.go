package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	AssociationRepo AssociationRepositoryFacade
	CategoryRepo    CategoryRepositoryFacade
	LedgerRepo      LedgerRepositoryFacade
	ClosureRepo     ClosureRepositoryWithTx
	ReportingRepo   ReportingRepository
	AuditRepo       AuditRepositoryFacade
	MemberRepo      MemberRepositoryFacade
	UserRepo        UserRepositoryFacade
	SettingsRepo    SettingsRepository
}
