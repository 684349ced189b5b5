package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Association AssociationSvcFacade
	Category    CategorySvcFacade
	CashFlow    CashFlowSvcFacade
	Closure     ClosureSvcFacade
	Audit       AuditSvcFacade
	Member      MemberSvcFacade
	User        UserSvcFacade
	Settings    SettingsSvc
	Token       TokenSvc
	GoogleOAuth GoogleOAuthSvc
}
