package domain

// AssociationStatus is the lifecycle state of a tenant.
type AssociationStatus string

const (
	AssociationActive   AssociationStatus = "ACTIVE"
	AssociationInactive AssociationStatus = "INACTIVE"
)

// Association is a tenant: an isolated membership association.
type Association struct {
	AssociationID int64             `json:"id"`
	Name          string            `json:"name"`
	Document      string            `json:"document"`
	Status        AssociationStatus `json:"status"`
	PrimaryColor  string            `json:"primaryColor"`
	LogoURL       string            `json:"logoUrl"`
	AuditFields
}

// IsActive reports whether the association may be used as a request scope.
func (a Association) IsActive() bool {
	return a.Status == AssociationActive
}

// TenantScope is the association filter applied to a query.
// The zero value is the global (unscoped) view.
type TenantScope struct {
	associationID *int64
}

// GlobalScope returns the unscoped view used by global administrators.
func GlobalScope() TenantScope {
	return TenantScope{}
}

// ScopedTo restricts queries to a single association.
func ScopedTo(associationID int64) TenantScope {
	return TenantScope{associationID: &associationID}
}

// IsGlobal reports whether no association filter applies.
func (s TenantScope) IsGlobal() bool {
	return s.associationID == nil
}

// AssociationID returns the scoped association and whether one is set.
func (s TenantScope) AssociationID() (int64, bool) {
	if s.associationID == nil {
		return 0, false
	}
	return *s.associationID, true
}

// TenantID returns the association as a nullable value for persistence.
func (s TenantScope) TenantID() *int64 {
	if s.associationID == nil {
		return nil
	}
	id := *s.associationID
	return &id
}

// Allows reports whether a row owned by tenantID is visible in this scope.
func (s TenantScope) Allows(tenantID *int64) bool {
	if s.associationID == nil {
		return true
	}
	return tenantID != nil && *tenantID == *s.associationID
}
