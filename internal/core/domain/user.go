package domain

// UserRole defines what a user may do.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleOperator   UserRole = "OPERATOR"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == RoleSuperAdmin || r == RoleAdmin || r == RoleOperator
}

// User represents an operator of the system.
type User struct {
	UserID        int64    `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	PasswordHash  string   `json:"-"`
	Role          UserRole `json:"role"`
	AssociationID *int64   `json:"associationId,omitempty"`
	Active        bool     `json:"active"`
	GoogleSubject *string  `json:"-"`
	AuditFields
}

// Actor returns the audit identity of the user.
func (u User) Actor() Actor {
	return Actor{UserID: u.UserID, Name: u.Name}
}
