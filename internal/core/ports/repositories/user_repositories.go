package repositories

import (
	"context"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByEmail retrieves a user by login email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a page of users visible in scope.
	FindUsers(ctx context.Context, scope domain.TenantScope, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user and returns its ID.
	SaveUser(ctx context.Context, user domain.User) (int64, error)

	// UpdateUser updates an existing user's details, including the password hash.
	UpdateUser(ctx context.Context, user domain.User) error

	// LinkGoogleSubject stores the Google account subject used for sign-in.
	LinkGoogleSubject(ctx context.Context, userID int64, subject string) error

	DeleteUser(ctx context.Context, userID int64) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
