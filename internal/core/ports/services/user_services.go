package services

import (
	"context"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/SscSPs/association_manager_app/internal/dto"
)

// UserReaderSvc defines read operations for users
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	ListUsers(ctx context.Context, scope domain.TenantScope, limit int, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for users
type UserWriterSvc interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Actor) (*domain.User, error)
	UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest, actor domain.Actor) (*domain.User, error)
	DeleteUser(ctx context.Context, userID int64, actor domain.Actor) error
}

// UserAuthSvc authenticates users
type UserAuthSvc interface {
	// AuthenticateUser checks email and password of an active user.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// FindUserForGoogle returns the active user with email and links the Google subject on first use.
	FindUserForGoogle(ctx context.Context, email, subject string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}

// TokenSvc issues access tokens.
type TokenSvc interface {
	Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error)
	IssueToken(user *domain.User) (string, error)
}

// GoogleOAuthSvc handles sign-in with Google.
type GoogleOAuthSvc interface {
	Enabled() bool
	AuthCodeURL(state string) string
	LoginWithCode(ctx context.Context, code string) (string, *domain.User, error)
	LoginWithIDToken(ctx context.Context, idToken string) (string, *domain.User, error)
}
