package dto

import (
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
)

// CreateUserRequest defines the body for creating a user.
type CreateUserRequest struct {
	Name          string `json:"name" binding:"required,max=150"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8,max=72"`
	Role          string `json:"role" binding:"required,oneof=SUPER_ADMIN ADMIN OPERATOR"`
	AssociationID *int64 `json:"associationId" binding:"omitempty,gt=0"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=150"`
	Password      *string `json:"password" binding:"omitempty,min=8,max=72"`
	Role          *string `json:"role" binding:"omitempty,oneof=SUPER_ADMIN ADMIN OPERATOR"`
	AssociationID *int64  `json:"associationId" binding:"omitempty,gt=0"`
	Active        *bool   `json:"active"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// LoginRequest defines the credentials for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleTokenRequest carries a Google ID token obtained by the frontend.
type GoogleTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// UserResponse is the API view of a user.
type UserResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          domain.UserRole `json:"role"`
	AssociationID *int64          `json:"associationId,omitempty"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a domain user.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:            u.UserID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		AssociationID: u.AssociationID,
		Active:        u.Active,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// ToUserListResponse converts a slice of users.
func ToUserListResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
