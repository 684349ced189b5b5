package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/utils"
)

var errInvalidCredentials = apperrors.NewAppError(http.StatusUnauthorized, "invalid credentials", nil)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, audit portssvc.AuditRecorderSvc) portssvc.UserSvcFacade {
	return &userService{BaseService: BaseService{Audit: audit}, userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user by ID", slog.Int64("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, scope domain.TenantScope, limit int, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, scope, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, err
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Actor) (*domain.User, error) {
	role := domain.UserRole(req.Role)
	if !role.IsValid() {
		return nil, apperrors.NewValidationFailedError("invalid role")
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("invalid password")
	}

	now := s.now()
	user := domain.User{
		Name:          strings.TrimSpace(req.Name),
		Email:         normalizeEmail(req.Email),
		PasswordHash:  hash,
		Role:          role,
		AssociationID: req.AssociationID,
		Active:        true,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	id, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewDuplicateError("a user with this email already exists")
		}
		s.LogError(ctx, err, "Failed to create user", slog.String("email", user.Email))
		return nil, err
	}
	user.UserID = id

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditCreate,
		EntityType:  domain.EntityUser,
		EntityID:    strconv.FormatInt(id, 10),
		Description: "User created: " + user.Email,
		New:         user,
		TenantID:    user.AssociationID,
	})
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest, actor domain.Actor) (*domain.User, error) {
	current, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		updated.Role = domain.UserRole(*req.Role)
		if !updated.Role.IsValid() {
			return nil, apperrors.NewValidationFailedError("invalid role")
		}
	}
	if req.AssociationID != nil {
		updated.AssociationID = req.AssociationID
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("invalid password")
		}
		updated.PasswordHash = hash
	}
	updated.UpdatedAt = s.now()

	if err := s.userRepo.UpdateUser(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.Int64("user_id", userID))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditUpdate,
		EntityType:  domain.EntityUser,
		EntityID:    strconv.FormatInt(userID, 10),
		Description: "User updated: " + updated.Email,
		Old:         current,
		New:         updated,
		TenantID:    updated.AssociationID,
	})
	return &updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID int64, actor domain.Actor) error {
	if userID == actor.UserID {
		return apperrors.NewValidationFailedError("users cannot delete themselves")
	}
	current, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.Int64("user_id", userID))
		return err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditDelete,
		EntityType:  domain.EntityUser,
		EntityID:    strconv.FormatInt(userID, 10),
		Description: "User deleted: " + current.Email,
		Old:         current,
		TenantID:    current.AssociationID,
	})
	return nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if !user.Active || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, errInvalidCredentials
	}
	return user, nil
}

func (s *userService) FindUserForGoogle(ctx context.Context, email, subject string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(http.StatusUnauthorized, "no account is registered for this Google user", nil)
		}
		s.LogError(ctx, err, "Failed to look up user for Google sign-in")
		return nil, err
	}
	if !user.Active {
		return nil, errInvalidCredentials
	}
	switch {
	case user.GoogleSubject == nil:
		if err := s.userRepo.LinkGoogleSubject(ctx, user.UserID, subject); err != nil {
			s.LogError(ctx, err, "Failed to link Google account", slog.Int64("user_id", user.UserID))
			return nil, err
		}
		user.GoogleSubject = &subject
	case *user.GoogleSubject != subject:
		return nil, errInvalidCredentials
	}
	return user, nil
}
