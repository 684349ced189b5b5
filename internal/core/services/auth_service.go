package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/platform/config"
	"github.com/SscSPs/association_manager_app/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService issues JWT access tokens after password authentication.
type tokenService struct {
	cfg         *config.Config
	userService portssvc.UserAuthSvc
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userService portssvc.UserAuthSvc) portssvc.TokenSvc {
	return &tokenService{cfg: cfg, userService: userService}
}

func (s *tokenService) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error) {
	user, err := s.userService.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *tokenService) IssueToken(user *domain.User) (string, error) {
	token, err := utils.GenerateJWT(*user, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", apperrors.NewAppError(http.StatusInternalServerError, "failed to issue token", err)
	}
	return token, nil
}

// IDTokenValidator verifies a Google ID token for audience.
type IDTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// googleOAuthService signs in provisioned users with their Google account.
type googleOAuthService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
	tokens       portssvc.TokenSvc
	users        portssvc.UserAuthSvc
	validate     IDTokenValidator
}

// NewGoogleOAuthService creates the Google sign-in service. validate may be
// nil to use idtoken.Validate.
func NewGoogleOAuthService(cfg *config.Config, tokens portssvc.TokenSvc, users portssvc.UserAuthSvc, validate IDTokenValidator) portssvc.GoogleOAuthSvc {
	if validate == nil {
		validate = idtoken.Validate
	}
	return &googleOAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		tokens:   tokens,
		users:    users,
		validate: validate,
	}
}

func (s *googleOAuthService) Enabled() bool {
	return s.cfg.GoogleClientID != ""
}

func (s *googleOAuthService) AuthCodeURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// LoginWithCode exchanges an authorization code and signs in with the ID token it carries.
func (s *googleOAuthService) LoginWithCode(ctx context.Context, code string) (string, *domain.User, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", nil, apperrors.NewAppError(http.StatusUnauthorized, "google authorization failed", err)
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", nil, apperrors.NewAppError(http.StatusUnauthorized, "google response carried no ID token", nil)
	}
	return s.LoginWithIDToken(ctx, rawIDToken)
}

func (s *googleOAuthService) LoginWithIDToken(ctx context.Context, rawIDToken string) (string, *domain.User, error) {
	if !s.Enabled() {
		return "", nil, apperrors.NewAppError(http.StatusNotFound, "google sign-in is not configured", nil)
	}
	payload, err := s.validate(ctx, rawIDToken, s.cfg.GoogleClientID)
	if err != nil {
		return "", nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid google ID token", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", nil, apperrors.NewAppError(http.StatusUnauthorized, "google account has no email", nil)
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return "", nil, apperrors.NewAppError(http.StatusUnauthorized, "google email is not verified", nil)
	}

	user, err := s.users.FindUserForGoogle(ctx, email, payload.Subject)
	if err != nil {
		return "", nil, err
	}
	jwt, err := s.tokens.IssueToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("issuing token after google sign-in: %w", err)
	}
	return jwt, user, nil
}
