package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/middleware"
	"github.com/SscSPs/association_manager_app/internal/utils"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

// AuthHandler handles password and Google sign-in.
type AuthHandler struct {
	tokenService    portssvc.TokenSvc
	googleService   portssvc.GoogleOAuthSvc
	frontendBaseURL string
	secureCookies   bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(tokenService portssvc.TokenSvc, googleService portssvc.GoogleOAuthSvc, frontendBaseURL string, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		tokenService:    tokenService,
		googleService:   googleService,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
		secureCookies:   secureCookies,
	}
}

// RegisterAuthRoutes registers /auth. loginLimit guards the password login.
func RegisterAuthRoutes(rg *gin.RouterGroup, h *AuthHandler, loginLimit gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		if loginLimit != nil {
			auth.POST("/login", loginLimit, h.Login)
		} else {
			auth.POST("/login", h.Login)
		}
		auth.GET("/google/login", h.GoogleLogin)
		auth.GET("/google/callback", h.GoogleCallback)
		auth.POST("/google/token", h.GoogleToken)
	}
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}
	token, user, err := h.tokenService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

// GoogleLogin godoc
// @Summary Start Google sign-in
// @Description Redirects to the Google consent screen
// @Tags auth
// @Success 307
// @Failure 404 {object} ErrorResponse "Google sign-in is not configured"
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if !h.googleService.Enabled() {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Google sign-in is not configured"})
		return
	}
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		respondError(c, err, "Failed to start Google sign-in")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleService.AuthCodeURL(state))
}

// GoogleCallback godoc
// @Summary Google sign-in callback
// @Description Exchanges the code and redirects to the frontend with the token
// @Tags auth
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 307
// @Failure 400 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || expected == "" || expected != c.Query("state") {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookies, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code is required"})
		return
	}

	target := h.frontendBaseURL + "/login"
	token, user, err := h.googleService.LoginWithCode(c.Request.Context(), code)
	if err != nil {
		logger.Warn("Google sign-in failed", slog.String("error", err.Error()))
		c.Redirect(http.StatusTemporaryRedirect, target+"?"+url.Values{"error": {"google_login_failed"}}.Encode())
		return
	}
	logger.Info("User signed in with Google", slog.Int64("user_id", user.UserID))
	c.Redirect(http.StatusTemporaryRedirect, target+"?"+url.Values{"token": {token}}.Encode())
}

// GoogleToken godoc
// @Summary Sign in with a Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body dto.GoogleTokenRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Google sign-in is not configured"
// @Router /auth/google/token [post]
func (h *AuthHandler) GoogleToken(c *gin.Context) {
	var req dto.GoogleTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}
	token, user, err := h.googleService.LoginWithIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}
