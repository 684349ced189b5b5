package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/middleware"
	"github.com/SscSPs/association_manager_app/internal/utils"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// RegisterUserRoutes registers /users. /users/me is open to every
// authenticated user, the rest needs an administrator. Association admins
// only see and manage users of their own association.
func RegisterUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := &userHandler{userService: userService}
	admins := middleware.RequireRoles(domain.RoleSuperAdmin, domain.RoleAdmin)

	users := rg.Group("/users")
	{
		users.GET("/me", h.getCurrentUser)
		users.GET("", admins, h.listUsers)
		users.POST("", admins, h.createUser)
		users.GET("/:id", admins, h.getUser)
		users.PUT("/:id", admins, h.updateUser)
		users.DELETE("/:id", admins, h.deleteUser)
	}
}

func forbid(c *gin.Context, msg string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Forbidden user operation", slog.String("reason", msg))
	c.JSON(http.StatusForbidden, ErrorResponse{Error: msg})
}

// isAssociationAdmin reports whether the caller is an ADMIN. Such callers only
// manage non super admin users of their own association; an ADMIN without an
// association manages nobody.
func isAssociationAdmin(claims *utils.Claims) bool {
	return claims.Role == domain.RoleAdmin
}

func sameAssociation(claims *utils.Claims, user *domain.User) bool {
	return claims.AssociationID != nil && user.AssociationID != nil && *claims.AssociationID == *user.AssociationID
}

// loadManagedUser fetches the target user and checks the caller may manage it.
func (h *userHandler) loadManagedUser(c *gin.Context) (*domain.User, bool) {
	userID, ok := idParam(c, "id")
	if !ok {
		return nil, false
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return nil, false
	}
	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return nil, false
	}
	if isAssociationAdmin(claims) {
		if !sameAssociation(claims, user) {
			forbid(c, "User belongs to another association")
			return nil, false
		}
		if user.Role == domain.RoleSuperAdmin {
			forbid(c, "Only super admins can manage super admins")
			return nil, false
		}
	}
	if !tenantScope(c).Allows(user.AssociationID) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		return nil, false
	}
	return user, true
}

// getCurrentUser godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getCurrentUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	users, err := h.userService.ListUsers(c.Request.Context(), tenantScope(c), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserListResponse(users))
}

// createUser godoc
// @Summary Create a user
// @Description Association admins create users of their own association and cannot create super admins
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already in use"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	if claims, ok := middleware.GetClaimsFromContext(c); ok && isAssociationAdmin(claims) {
		if domain.UserRole(req.Role) == domain.RoleSuperAdmin {
			forbid(c, "Only super admins can create super admins")
			return
		}
		req.AssociationID = claims.AssociationID
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	user, ok := h.loadManagedUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	target, ok := h.loadManagedUser(c)
	if !ok {
		return
	}
	if claims, ok := middleware.GetClaimsFromContext(c); ok && isAssociationAdmin(claims) {
		if req.Role != nil && domain.UserRole(*req.Role) == domain.RoleSuperAdmin {
			forbid(c, "Only super admins can grant the super admin role")
			return
		}
		if req.AssociationID != nil && !sameAssociation(claims, &domain.User{AssociationID: req.AssociationID}) {
			forbid(c, "Users cannot be moved to another association")
			return
		}
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), target.UserID, req, actor)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Failure 400 {object} ErrorResponse "Cannot delete yourself"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	target, ok := h.loadManagedUser(c)
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), target.UserID, actor); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}
