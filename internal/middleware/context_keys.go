package middleware

import (
	"context"
	"log/slog"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/SscSPs/association_manager_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// contextKey namespaces values stored in the request context.
type contextKey string

const (
	loggerCtxKey   = contextKey("logger")
	userIDKey      = contextKey("userID")
	claimsKey      = contextKey("claims")
	tenantScopeKey = contextKey("tenantScope")
)

// GetLoggerFromCtx retrieves the request-scoped logger, falling back to slog.Default().
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(int64)
	return userID, ok
}

// GetClaimsFromContext retrieves the token claims of the authenticated user.
func GetClaimsFromContext(c *gin.Context) (*utils.Claims, bool) {
	claims, ok := c.Request.Context().Value(claimsKey).(*utils.Claims)
	return claims, ok && claims != nil
}

// GetActorFromContext returns the audit identity of the authenticated user.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	actor := domain.Actor{UserID: userID}
	if claims, ok := GetClaimsFromContext(c); ok {
		actor.Name = claims.Name
	}
	return actor, true
}

// GetTenantScope returns the association scope resolved for the request.
// Requests that never went through TenantResolver get the global scope.
func GetTenantScope(ctx context.Context) domain.TenantScope {
	if scope, ok := ctx.Value(tenantScopeKey).(domain.TenantScope); ok {
		return scope
	}
	return domain.GlobalScope()
}

// WithTenantScope stores scope in ctx.
func WithTenantScope(ctx context.Context, scope domain.TenantScope) context.Context {
	return context.WithValue(ctx, tenantScopeKey, scope)
}
