package middleware

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// TenantHeader names the association a request operates on.
const TenantHeader = "x-tenant-id"

// TenantLookup resolves an active association by ID.
type TenantLookup interface {
	ResolveActiveTenant(ctx context.Context, associationID int64) (*domain.Association, error)
}

// TenantResolver sets the request tenant scope from the x-tenant-id header.
// An absent, malformed, unknown or inactive tenant, or a lookup failure, leaves
// the request in the global scope. The request is never rejected here.
func TenantResolver(lookup TenantLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		scope := domain.GlobalScope()

		if raw := strings.TrimSpace(c.GetHeader(TenantHeader)); raw != "" {
			logger := GetLoggerFromCtx(ctx)
			id, err := strconv.ParseInt(raw, 10, 64)
			switch {
			case err != nil || id <= 0:
				logger.Debug("Ignoring malformed tenant header", slog.String("header", raw))
			default:
				association, err := lookup.ResolveActiveTenant(ctx, id)
				if err != nil {
					logger.Debug("Tenant not resolved, using global scope",
						slog.Int64("association_id", id), slog.String("error", err.Error()))
				} else if association != nil {
					scope = domain.ScopedTo(association.AssociationID)
					ctx = WithLogger(ctx, logger.With(slog.Int64("association_id", association.AssociationID)))
				}
			}
		}

		c.Request = c.Request.WithContext(WithTenantScope(ctx, scope))
		c.Next()
	}
}

// BindTenantToUser pins users that belong to an association to that association,
// whatever the tenant header said. Super admins keep the resolved scope.
// Must run after AuthMiddleware.
func BindTenantToUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaimsFromContext(c)
		if ok && claims.Role != domain.RoleSuperAdmin && claims.AssociationID != nil {
			current, scoped := GetTenantScope(c.Request.Context()).AssociationID()
			if !scoped || current != *claims.AssociationID {
				c.Request = c.Request.WithContext(WithTenantScope(c.Request.Context(), domain.ScopedTo(*claims.AssociationID)))
			}
		}
		c.Next()
	}
}
