package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/association_manager_app/cmd/docs"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/middleware"
	"github.com/SscSPs/association_manager_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes. renderer may be nil when
// PDF reports are not available.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	renderer portssvc.ReportRenderer,
) error {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("login rate limiter: %w", err)
	}

	api := r.Group("/api", middleware.TenantResolver(services.Association))
	setupPublicRoutes(api, cfg, services, middleware.RateLimit(loginLimiter))
	setupAuthenticatedRoutes(api, cfg, services, renderer)
	setupSwaggerRoutes(r, cfg)
	return nil
}

func setupPublicRoutes(api *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer, loginLimit gin.HandlerFunc) {
	auth := NewAuthHandler(services.Token, services.GoogleOAuth, cfg.FrontendBaseURL, cfg.IsProduction)
	RegisterAuthRoutes(api, auth, loginLimit)
	RegisterPublicMemberRoutes(api, services.Member, cfg.UploadMaxBytes)
}

// setupAuthenticatedRoutes configures everything behind a bearer token.
// Non super admins are pinned to their own association.
func setupAuthenticatedRoutes(api *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer, renderer portssvc.ReportRenderer) {
	authed := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret), middleware.BindTenantToUser())

	RegisterCashFlowRoutes(authed, services.CashFlow)
	RegisterCategoryRoutes(authed, services.Category)
	RegisterUserRoutes(authed, services.User)

	finance := authed.Group("/finance")
	RegisterClosureRoutes(finance, services.Closure, services.Association, renderer)
	RegisterAuditRoutes(finance, services.Audit)
	RegisterMemberHistoryRoutes(finance, services.CashFlow)

	admin := authed.Group("/admin", middleware.RequireRoles(domain.RoleSuperAdmin, domain.RoleAdmin))
	RegisterMemberRoutes(admin, services.Member)
	RegisterAssociationRoutes(admin, services.Association)
	RegisterSettingsRoutes(admin, services.Settings)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
