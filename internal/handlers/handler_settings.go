package handlers

import (
	"net/http"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsService portssvc.SettingsSvc
}

// RegisterSettingsRoutes registers /settings/features.
func RegisterSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvc) {
	h := &settingsHandler{settingsService: settingsService}
	rg.GET("/settings/features", h.getFeatures)
	rg.PUT("/settings/features", middleware.RequireRoles(domain.RoleSuperAdmin), h.updateFeatures)
}

// getFeatures godoc
// @Summary SaaS feature toggles
// @Tags settings
// @Produce json
// @Success 200 {object} dto.FeaturesResponse
// @Security BearerAuth
// @Router /admin/settings/features [get]
func (h *settingsHandler) getFeatures(c *gin.Context) {
	features, err := h.settingsService.GetFeatures(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToFeaturesResponse(features))
}

// updateFeatures godoc
// @Summary Update SaaS feature toggles
// @Description AUDITORIA switches financial audit logging on or off at runtime
// @Tags settings
// @Accept json
// @Produce json
// @Param features body dto.UpdateFeaturesRequest true "Toggles"
// @Success 200 {object} dto.FeaturesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/settings/features [put]
func (h *settingsHandler) updateFeatures(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateFeaturesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	features, err := h.settingsService.UpdateFeatures(c.Request.Context(), domain.SaaSFeatures{Auditoria: *req.Auditoria}, actor)
	if err != nil {
		respondError(c, err, "Failed to update settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToFeaturesResponse(features))
}
