package handlers

import (
	"net/http"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditService portssvc.AuditReaderSvc
}

// RegisterAuditRoutes registers /logs under the finance group.
func RegisterAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditReaderSvc) {
	h := &auditHandler{auditService: auditService}
	rg.GET("/logs", middleware.RequireRoles(domain.RoleSuperAdmin, domain.RoleAdmin), h.listLogs)
}

// listLogs godoc
// @Summary List the financial audit log
// @Description Newest first, paginated with nextToken
// @Tags audit
// @Produce json
// @Param startDate query string false "Start date"
// @Param endDate query string false "End date; a bare date includes the whole day"
// @Param userId query int false "Filter by user"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListLogsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/logs [get]
func (h *auditHandler) listLogs(c *gin.Context) {
	var params dto.ListLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	resp, err := h.auditService.ListLogs(c.Request.Context(), tenantScope(c), params)
	if err != nil {
		respondError(c, err, "Failed to list audit logs")
		return
	}
	c.JSON(http.StatusOK, resp)
}
