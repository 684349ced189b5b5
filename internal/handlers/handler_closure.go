package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/middleware"
	"github.com/SscSPs/association_manager_app/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

type closureHandler struct {
	closureService portssvc.ClosureSvcFacade
	associations   portssvc.AssociationReaderSvc
	renderer       portssvc.ReportRenderer
}

// RegisterClosureRoutes registers /closure under the finance group. renderer
// may be nil, in which case PDF reports answer 404. A closure locks the month
// for every association, so closing and reopening need a super admin.
func RegisterClosureRoutes(rg *gin.RouterGroup, closureService portssvc.ClosureSvcFacade, associations portssvc.AssociationReaderSvc, renderer portssvc.ReportRenderer) {
	h := &closureHandler{closureService: closureService, associations: associations, renderer: renderer}
	superAdmins := middleware.RequireRoles(domain.RoleSuperAdmin)

	closure := rg.Group("/closure")
	{
		closure.GET("", h.listClosures)
		closure.GET("/check", h.checkStatus)
		closure.GET("/report", h.generateReport)
		closure.POST("", superAdmins, h.closeMonth)
		closure.POST("/reopen", superAdmins, h.reopenMonth)
	}
}

// listClosures godoc
// @Summary Yearly closure overview
// @Description Twelve months with carried balances and closure state
// @Tags closure
// @Produce json
// @Param year query int false "Year (defaults to the current year)"
// @Success 200 {array} dto.MonthBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/closure [get]
func (h *closureHandler) listClosures(c *gin.Context) {
	var params dto.ListClosuresParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	year := params.Year
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	rows, err := h.closureService.ListClosures(c.Request.Context(), tenantScope(c), year)
	if err != nil {
		respondError(c, err, "Failed to list closures")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthBalanceListResponse(rows))
}

// checkStatus godoc
// @Summary Status of the month containing a date
// @Tags closure
// @Produce json
// @Param date query string true "YYYY-MM-DD or RFC3339"
// @Success 200 {object} dto.ClosureStatusResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/closure/check [get]
func (h *closureHandler) checkStatus(c *gin.Context) {
	var params dto.CheckStatusParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	date, err := accounting.ParseQueryDate(params.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date: " + err.Error()})
		return
	}

	period, status, err := h.closureService.CheckStatus(c.Request.Context(), date)
	if err != nil {
		respondError(c, err, "Failed to check period status")
		return
	}
	c.JSON(http.StatusOK, dto.ClosureStatusResponse{Month: period.Month, Year: period.Year, Status: status})
}

// closeMonth godoc
// @Summary Close a month
// @Description Idempotent. Future months are rejected. Locks the month for all associations.
// @Tags closure
// @Accept json
// @Produce json
// @Param closure body dto.CloseMonthRequest true "Period"
// @Success 200 {object} dto.MonthlyClosureResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/closure [post]
func (h *closureHandler) closeMonth(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CloseMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	closure, err := h.closureService.CloseMonth(c.Request.Context(), tenantScope(c), domain.Period{Month: req.Month, Year: req.Year}, actor)
	if err != nil {
		respondError(c, err, "Failed to close month")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlyClosureResponse(closure))
}

// reopenMonth godoc
// @Summary Reopen a closed month
// @Tags closure
// @Accept json
// @Produce json
// @Param reopen body dto.ReopenMonthRequest true "Period and reason"
// @Success 200 {object} dto.MonthlyClosureResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Month was never closed"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/closure/reopen [post]
func (h *closureHandler) reopenMonth(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.ReopenMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	closure, err := h.closureService.ReopenMonth(c.Request.Context(), tenantScope(c), domain.Period{Month: req.Month, Year: req.Year}, req.Reason, actor)
	if err != nil {
		respondError(c, err, "Failed to reopen month")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlyClosureResponse(closure))
}

// generateReport godoc
// @Summary Month closure report
// @Description Summary and category breakdown; format=pdf downloads a document
// @Tags closure
// @Produce json
// @Produce application/pdf
// @Param month query int true "Month"
// @Param year query int true "Year"
// @Param format query string false "json (default) or pdf"
// @Success 200 {object} dto.ClosureReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/closure/report [get]
func (h *closureHandler) generateReport(c *gin.Context) {
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	ctx := c.Request.Context()
	scope := tenantScope(c)

	var actor *domain.Actor
	if a, ok := middleware.GetActorFromContext(c); ok {
		actor = &a
	}

	report, err := h.closureService.GenerateReport(ctx, scope, domain.Period{Month: params.Month, Year: params.Year}, actor)
	if err != nil {
		respondError(c, err, "Failed to generate report")
		return
	}

	if params.Format != "pdf" {
		c.JSON(http.StatusOK, dto.ToClosureReportResponse(report))
		return
	}
	if h.renderer == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "PDF reports are not available"})
		return
	}

	var association *domain.Association
	if id, ok := scope.AssociationID(); ok && h.associations != nil {
		if association, err = h.associations.GetAssociation(ctx, id); err != nil {
			respondError(c, err, "Failed to generate report")
			return
		}
	}
	document, err := h.renderer.RenderClosureReport(ctx, report, association)
	if err != nil {
		respondError(c, err, "Failed to render report")
		return
	}
	filename := fmt.Sprintf("closure-report-%d-%02d.pdf", report.Year, report.Month)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", document)
}
