package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cashFlowHandler handles HTTP requests for ledger entries.
type cashFlowHandler struct {
	cashFlowService portssvc.CashFlowSvcFacade
}

func newCashFlowHandler(cs portssvc.CashFlowSvcFacade) *cashFlowHandler {
	return &cashFlowHandler{cashFlowService: cs}
}

// RegisterCashFlowRoutes registers the /cashflow routes on an authenticated group.
func RegisterCashFlowRoutes(rg *gin.RouterGroup, cashFlowService portssvc.CashFlowSvcFacade) {
	h := newCashFlowHandler(cashFlowService)

	cashflow := rg.Group("/cashflow")
	{
		cashflow.GET("", h.listEntries)
		cashflow.POST("", h.createEntry)
		cashflow.PUT("/:id", h.updateEntry)
		cashflow.DELETE("/:id", middleware.RequireRoles(domain.RoleSuperAdmin, domain.RoleAdmin), h.deleteEntry)
	}
}

// listEntries godoc
// @Summary List cash-flow entries
// @Description Lists the entries visible in the request tenant, newest first, with totals
// @Tags cashflow
// @Produce json
// @Param startDate query string false "Inclusive start (YYYY-MM-DD or RFC3339)"
// @Param endDate query string false "End date; a bare date includes the whole day"
// @Param type query string false "IN or OUT"
// @Param categoryId query int false "Category filter"
// @Param x-tenant-id header int false "Association scope"
// @Success 200 {object} dto.ListLedgerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cashflow [get]
func (h *cashFlowHandler) listEntries(c *gin.Context) {
	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	entries, summary, err := h.cashFlowService.ListEntries(c.Request.Context(), tenantScope(c), params)
	if err != nil {
		respondError(c, err, "Failed to list cash-flow entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLedgerResponse(entries, summary))
}

// createEntry godoc
// @Summary Create a cash-flow entry
// @Description Records an IN or OUT movement. A bare date is stored at 12:00 UTC.
// @Tags cashflow
// @Accept json
// @Produce json
// @Param entry body dto.CreateLedgerEntryRequest true "Entry"
// @Param x-tenant-id header int false "Association scope"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Period is closed"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cashflow [post]
func (h *cashFlowHandler) createEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	entry, err := h.cashFlowService.CreateEntry(c.Request.Context(), tenantScope(c), req, actor)
	if err != nil {
		respondError(c, err, "Failed to create cash-flow entry")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Cash-flow entry created", slog.Int64("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a cash-flow entry
// @Tags cashflow
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param entry body dto.UpdateLedgerEntryRequest true "Entry"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Stale version or closed period"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cashflow/{id} [put]
func (h *cashFlowHandler) updateEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	entryID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	entry, err := h.cashFlowService.UpdateEntry(c.Request.Context(), tenantScope(c), entryID, req, actor)
	if err != nil {
		respondError(c, err, "Failed to update cash-flow entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a cash-flow entry
// @Tags cashflow
// @Param id path int true "Entry ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Period is closed"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cashflow/{id} [delete]
func (h *cashFlowHandler) deleteEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	entryID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.cashFlowService.DeleteEntry(c.Request.Context(), tenantScope(c), entryID, actor); err != nil {
		respondError(c, err, "Failed to delete cash-flow entry")
		return
	}
	c.Status(http.StatusNoContent)
}
