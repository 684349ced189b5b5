package handlers

import (
	"net/http"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type associationHandler struct {
	associationService portssvc.AssociationSvcFacade
}

// RegisterAssociationRoutes registers /associations. Writes are reserved to super admins.
func RegisterAssociationRoutes(rg *gin.RouterGroup, associationService portssvc.AssociationSvcFacade) {
	h := &associationHandler{associationService: associationService}
	superAdmins := middleware.RequireRoles(domain.RoleSuperAdmin)

	associations := rg.Group("/associations")
	{
		associations.GET("", h.listAssociations)
		associations.GET("/:id", h.getAssociation)
		associations.POST("", superAdmins, h.createAssociation)
		associations.PUT("/:id", superAdmins, h.updateAssociation)
		associations.DELETE("/:id", superAdmins, h.deleteAssociation)
	}
}

// listAssociations godoc
// @Summary List associations
// @Tags associations
// @Produce json
// @Success 200 {array} dto.AssociationResponse
// @Security BearerAuth
// @Router /admin/associations [get]
func (h *associationHandler) listAssociations(c *gin.Context) {
	list, err := h.associationService.ListAssociations(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list associations")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssociationListResponse(list))
}

// getAssociation godoc
// @Summary Get an association
// @Tags associations
// @Produce json
// @Param id path int true "Association ID"
// @Success 200 {object} dto.AssociationResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/associations/{id} [get]
func (h *associationHandler) getAssociation(c *gin.Context) {
	associationID, ok := idParam(c, "id")
	if !ok {
		return
	}
	association, err := h.associationService.GetAssociation(c.Request.Context(), associationID)
	if err != nil {
		respondError(c, err, "Failed to retrieve association")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssociationResponse(association))
}

// createAssociation godoc
// @Summary Create an association
// @Tags associations
// @Accept json
// @Produce json
// @Param association body dto.CreateAssociationRequest true "Association"
// @Success 201 {object} dto.AssociationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/associations [post]
func (h *associationHandler) createAssociation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateAssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	association, err := h.associationService.CreateAssociation(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to create association")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAssociationResponse(association))
}

// updateAssociation godoc
// @Summary Update an association
// @Tags associations
// @Accept json
// @Produce json
// @Param id path int true "Association ID"
// @Param association body dto.UpdateAssociationRequest true "Fields to change"
// @Success 200 {object} dto.AssociationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/associations/{id} [put]
func (h *associationHandler) updateAssociation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	associationID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	association, err := h.associationService.UpdateAssociation(c.Request.Context(), associationID, req, actor)
	if err != nil {
		respondError(c, err, "Failed to update association")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssociationResponse(association))
}

// deleteAssociation godoc
// @Summary Delete an association
// @Tags associations
// @Param id path int true "Association ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/associations/{id} [delete]
func (h *associationHandler) deleteAssociation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	associationID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.associationService.DeleteAssociation(c.Request.Context(), associationID, actor); err != nil {
		respondError(c, err, "Failed to delete association")
		return
	}
	c.Status(http.StatusNoContent)
}
