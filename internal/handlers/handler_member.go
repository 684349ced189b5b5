package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type memberHandler struct {
	memberService   portssvc.MemberSvcFacade
	cashFlowService portssvc.CashFlowReaderSvc
	maxUploadBytes  int64
}

func newMemberHandler(memberService portssvc.MemberSvcFacade, cashFlowService portssvc.CashFlowReaderSvc, maxUploadBytes int64) *memberHandler {
	return &memberHandler{memberService: memberService, cashFlowService: cashFlowService, maxUploadBytes: maxUploadBytes}
}

// RegisterPublicMemberRoutes registers the unauthenticated registration form
// and the membership card check.
func RegisterPublicMemberRoutes(rg *gin.RouterGroup, memberService portssvc.MemberSvcFacade, maxUploadBytes int64) {
	h := newMemberHandler(memberService, nil, maxUploadBytes)
	rg.POST("/register", h.registerMember)
	rg.GET("/public/validate/:id", h.validateMember)
}

// RegisterMemberRoutes registers /members under an administrator group.
func RegisterMemberRoutes(rg *gin.RouterGroup, memberService portssvc.MemberSvcFacade) {
	h := newMemberHandler(memberService, nil, 0)

	members := rg.Group("/members")
	{
		members.GET("", h.listMembers)
		members.GET("/:id", h.getMember)
		members.PUT("/:id", h.updateMember)
		members.PATCH("/:id/status", h.updateMemberStatus)
		members.DELETE("/:id", h.deleteMember)
	}
}

// RegisterMemberHistoryRoutes registers /members/:id/history under the finance group.
func RegisterMemberHistoryRoutes(rg *gin.RouterGroup, cashFlowService portssvc.CashFlowReaderSvc) {
	h := newMemberHandler(nil, cashFlowService, 0)
	rg.GET("/members/:id/history", h.memberHistory)
}

// optionalFile returns the uploaded file under field, or nil when the form
// has none. Oversized files are rejected.
func (h *memberHandler) optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	file, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		return nil, fmt.Errorf("%s exceeds the maximum size of %d bytes", field, h.maxUploadBytes)
	}
	return file, nil
}

// registerMember godoc
// @Summary Public member registration
// @Description Multipart form; the member starts as PENDING. Use x-tenant-id to pick the association.
// @Tags members
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Full name"
// @Param cpf formData string true "CPF"
// @Param email formData string false "Email"
// @Param phone formData string false "Phone"
// @Param birthDate formData string false "YYYY-MM-DD"
// @Param address formData string false "Address"
// @Param photo formData file false "Photo"
// @Param document formData file false "Identity document"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "CPF already registered"
// @Failure 500 {object} ErrorResponse
// @Router /register [post]
func (h *memberHandler) registerMember(c *gin.Context) {
	var req dto.RegisterMemberRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err, "registration form")
		return
	}

	var uploads portssvc.MemberUploads
	var err error
	if uploads.Photo, err = h.optionalFile(c, "photo"); err != nil {
		respondBindError(c, err, "photo")
		return
	}
	if uploads.Document, err = h.optionalFile(c, "document"); err != nil {
		respondBindError(c, err, "document")
		return
	}

	member, err := h.memberService.RegisterMember(c.Request.Context(), tenantScope(c), req, uploads)
	if err != nil {
		respondError(c, err, "Failed to register member")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

// validateMember godoc
// @Summary Check a membership card
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} dto.MemberValidationResponse
// @Failure 404 {object} ErrorResponse
// @Router /public/validate/{id} [get]
func (h *memberHandler) validateMember(c *gin.Context) {
	memberID, ok := idParam(c, "id")
	if !ok {
		return
	}
	validation, err := h.memberService.ValidateMember(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err, "Failed to validate member")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberValidationResponse(validation))
}

// listMembers godoc
// @Summary List members
// @Tags members
// @Produce json
// @Param status query string false "PENDING, ACTIVE, INACTIVE or REJECTED"
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.MemberResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/members [get]
func (h *memberHandler) listMembers(c *gin.Context) {
	var params dto.ListMembersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	members, err := h.memberService.ListMembers(c.Request.Context(), tenantScope(c), params)
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberListResponse(members))
}

// getMember godoc
// @Summary Get a member
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} dto.MemberResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/members/{id} [get]
func (h *memberHandler) getMember(c *gin.Context) {
	memberID, ok := idParam(c, "id")
	if !ok {
		return
	}
	member, err := h.memberService.GetMember(c.Request.Context(), tenantScope(c), memberID)
	if err != nil {
		respondError(c, err, "Failed to retrieve member")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

// updateMember godoc
// @Summary Update a member
// @Tags members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param member body dto.UpdateMemberRequest true "Fields to change"
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/members/{id} [put]
func (h *memberHandler) updateMember(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	memberID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	member, err := h.memberService.UpdateMember(c.Request.Context(), tenantScope(c), memberID, req, actor)
	if err != nil {
		respondError(c, err, "Failed to update member")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

// updateMemberStatus godoc
// @Summary Approve, reject or deactivate a member
// @Tags members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param status body dto.UpdateMemberStatusRequest true "New status"
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/members/{id}/status [patch]
func (h *memberHandler) updateMemberStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	memberID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateMemberStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	member, err := h.memberService.UpdateMemberStatus(c.Request.Context(), tenantScope(c), memberID, domain.MemberStatus(req.Status), actor)
	if err != nil {
		respondError(c, err, "Failed to update member status")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

// deleteMember godoc
// @Summary Delete a member
// @Tags members
// @Param id path int true "Member ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/members/{id} [delete]
func (h *memberHandler) deleteMember(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	memberID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.memberService.DeleteMember(c.Request.Context(), tenantScope(c), memberID, actor); err != nil {
		respondError(c, err, "Failed to delete member")
		return
	}
	c.Status(http.StatusNoContent)
}

// memberHistory godoc
// @Summary Ledger movements of a member
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} dto.MemberHistoryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/members/{id}/history [get]
func (h *memberHandler) memberHistory(c *gin.Context) {
	memberID, ok := idParam(c, "id")
	if !ok {
		return
	}
	history, err := h.cashFlowService.MemberHistory(c.Request.Context(), tenantScope(c), memberID)
	if err != nil {
		respondError(c, err, "Failed to load member history")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberHistoryResponse(history))
}
