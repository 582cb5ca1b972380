package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bcsi-site/internal/dto"
	"github.com/noah-isme/bcsi-site/internal/models"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
	"github.com/noah-isme/bcsi-site/pkg/response"
)

// MemberUseCases manages organization rosters.
type MemberUseCases interface {
	ListMembers(ctx context.Context, orgID string) ([]models.OrganizationMember, error)
	CreateMember(ctx context.Context, orgID string, req dto.OrganizationMemberRequest) (*models.OrganizationMember, error)
	UpdateMember(ctx context.Context, id string, req dto.OrganizationMemberRequest) (*models.OrganizationMember, error)
	DeleteMember(ctx context.Context, id string) error
}

// MemberHandler serves /admin/organizations/:id/members and /admin/members/:id.
type MemberHandler struct {
	service MemberUseCases
}

func NewMemberHandler(svc MemberUseCases) *MemberHandler {
	return &MemberHandler{service: svc}
}

// List godoc
// @Summary List the members of an organization
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/organizations/{id}/members [get]
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.service.ListMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, members, map[string]interface{}{"total": len(members)})
}

// Create godoc
// @Summary Add a member to an organization
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param payload body dto.OrganizationMemberRequest true "Member"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/organizations/{id}/members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.OrganizationMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid member payload"))
		return
	}
	member, err := h.service.CreateMember(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Update godoc
// @Summary Update a member
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param payload body dto.OrganizationMemberRequest true "Member"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/members/{id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	var req dto.OrganizationMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid member payload"))
		return
	}
	member, err := h.service.UpdateMember(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, member)
}

// Delete godoc
// @Summary Remove a member
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 204
// @Router /admin/members/{id} [delete]
func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
