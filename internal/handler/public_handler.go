package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bcsi-site/internal/dto"
	"github.com/noah-isme/bcsi-site/internal/models"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
	"github.com/noah-isme/bcsi-site/pkg/response"
)

// PageBuilder assembles the public page views.
type PageBuilder interface {
	Home(ctx context.Context) dto.HomePage
	About(ctx context.Context) dto.AboutPage
	Programs() dto.ProgramsPage
	Scholarships() dto.ScholarshipsPage
	Contact() dto.ContactPage
	Personnel(ctx context.Context) dto.PersonnelPage
	Announcements(ctx context.Context) dto.AnnouncementsPage
	Organizations(ctx context.Context) dto.OrganizationsPage
	OrganizationDetail(ctx context.Context, id string) (*dto.OrganizationDetailPage, error)
}

// ContactSubmitter stores contact form messages.
type ContactSubmitter interface {
	Submit(ctx context.Context, req dto.ContactRequest, ip string) (*models.ContactMessage, error)
}

// PublicHandler serves the read-only page API.
type PublicHandler struct {
	pages   PageBuilder
	contact ContactSubmitter
}

func NewPublicHandler(pages PageBuilder, contact ContactSubmitter) *PublicHandler {
	return &PublicHandler{pages: pages, contact: contact}
}

// Home godoc
// @Summary Home page content
// @Tags Pages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /pages/home [get]
func (h *PublicHandler) Home(c *gin.Context) {
	response.OK(c, h.pages.Home(c.Request.Context()))
}

// About godoc
// @Summary About page with history, mission, vision and former leaders
// @Tags Pages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /pages/about [get]
func (h *PublicHandler) About(c *gin.Context) {
	response.OK(c, h.pages.About(c.Request.Context()))
}

// Programs godoc
// @Summary Academic programs
// @Tags Pages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /pages/programs [get]
func (h *PublicHandler) Programs(c *gin.Context) {
	response.OK(c, h.pages.Programs())
}

// Scholarships godoc
// @Summary Scholarship programmes
// @Tags Pages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /pages/scholarships [get]
func (h *PublicHandler) Scholarships(c *gin.Context) {
	response.OK(c, h.pages.Scholarships())
}

// ContactInfo godoc
// @Summary School contact details
// @Tags Pages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /pages/contact [get]
func (h *PublicHandler) ContactInfo(c *gin.Context) {
	response.OK(c, h.pages.Contact())
}

// Personnel godoc
// @Summary Current personnel grouped by section and department
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /personnel [get]
func (h *PublicHandler) Personnel(c *gin.Context) {
	response.OK(c, h.pages.Personnel(c.Request.Context()))
}

// Announcements godoc
// @Summary Active announcements and important dates
// @Tags Announcements
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /announcements [get]
func (h *PublicHandler) Announcements(c *gin.Context) {
	response.OK(c, h.pages.Announcements(c.Request.Context()))
}

// Organizations godoc
// @Summary Organizations grouped by type
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /organizations [get]
func (h *PublicHandler) Organizations(c *gin.Context) {
	response.OK(c, h.pages.Organizations(c.Request.Context()))
}

// Organization godoc
// @Summary One organization with its grouped roster
// @Tags Directory
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /organizations/{id} [get]
func (h *PublicHandler) Organization(c *gin.Context) {
	page, err := h.pages.OrganizationDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// SubmitContact godoc
// @Summary Send a message through the contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param payload body dto.ContactRequest true "Message"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /contact [post]
func (h *PublicHandler) SubmitContact(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid contact payload"))
		return
	}
	msg, err := h.contact.Submit(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": msg.ID, "message": "Thank you! Your message has been sent."})
}
