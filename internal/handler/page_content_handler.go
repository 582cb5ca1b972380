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

// PageContentUseCases edits the singleton home and about rows.
type PageContentUseCases interface {
	Home(ctx context.Context) (*models.HomeContent, error)
	About(ctx context.Context) (*models.AboutContent, error)
	SaveHome(ctx context.Context, req dto.HomeContentRequest) (*models.HomeContent, error)
	SaveAbout(ctx context.Context, req dto.AboutContentRequest) (*models.AboutContent, error)
}

type PageContentHandler struct {
	service PageContentUseCases
}

func NewPageContentHandler(svc PageContentUseCases) *PageContentHandler {
	return &PageContentHandler{service: svc}
}

// GetHome godoc
// @Summary Stored home page content
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/pages/home [get]
func (h *PageContentHandler) GetHome(c *gin.Context) {
	home, err := h.service.Home(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, home)
}

// SaveHome godoc
// @Summary Replace home page content
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.HomeContentRequest true "Home content"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/pages/home [put]
func (h *PageContentHandler) SaveHome(c *gin.Context) {
	var req dto.HomeContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid home content payload"))
		return
	}
	home, err := h.service.SaveHome(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, home)
}

// GetAbout godoc
// @Summary Stored about page content
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/pages/about [get]
func (h *PageContentHandler) GetAbout(c *gin.Context) {
	about, err := h.service.About(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, about)
}

// SaveAbout godoc
// @Summary Replace about page content
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.AboutContentRequest true "About content"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/pages/about [put]
func (h *PageContentHandler) SaveAbout(c *gin.Context) {
	var req dto.AboutContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid about content payload"))
		return
	}
	about, err := h.service.SaveAbout(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, about)
}
