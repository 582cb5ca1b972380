package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bcsi-site/internal/dto"
	"github.com/noah-isme/bcsi-site/internal/editor"
	"github.com/noah-isme/bcsi-site/internal/handler"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
)

// Site serves the public pages.
type Site struct {
	pages    handler.PageBuilder
	contact  handler.ContactSubmitter
	renderer *Renderer
}

func NewSite(pages handler.PageBuilder, contact handler.ContactSubmitter, renderer *Renderer) *Site {
	return &Site{pages: pages, contact: contact, renderer: renderer}
}

type contactView struct {
	Info   dto.ContactPage
	Form   dto.ContactRequest
	Notice *editor.Notice
}

// Register mounts the public routes on r.
func (s *Site) Register(r gin.IRoutes) {
	r.GET("/", s.Home)
	r.GET("/about", s.About)
	r.GET("/programs", s.Programs)
	r.GET("/scholarships", s.Scholarships)
	r.GET("/personnel", s.Personnel)
	r.GET("/organizations", s.Organizations)
	r.GET("/organizations/:id", s.Organization)
	r.GET("/announcements", s.Announcements)
	r.GET("/contact", s.ContactForm)
}

func (s *Site) Home(c *gin.Context) {
	page := s.pages.Home(c.Request.Context())
	s.renderer.HTML(c, http.StatusOK, "home", page.Title, page)
}

func (s *Site) About(c *gin.Context) {
	page := s.pages.About(c.Request.Context())
	s.renderer.HTML(c, http.StatusOK, "about", page.Title, page)
}

func (s *Site) Programs(c *gin.Context) {
	page := s.pages.Programs()
	s.renderer.HTML(c, http.StatusOK, "programs", page.Title, page)
}

func (s *Site) Scholarships(c *gin.Context) {
	page := s.pages.Scholarships()
	s.renderer.HTML(c, http.StatusOK, "scholarships", page.Title, page)
}

func (s *Site) Personnel(c *gin.Context) {
	page := s.pages.Personnel(c.Request.Context())
	s.renderer.HTML(c, http.StatusOK, "personnel", page.Title, page)
}

func (s *Site) Organizations(c *gin.Context) {
	page := s.pages.Organizations(c.Request.Context())
	s.renderer.HTML(c, http.StatusOK, "organizations", page.Title, page)
}

// Organization renders one organization. Any failure to load it shows "Organization Not Found".
func (s *Site) Organization(c *gin.Context) {
	page, err := s.pages.OrganizationDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := appErrors.FromError(err)
		s.renderer.Error(c, appErr.Status, appErr.Message)
		return
	}
	s.renderer.HTML(c, http.StatusOK, "organization", page.Organization.Name, page)
}

func (s *Site) Announcements(c *gin.Context) {
	page := s.pages.Announcements(c.Request.Context())
	s.renderer.HTML(c, http.StatusOK, "announcements", page.Title, page)
}

func (s *Site) ContactForm(c *gin.Context) {
	s.renderContact(c, http.StatusOK, contactView{})
}

// SubmitContact stores the message and re-renders the form with the outcome.
func (s *Site) SubmitContact(c *gin.Context) {
	var form dto.ContactRequest
	if err := c.ShouldBind(&form); err != nil {
		s.renderContact(c, http.StatusBadRequest, contactView{Form: form, Notice: &editor.Notice{Kind: editor.NoticeError, Message: "Please check the form and try again"}})
		return
	}
	if _, err := s.contact.Submit(c.Request.Context(), form, c.ClientIP()); err != nil {
		appErr := appErrors.FromError(err)
		message := appErr.Message
		if appErr.Status >= http.StatusInternalServerError {
			message = "Your message could not be sent. Please try again later."
		}
		s.renderContact(c, appErr.Status, contactView{Form: form, Notice: &editor.Notice{Kind: editor.NoticeError, Message: message}})
		return
	}
	s.renderContact(c, http.StatusOK, contactView{Notice: &editor.Notice{Kind: editor.NoticeSuccess, Message: "Thank you! Your message has been sent."}})
}

func (s *Site) renderContact(c *gin.Context, status int, view contactView) {
	view.Info = s.pages.Contact()
	s.renderer.HTML(c, status, "contact", view.Info.Title, view)
}
