package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/bcsi-site/internal/dto"
	"github.com/noah-isme/bcsi-site/internal/editor"
	"github.com/noah-isme/bcsi-site/internal/middleware"
	"github.com/noah-isme/bcsi-site/internal/models"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
)

const managerPath = "/admin/announcements"

// sessionIdleLimit bounds how long an abandoned editor stays in memory.
const sessionIdleLimit = 2 * time.Hour

// AnnouncementManager is the HTML front end of the announcement editor. Each admin
// gets an editor of their own.
type AnnouncementManager struct {
	sessions *editor.Sessions[models.Announcement, dto.AnnouncementRequest]
	renderer *Renderer
	logger   *zap.Logger
}

func NewAnnouncementManager(sessions *editor.Sessions[models.Announcement, dto.AnnouncementRequest], renderer *Renderer, logger *zap.Logger) *AnnouncementManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementManager{sessions: sessions, renderer: renderer, logger: logger}
}

type managerView struct {
	View       editor.View[models.Announcement, dto.AnnouncementRequest]
	Types      []string
	Submitting bool
}

// Register mounts the manager under a group that already enforces a session.
func (m *AnnouncementManager) Register(r gin.IRoutes) {
	r.GET(managerPath, m.Index)
	r.GET(managerPath+"/new", m.New)
	r.GET(managerPath+"/:id/edit", m.Edit)
	r.POST(managerPath+"/save", m.Save)
	r.POST(managerPath+"/cancel", m.Cancel)
	r.POST(managerPath+"/:id/delete", m.Delete)
	r.POST(managerPath+"/:id/toggle", m.Toggle)
	r.POST(managerPath+"/notice/dismiss", m.DismissNotice)
}

// Prune drops editors that have been idle for a while. It blocks until ctx is done.
func (m *AnnouncementManager) Prune(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.sessions.Prune(sessionIdleLimit); n > 0 {
				m.logger.Debug("pruned idle editors", zap.Int("count", n))
			}
		}
	}
}

func (m *AnnouncementManager) editorFor(c *gin.Context) *editor.AnnouncementEditor {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return nil
	}
	return m.sessions.For(claims.UserID)
}

// Index refetches the list and renders the table plus any open form.
func (m *AnnouncementManager) Index(c *gin.Context) {
	ed := m.editorFor(c)
	if ed == nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	_ = ed.Load(c.Request.Context())
	m.render(c, http.StatusOK, ed)
}

func (m *AnnouncementManager) New(c *gin.Context) {
	ed := m.editorFor(c)
	if ed == nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	if len(ed.View().Records) == 0 {
		_ = ed.Load(c.Request.Context())
	}
	if err := ed.OpenCreate(); err != nil {
		m.fail(c, ed, err)
		return
	}
	m.render(c, http.StatusOK, ed)
}

func (m *AnnouncementManager) Edit(c *gin.Context) {
	ed := m.editorFor(c)
	if ed == nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	if len(ed.View().Records) == 0 {
		_ = ed.Load(c.Request.Context())
	}
	if err := ed.OpenEdit(c.Param("id")); err != nil {
		m.fail(c, ed, err)
		return
	}
	m.render(c, http.StatusOK, ed)
}

// Save submits the open form. The outcome, success or not, is left on the editor
// as a notice and the browser is sent back to the list.
func (m *AnnouncementManager) Save(c *gin.Context) {
	ed := m.editorFor(c)
	if ed == nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	var form dto.AnnouncementRequest
	if err := c.ShouldBind(&form); err != nil {
		m.fail(c, ed, appErrors.Validation(err, "invalid announcement form"))
		return
	}
	if err := ed.Submit(c.Request.Context(), form); err != nil && (editor.IsBusy(err) || errors.Is(err, editor.ErrNoDialog)) {
		m.fail(c, ed, err)
		return
	}
	c.Redirect(http.StatusSeeOther, managerPath)
}

func (m *AnnouncementManager) Cancel(c *gin.Context) {
	ed := m.editorFor(c)
	if ed == nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	if err := ed.Cancel(); err != nil {
		m.fail(c, ed, err)
		return
	}
	c.Redirect(http.StatusSeeOther, managerPath)
}

// Delete requires confirm=yes in the form.
func (m *AnnouncementManager) Delete(c *gin.Context) {
	ed := m.editorFor(c)
	if ed == nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	err := ed.Delete(c.Request.Context(), c.Param("id"), c.PostForm("confirm") == "yes")
	if err != nil && (editor.IsBusy(err) || errors.Is(err, editor.ErrConfirmationRequired)) {
		m.fail(c, ed, err)
		return
	}
	c.Redirect(http.StatusSeeOther, managerPath)
}

func (m *AnnouncementManager) Toggle(c *gin.Context) {
	ed := m.editorFor(c)
	if ed == nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	if err := ed.ToggleActive(c.Request.Context(), c.Param("id")); err != nil && appErrors.FromError(err).Status < http.StatusInternalServerError {
		m.fail(c, ed, err)
		return
	}
	c.Redirect(http.StatusSeeOther, managerPath)
}

func (m *AnnouncementManager) DismissNotice(c *gin.Context) {
	if ed := m.editorFor(c); ed != nil {
		ed.DismissNotice()
	}
	c.Redirect(http.StatusSeeOther, managerPath)
}

// fail renders the list with a status matching err. Store failures never get
// here because the editor already turned them into notices.
func (m *AnnouncementManager) fail(c *gin.Context, ed *editor.AnnouncementEditor, err error) {
	appErr := appErrors.FromError(err)
	m.logger.Debug("announcement manager rejected request", zap.String("code", appErr.Code), zap.String("path", c.FullPath()))
	if appErr.Status == http.StatusNotFound {
		m.renderer.Error(c, http.StatusNotFound, appErr.Message)
		return
	}
	m.render(c, appErr.Status, ed)
}

func (m *AnnouncementManager) render(c *gin.Context, status int, ed *editor.AnnouncementEditor) {
	view := ed.View()
	m.renderer.HTML(c, status, "admin_announcements", "Manage announcements", managerView{
		View:       view,
		Types:      models.AnnouncementTypes,
		Submitting: view.State == editor.StateSubmitting,
	})
}
