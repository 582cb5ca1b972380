// Package web renders the public site and the announcements manager as server-side HTML.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"github.com/noah-isme/bcsi-site/internal/content"
	"github.com/noah-isme/bcsi-site/internal/middleware"
	"github.com/noah-isme/bcsi-site/internal/models"
	"github.com/noah-isme/bcsi-site/internal/presenter"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layoutFile = "templates/layout.html"

// markdown renders stored page text. Raw HTML in the source is dropped.
var markdown = goldmark.New(goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()))

// Renderer holds one parsed template set per page, each sharing the layout.
type Renderer struct {
	siteName string
	pages    map[string]*template.Template
	logger   *zap.Logger
}

// View is what every template receives.
type View struct {
	SiteName  string
	Title     string
	Path      string
	Nav       []content.NavLink
	Contact   content.ContactInfo
	Tagline   string
	Year      int
	CSRFField template.HTML
	User      *models.JWTClaims
	Page      any
}

// NewRenderer parses the embedded templates.
func NewRenderer(siteName string, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	base, err := template.New("layout.html").Funcs(funcMap()).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		set, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := set.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), ".html")
		pages[name] = set
	}
	return &Renderer{siteName: siteName, pages: pages, logger: logger}, nil
}

// HTML renders page inside the layout. Rendering goes through a buffer so a
// template error never leaves a half-written page behind.
func (r *Renderer) HTML(c *gin.Context, status int, page, title string, data any) {
	set, ok := r.pages[page]
	if !ok {
		r.logger.Error("unknown template", zap.String("page", page))
		c.String(http.StatusInternalServerError, "template not found")
		return
	}

	view := View{
		SiteName:  r.siteName,
		Title:     title,
		Path:      c.Request.URL.Path,
		Nav:       content.Navigation,
		Contact:   content.Contact,
		Tagline:   content.Tagline,
		Year:      time.Now().Year(),
		CSRFField: csrf.TemplateField(c.Request),
		User:      middleware.ClaimsFrom(c),
		Page:      data,
	}

	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, "layout", view); err != nil {
		r.logger.Error("render template failed", zap.String("page", page), zap.Error(err))
		c.String(http.StatusInternalServerError, "render failure")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// Error renders the error page with a human message.
func (r *Renderer) Error(c *gin.Context, status int, message string) {
	r.HTML(c, status, "error", http.StatusText(status), gin.H{"Status": status, "Message": message})
}

// Static serves the stylesheet and other bundled assets under /static.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"markdown":   renderMarkdown,
		"embed":      func(m models.Media) template.HTML { return template.HTML(m.Value) },
		"badgeColor": presenter.BadgeColor,
		"active":     models.IsActive,
		"isCurrent": func(current, path string) bool {
			if path == "/" {
				return current == "/"
			}
			return strings.HasPrefix(current, path)
		},
	}
}

func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
