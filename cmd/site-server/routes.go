package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/bcsi-site/api/swagger"
	"github.com/noah-isme/bcsi-site/internal/dto"
	"github.com/noah-isme/bcsi-site/internal/editor"
	"github.com/noah-isme/bcsi-site/internal/handler"
	"github.com/noah-isme/bcsi-site/internal/middleware"
	"github.com/noah-isme/bcsi-site/internal/models"
	"github.com/noah-isme/bcsi-site/internal/service"
	"github.com/noah-isme/bcsi-site/internal/web"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
	"github.com/noah-isme/bcsi-site/pkg/config"
	"github.com/noah-isme/bcsi-site/pkg/logger"
	corsmiddleware "github.com/noah-isme/bcsi-site/pkg/middleware/cors"
	"github.com/noah-isme/bcsi-site/pkg/middleware/ratelimit"
	reqidmiddleware "github.com/noah-isme/bcsi-site/pkg/middleware/requestid"
	"github.com/noah-isme/bcsi-site/pkg/response"
)

type auditLog interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type services struct {
	content       *service.ContentService
	auth          *service.AuthService
	announcements *service.AnnouncementService
	dates         *service.ImportantDateService
	personnel     *service.PersonnelService
	historical    *service.HistoricalPersonnelService
	organizations *service.OrganizationService
	pages         *service.PageContentService
	contact       *service.ContactService
	export        *service.ExportService
	metrics       *service.MetricsService
	audit         auditLog
}

type routerDeps struct {
	renderer *web.Renderer
	manager  *web.AnnouncementManager
	editors  *editor.Sessions[models.Announcement, dto.AnnouncementRequest]
	limiter  *ratelimit.Limiter
	checks   map[string]handler.Pinger
}

// crudRoutes is what registerRecords needs from a RecordHandler.
type crudRoutes interface {
	List(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
	Toggle(*gin.Context)
}

func registerRecords(g *gin.RouterGroup, h crudRoutes, toggle bool) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	if toggle {
		g.PATCH("/:id/toggle", h.Toggle)
	}
}

func newRouter(cfg *config.Config, logr *zap.Logger, s services, d routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(s.metrics, "/metrics", "/health", "/ready"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	ops := handler.NewMetricsHandler(s.metrics, d.checks)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerAPI(r.Group(cfg.APIPrefix), cfg, logr, s, d)
	registerSite(r, cfg, s, d)

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, cfg.APIPrefix) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
			return
		}
		d.renderer.Error(c, http.StatusNotFound, "The page you are looking for does not exist.")
	})

	return r
}

func registerAPI(api *gin.RouterGroup, cfg *config.Config, logr *zap.Logger, s services, d routerDeps) {
	public := handler.NewPublicHandler(s.content, s.contact)
	api.GET("/pages/home", public.Home)
	api.GET("/pages/about", public.About)
	api.GET("/pages/programs", public.Programs)
	api.GET("/pages/scholarships", public.Scholarships)
	api.GET("/pages/contact", public.ContactInfo)
	api.GET("/announcements", public.Announcements)
	api.GET("/personnel", public.Personnel)
	api.GET("/organizations", public.Organizations)
	api.GET("/organizations/:id", public.Organization)
	api.POST("/contact", d.limiter.Middleware(), public.SubmitContact)

	auth := handler.NewAuthHandler(s.auth)
	api.POST("/auth/login", d.limiter.Middleware(), auth.Login)

	secured := api.Group("", middleware.JWT(s.auth, cfg.Session.CookieName))
	secured.POST("/auth/logout", auth.Logout)
	secured.GET("/auth/me", auth.Me)
	secured.POST("/auth/change-password", auth.ChangePassword)

	admin := secured.Group("/admin", middleware.RequireRoles(middleware.ContentManagers...))
	exports := handler.NewExportHandler(s.export)

	announcements := admin.Group("/announcements", middleware.Audit(s.audit, "announcements", logr))
	announcements.GET("/export", exports.Download("announcements"))
	registerRecords(announcements, handler.NewRecordHandler[models.Announcement, dto.AnnouncementRequest](s.announcements, "announcement"), true)

	registerRecords(admin.Group("/important-dates", middleware.Audit(s.audit, s.dates.Resource(), logr)),
		handler.NewRecordHandler[models.ImportantDate, dto.ImportantDateRequest](s.dates, "important date"), true)

	personnel := admin.Group("/personnel", middleware.Audit(s.audit, s.personnel.Resource(), logr))
	personnel.GET("/export", exports.Download("personnel"))
	registerRecords(personnel, handler.NewRecordHandler[models.Personnel, dto.PersonnelRequest](s.personnel, "personnel"), true)

	registerRecords(admin.Group("/historical-personnel", middleware.Audit(s.audit, s.historical.Resource(), logr)),
		handler.NewRecordHandler[models.HistoricalPersonnel, dto.HistoricalPersonnelRequest](s.historical, "historical personnel"), true)

	organizations := admin.Group("/organizations", middleware.Audit(s.audit, s.organizations.Resource(), logr))
	registerRecords(organizations, handler.NewRecordHandler[models.Organization, dto.OrganizationRequest](s.organizations, "organization"), false)

	members := handler.NewMemberHandler(s.organizations)
	memberAudit := middleware.Audit(s.audit, "organization_members", logr)
	admin.GET("/organizations/:id/members", members.List)
	admin.POST("/organizations/:id/members", memberAudit, members.Create)
	admin.PUT("/members/:id", memberAudit, members.Update)
	admin.DELETE("/members/:id", memberAudit, members.Delete)

	pages := handler.NewPageContentHandler(s.pages)
	pageGroup := admin.Group("/pages", middleware.Audit(s.audit, "page_content", logr))
	pageGroup.GET("/home", pages.GetHome)
	pageGroup.PUT("/home", pages.SaveHome)
	pageGroup.GET("/about", pages.GetAbout)
	pageGroup.PUT("/about", pages.SaveAbout)

	inbox := handler.NewContactMessageHandler(s.contact)
	admin.GET("/contact-messages", inbox.List)
	admin.GET("/contact-messages/export", exports.Download("contact-messages"))
}

func registerSite(r *gin.Engine, cfg *config.Config, s services, d routerDeps) {
	r.StaticFS("/static", web.Static())

	html := r.Group("",
		middleware.CSRF(cfg.CSRF.Enabled, []byte(cfg.CSRF.Key), cfg.Session.CookieSecure),
		middleware.OptionalJWT(s.auth, cfg.Session.CookieName),
	)

	site := web.NewSite(s.content, s.contact, d.renderer)
	site.Register(html)
	html.POST("/contact", d.limiter.Middleware(), site.SubmitContact)

	auth := web.NewAuth(s.auth, web.SessionCookie{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure}, d.renderer, d.editors.Drop)
	html.GET("/login", auth.LoginForm)
	html.POST("/login", d.limiter.Middleware(), auth.Login)
	html.POST("/logout", auth.Logout)

	d.manager.Register(html.Group("", web.RequireSession(middleware.ContentManagers...)))
}
