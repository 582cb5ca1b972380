package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/bcsi-site/internal/editor"
	"github.com/noah-isme/bcsi-site/internal/handler"
	"github.com/noah-isme/bcsi-site/internal/repository"
	"github.com/noah-isme/bcsi-site/internal/service"
	"github.com/noah-isme/bcsi-site/internal/web"
	"github.com/noah-isme/bcsi-site/pkg/cache"
	"github.com/noah-isme/bcsi-site/pkg/config"
	"github.com/noah-isme/bcsi-site/pkg/database"
	"github.com/noah-isme/bcsi-site/pkg/jobs"
	"github.com/noah-isme/bcsi-site/pkg/logger"
	"github.com/noah-isme/bcsi-site/pkg/middleware/ratelimit"
)

// @title BCSI Site API
// @version 1.0.0
// @description Public content and admin API of the Bishop Carlos Santos Institute website
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, login lockout and logout revocation disabled", zap.Error(err))
		redisClient = nil
	}
	sessions := repository.NewSessionRepository(redisClient, logr)
	defer sessions.Close() //nolint:errcheck

	announcementRepo := repository.NewAnnouncementRepository(db)
	dateRepo := repository.NewImportantDateRepository(db)
	personnelRepo := repository.NewPersonnelRepository(db)
	historicalRepo := repository.NewHistoricalPersonnelRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)
	pageRepo := repository.NewPageContentRepository(db)
	contactRepo := repository.NewContactMessageRepository(db)
	userRepo := repository.NewUserRepository(db)

	metrics := service.NewMetricsService()
	validate := validator.New()

	content := service.NewContentService(service.ContentReaders{
		Announcements:  announcementRepo,
		ImportantDates: dateRepo,
		Personnel:      personnelRepo,
		Historical:     historicalRepo,
		Organizations:  organizationRepo,
		Pages:          pageRepo,
	}, cfg.Site, metrics, logr)

	authService := service.NewAuthService(userRepo, sessions, validate, metrics, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		MaxLoginAttempts:  cfg.Login.MaxAttempts,
		LockoutWindow:     cfg.Login.LockoutWindow,
	})

	announcements := service.NewAnnouncementService(announcementRepo, metrics, logr)
	personnel := service.NewPersonnelService(personnelRepo, validate, metrics, logr)
	contact := service.NewContactService(contactRepo, validate, metrics, logr)

	auditRecorder := service.NewAuditRecorder(userRepo, jobs.QueueConfig{
		Workers:    cfg.Audit.Workers,
		BufferSize: cfg.Audit.BufferSize,
		MaxRetries: cfg.Audit.MaxRetries,
		Logger:     logr,
	})
	auditRecorder.Start(context.Background())

	svcs := services{
		content:       content,
		auth:          authService,
		announcements: announcements,
		dates:         service.NewImportantDateService(dateRepo, validate, metrics, logr),
		personnel:     personnel,
		historical:    service.NewHistoricalPersonnelService(historicalRepo, validate, metrics, logr),
		organizations: service.NewOrganizationService(organizationRepo, validate, metrics, logr),
		pages:         service.NewPageContentService(pageRepo, validate, metrics, logr),
		contact:       contact,
		export:        service.NewExportService(announcements, personnel, contact, cfg.Site.Name, logr),
		metrics:       metrics,
		audit:         auditRecorder,
	}

	renderer, err := web.NewRenderer(cfg.Site.Name, logr)
	if err != nil {
		logr.Fatal("failed to parse templates", zap.Error(err))
	}

	editors := editor.NewSessions(func() *editor.AnnouncementEditor {
		return editor.NewAnnouncementEditor(editor.NewAnnouncementStore(announcements, announcementRepo), logr)
	})
	manager := web.NewAnnouncementManager(editors, renderer, logr)
	limiter := ratelimit.New(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, ratelimit.ClientIPKey, logr)

	router := newRouter(cfg, logr, svcs, routerDeps{
		renderer: renderer,
		manager:  manager,
		editors:  editors,
		limiter:  limiter,
		checks:   map[string]handler.Pinger{"postgres": db, "redis": sessions},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		limiter.Run(gctx, time.Minute)
		return nil
	})
	g.Go(func() error {
		manager.Prune(gctx, 10*time.Minute)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logr.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logr.Error("server stopped with error", zap.Error(err))
	}
	auditRecorder.Stop()
}
