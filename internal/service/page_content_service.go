package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bcsi-site/internal/dto"
	"github.com/noah-isme/bcsi-site/internal/models"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
)

type pageContentRepository interface {
	pageContentReader
	SaveAbout(ctx context.Context, content *models.AboutContent) error
	SaveHome(ctx context.Context, content *models.HomeContent) error
}

// PageContentService edits the singleton rows behind the home and about pages.
type PageContentService struct {
	repo      pageContentRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

func NewPageContentService(repo pageContentRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *PageContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageContentService{repo: repo, validator: newValidator(validate), metrics: metrics, logger: logger}
}

// Home returns the stored row, or an empty one when none exists yet.
func (s *PageContentService) Home(ctx context.Context) (*models.HomeContent, error) {
	home, err := s.repo.GetHome(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load home content")
	}
	if home == nil {
		home = &models.HomeContent{}
	}
	return home, nil
}

func (s *PageContentService) About(ctx context.Context) (*models.AboutContent, error) {
	about, err := s.repo.GetAbout(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load about content")
	}
	if about == nil {
		about = &models.AboutContent{}
	}
	return about, nil
}

// SaveHome replaces the home row, creating it on first save. Blank fields are stored
// as NULL so the public page falls back to its defaults.
func (s *PageContentService) SaveHome(ctx context.Context, req dto.HomeContentRequest) (*models.HomeContent, error) {
	if err := validatePayload(s.validator, req, "invalid home content payload"); err != nil {
		return nil, err
	}
	current, err := s.Home(ctx)
	if err != nil {
		return nil, err
	}
	home := &models.HomeContent{
		ID:             current.ID,
		HeroTitle:      trimPtr(req.HeroTitle),
		HeroSubtitle:   trimPtr(req.HeroSubtitle),
		HeroImageURL:   trimPtr(req.HeroImageURL),
		WhyChooseTitle: trimPtr(req.WhyChooseTitle),
	}
	err = s.repo.SaveHome(ctx, home)
	s.metrics.RecordMutation("home_content", actionUpdate, err)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to save home content")
	}
	return home, nil
}

func (s *PageContentService) SaveAbout(ctx context.Context, req dto.AboutContentRequest) (*models.AboutContent, error) {
	if err := validatePayload(s.validator, req, "invalid about content payload"); err != nil {
		return nil, err
	}
	current, err := s.About(ctx)
	if err != nil {
		return nil, err
	}
	about := &models.AboutContent{
		ID:           current.ID,
		History:      trimPtr(req.History),
		Mission:      trimPtr(req.Mission),
		Vision:       trimPtr(req.Vision),
		CoreValues:   models.CoreValues(req.CoreValues),
		CampusMapURL: trimPtr(req.CampusMapURL),
	}
	err = s.repo.SaveAbout(ctx, about)
	s.metrics.RecordMutation("about_content", actionUpdate, err)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to save about content")
	}
	return about, nil
}
