package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/bcsi-site/internal/dto"
	"github.com/noah-isme/bcsi-site/internal/models"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
)

// AnnouncementRequiredMessage is reported when any required announcement field is blank.
const AnnouncementRequiredMessage = "Title, content, and date are required"

type announcementRepository interface {
	List(ctx context.Context) ([]models.Announcement, error)
	GetByID(ctx context.Context, id string) (*models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) error
	Update(ctx context.Context, announcement *models.Announcement) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// AnnouncementService handles the admin side of announcements.
type AnnouncementService struct {
	repo    announcementRepository
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(repo announcementRepository, metrics *MetricsService, logger *zap.Logger) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{repo: repo, metrics: metrics, logger: logger}
}

// BuildAnnouncement validates req and converts it into a record. Title, content and
// date must be non-blank; a blank type becomes General.
func BuildAnnouncement(req dto.AnnouncementRequest) (*models.Announcement, error) {
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Content)
	rawDate := strings.TrimSpace(req.Date)
	if title == "" || body == "" || rawDate == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, AnnouncementRequiredMessage)
	}
	date, err := models.ParseDate(rawDate)
	if err != nil {
		return nil, appErrors.Validation(err, "date must be formatted as YYYY-MM-DD")
	}
	kind := strings.TrimSpace(req.Type)
	if kind == "" {
		kind = models.AnnouncementTypeGeneral
	}
	return &models.Announcement{Title: title, Content: body, Date: date, Type: kind, IsActive: req.IsActive}, nil
}

// List returns every announcement, newest date first.
func (s *AnnouncementService) List(ctx context.Context) ([]models.Announcement, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list announcements")
	}
	return items, nil
}

func (s *AnnouncementService) Get(ctx context.Context, id string) (*models.Announcement, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "announcement not found", "failed to load announcement")
	}
	return item, nil
}

// Create inserts a new announcement. A missing activation flag is stored as active.
func (s *AnnouncementService) Create(ctx context.Context, req dto.AnnouncementRequest) (*models.Announcement, error) {
	item, err := BuildAnnouncement(req)
	if err != nil {
		return nil, err
	}
	if item.IsActive == nil {
		item.IsActive = models.BoolPtr(true)
	}
	err = s.repo.Create(ctx, item)
	s.metrics.RecordMutation("announcements", actionCreate, err)
	if err != nil {
		s.logger.Error("failed to create announcement", zap.Error(err))
		return nil, appErrors.Internal(err, "Failed to add announcement")
	}
	return item, nil
}

// Update rewrites the editable fields of an announcement. The activation flag is left alone.
func (s *AnnouncementService) Update(ctx context.Context, id string, req dto.AnnouncementRequest) (*models.Announcement, error) {
	item, err := BuildAnnouncement(req)
	if err != nil {
		return nil, err
	}
	item.ID = id
	err = s.repo.Update(ctx, item)
	s.metrics.RecordMutation("announcements", actionUpdate, err)
	if err != nil {
		return nil, storeError(err, "announcement not found", "Failed to update announcement")
	}
	return s.Get(ctx, id)
}

func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	s.metrics.RecordMutation("announcements", actionDelete, err)
	return storeError(err, "announcement not found", "Failed to delete announcement")
}

// Toggle flips the effective activation of an announcement and persists the explicit value.
func (s *AnnouncementService) Toggle(ctx context.Context, id string) (*dto.ToggleResult, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := models.Toggled(item.IsActive)
	err = s.repo.SetActive(ctx, id, next)
	s.metrics.RecordMutation("announcements", actionToggle, err)
	if err != nil {
		return nil, storeError(err, "announcement not found", "Failed to update announcement")
	}
	return &dto.ToggleResult{ID: id, IsActive: next}, nil
}
