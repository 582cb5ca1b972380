package editor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/bcsi-site/internal/dto"
	"github.com/noah-isme/bcsi-site/internal/models"
	"github.com/noah-isme/bcsi-site/internal/service"
)

// AnnouncementEditor edits the announcements table.
type AnnouncementEditor = Editor[models.Announcement, dto.AnnouncementRequest]

type announcementWriter interface {
	List(ctx context.Context) ([]models.Announcement, error)
	Create(ctx context.Context, req dto.AnnouncementRequest) (*models.Announcement, error)
	Update(ctx context.Context, id string, req dto.AnnouncementRequest) (*models.Announcement, error)
	Delete(ctx context.Context, id string) error
}

type activeWriter interface {
	SetActive(ctx context.Context, id string, active bool) error
}

// AnnouncementStore adapts the announcement service and repository to Store.
// Activation is written straight to the repository because the editor has
// already decided the new value from its own list.
type AnnouncementStore struct {
	svc    announcementWriter
	active activeWriter
}

func NewAnnouncementStore(svc announcementWriter, active activeWriter) *AnnouncementStore {
	return &AnnouncementStore{svc: svc, active: active}
}

func (s *AnnouncementStore) List(ctx context.Context) ([]models.Announcement, error) {
	return s.svc.List(ctx)
}

func (s *AnnouncementStore) Insert(ctx context.Context, form dto.AnnouncementRequest) error {
	_, err := s.svc.Create(ctx, form)
	return err
}

func (s *AnnouncementStore) Update(ctx context.Context, id string, form dto.AnnouncementRequest) error {
	_, err := s.svc.Update(ctx, id, form)
	return err
}

func (s *AnnouncementStore) Delete(ctx context.Context, id string) error {
	return s.svc.Delete(ctx, id)
}

func (s *AnnouncementStore) SetActive(ctx context.Context, id string, active bool) error {
	return s.active.SetActive(ctx, id, active)
}

// AnnouncementForm maps announcements to the admin form.
type AnnouncementForm struct {
	Now func() time.Time
}

// Blank is today's date with the General type.
func (f AnnouncementForm) Blank() dto.AnnouncementRequest {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	return dto.AnnouncementRequest{Date: now().Format(models.DateLayout), Type: models.AnnouncementTypeGeneral}
}

func (f AnnouncementForm) FromRecord(a models.Announcement) dto.AnnouncementRequest {
	kind := a.Type
	if kind == "" {
		kind = models.AnnouncementTypeGeneral
	}
	return dto.AnnouncementRequest{Title: a.Title, Content: a.Content, Date: a.Date.String(), Type: kind, IsActive: a.IsActive}
}

func (f AnnouncementForm) ID(a models.Announcement) string { return a.ID }

func (f AnnouncementForm) Active(a models.Announcement) *bool { return a.IsActive }

func (f AnnouncementForm) Validate(form dto.AnnouncementRequest) error {
	_, err := service.BuildAnnouncement(form)
	return err
}

// NewAnnouncementEditor wires an announcement editor.
func NewAnnouncementEditor(store *AnnouncementStore, logger *zap.Logger) *AnnouncementEditor {
	return New[models.Announcement, dto.AnnouncementRequest]("announcement", store, AnnouncementForm{}, logger)
}
