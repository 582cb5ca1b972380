package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bcsi-site/internal/dto"
	"github.com/noah-isme/bcsi-site/internal/models"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
)

type recordStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
	Delete(ctx context.Context, id string) error
}

type activeSetter interface {
	SetActive(ctx context.Context, id string, active bool) error
}

// recordKind describes how one admin-managed table maps requests onto rows.
type recordKind[T any, R any] struct {
	resource string
	label    string
	build    func(req R) *T
	setID    func(record *T, id string)
	active   func(record T) *bool
}

// RecordService implements list, create, update, delete and toggle for a simple
// admin-managed table. Toggle is only available when the store can set the flag.
type RecordService[T any, R any] struct {
	kind      recordKind[T, R]
	store     recordStore[T]
	toggler   activeSetter
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

func newRecordService[T any, R any](kind recordKind[T, R], store recordStore[T], validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *RecordService[T, R] {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &RecordService[T, R]{
		kind:      kind,
		store:     store,
		validator: newValidator(validate),
		metrics:   metrics,
		logger:    logger,
	}
	if setter, ok := store.(activeSetter); ok && kind.active != nil {
		svc.toggler = setter
	}
	return svc
}

// Resource names the table for metrics and audit entries.
func (s *RecordService[T, R]) Resource() string { return s.kind.resource }

func (s *RecordService[T, R]) List(ctx context.Context) ([]T, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list "+s.kind.resource)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *RecordService[T, R]) Get(ctx context.Context, id string) (*T, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, s.kind.label+" not found", "failed to load "+s.kind.label)
	}
	return item, nil
}

func (s *RecordService[T, R]) Create(ctx context.Context, req R) (*T, error) {
	if err := validatePayload(s.validator, req, "invalid "+s.kind.label+" payload"); err != nil {
		return nil, err
	}
	item := s.kind.build(req)
	err := s.store.Create(ctx, item)
	s.metrics.RecordMutation(s.kind.resource, actionCreate, err)
	if err != nil {
		s.logger.Error("failed to create record", zap.String("resource", s.kind.resource), zap.Error(err))
		return nil, appErrors.Internal(err, "Failed to add "+s.kind.label)
	}
	return item, nil
}

func (s *RecordService[T, R]) Update(ctx context.Context, id string, req R) (*T, error) {
	if err := validatePayload(s.validator, req, "invalid "+s.kind.label+" payload"); err != nil {
		return nil, err
	}
	item := s.kind.build(req)
	s.kind.setID(item, id)
	err := s.store.Update(ctx, item)
	s.metrics.RecordMutation(s.kind.resource, actionUpdate, err)
	if err != nil {
		return nil, storeError(err, s.kind.label+" not found", "Failed to update "+s.kind.label)
	}
	return s.Get(ctx, id)
}

func (s *RecordService[T, R]) Delete(ctx context.Context, id string) error {
	err := s.store.Delete(ctx, id)
	s.metrics.RecordMutation(s.kind.resource, actionDelete, err)
	return storeError(err, s.kind.label+" not found", "Failed to delete "+s.kind.label)
}

// Toggle flips the effective activation; a NULL flag counts as active and becomes false.
func (s *RecordService[T, R]) Toggle(ctx context.Context, id string) (*dto.ToggleResult, error) {
	if s.toggler == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, s.kind.label+" cannot be toggled")
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := models.Toggled(s.kind.active(*item))
	err = s.toggler.SetActive(ctx, id, next)
	s.metrics.RecordMutation(s.kind.resource, actionToggle, err)
	if err != nil {
		return nil, storeError(err, s.kind.label+" not found", "Failed to update "+s.kind.label)
	}
	return &dto.ToggleResult{ID: id, IsActive: next}, nil
}

func activeOrDefault(flag *bool) *bool {
	if flag == nil {
		return models.BoolPtr(true)
	}
	return flag
}

type (
	ImportantDateService       = RecordService[models.ImportantDate, dto.ImportantDateRequest]
	PersonnelService           = RecordService[models.Personnel, dto.PersonnelRequest]
	HistoricalPersonnelService = RecordService[models.HistoricalPersonnel, dto.HistoricalPersonnelRequest]
)

func NewImportantDateService(store recordStore[models.ImportantDate], validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ImportantDateService {
	return newRecordService(recordKind[models.ImportantDate, dto.ImportantDateRequest]{
		resource: "important_dates",
		label:    "important date",
		build: func(req dto.ImportantDateRequest) *models.ImportantDate {
			return &models.ImportantDate{
				Event:        strings.TrimSpace(req.Event),
				Date:         strings.TrimSpace(req.Date),
				DisplayOrder: req.DisplayOrder,
				IsActive:     activeOrDefault(req.IsActive),
			}
		},
		setID:  func(d *models.ImportantDate, id string) { d.ID = id },
		active: func(d models.ImportantDate) *bool { return d.IsActive },
	}, store, validate, metrics, logger)
}

func NewPersonnelService(store recordStore[models.Personnel], validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *PersonnelService {
	return newRecordService(recordKind[models.Personnel, dto.PersonnelRequest]{
		resource: "personnel",
		label:    "personnel",
		build: func(req dto.PersonnelRequest) *models.Personnel {
			return &models.Personnel{
				Name:         strings.TrimSpace(req.Name),
				Position:     strings.TrimSpace(req.Position),
				Department:   trimPtr(req.Department),
				Description:  trimPtr(req.Description),
				PhotoURL:     trimPtr(req.PhotoURL),
				DisplayOrder: req.DisplayOrder,
				IsActive:     activeOrDefault(req.IsActive),
			}
		},
		setID:  func(p *models.Personnel, id string) { p.ID = id },
		active: func(p models.Personnel) *bool { return p.IsActive },
	}, store, validate, metrics, logger)
}

func NewHistoricalPersonnelService(store recordStore[models.HistoricalPersonnel], validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *HistoricalPersonnelService {
	return newRecordService(recordKind[models.HistoricalPersonnel, dto.HistoricalPersonnelRequest]{
		resource: "historical_personnel",
		label:    "historical personnel",
		build: func(req dto.HistoricalPersonnelRequest) *models.HistoricalPersonnel {
			return &models.HistoricalPersonnel{
				Name:         strings.TrimSpace(req.Name),
				Position:     strings.TrimSpace(req.Position),
				Years:        trimPtr(req.Years),
				PhotoURL:     trimPtr(req.PhotoURL),
				Category:     req.Category,
				DisplayOrder: req.DisplayOrder,
				IsActive:     activeOrDefault(req.IsActive),
			}
		},
		setID:  func(h *models.HistoricalPersonnel, id string) { h.ID = id },
		active: func(h models.HistoricalPersonnel) *bool { return h.IsActive },
	}, store, validate, metrics, logger)
}
