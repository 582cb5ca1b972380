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

type contactMessageRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
}

// ContactService stores contact form submissions.
type ContactService struct {
	repo      contactMessageRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

func NewContactService(repo contactMessageRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{repo: repo, validator: newValidator(validate), metrics: metrics, logger: logger}
}

// Submit validates and persists one message from the public form.
func (s *ContactService) Submit(ctx context.Context, req dto.ContactRequest, ip string) (*models.ContactMessage, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if err := validatePayload(s.validator, req, "Please fill in your name, a valid email and a message"); err != nil {
		return nil, err
	}
	msg := &models.ContactMessage{FullName: req.FullName, Email: req.Email, Message: req.Message, IPAddress: ip}
	if err := s.repo.Create(ctx, msg); err != nil {
		s.logger.Error("failed to store contact message", zap.Error(err))
		return nil, appErrors.Internal(err, "Failed to send message")
	}
	s.metrics.RecordContactMessage()
	return msg, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	msgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list contact messages")
	}
	if msgs == nil {
		msgs = []models.ContactMessage{}
	}
	return msgs, nil
}
