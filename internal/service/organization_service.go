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

type organizationRepository interface {
	recordStore[models.Organization]
	ListMembers(ctx context.Context, orgID string) ([]models.OrganizationMember, error)
	GetMember(ctx context.Context, id string) (*models.OrganizationMember, error)
	CreateMember(ctx context.Context, member *models.OrganizationMember) error
	UpdateMember(ctx context.Context, member *models.OrganizationMember) error
	DeleteMember(ctx context.Context, id string) error
}

// OrganizationService manages organizations and their rosters.
type OrganizationService struct {
	*RecordService[models.Organization, dto.OrganizationRequest]
	repo organizationRepository
}

func NewOrganizationService(repo organizationRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *OrganizationService {
	records := newRecordService(recordKind[models.Organization, dto.OrganizationRequest]{
		resource: "organizations",
		label:    "organization",
		build: func(req dto.OrganizationRequest) *models.Organization {
			return &models.Organization{
				Name:            strings.TrimSpace(req.Name),
				Type:            strings.TrimSpace(req.Type),
				Description:     trimPtr(req.Description),
				TeacherInCharge: trimPtr(req.TeacherInCharge),
			}
		},
		setID: func(o *models.Organization, id string) { o.ID = id },
	}, repo, validate, metrics, logger)
	return &OrganizationService{RecordService: records, repo: repo}
}

// ListMembers returns the roster of an existing organization.
func (s *OrganizationService) ListMembers(ctx context.Context, orgID string) ([]models.OrganizationMember, error) {
	if _, err := s.Get(ctx, orgID); err != nil {
		return nil, err
	}
	members, err := s.repo.ListMembers(ctx, orgID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list members")
	}
	if members == nil {
		members = []models.OrganizationMember{}
	}
	return members, nil
}

func (s *OrganizationService) CreateMember(ctx context.Context, orgID string, req dto.OrganizationMemberRequest) (*models.OrganizationMember, error) {
	if err := validatePayload(s.validator, req, "invalid member payload"); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, orgID); err != nil {
		return nil, err
	}
	member := buildMember(req)
	member.OrganizationID = orgID
	err := s.repo.CreateMember(ctx, member)
	s.metrics.RecordMutation("organization_members", actionCreate, err)
	if err != nil {
		return nil, appErrors.Internal(err, "Failed to add member")
	}
	return member, nil
}

func (s *OrganizationService) UpdateMember(ctx context.Context, id string, req dto.OrganizationMemberRequest) (*models.OrganizationMember, error) {
	if err := validatePayload(s.validator, req, "invalid member payload"); err != nil {
		return nil, err
	}
	member := buildMember(req)
	member.ID = id
	err := s.repo.UpdateMember(ctx, member)
	s.metrics.RecordMutation("organization_members", actionUpdate, err)
	if err != nil {
		return nil, storeError(err, "member not found", "Failed to update member")
	}
	updated, err := s.repo.GetMember(ctx, id)
	if err != nil {
		return nil, storeError(err, "member not found", "failed to load member")
	}
	return updated, nil
}

func (s *OrganizationService) DeleteMember(ctx context.Context, id string) error {
	err := s.repo.DeleteMember(ctx, id)
	s.metrics.RecordMutation("organization_members", actionDelete, err)
	return storeError(err, "member not found", "Failed to delete member")
}

func buildMember(req dto.OrganizationMemberRequest) *models.OrganizationMember {
	return &models.OrganizationMember{
		Name:           strings.TrimSpace(req.Name),
		Position:       trimPtr(req.Position),
		PhotoURL:       trimPtr(req.PhotoURL),
		DisplayOrder:   req.DisplayOrder,
		MemberCategory: trimPtr(req.MemberCategory),
	}
}
