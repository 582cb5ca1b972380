package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bcsi-site/internal/models"
)

const (
	organizationColumns = `id, name, type, description, teacher_in_charge`
	memberColumns       = `id, organization_id, name, position, photo_url, display_order, member_category`
)

// OrganizationRepository persists organizations and their member rosters.
type OrganizationRepository struct {
	db *sqlx.DB
}

func NewOrganizationRepository(db *sqlx.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// List returns organizations grouped by type then alphabetically.
func (r *OrganizationRepository) List(ctx context.Context) ([]models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations ORDER BY type ASC, name ASC`
	var orgs []models.Organization
	if err := r.db.SelectContext(ctx, &orgs, query); err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return orgs, nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`
	var org models.Organization
	if err := r.db.GetContext(ctx, &org, query, id); err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	const query = `INSERT INTO organizations (id, name, type, description, teacher_in_charge) VALUES (:id, :name, :type, :description, :teacher_in_charge)`
	if _, err := r.db.NamedExecContext(ctx, query, org); err != nil {
		return fmt.Errorf("create organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	const query = `UPDATE organizations SET name = :name, type = :type, description = :description, teacher_in_charge = :teacher_in_charge WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, org)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	return expectAffected(res, "update organization")
}

// Delete removes an organization; members go with it through the foreign key cascade.
func (r *OrganizationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	return expectAffected(res, "delete organization")
}

// CountMembers returns roster sizes keyed by organization id.
func (r *OrganizationRepository) CountMembers(ctx context.Context, orgIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(orgIDs))
	if len(orgIDs) == 0 {
		return counts, nil
	}
	const query = `SELECT organization_id, COUNT(*) AS total FROM organization_members WHERE organization_id = ANY($1) GROUP BY organization_id`
	var rows []struct {
		OrganizationID string `db:"organization_id"`
		Total          int    `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, pqStringArray(orgIDs)); err != nil {
		return nil, fmt.Errorf("count organization members: %w", err)
	}
	for _, row := range rows {
		counts[row.OrganizationID] = row.Total
	}
	return counts, nil
}

// ListMembers returns the roster of one organization by display rank.
func (r *OrganizationRepository) ListMembers(ctx context.Context, orgID string) ([]models.OrganizationMember, error) {
	query := `SELECT ` + memberColumns + ` FROM organization_members WHERE organization_id = $1 ORDER BY display_order ASC NULLS LAST, name ASC`
	var members []models.OrganizationMember
	if err := r.db.SelectContext(ctx, &members, query, orgID); err != nil {
		return nil, fmt.Errorf("list organization members: %w", err)
	}
	return members, nil
}

func (r *OrganizationRepository) GetMember(ctx context.Context, id string) (*models.OrganizationMember, error) {
	query := `SELECT ` + memberColumns + ` FROM organization_members WHERE id = $1`
	var member models.OrganizationMember
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *OrganizationRepository) CreateMember(ctx context.Context, member *models.OrganizationMember) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	const query = `INSERT INTO organization_members (id, organization_id, name, position, photo_url, display_order, member_category)
VALUES (:id, :organization_id, :name, :position, :photo_url, :display_order, :member_category)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("create organization member: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) UpdateMember(ctx context.Context, member *models.OrganizationMember) error {
	const query = `UPDATE organization_members SET name = :name, position = :position, photo_url = :photo_url,
display_order = :display_order, member_category = :member_category WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, member)
	if err != nil {
		return fmt.Errorf("update organization member: %w", err)
	}
	return expectAffected(res, "update organization member")
}

func (r *OrganizationRepository) DeleteMember(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM organization_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete organization member: %w", err)
	}
	return expectAffected(res, "delete organization member")
}
