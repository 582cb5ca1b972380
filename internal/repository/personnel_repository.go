package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bcsi-site/internal/models"
)

const personnelColumns = `id, name, position, department, description, photo_url, display_order, is_active`

// PersonnelRepository persists current staff.
type PersonnelRepository struct {
	db *sqlx.DB
}

func NewPersonnelRepository(db *sqlx.DB) *PersonnelRepository {
	return &PersonnelRepository{db: db}
}

// ListActive returns staff ordered by display rank, unranked rows last.
func (r *PersonnelRepository) ListActive(ctx context.Context) ([]models.Personnel, error) {
	query := `SELECT ` + personnelColumns + ` FROM personnel WHERE ` + activeClause + ` ORDER BY display_order ASC NULLS LAST, name ASC`
	var personnel []models.Personnel
	if err := r.db.SelectContext(ctx, &personnel, query); err != nil {
		return nil, fmt.Errorf("list active personnel: %w", err)
	}
	return personnel, nil
}

func (r *PersonnelRepository) List(ctx context.Context) ([]models.Personnel, error) {
	query := `SELECT ` + personnelColumns + ` FROM personnel ORDER BY display_order ASC NULLS LAST, name ASC`
	var personnel []models.Personnel
	if err := r.db.SelectContext(ctx, &personnel, query); err != nil {
		return nil, fmt.Errorf("list personnel: %w", err)
	}
	return personnel, nil
}

func (r *PersonnelRepository) GetByID(ctx context.Context, id string) (*models.Personnel, error) {
	query := `SELECT ` + personnelColumns + ` FROM personnel WHERE id = $1`
	var p models.Personnel
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PersonnelRepository) Create(ctx context.Context, p *models.Personnel) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	const query = `INSERT INTO personnel (id, name, position, department, description, photo_url, display_order, is_active)
VALUES (:id, :name, :position, :department, :description, :photo_url, :display_order, :is_active)`
	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("create personnel: %w", err)
	}
	return nil
}

func (r *PersonnelRepository) Update(ctx context.Context, p *models.Personnel) error {
	const query = `UPDATE personnel SET name = :name, position = :position, department = :department, description = :description,
photo_url = :photo_url, display_order = :display_order WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return fmt.Errorf("update personnel: %w", err)
	}
	return expectAffected(res, "update personnel")
}

func (r *PersonnelRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE personnel SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set personnel active: %w", err)
	}
	return expectAffected(res, "set personnel active")
}

func (r *PersonnelRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM personnel WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete personnel: %w", err)
	}
	return expectAffected(res, "delete personnel")
}
