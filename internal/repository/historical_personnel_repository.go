package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bcsi-site/internal/models"
)

const historicalColumns = `id, name, position, years, photo_url, category, display_order, is_active`

// HistoricalPersonnelRepository persists former directors and principals.
type HistoricalPersonnelRepository struct {
	db *sqlx.DB
}

func NewHistoricalPersonnelRepository(db *sqlx.DB) *HistoricalPersonnelRepository {
	return &HistoricalPersonnelRepository{db: db}
}

func (r *HistoricalPersonnelRepository) ListActive(ctx context.Context) ([]models.HistoricalPersonnel, error) {
	query := `SELECT ` + historicalColumns + ` FROM historical_personnel WHERE ` + activeClause + ` ORDER BY display_order ASC NULLS LAST`
	var list []models.HistoricalPersonnel
	if err := r.db.SelectContext(ctx, &list, query); err != nil {
		return nil, fmt.Errorf("list active historical personnel: %w", err)
	}
	return list, nil
}

func (r *HistoricalPersonnelRepository) List(ctx context.Context) ([]models.HistoricalPersonnel, error) {
	query := `SELECT ` + historicalColumns + ` FROM historical_personnel ORDER BY category ASC, display_order ASC NULLS LAST`
	var list []models.HistoricalPersonnel
	if err := r.db.SelectContext(ctx, &list, query); err != nil {
		return nil, fmt.Errorf("list historical personnel: %w", err)
	}
	return list, nil
}

func (r *HistoricalPersonnelRepository) GetByID(ctx context.Context, id string) (*models.HistoricalPersonnel, error) {
	query := `SELECT ` + historicalColumns + ` FROM historical_personnel WHERE id = $1`
	var h models.HistoricalPersonnel
	if err := r.db.GetContext(ctx, &h, query, id); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HistoricalPersonnelRepository) Create(ctx context.Context, h *models.HistoricalPersonnel) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	const query = `INSERT INTO historical_personnel (id, name, position, years, photo_url, category, display_order, is_active)
VALUES (:id, :name, :position, :years, :photo_url, :category, :display_order, :is_active)`
	if _, err := r.db.NamedExecContext(ctx, query, h); err != nil {
		return fmt.Errorf("create historical personnel: %w", err)
	}
	return nil
}

func (r *HistoricalPersonnelRepository) Update(ctx context.Context, h *models.HistoricalPersonnel) error {
	const query = `UPDATE historical_personnel SET name = :name, position = :position, years = :years, photo_url = :photo_url,
category = :category, display_order = :display_order WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, h)
	if err != nil {
		return fmt.Errorf("update historical personnel: %w", err)
	}
	return expectAffected(res, "update historical personnel")
}

func (r *HistoricalPersonnelRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE historical_personnel SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set historical personnel active: %w", err)
	}
	return expectAffected(res, "set historical personnel active")
}

func (r *HistoricalPersonnelRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM historical_personnel WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete historical personnel: %w", err)
	}
	return expectAffected(res, "delete historical personnel")
}
