package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bcsi-site/internal/models"
)

const importantDateColumns = `id, event, date, display_order, is_active`

// ImportantDateRepository persists the important dates sidebar.
type ImportantDateRepository struct {
	db *sqlx.DB
}

func NewImportantDateRepository(db *sqlx.DB) *ImportantDateRepository {
	return &ImportantDateRepository{db: db}
}

func (r *ImportantDateRepository) ListActive(ctx context.Context) ([]models.ImportantDate, error) {
	query := `SELECT ` + importantDateColumns + ` FROM important_dates WHERE ` + activeClause + ` ORDER BY display_order ASC NULLS LAST`
	var dates []models.ImportantDate
	if err := r.db.SelectContext(ctx, &dates, query); err != nil {
		return nil, fmt.Errorf("list active important dates: %w", err)
	}
	return dates, nil
}

func (r *ImportantDateRepository) List(ctx context.Context) ([]models.ImportantDate, error) {
	query := `SELECT ` + importantDateColumns + ` FROM important_dates ORDER BY display_order ASC NULLS LAST`
	var dates []models.ImportantDate
	if err := r.db.SelectContext(ctx, &dates, query); err != nil {
		return nil, fmt.Errorf("list important dates: %w", err)
	}
	return dates, nil
}

func (r *ImportantDateRepository) GetByID(ctx context.Context, id string) (*models.ImportantDate, error) {
	query := `SELECT ` + importantDateColumns + ` FROM important_dates WHERE id = $1`
	var date models.ImportantDate
	if err := r.db.GetContext(ctx, &date, query, id); err != nil {
		return nil, err
	}
	return &date, nil
}

func (r *ImportantDateRepository) Create(ctx context.Context, date *models.ImportantDate) error {
	if date.ID == "" {
		date.ID = uuid.NewString()
	}
	const query = `INSERT INTO important_dates (id, event, date, display_order, is_active) VALUES (:id, :event, :date, :display_order, :is_active)`
	if _, err := r.db.NamedExecContext(ctx, query, date); err != nil {
		return fmt.Errorf("create important date: %w", err)
	}
	return nil
}

func (r *ImportantDateRepository) Update(ctx context.Context, date *models.ImportantDate) error {
	const query = `UPDATE important_dates SET event = :event, date = :date, display_order = :display_order WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, date)
	if err != nil {
		return fmt.Errorf("update important date: %w", err)
	}
	return expectAffected(res, "update important date")
}

func (r *ImportantDateRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE important_dates SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set important date active: %w", err)
	}
	return expectAffected(res, "set important date active")
}

func (r *ImportantDateRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM important_dates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete important date: %w", err)
	}
	return expectAffected(res, "delete important date")
}
