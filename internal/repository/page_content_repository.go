package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bcsi-site/internal/models"
)

// PageContentRepository reads and writes the singleton home and about rows.
// A missing row is reported as (nil, nil); callers substitute defaults.
type PageContentRepository struct {
	db *sqlx.DB
}

func NewPageContentRepository(db *sqlx.DB) *PageContentRepository {
	return &PageContentRepository{db: db}
}

func (r *PageContentRepository) GetAbout(ctx context.Context) (*models.AboutContent, error) {
	const query = `SELECT id, history, mission_new, vision_new, core_values, campus_map_url, updated_at FROM about_content ORDER BY updated_at DESC LIMIT 1`
	var content models.AboutContent
	if err := r.db.GetContext(ctx, &content, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get about content: %w", err)
	}
	return &content, nil
}

// SaveAbout inserts or replaces the about row identified by content.ID.
func (r *PageContentRepository) SaveAbout(ctx context.Context, content *models.AboutContent) error {
	if content.ID == "" {
		content.ID = uuid.NewString()
	}
	content.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO about_content (id, history, mission_new, vision_new, core_values, campus_map_url, updated_at)
VALUES (:id, :history, :mission_new, :vision_new, :core_values, :campus_map_url, :updated_at)
ON CONFLICT (id) DO UPDATE SET history = EXCLUDED.history, mission_new = EXCLUDED.mission_new, vision_new = EXCLUDED.vision_new,
core_values = EXCLUDED.core_values, campus_map_url = EXCLUDED.campus_map_url, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, content); err != nil {
		return fmt.Errorf("save about content: %w", err)
	}
	return nil
}

func (r *PageContentRepository) GetHome(ctx context.Context) (*models.HomeContent, error) {
	const query = `SELECT id, hero_title, hero_subtitle, hero_image_url, why_choose_title, updated_at FROM home_content ORDER BY updated_at DESC LIMIT 1`
	var content models.HomeContent
	if err := r.db.GetContext(ctx, &content, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get home content: %w", err)
	}
	return &content, nil
}

// SaveHome inserts or replaces the home row identified by content.ID.
func (r *PageContentRepository) SaveHome(ctx context.Context, content *models.HomeContent) error {
	if content.ID == "" {
		content.ID = uuid.NewString()
	}
	content.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO home_content (id, hero_title, hero_subtitle, hero_image_url, why_choose_title, updated_at)
VALUES (:id, :hero_title, :hero_subtitle, :hero_image_url, :why_choose_title, :updated_at)
ON CONFLICT (id) DO UPDATE SET hero_title = EXCLUDED.hero_title, hero_subtitle = EXCLUDED.hero_subtitle,
hero_image_url = EXCLUDED.hero_image_url, why_choose_title = EXCLUDED.why_choose_title, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, content); err != nil {
		return fmt.Errorf("save home content: %w", err)
	}
	return nil
}
