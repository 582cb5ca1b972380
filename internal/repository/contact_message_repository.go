package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bcsi-site/internal/models"
)

// ContactMessageRepository stores contact form submissions.
type ContactMessageRepository struct {
	db *sqlx.DB
}

func NewContactMessageRepository(db *sqlx.DB) *ContactMessageRepository {
	return &ContactMessageRepository{db: db}
}

func (r *ContactMessageRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO contact_messages (id, full_name, email, message, ip_address, created_at)
VALUES (:id, :full_name, :email, :message, :ip_address, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, msg); err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

// List returns submissions newest first.
func (r *ContactMessageRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	const query = `SELECT id, full_name, email, message, ip_address, created_at FROM contact_messages ORDER BY created_at DESC`
	var msgs []models.ContactMessage
	if err := r.db.SelectContext(ctx, &msgs, query); err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return msgs, nil
}
