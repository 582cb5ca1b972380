package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/bcsi-site/internal/models"
	"github.com/noah-isme/bcsi-site/pkg/jobs"
)

type auditStore interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AuditRecorder writes audit entries off the request path. Entries are stamped
// when recorded; when the queue is full or stopped they are written inline.
type AuditRecorder struct {
	store  auditStore
	queue  *jobs.Queue[*models.AuditLog]
	logger *zap.Logger
	now    func() time.Time
}

func NewAuditRecorder(store auditStore, cfg jobs.QueueConfig) *AuditRecorder {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	r := &AuditRecorder{store: store, logger: cfg.Logger, now: time.Now}
	r.queue = jobs.NewQueue("audit", r.write, cfg)
	return r
}

func (r *AuditRecorder) Start(ctx context.Context) { r.queue.Start(ctx) }

// Stop flushes buffered entries.
func (r *AuditRecorder) Stop() { r.queue.Stop() }

// CreateAuditLog queues entry for writing. It only fails when the inline fallback fails.
func (r *AuditRecorder) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now().UTC()
	}
	err := r.queue.TryEnqueue(entry)
	if err == nil {
		return nil
	}
	if errors.Is(err, jobs.ErrQueueFull) {
		r.logger.Warn("audit queue full, writing inline", zap.String("resource", entry.Resource))
	}
	return r.store.CreateAuditLog(context.WithoutCancel(ctx), entry)
}

func (r *AuditRecorder) write(ctx context.Context, entry *models.AuditLog) error {
	return r.store.CreateAuditLog(ctx, entry)
}
