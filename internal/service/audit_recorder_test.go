package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bcsi-site/internal/models"
	"github.com/noah-isme/bcsi-site/pkg/jobs"
)

type recordingAuditStore struct {
	mu      sync.Mutex
	entries []*models.AuditLog
	failN   int
}

func (s *recordingAuditStore) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failN > 0 {
		s.failN--
		return errors.New("db unavailable")
	}
	s.entries = append(s.entries, log)
	return nil
}

func (s *recordingAuditStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func TestAuditRecorderWritesInBackground(t *testing.T) {
	store := &recordingAuditStore{failN: 1}
	recorder := NewAuditRecorder(store, jobs.QueueConfig{MaxRetries: 2, RetryDelay: time.Millisecond})
	fixed := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	recorder.now = func() time.Time { return fixed }
	recorder.Start(context.Background())
	defer recorder.Stop()

	require.NoError(t, recorder.CreateAuditLog(context.Background(), &models.AuditLog{Action: models.AuditActionCreate, Resource: "announcements"}))
	require.Eventually(t, func() bool { return store.count() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, fixed, store.entries[0].CreatedAt)
}

func TestAuditRecorderWritesInlineWhenStopped(t *testing.T) {
	store := &recordingAuditStore{}
	recorder := NewAuditRecorder(store, jobs.QueueConfig{})

	require.NoError(t, recorder.CreateAuditLog(context.Background(), &models.AuditLog{Action: models.AuditActionDelete, Resource: "personnel"}))
	assert.Equal(t, 1, store.count())

	store.failN = 1
	assert.Error(t, recorder.CreateAuditLog(context.Background(), &models.AuditLog{Action: models.AuditActionDelete, Resource: "personnel"}))
}

func TestAuditRecorderStopFlushes(t *testing.T) {
	store := &recordingAuditStore{}
	recorder := NewAuditRecorder(store, jobs.QueueConfig{BufferSize: 16})
	recorder.Start(context.Background())
	for i := 0; i < 5; i++ {
		require.NoError(t, recorder.CreateAuditLog(context.Background(), &models.AuditLog{Action: models.AuditActionUpdate, Resource: "page_content"}))
	}
	recorder.Stop()
	assert.Equal(t, 5, store.count())
}
