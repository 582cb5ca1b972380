package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bcsi-site/internal/dto"
	"github.com/noah-isme/bcsi-site/internal/models"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
)

type fakeStore struct {
	mu        sync.Mutex
	records   []models.Announcement
	calls     []string
	insertErr error
	listErr   error
	setActive map[string]bool
	block     chan struct{}
	entered   chan struct{}
}

func newFakeStore(records ...models.Announcement) *fakeStore {
	return &fakeStore{records: records, setActive: map[string]bool{}}
}

func (f *fakeStore) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeStore) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeStore) List(ctx context.Context) ([]models.Announcement, error) {
	f.record("list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Announcement(nil), f.records...), nil
}

func (f *fakeStore) Insert(ctx context.Context, form dto.AnnouncementRequest) error {
	f.record("insert")
	if f.block != nil {
		close(f.entered)
		<-f.block
	}
	if f.insertErr != nil {
		return f.insertErr
	}
	date, _ := models.ParseDate(form.Date)
	f.mu.Lock()
	f.records = append(f.records, models.Announcement{ID: "new", Title: form.Title, Content: form.Content, Date: date, Type: form.Type})
	f.mu.Unlock()
	return nil
}

func (f *fakeStore) Update(ctx context.Context, id string, form dto.AnnouncementRequest) error {
	f.record("update:" + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Title = form.Title
		}
	}
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.record("delete:" + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.records[:0]
	for _, r := range f.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeStore) SetActive(ctx context.Context, id string, active bool) error {
	f.record("set_active:" + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setActive[id] = active
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].IsActive = models.BoolPtr(active)
		}
	}
	return nil
}

var fixedNow = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }

func newTestEditor(t *testing.T, store *fakeStore) *AnnouncementEditor {
	t.Helper()
	e := New[models.Announcement, dto.AnnouncementRequest]("announcement", store, AnnouncementForm{Now: fixedNow}, nil)
	require.NoError(t, e.Load(context.Background()))
	return e
}

func validForm() dto.AnnouncementRequest {
	return dto.AnnouncementRequest{Title: "Enrollment", Content: "Open now", Date: "2025-06-01", Type: "Event"}
}

func TestOpenCreateUsesBlankDefaults(t *testing.T) {
	e := newTestEditor(t, newFakeStore())

	require.NoError(t, e.OpenCreate())
	view := e.View()
	assert.Equal(t, StateCreateOpen, view.State)
	assert.Equal(t, "2025-06-01", view.Form.Date)
	assert.Equal(t, models.AnnouncementTypeGeneral, view.Form.Type)
	assert.Empty(t, view.Form.Title)
}

func TestSubmitRejectsEmptyTitleWithoutStoreCall(t *testing.T) {
	store := newFakeStore()
	e := newTestEditor(t, store)
	require.NoError(t, e.OpenCreate())

	form := validForm()
	form.Title = ""
	err := e.Submit(context.Background(), form)

	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, []string{"list"}, store.callLog())
	view := e.View()
	assert.Equal(t, StateCreateOpen, view.State)
	require.NotNil(t, view.Notice)
	assert.Equal(t, NoticeError, view.Notice.Kind)
	assert.Equal(t, "Title, content, and date are required", view.Notice.Message)
	assert.Equal(t, "Open now", view.Form.Content)
}

func TestSubmitCreateInsertsOnceAndRefetches(t *testing.T) {
	store := newFakeStore()
	e := newTestEditor(t, store)
	require.NoError(t, e.OpenCreate())

	require.NoError(t, e.Submit(context.Background(), validForm()))

	assert.Equal(t, []string{"list", "insert", "list"}, store.callLog())
	view := e.View()
	assert.Equal(t, StateList, view.State)
	assert.Len(t, view.Records, 1)
	assert.Equal(t, &Notice{Kind: NoticeSuccess, Message: "Announcement added"}, view.Notice)
}

func TestSubmitEditUpdatesById(t *testing.T) {
	store := newFakeStore(models.Announcement{ID: "a1", Title: "Old", Content: "c", Type: "Holiday"})
	e := newTestEditor(t, store)

	err := e.OpenEdit("missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, StateList, e.View().State)

	require.NoError(t, e.OpenEdit("a1"))
	view := e.View()
	assert.Equal(t, StateEditOpen, view.State)
	assert.Equal(t, "a1", view.EditID)
	assert.Equal(t, "Old", view.Form.Title)
	assert.Equal(t, "Holiday", view.Form.Type)

	form := validForm()
	form.Title = "New"
	require.NoError(t, e.Submit(context.Background(), form))
	assert.Equal(t, []string{"list", "update:a1", "list"}, store.callLog())
	assert.Equal(t, "New", e.View().Records[0].Title)
	assert.Equal(t, "Announcement updated", e.View().Notice.Message)
}

func TestCancelDiscardsWithoutStoreCall(t *testing.T) {
	store := newFakeStore()
	e := newTestEditor(t, store)
	require.NoError(t, e.OpenCreate())

	require.NoError(t, e.Cancel())
	assert.Equal(t, StateList, e.View().State)
	assert.Equal(t, []string{"list"}, store.callLog())
	assert.ErrorIs(t, e.Submit(context.Background(), validForm()), ErrNoDialog)
}

func TestSubmitFailureKeepsListAndDialog(t *testing.T) {
	store := newFakeStore(models.Announcement{ID: "a1", Title: "Kept"})
	store.insertErr = errors.New("insert failed")
	e := newTestEditor(t, store)
	require.NoError(t, e.OpenCreate())

	err := e.Submit(context.Background(), validForm())
	require.Error(t, err)

	view := e.View()
	assert.Equal(t, StateCreateOpen, view.State)
	assert.Len(t, view.Records, 1)
	assert.Equal(t, &Notice{Kind: NoticeError, Message: "Failed to add announcement"}, view.Notice)
	assert.Equal(t, []string{"list", "insert"}, store.callLog())
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	store := newFakeStore(models.Announcement{ID: "a1"})
	e := newTestEditor(t, store)

	assert.ErrorIs(t, e.Delete(context.Background(), "a1", false), ErrConfirmationRequired)
	assert.Equal(t, []string{"list"}, store.callLog())

	require.NoError(t, e.Delete(context.Background(), "a1", true))
	assert.Equal(t, []string{"list", "delete:a1", "list"}, store.callLog())
	assert.Empty(t, e.View().Records)
}

func TestToggleNullWritesFalse(t *testing.T) {
	store := newFakeStore(models.Announcement{ID: "a1"})
	e := newTestEditor(t, store)

	require.NoError(t, e.ToggleActive(context.Background(), "a1"))

	assert.False(t, store.setActive["a1"])
	records := e.View().Records
	require.Len(t, records, 1)
	require.NotNil(t, records[0].IsActive)
	assert.False(t, *records[0].IsActive)

	require.NoError(t, e.ToggleActive(context.Background(), "a1"))
	assert.True(t, store.setActive["a1"])
}

func TestToggleIsPessimistic(t *testing.T) {
	store := newFakeStore(models.Announcement{ID: "a1"})
	e := newTestEditor(t, store)
	store.listErr = errors.New("read failed")

	require.NoError(t, e.ToggleActive(context.Background(), "a1"))
	view := e.View()
	assert.Nil(t, view.Records[0].IsActive)
	assert.Equal(t, NoticeError, view.Notice.Kind)
}

func TestDoubleSubmitIsRejected(t *testing.T) {
	store := newFakeStore()
	store.block = make(chan struct{})
	store.entered = make(chan struct{})
	e := newTestEditor(t, store)
	require.NoError(t, e.OpenCreate())

	done := make(chan error, 1)
	go func() { done <- e.Submit(context.Background(), validForm()) }()
	<-store.entered

	assert.Equal(t, StateSubmitting, e.View().State)
	assert.ErrorIs(t, e.Submit(context.Background(), validForm()), ErrBusy)
	assert.ErrorIs(t, e.Delete(context.Background(), "x", true), ErrBusy)

	close(store.block)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"list", "insert", "list"}, store.callLog())
}

func TestSessionsKeepOneEditorPerUser(t *testing.T) {
	now := fixedNow()
	sessions := NewSessions(func() *AnnouncementEditor {
		return New[models.Announcement, dto.AnnouncementRequest]("announcement", newFakeStore(), AnnouncementForm{}, nil)
	})
	sessions.now = func() time.Time { return now }

	a := sessions.For("u1")
	assert.Same(t, a, sessions.For("u1"))
	assert.NotSame(t, a, sessions.For("u2"))

	now = now.Add(time.Hour)
	sessions.For("u2")
	assert.Equal(t, 1, sessions.Prune(30*time.Minute))
	assert.NotSame(t, a, sessions.For("u1"))
}
