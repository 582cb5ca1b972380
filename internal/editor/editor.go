// Package editor holds the admin table editor: a list of records, one modal form
// for creating or editing a record, and the mutations an operator can trigger.
// An Editor is owned by one admin session and is safe for concurrent use.
package editor

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/bcsi-site/internal/models"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
)

// State is the dialog state of an editor.
type State int

const (
	StateList State = iota
	StateCreateOpen
	StateEditOpen
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateCreateOpen:
		return "create"
	case StateEditOpen:
		return "edit"
	case StateSubmitting:
		return "submitting"
	default:
		return "list"
	}
}

var (
	ErrBusy                 = appErrors.New("EDITOR_BUSY", http.StatusConflict, "another change is still being saved")
	ErrConfirmationRequired = appErrors.New("CONFIRMATION_REQUIRED", http.StatusBadRequest, "delete must be confirmed")
	ErrNoDialog             = appErrors.New("NO_OPEN_FORM", http.StatusConflict, "no form is open")
)

// Store is the persistence side of an editor.
type Store[R any, F any] interface {
	List(ctx context.Context) ([]R, error)
	Insert(ctx context.Context, form F) error
	Update(ctx context.Context, id string, form F) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
}

// Form adapts one record type to its editable form.
type Form[R any, F any] interface {
	Blank() F
	FromRecord(record R) F
	ID(record R) string
	Active(record R) *bool
	// Validate checks required fields and returns the message shown to the operator.
	Validate(form F) error
}

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient message shown above the table until dismissed.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// View is a copy of the editor state for rendering.
type View[R any, F any] struct {
	State   State
	EditID  string
	Form    F
	Records []R
	Notice  *Notice
}

// Open reports whether the modal form is showing.
func (v View[R, F]) Open() bool {
	return v.State == StateCreateOpen || v.State == StateEditOpen || v.State == StateSubmitting
}

// Editor drives one table. Mutations are pessimistic: the record list only changes
// through a refetch after the store confirms a write.
type Editor[R any, F any] struct {
	noun   string
	store  Store[R, F]
	form   Form[R, F]
	logger *zap.Logger

	mu       sync.Mutex
	state    State
	resume   State
	editID   string
	draft    F
	records  []R
	notice   *Notice
	inFlight bool
}

// New creates an editor. noun is the lower-case record name used in notices, e.g. "announcement".
func New[R any, F any](noun string, store Store[R, F], form Form[R, F], logger *zap.Logger) *Editor[R, F] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor[R, F]{noun: noun, store: store, form: form, logger: logger, state: StateList}
}

// View returns a snapshot of the editor.
func (e *Editor[R, F]) View() View[R, F] {
	e.mu.Lock()
	defer e.mu.Unlock()
	records := make([]R, len(e.records))
	copy(records, e.records)
	var notice *Notice
	if e.notice != nil {
		n := *e.notice
		notice = &n
	}
	return View[R, F]{State: e.state, EditID: e.editID, Form: e.draft, Records: records, Notice: notice}
}

// Load fetches the full list. On failure the previous list is kept and an error notice is set.
func (e *Editor[R, F]) Load(ctx context.Context) error {
	records, err := e.store.List(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.logger.Warn("editor list failed", zap.String("noun", e.noun), zap.Error(err))
		e.notice = &Notice{Kind: NoticeError, Message: "Failed to load " + e.noun + "s"}
		return err
	}
	e.records = records
	return nil
}

// OpenCreate shows a blank form.
func (e *Editor[R, F]) OpenCreate() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateSubmitting {
		return ErrBusy
	}
	e.state = StateCreateOpen
	e.editID = ""
	e.draft = e.form.Blank()
	return nil
}

// OpenEdit copies the fields of record id into the form. An unknown id leaves the state unchanged.
func (e *Editor[R, F]) OpenEdit(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateSubmitting {
		return ErrBusy
	}
	record, ok := e.find(id)
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, e.noun+" not found")
	}
	e.state = StateEditOpen
	e.editID = id
	e.draft = e.form.FromRecord(record)
	return nil
}

// Cancel discards the form without touching the store.
func (e *Editor[R, F]) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateSubmitting {
		return ErrBusy
	}
	e.closeDialog()
	return nil
}

// DismissNotice clears the current notice.
func (e *Editor[R, F]) DismissNotice() {
	e.mu.Lock()
	e.notice = nil
	e.mu.Unlock()
}

// Submit validates form and performs exactly one insert or update. Validation
// failures keep the dialog open without calling the store. A second Submit while
// one is in flight returns ErrBusy.
func (e *Editor[R, F]) Submit(ctx context.Context, form F) error {
	e.mu.Lock()
	switch e.state {
	case StateSubmitting:
		e.mu.Unlock()
		return ErrBusy
	case StateCreateOpen, StateEditOpen:
	default:
		e.mu.Unlock()
		return ErrNoDialog
	}
	e.draft = form
	if err := e.form.Validate(form); err != nil {
		e.notice = &Notice{Kind: NoticeError, Message: appErrors.FromError(err).Message}
		e.mu.Unlock()
		return err
	}
	if e.inFlight {
		e.mu.Unlock()
		return ErrBusy
	}
	e.resume = e.state
	e.state = StateSubmitting
	e.inFlight = true
	editing, id := e.resume == StateEditOpen, e.editID
	e.mu.Unlock()

	var err error
	verb, done := "add", "added"
	if editing {
		verb, done = "update", "updated"
		err = e.store.Update(ctx, id, form)
	} else {
		err = e.store.Insert(ctx, form)
	}

	if err != nil {
		e.mu.Lock()
		e.inFlight = false
		e.state = e.resume
		e.notice = &Notice{Kind: NoticeError, Message: "Failed to " + verb + " " + e.noun}
		e.mu.Unlock()
		e.logger.Warn("editor write failed", zap.String("noun", e.noun), zap.String("action", verb), zap.Error(err))
		return err
	}

	records, listErr := e.store.List(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight = false
	e.closeDialog()
	e.applyRefetch(records, listErr, e.title()+" "+done)
	return nil
}

// Delete removes record id after the operator confirmed it. Without confirmation nothing happens.
func (e *Editor[R, F]) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := e.begin(); err != nil {
		return err
	}
	if err := e.store.Delete(ctx, id); err != nil {
		return e.fail("delete", err)
	}
	return e.finish(ctx, e.title()+" deleted")
}

// ToggleActive flips the effective activation of record id. A NULL flag counts as
// active, so the first toggle writes false.
func (e *Editor[R, F]) ToggleActive(ctx context.Context, id string) error {
	e.mu.Lock()
	record, ok := e.find(id)
	e.mu.Unlock()
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, e.noun+" not found")
	}
	if err := e.begin(); err != nil {
		return err
	}
	next := models.Toggled(e.form.Active(record))
	if err := e.store.SetActive(ctx, id, next); err != nil {
		return e.fail("update", err)
	}
	message := e.title() + " hidden"
	if next {
		message = e.title() + " published"
	}
	return e.finish(ctx, message)
}

func (e *Editor[R, F]) begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight {
		return ErrBusy
	}
	e.inFlight = true
	return nil
}

func (e *Editor[R, F]) fail(verb string, err error) error {
	e.mu.Lock()
	e.inFlight = false
	e.notice = &Notice{Kind: NoticeError, Message: "Failed to " + verb + " " + e.noun}
	e.mu.Unlock()
	e.logger.Warn("editor write failed", zap.String("noun", e.noun), zap.String("action", verb), zap.Error(err))
	return err
}

func (e *Editor[R, F]) finish(ctx context.Context, message string) error {
	records, err := e.store.List(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight = false
	e.applyRefetch(records, err, message)
	return nil
}

// applyRefetch must be called with mu held.
func (e *Editor[R, F]) applyRefetch(records []R, err error, message string) {
	if err != nil {
		e.logger.Warn("editor refetch failed", zap.String("noun", e.noun), zap.Error(err))
		e.notice = &Notice{Kind: NoticeError, Message: message + ", but the list could not be refreshed"}
		return
	}
	e.records = records
	e.notice = &Notice{Kind: NoticeSuccess, Message: message}
}

// closeDialog must be called with mu held.
func (e *Editor[R, F]) closeDialog() {
	var zero F
	e.state = StateList
	e.editID = ""
	e.draft = zero
}

// find must be called with mu held.
func (e *Editor[R, F]) find(id string) (R, bool) {
	for _, r := range e.records {
		if e.form.ID(r) == id {
			return r, true
		}
	}
	var zero R
	return zero, false
}

func (e *Editor[R, F]) title() string {
	if e.noun == "" {
		return ""
	}
	return strings.ToUpper(e.noun[:1]) + e.noun[1:]
}

// IsBusy reports whether err is ErrBusy.
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}
