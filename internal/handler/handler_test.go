package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bcsi-site/internal/dto"
	"github.com/noah-isme/bcsi-site/internal/middleware"
	"github.com/noah-isme/bcsi-site/internal/models"
	"github.com/noah-isme/bcsi-site/internal/service"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
)

func newTestContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type pageBuilderStub struct {
	detailErr error
}

func (p *pageBuilderStub) Home(ctx context.Context) dto.HomePage {
	return dto.HomePage{PageMeta: dto.PageMeta{Title: "Home"}, HeroTitle: "Welcome"}
}
func (p *pageBuilderStub) About(ctx context.Context) dto.AboutPage {
	return dto.AboutPage{PageMeta: dto.PageMeta{Title: "About", Degraded: true}}
}
func (p *pageBuilderStub) Programs() dto.ProgramsPage         { return dto.ProgramsPage{} }
func (p *pageBuilderStub) Scholarships() dto.ScholarshipsPage { return dto.ScholarshipsPage{} }
func (p *pageBuilderStub) Contact() dto.ContactPage           { return dto.ContactPage{} }
func (p *pageBuilderStub) Personnel(ctx context.Context) dto.PersonnelPage {
	return dto.PersonnelPage{}
}
func (p *pageBuilderStub) Announcements(ctx context.Context) dto.AnnouncementsPage {
	return dto.AnnouncementsPage{}
}
func (p *pageBuilderStub) Organizations(ctx context.Context) dto.OrganizationsPage {
	return dto.OrganizationsPage{}
}
func (p *pageBuilderStub) OrganizationDetail(ctx context.Context, id string) (*dto.OrganizationDetailPage, error) {
	if p.detailErr != nil {
		return nil, p.detailErr
	}
	return &dto.OrganizationDetailPage{Organization: dto.OrganizationCard{ID: id}}, nil
}

type contactStub struct {
	lastIP string
	err    error
}

func (s *contactStub) Submit(ctx context.Context, req dto.ContactRequest, ip string) (*models.ContactMessage, error) {
	s.lastIP = ip
	if s.err != nil {
		return nil, s.err
	}
	return &models.ContactMessage{ID: "m1", FullName: req.FullName}, nil
}

func TestPublicHandlerHomeEnvelope(t *testing.T) {
	h := NewPublicHandler(&pageBuilderStub{}, &contactStub{})
	c, w := newTestContext(http.MethodGet, "/api/v1/pages/home", nil)

	h.Home(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data dto.HomePage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Welcome", body.Data.HeroTitle)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestPublicHandlerAboutReportsDegraded(t *testing.T) {
	h := NewPublicHandler(&pageBuilderStub{}, &contactStub{})
	c, w := newTestContext(http.MethodGet, "/api/v1/pages/about", nil)

	h.About(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"degraded":true`)
}

func TestPublicHandlerOrganizationNotFound(t *testing.T) {
	h := NewPublicHandler(&pageBuilderStub{detailErr: appErrors.Clone(appErrors.ErrNotFound, "Organization Not Found")}, &contactStub{})
	c, w := newTestContext(http.MethodGet, "/api/v1/organizations/x", nil)
	c.Params = gin.Params{{Key: "id", Value: "x"}}

	h.Organization(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Organization Not Found")
}

func TestPublicHandlerSubmitContact(t *testing.T) {
	contact := &contactStub{}
	h := NewPublicHandler(&pageBuilderStub{}, contact)
	body, _ := json.Marshal(dto.ContactRequest{FullName: "Ana", Email: "ana@example.com", Message: "Hello"})
	c, w := newTestContext(http.MethodPost, "/api/v1/contact", body)
	c.Request.RemoteAddr = "192.0.2.10:5555"

	h.SubmitContact(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "192.0.2.10", contact.lastIP)
}

func TestPublicHandlerSubmitContactInvalidJSON(t *testing.T) {
	h := NewPublicHandler(&pageBuilderStub{}, &contactStub{})
	c, w := newTestContext(http.MethodPost, "/api/v1/contact", []byte(`{`))

	h.SubmitContact(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type authStub struct {
	loginReq  models.LoginRequest
	loginErr  error
	loggedOut bool
}

func (a *authStub) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	a.loginReq = req
	if a.loginErr != nil {
		return nil, a.loginErr
	}
	return &models.LoginResponse{AccessToken: "token", ExpiresIn: 3600}, nil
}

func (a *authStub) Logout(ctx context.Context, claims *models.JWTClaims, meta models.LoginRequest) error {
	a.loggedOut = true
	return nil
}

func (a *authStub) Me(ctx context.Context, userID string) (*models.UserInfo, error) {
	return &models.UserInfo{ID: userID}, nil
}

func (a *authStub) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	return nil
}

func TestAuthHandlerLoginPassesClientMeta(t *testing.T) {
	auth := &authStub{}
	h := NewAuthHandler(auth)
	body := []byte(`{"email":"admin@bcsi.edu.ph","password":"secret"}`)
	c, w := newTestContext(http.MethodPost, "/api/v1/auth/login", body)
	c.Request.Header.Set("User-Agent", "test-agent")
	c.Request.RemoteAddr = "198.51.100.7:1234"

	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-agent", auth.loginReq.UserAgent)
	assert.Equal(t, "198.51.100.7", auth.loginReq.IP)
	assert.Contains(t, w.Body.String(), `"access_token":"token"`)
}

func TestAuthHandlerLoginLockedOut(t *testing.T) {
	h := NewAuthHandler(&authStub{loginErr: appErrors.ErrLockedOut})
	c, w := newTestContext(http.MethodPost, "/api/v1/auth/login", []byte(`{"email":"a@b.c","password":"x"}`))

	h.Login(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestAuthHandlerLogoutRequiresClaims(t *testing.T) {
	auth := &authStub{}
	h := NewAuthHandler(auth)
	c, w := newTestContext(http.MethodPost, "/api/v1/auth/logout", nil)

	h.Logout(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, auth.loggedOut)

	c, w = newTestContext(http.MethodPost, "/api/v1/auth/logout", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1"})
	h.Logout(c)
	c.Writer.WriteHeaderNow() // gin's engine flushes the status after handlers; emulate that here
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, auth.loggedOut)
}

func TestAuthHandlerMe(t *testing.T) {
	h := NewAuthHandler(&authStub{})
	c, w := newTestContext(http.MethodGet, "/api/v1/auth/me", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1"})

	h.Me(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
}

type announcementUseCasesStub struct {
	items     []models.Announcement
	created   *dto.AnnouncementRequest
	createErr error
	toggled   string
}

func (s *announcementUseCasesStub) List(ctx context.Context) ([]models.Announcement, error) {
	return s.items, nil
}

func (s *announcementUseCasesStub) Get(ctx context.Context, id string) (*models.Announcement, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
}

func (s *announcementUseCasesStub) Create(ctx context.Context, req dto.AnnouncementRequest) (*models.Announcement, error) {
	s.created = &req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Announcement{ID: "new", Title: req.Title}, nil
}

func (s *announcementUseCasesStub) Update(ctx context.Context, id string, req dto.AnnouncementRequest) (*models.Announcement, error) {
	return &models.Announcement{ID: id, Title: req.Title}, nil
}

func (s *announcementUseCasesStub) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return nil
}

func (s *announcementUseCasesStub) Toggle(ctx context.Context, id string) (*dto.ToggleResult, error) {
	s.toggled = id
	return &dto.ToggleResult{ID: id, IsActive: false}, nil
}

func TestRecordHandlerListIncludesTotal(t *testing.T) {
	svc := &announcementUseCasesStub{items: []models.Announcement{{ID: "a1"}, {ID: "a2"}}}
	h := NewRecordHandler[models.Announcement, dto.AnnouncementRequest](svc, "announcement")
	c, w := newTestContext(http.MethodGet, "/api/v1/admin/announcements", nil)

	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.JSONEq(t, `{"total":2}`, string(env["meta"]))
}

func TestRecordHandlerCreate(t *testing.T) {
	svc := &announcementUseCasesStub{}
	h := NewRecordHandler[models.Announcement, dto.AnnouncementRequest](svc, "announcement")
	body := []byte(`{"title":"Enrollment","content":"Open","date":"2024-06-01"}`)
	c, w := newTestContext(http.MethodPost, "/api/v1/admin/announcements", body)

	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "Enrollment", svc.created.Title)
}

func TestRecordHandlerCreateValidationError(t *testing.T) {
	svc := &announcementUseCasesStub{createErr: appErrors.Clone(appErrors.ErrValidation, service.AnnouncementRequiredMessage)}
	h := NewRecordHandler[models.Announcement, dto.AnnouncementRequest](svc, "announcement")
	c, w := newTestContext(http.MethodPost, "/api/v1/admin/announcements", []byte(`{"title":""}`))

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), service.AnnouncementRequiredMessage)
}

func TestRecordHandlerDeleteMissing(t *testing.T) {
	h := NewRecordHandler[models.Announcement, dto.AnnouncementRequest](&announcementUseCasesStub{}, "announcement")
	c, w := newTestContext(http.MethodDelete, "/api/v1/admin/announcements/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordHandlerToggle(t *testing.T) {
	svc := &announcementUseCasesStub{}
	h := NewRecordHandler[models.Announcement, dto.AnnouncementRequest](svc, "announcement")
	c, w := newTestContext(http.MethodPatch, "/api/v1/admin/announcements/a1/toggle", nil)
	c.Params = gin.Params{{Key: "id", Value: "a1"}}

	h.Toggle(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a1", svc.toggled)
	assert.Contains(t, w.Body.String(), `"is_active":false`)
}

type exporterStub struct {
	resource, format string
}

func (e *exporterStub) Export(ctx context.Context, resource, format string) (*service.ExportFile, error) {
	e.resource, e.format = resource, format
	if format != service.FormatCSV && format != service.FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	return &service.ExportFile{Filename: resource + ".csv", ContentType: "text/csv; charset=utf-8", Data: []byte("a,b\n")}, nil
}

func TestExportHandlerDefaultsToCSV(t *testing.T) {
	exporter := &exporterStub{}
	h := NewExportHandler(exporter)
	c, w := newTestContext(http.MethodGet, "/api/v1/admin/personnel/export", nil)

	h.Download("personnel")(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "personnel", exporter.resource)
	assert.Equal(t, service.FormatCSV, exporter.format)
	assert.Equal(t, `attachment; filename="personnel.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", w.Body.String())
}

func TestExportHandlerRejectsUnknownFormat(t *testing.T) {
	h := NewExportHandler(&exporterStub{})
	c, w := newTestContext(http.MethodGet, "/api/v1/admin/personnel/export?format=xls", nil)

	h.Download("personnel")(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestMetricsHandlerReady(t *testing.T) {
	healthy := pingerFunc(func(context.Context) error { return nil })
	broken := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	h := NewMetricsHandler(service.NewMetricsService(), map[string]Pinger{"postgres": healthy})
	c, w := newTestContext(http.MethodGet, "/ready", nil)
	h.Ready(c)
	assert.Equal(t, http.StatusOK, w.Code)

	h = NewMetricsHandler(service.NewMetricsService(), map[string]Pinger{"postgres": healthy, "redis": broken})
	c, w = newTestContext(http.MethodGet, "/ready", nil)
	h.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestMetricsHandlerPrometheus(t *testing.T) {
	h := NewMetricsHandler(service.NewMetricsService(), nil)
	c, w := newTestContext(http.MethodGet, "/metrics", nil)

	h.Prometheus(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
