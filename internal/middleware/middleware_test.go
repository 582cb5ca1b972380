package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bcsi-site/internal/models"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
)

type fakeAuthenticator struct {
	tokens map[string]*models.JWTClaims
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, token string) (*models.JWTClaims, error) {
	if claims, ok := f.tokens[token]; ok {
		return claims, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
}

func newAuthRouter(roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := &fakeAuthenticator{tokens: map[string]*models.JWTClaims{
		"admin-token":  {UserID: "u1", Role: models.RoleAdmin},
		"viewer-token": {UserID: "u2", Role: models.UserRole("VIEWER")},
	}}
	r := gin.New()
	r.GET("/admin", JWT(auth, "bcsi_session"), RequireRoles(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, ClaimsFrom(c).UserID)
	})
	return r
}

func TestJWTAcceptsBearerAndCookie(t *testing.T) {
	r := newAuthRouter(ContentManagers...)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "bcsi_session", Value: "admin-token"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTRejectsMissingOrInvalidToken(t *testing.T) {
	r := newAuthRouter(ContentManagers...)

	for _, header := range []string{"", "Basic abc", "Bearer ", "Bearer unknown"} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestRequireRolesForbidsOtherRoles(t *testing.T) {
	r := newAuthRouter(models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer viewer-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

type recordingAudit struct {
	logs []*models.AuditLog
	err  error
}

func (r *recordingAudit) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	r.logs = append(r.logs, log)
	return r.err
}

func TestAuditRecordsSuccessfulMutationsOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	writer := &recordingAudit{}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextUserKey, &models.JWTClaims{UserID: "u1"})
		c.Next()
	})
	group := r.Group("/announcements", Audit(writer, "announcements", nil))
	group.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	group.PATCH("/:id/toggle", func(c *gin.Context) { c.Status(http.StatusOK) })
	group.DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/announcements"},
		{http.MethodPatch, "/announcements/a1/toggle"},
		{http.MethodDelete, "/announcements/a1"},
	} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tc.method, tc.path, nil))
	}

	require.Len(t, writer.logs, 1)
	entry := writer.logs[0]
	assert.Equal(t, models.AuditActionToggle, entry.Action)
	assert.Equal(t, "announcements", entry.Resource)
	assert.Equal(t, "a1", *entry.ResourceID)
	assert.Equal(t, "u1", *entry.UserID)
	assert.Contains(t, string(entry.NewValues), `"/announcements/:id/toggle"`)
}

func TestAuditFailureDoesNotChangeResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/x", Audit(&recordingAudit{err: errors.New("db down")}, "x", nil), func(c *gin.Context) { c.Status(http.StatusCreated) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

type observed struct {
	method, path string
	status       int
}

type recordingObserver struct{ calls []observed }

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	r.calls = append(r.calls, observed{method, path, status})
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(observer, "/metrics"))
	r.GET("/organizations/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/organizations/abc", "/metrics", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, []observed{
		{http.MethodGet, "/organizations/:id", http.StatusOK},
		{http.MethodGet, "unmatched", http.StatusNotFound},
	}, observer.calls)
}

func TestCSRFDisabledPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CSRF(false, nil, false))
	r.POST("/form", func(c *gin.Context) { c.String(http.StatusOK, "token=%s", CSRFToken(c)) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/form", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token=", rec.Body.String())
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CSRF(true, []byte("0123456789abcdef0123456789abcdef"), false))
	r.GET("/form", func(c *gin.Context) { c.String(http.StatusOK, CSRFToken(c)) })
	r.POST("/form", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/form", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/form", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
