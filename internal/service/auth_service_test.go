package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/bcsi-site/internal/models"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
)

type mockAuthRepo struct {
	userByEmail       *models.User
	findByEmailErr    error
	findByIDErr       error
	updatePasswordErr error
	auditLogs         []*models.AuditLog
	lastLoginUpdated  bool
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	if m.userByEmail == nil {
		return nil, sql.ErrNoRows
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findByIDErr != nil {
		return nil, m.findByIDErr
	}
	if m.userByEmail == nil || m.userByEmail.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func (m *mockAuthRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	if m.updatePasswordErr != nil {
		return m.updatePasswordErr
	}
	if m.userByEmail != nil && m.userByEmail.ID == id {
		m.userByEmail.PasswordHash = passwordHash
	}
	return nil
}

func (m *mockAuthRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

type mockSessions struct {
	revoked  map[string]time.Duration
	failures map[string]int64
	readErr  error
}

func newMockSessions() *mockSessions {
	return &mockSessions{revoked: map[string]time.Duration{}, failures: map[string]int64{}}
}

func (m *mockSessions) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	m.revoked[tokenID] = ttl
	return nil
}

func (m *mockSessions) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if m.readErr != nil {
		return false, m.readErr
	}
	_, ok := m.revoked[tokenID]
	return ok, nil
}

func (m *mockSessions) RecordFailedLogin(ctx context.Context, key string, window time.Duration) (int64, error) {
	m.failures[key]++
	return m.failures[key], nil
}

func (m *mockSessions) FailedLogins(ctx context.Context, key string) (int64, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	return m.failures[key], nil
}

func (m *mockSessions) ResetFailedLogins(ctx context.Context, key string) error {
	delete(m.failures, key)
	return nil
}

var testAuthConfig = AuthConfig{
	AccessTokenSecret: "secret",
	AccessTokenExpiry: time.Hour,
	Issuer:            "bcsi-site",
	MaxLoginAttempts:  3,
	LockoutWindow:     15 * time.Minute,
}

func newTestUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{ID: "u1", Email: "admin@bcsi.edu.ph", FullName: "Site Admin", PasswordHash: string(hash), Active: true, Role: models.RoleAdmin}
}

func newAuthService(repo *mockAuthRepo, sessions *mockSessions) *AuthService {
	return NewAuthService(repo, sessions, validator.New(), NewMetricsService(), zap.NewNop(), testAuthConfig)
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	repo := &mockAuthRepo{userByEmail: newTestUser(t, "password")}
	sessions := newMockSessions()
	sessions.failures["admin@bcsi.edu.ph"] = 2
	svc := newAuthService(repo, sessions)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "Admin@BCSI.edu.ph", Password: "password", IP: "10.0.0.1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, models.RoleAdmin, res.User.Role)
	assert.True(t, repo.lastLoginUpdated)
	assert.NotContains(t, sessions.failures, "admin@bcsi.edu.ph")
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionLogin, repo.auditLogs[0].Action)
	assert.Equal(t, "10.0.0.1", repo.auditLogs[0].IPAddress)
}

func TestAuthServiceLoginInactive(t *testing.T) {
	user := newTestUser(t, "password")
	user.Active = false
	svc := newAuthService(&mockAuthRepo{userByEmail: user}, newMockSessions())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginValidation(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{}, newMockSessions())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAuthServiceLockoutAfterRepeatedFailures(t *testing.T) {
	repo := &mockAuthRepo{userByEmail: newTestUser(t, "password")}
	sessions := newMockSessions()
	svc := newAuthService(repo, sessions)
	ctx := context.Background()

	for i := 0; i < testAuthConfig.MaxLoginAttempts; i++ {
		_, err := svc.Login(ctx, models.LoginRequest{Email: "admin@bcsi.edu.ph", Password: "wrong"})
		assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	}

	_, err := svc.Login(ctx, models.LoginRequest{Email: "admin@bcsi.edu.ph", Password: "password"})
	assert.ErrorIs(t, err, appErrors.ErrLockedOut)
	assert.False(t, repo.lastLoginUpdated)
}

func TestAuthServiceUnknownEmailCountsAsFailure(t *testing.T) {
	sessions := newMockSessions()
	svc := newAuthService(&mockAuthRepo{}, sessions)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@bcsi.edu.ph", Password: "x"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	assert.Equal(t, int64(1), sessions.failures["nobody@bcsi.edu.ph"])
}

func TestAuthServiceLoginRepoError(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{findByEmailErr: errors.New("db down")}, newMockSessions())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@bcsi.edu.ph", Password: "x"})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestAuthServiceLogoutRevokesToken(t *testing.T) {
	repo := &mockAuthRepo{userByEmail: newTestUser(t, "password")}
	sessions := newMockSessions()
	svc := newAuthService(repo, sessions)
	ctx := context.Background()

	res, err := svc.Login(ctx, models.LoginRequest{Email: "admin@bcsi.edu.ph", Password: "password"})
	require.NoError(t, err)

	claims, err := svc.Authenticate(ctx, res.AccessToken)
	require.NoError(t, err)
	require.NotEmpty(t, claims.ID)

	require.NoError(t, svc.Logout(ctx, claims, models.LoginRequest{}))
	assert.Greater(t, sessions.revoked[claims.ID], time.Duration(0))

	_, err = svc.Authenticate(ctx, res.AccessToken)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	assert.Equal(t, models.AuditActionLogout, repo.auditLogs[len(repo.auditLogs)-1].Action)
}

func TestAuthServiceAuthenticateFailsOpenOnRedisError(t *testing.T) {
	repo := &mockAuthRepo{userByEmail: newTestUser(t, "password")}
	sessions := newMockSessions()
	svc := newAuthService(repo, sessions)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@bcsi.edu.ph", Password: "password"})
	require.NoError(t, err)

	sessions.readErr = errors.New("redis down")
	claims, err := svc.Authenticate(context.Background(), res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}

func TestAuthServiceMe(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{userByEmail: newTestUser(t, "password")}, newMockSessions())

	info, err := svc.Me(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Site Admin", info.FullName)

	_, err = svc.Me(context.Background(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestAuthServiceChangePassword(t *testing.T) {
	user := newTestUser(t, "oldpassword")
	oldHash := user.PasswordHash
	repo := &mockAuthRepo{userByEmail: user}
	svc := newAuthService(repo, newMockSessions())

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "newpassword"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	err = svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{OldPassword: "oldpassword", NewPassword: "newpassword"})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, repo.userByEmail.PasswordHash)
}

func TestValidateToken(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{}, newMockSessions())
	user := &models.User{ID: "u1", Email: "user@example.com", Role: models.RoleAdmin}
	token, _, err := svc.generateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	other := NewAuthService(&mockAuthRepo{}, nil, nil, nil, nil, AuthConfig{AccessTokenSecret: "other", Issuer: "bcsi-site"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
