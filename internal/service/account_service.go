package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/bcsi-site/internal/models"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
)

type accountRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// CreateAccountRequest is the payload for provisioning an admin account.
type CreateAccountRequest struct {
	Email    string          `validate:"required,email"`
	FullName string          `validate:"required,max=255"`
	Role     models.UserRole `validate:"required,oneof=SUPERADMIN ADMIN EDITOR"`
	Password string          `validate:"required,min=8"`
}

// AccountService provisions admin accounts. It backs the operator CLI; the site
// itself has no sign-up flow.
type AccountService struct {
	repo      accountRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

func NewAccountService(repo accountRepository, validate *validator.Validate, logger *zap.Logger) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{repo: repo, validator: newValidator(validate), logger: logger, now: time.Now}
}

// Create adds an active account. Emails are stored lower-cased and must be unique.
func (s *AccountService) Create(ctx context.Context, req CreateAccountRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if err := validatePayload(s.validator, req, "invalid account payload"); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Internal(err, "failed to check email uniqueness")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to hash password")
	}

	user := &models.User{
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         req.Role,
		Active:       true,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Internal(err, "failed to create account")
	}

	s.audit(ctx, models.AuditActionAccountCreate, user.ID, map[string]interface{}{"email": user.Email, "role": user.Role})
	return user, nil
}

// ResetPassword replaces the password of the account registered under email.
func (s *AccountService) ResetPassword(ctx context.Context, email, password string) error {
	if err := s.validator.Var(password, "required,min=8"); err != nil {
		return appErrors.Validation(err, "password must be at least 8 characters")
	}
	user, err := s.find(ctx, email)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Internal(err, "failed to hash password")
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash), s.now().UTC()); err != nil {
		return storeError(err, "account not found", "failed to reset password")
	}
	s.audit(ctx, models.AuditActionPasswordReset, user.ID, nil)
	return nil
}

// SetActive enables or disables the account registered under email. Disabled
// accounts are refused at login with ErrInactiveAccount.
func (s *AccountService) SetActive(ctx context.Context, email string, active bool) error {
	user, err := s.find(ctx, email)
	if err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, user.ID, active, s.now().UTC()); err != nil {
		return storeError(err, "account not found", "failed to update account")
	}
	s.audit(ctx, models.AuditActionAccountStatus, user.ID, map[string]interface{}{"active": active})
	return nil
}

func (s *AccountService) find(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, storeError(err, "account not found", "failed to load account")
	}
	return user, nil
}

func (s *AccountService) audit(ctx context.Context, action, userID string, values map[string]interface{}) {
	entry := &models.AuditLog{
		Action:     action,
		Resource:   "users",
		ResourceID: &userID,
		UserAgent:  "siteadmin",
	}
	if values != nil {
		entry.NewValues, _ = json.Marshal(values)
	}
	if err := s.repo.CreateAuditLog(ctx, entry); err != nil {
		s.logger.Warn("failed to record account audit log", zap.String("action", action), zap.Error(err))
	}
}
