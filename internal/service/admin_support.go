package service

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
)

// Mutation actions reported to metrics.
const (
	actionCreate = "create"
	actionUpdate = "update"
	actionDelete = "delete"
	actionToggle = "toggle"
)

// storeError maps a repository error onto the API error space.
func storeError(err error, notFound, failure string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return appErrors.Internal(err, failure)
}

func validatePayload(v *validator.Validate, payload interface{}, message string) error {
	if err := v.Struct(payload); err != nil {
		return appErrors.Validation(err, message)
	}
	return nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func newValidator(v *validator.Validate) *validator.Validate {
	if v == nil {
		return validator.New()
	}
	return v
}
