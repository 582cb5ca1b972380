package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/bcsi-site/internal/models"
	"github.com/noah-isme/bcsi-site/internal/service"
)

type fakeAccounts struct {
	created  []service.CreateAccountRequest
	resets   map[string]string
	active   map[string]bool
	createFn func(req service.CreateAccountRequest) error
}

func (f *fakeAccounts) Create(ctx context.Context, req service.CreateAccountRequest) (*models.User, error) {
	if f.createFn != nil {
		if err := f.createFn(req); err != nil {
			return nil, err
		}
	}
	f.created = append(f.created, req)
	return &models.User{ID: "u-1", Email: req.Email, Role: req.Role}, nil
}

func (f *fakeAccounts) ResetPassword(ctx context.Context, email, password string) error {
	f.resets[email] = password
	return nil
}

func (f *fakeAccounts) SetActive(ctx context.Context, email string, active bool) error {
	f.active[email] = active
	return nil
}

type fakeMigrator struct {
	upErr   error
	steps   []int
	version uint
	dirty   bool
	verErr  error
}

func (f *fakeMigrator) Up() error {
	if f.upErr == nil {
		f.version = 1
	}
	return f.upErr
}

func (f *fakeMigrator) Steps(n int) error {
	f.steps = append(f.steps, n)
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, f.verErr
}

func run(t *testing.T, accounts *fakeAccounts, m *fakeMigrator, args ...string) (string, error) {
	t.Helper()
	var root cli
	parser, err := kong.New(&root, kong.Name("siteadmin"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	err = kctx.Run(&runtime{
		Context:  context.Background(),
		out:      &out,
		logger:   zap.NewNop(),
		accounts: func() (accountManager, error) { return accounts, nil },
		migrator: func() (schemaMigrator, error) { return m, nil },
	})
	return out.String(), err
}

func newFakes() (*fakeAccounts, *fakeMigrator) {
	return &fakeAccounts{resets: map[string]string{}, active: map[string]bool{}}, &fakeMigrator{}
}

func TestCreateAdmin(t *testing.T) {
	accounts, m := newFakes()
	out, err := run(t, accounts, m, "create-admin", "--email", "admin@bcsi.edu.ph", "--name", "Registrar", "--password", "s3cret-pass")
	require.NoError(t, err)
	require.Len(t, accounts.created, 1)
	assert.Equal(t, models.RoleAdmin, accounts.created[0].Role)
	assert.Equal(t, "Registrar", accounts.created[0].FullName)
	assert.Contains(t, out, "created ADMIN account admin@bcsi.edu.ph")
}

func TestCreateAdminReadsPasswordFromEnv(t *testing.T) {
	t.Setenv("SITEADMIN_PASSWORD", "from-env-pass")
	accounts, m := newFakes()
	_, err := run(t, accounts, m, "create-admin", "--email", "e@bcsi.edu.ph", "--name", "Editor", "--role", "EDITOR")
	require.NoError(t, err)
	require.Len(t, accounts.created, 1)
	assert.Equal(t, "from-env-pass", accounts.created[0].Password)
	assert.Equal(t, models.RoleEditor, accounts.created[0].Role)
}

func TestCreateAdminRejectsUnknownRole(t *testing.T) {
	accounts, m := newFakes()
	_, err := run(t, accounts, m, "create-admin", "--email", "x@bcsi.edu.ph", "--name", "X", "--password", "pw-123456", "--role", "TEACHER")
	require.Error(t, err)
	assert.Empty(t, accounts.created)
}

func TestCreateAdminPropagatesServiceError(t *testing.T) {
	accounts, m := newFakes()
	accounts.createFn = func(service.CreateAccountRequest) error { return errors.New("email already exists") }
	_, err := run(t, accounts, m, "create-admin", "--email", "x@bcsi.edu.ph", "--name", "X", "--password", "pw-123456")
	assert.EqualError(t, err, "email already exists")
}

func TestResetPasswordAndStatus(t *testing.T) {
	accounts, m := newFakes()
	_, err := run(t, accounts, m, "reset-password", "--email", "e@bcsi.edu.ph", "--password", "another-pass")
	require.NoError(t, err)
	assert.Equal(t, "another-pass", accounts.resets["e@bcsi.edu.ph"])

	out, err := run(t, accounts, m, "disable", "--email", "e@bcsi.edu.ph")
	require.NoError(t, err)
	assert.False(t, accounts.active["e@bcsi.edu.ph"])
	assert.Contains(t, out, "disabled")

	_, err = run(t, accounts, m, "enable", "--email", "e@bcsi.edu.ph")
	require.NoError(t, err)
	assert.True(t, accounts.active["e@bcsi.edu.ph"])
}

func TestMigrateUp(t *testing.T) {
	accounts, m := newFakes()
	out, err := run(t, accounts, m, "migrate", "up")
	require.NoError(t, err)
	assert.Equal(t, "schema version 1\n", out)
}

func TestMigrateUpNoChange(t *testing.T) {
	accounts, m := newFakes()
	m.upErr = migrate.ErrNoChange
	out, err := run(t, accounts, m, "migrate", "up")
	require.NoError(t, err)
	assert.Equal(t, "schema is up to date\n", out)
}

func TestMigrateDownSteps(t *testing.T) {
	accounts, m := newFakes()
	m.verErr = migrate.ErrNilVersion
	out, err := run(t, accounts, m, "migrate", "down", "--steps", "2")
	require.NoError(t, err)
	assert.Equal(t, []int{-2}, m.steps)
	assert.Equal(t, "no migrations applied\n", out)

	_, err = run(t, accounts, m, "migrate", "down", "--steps", "0")
	assert.Error(t, err)
}

func TestMigrateVersionDirty(t *testing.T) {
	accounts, m := newFakes()
	m.version, m.dirty = 1, true
	out, err := run(t, accounts, m, "migrate", "version")
	require.NoError(t, err)
	assert.Equal(t, "schema version 1 (dirty)\n", out)
}
