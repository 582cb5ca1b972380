package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/noah-isme/bcsi-site/internal/models"
	"github.com/noah-isme/bcsi-site/internal/service"
	"github.com/noah-isme/bcsi-site/migrations"
)

type accountManager interface {
	Create(ctx context.Context, req service.CreateAccountRequest) (*models.User, error)
	ResetPassword(ctx context.Context, email, password string) error
	SetActive(ctx context.Context, email string, active bool) error
}

// schemaMigrator is the subset of *migrate.Migrate the commands drive.
type schemaMigrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
}

// runtime is bound to every command's Run method.
type runtime struct {
	context.Context
	out      io.Writer
	logger   *zap.Logger
	accounts func() (accountManager, error)
	migrator func() (schemaMigrator, error)
}

func newMigrator(db *sql.DB, databaseName string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{DatabaseName: databaseName})
	if err != nil {
		return nil, fmt.Errorf("init migrate driver: %w", err)
	}
	return migrate.NewWithInstance("iofs", src, "postgres", driver)
}

type MigrateCmd struct {
	Up      MigrateUpCmd      `cmd:"" default:"1" help:"Apply all pending migrations"`
	Down    MigrateDownCmd    `cmd:"" help:"Roll back migrations"`
	Version MigrateVersionCmd `cmd:"" help:"Print the applied schema version"`
}

type MigrateUpCmd struct{}

func (c *MigrateUpCmd) Run(rt *runtime) error {
	m, err := rt.migrator()
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Fprintln(rt.out, "schema is up to date")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	return printVersion(rt, m)
}

type MigrateDownCmd struct {
	Steps int `help:"Number of migrations to roll back" default:"1"`
}

func (c *MigrateDownCmd) Run(rt *runtime) error {
	if c.Steps < 1 {
		return errors.New("--steps must be at least 1")
	}
	m, err := rt.migrator()
	if err != nil {
		return err
	}
	if err := m.Steps(-c.Steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return printVersion(rt, m)
}

type MigrateVersionCmd struct{}

func (c *MigrateVersionCmd) Run(rt *runtime) error {
	m, err := rt.migrator()
	if err != nil {
		return err
	}
	return printVersion(rt, m)
}

func printVersion(rt *runtime, m schemaMigrator) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Fprintln(rt.out, "no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		fmt.Fprintf(rt.out, "schema version %d (dirty)\n", version)
		return nil
	}
	fmt.Fprintf(rt.out, "schema version %d\n", version)
	return nil
}

type CreateAdminCmd struct {
	Email    string `required:"" help:"Login email"`
	Name     string `required:"" help:"Display name"`
	Role     string `default:"ADMIN" enum:"SUPERADMIN,ADMIN,EDITOR" help:"Account role"`
	Password string `required:"" env:"SITEADMIN_PASSWORD" help:"Initial password"`
}

func (c *CreateAdminCmd) Run(rt *runtime) error {
	accounts, err := rt.accounts()
	if err != nil {
		return err
	}
	user, err := accounts.Create(rt, service.CreateAccountRequest{
		Email:    c.Email,
		FullName: c.Name,
		Role:     models.UserRole(c.Role),
		Password: c.Password,
	})
	if err != nil {
		return err
	}
	rt.logger.Info("account created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	fmt.Fprintf(rt.out, "created %s account %s (%s)\n", user.Role, user.Email, user.ID)
	return nil
}

type ResetPasswordCmd struct {
	Email    string `required:"" help:"Login email"`
	Password string `required:"" env:"SITEADMIN_PASSWORD" help:"New password"`
}

func (c *ResetPasswordCmd) Run(rt *runtime) error {
	accounts, err := rt.accounts()
	if err != nil {
		return err
	}
	if err := accounts.ResetPassword(rt, c.Email, c.Password); err != nil {
		return err
	}
	fmt.Fprintf(rt.out, "password reset for %s\n", c.Email)
	return nil
}

type DisableCmd struct {
	Email string `required:"" help:"Login email"`
}

func (c *DisableCmd) Run(rt *runtime) error {
	return setActive(rt, c.Email, false)
}

type EnableCmd struct {
	Email string `required:"" help:"Login email"`
}

func (c *EnableCmd) Run(rt *runtime) error {
	return setActive(rt, c.Email, true)
}

func setActive(rt *runtime, email string, active bool) error {
	accounts, err := rt.accounts()
	if err != nil {
		return err
	}
	if err := accounts.SetActive(rt, email, active); err != nil {
		return err
	}
	state := "disabled"
	if active {
		state = "enabled"
	}
	fmt.Fprintf(rt.out, "%s %s\n", email, state)
	return nil
}
