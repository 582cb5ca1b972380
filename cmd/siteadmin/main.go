// Command siteadmin applies the database schema and provisions admin accounts.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/bcsi-site/internal/repository"
	"github.com/noah-isme/bcsi-site/internal/service"
	"github.com/noah-isme/bcsi-site/pkg/config"
	"github.com/noah-isme/bcsi-site/pkg/database"
	"github.com/noah-isme/bcsi-site/pkg/logger"
)

type cli struct {
	Migrate       MigrateCmd       `cmd:"" help:"Apply or roll back the database schema"`
	CreateAdmin   CreateAdminCmd   `cmd:"" name:"create-admin" help:"Create an admin account"`
	ResetPassword ResetPasswordCmd `cmd:"" name:"reset-password" help:"Replace the password of an account"`
	Disable       DisableCmd       `cmd:"" help:"Disable an account"`
	Enable        EnableCmd        `cmd:"" help:"Re-enable an account"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &environment{cfg: cfg, logger: logr}
	defer env.Close()

	var args cli
	kctx := kong.Parse(&args,
		kong.UsageOnError(),
		kong.Name("siteadmin"),
		kong.Description("Operator tool for the BCSI website database"),
	)
	kctx.FatalIfErrorf(kctx.Run(&runtime{
		Context:  ctx,
		out:      os.Stdout,
		logger:   logr,
		accounts: env.accounts,
		migrator: env.migrator,
	}))
}

// environment opens the database on first use so --help works offline.
type environment struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *sqlx.DB
}

func (e *environment) open() (*sqlx.DB, error) {
	if e.db != nil {
		return e.db, nil
	}
	db, err := database.NewPostgres(e.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	e.db = db
	return db, nil
}

func (e *environment) accounts() (accountManager, error) {
	db, err := e.open()
	if err != nil {
		return nil, err
	}
	return service.NewAccountService(repository.NewUserRepository(db), validator.New(), e.logger), nil
}

func (e *environment) migrator() (schemaMigrator, error) {
	db, err := e.open()
	if err != nil {
		return nil, err
	}
	m, err := newMigrator(db.DB, e.cfg.Database.Name)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (e *environment) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
}
