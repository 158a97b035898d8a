package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"go.uber.org/zap"

	"kara/internal/advice"
	"kara/internal/cli"
	"kara/internal/config"
	"kara/internal/logging"
	"kara/internal/repository"
)

// app holds the long-lived pieces a session runs on.
type app struct {
	db      *sql.DB
	tasks   *repository.TaskRepository
	advisor *advice.Advisor
}

// newApp connects to the database, optionally bootstraps the schema and
// builds the advisor.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	db, dialect, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.EnsureSchema {
		if err := repository.EnsureSchema(ctx, db, dialect); err != nil {
			db.Close()
			return nil, err
		}
	}

	gateway := repository.NewGateway(
		repository.NewConnector(db),
		dialect,
		logger.Named("repository"),
		repository.WithQueryTimeout(cfg.Database.QueryTimeout),
	)

	logger.Debug("connected to database",
		zap.String("dialect", string(dialect)),
		zap.Bool("generator_enabled", cfg.Generator.Enabled))

	return &app{
		db:      db,
		tasks:   repository.NewTaskRepository(gateway),
		advisor: advice.FromConfig(cfg.Generator, logger.Named("advice")),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// startSession is the root command's action.
func startSession(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	logger := logging.New(cfg.Application)
	defer logger.Sync()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer a.Close()

	session := cli.NewSession(a.tasks, a.advisor, in, out, cli.SessionOptions{
		Display:  cfg.Display,
		Terminal: cli.DetectTerminal(out),
		Logger:   logger.Named("session"),
	})
	return session.Run(ctx)
}
