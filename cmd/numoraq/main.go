package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/cli"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/cloudsync"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/config"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/db"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/logging"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/notify"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(cfg.LogLevel, os.Stderr)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	notifiers := notify.Multi{notify.NewLogNotifier(logger)}
	if cfg.SMTP.Enabled() {
		notifiers = append(notifiers, notify.NewEmailNotifier(cfg.SMTP, logger))
	}

	app := &cli.App{
		Records:    service.NewRecordService(uow, cfg.UserID, observer),
		Projection: service.NewProjectionService(uow, cfg.UserID, nil, observer),
		Links:      service.NewLinkService(uow, observer),
		Trigger:    service.NewTriggerService(uow, notifiers, logger, observer),

		Horizon:   cfg.Horizon,
		Currency:  cfg.Currency,
		HTTPAddr:  cfg.HTTPAddr,
		SweepSpec: cfg.SweepSpec,
		Logger:    logger,

		IsInteractive: func() bool { return logging.IsTerminal(os.Stdout) },
	}

	if cfg.RemoteEnabled() {
		remote, err := openRemote(cfg.RemoteDSN)
		if err != nil {
			logger.WithError(err).Warn("cloud sync unavailable")
		} else {
			defer remote.Close()
			syncer := cloudsync.NewSyncer(remote, cfg.UserID, logger)
			app.Sync = service.NewSyncService(uow, syncer, cfg.UserID, observer)
		}
	}

	return cli.NewRootCmd(app).Execute()
}

func openRemote(dsn string) (*cloudsync.PostgresRemote, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	remote, err := cloudsync.OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := remote.EnsureSchema(ctx); err != nil {
		remote.Close()
		return nil, err
	}
	return remote, nil
}
