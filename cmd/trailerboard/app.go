package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/creamcroissant/trailerboard/internal/api"
	"github.com/creamcroissant/trailerboard/internal/bootstrap"
	"github.com/creamcroissant/trailerboard/internal/config"
	"github.com/creamcroissant/trailerboard/internal/migrations"
	"github.com/creamcroissant/trailerboard/internal/repository/sqlite"
	"github.com/creamcroissant/trailerboard/internal/security"
	"github.com/creamcroissant/trailerboard/internal/service"
	"github.com/creamcroissant/trailerboard/internal/support/logging"
)

// app is the wiring shared by serve, tui and the one-shot commands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *sql.DB
	store    *sqlite.Store
	infra    *bootstrap.Infrastructure
	services api.Services
}

// openApp loads config, opens and migrates the database and builds every
// service. logOut overrides the log destination when non-nil.
func openApp(ctx context.Context, logOut io.Writer) (*app, error) {
	bootTime := time.Now().UTC()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.App.Version == "" || cfg.App.Version == "dev" {
		cfg.App.Version = Version
	}

	logger := logging.New(logging.Options{
		Level:     cfg.Log.SlogLevel(),
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
		Output:    logOut,
	})

	db, err := bootstrap.OpenSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, err
	}
	if err := migrations.Up(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	infra, err := bootstrap.BuildInfrastructure(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	store := sqlite.NewStore(db)
	audit := security.NewLoggerRecorder(logger)
	services := api.Services{
		Board: service.NewOrderBoardService(service.OrderBoardOptions{
			Orders:       store.Orders(),
			Cache:        infra.Cache,
			Logger:       logger,
			Audit:        audit,
			Locale:       infra.Locale,
			FetchRetries: cfg.Board.FetchRetries,
			CacheTTL:     cfg.Board.CacheTTL,
		}),
		Schedule: service.NewScheduleService(service.ScheduleOptions{
			Orders:    store.Orders(),
			Shipments: store.Shipments(),
			Cache:     infra.Cache,
			Logger:    logger,
			Audit:     audit,
			Locale:    infra.Locale,
		}),
		Contacts: service.NewContactService(store.Contacts(), infra.Locale),
		Pricing:  service.NewPricingService(store.PriceItems(), infra.Locale),
		System: service.NewSystemService(service.SystemOptions{
			Version:     cfg.App.Version,
			Environment: cfg.App.Environment,
			StartedAt:   bootTime,
			Orders:      store.Orders(),
		}),
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		store:    store,
		infra:    infra,
		services: services,
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
