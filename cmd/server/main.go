package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-project-tracker/internal/adapter"
	"github.com/MKhiriev/go-project-tracker/internal/config"
	"github.com/MKhiriev/go-project-tracker/internal/handler"
	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/internal/server"
	"github.com/MKhiriev/go-project-tracker/internal/service"
	"github.com/MKhiriev/go-project-tracker/internal/store"
	"github.com/MKhiriev/go-project-tracker/internal/validators"
	"github.com/MKhiriev/go-project-tracker/internal/workers"
	"golang.org/x/sync/errgroup"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("project-tracker")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	leveled, err := logger.NewLoggerWithLevel("project-tracker", cfg.App.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	log = leveled
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	ctx, stop := server.NotifyContext(context.Background())
	defer stop()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	validator := validators.NewSchemaValidator(log)
	services := service.NewServices(store.NewStorages(db, log), validator, *cfg, log)

	if cfg.App.DemoLogin != "" {
		if err = services.AuthService.EnsureUser(ctx, cfg.App.DemoLogin, cfg.App.DemoPassword); err != nil {
			log.Fatal().Err(err).Msg("error creating demo user")
		}
	}

	handlers, err := handler.NewHandlers(services, validator, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	var notifier adapter.NotificationAdapter
	if cfg.Adapter.NotificationWebhookURL != "" {
		if notifier, err = adapter.NewWebhookAdapter(cfg.Adapter, log); err != nil {
			log.Fatal().Err(err).Msg("error creating notification adapter")
		}
	}
	background := workers.NewWorkers(services, notifier, cfg.Workers, log)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gCtx)
	})
	g.Go(func() error {
		background.Run(gCtx)
		return nil
	})

	if err = g.Wait(); err != nil {
		log.Error().Err(err).Msg("stopped with error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
