package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tube-accounts/internal/adapter"
	"github.com/MKhiriev/go-tube-accounts/internal/config"
	"github.com/MKhiriev/go-tube-accounts/internal/handler"
	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/metrics"
	"github.com/MKhiriev/go-tube-accounts/internal/server"
	"github.com/MKhiriev/go-tube-accounts/internal/service"
	"github.com/MKhiriev/go-tube-accounts/internal/store"
	"github.com/MKhiriev/go-tube-accounts/internal/workers"
	"github.com/MKhiriev/go-tube-accounts/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("go-tube-accounts")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	// secrets stay out of the log
	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Str("staging_dir", cfg.Storage.Files.StagingDir).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	mediaAdapter, err := adapter.NewMediaAdapter(cfg.Adapter.Media, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating media adapter")
	}

	appMetrics := metrics.New()

	services, err := service.NewServices(storages, mediaAdapter, appMetrics, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, appMetrics, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(storages, appMetrics, *cfg, log), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
