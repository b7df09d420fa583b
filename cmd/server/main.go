package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-med-tracker/internal/audit"
	"github.com/MKhiriev/go-med-tracker/internal/config"
	"github.com/MKhiriev/go-med-tracker/internal/handler"
	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/internal/server"
	"github.com/MKhiriev/go-med-tracker/internal/service"
	"github.com/MKhiriev/go-med-tracker/internal/store"
	"github.com/MKhiriev/go-med-tracker/internal/utils"
	"github.com/MKhiriev/go-med-tracker/internal/workers"
	"github.com/MKhiriev/go-med-tracker/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("go-med-tracker-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if !logger.SetLevel(cfg.App.LogLevel) && cfg.App.LogLevel != "" {
		log.Warn().Str("level", cfg.App.LogLevel).Msg("unknown log level, keeping debug")
	}
	log.Debug().Str("environment", cfg.App.Environment).Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	recorder := audit.Multi(audit.NewLogRecorder(log), audit.NewCounter())
	clock := utils.NewSystemClock()

	services, err := service.NewServicesWithClock(storages, cfg, recorder, clock, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	background, err := workers.NewWorkers(services, cfg.Workers, clock, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating workers")
	}

	srv, err := server.NewServer(handlers, background, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", orNA(info.BuildVersion()))
	fmt.Printf("Build date: %s\n", orNA(info.BuildDate()))
	fmt.Printf("Build commit: %s\n", orNA(info.BuildCommit()))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
