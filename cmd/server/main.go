package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-tree-sync/internal/config"
	"github.com/MKhiriev/go-tree-sync/internal/handler"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/server"
	"github.com/MKhiriev/go-tree-sync/internal/service"
	"github.com/MKhiriev/go-tree-sync/internal/store"
	"github.com/MKhiriev/go-tree-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(info)

	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error getting configs:", err)
		os.Exit(2)
	}

	log := logger.NewLogger("tree-sync-origin", cfg.App.LogLevel)
	log.Debug().Strs("roots", cfg.Storage.Keys()).Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	if cfg.App.Version == "" {
		cfg.App.Version = info.BuildVersion()
	}

	storages := store.NewStorages(cfg.Storage, log)

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Fatal().Err(err).Msg("server run error")
	}
}
