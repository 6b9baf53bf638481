package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-doc-vault/internal/adapter"
	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/handler"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/server"
	"github.com/MKhiriev/go-doc-vault/internal/service"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/workers"
	"github.com/MKhiriev/go-doc-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := getBuildInfo()
	fmt.Println(build)

	log := logger.NewLogger("go-doc-vault-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err = run(ctx, cfg, build, log); err != nil {
		log.Err(err).Msg("application stopped with error")
		stop()
		os.Exit(1)
	}
	log.Info().Msg("application stopped")
}

// run wires the application and blocks until ctx is done or the server fails.
// Storages opened here are closed on every return path.
func run(ctx context.Context, cfg *config.StructuredConfig, build models.AppBuildInfo, log *logger.Logger) error {
	var storageOpts []store.StoragesOption
	if cfg.Storage.Blob.Backend == config.BackendIPFS {
		ipfs, err := adapter.NewIPFSBlobStore(cfg.Storage.Blob, log)
		if err != nil {
			return fmt.Errorf("error creating IPFS blob store: %w", err)
		}
		storageOpts = append(storageOpts, store.WithBlobStore(ipfs))
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log, storageOpts...)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, cfg, build, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bgWorkers := workers.NewWorkers(services, cfg.Workers, log)
	bgWorkers.Run(ctx)

	err = srv.RunServer(ctx)
	cancel()
	bgWorkers.Wait()
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func getBuildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
