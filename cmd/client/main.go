package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/plantarium-app/plantarium/internal/adapter"
	"github.com/plantarium-app/plantarium/internal/config"
	"github.com/plantarium-app/plantarium/internal/logger"
	"github.com/plantarium-app/plantarium/internal/service"
	"github.com/plantarium-app/plantarium/internal/store"
	"github.com/plantarium-app/plantarium/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// Best effort: a missing .env file is fine, real env vars still apply.
	_ = godotenv.Load()

	log := logger.NewClientLogger("plantarium")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storages")
	}
	defer storages.Close()

	seedCatalogIfEmpty(ctx, cfg, storages, log)

	searcher, err := adapter.NewUnsplashClient(adapter.UnsplashClientConfig{
		BaseURL:   cfg.Adapter.BaseURL,
		AccessKey: cfg.App.UnsplashAccessKey,
		Timeout:   cfg.Adapter.RequestTimeout,
	})
	if err != nil {
		if !errors.Is(err, adapter.ErrMissingAccessKey) {
			log.Fatal().Err(err).Msg("create unsplash client")
		}
		log.Warn().Msg("no unsplash access key configured, photo search disabled")
		searcher = nil
	}

	stateStore := store.NewStateStore(cfg.Storage.StateFile, log)
	services := service.NewServices(ctx, storages, stateStore, searcher, cfg.Gallery.PageSize, log)
	defer services.Close()

	log.Info().
		Bool("gallery_enabled", services.Gallery != nil).
		Bool("zone_filter_active", services.PlantList.IsFiltered()).
		Msg("plantarium is ready")

	<-ctx.Done()
	log.Info().Msg("shutting down")
}

// seedCatalogIfEmpty runs the one-time seed worker when the plant catalog
// has no entries yet. A seed failure is logged and the store stays usable
// but empty; this layer never retries.
func seedCatalogIfEmpty(ctx context.Context, cfg *config.ClientConfig, storages *store.Storages, log *logger.Logger) {
	plants, err := storages.Plants.GetPlants(ctx)
	if err != nil {
		log.Err(err).Msg("failed to check plant catalog, skipping seed")
		return
	}
	if len(plants) > 0 {
		return
	}

	seedWorker := workers.NewSeedWorker(ctx, cfg.Storage.SeedFile, storages.Plants, log)
	workers.NewWorkers(seedWorker).Run()

	select {
	case ok := <-seedWorker.Result():
		if !ok {
			log.Warn().Str("seed_file", cfg.Storage.SeedFile).Msg("plant catalog seeding failed, starting with an empty catalog")
		}
	case <-ctx.Done():
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
