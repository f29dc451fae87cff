package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/plantarium-app/plantarium/internal/config"
	"github.com/plantarium-app/plantarium/internal/live"
	"github.com/plantarium-app/plantarium/internal/logger"
	"github.com/plantarium-app/plantarium/models"
)

// Storages groups the local storage repositories and their observable query
// surface into a single value that is passed around the service layer.
//
// The Observe* methods are the store's "live" reads: each returns a
// [live.Stream] that delivers an initial snapshot and then a fresh one
// synchronously with every committed write to the affected tables. Writes go
// through the plain repository methods and return their errors synchronously.
type Storages struct {
	// Plants is the catalog repository over the planted_items table.
	Plants PlantRepository
	// Plantings is the garden repository over the plantings table.
	Plantings PlantingRepository

	db     *DB
	logger *logger.Logger
}

// NewStorages initialises the local storage layer: it opens the SQLite file
// from cfg.DB.DSN (creating it when absent), runs pending schema migrations
// and wires the repositories to the shared change hub.
func NewStorages(cfg config.ClientStorage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newStoragesWithDB(db, logger), nil
}

// newStoragesWithDB wires repositories over an already-open connection.
// Split out so tests can inject a mocked database.
func newStoragesWithDB(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		Plants:    NewPlantRepository(db, logger),
		Plantings: NewPlantingRepository(db, logger),
		db:        db,
		logger:    logger,
	}
}

// Close shuts the change hub (terminating every live query) and closes the
// database connection.
func (s *Storages) Close() error {
	s.db.hub.Close()
	return s.db.Close()
}

// ObservePlants is the live variant of [PlantRepository.GetPlants].
func (s *Storages) ObservePlants(ctx context.Context) *live.Stream[[]models.PlantedItem] {
	sub := s.db.hub.Subscribe(TablePlantedItems)
	return live.NewStream(ctx, sub, func(ctx context.Context) ([]models.PlantedItem, error) {
		return s.Plants.GetPlants(ctx)
	}, s.logger)
}

// ObservePlantsFiltered is the live variant of
// [PlantRepository.GetPlantsFiltered] for a fixed (growZone, searchQuery)
// pair. Callers re-subscribe with a new pair when an input changes.
func (s *Storages) ObservePlantsFiltered(ctx context.Context, growZone int, searchQuery string) *live.Stream[[]models.PlantedItem] {
	sub := s.db.hub.Subscribe(TablePlantedItems)
	return live.NewStream(ctx, sub, func(ctx context.Context) ([]models.PlantedItem, error) {
		return s.Plants.GetPlantsFiltered(ctx, growZone, searchQuery)
	}, s.logger)
}

// ObservePlant is the live variant of [PlantRepository.GetPlant]. An id
// absent from the catalog is delivered as the zero item, not treated as a
// fetch failure, so the stream still emits when the entry appears later.
func (s *Storages) ObservePlant(ctx context.Context, plantID string) *live.Stream[models.PlantedItem] {
	sub := s.db.hub.Subscribe(TablePlantedItems)
	return live.NewStream(ctx, sub, func(ctx context.Context) (models.PlantedItem, error) {
		plant, err := s.Plants.GetPlant(ctx, plantID)
		if errors.Is(err, ErrPlantNotFound) {
			return models.PlantedItem{}, nil
		}
		return plant, err
	}, s.logger)
}

// ObserveIsPlanted is the live variant of [PlantingRepository.IsPlanted].
func (s *Storages) ObserveIsPlanted(ctx context.Context, plantID string) *live.Stream[bool] {
	sub := s.db.hub.Subscribe(TablePlantings)
	return live.NewStream(ctx, sub, func(ctx context.Context) (bool, error) {
		return s.Plantings.IsPlanted(ctx, plantID)
	}, s.logger)
}

// ObservePlantedGardens is the live variant of
// [PlantingRepository.GetPlantedGardens]. It watches both tables since the
// composed view joins them.
func (s *Storages) ObservePlantedGardens(ctx context.Context) *live.Stream[[]models.PlantedItemWithPlantings] {
	sub := s.db.hub.Subscribe(TablePlantedItems, TablePlantings)
	return live.NewStream(ctx, sub, func(ctx context.Context) ([]models.PlantedItemWithPlantings, error) {
		return s.Plantings.GetPlantedGardens(ctx)
	}, s.logger)
}
