package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/plantarium-app/plantarium/internal/logger"
	"github.com/plantarium-app/plantarium/models"
)

// plantRepository is the SQLite-backed implementation of [PlantRepository].
// It reads the plant catalog from the "planted_items" table using the
// embedded [*DB] connection and announces catalog changes on the change hub
// after every committed write.
type plantRepository struct {
	*DB
	logger *logger.Logger
}

// NewPlantRepository constructs a [PlantRepository] backed by the provided
// database connection and logger.
func NewPlantRepository(db *DB, logger *logger.Logger) PlantRepository {
	return &plantRepository{
		DB:     db,
		logger: logger,
	}
}

// GetPlants returns the whole catalog ordered by display name.
func (p *plantRepository) GetPlants(ctx context.Context) ([]models.PlantedItem, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, getPlants)
	if err != nil {
		log.Err(err).
			Str("func", "plantRepository.GetPlants").
			Msg("failed to execute query for getting all plants")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanPlants(ctx, rows)
}

// GetPlantsFiltered returns catalog entries matching the composed
// (grow zone, search query) filter, ordered by name. Either predicate may be
// absent; see [buildFilteredPlantsQuery].
func (p *plantRepository) GetPlantsFiltered(ctx context.Context, growZone int, searchQuery string) ([]models.PlantedItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFilteredPlantsQuery(growZone, searchQuery)
	if err != nil {
		log.Err(err).
			Str("func", "plantRepository.GetPlantsFiltered").
			Int("grow_zone", growZone).
			Msg("failed to build filtered plants query")
		return nil, err
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "plantRepository.GetPlantsFiltered").
			Int("grow_zone", growZone).
			Str("search_query", searchQuery).
			Msg("failed to execute filtered plants query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanPlants(ctx, rows)
}

// GetPlant returns the catalog entry with the given id.
//
// Returns [ErrPlantNotFound] when no row matches.
func (p *plantRepository) GetPlant(ctx context.Context, plantID string) (models.PlantedItem, error) {
	log := logger.FromContext(ctx)

	var plant models.PlantedItem
	err := p.DB.QueryRowContext(ctx, getPlant, plantID).Scan(
		&plant.ID,
		&plant.Name,
		&plant.Description,
		&plant.GrowZoneNumber,
		&plant.WateringInterval,
		&plant.ImageURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn().
			Str("func", "plantRepository.GetPlant").
			Str("plant_id", plantID).
			Msg("plant not found")
		return models.PlantedItem{}, ErrPlantNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "plantRepository.GetPlant").
			Str("plant_id", plantID).
			Msg("failed to execute query for getting plant")
		return models.PlantedItem{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return plant, nil
}

// UpsertPlants inserts the given catalog entries inside a single transaction
// using a prepared statement, replacing existing rows on id conflict. The
// catalog change is announced on the hub only after a successful commit.
func (p *plantRepository) UpsertPlants(ctx context.Context, plants []models.PlantedItem) error {
	log := logger.FromContext(ctx)

	if len(plants) == 0 {
		log.Warn().
			Str("func", "plantRepository.UpsertPlants").
			Msg("no plants provided, skipping")
		return nil
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "plantRepository.UpsertPlants").
			Int("count", len(plants)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertPlant)
	if err != nil {
		log.Err(err).
			Str("func", "plantRepository.UpsertPlants").
			Int("count", len(plants)).
			Msg("failed to prepare statement")
		return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	for idx, plant := range plants {
		_, execErr := stmt.ExecContext(ctx,
			plant.ID,
			plant.Name,
			plant.Description,
			plant.GrowZoneNumber,
			plant.WateringInterval,
			plant.ImageURL,
		)
		if execErr != nil {
			log.Err(execErr).
				Str("func", "plantRepository.UpsertPlants").
				Int("iteration", idx+1).
				Str("plant_id", plant.ID).
				Msg("failed to execute prepared statement")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "plantRepository.UpsertPlants").
			Int("count", len(plants)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, commitErr)
	}

	p.DB.notify(TablePlantedItems)

	log.Info().
		Str("func", "plantRepository.UpsertPlants").
		Int("count", len(plants)).
		Msg("successfully upserted plants")

	return nil
}

// scanPlants drains rows into a slice of catalog entries.
func scanPlants(ctx context.Context, rows *sql.Rows) ([]models.PlantedItem, error) {
	log := logger.FromContext(ctx)

	plants := make([]models.PlantedItem, 0, 32)

	for rows.Next() {
		var plant models.PlantedItem

		scanErr := rows.Scan(
			&plant.ID,
			&plant.Name,
			&plant.Description,
			&plant.GrowZoneNumber,
			&plant.WateringInterval,
			&plant.ImageURL,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "store.scanPlants").
				Msg("failed to scan plant row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		plants = append(plants, plant)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "store.scanPlants").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return plants, nil
}
