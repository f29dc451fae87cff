package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/plantarium-app/plantarium/internal/logger"
	"github.com/plantarium-app/plantarium/models"
)

// plantingRepository is the SQLite-backed implementation of
// [PlantingRepository]. It owns the "plantings" table and announces garden
// changes on the change hub after every committed write.
type plantingRepository struct {
	*DB
	logger *logger.Logger

	// now is swapped in tests to pin planting timestamps.
	now func() time.Time
}

// NewPlantingRepository constructs a [PlantingRepository] backed by the
// provided database connection and logger.
func NewPlantingRepository(db *DB, logger *logger.Logger) PlantingRepository {
	return &plantingRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

// InsertPlanting records a new planting of the given plant. Both the plant
// date and the last-watering date are set to the current time.
//
// Returns [ErrConstraintViolation] when plantID does not reference an
// existing catalog entry.
func (p *plantingRepository) InsertPlanting(ctx context.Context, plantID string) (models.Planting, error) {
	log := logger.FromContext(ctx)

	now := p.now()

	res, err := p.DB.ExecContext(ctx, insertPlanting, plantID, now, now)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			log.Warn().
				Str("func", "plantingRepository.InsertPlanting").
				Str("plant_id", plantID).
				Msg("planting references unknown plant")
			return models.Planting{}, fmt.Errorf("%w: unknown plant id %q", ErrConstraintViolation, plantID)
		}

		log.Err(err).
			Str("func", "plantingRepository.InsertPlanting").
			Str("plant_id", plantID).
			Msg("failed to insert planting")
		return models.Planting{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		log.Err(err).
			Str("func", "plantingRepository.InsertPlanting").
			Str("plant_id", plantID).
			Msg("failed to read generated planting id")
		return models.Planting{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	p.DB.notify(TablePlantings)

	log.Info().
		Str("func", "plantingRepository.InsertPlanting").
		Str("plant_id", plantID).
		Int64("planting_id", id).
		Msg("successfully inserted planting")

	return models.Planting{
		ID:               id,
		PlantID:          plantID,
		PlantDate:        now,
		LastWateringDate: now,
	}, nil
}

// DeletePlanting removes the exact planting record. Deleting a record that
// is already absent is a no-op.
func (p *plantingRepository) DeletePlanting(ctx context.Context, planting models.Planting) error {
	log := logger.FromContext(ctx)

	res, err := p.DB.ExecContext(ctx, deletePlanting, planting.ID)
	if err != nil {
		log.Err(err).
			Str("func", "plantingRepository.DeletePlanting").
			Int64("planting_id", planting.ID).
			Msg("failed to delete planting")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "plantingRepository.DeletePlanting").
			Int64("planting_id", planting.ID).
			Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected == 0 {
		log.Debug().
			Str("func", "plantingRepository.DeletePlanting").
			Int64("planting_id", planting.ID).
			Msg("planting already absent, nothing to delete")
		return nil
	}

	p.DB.notify(TablePlantings)

	log.Info().
		Str("func", "plantingRepository.DeletePlanting").
		Int64("planting_id", planting.ID).
		Msg("successfully deleted planting")

	return nil
}

// IsPlanted reports whether at least one planting references plantID.
func (p *plantingRepository) IsPlanted(ctx context.Context, plantID string) (bool, error) {
	log := logger.FromContext(ctx)

	var planted bool
	if err := p.DB.QueryRowContext(ctx, isPlanted, plantID).Scan(&planted); err != nil {
		log.Err(err).
			Str("func", "plantingRepository.IsPlanted").
			Str("plant_id", plantID).
			Msg("failed to execute exists query")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return planted, nil
}

// GetPlantedGardens returns one composed view per distinct plant that has at
// least one planting. Plants are ordered by name and each view carries all
// of its plantings ordered by plant date.
func (p *plantingRepository) GetPlantedGardens(ctx context.Context) ([]models.PlantedItemWithPlantings, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, getPlantedGardens)
	if err != nil {
		log.Err(err).
			Str("func", "plantingRepository.GetPlantedGardens").
			Msg("failed to execute planted gardens query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	gardens := make([]models.PlantedItemWithPlantings, 0, 16)

	for rows.Next() {
		var plant models.PlantedItem
		var planting models.Planting

		scanErr := rows.Scan(
			&plant.ID,
			&plant.Name,
			&plant.Description,
			&plant.GrowZoneNumber,
			&plant.WateringInterval,
			&plant.ImageURL,
			&planting.ID,
			&planting.PlantID,
			&planting.PlantDate,
			&planting.LastWateringDate,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "plantingRepository.GetPlantedGardens").
				Msg("failed to scan planted garden row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		// Rows arrive grouped by plant; append to the current group while
		// the plant id is unchanged.
		if n := len(gardens); n > 0 && gardens[n-1].Plant.ID == plant.ID {
			gardens[n-1].Plantings = append(gardens[n-1].Plantings, planting)
			continue
		}

		garden, buildErr := models.NewPlantedItemWithPlantings(plant, []models.Planting{planting})
		if buildErr != nil {
			return nil, buildErr
		}
		gardens = append(gardens, garden)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "plantingRepository.GetPlantedGardens").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return gardens, nil
}
