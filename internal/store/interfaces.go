package store

import (
	"context"

	"github.com/plantarium-app/plantarium/models"
)

// PlantRepository is the read/seed surface over the plant catalog
// (planted_items table).
type PlantRepository interface {
	// GetPlants returns every catalog entry ordered by display name.
	GetPlants(ctx context.Context) ([]models.PlantedItem, error)

	// GetPlantsFiltered returns catalog entries matching the composed
	// filter: exact grow-zone match unless growZone is [models.NoGrowZone],
	// case-insensitive substring match of searchQuery against the name
	// (empty query matches everything). Ordered by name.
	GetPlantsFiltered(ctx context.Context, growZone int, searchQuery string) ([]models.PlantedItem, error)

	// GetPlant returns the catalog entry with the given id, or
	// [ErrPlantNotFound].
	GetPlant(ctx context.Context, plantID string) (models.PlantedItem, error)

	// UpsertPlants inserts the given entries, replacing on id conflict.
	// Used only by the seeding worker.
	UpsertPlants(ctx context.Context, plants []models.PlantedItem) error
}

// PlantingRepository is the read/write surface over the user's garden
// (plantings table).
type PlantingRepository interface {
	// InsertPlanting records a new planting of the given plant with the
	// current timestamp for both the plant date and the last-watering date.
	// Returns [ErrConstraintViolation] when plantID is not in the catalog.
	InsertPlanting(ctx context.Context, plantID string) (models.Planting, error)

	// DeletePlanting removes the exact planting record. Deleting an absent
	// record is a no-op.
	DeletePlanting(ctx context.Context, planting models.Planting) error

	// IsPlanted reports whether at least one planting references plantID.
	IsPlanted(ctx context.Context, plantID string) (bool, error)

	// GetPlantedGardens returns one entry per plant that has at least one
	// planting, each carrying all of its plantings ordered by plant date.
	GetPlantedGardens(ctx context.Context) ([]models.PlantedItemWithPlantings, error)
}
