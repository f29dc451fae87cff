package service

import (
	"context"

	"github.com/plantarium-app/plantarium/internal/live"
	"github.com/plantarium-app/plantarium/internal/logger"
	"github.com/plantarium-app/plantarium/internal/store"
	"github.com/plantarium-app/plantarium/models"
)

// GardenService exposes the operations on the user's garden: planting and
// removing plants plus the live views of what is planted.
type GardenService struct {
	plantings store.PlantingRepository
	observer  GardenObserver
	logger    *logger.Logger
}

// NewGardenService constructs the garden service.
func NewGardenService(plantings store.PlantingRepository, observer GardenObserver, log *logger.Logger) *GardenService {
	return &GardenService{
		plantings: plantings,
		observer:  observer,
		logger:    log,
	}
}

// Plant adds a new planting of the given catalog entry, stamped with the
// current time. Fails with [store.ErrConstraintViolation] when the id is
// unknown.
func (g *GardenService) Plant(ctx context.Context, plantID string) (models.Planting, error) {
	return g.plantings.InsertPlanting(ctx, plantID)
}

// Unplant removes the exact planting record; removing an absent record is a
// no-op.
func (g *GardenService) Unplant(ctx context.Context, planting models.Planting) error {
	return g.plantings.DeletePlanting(ctx, planting)
}

// ObserveIsPlanted is the live answer to "is this plant in my garden?".
func (g *GardenService) ObserveIsPlanted(ctx context.Context, plantID string) *live.Stream[bool] {
	return g.observer.ObserveIsPlanted(ctx, plantID)
}

// ObservePlantedGardens is the live composed view of every planted plant
// with all of its plantings.
func (g *GardenService) ObservePlantedGardens(ctx context.Context) *live.Stream[[]models.PlantedItemWithPlantings] {
	return g.observer.ObservePlantedGardens(ctx)
}
