// Package service contains the application services layered over the local
// store and the Unsplash adapter: the switch-latest plant-list filter
// engine, the garden operations and the paged photo gallery.
package service

import (
	"context"

	"github.com/plantarium-app/plantarium/internal/live"
	"github.com/plantarium-app/plantarium/models"
)

// FilteredPlantObserver is the slice of the store consumed by
// [PlantListService]: a live filtered query over the plant catalog for one
// fixed (growZone, searchQuery) pair.
type FilteredPlantObserver interface {
	ObservePlantsFiltered(ctx context.Context, growZone int, searchQuery string) *live.Stream[[]models.PlantedItem]
}

// GardenObserver is the slice of the store consumed by [GardenService]: the
// live queries over the user's plantings.
type GardenObserver interface {
	ObserveIsPlanted(ctx context.Context, plantID string) *live.Stream[bool]
	ObservePlantedGardens(ctx context.Context) *live.Stream[[]models.PlantedItemWithPlantings]
}

// GrowZoneSlot is the restart-surviving slot holding the selected grow-zone
// filter. The filter engine reads it once at construction and writes it back
// on every zone change.
type GrowZoneSlot interface {
	GrowZone() int
	SetGrowZone(growZone int) error
}
