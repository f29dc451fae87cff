package service

import (
	"context"

	"github.com/plantarium-app/plantarium/internal/adapter"
	"github.com/plantarium-app/plantarium/internal/logger"
	"github.com/plantarium-app/plantarium/internal/store"
)

// Services groups the application services into a single value handed to the
// client binary.
type Services struct {
	// PlantList is the switch-latest filter engine over the plant catalog.
	PlantList *PlantListService
	// Garden exposes planting operations and garden views.
	Garden *GardenService
	// Gallery owns the active photo search session.
	Gallery *GalleryService
}

// NewServices wires the services over the storage layer, the persisted
// filter slot and the photo searcher. searcher may be nil when no Unsplash
// access key is configured; the gallery is then unavailable.
func NewServices(ctx context.Context, storages *store.Storages, slot GrowZoneSlot, searcher adapter.PhotoSearcher, pageSize int, log *logger.Logger) *Services {
	services := &Services{
		PlantList: NewPlantListService(ctx, storages, slot, log),
		Garden:    NewGardenService(storages.Plantings, storages, log),
	}
	if searcher != nil {
		services.Gallery = NewGalleryService(searcher, pageSize, log)
	}

	return services
}

// Close tears down every service, cancelling all in-flight derivations and
// loads.
func (s *Services) Close() {
	s.PlantList.Close()
	if s.Gallery != nil {
		s.Gallery.Close()
	}
}
