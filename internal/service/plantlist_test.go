package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantarium-app/plantarium/internal/live"
	"github.com/plantarium-app/plantarium/internal/logger"
	"github.com/plantarium-app/plantarium/models"
)

// fakePlantStore is an in-memory FilteredPlantObserver backed by a real
// change hub, so derivations behave exactly like those over the SQLite store.
type fakePlantStore struct {
	hub *live.Hub

	mu     sync.Mutex
	plants []models.PlantedItem
}

func newFakePlantStore(plants ...models.PlantedItem) *fakePlantStore {
	return &fakePlantStore{hub: live.NewHub(), plants: plants}
}

func (f *fakePlantStore) setPlants(plants ...models.PlantedItem) {
	f.mu.Lock()
	f.plants = plants
	f.mu.Unlock()
	f.hub.Notify("planted_items")
}

func (f *fakePlantStore) ObservePlantsFiltered(ctx context.Context, growZone int, searchQuery string) *live.Stream[[]models.PlantedItem] {
	sub := f.hub.Subscribe("planted_items")
	return live.NewStream(ctx, sub, func(context.Context) ([]models.PlantedItem, error) {
		f.mu.Lock()
		defer f.mu.Unlock()

		matched := make([]models.PlantedItem, 0, len(f.plants))
		for _, p := range f.plants {
			if growZone != models.NoGrowZone && p.GrowZoneNumber != growZone {
				continue
			}
			if searchQuery != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(searchQuery)) {
				continue
			}
			matched = append(matched, p)
		}
		return matched, nil
	}, logger.Nop())
}

// fakeSlot is an in-memory GrowZoneSlot recording every write.
type fakeSlot struct {
	mu     sync.Mutex
	zone   int
	writes []int
	err    error
}

func newFakeSlot(zone int) *fakeSlot {
	return &fakeSlot{zone: zone}
}

func (f *fakeSlot) GrowZone() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.zone
}

func (f *fakeSlot) SetGrowZone(zone int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.zone = zone
	f.writes = append(f.writes, zone)
	return nil
}

func (f *fakeSlot) recorded() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.writes...)
}

var (
	apple   = models.PlantedItem{ID: "malus-pumila", Name: "Apple", GrowZoneNumber: 3}
	tomato  = models.PlantedItem{ID: "solanum-lycopersicum", Name: "Tomato", GrowZoneNumber: 9}
	avocado = models.PlantedItem{ID: "persea-americana", Name: "Avocado", GrowZoneNumber: 9}
)

func plantNames(plants []models.PlantedItem) []string {
	names := make([]string, 0, len(plants))
	for _, p := range plants {
		names = append(names, p.Name)
	}
	return names
}

// waitForPlants consumes snapshots until one matches the wanted names.
func waitForPlants(t *testing.T, ch <-chan []models.PlantedItem, want []string) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	var last []string
	for {
		select {
		case snapshot, ok := <-ch:
			if !ok {
				t.Fatalf("plants channel closed; want %v, last seen %v", want, last)
			}
			last = plantNames(snapshot)
			if assert.ObjectsAreEqual(want, last) {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v, last seen %v", want, last)
		}
	}
}

func TestPlantListService_InitialSnapshotUsesPersistedZone(t *testing.T) {
	store := newFakePlantStore(apple, tomato, avocado)
	defer store.hub.Close()

	svc := NewPlantListService(context.Background(), store, newFakeSlot(9), logger.Nop())
	defer svc.Close()

	waitForPlants(t, svc.Plants(), []string{"Tomato", "Avocado"})
	assert.True(t, svc.IsFiltered())
}

func TestPlantListService_SetGrowZone(t *testing.T) {
	store := newFakePlantStore(apple, tomato, avocado)
	defer store.hub.Close()

	slot := newFakeSlot(models.NoGrowZone)
	svc := NewPlantListService(context.Background(), store, slot, logger.Nop())
	defer svc.Close()

	waitForPlants(t, svc.Plants(), []string{"Apple", "Tomato", "Avocado"})
	assert.False(t, svc.IsFiltered())

	require.NoError(t, svc.SetGrowZone(9))
	waitForPlants(t, svc.Plants(), []string{"Tomato", "Avocado"})

	assert.True(t, svc.IsFiltered())
	assert.Equal(t, []int{9}, slot.recorded())
}

func TestPlantListService_SetGrowZoneIdempotent(t *testing.T) {
	store := newFakePlantStore(apple, tomato)
	defer store.hub.Close()

	slot := newFakeSlot(models.NoGrowZone)
	svc := NewPlantListService(context.Background(), store, slot, logger.Nop())
	defer svc.Close()

	require.NoError(t, svc.SetGrowZone(9))
	require.NoError(t, svc.SetGrowZone(9))

	// Re-setting the current zone neither re-derives nor re-persists.
	assert.Equal(t, []int{9}, slot.recorded())
}

func TestPlantListService_SearchQueryComposesWithZone(t *testing.T) {
	store := newFakePlantStore(apple, tomato, avocado)
	defer store.hub.Close()

	svc := NewPlantListService(context.Background(), store, newFakeSlot(models.NoGrowZone), logger.Nop())
	defer svc.Close()

	require.NoError(t, svc.SetGrowZone(9))
	svc.SetSearchQuery("to")

	waitForPlants(t, svc.Plants(), []string{"Tomato"})
	assert.Equal(t, models.FilterState{GrowZone: 9, SearchQuery: "to"}, svc.FilterState())
}

func TestPlantListService_QuerySurvivesZoneClear(t *testing.T) {
	store := newFakePlantStore(apple, tomato, avocado)
	defer store.hub.Close()

	svc := NewPlantListService(context.Background(), store, newFakeSlot(9), logger.Nop())
	defer svc.Close()

	svc.SetSearchQuery("av")
	waitForPlants(t, svc.Plants(), []string{"Avocado"})

	require.NoError(t, svc.ClearGrowZone())

	assert.Equal(t, models.FilterState{GrowZone: models.NoGrowZone, SearchQuery: "av"}, svc.FilterState())
	waitForPlants(t, svc.Plants(), []string{"Avocado"})
}

func TestPlantListService_ReemitsOnCatalogChange(t *testing.T) {
	store := newFakePlantStore(apple)
	defer store.hub.Close()

	svc := NewPlantListService(context.Background(), store, newFakeSlot(models.NoGrowZone), logger.Nop())
	defer svc.Close()

	waitForPlants(t, svc.Plants(), []string{"Apple"})

	store.setPlants(apple, tomato)
	waitForPlants(t, svc.Plants(), []string{"Apple", "Tomato"})
}

func TestPlantListService_RapidQueryChangesSettleOnLatest(t *testing.T) {
	store := newFakePlantStore(apple, tomato, avocado)
	defer store.hub.Close()

	svc := NewPlantListService(context.Background(), store, newFakeSlot(models.NoGrowZone), logger.Nop())
	defer svc.Close()

	svc.SetSearchQuery("to")
	svc.SetSearchQuery("av")

	waitForPlants(t, svc.Plants(), []string{"Avocado"})

	// After the latest pair's snapshot arrived, no snapshot of the
	// abandoned pair can follow.
	select {
	case snapshot, ok := <-svc.Plants():
		if ok {
			assert.Equal(t, []string{"Avocado"}, plantNames(snapshot))
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPlantListService_PersistFailureSurfacesButFilterApplies(t *testing.T) {
	store := newFakePlantStore(apple, tomato)
	defer store.hub.Close()

	slot := newFakeSlot(models.NoGrowZone)
	slot.err = errors.New("disk full")

	svc := NewPlantListService(context.Background(), store, slot, logger.Nop())
	defer svc.Close()

	err := svc.SetGrowZone(9)
	require.Error(t, err)

	// The in-memory filter still switched; only persistence failed.
	assert.Equal(t, 9, svc.FilterState().GrowZone)
	waitForPlants(t, svc.Plants(), []string{"Tomato"})
}

func TestPlantListService_Close(t *testing.T) {
	store := newFakePlantStore(apple)
	defer store.hub.Close()

	svc := NewPlantListService(context.Background(), store, newFakeSlot(models.NoGrowZone), logger.Nop())

	waitForPlants(t, svc.Plants(), []string{"Apple"})
	svc.Close()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-svc.Plants():
			if !ok {
				// Closed service ignores further input changes.
				require.NoError(t, svc.SetGrowZone(5))
				svc.SetSearchQuery("x")
				assert.Equal(t, models.NoGrowZone, svc.FilterState().GrowZone)
				return
			}
		case <-deadline:
			t.Fatal("expected the plants channel to close after Close")
		}
	}
}
