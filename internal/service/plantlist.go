package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/plantarium-app/plantarium/internal/live"
	"github.com/plantarium-app/plantarium/internal/logger"
	"github.com/plantarium-app/plantarium/models"
)

// PlantListService composes the two independent plant-list filter inputs —
// grow zone and search query — into a single derived live output. Whenever
// either input changes it tears down the previous store subscription, waits
// until that derivation has fully stopped, and re-subscribes with the new
// pair. A consumer of [PlantListService.Plants] therefore never observes a
// snapshot computed for a stale input combination.
//
// The zone input is initialised from the persistence slot at construction
// and written back on every change; the query input always starts empty.
type PlantListService struct {
	store  FilteredPlantObserver
	slot   GrowZoneSlot
	logger *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	out chan []models.PlantedItem

	mu      sync.Mutex
	filter  models.FilterState
	current *derivation
	closed  bool
}

// derivation is one active store subscription for a fixed input pair.
// cancel stops it; done is closed once its forwarding goroutine has exited.
type derivation struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPlantListService constructs the filter engine and starts the initial
// derivation for (persisted zone, empty query).
func NewPlantListService(ctx context.Context, store FilteredPlantObserver, slot GrowZoneSlot, log *logger.Logger) *PlantListService {
	engineCtx, cancel := context.WithCancel(ctx)

	s := &PlantListService{
		store:  store,
		slot:   slot,
		logger: log,
		ctx:    engineCtx,
		cancel: cancel,
		out:    make(chan []models.PlantedItem, 1),
		filter: models.FilterState{
			GrowZone:    slot.GrowZone(),
			SearchQuery: "",
		},
	}

	s.mu.Lock()
	s.resubscribe()
	s.mu.Unlock()

	return s
}

// Plants returns the derived live output: the store's filtered plant list
// for the current input pair, re-delivered after every input change and
// every committed catalog write. Delivery is conflated to the latest
// snapshot. The channel is closed by Close.
func (s *PlantListService) Plants() <-chan []models.PlantedItem {
	return s.out
}

// FilterState returns the current input pair.
func (s *PlantListService) FilterState() models.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// IsFiltered reports whether a grow-zone filter is active.
func (s *PlantListService) IsFiltered() bool {
	return s.FilterState().IsFiltered()
}

// SetGrowZone overwrites the zone input, persists it, and re-derives the
// output. Setting the already-current zone is a no-op: no redundant
// re-subscription, no slot write.
func (s *PlantListService) SetGrowZone(growZone int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || growZone == s.filter.GrowZone {
		return nil
	}

	s.filter.GrowZone = growZone
	s.resubscribe()

	if err := s.slot.SetGrowZone(growZone); err != nil {
		s.logger.Err(err).
			Str("func", "PlantListService.SetGrowZone").
			Int("grow_zone", growZone).
			Msg("failed to persist grow zone")
		return fmt.Errorf("persist grow zone: %w", err)
	}

	return nil
}

// ClearGrowZone removes the zone filter. Equivalent to setting the sentinel
// zone.
func (s *PlantListService) ClearGrowZone() error {
	return s.SetGrowZone(models.NoGrowZone)
}

// SetSearchQuery overwrites the query input and re-derives the output.
// Setting the already-current query is a no-op.
func (s *PlantListService) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || query == s.filter.SearchQuery {
		return
	}

	s.filter.SearchQuery = query
	s.resubscribe()
}

// Close stops the engine: the active derivation is cancelled and awaited,
// then the output channel is closed.
func (s *PlantListService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	s.cancel()
	if s.current != nil {
		<-s.current.done
		s.current = nil
	}
	close(s.out)
}

// resubscribe switches the derivation to the current input pair. Callers
// must hold s.mu. The previous derivation is cancelled and fully awaited
// before the new subscription starts, so outputs of two derivations can
// never interleave.
func (s *PlantListService) resubscribe() {
	if s.current != nil {
		s.current.cancel()
		<-s.current.done
		s.current = nil
	}

	derivationCtx, cancel := context.WithCancel(s.ctx)
	stream := s.store.ObservePlantsFiltered(derivationCtx, s.filter.GrowZone, s.filter.SearchQuery)
	done := make(chan struct{})
	s.current = &derivation{cancel: cancel, done: done}

	s.logger.Debug().
		Str("func", "PlantListService.resubscribe").
		Int("grow_zone", s.filter.GrowZone).
		Str("search_query", s.filter.SearchQuery).
		Msg("switched plant list derivation")

	go s.forward(derivationCtx, stream, done)
}

// forward copies snapshots from one derivation's stream to the shared
// output channel until the derivation is cancelled. Only one forwarder is
// alive at a time (resubscribe waits for done), so it is the sole sender on
// the output and conflated sends cannot block.
func (s *PlantListService) forward(ctx context.Context, stream *live.Stream[[]models.PlantedItem], done chan struct{}) {
	defer close(done)
	defer stream.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-stream.Updates():
			if !ok {
				return
			}
			if ctx.Err() != nil {
				return
			}

			select {
			case <-s.out:
			default:
			}
			s.out <- snapshot
		}
	}
}
