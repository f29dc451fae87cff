package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/plantarium-app/plantarium/internal/logger"
	"github.com/plantarium-app/plantarium/models"
)

// ErrSeedFailure wraps any failure of the one-time catalog seeding: a
// missing bundled file, malformed data or a failed bulk insert. The store
// stays usable (but empty) after a seed failure; seeding is not retried by
// this layer.
var ErrSeedFailure = errors.New("seeding plant catalog failed")

// defaultWateringInterval is applied to seeded entries that omit the field.
const defaultWateringInterval = 7

// PlantSeeder is the single store operation the seed worker needs.
type PlantSeeder interface {
	UpsertPlants(ctx context.Context, plants []models.PlantedItem) error
}

// SeedWorker loads the bundled plant catalog into the store exactly once, in
// the background, the first time the store is created. The outcome is
// reported as a boolean on Result; the enqueuing side decides what to do
// with a failure (this layer never retries).
type SeedWorker struct {
	ctx      context.Context
	filename string
	seeder   PlantSeeder
	logger   *logger.Logger

	result chan bool
}

// NewSeedWorker constructs a seed worker reading the JSON catalog at
// filename.
func NewSeedWorker(ctx context.Context, filename string, seeder PlantSeeder, log *logger.Logger) *SeedWorker {
	return &SeedWorker{
		ctx:      ctx,
		filename: filename,
		seeder:   seeder,
		logger:   log,
		result:   make(chan bool, 1),
	}
}

// Run implements [Worker]: it starts the seeding in the background and
// returns immediately.
func (w *SeedWorker) Run() {
	go func() {
		err := w.seed(w.ctx)
		if err != nil {
			w.logger.Err(err).
				Str("func", "SeedWorker.Run").
				Str("filename", w.filename).
				Msg("error seeding plant catalog")
		}
		w.result <- err == nil
	}()
}

// Result reports the seeding outcome: true on success, false on failure.
// The channel is buffered, so the outcome is delivered even when nobody is
// waiting yet.
func (w *SeedWorker) Result() <-chan bool {
	return w.result
}

func (w *SeedWorker) seed(ctx context.Context) error {
	if w.filename == "" {
		return fmt.Errorf("%w: no valid filename", ErrSeedFailure)
	}

	data, err := os.ReadFile(w.filename)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSeedFailure, err)
	}

	var plants []models.PlantedItem
	if err = json.Unmarshal(data, &plants); err != nil {
		return fmt.Errorf("%w: %w", ErrSeedFailure, err)
	}

	for i := range plants {
		if plants[i].WateringInterval == 0 {
			plants[i].WateringInterval = defaultWateringInterval
		}
	}

	if err = w.seeder.UpsertPlants(ctx, plants); err != nil {
		return fmt.Errorf("%w: %w", ErrSeedFailure, err)
	}

	w.logger.Info().
		Str("func", "SeedWorker.seed").
		Str("filename", w.filename).
		Int("count", len(plants)).
		Msg("successfully seeded plant catalog")

	return nil
}
