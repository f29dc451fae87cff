package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/plantarium-app/plantarium/internal/logger"
	"github.com/plantarium-app/plantarium/models"
)

// StateStore is the narrow, single-key persistence slot for the selected
// grow-zone filter. The value survives a process restart and seeds the
// filter engine's initial zone input; it is not a general key/value store.
type StateStore struct {
	path   string
	logger *logger.Logger

	mu sync.Mutex
}

// persistedFilterState is the on-disk shape of the slot.
type persistedFilterState struct {
	GrowZone int `json:"grow_zone"`
}

// NewStateStore creates a slot backed by the JSON file at path. The file is
// created lazily on the first SetGrowZone call.
func NewStateStore(path string, logger *logger.Logger) *StateStore {
	return &StateStore{path: path, logger: logger}
}

// GrowZone returns the persisted zone, or [models.NoGrowZone] when the slot
// has never been written or cannot be read.
func (s *StateStore) GrowZone() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Err(err).Str("func", "StateStore.GrowZone").Msg("failed to read state file, falling back to no filter")
		}
		return models.NoGrowZone
	}

	var st persistedFilterState
	if err = json.Unmarshal(data, &st); err != nil {
		s.logger.Err(err).Str("func", "StateStore.GrowZone").Msg("failed to decode state file, falling back to no filter")
		return models.NoGrowZone
	}

	return st.GrowZone
}

// SetGrowZone writes the zone back to the slot. Called on every zone change,
// including clearing the filter.
func (s *StateStore) SetGrowZone(growZone int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}

	payload, err := json.Marshal(persistedFilterState{GrowZone: growZone})
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}
