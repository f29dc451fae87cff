package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantarium-app/plantarium/internal/logger"
	"github.com/plantarium-app/plantarium/models"
)

func TestStateStore_EmptySlot(t *testing.T) {
	slot := NewStateStore(filepath.Join(t.TempDir(), "state.json"), logger.Nop())

	assert.Equal(t, models.NoGrowZone, slot.GrowZone())
}

func TestStateStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	slot := NewStateStore(path, logger.Nop())
	require.NoError(t, slot.SetGrowZone(9))
	assert.Equal(t, 9, slot.GrowZone())

	// A fresh slot over the same file sees the persisted value, as after a
	// process restart.
	reopened := NewStateStore(path, logger.Nop())
	assert.Equal(t, 9, reopened.GrowZone())
}

func TestStateStore_ClearSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	slot := NewStateStore(path, logger.Nop())
	require.NoError(t, slot.SetGrowZone(9))
	require.NoError(t, slot.SetGrowZone(models.NoGrowZone))

	reopened := NewStateStore(path, logger.Nop())
	assert.Equal(t, models.NoGrowZone, reopened.GrowZone())
}

func TestStateStore_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")

	slot := NewStateStore(path, logger.Nop())
	require.NoError(t, slot.SetGrowZone(4))
	assert.Equal(t, 4, slot.GrowZone())
}

func TestStateStore_CorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	slot := NewStateStore(path, logger.Nop())
	assert.Equal(t, models.NoGrowZone, slot.GrowZone())
}
