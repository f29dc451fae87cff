package models

import (
	"errors"
	"time"
)

// ErrNoPlantings is returned by [NewPlantedItemWithPlantings] when the
// plantings slice is empty. A [PlantedItemWithPlantings] is only ever built
// for plants that have at least one planting, so consumers may safely read
// the first entry.
var ErrNoPlantings = errors.New("planted item has no plantings")

// Planting records one instance of a [PlantedItem] being planted by the
// user. Plantings are created when the user adds a plant to their garden and
// deleted when they remove it; they are never updated in place. The same
// plant may be planted multiple times.
type Planting struct {
	ID               int64     `json:"id"`
	PlantID          string    `json:"plantId"`
	PlantDate        time.Time `json:"plantDate"`
	LastWateringDate time.Time `json:"lastWateringDate"`
}

// PlantedItemWithPlantings is a read-only composition of one plant and every
// planting that references it, ordered by plant date.
type PlantedItemWithPlantings struct {
	Plant     PlantedItem
	Plantings []Planting
}

// NewPlantedItemWithPlantings builds the composed view, rejecting an empty
// plantings sequence so single-item consumers never index past the end.
func NewPlantedItemWithPlantings(plant PlantedItem, plantings []Planting) (PlantedItemWithPlantings, error) {
	if len(plantings) == 0 {
		return PlantedItemWithPlantings{}, ErrNoPlantings
	}

	return PlantedItemWithPlantings{Plant: plant, Plantings: plantings}, nil
}

// LatestPlanting returns the most recent planting of the plant. The view is
// guaranteed non-empty by construction.
func (p PlantedItemWithPlantings) LatestPlanting() Planting {
	latest := p.Plantings[0]
	for _, g := range p.Plantings[1:] {
		if g.PlantDate.After(latest.PlantDate) {
			latest = g
		}
	}

	return latest
}
