// Package models contains the plain data structures shared between the
// storage, adapter and service layers of plantarium.
package models

import "time"

// PlantedItem is one catalog entry describing a kind of plant the user can
// add to their garden. Items are seeded once from a bundled file and are
// immutable afterwards; ID is globally unique and is the join key used by
// [Planting].
type PlantedItem struct {
	ID               string `json:"plantId"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	GrowZoneNumber   int    `json:"growZoneNumber"`
	WateringInterval int    `json:"wateringInterval"` // days between waterings
	ImageURL         string `json:"imageUrl"`
}

// ShouldBeWatered reports whether the plant is overdue for watering at the
// moment "since", given when it was last watered.
func (p PlantedItem) ShouldBeWatered(since, lastWatering time.Time) bool {
	return since.After(lastWatering.AddDate(0, 0, p.WateringInterval))
}

func (p PlantedItem) String() string {
	return p.Name
}
