package store

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/plantarium-app/plantarium/models"
)

// Names of the tables announced on the change hub. Live queries subscribe to
// these, writers notify them after commit.
const (
	TablePlantedItems = "planted_items"
	TablePlantings    = "plantings"
)

const (
	getPlants = `SELECT id, name, description, grow_zone_number, watering_interval, image_url
		FROM planted_items
		ORDER BY name;`

	getPlant = `SELECT id, name, description, grow_zone_number, watering_interval, image_url
		FROM planted_items
		WHERE id = ?;`

	upsertPlant = `INSERT OR REPLACE INTO planted_items (
			id,
			name,
			description,
			grow_zone_number,
			watering_interval,
			image_url
		) VALUES (?, ?, ?, ?, ?, ?);`

	insertPlanting = `INSERT INTO plantings (plant_id, plant_date, last_watering_date)
		VALUES (?, ?, ?);`

	deletePlanting = `DELETE FROM plantings
		WHERE id = ?;`

	isPlanted = `SELECT EXISTS(SELECT 1 FROM plantings WHERE plant_id = ? LIMIT 1);`

	getPlantedGardens = `SELECT p.id, p.name, p.description, p.grow_zone_number, p.watering_interval, p.image_url,
			g.id, g.plant_id, g.plant_date, g.last_watering_date
		FROM planted_items p
		JOIN plantings g ON g.plant_id = p.id
		ORDER BY p.name, g.plant_date;`
)

// buildFilteredPlantsQuery builds the SELECT for the composed plant-list
// filter. The zone predicate is omitted for [models.NoGrowZone] and the name
// predicate is omitted for an empty query; the name match is a
// case-insensitive substring match (SQLite LIKE is case-insensitive for
// ASCII). Results are always ordered by name.
func buildFilteredPlantsQuery(growZone int, searchQuery string) (string, []any, error) {
	builder := squirrel.Select("id", "name", "description", "grow_zone_number", "watering_interval", "image_url").
		From("planted_items").
		OrderBy("name")

	if growZone != models.NoGrowZone {
		builder = builder.Where(squirrel.Eq{"grow_zone_number": growZone})
	}
	if searchQuery != "" {
		builder = builder.Where(squirrel.Like{"name": "%" + searchQuery + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
