package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/plantarium-app/plantarium/internal/live"
	"github.com/plantarium-app/plantarium/internal/logger"
	"github.com/plantarium-app/plantarium/models"
)

var plantColumns = []string{"id", "name", "description", "grow_zone_number", "watering_interval", "image_url"}

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &DB{DB: db, hub: live.NewHub(), logger: logger.Nop()}, mock
}

func newTestPlantRepo(t *testing.T) (*plantRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newTestDB(t)
	return &plantRepository{DB: db, logger: db.logger}, mock
}

func TestGetPlants_Success(t *testing.T) {
	repo, mock := newTestPlantRepo(t)

	rows := sqlmock.NewRows(plantColumns).
		AddRow("malus-pumila", "Apple", "An apple tree.", 3, 30, "https://img/apple").
		AddRow("solanum-lycopersicum", "Tomato", "A tomato plant.", 9, 1, "https://img/tomato")

	mock.ExpectQuery("SELECT id, name, description").WillReturnRows(rows)

	plants, err := repo.GetPlants(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plants) != 2 {
		t.Fatalf("expected 2 plants, got %d", len(plants))
	}
	if plants[0].ID != "malus-pumila" || plants[1].Name != "Tomato" {
		t.Errorf("unexpected plants: %+v", plants)
	}
}

func TestGetPlants_QueryError(t *testing.T) {
	repo, mock := newTestPlantRepo(t)

	mock.ExpectQuery("SELECT id, name, description").
		WillReturnError(errors.New("db failure"))

	_, err := repo.GetPlants(context.Background())
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestGetPlants_ScanError(t *testing.T) {
	repo, mock := newTestPlantRepo(t)

	// intentionally wrong row shape → scan error
	rows := sqlmock.NewRows([]string{"id"}).AddRow("malus-pumila")

	mock.ExpectQuery("SELECT id, name, description").WillReturnRows(rows)

	_, err := repo.GetPlants(context.Background())
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}

func TestGetPlantsFiltered_ZoneAndQuery(t *testing.T) {
	repo, mock := newTestPlantRepo(t)

	rows := sqlmock.NewRows(plantColumns).
		AddRow("solanum-lycopersicum", "Tomato", "A tomato plant.", 9, 1, "https://img/tomato")

	mock.ExpectQuery("SELECT id, name, description").
		WithArgs(9, "%to%").
		WillReturnRows(rows)

	plants, err := repo.GetPlantsFiltered(context.Background(), 9, "to")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plants) != 1 || plants[0].ID != "solanum-lycopersicum" {
		t.Errorf("unexpected plants: %+v", plants)
	}
}

func TestGetPlantsFiltered_NoFilters(t *testing.T) {
	repo, mock := newTestPlantRepo(t)

	rows := sqlmock.NewRows(plantColumns).
		AddRow("malus-pumila", "Apple", "An apple tree.", 3, 30, "https://img/apple")

	// Without an active zone or query the statement carries no placeholders.
	mock.ExpectQuery("SELECT id, name, description").
		WillReturnRows(rows)

	plants, err := repo.GetPlantsFiltered(context.Background(), models.NoGrowZone, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plants) != 1 {
		t.Fatalf("expected 1 plant, got %d", len(plants))
	}
}

func TestGetPlantsFiltered_QueryError(t *testing.T) {
	repo, mock := newTestPlantRepo(t)

	mock.ExpectQuery("SELECT id, name, description").
		WithArgs(9, "%to%").
		WillReturnError(errors.New("db failure"))

	_, err := repo.GetPlantsFiltered(context.Background(), 9, "to")
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestGetPlant_Success(t *testing.T) {
	repo, mock := newTestPlantRepo(t)

	rows := sqlmock.NewRows(plantColumns).
		AddRow("malus-pumila", "Apple", "An apple tree.", 3, 30, "https://img/apple")

	mock.ExpectQuery("SELECT id, name, description").
		WithArgs("malus-pumila").
		WillReturnRows(rows)

	plant, err := repo.GetPlant(context.Background(), "malus-pumila")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plant.Name != "Apple" || plant.GrowZoneNumber != 3 {
		t.Errorf("unexpected plant: %+v", plant)
	}
}

func TestGetPlant_NotFound(t *testing.T) {
	repo, mock := newTestPlantRepo(t)

	mock.ExpectQuery("SELECT id, name, description").
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetPlant(context.Background(), "unknown")
	if !errors.Is(err, ErrPlantNotFound) {
		t.Fatalf("expected ErrPlantNotFound, got %v", err)
	}
}

func TestUpsertPlants_Success(t *testing.T) {
	repo, mock := newTestPlantRepo(t)

	plants := []models.PlantedItem{
		{ID: "malus-pumila", Name: "Apple", Description: "An apple tree.", GrowZoneNumber: 3, WateringInterval: 30, ImageURL: "https://img/apple"},
		{ID: "beta-vulgaris", Name: "Beet", Description: "A beet plant.", GrowZoneNumber: 6, WateringInterval: 7, ImageURL: "https://img/beet"},
	}

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT OR REPLACE INTO planted_items")
	for _, p := range plants {
		prep.ExpectExec().
			WithArgs(p.ID, p.Name, p.Description, p.GrowZoneNumber, p.WateringInterval, p.ImageURL).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	sub := repo.DB.hub.Subscribe(TablePlantedItems)
	defer sub.Close()

	if err := repo.UpsertPlants(context.Background(), plants); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-sub.Signal():
	default:
		t.Fatal("expected a catalog change notification after commit")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertPlants_Empty(t *testing.T) {
	repo, mock := newTestPlantRepo(t)

	if err := repo.UpsertPlants(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected no database access for an empty upsert: %v", err)
	}
}

func TestUpsertPlants_BeginError(t *testing.T) {
	repo, mock := newTestPlantRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("db failure"))

	err := repo.UpsertPlants(context.Background(), []models.PlantedItem{{ID: "malus-pumila"}})
	if !errors.Is(err, ErrBeginningTransaction) {
		t.Fatalf("expected ErrBeginningTransaction, got %v", err)
	}
}

func TestUpsertPlants_ExecErrorDoesNotNotify(t *testing.T) {
	repo, mock := newTestPlantRepo(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT OR REPLACE INTO planted_items")
	prep.ExpectExec().WillReturnError(errors.New("db failure"))
	mock.ExpectRollback()

	sub := repo.DB.hub.Subscribe(TablePlantedItems)
	defer sub.Close()

	err := repo.UpsertPlants(context.Background(), []models.PlantedItem{{ID: "malus-pumila"}})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}

	select {
	case <-sub.Signal():
		t.Fatal("no notification may be published for a rolled-back write")
	default:
	}
}
