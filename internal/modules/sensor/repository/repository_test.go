package repository

import (
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/LightD31/humidex-ha/internal/modules/sensor/types"
)

// Minimal schema matching internal/migrate/sql/0001_sensors.sql for
// in-memory tests.
const testSchema = `
CREATE TABLE IF NOT EXISTS sensors (
  id                  TEXT PRIMARY KEY,
  name                TEXT NOT NULL,
  temperature_entity  TEXT NOT NULL,
  humidity_entity     TEXT NOT NULL,
  pressure_entity     TEXT,
  created_at          TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_sensors_name ON sensors(name);
`

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("exec schema: %v", err)
	}
	return db
}

func testSensor() types.Sensor {
	return types.Sensor{
		ID:                "hx-1",
		Name:              "Living Room Humidex",
		TemperatureEntity: "sensor.living_room_temperature",
		HumidityEntity:    "sensor.living_room_humidity",
	}
}

func TestGetSensors_Empty(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	sensors, err := repo.GetSensors()
	if err != nil {
		t.Fatalf("GetSensors: %v", err)
	}
	if len(sensors) != 0 {
		t.Fatalf("GetSensors: got %d sensors, want 0", len(sensors))
	}
}

func TestInsertAndGetSensor(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	t.Run("without pressure entity", func(t *testing.T) {
		want := testSensor()
		if err := repo.InsertSensor(want); err != nil {
			t.Fatalf("InsertSensor: %v", err)
		}
		got, err := repo.GetSensor(want.ID)
		if err != nil {
			t.Fatalf("GetSensor: %v", err)
		}
		if got.ID != want.ID || got.Name != want.Name ||
			got.TemperatureEntity != want.TemperatureEntity ||
			got.HumidityEntity != want.HumidityEntity {
			t.Errorf("GetSensor = %+v; want %+v", got, want)
		}
		if got.PressureEntity != nil {
			t.Errorf("PressureEntity = %q; want nil", *got.PressureEntity)
		}
	})

	t.Run("with pressure entity", func(t *testing.T) {
		pressure := "sensor.outdoor_pressure"
		want := types.Sensor{
			ID:                "hx-2",
			Name:              "Outdoor Humidex",
			TemperatureEntity: "sensor.outdoor_temperature",
			HumidityEntity:    "sensor.outdoor_humidity",
			PressureEntity:    &pressure,
		}
		if err := repo.InsertSensor(want); err != nil {
			t.Fatalf("InsertSensor: %v", err)
		}
		got, err := repo.GetSensor(want.ID)
		if err != nil {
			t.Fatalf("GetSensor: %v", err)
		}
		if got.PressureEntity == nil || *got.PressureEntity != pressure {
			t.Errorf("PressureEntity = %v; want %q", got.PressureEntity, pressure)
		}
	})

	t.Run("duplicate id fails", func(t *testing.T) {
		if err := repo.InsertSensor(testSensor()); err == nil {
			t.Error("InsertSensor with duplicate id succeeded; want error")
		}
	})
}

func TestGetSensor_NotFound(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.GetSensor("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSensor error = %v; want ErrNotFound", err)
	}
}

func TestGetSensors_ReturnsAll(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	if err := repo.InsertSensor(testSensor()); err != nil {
		t.Fatalf("InsertSensor: %v", err)
	}
	second := testSensor()
	second.ID = "hx-2"
	second.Name = "Bedroom Humidex"
	if err := repo.InsertSensor(second); err != nil {
		t.Fatalf("InsertSensor: %v", err)
	}

	sensors, err := repo.GetSensors()
	if err != nil {
		t.Fatalf("GetSensors: %v", err)
	}
	if len(sensors) != 2 {
		t.Fatalf("GetSensors: got %d sensors, want 2", len(sensors))
	}
}

func TestDeleteSensor(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	if err := repo.InsertSensor(testSensor()); err != nil {
		t.Fatalf("InsertSensor: %v", err)
	}
	if err := repo.DeleteSensor("hx-1"); err != nil {
		t.Fatalf("DeleteSensor: %v", err)
	}
	if _, err := repo.GetSensor("hx-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSensor after delete = %v; want ErrNotFound", err)
	}

	if err := repo.DeleteSensor("hx-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteSensor on missing id = %v; want ErrNotFound", err)
	}
}
