package repository

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LightD31/humidex-ha/internal/modules/sensor/types"
)

//go:embed sql/get-sensors.sql
var getSensorsSQL string

//go:embed sql/get-sensor.sql
var getSensorSQL string

//go:embed sql/insert-sensor.sql
var insertSensorSQL string

//go:embed sql/delete-sensor.sql
var deleteSensorSQL string

// ErrNotFound is returned when a sensor id does not exist.
var ErrNotFound = errors.New("sensor not found")

type SensorRepository interface {
	GetSensors() ([]types.Sensor, error)
	GetSensor(id string) (types.Sensor, error)
	InsertSensor(s types.Sensor) error
	DeleteSensor(id string) error
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) SensorRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) GetSensors() ([]types.Sensor, error) {
	rows, err := r.db.Query(getSensorsSQL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close sensors rows", "error", err)
		}
	}()
	var out []types.Sensor
	for rows.Next() {
		s, err := scanSensor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetSensor(id string) (types.Sensor, error) {
	s, err := scanSensor(r.db.QueryRow(getSensorSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Sensor{}, fmt.Errorf("sensor %q: %w", id, ErrNotFound)
	}
	return s, err
}

func (r *repositoryImpl) InsertSensor(s types.Sensor) error {
	var pressure any
	if s.PressureEntity != nil {
		pressure = *s.PressureEntity
	}
	if _, err := r.db.Exec(insertSensorSQL, s.ID, s.Name, s.TemperatureEntity, s.HumidityEntity, pressure); err != nil {
		return fmt.Errorf("insert sensor %q: %w", s.ID, err)
	}
	return nil
}

func (r *repositoryImpl) DeleteSensor(id string) error {
	res, err := r.db.Exec(deleteSensorSQL, id)
	if err != nil {
		return fmt.Errorf("delete sensor %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("sensor %q: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSensor(row rowScanner) (types.Sensor, error) {
	var s types.Sensor
	var pressure sql.NullString
	if err := row.Scan(&s.ID, &s.Name, &s.TemperatureEntity, &s.HumidityEntity, &pressure); err != nil {
		return types.Sensor{}, err
	}
	if pressure.Valid {
		s.PressureEntity = &pressure.String
	}
	return s, nil
}
