// Package service drives the humidex update cycle: it caches the most
// recent reading per source entity, re-evaluates every configured sensor
// that references an updated entity, and publishes the outcome.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/LightD31/humidex-ha/internal/humidex"
	"github.com/LightD31/humidex-ha/internal/modules/sensor/repository"
	"github.com/LightD31/humidex-ha/internal/modules/sensor/types"
)

// Publisher is the outbound side of the service; satisfied by mqtt.Client.
type Publisher interface {
	Publish(topic string, v any, retained bool) error
}

type Service struct {
	repository  repository.SensorRepository
	publisher   Publisher
	logger      *slog.Logger
	statePrefix string

	// mu serializes evaluation cycles and guards both caches. Cycles for
	// a given sensor never overlap, matching the single-threaded update
	// model of the calculation core.
	mu       sync.Mutex
	readings map[string]humidex.Reading
	states   map[string]types.State
}

func NewService(repo repository.SensorRepository, pub Publisher, statePrefix string, logger *slog.Logger) *Service {
	return &Service{
		repository:  repo,
		publisher:   pub,
		logger:      logger,
		statePrefix: statePrefix,
		readings:    make(map[string]humidex.Reading),
		states:      make(map[string]types.State),
	}
}

// HandleSourceState ingests one source-state update and re-evaluates
// every sensor that references the updated entity.
func (s *Service) HandleSourceState(st types.SourceState) error {
	reading := humidex.Reading{
		Unit:  humidex.Unit(st.Unit),
		Valid: st.Valid && st.Value != nil,
	}
	if st.Value != nil {
		reading.Value = *st.Value
	}

	sensors, err := s.repository.GetSensors()
	if err != nil {
		return fmt.Errorf("load sensors: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.readings[st.EntityID] = reading

	for _, sensor := range sensors {
		if !references(sensor, st.EntityID) {
			continue
		}
		s.evaluateLocked(sensor)
	}
	return nil
}

// Evaluate runs one cycle for a single sensor on the current reading
// cache and returns the resulting state. Used for the initial publish
// right after a sensor is created.
func (s *Service) Evaluate(sensorID string) (types.State, error) {
	sensor, err := s.repository.GetSensor(sensorID)
	if err != nil {
		return types.State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluateLocked(sensor)
	return s.states[sensor.ID], nil
}

// CurrentState returns the last published state for a sensor, or an
// unavailable state if no cycle has run yet.
func (s *Service) CurrentState(sensorID string) (types.State, error) {
	if _, err := s.repository.GetSensor(sensorID); err != nil {
		return types.State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[sensorID]; ok {
		return state, nil
	}
	return types.State{Available: false}, nil
}

// Forget publishes a final unavailable state for a deleted sensor and
// drops it from the state cache.
func (s *Service) Forget(sensorID string) {
	s.mu.Lock()
	delete(s.states, sensorID)
	s.mu.Unlock()

	if err := s.publisher.Publish(s.stateTopic(sensorID), types.State{Available: false, UpdatedAt: time.Now().UTC()}, true); err != nil {
		s.logger.Error("publish final state failed", "sensor_id", sensorID, "error", err)
	}
}

func references(sensor types.Sensor, entityID string) bool {
	if sensor.TemperatureEntity == entityID || sensor.HumidityEntity == entityID {
		return true
	}
	return sensor.PressureEntity != nil && *sensor.PressureEntity == entityID
}

// evaluateLocked runs one full cycle for sensor. Callers hold s.mu.
func (s *Service) evaluateLocked(sensor types.Sensor) {
	refs := humidex.SourceRefs{
		TemperatureEntity: sensor.TemperatureEntity,
		HumidityEntity:    sensor.HumidityEntity,
	}

	temp, tempSeen := s.readings[sensor.TemperatureEntity]
	hum, humSeen := s.readings[sensor.HumidityEntity]

	var press *humidex.Reading
	if sensor.PressureEntity != nil {
		refs.PressureEntity = *sensor.PressureEntity
		if p, ok := s.readings[*sensor.PressureEntity]; ok {
			press = &p
		}
	}

	if !tempSeen || !humSeen {
		s.logger.Debug("required source not seen yet",
			"sensor_id", sensor.ID,
			"temperature_seen", tempSeen,
			"humidity_seen", humSeen,
		)
		s.publishLocked(sensor.ID, types.State{Available: false, UpdatedAt: time.Now().UTC()})
		return
	}

	result, err := humidex.Evaluate(temp, hum, press, refs)
	if err != nil {
		switch {
		case errors.Is(err, humidex.ErrInvalidUnit):
			// Permanent misconfiguration; recurs every cycle until the
			// source or sensor definition is fixed.
			s.logger.Error("sensor misconfigured", "sensor_id", sensor.ID, "error", err)
		case errors.Is(err, humidex.ErrComputation):
			s.logger.Warn("humidex computation failed", "sensor_id", sensor.ID, "error", err)
		default:
			s.logger.Debug("inputs unavailable", "sensor_id", sensor.ID, "error", err)
		}
		s.publishLocked(sensor.ID, types.State{Available: false, UpdatedAt: time.Now().UTC()})
		return
	}

	// Published at display precision: one decimal place.
	value := math.Round(result.ValueC*10) / 10

	state := types.State{
		Available:          true,
		Value:              &value,
		Unit:               string(humidex.UnitCelsius),
		CalculationMethod:  string(result.Method),
		ComfortLevel:       string(result.Comfort),
		ComfortDescription: result.ComfortDescription,
		TemperatureEntity:  result.Sources.TemperatureEntity,
		HumidityEntity:     result.Sources.HumidityEntity,
		UpdatedAt:          time.Now().UTC(),
	}
	if result.Sources.PressureEntity != "" {
		pressureEntity := result.Sources.PressureEntity
		state.PressureEntity = &pressureEntity
	}

	s.logger.Debug("humidex computed",
		"sensor_id", sensor.ID,
		"value", value,
		"method", result.Method,
		"comfort", result.Comfort,
	)
	s.publishLocked(sensor.ID, state)
}

// publishLocked records and publishes a sensor state. Callers hold s.mu.
func (s *Service) publishLocked(sensorID string, state types.State) {
	s.states[sensorID] = state
	if err := s.publisher.Publish(s.stateTopic(sensorID), state, true); err != nil {
		s.logger.Error("publish state failed", "sensor_id", sensorID, "error", err)
	}
}

func (s *Service) stateTopic(sensorID string) string {
	return fmt.Sprintf("%s/%s/state", s.statePrefix, sensorID)
}
