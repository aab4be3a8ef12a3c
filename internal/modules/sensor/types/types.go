package types

import "time"

// Sensor is a configured humidex sensor: a name plus the source entities
// it derives from. PressureEntity is nil when the sensor runs on the
// standard (pressure-less) method only.
type Sensor struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	TemperatureEntity string  `json:"temperature_entity"`
	HumidityEntity    string  `json:"humidity_entity"`
	PressureEntity    *string `json:"pressure_entity,omitempty"`
}

// SourceState is the wire document a source sensor publishes on each
// update. Value is a pointer so "no numeric state" survives the JSON
// roundtrip; Valid is the source's own health flag.
type SourceState struct {
	EntityID  string    `json:"entity_id"`
	Value     *float64  `json:"value"`
	Unit      string    `json:"unit"`
	Valid     bool      `json:"valid"`
	Timestamp time.Time `json:"timestamp"`
}

// State is the derived sensor state published after each cycle. When
// Available is false every other field except UpdatedAt is zero: an
// unavailable cycle publishes no partial values.
type State struct {
	Available          bool      `json:"available"`
	Value              *float64  `json:"value,omitempty"`
	Unit               string    `json:"unit,omitempty"`
	CalculationMethod  string    `json:"calculation_method,omitempty"`
	ComfortLevel       string    `json:"comfort_level,omitempty"`
	ComfortDescription string    `json:"comfort_description,omitempty"`
	TemperatureEntity  string    `json:"temperature_entity,omitempty"`
	HumidityEntity     string    `json:"humidity_entity,omitempty"`
	PressureEntity     *string   `json:"pressure_entity,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}
