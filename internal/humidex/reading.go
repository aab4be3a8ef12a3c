// Package humidex computes the Humidex perceived-temperature index from
// raw temperature, humidity and optional atmospheric-pressure readings.
//
// The package is pure: it holds no state, touches no I/O and never
// mutates its inputs, so a single call per update cycle is all a host
// needs. Hosts feed it Readings tagged with their unit and a validity
// flag, and get back either a Result or an error they should translate
// into "sensor unavailable".
package humidex

// Unit is the unit of measurement a source sensor declares for its value.
type Unit string

const (
	UnitCelsius    Unit = "°C"
	UnitFahrenheit Unit = "°F"
	UnitPercent    Unit = "%"
	UnitHPa        Unit = "hPa"
	UnitMbar       Unit = "mbar"
)

// Quantity selects the normalization rule for a reading.
type Quantity int

const (
	Temperature Quantity = iota
	Pressure
)

func (q Quantity) String() string {
	switch q {
	case Temperature:
		return "temperature"
	case Pressure:
		return "pressure"
	default:
		return "unknown"
	}
}

// Reading is a single raw value read from a source sensor. Valid is the
// source's own health flag; a false Valid means the value must not be
// used this cycle.
type Reading struct {
	Value float64
	Unit  Unit
	Valid bool
}

// Plausible physical ranges for normalized inputs. Values outside these
// bounds abort the cycle instead of being clamped.
const (
	MinTemperatureC = -90.0
	MaxTemperatureC = 60.0
	MinHumidityPct  = 0.0
	MaxHumidityPct  = 100.0
	MinPressureHPa  = 800.0
	MaxPressureHPa  = 1100.0
)

// Inputs holds normalized, range-checked values ready for Compute.
// PressureHPa is nil when no usable pressure reading exists this cycle.
type Inputs struct {
	TemperatureC float64
	HumidityPct  float64
	PressureHPa  *float64
}
