package humidex

import "fmt"

// Check gates a cycle's raw readings into normalized Inputs.
//
// Temperature and humidity are both required: a missing or invalid
// reading, or a normalized value outside its plausible range, returns
// ErrUnavailable (an unrecognized unit returns ErrInvalidUnit instead,
// since that never heals on its own). Pressure is optional the whole way
// down: absent, flagged invalid, oddly-united or out-of-range pressure
// only drops the enhanced method, never the cycle.
func Check(temp, hum Reading, press *Reading) (Inputs, error) {
	if !temp.Valid {
		return Inputs{}, fmt.Errorf("temperature reading flagged invalid: %w", ErrUnavailable)
	}
	if !hum.Valid {
		return Inputs{}, fmt.Errorf("humidity reading flagged invalid: %w", ErrUnavailable)
	}

	tc, err := Normalize(temp, Temperature)
	if err != nil {
		return Inputs{}, err
	}
	if hum.Unit != UnitPercent {
		return Inputs{}, fmt.Errorf("humidity unit %q: %w", hum.Unit, ErrInvalidUnit)
	}
	rh := hum.Value

	if tc < MinTemperatureC || tc > MaxTemperatureC {
		return Inputs{}, fmt.Errorf("temperature %.1f°C outside [%g, %g]: %w",
			tc, MinTemperatureC, MaxTemperatureC, ErrUnavailable)
	}
	if rh < MinHumidityPct || rh > MaxHumidityPct {
		return Inputs{}, fmt.Errorf("humidity %.1f%% outside [%g, %g]: %w",
			rh, MinHumidityPct, MaxHumidityPct, ErrUnavailable)
	}

	in := Inputs{TemperatureC: tc, HumidityPct: rh}

	if press != nil && press.Valid {
		p, err := Normalize(*press, Pressure)
		if err == nil && p >= MinPressureHPa && p <= MaxPressureHPa {
			in.PressureHPa = &p
		}
	}

	return in, nil
}
