package humidex

import "fmt"

// Normalize converts a reading to the canonical unit for its quantity:
// Celsius for temperatures, hPa for pressures. A millibar is numerically
// identical to a hectopascal, so mbar readings pass through unchanged.
func Normalize(r Reading, q Quantity) (float64, error) {
	switch q {
	case Temperature:
		switch r.Unit {
		case UnitCelsius:
			return r.Value, nil
		case UnitFahrenheit:
			return (r.Value - 32) * 5 / 9, nil
		default:
			return 0, fmt.Errorf("temperature unit %q: %w", r.Unit, ErrInvalidUnit)
		}
	case Pressure:
		switch r.Unit {
		case UnitHPa, UnitMbar:
			return r.Value, nil
		default:
			return 0, fmt.Errorf("pressure unit %q: %w", r.Unit, ErrInvalidUnit)
		}
	default:
		return 0, fmt.Errorf("quantity %v: %w", q, ErrInvalidUnit)
	}
}
