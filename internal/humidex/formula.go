package humidex

import (
	"fmt"
	"math"
)

// Method identifies which vapor-pressure formula produced a value.
type Method string

const (
	// MethodStandard is the Environment Canada dew-point formula, used
	// whenever no usable pressure reading exists.
	MethodStandard Method = "standard"
	// MethodEnhanced corrects the Magnus-Tetens saturated vapor pressure
	// by the actual station pressure.
	MethodEnhanced Method = "enhanced"
)

const referencePressureHPa = 1013.25

// Compute evaluates the Humidex for normalized inputs. Method selection
// depends only on pressure presence: Inputs with a pressure always take
// the enhanced path, Inputs without always take the standard path.
// A non-finite intermediate or final value returns ErrComputation.
func Compute(in Inputs) (float64, Method, error) {
	var e float64
	method := MethodStandard

	if in.PressureHPa != nil {
		method = MethodEnhanced
		es := 6.1078 * math.Exp(17.27*in.TemperatureC/(in.TemperatureC+237.3))
		e = (in.HumidityPct / 100) * es * (*in.PressureHPa / referencePressureHPa)
	} else {
		dew := in.TemperatureC - (100-in.HumidityPct)/5
		e = 6.11 * math.Exp(5417.7530*(1/273.15-1/(dew+273.15)))
	}

	value := in.TemperatureC + 0.5555*(e-10)
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, method, fmt.Errorf("%s method produced non-finite value (t=%.2f°C rh=%.1f%%): %w",
			method, in.TemperatureC, in.HumidityPct, ErrComputation)
	}
	return value, method, nil
}
