package humidex

// SourceRefs carries the opaque identifiers of the source sensors a
// result was derived from, echoed back so the host can publish them as
// attributes. PressureEntity is empty when no pressure source is
// configured.
type SourceRefs struct {
	TemperatureEntity string
	HumidityEntity    string
	PressureEntity    string
}

// Result is one cycle's computed Humidex. It is a value object: built
// fresh on every successful cycle, never mutated, superseded by the next
// cycle's Result.
type Result struct {
	ValueC             float64
	Method             Method
	Comfort            ComfortLevel
	ComfortDescription string
	Sources            SourceRefs
}

// Assemble builds a Result from already-validated parts. It performs no
// validation of its own; upstream stages have done that.
func Assemble(value float64, method Method, level ComfortLevel, refs SourceRefs) Result {
	return Result{
		ValueC:             value,
		Method:             method,
		Comfort:            level,
		ComfortDescription: level.Description(),
		Sources:            refs,
	}
}

// Evaluate runs the whole pipeline for one update cycle: gate the raw
// readings, compute the value, classify it and assemble the result.
// The error, when non-nil, wraps ErrUnavailable, ErrInvalidUnit or
// ErrComputation.
func Evaluate(temp, hum Reading, press *Reading, refs SourceRefs) (Result, error) {
	in, err := Check(temp, hum, press)
	if err != nil {
		return Result{}, err
	}
	value, method, err := Compute(in)
	if err != nil {
		return Result{}, err
	}
	return Assemble(value, method, Classify(value), refs), nil
}
