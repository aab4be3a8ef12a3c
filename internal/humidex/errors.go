package humidex

import "errors"

var (
	// ErrInvalidUnit means a reading declared a unit this package cannot
	// normalize. This is a permanent misconfiguration: retrying with the
	// same source will fail the same way.
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrUnavailable means a required input is missing, flagged invalid
	// or out of its plausible physical range this cycle. The next cycle
	// starts fresh; hosts should mark the derived sensor unavailable and
	// move on.
	ErrUnavailable = errors.New("inputs unavailable")

	// ErrComputation means the formula produced a non-finite value.
	// Hosts treat it like ErrUnavailable for publishing purposes.
	ErrComputation = errors.New("computation failed")
)
