package humidex

// ComfortLevel is one of five discrete comfort bands for a Humidex value.
type ComfortLevel string

const (
	ComfortCold                  ComfortLevel = "cold"
	ComfortComfortable           ComfortLevel = "comfortable"
	ComfortSlightlyUncomfortable ComfortLevel = "slightly_uncomfortable"
	ComfortVeryUncomfortable     ComfortLevel = "very_uncomfortable"
	ComfortDangerous             ComfortLevel = "dangerous"
)

// Classify maps a Humidex value to its comfort band. Bands are half-open
// intervals, inclusive below and exclusive above, so every value lands in
// exactly one band.
func Classify(value float64) ComfortLevel {
	switch {
	case value < 20:
		return ComfortCold
	case value < 30:
		return ComfortComfortable
	case value < 40:
		return ComfortSlightlyUncomfortable
	case value < 46:
		return ComfortVeryUncomfortable
	default:
		return ComfortDangerous
	}
}

var comfortDescriptions = map[ComfortLevel]string{
	ComfortCold:                  "Cold",
	ComfortComfortable:           "Comfortable",
	ComfortSlightlyUncomfortable: "Slightly uncomfortable",
	ComfortVeryUncomfortable:     "Very uncomfortable",
	ComfortDangerous:             "Dangerous",
}

// Description returns the human-readable English description for the band.
func (c ComfortLevel) Description() string {
	if d, ok := comfortDescriptions[c]; ok {
		return d
	}
	return "Unknown"
}
