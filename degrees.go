package chartwheel

import (
	"fmt"
	"math"
)

// Precision selects how much of a sexagesimal value is written.
type Precision int

const (
	PrecisionDegrees Precision = 1 // 12°
	PrecisionMinutes Precision = 2 // 12°34'
	PrecisionSeconds Precision = 3 // 12°34'56"
)

// DecimalToDMS writes a decimal degree value in degrees, minutes and
// seconds. Minutes and seconds come from the fractional remainder at each
// step, so the PrecisionMinutes minute is rounded while the PrecisionSeconds
// minute is truncated.
func DecimalToDMS(value float64, p Precision) (string, error) {
	deg := math.Trunc(value)
	minutes := (value - deg) * 60
	whole := math.Trunc(minutes)
	seconds := math.RoundToEven((minutes - whole) * 60)

	switch p {
	case PrecisionSeconds:
		return fmt.Sprintf("%02d°%02d'%02d\"", int(deg), int(whole), int(seconds)), nil
	case PrecisionMinutes:
		return fmt.Sprintf("%02d°%02d'", int(deg), int(math.RoundToEven(minutes))), nil
	case PrecisionDegrees:
		return fmt.Sprintf("%02d°", int(deg)), nil
	}
	return "", fmt.Errorf("%w: precision %d, must be 1, 2 or 3", ErrInvalidFormat, int(p))
}

// LatitudeToString formats a latitude as 52°7'25" N.
func LatitudeToString(value float64, north, south string) string {
	return hemisphereString(value, north, south)
}

// LongitudeToString formats a longitude as 13°24'36" E.
func LongitudeToString(value float64, east, west string) string {
	return hemisphereString(value, east, west)
}

func hemisphereString(value float64, positive, negative string) string {
	label := positive
	if value < 0 {
		label = negative
		value = math.Abs(value)
	}
	deg := math.Trunc(value)
	minutes := (value - deg) * 60
	whole := math.Trunc(minutes)
	seconds := math.RoundToEven((minutes - whole) * 60)
	return fmt.Sprintf("%d°%d'%d\" %s", int(deg), int(whole), int(seconds), label)
}
