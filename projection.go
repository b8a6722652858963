package chartwheel

import (
	"fmt"
	"math"
	"time"
)

// Point is a position on the drawing surface. The origin is top-left and
// y grows downward.
type Point struct {
	X, Y float64
}

// SliceToX returns the x coordinate of a point on a circle of the given
// radius centered at (radius, radius). slice counts 30° wedges and offset
// adds a rotation in degrees.
func SliceToX(slice, radius, offset float64) float64 {
	return radius * (math.Cos(sliceAngle(slice, offset)) + 1)
}

// SliceToY is the y counterpart of SliceToX. The sine is negated because
// screen y is inverted.
func SliceToY(slice, radius, offset float64) float64 {
	return radius * (1 - math.Sin(sliceAngle(slice, offset)))
}

// SliceToPoint returns SliceToX and SliceToY together.
func SliceToPoint(slice, radius, offset float64) Point {
	return Point{X: SliceToX(slice, radius, offset), Y: SliceToY(slice, radius, offset)}
}

func sliceAngle(slice, offset float64) float64 {
	return math.Pi/6*slice + math.Pi*offset/180
}

// insetPoint projects onto the circle of radius r-inset and shifts the
// result back into the coordinate space of the outer circle of radius r.
func insetPoint(r, inset, offset float64) Point {
	p := SliceToPoint(0, r-inset, offset)
	return Point{X: p.X + inset, Y: p.Y + inset}
}

// AngularDistance returns the short-way difference between two degree
// values, in [0, 180] for inputs in [0, 360).
func AngularDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// HoursFromParts joins a clock time into decimal hours.
func HoursFromParts(hour, minute, second int) float64 {
	return float64(hour) + float64(minute)/60 + float64(second)/3600
}

// TimezoneOffsetHours converts a UTC offset into decimal hours. Sub-second
// precision is floored away.
func TimezoneOffsetHours(offset *time.Duration) (float64, error) {
	if offset == nil {
		return 0, fmt.Errorf("%w: timezone offset is nil", ErrInvalidInput)
	}
	seconds := math.Floor(offset.Seconds())
	return seconds / 3600, nil
}
