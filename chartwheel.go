// Package chartwheel turns precomputed astrological angles into the geometry
// of a circular chart and emits it as SVG markup.
//
// Positions are absolute ecliptic degrees. Every ring of one diagram is
// rotated by the same Frame so that the descendant (seventh house cusp)
// sits at the right edge of the wheel and the ascendant at the left.
// Renderers are pure functions that return immutable Fragments; callers
// decide the paint order.
package chartwheel

import (
	"fmt"
	"strings"

	"golang.org/x/image/colornames"
)

// ChartType selects the ring layout of a diagram.
type ChartType int

const (
	Natal ChartType = iota
	ExternalNatal
	Synastry
	Transit
)

var chartTypeNames = [...]string{"Natal", "ExternalNatal", "Synastry", "Transit"}

func (t ChartType) String() string {
	if t < 0 || int(t) >= len(chartTypeNames) {
		return fmt.Sprintf("ChartType(%d)", int(t))
	}
	return chartTypeNames[t]
}

// ParseChartType accepts the chart type name in any letter case.
func ParseChartType(s string) (ChartType, error) {
	for i, name := range chartTypeNames {
		if strings.EqualFold(s, name) {
			return ChartType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown chart type %q", ErrInvalidInput, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t ChartType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ChartType) UnmarshalText(b []byte) error {
	parsed, err := ParseChartType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// HasOverlay reports whether the type draws a second chart over the first.
func (t ChartType) HasOverlay() bool {
	return t == Synastry || t == Transit
}

// Radii describes the ring bands of a wheel. R is the outer radius; the
// insets measure inward from it and must satisfy R > R-C1 > R-C2 > R-C3 >= 0.
// Insets are optional because overlay charts use fixed bands instead.
type Radii struct {
	R  float64  `json:"r"`
	C1 *float64 `json:"c1,omitempty"`
	C2 *float64 `json:"c2,omitempty"`
	C3 *float64 `json:"c3,omitempty"`
}

// DefaultRadii returns the stock ring layout for a chart type.
func DefaultRadii(t ChartType) Radii {
	if t == ExternalNatal {
		return Radii{R: 240, C1: Float(56), C2: Float(92), C3: Float(112)}
	}
	return Radii{R: 240, C1: Float(0), C2: Float(36), C3: Float(120)}
}

// Float returns a pointer to v, for optional ring insets.
func Float(v float64) *float64 {
	return &v
}

// Color represents an RGB color value.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as a CSS hex string.
func (c Color) Hex() string {
	return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B)
}

func hexByte(b uint8) string {
	const hex = "0123456789abcdef"
	return string([]byte{hex[b>>4], hex[b&0x0f]})
}

// ParseColor reads a CSS color in #rgb or #rrggbb form, or an SVG color
// keyword. ok is false for anything else, including "none".
func ParseColor(s string) (c Color, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if named, found := colornames.Map[s]; found {
		return Color{named.R, named.G, named.B}, true
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, false
	}
	digits := s[1:]
	switch len(digits) {
	case 3:
		var v [3]uint8
		for i := 0; i < 3; i++ {
			n, valid := hexNibble(digits[i])
			if !valid {
				return Color{}, false
			}
			v[i] = n<<4 | n
		}
		return Color{v[0], v[1], v[2]}, true
	case 6:
		var v [3]uint8
		for i := 0; i < 3; i++ {
			hi, ok1 := hexNibble(digits[2*i])
			lo, ok2 := hexNibble(digits[2*i+1])
			if !ok1 || !ok2 {
				return Color{}, false
			}
			v[i] = hi<<4 | lo
		}
		return Color{v[0], v[1], v[2]}, true
	}
	return Color{}, false
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}
