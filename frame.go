package chartwheel

import "fmt"

// HouseCusps holds the twelve house cusps in absolute degrees. Index 0 is
// the ascendant and index 6 the descendant.
type HouseCusps [12]float64

// NewHouseCusps copies values into a HouseCusps, rejecting any length
// other than twelve.
func NewHouseCusps(values []float64) (HouseCusps, error) {
	var h HouseCusps
	if len(values) != len(h) {
		return h, fmt.Errorf("%w: %d house cusps, want 12", ErrInvalidInput, len(values))
	}
	copy(h[:], values)
	return h, nil
}

// Next returns the cusp after house i, wrapping from the twelfth house to
// the first.
func (h HouseCusps) Next(i int) float64 {
	return h[(i+1)%len(h)]
}

// Frame is the rotation shared by every ring of one diagram. It must be
// built once per chart and passed unchanged to each renderer.
type Frame struct {
	Type       ChartType
	Descendant float64
}

// NewFrame anchors a chart of type t on the descendant of cusps.
func NewFrame(t ChartType, cusps HouseCusps) Frame {
	return Frame{Type: t, Descendant: cusps[6]}
}

// Rotation is the offset in degrees that puts the descendant at slice 0.
func (f Frame) Rotation() float64 {
	return 360 - f.Descendant
}

func (f Frame) profile() profile {
	if p, ok := profiles[f.Type]; ok {
		return p
	}
	return profiles[Natal]
}

type insetSource int

const (
	fixedInset insetSource = iota
	fromC1
	fromC2
	fromC3
)

// band is a radial inset that is either constant or read from the caller's
// Radii, plus a constant extra.
type band struct {
	source insetSource
	value  float64
}

func fixedBand(v float64) band { return band{source: fixedInset, value: v} }

func (b band) resolve(t ChartType, r Radii) (float64, error) {
	var p *float64
	var name string
	switch b.source {
	case fixedInset:
		return b.value, nil
	case fromC1:
		p, name = r.C1, "c1"
	case fromC2:
		p, name = r.C2, "c2"
	case fromC3:
		p, name = r.C3, "c3"
	}
	if p == nil {
		return 0, fmt.Errorf("%w: %s is required for %s charts", ErrMissingParameter, name, t)
	}
	return *p + b.value, nil
}

// profile collects the per chart type constants of the wheel.
type profile struct {
	zodiacDropin band
	glyphDropin  band
	firstCircle  band
	secondCircle band
	thirdCircle  band
	aspectRing   band

	houseLineStart band
	houseLineEnd   band
	houseLabel     band

	firstCircleStyle  string
	secondCircleStyle string
	thirdCircleStyle  string

	overlayLabelOpacity string
	overlayLineOpacity  string
}

var singleProfile = profile{
	zodiacDropin:      band{source: fromC1},
	glyphDropin:       band{source: fromC1, value: 18},
	firstCircle:       band{source: fromC1},
	secondCircle:      band{source: fromC2},
	thirdCircle:       band{source: fromC3},
	aspectRing:        band{source: fromC3},
	houseLineStart:    band{source: fromC3},
	houseLineEnd:      band{source: fromC1},
	houseLabel:        fixedBand(48),
	firstCircleStyle:  "fill: none; stroke: %s; stroke-width: 1px; ",
	secondCircleStyle: "fill: %s; fill-opacity:.2; stroke: %s; stroke-opacity:.4; stroke-width: 1px",
	thirdCircleStyle:  "fill: %s; fill-opacity:.1; stroke: %s; stroke-opacity:.4; stroke-width: 1px",
}

var overlayProfile = profile{
	zodiacDropin:        fixedBand(0),
	glyphDropin:         fixedBand(54),
	firstCircle:         fixedBand(36),
	secondCircle:        fixedBand(72),
	thirdCircle:         fixedBand(160),
	aspectRing:          fixedBand(160),
	houseLineStart:      fixedBand(160),
	houseLineEnd:        fixedBand(72),
	houseLabel:          fixedBand(84),
	firstCircleStyle:    "fill: none; stroke: %s; stroke-width: 1px; stroke-opacity:.4;",
	secondCircleStyle:   "fill: %s; fill-opacity:.4; stroke: %s; stroke-opacity:.4; stroke-width: 1px",
	thirdCircleStyle:    "fill: %s; fill-opacity:.3; stroke: %s; stroke-opacity:.4; stroke-width: 1px",
	overlayLabelOpacity: ".4",
	overlayLineOpacity:  ".3",
}

var profiles = map[ChartType]profile{
	Natal: singleProfile,
	ExternalNatal: func() profile {
		p := singleProfile
		p.houseLabel = fixedBand(100)
		return p
	}(),
	Synastry: overlayProfile,
	Transit: func() profile {
		p := overlayProfile
		p.overlayLabelOpacity = "0"
		p.overlayLineOpacity = "0"
		return p
	}(),
}

// overlayCuspInset is where the second chart's cusp lines start, measured
// from the outer radius.
const overlayCuspInset = 36

// overlayLabelInset places the second chart's house numbers.
const overlayLabelInset = 8
