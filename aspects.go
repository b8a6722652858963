package chartwheel

import (
	"fmt"
	"math"
	"slices"
)

// Planet is a body placed on the wheel. Only active planets take part in
// the aspect grid; slice order decides the grid layout.
type Planet struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	AbsPos float64 `json:"abs_pos"`
	Active bool    `json:"is_active"`
}

// Aspect is an angular relation between two planets. AspectDegrees only
// picks the glyph; orb and exactness are the ephemeris layer's concern.
type Aspect struct {
	P1            int     `json:"p1"`
	P1Name        string  `json:"p1_name"`
	P1AbsPos      float64 `json:"p1_abs_pos"`
	P2            int     `json:"p2"`
	P2Name        string  `json:"p2_name"`
	P2AbsPos      float64 `json:"p2_abs_pos"`
	AspectDegrees int     `json:"aspect_degrees"`
}

// Joins reports whether the aspect links planets a and b, in either order.
func (a Aspect) Joins(p, q int) bool {
	return (a.P1 == p && a.P2 == q) || (a.P1 == q && a.P2 == p)
}

// DrawAspectLine draws a chord between the two bodies of a on the aspect
// ring of radius ar, inside a wheel of radius r. Positions are truncated to
// whole degrees.
func DrawAspectLine(f Frame, r, ar float64, a Aspect, color string) Fragment {
	descendant := math.Trunc(f.Descendant)
	p1 := shift(SliceToPoint(0, ar, math.Trunc(a.P1AbsPos)-descendant), r-ar)
	p2 := shift(SliceToPoint(0, ar, math.Trunc(a.P2AbsPos)-descendant), r-ar)

	return Fragment{Group{
		Attrs: []Attr{
			{Name: "kr:node", Value: "Aspect"},
			{Name: "kr:to", Value: a.P1Name},
			{Name: "kr:tooriginaldegrees", Value: num(a.P1AbsPos)},
			{Name: "kr:from", Value: a.P2Name},
			{Name: "kr:fromoriginaldegrees", Value: num(a.P2AbsPos)},
		},
		Children: Fragment{Line{
			Class: "aspect",
			X1:    p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y,
			Style: fmt.Sprintf("stroke: %s; stroke-width: 1; stroke-opacity: .9;", color),
		}},
	}}
}

// DrawAspectLines draws every aspect on the chart's aspect ring, colored by
// aspect angle.
func DrawAspectLines(f Frame, radii Radii, aspects []Aspect, colors AspectColors) (Fragment, error) {
	inset, err := f.profile().aspectRing.resolve(f.Type, radii)
	if err != nil {
		return nil, err
	}
	out := make(Fragment, 0, len(aspects))
	for _, a := range aspects {
		out = append(out, DrawAspectLine(f, radii.R, radii.R-inset, a, colors.For(a.AspectDegrees))...)
	}
	return out, nil
}

// Aspect grid layout, in document units.
const (
	gridOriginX = 380
	gridOriginY = 468
	gridBox     = 14
)

// DrawAspectGrid draws the triangular aspect matrix. Active planets are
// laid out last-first along the diagonal; each cell below the diagonal
// shows the orb glyph of the aspect joining its row and column planets.
func DrawAspectGrid(stroke string, planets []Planet, aspects []Aspect) Fragment {
	style := fmt.Sprintf("stroke:%s; stroke-width: 1px; stroke-opacity:.6; fill:none", stroke)

	var active []Planet
	for _, p := range planets {
		if p.Active {
			active = append(active, p)
		}
	}
	slices.Reverse(active)

	var out Fragment
	x, y := float64(gridOriginX), float64(gridOriginY)
	for i, a := range active {
		out = append(out,
			Rect{X: x, Y: y, Width: gridBox, Height: gridBox, Style: style},
			Use{Transform: "scale(0.4)", X: (x + 2) * 2.5, Y: (y + 1) * 2.5, Href: a.Name},
		)
		x += gridBox
		y -= gridBox

		cellX, cellY := x, y+gridBox
		for _, b := range active[i+1:] {
			out = append(out, Rect{X: cellX, Y: cellY, Width: gridBox, Height: gridBox, Style: style})
			for _, asp := range aspects {
				if asp.Joins(a.ID, b.ID) {
					out = append(out, Use{X: cellX + 1, Y: cellY + 1, Href: fmt.Sprintf("orb%d", asp.AspectDegrees)})
				}
			}
			cellX += gridBox
		}
	}
	return out
}
