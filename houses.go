package chartwheel

import (
	"fmt"
	"math"
	"strconv"
)

// HouseColors are the cusp line colors. The four angles have their own.
type HouseColors struct {
	Standard string `mapstructure:"standard" json:"standard"`
	First    string `mapstructure:"first" json:"first"`     // ascendant
	Fourth   string `mapstructure:"fourth" json:"fourth"`   // IC
	Seventh  string `mapstructure:"seventh" json:"seventh"` // descendant
	Tenth    string `mapstructure:"tenth" json:"tenth"`     // MC
}

func (c HouseColors) forHouse(i int) string {
	switch i {
	case 0:
		return c.First
	case 3:
		return c.Fourth
	case 6:
		return c.Seventh
	case 9:
		return c.Tenth
	}
	return c.Standard
}

const (
	cuspStyle         = "stroke: %s; stroke-width: 1px; stroke-dasharray:3,2; stroke-opacity:.4;"
	houseNumberStyle  = "fill: #f00; fill-opacity: .6; font-size: 14px"
	overlayCuspStyle  = "stroke: %s; stroke-width: 1px; stroke-opacity:%s;"
	overlayLabelStyle = "fill: #00f; fill-opacity: %s; font-size: 14px"
)

// DrawHouses draws the twelve cusp lines and house numbers. Overlay chart
// types also draw the cusps of overlay, rotated into the first chart's
// frame; overlay is required for them and ignored otherwise.
//
// Per house the output is: overlay number and cusp (overlay types only),
// then the cusp line and the number of the first chart.
func DrawHouses(f Frame, radii Radii, cusps HouseCusps, overlay *HouseCusps, colors HouseColors) (Fragment, error) {
	if f.Type.HasOverlay() && overlay == nil {
		return nil, fmt.Errorf("%w: second subject house cusps are required for %s charts", ErrMissingParameter, f.Type)
	}
	p := f.profile()
	lineStart, err := p.houseLineStart.resolve(f.Type, radii)
	if err != nil {
		return nil, err
	}
	lineEnd, err := p.houseLineEnd.resolve(f.Type, radii)
	if err != nil {
		return nil, err
	}
	labelInset, err := p.houseLabel.resolve(f.Type, radii)
	if err != nil {
		return nil, err
	}

	r := radii.R
	out := make(Fragment, 0, 4*len(cusps))
	for i := range cusps {
		color := colors.forHouse(i)
		number := strconv.Itoa(i + 1)

		if f.Type.HasOverlay() {
			offset := f.Rotation() + overlay[i]
			if offset > 360 {
				offset -= 360
			}
			from := insetPoint(r, overlayCuspInset, offset)
			to := SliceToPoint(0, r, offset)
			textOffset := offset + math.Trunc(AngularDistance(overlay.Next(i), overlay[i])/2)
			at := insetPoint(r, overlayLabelInset, textOffset)

			out = append(out,
				node("HouseNumber", Label{
					At:      Point{X: at.X - 3, Y: at.Y + 3},
					Style:   fmt.Sprintf(overlayLabelStyle, p.overlayLabelOpacity),
					Content: number,
				}),
				node("Cusp", Line{
					X1: from.X, Y1: from.Y, X2: to.X, Y2: to.Y,
					Style: fmt.Sprintf(overlayCuspStyle, color, p.overlayLineOpacity),
				}),
			)
		}

		// Cusps are truncated to whole degrees before rotating.
		offset := math.Trunc(cusps[i]) - math.Trunc(f.Descendant)
		from := insetPoint(r, lineStart, offset)
		to := insetPoint(r, lineEnd, offset)
		textOffset := offset + math.Trunc(AngularDistance(cusps.Next(i), cusps[i])/2)
		at := insetPoint(r, labelInset, textOffset)

		out = append(out,
			node("Cusp", Line{X1: from.X, Y1: from.Y, X2: to.X, Y2: to.Y, Style: fmt.Sprintf(cuspStyle, color)}),
			node("HouseNumber", Label{At: Point{X: at.X - 3, Y: at.Y + 3}, Style: houseNumberStyle, Content: number}),
		)
	}
	return out, nil
}

// node wraps children in a group tagged with a kr:node role.
func node(role string, children ...Element) Group {
	return Group{Attrs: []Attr{{Name: "kr:node", Value: role}}, Children: children}
}
