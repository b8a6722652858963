package chartwheel

import "fmt"

// SignGlyphs are the glyph ids of the twelve signs, starting with Aries.
var SignGlyphs = [12]string{"Ari", "Tau", "Gem", "Can", "Leo", "Vir", "Lib", "Sco", "Sag", "Cap", "Aqu", "Pis"}

// glyphShift centers the 32x32 sign glyphs on their anchor point.
const glyphShift = "translate(-16,-16)"

// DrawZodiacSlice draws the 30° wedge of one sign and its glyph. Overlay
// charts start the wedge at the outer edge; single charts start it inside
// the C1 ring.
func DrawZodiacSlice(f Frame, radii Radii, sign int, glyph, style string) (Fragment, error) {
	p := f.profile()
	dropin, err := p.zodiacDropin.resolve(f.Type, radii)
	if err != nil {
		return nil, err
	}
	glyphDropin, err := p.glyphDropin.resolve(f.Type, radii)
	if err != nil {
		return nil, err
	}

	r := radii.R
	offset := f.Rotation()
	inner := r - dropin
	slice := float64(sign)
	wedge := Wedge{
		Center: Point{X: r, Y: r},
		Radius: inner,
		From:   shift(SliceToPoint(slice, inner, offset), dropin),
		To:     shift(SliceToPoint(slice+1, inner, offset), dropin),
		Style:  style,
	}

	at := shift(SliceToPoint(slice, r-glyphDropin, offset+15), glyphDropin)
	symbol := Group{
		Attrs:    []Attr{{Name: "transform", Value: glyphShift}},
		Children: Fragment{Use{X: at.X, Y: at.Y, Href: glyph}},
	}
	return Fragment{wedge, symbol}, nil
}

// DrawZodiac draws all twelve sign slices with the theme's backgrounds.
func DrawZodiac(f Frame, radii Radii, theme Theme) (Fragment, error) {
	var out Fragment
	for i, glyph := range SignGlyphs {
		style := fmt.Sprintf("fill: %s; fill-opacity: 0.5;", theme.zodiacBackground(i))
		slice, err := DrawZodiacSlice(f, radii, i, glyph, style)
		if err != nil {
			return nil, err
		}
		out = append(out, slice...)
	}
	return out, nil
}

// DrawFirstCircle draws the outline inside the sign ring. Single charts
// need c1.
func DrawFirstCircle(f Frame, r float64, stroke string, c1 *float64) (Fragment, error) {
	p := f.profile()
	inset, err := p.firstCircle.resolve(f.Type, Radii{R: r, C1: c1})
	if err != nil {
		return nil, err
	}
	return Fragment{Circle{CX: r, CY: r, R: r - inset, Style: fmt.Sprintf(p.firstCircleStyle, stroke)}}, nil
}

// DrawSecondCircle draws the filled disc under the houses. Single charts
// need c2.
func DrawSecondCircle(f Frame, r float64, stroke, fill string, c2 *float64) (Fragment, error) {
	p := f.profile()
	inset, err := p.secondCircle.resolve(f.Type, Radii{R: r, C2: c2})
	if err != nil {
		return nil, err
	}
	return Fragment{Circle{CX: r, CY: r, R: r - inset, Style: fmt.Sprintf(p.secondCircleStyle, fill, stroke)}}, nil
}

// DrawThirdCircle draws the inner disc that holds the aspect lines.
// Single charts need c3.
func DrawThirdCircle(f Frame, r float64, stroke, fill string, c3 *float64) (Fragment, error) {
	p := f.profile()
	inset, err := p.thirdCircle.resolve(f.Type, Radii{R: r, C3: c3})
	if err != nil {
		return nil, err
	}
	return Fragment{Circle{CX: r, CY: r, R: r - inset, Style: fmt.Sprintf(p.thirdCircleStyle, fill, stroke)}}, nil
}

// DrawTransitRing draws the outer band that carries the second chart.
func DrawTransitRing(r float64, paper, ring string) Fragment {
	const bandInset = 18
	return Fragment{
		Circle{CX: r, CY: r, R: r - bandInset, Style: fmt.Sprintf("fill: none; stroke: %s; stroke-width: 36px; stroke-opacity: .4;", paper)},
		Circle{CX: r, CY: r, R: r, Style: fmt.Sprintf("fill: none; stroke: %s; stroke-width: 1px; stroke-opacity: .6;", ring)},
	}
}

const degreeTicks = 72

// tickOffset rotates tick i into the chart frame. Only one wrap is
// corrected, which covers every descendant in [0, 360].
func tickOffset(i int, descendant float64) float64 {
	offset := float64(i*5) - descendant
	if offset < 0 {
		offset += 360
	} else if offset > 360 {
		offset -= 360
	}
	return offset
}

// DrawDegreeRing draws a tick every 5° on the inside of the C1 ring.
func DrawDegreeRing(f Frame, r, c1 float64, stroke string) Fragment {
	style := fmt.Sprintf("stroke: %s; stroke-width: 1px; stroke-opacity:.9;", stroke)
	ticks := make(Fragment, 0, degreeTicks)
	for i := 0; i < degreeTicks; i++ {
		offset := tickOffset(i, f.Descendant)
		p1 := shift(SliceToPoint(0, r-c1, offset), c1)
		p2 := shift(SliceToPoint(0, r+2-c1, offset), c1-2)
		ticks = append(ticks, Line{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y, Style: style})
	}
	return Fragment{Group{Attrs: []Attr{{Name: "id", Value: "degreeRing"}}, Children: ticks}}
}

// DrawTransitDegreeSteps draws the 5° ticks on the outer edge of an
// overlay chart.
func DrawTransitDegreeSteps(f Frame, r float64) Fragment {
	const style = "stroke: #F00; stroke-width: 1px; stroke-opacity:.9;"
	ticks := make(Fragment, 0, degreeTicks)
	for i := 0; i < degreeTicks; i++ {
		offset := tickOffset(i, f.Descendant)
		p1 := SliceToPoint(0, r, offset)
		p2 := shift(SliceToPoint(0, r+2, offset), -2)
		ticks = append(ticks, Line{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y, Style: style})
	}
	return Fragment{Group{Attrs: []Attr{{Name: "id", Value: "transitRingDegreeSteps"}}, Children: ticks}}
}

func shift(p Point, d float64) Point {
	return Point{X: p.X + d, Y: p.Y + d}
}
