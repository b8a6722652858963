package chartwheel

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Background color for previews.
var bgColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Rasterize paints a fragment onto a width x height image for previews.
// Document units are multiplied by scale. Glyph references are skipped
// since their artwork lives outside the chart.
func Rasterize(body Fragment, width, height int, scale float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bgColor), image.Point{}, draw.Src)
	p := &painter{img: img, scale: scale}
	p.fragment(body, Point{})
	return img
}

// painter reuses one rasterizer, sized to the box of each shape it fills.
type painter struct {
	img   *image.RGBA
	scale float64
	z     *vector.Rasterizer
}

func (p *painter) fragment(f Fragment, off Point) {
	for _, e := range f {
		switch e := e.(type) {
		case Group:
			inner := off
			if t, ok := e.Attr("transform"); ok {
				d, ok := parseTranslate(t)
				if !ok {
					continue
				}
				inner = Point{X: off.X + d.X, Y: off.Y + d.Y}
			}
			p.fragment(e.Children, inner)
		case Circle:
			st := parseStyle(e.Style)
			c := Point{X: e.CX + off.X, Y: e.CY + off.Y}
			if col, a, ok := st.fill(); ok {
				p.paint(col, a, p.ring(c, e.R, false))
			}
			if col, a, ok := st.stroke(); ok {
				w := st.width()
				p.paint(col, a, p.ring(c, e.R+w/2, false), p.ring(c, math.Max(e.R-w/2, 0), true))
			}
		case Line:
			st := parseStyle(e.Style)
			if col, a, ok := st.stroke(); ok {
				from := Point{X: e.X1 + off.X, Y: e.Y1 + off.Y}
				to := Point{X: e.X2 + off.X, Y: e.Y2 + off.Y}
				p.paint(col, a, p.segment(from, to, st.width()))
			}
		case Rect:
			st := parseStyle(e.Style)
			x0, y0 := e.X+off.X, e.Y+off.Y
			x1, y1 := x0+e.Width, y0+e.Height
			corners := []Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
			if col, a, ok := st.fill(); ok {
				p.paint(col, a, corners)
			}
			if col, a, ok := st.stroke(); ok {
				edges := make([][]Point, 0, len(corners))
				for i := range corners {
					edges = append(edges, p.segment(corners[i], corners[(i+1)%len(corners)], st.width()))
				}
				p.paint(col, a, edges...)
			}
		case Wedge:
			st := parseStyle(e.Style)
			if col, a, ok := st.fill(); ok {
				p.paint(col, a, wedgeOutline(e, off))
			}
		case Label:
			p.text(parseStyle(e.Style), Point{X: e.At.X + off.X, Y: e.At.Y + off.Y}, e.Content)
		case Text:
			p.text(parseStyle(e.Style), Point{X: off.X, Y: e.Y + off.Y}, e.Content)
		}
	}
}

// paint fills the closed contours, given in document units, with c at the
// given opacity. Only the pixels under their bounding box are touched.
func (p *painter) paint(c Color, alpha float64, contours ...[]Point) {
	if alpha <= 0 {
		return
	}
	r := p.bounds(contours).Intersect(p.img.Bounds())
	if r.Empty() {
		return
	}
	if p.z == nil {
		p.z = vector.NewRasterizer(r.Dx(), r.Dy())
	} else {
		p.z.Reset(r.Dx(), r.Dy())
	}
	for _, pts := range contours {
		if len(pts) < 3 {
			continue
		}
		p.z.MoveTo(p.pt(pts[0], r.Min))
		for _, v := range pts[1:] {
			p.z.LineTo(p.pt(v, r.Min))
		}
		p.z.ClosePath()
	}
	src := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(math.Min(alpha, 1) * 255))})
	p.z.Draw(p.img, r, src, image.Point{})
}

// bounds returns the pixel box covering the contours.
func (p *painter) bounds(contours [][]Point) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pts := range contours {
		for _, v := range pts {
			x, y := v.X*p.scale, v.Y*p.scale
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
	}
	if minX > maxX {
		return image.Rectangle{}
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
}

// pt converts v to pixel space relative to origin.
func (p *painter) pt(v Point, origin image.Point) (float32, float32) {
	return float32(v.X*p.scale - float64(origin.X)), float32(v.Y*p.scale - float64(origin.Y))
}

// ring samples a circle contour; reverse flips the winding so that an
// inner ring cuts a hole in an outer one.
func (p *painter) ring(c Point, r float64, reverse bool) []Point {
	if r <= 0 {
		return nil
	}
	n := int(math.Max(48, r*p.scale/2))
	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		if reverse {
			a = -a
		}
		pts[i] = Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return pts
}

// segment returns a line as a thin quad at least one pixel wide.
func (p *painter) segment(from, to Point, width float64) []Point {
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return nil
	}
	half := math.Max(width, 1/p.scale) / 2
	nx, ny := -dy/length*half, dx/length*half
	return []Point{
		{X: from.X + nx, Y: from.Y + ny},
		{X: to.X + nx, Y: to.Y + ny},
		{X: to.X - nx, Y: to.Y - ny},
		{X: from.X - nx, Y: from.Y - ny},
	}
}

func (p *painter) text(st style, at Point, s string) {
	col, a, ok := st.fill()
	if !ok {
		col, a = Color{}, 1
	}
	if a <= 0 {
		return
	}
	x, y := p.pt(at, image.Point{})
	d := font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(color.NRGBA{R: col.R, G: col.G, B: col.B, A: uint8(math.Round(math.Min(a, 1) * 255))}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(x), int(y)),
	}
	d.DrawString(s)
}

// wedgeOutline samples the pie slice of w. The arc runs counter-clockwise
// on screen, which is increasing math angle with y flipped.
func wedgeOutline(w Wedge, off Point) []Point {
	c := w.Center
	a0 := math.Atan2(-(w.From.Y - c.Y), w.From.X-c.X)
	a1 := math.Atan2(-(w.To.Y - c.Y), w.To.X-c.X)
	for a1 < a0 {
		a1 += 2 * math.Pi
	}
	const steps = 24
	pts := make([]Point, 0, steps+2)
	pts = append(pts, Point{X: c.X + off.X, Y: c.Y + off.Y})
	for i := 0; i <= steps; i++ {
		a := a0 + (a1-a0)*float64(i)/steps
		pts = append(pts, Point{X: c.X + w.Radius*math.Cos(a) + off.X, Y: c.Y - w.Radius*math.Sin(a) + off.Y})
	}
	return pts
}

// style is a parsed inline CSS declaration list.
type style map[string]string

func parseStyle(s string) style {
	st := make(style)
	for _, decl := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		st[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return st
}

func (st style) paint(prop string) (Color, float64, bool) {
	c, ok := ParseColor(st[prop])
	if !ok {
		return Color{}, 0, false
	}
	return c, st.number(prop+"-opacity", 1), true
}

func (st style) fill() (Color, float64, bool)   { return st.paint("fill") }
func (st style) stroke() (Color, float64, bool) { return st.paint("stroke") }

func (st style) width() float64 {
	return st.number("stroke-width", 1)
}

func (st style) number(prop string, def float64) float64 {
	v, ok := st[prop]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		return def
	}
	return f
}

func parseTranslate(s string) (Point, bool) {
	var d Point
	if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "translate(%g,%g)", &d.X, &d.Y); err != nil {
		return Point{}, false
	}
	return d, true
}
