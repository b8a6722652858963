package chartwheel

import (
	"errors"
	"strings"
	"testing"
)

// cuspsFrom returns twelve equal houses starting at asc.
func cuspsFrom(asc float64) HouseCusps {
	var h HouseCusps
	for i := range h {
		v := asc + float64(30*i)
		if v >= 360 {
			v -= 360
		}
		h[i] = v
	}
	return h
}

func TestHouseCusps(t *testing.T) {
	if _, err := NewHouseCusps(make([]float64, 11)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("11 cusps: got %v, want ErrInvalidInput", err)
	}
	if _, err := NewHouseCusps(make([]float64, 13)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("13 cusps: got %v, want ErrInvalidInput", err)
	}
	h := cuspsFrom(10)
	if h.Next(11) != h[0] {
		t.Errorf("Next(11) = %v, want %v", h.Next(11), h[0])
	}
	if h.Next(3) != h[4] {
		t.Errorf("Next(3) = %v, want %v", h.Next(3), h[4])
	}
}

func TestFrameRotation(t *testing.T) {
	f := NewFrame(Natal, cuspsFrom(10))
	if f.Descendant != 190 {
		t.Fatalf("Descendant = %v, want 190", f.Descendant)
	}
	if f.Rotation() != 170 {
		t.Errorf("Rotation() = %v, want 170", f.Rotation())
	}
	// The descendant lands on slice 0, the right edge.
	p := SliceToPoint(0, 240, f.Descendant+f.Rotation())
	if !near(p.X, 480) || !near(p.Y, 240) {
		t.Errorf("descendant projected to %v", p)
	}
}

func TestTickOffset(t *testing.T) {
	tests := []struct {
		i          int
		descendant float64
		want       float64
	}{
		{0, 0, 0},
		{71, 0, 355},
		{0, 190, 170},
		{40, 190, 10},
	}
	for _, tt := range tests {
		if got := tickOffset(tt.i, tt.descendant); got != tt.want {
			t.Errorf("tickOffset(%d, %v) = %v, want %v", tt.i, tt.descendant, got, tt.want)
		}
	}
	for i := 0; i < degreeTicks; i++ {
		for _, d := range []float64{0, 0.5, 179.9, 359.9} {
			if o := tickOffset(i, d); o < 0 || o > 360 {
				t.Fatalf("tickOffset(%d, %v) = %v out of range", i, d, o)
			}
		}
	}
}

func TestDrawZodiacSliceNatal(t *testing.T) {
	f := NewFrame(Natal, cuspsFrom(0)) // descendant 180
	out, err := DrawZodiacSlice(f, DefaultRadii(Natal), 0, "Ari", "fill: #ff7200;")
	if err != nil {
		t.Fatalf("DrawZodiacSlice error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d elements, want 2", len(out))
	}
	w, ok := out[0].(Wedge)
	if !ok {
		t.Fatalf("first element is %T, want Wedge", out[0])
	}
	if w.Center != (Point{240, 240}) || w.Radius != 240 {
		t.Errorf("wedge center %v radius %v", w.Center, w.Radius)
	}
	if !near(w.From.X, 0) || !near(w.From.Y, 240) {
		t.Errorf("wedge starts at %v, want (0, 240)", w.From)
	}
	g, ok := out[1].(Group)
	if !ok {
		t.Fatalf("second element is %T, want Group", out[1])
	}
	if tr, _ := g.Attr("transform"); tr != "translate(-16,-16)" {
		t.Errorf("glyph transform = %q", tr)
	}
	if u, ok := g.Children[0].(Use); !ok || u.Href != "Ari" {
		t.Errorf("glyph = %#v", g.Children[0])
	}
	if !strings.Contains(out.String(), `xlink:href="#Ari"`) {
		t.Errorf("markup lacks glyph reference: %s", out)
	}
}

func TestDrawZodiacSliceDropins(t *testing.T) {
	ext, err := DrawZodiacSlice(NewFrame(ExternalNatal, cuspsFrom(0)), DefaultRadii(ExternalNatal), 3, "Can", "")
	if err != nil {
		t.Fatalf("external natal: %v", err)
	}
	if r := ext[0].(Wedge).Radius; r != 184 {
		t.Errorf("external natal wedge radius = %v, want 184", r)
	}

	// Overlay charts ignore the caller's insets.
	tr, err := DrawZodiacSlice(NewFrame(Transit, cuspsFrom(0)), Radii{R: 240}, 3, "Can", "")
	if err != nil {
		t.Fatalf("transit: %v", err)
	}
	if r := tr[0].(Wedge).Radius; r != 240 {
		t.Errorf("transit wedge radius = %v, want 240", r)
	}
}

func TestDrawZodiacSliceMissingC1(t *testing.T) {
	_, err := DrawZodiacSlice(NewFrame(Natal, cuspsFrom(0)), Radii{R: 240}, 0, "Ari", "")
	if !errors.Is(err, ErrMissingParameter) {
		t.Errorf("got %v, want ErrMissingParameter", err)
	}
}

func TestDrawZodiac(t *testing.T) {
	f := NewFrame(Natal, cuspsFrom(0))
	out, err := DrawZodiac(f, DefaultRadii(Natal), DefaultTheme())
	if err != nil {
		t.Fatalf("DrawZodiac error: %v", err)
	}
	if len(out) != 24 {
		t.Fatalf("got %d elements, want 24", len(out))
	}
	if s := out[0].(Wedge).Style; s != "fill: #ff7200; fill-opacity: 0.5;" {
		t.Errorf("first wedge style = %q", s)
	}

	bare := DefaultTheme()
	bare.ZodiacBackgrounds = nil
	out, err = DrawZodiac(f, DefaultRadii(Natal), bare)
	if err != nil {
		t.Fatalf("DrawZodiac without backgrounds: %v", err)
	}
	if s := out[22].(Wedge).Style; s != "fill: none; fill-opacity: 0.5;" {
		t.Errorf("wedge style without backgrounds = %q", s)
	}
}

func TestDrawCircles(t *testing.T) {
	natal := NewFrame(Natal, cuspsFrom(0))
	if _, err := DrawFirstCircle(natal, 240, "#f00", nil); !errors.Is(err, ErrMissingParameter) {
		t.Errorf("first circle without c1: %v", err)
	}
	if _, err := DrawSecondCircle(natal, 240, "#f00", "#fff", nil); !errors.Is(err, ErrMissingParameter) {
		t.Errorf("second circle without c2: %v", err)
	}
	if _, err := DrawThirdCircle(natal, 240, "#f00", "#fff", nil); !errors.Is(err, ErrMissingParameter) {
		t.Errorf("third circle without c3: %v", err)
	}

	second, err := DrawSecondCircle(natal, 240, "#f00", "#fff", Float(36))
	if err != nil {
		t.Fatal(err)
	}
	c := second[0].(Circle)
	if c.R != 204 || c.CX != 240 || c.CY != 240 {
		t.Errorf("second circle = %+v", c)
	}
	if !strings.HasPrefix(c.Style, "fill: #fff; fill-opacity:.2; stroke: #f00;") {
		t.Errorf("second circle style = %q", c.Style)
	}

	transit := NewFrame(Transit, cuspsFrom(0))
	tests := []struct {
		draw func() (Fragment, error)
		want float64
	}{
		{func() (Fragment, error) { return DrawFirstCircle(transit, 240, "#f00", nil) }, 204},
		{func() (Fragment, error) { return DrawSecondCircle(transit, 240, "#f00", "#fff", nil) }, 168},
		{func() (Fragment, error) { return DrawThirdCircle(transit, 240, "#f00", "#fff", Float(1)) }, 80},
	}
	for i, tt := range tests {
		out, err := tt.draw()
		if err != nil {
			t.Fatalf("transit circle %d: %v", i, err)
		}
		if r := out[0].(Circle).R; r != tt.want {
			t.Errorf("transit circle %d radius = %v, want %v", i, r, tt.want)
		}
	}
}

func TestDrawTransitRing(t *testing.T) {
	out := DrawTransitRing(240, "#fff", "#ff7200")
	if len(out) != 2 {
		t.Fatalf("got %d elements, want 2", len(out))
	}
	if out[0].(Circle).R != 222 || out[1].(Circle).R != 240 {
		t.Errorf("radii = %v, %v", out[0].(Circle).R, out[1].(Circle).R)
	}
	if !strings.Contains(out[0].(Circle).Style, "stroke-width: 36px") {
		t.Errorf("band style = %q", out[0].(Circle).Style)
	}
}

func TestDrawDegreeRing(t *testing.T) {
	out := DrawDegreeRing(NewFrame(Natal, cuspsFrom(180)), 240, 0, "#000")
	if len(out) != 1 {
		t.Fatalf("got %d elements, want 1 group", len(out))
	}
	g := out[0].(Group)
	if id, _ := g.Attr("id"); id != "degreeRing" {
		t.Errorf("id = %q", id)
	}
	if len(g.Children) != degreeTicks {
		t.Fatalf("got %d ticks, want %d", len(g.Children), degreeTicks)
	}
	// Descendant 0: the first tick points right, two units long.
	l := g.Children[0].(Line)
	if !near(l.X1, 480) || !near(l.Y1, 240) || !near(l.X2, 482) || !near(l.Y2, 240) {
		t.Errorf("first tick = %+v", l)
	}
}

func TestDrawTransitDegreeSteps(t *testing.T) {
	out := DrawTransitDegreeSteps(NewFrame(Transit, cuspsFrom(90)), 240)
	g := out[0].(Group)
	if id, _ := g.Attr("id"); id != "transitRingDegreeSteps" {
		t.Errorf("id = %q", id)
	}
	if len(g.Children) != degreeTicks {
		t.Fatalf("got %d ticks, want %d", len(g.Children), degreeTicks)
	}
	if s := g.Children[5].(Line).Style; !strings.Contains(s, "stroke: #F00") {
		t.Errorf("tick style = %q", s)
	}
}
