package chartwheel

import (
	"context"
	"image"
	"testing"

	"github.com/rs/zerolog"
)

func isWhite(c interface{ RGBA() (r, g, b, a uint32) }) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 > 245 && g>>8 > 245 && b>>8 > 245
}

func TestRasterizeSize(t *testing.T) {
	img := Rasterize(nil, 400, 300, 1)
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("image size = %dx%d, want 400x300", b.Dx(), b.Dy())
	}
	if c := img.RGBAAt(200, 150); !isWhite(c) {
		t.Errorf("background pixel = %v, want white", c)
	}
}

func TestRasterizeCircle(t *testing.T) {
	body := Fragment{Circle{CX: 50, CY: 40, R: 20, Style: "fill: #ff0000;"}}
	img := Rasterize(body, 100, 80, 1)
	c := img.RGBAAt(50, 40)
	if c.R < 200 || c.G > 50 || c.B > 50 {
		t.Errorf("center pixel = %v, want red", c)
	}
	if c := img.RGBAAt(5, 5); !isWhite(c) {
		t.Errorf("corner pixel = %v, want white", c)
	}
}

func TestRasterizeStrokeOnlyCircle(t *testing.T) {
	body := Fragment{Circle{CX: 50, CY: 50, R: 30, Style: "fill: none; stroke: #0000ff; stroke-width: 4px"}}
	img := Rasterize(body, 100, 100, 1)
	if c := img.RGBAAt(50, 50); !isWhite(c) {
		t.Errorf("center of ring = %v, want white", c)
	}
	if c := img.RGBAAt(80, 50); c.B < 200 || c.R > 50 {
		t.Errorf("ring pixel = %v, want blue", c)
	}
}

func TestRasterizeTranslateAndScale(t *testing.T) {
	body := Translate(10, 0, Fragment{Rect{X: 0, Y: 0, Width: 10, Height: 10, Style: "fill:#0000ff"}})
	img := Rasterize(body, 60, 60, 2)
	if c := img.RGBAAt(30, 10); c.B < 200 || c.R > 50 {
		t.Errorf("translated pixel = %v, want blue", c)
	}
	if c := img.RGBAAt(10, 10); !isWhite(c) {
		t.Errorf("pixel left of the rect = %v, want white", c)
	}
}

func TestRasterizeSkipsUnsupportedTransforms(t *testing.T) {
	body := Fragment{Group{
		Attrs:    []Attr{{Name: "transform", Value: "scale(0.4)"}},
		Children: Fragment{Rect{Width: 50, Height: 50, Style: "fill:#000"}},
	}}
	img := Rasterize(body, 50, 50, 1)
	if c := img.RGBAAt(10, 10); !isWhite(c) {
		t.Errorf("pixel = %v, want white", c)
	}
}

func TestRasterizeZeroOpacity(t *testing.T) {
	body := Fragment{Rect{Width: 50, Height: 50, Style: "fill:#000; fill-opacity: 0"}}
	img := Rasterize(body, 50, 50, 1)
	if c := img.RGBAAt(10, 10); !isWhite(c) {
		t.Errorf("pixel = %v, want white", c)
	}
}

func TestRasterizeChart(t *testing.T) {
	r := NewRenderer(DefaultTheme(), zerolog.Nop())
	body, err := r.Render(context.Background(), natalChart())
	if err != nil {
		t.Fatal(err)
	}
	img := Rasterize(Translate(40, 40, body), 560, 560, 1)

	painted := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 4 {
		for x := b.Min.X; x < b.Max.X; x += 4 {
			if !isWhite(img.At(x, y)) {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("chart left the image blank")
	}
}

func TestParseStyle(t *testing.T) {
	st := parseStyle("fill: #fff; fill-opacity:.2; stroke: #ff0000; stroke-width: 36px; ")
	c, a, ok := st.fill()
	if !ok || c != (Color{0xff, 0xff, 0xff}) || a != 0.2 {
		t.Errorf("fill = %v %v %v", c, a, ok)
	}
	if w := st.width(); w != 36 {
		t.Errorf("width = %v", w)
	}
	if _, _, ok := parseStyle("fill: none").fill(); ok {
		t.Error("fill none should not paint")
	}
}

func TestParseTranslate(t *testing.T) {
	d, ok := parseTranslate("translate(-30, 79)")
	if !ok || d != (Point{-30, 79}) {
		t.Errorf("parseTranslate = %v %v", d, ok)
	}
	if _, ok := parseTranslate("scale(0.4)"); ok {
		t.Error("scale parsed as translate")
	}
}

func TestRasterizeClipsShapesAtEdges(t *testing.T) {
	body := Fragment{
		Circle{CX: 0, CY: 0, R: 20, Style: "fill: #ff0000;"},
		Rect{X: 90, Y: 70, Width: 30, Height: 30, Style: "fill:#0000ff"},
	}
	img := Rasterize(body, 100, 80, 1)
	if c := img.RGBAAt(2, 2); c.R < 200 || c.G > 50 {
		t.Errorf("corner of clipped circle = %v, want red", c)
	}
	if c := img.RGBAAt(98, 78); c.B < 200 || c.R > 50 {
		t.Errorf("corner of clipped rect = %v, want blue", c)
	}
	if c := img.RGBAAt(50, 40); !isWhite(c) {
		t.Errorf("center pixel = %v, want white", c)
	}
}

func TestRasterizeReusesRasterizer(t *testing.T) {
	// A large shape followed by a small one must not repaint the first
	// shape's coverage or leave it outside the second's box.
	body := Fragment{
		Rect{X: 0, Y: 0, Width: 60, Height: 60, Style: "fill:#ff0000"},
		Line{X1: 80, Y1: 10, X2: 80, Y2: 50, Style: "stroke: #0000ff; stroke-width: 2"},
		Rect{X: 10, Y: 10, Width: 5, Height: 5, Style: "fill:#00ff00"},
	}
	img := Rasterize(body, 100, 60, 1)
	if c := img.RGBAAt(40, 40); c.R < 200 || c.G > 50 || c.B > 50 {
		t.Errorf("big rect pixel = %v, want red", c)
	}
	if c := img.RGBAAt(80, 30); c.B < 200 || c.R > 50 {
		t.Errorf("line pixel = %v, want blue", c)
	}
	if c := img.RGBAAt(12, 12); c.G < 200 || c.R > 50 {
		t.Errorf("small rect pixel = %v, want green", c)
	}
	if c := img.RGBAAt(90, 30); !isWhite(c) {
		t.Errorf("pixel right of the line = %v, want white", c)
	}
}

func TestRasterizeText(t *testing.T) {
	body := Fragment{Label{At: Point{X: 10, Y: 20}, Style: "fill: #000000", Content: "MMMM"}}
	img := Rasterize(body, 60, 30, 1)
	painted := 0
	for y := 8; y < 24; y++ {
		for x := 10; x < 40; x++ {
			if !isWhite(img.At(x, y)) {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("label left no ink")
	}
}

func TestPainterBounds(t *testing.T) {
	p := &painter{scale: 2}
	got := p.bounds([][]Point{{{X: 1.2, Y: 3}, {X: 4, Y: -1.5}}, nil})
	want := image.Rect(2, -3, 9, 7)
	if got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
	if got := p.bounds(nil); !got.Empty() {
		t.Errorf("bounds of nothing = %v, want empty", got)
	}
}

func BenchmarkRasterizeChart(b *testing.B) {
	r := NewRenderer(DefaultTheme(), zerolog.Nop())
	body, err := r.Render(context.Background(), natalChart())
	if err != nil {
		b.Fatal(err)
	}
	body = Translate(40, 40, body)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Rasterize(body, 1280, 1120, 2)
	}
}
