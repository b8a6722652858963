package chartwheel

import (
	"errors"
	"math"
	"testing"
	"time"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestSliceToPointCardinal(t *testing.T) {
	tests := []struct {
		slice, offset float64
		want          Point
	}{
		{0, 0, Point{200, 100}},   // right
		{3, 0, Point{100, 0}},     // top
		{6, 0, Point{0, 100}},     // left
		{9, 0, Point{100, 200}},   // bottom
		{0, 90, Point{100, 0}},    // offset in degrees
		{1, -30, Point{200, 100}}, // one slice cancels -30°
	}
	for _, tt := range tests {
		got := SliceToPoint(tt.slice, 100, tt.offset)
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
			t.Errorf("SliceToPoint(%v, 100, %v) = %v, want %v", tt.slice, tt.offset, got, tt.want)
		}
		if x := SliceToX(tt.slice, 100, tt.offset); x != got.X {
			t.Errorf("SliceToX disagrees with SliceToPoint: %v vs %v", x, got.X)
		}
		if y := SliceToY(tt.slice, 100, tt.offset); y != got.Y {
			t.Errorf("SliceToY disagrees with SliceToPoint: %v vs %v", y, got.Y)
		}
	}
}

func TestSliceToPointPeriodic(t *testing.T) {
	for _, r := range []float64{1, 120, 240} {
		for s := 0.0; s < 12; s += 0.5 {
			for _, off := range []float64{-190, 0, 15, 347.5} {
				p := SliceToPoint(s, r, off)
				q := SliceToPoint(s+12, r, off)
				o := SliceToPoint(s, r, off+360)
				if math.Abs(p.X-q.X) > 1e-6 || math.Abs(p.Y-q.Y) > 1e-6 {
					t.Fatalf("slice period: %v vs %v", p, q)
				}
				if math.Abs(p.X-o.X) > 1e-6 || math.Abs(p.Y-o.Y) > 1e-6 {
					t.Fatalf("offset period: %v vs %v", p, o)
				}
				if p.X < -eps || p.X > 2*r+eps || p.Y < -eps || p.Y > 2*r+eps {
					t.Fatalf("point %v outside [0, %v]", p, 2*r)
				}
				// Every projected point lies on the circle around (r, r).
				if d := math.Hypot(p.X-r, p.Y-r); math.Abs(d-r) > 1e-6 {
					t.Fatalf("distance from center = %v, want %v", d, r)
				}
			}
		}
	}
}

func TestInsetPoint(t *testing.T) {
	p := insetPoint(240, 36, 0)
	if !near(p.X, 444) || !near(p.Y, 240) {
		t.Errorf("insetPoint(240, 36, 0) = %v, want (444, 240)", p)
	}
	p = insetPoint(240, 0, 180)
	if !near(p.X, 0) || !near(p.Y, 240) {
		t.Errorf("insetPoint(240, 0, 180) = %v, want (0, 240)", p)
	}
}

func TestAngularDistance(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{350, 10, 20},
		{10, 350, 20},
		{0, 180, 180},
		{90, 90, 0},
		{30, 0, 30},
		{359.5, 0.5, 1},
	}
	for _, tt := range tests {
		if got := AngularDistance(tt.a, tt.b); !near(got, tt.want) {
			t.Errorf("AngularDistance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
	for a := 0.0; a < 360; a += 7.5 {
		for b := 0.0; b < 360; b += 11.25 {
			d := AngularDistance(a, b)
			if d != AngularDistance(b, a) {
				t.Fatalf("not symmetric for %v, %v", a, b)
			}
			if d < 0 || d > 180 {
				t.Fatalf("AngularDistance(%v, %v) = %v out of [0, 180]", a, b, d)
			}
		}
	}
}

func TestHoursFromParts(t *testing.T) {
	if got := HoursFromParts(12, 30, 0); got != 12.5 {
		t.Errorf("12:30:00 = %v, want 12.5", got)
	}
	if got := HoursFromParts(0, 0, 36); !near(got, 0.01) {
		t.Errorf("00:00:36 = %v, want 0.01", got)
	}
	if got := HoursFromParts(23, 59, 60); !near(got, 24) {
		t.Errorf("23:59:60 = %v, want 24", got)
	}
}

func TestTimezoneOffsetHours(t *testing.T) {
	d := func(v time.Duration) *time.Duration { return &v }
	tests := []struct {
		offset time.Duration
		want   float64
	}{
		{5*time.Hour + 30*time.Minute, 5.5},
		{-3 * time.Hour, -3},
		{time.Hour + 500*time.Millisecond, 1},
		{-500 * time.Millisecond, -1.0 / 3600},
		{0, 0},
	}
	for _, tt := range tests {
		got, err := TimezoneOffsetHours(d(tt.offset))
		if err != nil {
			t.Fatalf("TimezoneOffsetHours(%v) error: %v", tt.offset, err)
		}
		if !near(got, tt.want) {
			t.Errorf("TimezoneOffsetHours(%v) = %v, want %v", tt.offset, got, tt.want)
		}
	}

	if _, err := TimezoneOffsetHours(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil offset: got %v, want ErrInvalidInput", err)
	}
}
