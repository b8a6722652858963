package chartwheel

import (
	"errors"
	"testing"
)

func TestBandResolve(t *testing.T) {
	r := Radii{R: 240, C1: Float(10), C3: Float(120)}
	tests := []struct {
		name string
		b    band
		want float64
	}{
		{"fixed", fixedBand(160), 160},
		{"c1", band{source: fromC1}, 10},
		{"c1 plus extra", band{source: fromC1, value: 18}, 28},
		{"c3", band{source: fromC3}, 120},
	}
	for _, tt := range tests {
		got, err := tt.b.resolve(Natal, r)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: resolve = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := (band{source: fromC2}).resolve(Natal, r); !errors.Is(err, ErrMissingParameter) {
		t.Errorf("missing c2: err = %v, want ErrMissingParameter", err)
	}
	if got, err := fixedBand(84).resolve(Transit, Radii{R: 240}); err != nil || got != 84 {
		t.Errorf("fixed band without insets = %v, %v", got, err)
	}
}

func TestProfileHouseLabels(t *testing.T) {
	tests := map[ChartType]float64{
		Natal:         48,
		ExternalNatal: 100,
		Synastry:      84,
		Transit:       84,
	}
	for ct, want := range tests {
		got, err := profiles[ct].houseLabel.resolve(ct, Radii{R: 240})
		if err != nil || got != want {
			t.Errorf("%s house label inset = %v, %v, want %v", ct, got, err, want)
		}
	}
}
