package chartwheel

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
)

// ElementPoints are the weighted totals of the four elements.
type ElementPoints struct {
	Fire  float64 `json:"fire"`
	Earth float64 `json:"earth"`
	Air   float64 `json:"air"`
	Water float64 `json:"water"`
}

// ElementLabels are the display names of the four elements.
type ElementLabels struct {
	Fire  string `mapstructure:"fire" json:"fire"`
	Earth string `mapstructure:"earth" json:"earth"`
	Air   string `mapstructure:"air" json:"air"`
	Water string `mapstructure:"water" json:"water"`
}

// Percentages returns fire, earth, air and water as whole percentages of
// their sum. Each is rounded on its own, so the four need not add up to
// 100. A zero sum gives zero for all four.
func (p ElementPoints) Percentages() [4]int {
	values := []float64{p.Fire, p.Earth, p.Air, p.Water}
	var out [4]int
	total := floats.Sum(values)
	if total == 0 {
		return out
	}
	floats.Scale(100, values)
	for i, v := range values {
		out[i] = int(math.RoundToEven(v / total))
	}
	return out
}

// DrawElementPercentages writes the element summary with English numerals.
func DrawElementPercentages(labels ElementLabels, points ElementPoints) Fragment {
	return DrawElementPercentagesIn(language.English, labels, points)
}

// DrawElementPercentagesIn writes the element summary with numerals of the
// given language.
func DrawElementPercentagesIn(lang language.Tag, labels ElementLabels, points ElementPoints) Fragment {
	p := message.NewPrinter(lang)
	pct := points.Percentages()
	lines := Fragment{
		Text{Y: 0, Style: "fill:#ff6600; font-size: 10px;", Content: p.Sprintf("%s  %d%%", labels.Fire, pct[0])},
		Text{Y: 12, Style: "fill:#6a2d04; font-size: 10px;", Content: p.Sprintf("%s %d%%", labels.Earth, pct[1])},
		Text{Y: 24, Style: "fill:#6f76d1; font-size: 10px;", Content: p.Sprintf("%s   %d%%", labels.Air, pct[2])},
		Text{Y: 36, Style: "fill:#630e73; font-size: 10px;", Content: p.Sprintf("%s %d%%", labels.Water, pct[3])},
	}
	return Fragment{Group{Attrs: []Attr{{Name: "transform", Value: "translate(-30,79)"}}, Children: lines}}
}
