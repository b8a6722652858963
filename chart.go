package chartwheel

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// Chart is one render request. Houses and OverlayHouses must each hold
// twelve cusps; OverlayHouses is only read for Synastry and Transit.
type Chart struct {
	Type          ChartType      `json:"type"`
	Radii         *Radii         `json:"radii,omitempty"`
	Houses        []float64      `json:"houses"`
	OverlayHouses []float64      `json:"overlay_houses,omitempty"`
	Planets       []Planet       `json:"planets,omitempty"`
	Aspects       []Aspect       `json:"aspects,omitempty"`
	Elements      *ElementPoints `json:"elements,omitempty"`
	Language      string         `json:"language,omitempty"`
}

// Renderer composes full charts with a fixed theme. It is safe for
// concurrent use.
type Renderer struct {
	theme Theme
	log   zerolog.Logger
}

// NewRenderer creates a renderer for theme.
func NewRenderer(theme Theme, log zerolog.Logger) *Renderer {
	return &Renderer{
		theme: theme,
		log:   log.With().Str("component", "renderer").Logger(),
	}
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

type layer struct {
	name string
	draw func() (Fragment, error)
}

// Render draws every ring of c. Layers are computed concurrently and
// joined in paint order, outermost first.
func (r *Renderer) Render(ctx context.Context, c Chart) (Fragment, error) {
	start := time.Now()
	layers, err := r.layers(c)
	if err != nil {
		return nil, err
	}

	results := make([]Fragment, len(layers))
	g, gctx := errgroup.WithContext(ctx)
	for i, l := range layers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := l.draw()
			if err != nil {
				return fmt.Errorf("%s: %w", l.name, err)
			}
			results[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := Concat(results...)
	r.log.Debug().
		Stringer("type", c.Type).
		Int("layers", len(layers)).
		Int("elements", len(out)).
		Dur("took", time.Since(start)).
		Msg("chart rendered")
	return out, nil
}

func (r *Renderer) layers(c Chart) ([]layer, error) {
	cusps, err := NewHouseCusps(c.Houses)
	if err != nil {
		return nil, err
	}
	var overlay *HouseCusps
	if c.Type.HasOverlay() {
		if len(c.OverlayHouses) == 0 {
			return nil, fmt.Errorf("%w: overlay houses are required for %s charts", ErrMissingParameter, c.Type)
		}
		o, err := NewHouseCusps(c.OverlayHouses)
		if err != nil {
			return nil, err
		}
		overlay = &o
	}
	lang := language.English
	if c.Language != "" {
		lang, err = language.Parse(c.Language)
		if err != nil {
			return nil, fmt.Errorf("%w: language %q: %v", ErrInvalidInput, c.Language, err)
		}
	}

	radii := DefaultRadii(c.Type)
	if c.Radii != nil {
		radii = *c.Radii
	}
	frame := NewFrame(c.Type, cusps)
	t := r.theme
	rad := radii.R

	zodiac := layer{"zodiac", func() (Fragment, error) { return DrawZodiac(frame, radii, t) }}
	circles := layer{"circles", func() (Fragment, error) {
		first, err := DrawFirstCircle(frame, rad, t.RadixRing[0], radii.C1)
		if err != nil {
			return nil, err
		}
		second, err := DrawSecondCircle(frame, rad, t.RadixRing[1], t.Paper1, radii.C2)
		if err != nil {
			return nil, err
		}
		third, err := DrawThirdCircle(frame, rad, t.RadixRing[2], t.Paper1, radii.C3)
		if err != nil {
			return nil, err
		}
		return Concat(first, second, third), nil
	}}
	houses := layer{"houses", func() (Fragment, error) { return DrawHouses(frame, radii, cusps, overlay, t.Houses) }}
	aspects := layer{"aspects", func() (Fragment, error) { return DrawAspectLines(frame, radii, c.Aspects, t.Aspects) }}

	var out []layer
	if c.Type.HasOverlay() {
		out = append(out,
			layer{"transit ring", func() (Fragment, error) { return DrawTransitRing(rad, t.Paper1, t.TransitRing), nil }},
			layer{"transit degree steps", func() (Fragment, error) { return DrawTransitDegreeSteps(frame, rad), nil }},
			zodiac, circles, houses, aspects,
		)
	} else {
		out = append(out,
			zodiac, circles,
			layer{"degree ring", func() (Fragment, error) {
				if radii.C1 == nil {
					return nil, fmt.Errorf("%w: c1 is required for %s charts", ErrMissingParameter, c.Type)
				}
				return DrawDegreeRing(frame, rad, *radii.C1, t.DegreeRing), nil
			}},
			houses, aspects,
			layer{"aspect grid", func() (Fragment, error) { return DrawAspectGrid(t.GridStroke, c.Planets, c.Aspects), nil }},
		)
	}
	if c.Elements != nil {
		points := *c.Elements
		out = append(out, layer{"elements", func() (Fragment, error) {
			return DrawElementPercentagesIn(lang, t.ElementLabels, points), nil
		}})
	}
	return out, nil
}
