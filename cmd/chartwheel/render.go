package main

import (
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/satindergrewal/chartwheel"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a chart description to SVG (and optionally PNG)",
	Long: `Render reads a chart as JSON and writes an SVG document.

Examples:
  chartwheel render -i natal.json -o natal.svg
  chartwheel render -i transit.json --png transit.png --scale 3
  cat natal.json | chartwheel render > natal.svg`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("input", "i", "-", "chart JSON file (- for stdin)")
	renderCmd.Flags().StringP("output", "o", "-", "SVG output file (- for stdout)")
	renderCmd.Flags().String("png", "", "also write a PNG preview to this path")
	renderCmd.Flags().Float64("scale", 0, "PNG pixels per document unit (default from config)")
	renderCmd.Flags().String("lang", "", "language of the element labels (default from config)")
}

func runRender(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	pngPath, _ := cmd.Flags().GetString("png")
	scale, _ := cmd.Flags().GetFloat64("scale")
	lang, _ := cmd.Flags().GetString("lang")
	if scale <= 0 {
		scale = cfg.Chart.Scale
	}

	chart, err := readChart(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}
	if lang != "" {
		chart.Language = lang
	} else if chart.Language == "" {
		chart.Language = cfg.Chart.Language
	}

	r, err := newRenderer()
	if err != nil {
		return err
	}
	defs, err := loadDefs()
	if err != nil {
		return err
	}

	body, err := r.Render(cmd.Context(), chart)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	body = chartwheel.Translate(cfg.Chart.Margin, cfg.Chart.Margin, body)

	if err := writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
		return chartwheel.WriteDocument(w, cfg.Chart.Width, cfg.Chart.Height, defs, body)
	}); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}

	if pngPath != "" {
		img := chartwheel.Rasterize(body,
			int(float64(cfg.Chart.Width)*scale),
			int(float64(cfg.Chart.Height)*scale),
			scale)
		if err := writeOutput(cmd.OutOrStdout(), pngPath, func(w io.Writer) error {
			return png.Encode(w, img)
		}); err != nil {
			return fmt.Errorf("writing png: %w", err)
		}
	}

	log.Info().
		Stringer("type", chart.Type).
		Str("svg", output).
		Str("png", pngPath).
		Int("elements", len(body)).
		Msg("chart written")
	return nil
}

func readChart(stdin io.Reader, path string) (chartwheel.Chart, error) {
	var chart chartwheel.Chart
	in := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return chart, fmt.Errorf("opening chart: %w", err)
		}
		defer f.Close()
		in = f
	}
	if err := json.NewDecoder(in).Decode(&chart); err != nil {
		return chart, fmt.Errorf("decoding chart: %w", err)
	}
	return chart, nil
}

func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
