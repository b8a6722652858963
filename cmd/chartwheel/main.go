// Command chartwheel renders astrological chart wheels as SVG or PNG, from
// the command line or over HTTP.
//
// Usage:
//
//	chartwheel render -i chart.json -o chart.svg --png chart.png
//	chartwheel serve --port 8080
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/satindergrewal/chartwheel"
	"github.com/satindergrewal/chartwheel/internal/config"
	"github.com/satindergrewal/chartwheel/internal/logging"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	cfg *config.Config
	log zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "chartwheel",
	Short:         "Render astrological chart wheels",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		log = logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/chartwheel.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chartwheel %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// newRenderer builds a renderer from the loaded theme.
func newRenderer() (*chartwheel.Renderer, error) {
	theme, err := cfg.Theme.Theme()
	if err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	return chartwheel.NewRenderer(theme, log), nil
}

// loadDefs reads the glyph definitions file, if one is configured.
func loadDefs() (string, error) {
	if cfg.Chart.Defs == "" {
		return "", nil
	}
	b, err := os.ReadFile(cfg.Chart.Defs)
	if err != nil {
		return "", fmt.Errorf("reading defs: %w", err)
	}
	return string(b), nil
}
