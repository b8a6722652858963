// Package config loads chartwheel settings from YAML files, .env files and
// CHARTWHEEL_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/satindergrewal/chartwheel"
)

// Config represents the complete application configuration.
type Config struct {
	Chart   ChartConfig   `mapstructure:"chart"   yaml:"chart"`
	Theme   ThemeConfig   `mapstructure:"theme"   yaml:"theme"`
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ChartConfig holds rendering defaults applied when a request leaves them out.
type ChartConfig struct {
	Width    int     `mapstructure:"width"    yaml:"width"`
	Height   int     `mapstructure:"height"   yaml:"height"`
	Margin   float64 `mapstructure:"margin"   yaml:"margin"`
	Scale    float64 `mapstructure:"scale"    yaml:"scale"` // PNG pixels per document unit
	Language string  `mapstructure:"language" yaml:"language"`
	Defs     string  `mapstructure:"defs"     yaml:"defs"` // file with glyph <symbol> definitions
}

// ThemeConfig holds chart colors. Aspect colors are keyed by angle.
type ThemeConfig struct {
	Paper0            string                   `mapstructure:"paper_0"            yaml:"paper_0"`
	Paper1            string                   `mapstructure:"paper_1"            yaml:"paper_1"`
	ZodiacBackgrounds []string                 `mapstructure:"zodiac_backgrounds" yaml:"zodiac_backgrounds"`
	RadixRing         []string                 `mapstructure:"radix_ring"         yaml:"radix_ring"`
	TransitRing       string                   `mapstructure:"transit_ring"       yaml:"transit_ring"`
	DegreeRing        string                   `mapstructure:"degree_ring"        yaml:"degree_ring"`
	GridStroke        string                   `mapstructure:"grid_stroke"        yaml:"grid_stroke"`
	Houses            chartwheel.HouseColors   `mapstructure:"houses"             yaml:"houses"`
	Aspects           map[string]string        `mapstructure:"aspects"            yaml:"aspects"`
	ElementLabels     chartwheel.ElementLabels `mapstructure:"element_labels"     yaml:"element_labels"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string   `mapstructure:"host"           yaml:"host"`
	Port         int      `mapstructure:"port"           yaml:"port"`
	CORSOrigins  []string `mapstructure:"cors_origins"   yaml:"cors_origins"`
	MaxBodyBytes int64    `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	SelfSigned   bool     `mapstructure:"self_signed"    yaml:"self_signed"` // serve HTTPS with a throwaway certificate
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "console" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/chartwheel.yaml
//  2. ~/.chartwheel/chartwheel.yaml
//  3. /etc/chartwheel/chartwheel.yaml
//
// A .env file in the working directory is loaded first. Environment
// variables override file values: CHARTWHEEL_<SECTION>_<KEY>, e.g.
// CHARTWHEEL_SERVER_PORT.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional

	v := newViper()
	v.SetConfigName("chartwheel")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".chartwheel"))
	v.AddConfigPath("/etc/chartwheel")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return unmarshal(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("CHARTWHEEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults mirrors chartwheel.DefaultTheme so a missing file still
// renders the stock chart.
func setDefaults(v *viper.Viper) {
	theme := chartwheel.DefaultTheme()

	v.SetDefault("chart.width", 640)
	v.SetDefault("chart.height", 560)
	v.SetDefault("chart.margin", 40.0)
	v.SetDefault("chart.scale", 2.0)
	v.SetDefault("chart.language", "en")
	v.SetDefault("chart.defs", "")

	v.SetDefault("theme.paper_0", theme.Paper0)
	v.SetDefault("theme.paper_1", theme.Paper1)
	v.SetDefault("theme.zodiac_backgrounds", theme.ZodiacBackgrounds)
	v.SetDefault("theme.radix_ring", theme.RadixRing[:])
	v.SetDefault("theme.transit_ring", theme.TransitRing)
	v.SetDefault("theme.degree_ring", theme.DegreeRing)
	v.SetDefault("theme.grid_stroke", theme.GridStroke)
	v.SetDefault("theme.houses.standard", theme.Houses.Standard)
	v.SetDefault("theme.houses.first", theme.Houses.First)
	v.SetDefault("theme.houses.fourth", theme.Houses.Fourth)
	v.SetDefault("theme.houses.seventh", theme.Houses.Seventh)
	v.SetDefault("theme.houses.tenth", theme.Houses.Tenth)
	aspects := make(map[string]string, len(theme.Aspects))
	for deg, color := range theme.Aspects {
		aspects[strconv.Itoa(deg)] = color
	}
	v.SetDefault("theme.aspects", aspects)
	v.SetDefault("theme.element_labels.fire", theme.ElementLabels.Fire)
	v.SetDefault("theme.element_labels.earth", theme.ElementLabels.Earth)
	v.SetDefault("theme.element_labels.air", theme.ElementLabels.Air)
	v.SetDefault("theme.element_labels.water", theme.ElementLabels.Water)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.self_signed", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Theme converts the configured colors into a chartwheel.Theme. Colors
// are normalized to lowercase #rrggbb, so names and short hex forms from
// the config file render the same as the defaults.
func (t ThemeConfig) Theme() (chartwheel.Theme, error) {
	var n colorNormalizer
	out := chartwheel.Theme{
		Paper0:      n.hex("paper_0", t.Paper0),
		Paper1:      n.hex("paper_1", t.Paper1),
		TransitRing: n.hex("transit_ring", t.TransitRing),
		DegreeRing:  n.hex("degree_ring", t.DegreeRing),
		GridStroke:  n.hex("grid_stroke", t.GridStroke),
		Houses: chartwheel.HouseColors{
			Standard: n.hex("houses.standard", t.Houses.Standard),
			First:    n.hex("houses.first", t.Houses.First),
			Fourth:   n.hex("houses.fourth", t.Houses.Fourth),
			Seventh:  n.hex("houses.seventh", t.Houses.Seventh),
			Tenth:    n.hex("houses.tenth", t.Houses.Tenth),
		},
		Aspects:       make(chartwheel.AspectColors, len(t.Aspects)),
		ElementLabels: t.ElementLabels,
	}
	if len(t.ZodiacBackgrounds) > 0 {
		out.ZodiacBackgrounds = make([]string, len(t.ZodiacBackgrounds))
		for i, c := range t.ZodiacBackgrounds {
			out.ZodiacBackgrounds[i] = n.hex(fmt.Sprintf("zodiac_backgrounds[%d]", i), c)
		}
	}
	if len(t.RadixRing) != len(out.RadixRing) {
		return out, fmt.Errorf("theme.radix_ring: got %d colors, want %d", len(t.RadixRing), len(out.RadixRing))
	}
	for i, c := range t.RadixRing {
		out.RadixRing[i] = n.hex(fmt.Sprintf("radix_ring[%d]", i), c)
	}
	for key, color := range t.Aspects {
		deg, err := strconv.Atoi(key)
		if err != nil {
			return out, fmt.Errorf("theme.aspects: key %q is not an angle: %w", key, err)
		}
		out.Aspects[deg] = n.hex("aspects."+key, color)
	}
	return out, n.err
}

// colorNormalizer rewrites colors as #rrggbb and remembers the first one
// it cannot read. Empty values and "none" pass through.
type colorNormalizer struct {
	err error
}

func (n *colorNormalizer) hex(key, s string) string {
	if n.err != nil || s == "" || s == "none" {
		return s
	}
	c, ok := chartwheel.ParseColor(s)
	if !ok {
		n.err = fmt.Errorf("theme.%s: %q is not a color: %w", key, s, chartwheel.ErrInvalidInput)
		return s
	}
	return c.Hex()
}

// Addr returns the listen address of the server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
