// Package config holds viewer and renderer settings. Settings come from built-in defaults, an
// optional YAML file, then FRAMETIMELINE_* environment variables (a .env file is honoured), and
// finally command-line flags set by each executable.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/iafilius/FrameTimeline/src/graph"
	"github.com/iafilius/FrameTimeline/src/viewport"
)

// ErrInvalid wraps every validation and parse failure.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FRAMETIMELINE_"

type Zoom struct {
	Min             float64 `yaml:"min"`
	Max             float64 `yaml:"max"`
	Step            float64 `yaml:"step"`
	RequireModifier bool    `yaml:"require_modifier"`
}

type Arrows struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // "curve" or "elbow"
}

type Padding struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

type Graph struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Padding         Padding `yaml:"padding"`
	SmoothingWindow int     `yaml:"smoothing_window"`
}

type Config struct {
	ItemWidth   float64 `yaml:"item_width"`
	StripHeight float64 `yaml:"strip_height"`
	Overscan    int     `yaml:"overscan"`
	Zoom        Zoom    `yaml:"zoom"`
	Arrows      Arrows  `yaml:"arrows"`
	Graph       Graph   `yaml:"graph"`
	LogLevel    string  `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ItemWidth:   48,
		StripHeight: 72,
		Overscan:    5,
		Zoom:        Zoom{Min: 0.25, Max: 4, Step: 0.25, RequireModifier: true},
		Arrows:      Arrows{Enabled: true, Style: "curve"},
		Graph: Graph{
			Width:           800,
			Height:          200,
			Padding:         Padding{Top: 10, Right: 10, Bottom: 24, Left: 48},
			SmoothingWindow: 15,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults; keys missing from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %v: %w", path, err, ErrInvalid)
	}
	return cfg, nil
}

// ApplyEnv loads the given .env files (default ".env"; a missing file is not an error) and applies
// FRAMETIMELINE_* overrides. It returns the names of the variables it applied.
func (c *Config) ApplyEnv(envFiles ...string) ([]string, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var applied []string
	var errs []error
	lookup := func(name string) (string, bool) {
		v, ok := os.LookupEnv(EnvPrefix + name)
		v = strings.TrimSpace(v)
		if ok && v != "" {
			applied = append(applied, EnvPrefix+name)
			return v, true
		}
		return "", false
	}
	float := func(name string, dst *float64) {
		if v, ok := lookup(name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s=%q: %w", EnvPrefix, name, v, ErrInvalid))
				return
			}
			*dst = f
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := lookup(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s=%q: %w", EnvPrefix, name, v, ErrInvalid))
				return
			}
			*dst = n
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s=%q: %w", EnvPrefix, name, v, ErrInvalid))
				return
			}
			*dst = b
		}
	}
	float("ITEM_WIDTH", &c.ItemWidth)
	float("STRIP_HEIGHT", &c.StripHeight)
	integer("OVERSCAN", &c.Overscan)
	float("ZOOM_MIN", &c.Zoom.Min)
	float("ZOOM_MAX", &c.Zoom.Max)
	float("ZOOM_STEP", &c.Zoom.Step)
	boolean("ZOOM_REQUIRE_MODIFIER", &c.Zoom.RequireModifier)
	boolean("ARROWS", &c.Arrows.Enabled)
	if v, ok := lookup("ARROW_STYLE"); ok {
		c.Arrows.Style = v
	}
	float("GRAPH_WIDTH", &c.Graph.Width)
	float("GRAPH_HEIGHT", &c.Graph.Height)
	integer("SMOOTHING_WINDOW", &c.Graph.SmoothingWindow)
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	return applied, errors.Join(errs...)
}

// Validate checks ranges. All problems are reported together.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, a ...interface{}) {
		errs = append(errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), ErrInvalid))
	}
	if c.ItemWidth <= 0 {
		bad("item_width must be > 0, got %v", c.ItemWidth)
	}
	if c.StripHeight <= 0 {
		bad("strip_height must be > 0, got %v", c.StripHeight)
	}
	if c.Overscan < 0 {
		bad("overscan must be >= 0, got %d", c.Overscan)
	}
	if c.Zoom.Min <= 0 || c.Zoom.Max < c.Zoom.Min {
		bad("zoom range [%v, %v] is empty", c.Zoom.Min, c.Zoom.Max)
	}
	if c.Zoom.Step <= 0 {
		bad("zoom step must be > 0, got %v", c.Zoom.Step)
	}
	switch c.Arrows.Style {
	case "", "curve", "elbow", "pyramid":
	default:
		bad("unknown arrow style %q", c.Arrows.Style)
	}
	if c.Graph.Width <= c.Graph.Padding.Left+c.Graph.Padding.Right {
		bad("graph width %v leaves no plot area", c.Graph.Width)
	}
	if c.Graph.Height <= c.Graph.Padding.Top+c.Graph.Padding.Bottom {
		bad("graph height %v leaves no plot area", c.Graph.Height)
	}
	if c.Graph.SmoothingWindow < 0 {
		bad("smoothing_window must be >= 0, got %d", c.Graph.SmoothingWindow)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		bad("unknown log level %q", c.LogLevel)
	}
	return errors.Join(errs...)
}

// ZoomConfig converts the zoom settings for viewport.PanZoom.
func (c Config) ZoomConfig() viewport.ZoomConfig {
	return viewport.ZoomConfig{Min: c.Zoom.Min, Max: c.Zoom.Max, Step: c.Zoom.Step, RequireModifier: c.Zoom.RequireModifier}
}

// ScaleConfig converts the graph settings for graph.CalculateScales.
func (c Config) ScaleConfig() graph.ScaleConfig {
	p := c.Graph.Padding
	return graph.ScaleConfig{
		Width:   c.Graph.Width,
		Height:  c.Graph.Height,
		Padding: graph.Padding{Top: p.Top, Right: p.Right, Bottom: p.Bottom, Left: p.Left},
	}
}
