// Package config defines the node's configuration surface and loads it from
// YAML files and environment variables.
//
// Configuration holds values only: the cascade file, the render policy, the
// border color, detector tuning and the checkerboard fallback size. Behavior
// lives in the packages that consume it.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/region-overlay-mcp/internal/detect"
	"github.com/ironsheep/region-overlay-mcp/internal/render"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvCascade  = "REGION_OVERLAY_CASCADE"
	EnvPolicy   = "REGION_OVERLAY_POLICY"
	EnvLogLevel = "REGION_OVERLAY_LOG_LEVEL"
)

// Detection tunes the classifier pass.
type Detection struct {
	ScaleFactor  float64 `yaml:"scale_factor" json:"scale_factor"`
	MinNeighbors int     `yaml:"min_neighbors" json:"min_neighbors"`
	MinSize      int     `yaml:"min_size" json:"min_size"`
	MinQuality   float64 `yaml:"min_quality" json:"min_quality"`
}

// Block is the checkerboard cell size in pixels.
type Block struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Config is the complete set of node settings.
type Config struct {
	// CascadeFile is the classifier path. Empty disables detection and puts the
	// node in passthrough mode.
	CascadeFile string `yaml:"cascade_file" json:"cascade_file"`

	// Detector names the adapter: "pigo" or "opencv".
	Detector string `yaml:"detector" json:"detector"`

	// Policy names the render policy: "attenuate", "edge", "mask" or "circle".
	Policy string `yaml:"policy" json:"policy"`

	// BorderColor is the EdgeHighlight and Circle color, as "#RRGGBB" or "r,g,b" floats.
	BorderColor string `yaml:"border_color" json:"border_color"`

	// Downscale divides the detector's working resolution. 1 disables it.
	Downscale float64 `yaml:"downscale" json:"downscale"`

	Detection    Detection `yaml:"detection" json:"detection"`
	Checkerboard Block     `yaml:"checkerboard" json:"checkerboard"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	p := detect.DefaultParams()
	return Config{
		Detector:    "pigo",
		Policy:      render.EdgeHighlight.String(),
		BorderColor: "#CCCCCC",
		Downscale:   p.Downscale,
		Detection: Detection{
			ScaleFactor:  p.ScaleFactor,
			MinNeighbors: p.MinNeighbors,
			MinSize:      p.MinSize,
			MinQuality:   float64(p.MinQuality),
		},
		Checkerboard: Block{Width: 32, Height: 32},
		LogLevel:     "info",
	}
}

// Load reads a YAML file over Default. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables returned by getenv.
// Empty variables are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvCascade); v != "" {
		c.CascadeFile = v
	}
	if v := getenv(EnvPolicy); v != "" {
		c.Policy = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	if _, err := render.ParsePolicy(c.Policy); err != nil {
		errs = append(errs, err)
	}
	switch c.Detector {
	case "pigo", "opencv":
	default:
		errs = append(errs, fmt.Errorf("unknown detector: %q", c.Detector))
	}
	if _, err := ParseColor(c.BorderColor); err != nil {
		errs = append(errs, fmt.Errorf("border_color: %w", err))
	}
	if c.Downscale < 1 {
		errs = append(errs, fmt.Errorf("downscale must be >= 1, got %g", c.Downscale))
	}
	if c.Detection.ScaleFactor <= 1 {
		errs = append(errs, fmt.Errorf("detection.scale_factor must be > 1, got %g", c.Detection.ScaleFactor))
	}
	if c.Detection.MinSize < 1 {
		errs = append(errs, fmt.Errorf("detection.min_size must be >= 1, got %d", c.Detection.MinSize))
	}
	if c.Detection.MinNeighbors < 0 {
		errs = append(errs, fmt.Errorf("detection.min_neighbors must be >= 0, got %d", c.Detection.MinNeighbors))
	}
	if c.Checkerboard.Width < 1 || c.Checkerboard.Height < 1 {
		errs = append(errs, fmt.Errorf("checkerboard size must be positive, got %dx%d",
			c.Checkerboard.Width, c.Checkerboard.Height))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// RenderPolicy returns the parsed render policy.
func (c Config) RenderPolicy() (render.Policy, error) {
	return render.ParsePolicy(c.Policy)
}

// Border returns the parsed border color.
func (c Config) Border() ([3]float32, error) {
	return ParseColor(c.BorderColor)
}

// Params converts the detection settings to detector parameters.
func (c Config) Params() detect.Params {
	return detect.Params{
		ScaleFactor:  c.Detection.ScaleFactor,
		MinNeighbors: c.Detection.MinNeighbors,
		MinSize:      c.Detection.MinSize,
		MinQuality:   float32(c.Detection.MinQuality),
		Downscale:    c.Downscale,
	}
}

// SlogLevel returns the configured log level, or slog.LevelInfo if it is invalid.
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// splitFloats parses "a,b,c" into three floats.
func splitFloats(s string) ([3]float64, error) {
	var out [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("expected 3 components, got %d", len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}
