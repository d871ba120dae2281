// Package config loads the timeline's YAML construction configuration.
// Missing files and missing values fall back to documented defaults;
// loading never fails for an absent option.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level construction configuration.
type Config struct {
	// Background is the page fill color as "#rrggbb". Default white.
	Background string `yaml:"background"`
	// StartDate is the anchor date as "2006-01-02". Empty means today.
	StartDate string `yaml:"start_date"`

	// ZoomMin and ZoomMax bound the camera zoom.
	ZoomMin float64 `yaml:"zoom_min"`
	ZoomMax float64 `yaml:"zoom_max"`

	// UnitsPerDay is the world-space width of one calendar day.
	UnitsPerDay float64 `yaml:"units_per_day"`

	// DayThreshold and WeekThreshold are the scale cut-points in effective
	// pixels per day.
	DayThreshold  float64 `yaml:"day_threshold"`
	WeekThreshold float64 `yaml:"week_threshold"`

	// Width and Height are the initial surface size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Touch enables the gesture translator at startup.
	Touch bool `yaml:"touch"`

	// LogLevel is one of debug, info, warn, error. Default info.
	LogLevel string `yaml:"log_level"`
}

// Default returns the in-memory default configuration.
func Default() *Config {
	return &Config{
		Background:  "#ffffff",
		ZoomMin:     0.1,
		ZoomMax:     5.0,
		UnitsPerDay: 30,
		Width:       1024,
		Height:      640,
		Touch:       true,
		LogLevel:    "info",
	}
}

// Normalize fills missing or out-of-range values with defaults so partial
// configs still behave.
func (c *Config) Normalize() {
	d := Default()
	if c.Background == "" {
		c.Background = d.Background
	}
	if c.ZoomMin <= 0 {
		c.ZoomMin = d.ZoomMin
	}
	if c.ZoomMax <= c.ZoomMin {
		c.ZoomMax = d.ZoomMax
	}
	if c.UnitsPerDay <= 0 {
		c.UnitsPerDay = d.UnitsPerDay
	}
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = d.LogLevel
	}
}

// Load reads a YAML config. A missing file yields the defaults; a present
// but malformed file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Start parses the configured start date. Empty means now.
func (c *Config) Start() (time.Time, error) {
	if c.StartDate == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", c.StartDate, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("start_date %q: %w", c.StartDate, err)
	}
	return t, nil
}

// ParseColor parses "#rrggbb" (or "rrggbb") into an opaque RGBA color.
func ParseColor(s string) (color.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(s[i*2])
		lo, ok2 := hexNibble(s[i*2+1])
		if !ok1 || !ok2 {
			return color.RGBA{}, fmt.Errorf("color %q: bad hex digit", s)
		}
		rgb[i] = hi<<4 | lo
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF}, nil
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
