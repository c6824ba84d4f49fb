// Package config holds the display's tunables: built-in defaults that a
// YAML file may override field by field.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/luminar-weave/internal/calendar"
	"github.com/iburimskiy/luminar-weave/internal/starfield"
)

const (
	WindowWidth  = 960
	WindowHeight = 900
	WindowTitle  = "Luminar Weave"

	SampleInterval = 10 * time.Millisecond

	// Dial grid
	DialColumns     = 3
	DialStroke      = 10
	DialSegments    = 180
	HeaderHeight    = 110
	FooterHeight    = 70
	CaptionHeight   = 18
	ColorShiftSpeed = 0.002

	// Chime
	ChimeCycle     = "minute"
	ChimeFrequency = 880
	ChimeDuration  = 400 * time.Millisecond
	ChimeVolume    = 0.3
	GlowSmoothing  = 0.6
)

// ErrInvalid marks a configuration value that cannot be used.
var ErrInvalid = errors.New("invalid config")

// Config is the complete configuration. Load starts from Default, so a file
// only needs the keys it changes.
type Config struct {
	Window    Window    `yaml:"window"`
	Sampler   Sampler   `yaml:"sampler"`
	Dials     Dials     `yaml:"dials"`
	Starfield Starfield `yaml:"starfield"`
	Chime     Chime     `yaml:"chime"`
	Metrics   Metrics   `yaml:"metrics"`
}

type Window struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
}

type Sampler struct {
	Interval time.Duration `yaml:"interval"`
}

type Dials struct {
	Columns  int     `yaml:"columns"`
	Stroke   float64 `yaml:"stroke"`
	Segments int     `yaml:"segments"`
}

type Starfield struct {
	Density       float64 `yaml:"density"`
	MaxStars      int     `yaml:"max_stars"`
	MinDistance   float64 `yaml:"min_distance"`
	MaxAttempts   int     `yaml:"max_attempts"`
	MinSpeed      float64 `yaml:"min_speed"`
	MaxSpeed      float64 `yaml:"max_speed"`
	MinRadius     float64 `yaml:"min_radius"`
	MaxRadius     float64 `yaml:"max_radius"`
	MinOpacity    float64 `yaml:"min_opacity"`
	MaxOpacity    float64 `yaml:"max_opacity"`
	ThrottleEvery int     `yaml:"throttle_every"`
	// Seed fixes the sky; zero picks a random one.
	Seed uint64 `yaml:"seed"`
}

type Chime struct {
	Enabled   bool          `yaml:"enabled"`
	Cycle     string        `yaml:"cycle"`
	Frequency float64       `yaml:"frequency"`
	Duration  time.Duration `yaml:"duration"`
	Volume    float64       `yaml:"volume"`
	// Sound is a wav, mp3 or flac file played instead of the tone.
	Sound string `yaml:"sound"`
}

type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	sp := starfield.DefaultParams()
	return Config{
		Window: Window{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
		},
		Sampler: Sampler{Interval: SampleInterval},
		Dials: Dials{
			Columns:  DialColumns,
			Stroke:   DialStroke,
			Segments: DialSegments,
		},
		Starfield: Starfield{
			Density:       sp.Density,
			MaxStars:      sp.MaxStars,
			MinDistance:   sp.MinDistance,
			MaxAttempts:   sp.MaxAttempts,
			MinSpeed:      sp.MinSpeed,
			MaxSpeed:      sp.MaxSpeed,
			MinRadius:     sp.MinRadius,
			MaxRadius:     sp.MaxRadius,
			MinOpacity:    sp.MinOpacity,
			MaxOpacity:    sp.MaxOpacity,
			ThrottleEvery: sp.ThrottleEvery,
		},
		Chime: Chime{
			Cycle:     ChimeCycle,
			Frequency: ChimeFrequency,
			Duration:  ChimeDuration,
			Volume:    ChimeVolume,
		},
		Metrics: Metrics{Addr: ":9090"},
	}
}

// Load returns Default overlaid with the YAML file at path. An empty path
// returns the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode overlays YAML data onto cfg. An empty document leaves cfg as is.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports every unusable value, each wrapped in ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0, "window.width must be positive, got %d", c.Window.Width)
	check(c.Window.Height > 0, "window.height must be positive, got %d", c.Window.Height)
	check(c.Sampler.Interval > 0, "sampler.interval must be positive, got %s", c.Sampler.Interval)
	check(c.Dials.Columns > 0, "dials.columns must be positive, got %d", c.Dials.Columns)
	check(c.Dials.Stroke > 0, "dials.stroke must be positive, got %g", c.Dials.Stroke)
	check(c.Dials.Segments >= 8, "dials.segments must be at least 8, got %d", c.Dials.Segments)

	s := c.Starfield
	check(s.Density >= 0, "starfield.density must not be negative, got %g", s.Density)
	check(s.MaxStars >= 0, "starfield.max_stars must not be negative, got %d", s.MaxStars)
	check(s.MaxAttempts > 0, "starfield.max_attempts must be positive, got %d", s.MaxAttempts)
	check(s.MinSpeed <= s.MaxSpeed, "starfield speed range is inverted")
	check(s.MinRadius > 0 && s.MinRadius <= s.MaxRadius, "starfield radius range must be positive and ordered")
	check(s.MinOpacity >= 0 && s.MaxOpacity <= 1 && s.MinOpacity <= s.MaxOpacity, "starfield opacity range must be ordered within [0, 1]")
	check(s.ThrottleEvery > 0, "starfield.throttle_every must be positive, got %d", s.ThrottleEvery)

	if _, err := calendar.ParseCycle(c.Chime.Cycle); err != nil {
		check(false, "chime.cycle: %v", err)
	}
	check(c.Chime.Frequency > 0, "chime.frequency must be positive, got %g", c.Chime.Frequency)
	check(c.Chime.Duration > 0, "chime.duration must be positive, got %s", c.Chime.Duration)
	check(c.Chime.Volume >= 0 && c.Chime.Volume <= 1, "chime.volume must be within [0, 1], got %g", c.Chime.Volume)

	check(!c.Metrics.Enabled || c.Metrics.Addr != "", "metrics.addr is required when metrics are enabled")

	return errors.Join(errs...)
}

// StarfieldParams converts the starfield section for the simulation.
func (c Config) StarfieldParams() starfield.Params {
	s := c.Starfield
	return starfield.Params{
		Density:       s.Density,
		MaxStars:      s.MaxStars,
		MinDistance:   s.MinDistance,
		MaxAttempts:   s.MaxAttempts,
		MinSpeed:      s.MinSpeed,
		MaxSpeed:      s.MaxSpeed,
		MinRadius:     s.MinRadius,
		MaxRadius:     s.MaxRadius,
		MinOpacity:    s.MinOpacity,
		MaxOpacity:    s.MaxOpacity,
		ThrottleEvery: s.ThrottleEvery,
	}
}

// ChimeCycleValue returns the parsed chime cycle. Validate guarantees it
// parses; an invalid name falls back to the minute.
func (c Config) ChimeCycleValue() calendar.Cycle {
	cy, err := calendar.ParseCycle(c.Chime.Cycle)
	if err != nil {
		return calendar.CycleMinute
	}
	return cy
}
