package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/luminar-weave/internal/calendar"
	"github.com/iburimskiy/luminar-weave/internal/starfield"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "luminar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, WindowWidth, cfg.Window.Width)
	assert.Equal(t, 10*time.Millisecond, cfg.Sampler.Interval)
	assert.Equal(t, starfield.DefaultParams(), cfg.StarfieldParams())
	assert.Equal(t, calendar.CycleMinute, cfg.ChimeCycleValue())
	assert.False(t, cfg.Chime.Enabled)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 1280
  fullscreen: true
sampler:
  interval: 25ms
starfield:
  max_stars: 120
  seed: 42
chime:
  enabled: true
  cycle: hour
  duration: 1s
  sound: /usr/share/sounds/bell.flac
metrics:
  enabled: true
  addr: 127.0.0.1:9191
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, WindowHeight, cfg.Window.Height, "unset keys keep defaults")
	assert.True(t, cfg.Window.Fullscreen)
	assert.Equal(t, 25*time.Millisecond, cfg.Sampler.Interval)
	assert.Equal(t, 120, cfg.Starfield.MaxStars)
	assert.Equal(t, uint64(42), cfg.Starfield.Seed)
	assert.Equal(t, 0.00035, cfg.Starfield.Density)
	assert.True(t, cfg.Chime.Enabled)
	assert.Equal(t, calendar.CycleHour, cfg.ChimeCycleValue())
	assert.Equal(t, time.Second, cfg.Chime.Duration)
	assert.Equal(t, 880.0, cfg.Chime.Frequency)
	assert.Equal(t, "/usr/share/sounds/bell.flac", cfg.Chime.Sound)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "127.0.0.1:9191", cfg.Metrics.Addr)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "window:\n  depth: 3\n"))
	assert.ErrorContains(t, err, "depth")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, `
window:
  width: 0
chime:
  cycle: fortnight
  volume: 2
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, "window.width")
	assert.ErrorContains(t, err, "fortnight")
	assert.ErrorContains(t, err, "chime.volume")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero interval", func(c *Config) { c.Sampler.Interval = 0 }, "sampler.interval"},
		{"no columns", func(c *Config) { c.Dials.Columns = 0 }, "dials.columns"},
		{"few segments", func(c *Config) { c.Dials.Segments = 4 }, "dials.segments"},
		{"inverted speeds", func(c *Config) { c.Starfield.MinSpeed = 1 }, "speed range"},
		{"opacity above one", func(c *Config) { c.Starfield.MaxOpacity = 1.5 }, "opacity range"},
		{"no throttle", func(c *Config) { c.Starfield.ThrottleEvery = 0 }, "throttle_every"},
		{"metrics without addr", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Addr = "" }, "metrics.addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.ErrorContains(t, err, tt.field)
		})
	}
}

func TestChimeCycleValueFallback(t *testing.T) {
	cfg := Default()
	cfg.Chime.Cycle = "eon"
	assert.Equal(t, calendar.CycleMinute, cfg.ChimeCycleValue())
}
