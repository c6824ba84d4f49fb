package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/luminar-weave/internal/calendar"
	"github.com/iburimskiy/luminar-weave/internal/chime"
	"github.com/iburimskiy/luminar-weave/internal/clock"
	"github.com/iburimskiy/luminar-weave/internal/config"
	"github.com/iburimskiy/luminar-weave/internal/dial"
	"github.com/iburimskiy/luminar-weave/internal/starfield"
)

// DatePicker asks the user for a date, starting from current. It returns
// zenity.ErrCanceled when the user backs out.
type DatePicker func(current time.Time) (time.Time, error)

// Options wires a Game to the clock and sampler it displays.
type Options struct {
	Config  config.Config
	Clock   *clock.Adjustable
	Sampler *clock.Sampler
	// Chime is nil when the chime is disabled.
	Chime *chime.Player
	// Rand seeds the starfield; nil picks a random sky.
	Rand *rand.Rand
	// PickDate defaults to the native calendar dialog.
	PickDate DatePicker
}

// Game draws the dials over a drifting starfield. It implements ebiten.Game.
type Game struct {
	cfg      config.Config
	clock    *clock.Adjustable
	sampler  *clock.Sampler
	chime    *chime.Player
	pickDate DatePicker
	logger   *slog.Logger

	// viz
	stars      *starfield.Field
	glow       chime.Meter
	time       float64
	colorPhase float64

	// layout
	width, height int
	cells         []dial.Cell

	// state
	progress calendar.Progress
	readings []dial.Reading
	lastErr  error
}

// New builds a game sized to the configured window.
func New(opts Options) *Game {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	pick := opts.PickDate
	if pick == nil {
		pick = PickDate
	}

	cfg := opts.Config
	g := &Game{
		cfg:      cfg,
		clock:    opts.Clock,
		sampler:  opts.Sampler,
		chime:    opts.Chime,
		pickDate: pick,
		logger:   slog.With("component", "game"),
		stars:    starfield.New(cfg.StarfieldParams(), cfg.Window.Width, cfg.Window.Height, rng),
		glow:     chime.Meter{Smoothing: config.GlowSmoothing},
	}
	g.resize(cfg.Window.Width, cfg.Window.Height)
	g.refresh(opts.Sampler.Latest())
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.travel()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.backToNow()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// A window in the background only needs a lazy sky.
	g.stars.SetThrottled(!ebiten.IsFocused())
	g.stars.Step()

	g.time += 1.0 / 60.0 // Assuming 60 TPS
	g.colorPhase += config.ColorShiftSpeed
	if g.chime != nil {
		g.glow.Update(g.chime.Level())
	}
	g.refresh(g.sampler.Latest())
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) resize(width, height int) {
	if width == g.width && height == g.height {
		return
	}
	g.width, g.height = width, height
	g.stars.Resize(width, height)
	g.cells = dial.Grid(width, height, len(dial.Specs()), g.cfg.Dials.Columns,
		config.HeaderHeight, config.FooterHeight, config.CaptionHeight)
}

func (g *Game) refresh(p calendar.Progress) {
	if p.Instant.IsZero() {
		return
	}
	g.progress = p
	g.readings = dial.Readings(p)
}

// travel points the clock at a date chosen by the user, keeping the current
// time of day so the sub-day dials carry on where they are.
func (g *Game) travel() {
	now := g.clock.Now()
	picked, err := g.pickDate(now)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return
		}
		g.lastErr = fmt.Errorf("pick date: %w", err)
		g.logger.Warn("date picker failed", "err", err)
		return
	}

	target := Combine(picked, now)
	g.lastErr = nil
	g.logger.Info("showing another date", "at", target.Format(time.DateTime))
	g.refresh(g.sampler.Adjust(func() {
		g.clock.Jump(target)
		g.resetChime()
	}))
}

func (g *Game) backToNow() {
	if !g.clock.Jumped() {
		return
	}
	g.lastErr = nil
	g.logger.Info("back to now")
	g.refresh(g.sampler.Adjust(func() {
		g.clock.Reset()
		g.resetChime()
	}))
}

// resetChime keeps a hand-made jump from ringing as a boundary.
func (g *Game) resetChime() {
	if g.chime != nil {
		g.chime.Reset()
	}
}

// Combine returns the calendar date of day at the time of day of at, in
// at's location.
func Combine(day, at time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, at.Hour(), at.Minute(), at.Second(), at.Nanosecond(), at.Location())
}

// PickDate shows the native calendar dialog.
func PickDate(current time.Time) (time.Time, error) {
	return zenity.Calendar("Show the dials for",
		zenity.Title(config.WindowTitle),
		zenity.DefaultDate(current.Year(), current.Month(), current.Day()),
	)
}

// Run opens the window and blocks until it is closed. Failures to start
// are also reported in a native error dialog since the window may never
// have appeared.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(g.cfg.Window.Title + " - D: pick date, N: now, F: fullscreen, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(g.cfg.Window.Fullscreen)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		if derr := zenity.Error(err.Error(), zenity.Title(g.cfg.Window.Title)); derr != nil {
			g.logger.Debug("error dialog unavailable", "err", derr)
		}
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
