package chime

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/luminar-weave/internal/calendar"
)

const (
	// SampleRate is the rate the speaker is opened at.
	SampleRate = beep.SampleRate(44100)

	tapRingSize = 8192
	levelWindow = 2048
)

// Settings configures a Player.
type Settings struct {
	Cycle     calendar.Cycle
	Frequency float64
	Duration  time.Duration
	Volume    float64
	// Sound replaces the synthesised tone when set. See LoadSound.
	Sound *beep.Buffer
}

// Player rings a tone on every boundary of its cycle. Tones are mixed into
// one endless stream so the tap keeps receiving silence between chimes and
// the level falls back to zero.
type Player struct {
	settings Settings
	detector *Detector
	mixer    *beep.Mixer
	tap      *Tap
	started  bool
	logger   *slog.Logger
}

// NewPlayer prepares a player. No audio device is touched until Start.
func NewPlayer(s Settings) *Player {
	mixer := &beep.Mixer{}
	return &Player{
		settings: s,
		detector: NewDetector(s.Cycle),
		mixer:    mixer,
		tap:      NewTap(mixer, tapRingSize),
		logger:   slog.With("component", "chime", "cycle", s.Cycle.String()),
	}
}

// Start opens the speaker and begins streaming the mix.
func (p *Player) Start() error {
	if p.started {
		return nil
	}
	bufferSize := SampleRate.N(time.Second / 20)
	if err := speaker.Init(SampleRate, bufferSize); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.tap)
	p.started = true
	p.logger.Info("chime enabled", "frequency", p.settings.Frequency)
	return nil
}

// Observe rings when p crosses a boundary of the watched cycle.
func (p *Player) Observe(pr calendar.Progress) {
	if p.detector.Crossed(pr) {
		p.Ring()
	}
}

// Ring queues one tone.
func (p *Player) Ring() {
	speaker.Lock()
	p.mixer.Add(p.chime())
	speaker.Unlock()
	p.logger.Debug("chime")
}

func (p *Player) chime() beep.Streamer {
	if p.settings.Sound != nil {
		return playback(p.settings.Sound, p.settings.Volume)
	}
	return Tone(SampleRate, p.settings.Frequency, p.settings.Duration, p.settings.Volume)
}

// Reset stops a clock jump from sounding as a boundary.
func (p *Player) Reset() {
	p.detector.Reset()
}

// Pending returns the number of chimes still sounding.
func (p *Player) Pending() int {
	speaker.Lock()
	defer speaker.Unlock()
	return p.mixer.Len()
}

// Level returns how loud the mix has been over the last few thousand
// samples.
func (p *Player) Level() float64 {
	return p.tap.Level(levelWindow)
}

// Close silences the speaker.
func (p *Player) Close() {
	if !p.started {
		return
	}
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	p.started = false
}
