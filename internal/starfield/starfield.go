// Package starfield simulates the slowly drifting stars behind the dials.
// A Field is plain state owned by its view; nothing here touches the screen.
package starfield

import (
	"math"
	"math/rand/v2"
)

// Params tunes the density, look and motion of a Field.
type Params struct {
	// Density is stars per square pixel before MaxStars applies.
	Density     float64
	MaxStars    int
	MinDistance float64
	// MaxAttempts bounds the random placements tried per star.
	MaxAttempts int

	MinSpeed, MaxSpeed     float64
	MinRadius, MaxRadius   float64
	MinOpacity, MaxOpacity float64

	// ThrottleEvery makes a throttled field move only every Nth step.
	ThrottleEvery int
}

// DefaultParams returns the stock look of the background.
func DefaultParams() Params {
	return Params{
		Density:       0.00035,
		MaxStars:      800,
		MinDistance:   15,
		MaxAttempts:   50,
		MinSpeed:      0.09,
		MaxSpeed:      0.18,
		MinRadius:     0.3,
		MaxRadius:     1.8,
		MinOpacity:    0.2,
		MaxOpacity:    0.9,
		ThrottleEvery: 2,
	}
}

// Star is one point of light. Z is its depth in [0.1, 1]; nearer stars are
// drawn larger.
type Star struct {
	X, Y    float64
	Z       float64
	Radius  float64
	Opacity float64
	Speed   float64
}

// Field is a set of stars drifting leftwards across a width x height area.
type Field struct {
	params Params
	rng    *rand.Rand

	width, height float64
	stars         []Star

	frame     int
	throttled bool
}

// New seeds a field for the given area. rng drives every random choice, so
// a seeded source gives a reproducible sky.
func New(p Params, width, height int, rng *rand.Rand) *Field {
	f := &Field{
		params: p,
		rng:    rng,
		width:  float64(width),
		height: float64(height),
	}
	f.seed()
	return f
}

// Stars returns the current stars. The slice is owned by the field.
func (f *Field) Stars() []Star { return f.stars }

// Size returns the area the field covers.
func (f *Field) Size() (width, height int) {
	return int(f.width), int(f.height)
}

// Resize re-seeds the field when the area changes.
func (f *Field) Resize(width, height int) {
	if float64(width) == f.width && float64(height) == f.height {
		return
	}
	f.width, f.height = float64(width), float64(height)
	f.seed()
}

// SetThrottled slows the field down while the view is busy or in the
// background.
func (f *Field) SetThrottled(throttled bool) {
	f.throttled = throttled
}

// Step advances the field one frame and reports whether the stars moved.
// Stars leaving the left edge re-enter on the right with fresh properties.
func (f *Field) Step() bool {
	f.frame++
	if f.throttled && f.params.ThrottleEvery > 1 && f.frame%f.params.ThrottleEvery != 0 {
		return false
	}
	for i := range f.stars {
		s := &f.stars[i]
		s.X -= s.Speed
		if s.X < -s.Radius {
			*s = f.spawn(f.width+s.Radius, f.rng.Float64()*f.height)
		}
	}
	return true
}

// Target returns how many stars the field tries to place for its area.
func (f *Field) Target() int {
	n := int(math.Floor(f.width * f.height * f.params.Density))
	return min(n, f.params.MaxStars)
}

func (f *Field) seed() {
	target := f.Target()
	f.stars = make([]Star, 0, max(target, 0))

	for i := 0; i < target; i++ {
		for attempt := 0; attempt < f.params.MaxAttempts; attempt++ {
			x := f.rng.Float64() * f.width
			y := f.rng.Float64() * f.height
			if f.crowded(x, y) {
				continue
			}
			f.stars = append(f.stars, f.spawn(x, y))
			break
		}
	}
}

func (f *Field) crowded(x, y float64) bool {
	limit := f.params.MinDistance * f.params.MinDistance
	for _, s := range f.stars {
		dx, dy := x-s.X, y-s.Y
		if dx*dx+dy*dy < limit {
			return true
		}
	}
	return false
}

func (f *Field) spawn(x, y float64) Star {
	p := f.params
	z := f.rng.Float64()*0.9 + 0.1
	return Star{
		X:       x,
		Y:       y,
		Z:       z,
		Radius:  p.MinRadius + (1-z)*(p.MaxRadius-p.MinRadius),
		Opacity: between(f.rng, p.MinOpacity, p.MaxOpacity),
		Speed:   between(f.rng, p.MinSpeed, p.MaxSpeed),
	}
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
