// Package chime sounds a short tone whenever a chosen cycle rolls over and
// exposes how loud it currently is so the display can glow along.
package chime

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// decay is the number of e-foldings the tone fades through over its length.
const decay = 6.0

// Tone returns a mono sine at freq Hz lasting d, fading out exponentially
// from volume. It ends after d.
func Tone(sr beep.SampleRate, freq float64, d time.Duration, volume float64) beep.Streamer {
	total := sr.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				break
			}
			env := math.Exp(-decay * float64(pos) / float64(total))
			v := volume * env * math.Sin(2*math.Pi*freq*float64(pos)/float64(sr))
			samples[i] = [2]float64{v, v}
			pos++
			n++
		}
		return n, true
	})
}
