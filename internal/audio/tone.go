// Package audio turns engine cues into short synthesized tones.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/irr-runner/internal/core"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSquare Wave = iota
	WaveTriangle
	WaveSaw
)

// Tone describes one beep.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
	Gain     float64 // Peak amplitude
}

// Mash pitch rises with mash speed up to this many hertz.
const (
	mashBaseFreq  = 640
	mashFreqRange = 250
	mashFreqScale = 0.12
)

// releaseFloor is the amplitude every tone decays to by its end.
const releaseFloor = 0.0001

// ToneFor returns the tone for a cue.
func ToneFor(c core.Cue) (Tone, bool) {
	switch c.Kind {
	case core.CueStart:
		return Tone{540, 60 * time.Millisecond, WaveTriangle, 0.02}, true
	case core.CueGameOver:
		return Tone{160, 160 * time.Millisecond, WaveSaw, 0.05}, true
	case core.CueWin:
		return Tone{980, 120 * time.Millisecond, WaveTriangle, 0.03}, true
	case core.CueJump:
		return Tone{720, 50 * time.Millisecond, WaveSquare, 0.03}, true
	case core.CueDoubleJump:
		return Tone{920, 60 * time.Millisecond, WaveTriangle, 0.03}, true
	case core.CueBirdClimb:
		return Tone{840, 40 * time.Millisecond, WaveTriangle, 0.02}, true
	case core.CueEscape:
		return Tone{980, 80 * time.Millisecond, WaveTriangle, 0.03}, true
	case core.CueMash:
		freq := mashBaseFreq + math.Min(mashFreqRange, c.Intensity*mashFreqScale)
		return Tone{freq, 25 * time.Millisecond, WaveSquare, 0.015}, true
	}
	return Tone{}, false
}

// oscillator generates a unit-amplitude wave with an exponential release.
type oscillator struct {
	freq     float64
	phase    float64
	wave     Wave
	rate     beep.SampleRate
	position int
	total    int
	decay    float64 // Per-sample envelope multiplier
	env      float64
}

// NewStreamer renders t at the given sample rate.
func NewStreamer(t Tone, rate beep.SampleRate) beep.Streamer {
	total := max(1, rate.N(t.Duration))
	osc := &oscillator{
		freq:  t.Freq,
		wave:  t.Wave,
		rate:  rate,
		total: total,
		env:   1,
	}
	if t.Gain > releaseFloor {
		osc.decay = math.Pow(releaseFloor/t.Gain, 1/float64(total))
	}
	// effects.Gain scales by 1+Gain
	return &effects.Gain{Streamer: osc, Gain: t.Gain - 1}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		}
		val *= o.env

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.env *= o.decay
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }
