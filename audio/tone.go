// Package audio plays a short chime when pulses reach special points
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// sine generates a fixed-length sine wave
type sine struct {
	freq     float64
	phase    float64
	length   int
	position int
	rate     beep.SampleRate
}

func newSine(freq float64, d time.Duration, rate beep.SampleRate) *sine {
	return &sine{freq: freq, length: rate.N(d), rate: rate}
}

func (o *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}
		v := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *sine) Err() error { return nil }

// envelope shapes a stream with a linear attack and a linear release to the end
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	total := rate.N(d)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{streamer: s, attack: att, release: rel, total: total}
}

// gain returns the envelope level at sample position p
func (e *envelope) gain(p int) float64 {
	if p >= e.total {
		return 0
	}
	if e.attack > 0 && p < e.attack {
		return float64(p) / float64(e.attack)
	}
	if start := e.total - e.release; e.release > 0 && p >= start {
		return float64(e.total-p) / float64(e.release)
	}
	return 1
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		g := e.gain(e.position)
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// volume wraps s at a base-2 level; non-positive linear gains are silent
func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Tone is the shape of one chime
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Attack    time.Duration
	// Volume is a base-2 level, 0 keeps unity gain
	Volume float64
}

// Streamer renders t as a fundamental and an octave with a sharper release
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	fund := newEnvelope(newSine(t.Frequency, t.Duration, rate), t.Duration, t.Attack, t.Duration-t.Attack, rate)
	over := newEnvelope(newSine(t.Frequency*2, t.Duration, rate), t.Duration, t.Attack, (t.Duration-t.Attack)/2, rate)
	mixed := beep.Mix(volume(fund, 0.7), volume(over, 0.3))
	return &effects.Volume{Streamer: mixed, Base: 2, Volume: t.Volume}
}
