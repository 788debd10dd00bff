package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines generator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sample returns the wave value at phase [0, 1)
func (w WaveType) sample(phase float64, rng *rand.Rand) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveNoise:
		return rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// phasor is a normalized phase advanced once per sample
type phasor struct {
	rate  beep.SampleRate
	freq  float64
	phase float64
}

// next returns the current phase and steps it
func (p *phasor) next() float64 {
	ph := p.phase
	p.phase += p.freq / float64(p.rate)
	p.phase -= math.Floor(p.phase)
	return ph
}

// Ramp is the linear fade in and fade out of a pulse
type Ramp struct {
	Attack  time.Duration
	Release time.Duration
}

// pulse is one fixed-length note with its gain ramp applied per sample
type pulse struct {
	wave   WaveType
	osc    phasor
	rng    *rand.Rand
	pos    int
	length int
	in     int
	out    int
}

// NewPulse creates a note of wave at freq lasting d, shaped by r
func NewPulse(wave WaveType, freq float64, d time.Duration, r Ramp, rate beep.SampleRate) beep.Streamer {
	return &pulse{
		wave:   wave,
		osc:    phasor{rate: rate, freq: freq},
		rng:    rand.New(rand.NewSource(1)),
		length: rate.N(d),
		in:     rate.N(r.Attack),
		out:    rate.N(r.Release),
	}
}

// gain is the ramp level at sample pos, 1 between the fades
func (p *pulse) gain(pos int) float64 {
	g := 1.0
	if pos < p.in {
		g = float64(pos) / float64(p.in)
	}
	if left := p.length - pos; left < p.out {
		g = math.Min(g, float64(left)/float64(p.out))
	}
	return g
}

func (p *pulse) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if p.pos >= p.length {
			return i, i > 0
		}
		val := p.wave.sample(p.osc.next(), p.rng) * p.gain(p.pos)
		samples[i][0] = val
		samples[i][1] = val
		p.pos++
	}
	return len(samples), true
}

func (p *pulse) Err() error { return nil }

// newVolume wraps s at a linear gain
// math.Log2(0) is -Inf, so zero gain is expressed as silent
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setGain(v, gain)
	return v
}

func setGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Volume, v.Silent = 0, true
		return
	}
	v.Volume, v.Silent = math.Log2(gain), false
}
