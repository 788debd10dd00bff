package audio

import (
	"math/rand"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/vehicle-sim/parameter"
	"github.com/lixenwraith/vehicle-sim/vehicle"
	"github.com/lixenwraith/vehicle-sim/vmath"
)

// squeal is an endless saw plus noise tone whose pitch can change while streaming
type squeal struct {
	osc   phasor
	noise float64
	rng   *rand.Rand
}

func newSqueal(rate beep.SampleRate, freq float64) *squeal {
	return &squeal{
		osc:   phasor{rate: rate, freq: freq},
		noise: parameter.SkidNoiseMix,
		rng:   rand.New(rand.NewSource(7)),
	}
}

func (s *squeal) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		tone := WaveSaw.sample(s.osc.next(), s.rng)
		hiss := WaveNoise.sample(0, s.rng)
		val := (1-s.noise)*tone + s.noise*hiss

		samples[i][0] = val
		samples[i][1] = val
	}
	return len(samples), true
}

func (s *squeal) Err() error { return nil }

// SkidTone is a looping tyre squeal gated and pitched by skid intensity
// Update may be called from the simulation goroutine while the speaker streams
type SkidTone struct {
	lock sync.Locker

	sq   *squeal
	vol  *effects.Volume
	ctrl *beep.Ctrl

	intensity float64
}

// NewSkidTone creates a paused tone, lock guards state shared with the audio goroutine
// A nil lock uses a private mutex, suitable when nothing streams concurrently
func NewSkidTone(rate beep.SampleRate, lock sync.Locker) *SkidTone {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	sq := newSqueal(rate, parameter.SkidToneBaseHz)
	vol := newVolume(sq, 0)
	return &SkidTone{
		lock: lock,
		sq:   sq,
		vol:  vol,
		ctrl: &beep.Ctrl{Streamer: vol, Paused: true},
	}
}

// Streamer is the output to add to a mixer
func (s *SkidTone) Streamer() beep.Streamer {
	return s.ctrl
}

// Update sets intensity in [0, 1], zero pauses the tone
func (s *SkidTone) Update(intensity float64) {
	intensity = vmath.Clamp01(intensity)

	s.lock.Lock()
	defer s.lock.Unlock()

	s.intensity = intensity
	s.ctrl.Paused = intensity == 0
	s.sq.osc.freq = parameter.SkidToneBaseHz + parameter.SkidToneRangeHz*intensity
	setGain(s.vol, parameter.SkidToneVolume*intensity)
}

// Playing reports whether the tone is audible
func (s *SkidTone) Playing() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return !s.ctrl.Paused
}

// Intensity returns the last applied intensity
func (s *SkidTone) Intensity() float64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.intensity
}

// SkidIntensity maps a vehicle report to tone intensity
// The share of skidding wheels sets the level, never above 1
func SkidIntensity(r vehicle.Report) float64 {
	if len(r.Wheels) == 0 {
		return 0
	}
	skidding := 0
	for _, w := range r.Wheels {
		if w.Skidding {
			skidding++
		}
	}
	return float64(skidding) / float64(len(r.Wheels))
}
