package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vehicle-sim/parameter"
)

// LandingThud is a short low square pulse for touching down after a jump
func LandingThud(rate beep.SampleRate) beep.Streamer {
	d := parameter.LandingThudDuration
	thud := NewPulse(WaveSquare, parameter.LandingThudHz, d, Ramp{Attack: 5 * time.Millisecond, Release: d / 2}, rate)
	return newVolume(thud, 0.3)
}

// RecoveryChime is a rising two-note cue for the start of a recovery sequence
func RecoveryChime(rate beep.SampleRate) beep.Streamer {
	d := parameter.RecoveryChimeNoteDuration
	ramp := Ramp{Attack: 5 * time.Millisecond, Release: d / 2}
	note := func(freq float64) beep.Streamer {
		return NewPulse(WaveSine, freq, d, ramp, rate)
	}
	return newVolume(beep.Seq(note(523.25), note(783.99)), 0.25)
}
