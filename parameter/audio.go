package parameter

import "time"

// Audio
const (
	AudioSampleRate = 48000
	// AudioBufferDuration is the speaker buffer, latency versus underrun tradeoff
	AudioBufferDuration = 100 * time.Millisecond

	AudioMasterVolume = 0.6
)

// Skid Tone
const (
	// SkidToneBaseHz is the squeal pitch at the lowest intensity
	SkidToneBaseHz = 620.0
	// SkidToneRangeHz is added to the base pitch at full intensity
	SkidToneRangeHz = 380.0
	SkidToneVolume  = 0.35
	// SkidNoiseMix is the share of white noise in the squeal
	SkidNoiseMix = 0.4
)

// One-shot Effects
const (
	LandingThudHz       = 70.0
	LandingThudDuration = 140 * time.Millisecond

	RecoveryChimeNoteDuration = 110 * time.Millisecond
)
