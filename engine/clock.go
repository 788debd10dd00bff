package engine

import (
	"time"
)

// FixedStep converts variable frame time into whole fixed-size physics ticks
// Not safe for concurrent use, owned by the simulation loop
type FixedStep struct {
	tickInterval time.Duration
	maxCatchUp   int

	accumulator time.Duration
	tickCount   uint64
	dropped     time.Duration
}

// NewFixedStep creates a stepper; maxCatchUp <= 0 means unbounded
func NewFixedStep(tickInterval time.Duration, maxCatchUp int) *FixedStep {
	if tickInterval <= 0 {
		panic("engine: tick interval must be positive")
	}
	return &FixedStep{
		tickInterval: tickInterval,
		maxCatchUp:   maxCatchUp,
	}
}

// Advance adds frame time and runs tick once per whole interval accumulated
// When more than maxCatchUp ticks are owed the excess time is dropped
// Returns the number of ticks run
func (fs *FixedStep) Advance(frame time.Duration, tick func(dt time.Duration)) int {
	if frame > 0 {
		fs.accumulator += frame
	}

	owed := int(fs.accumulator / fs.tickInterval)
	if fs.maxCatchUp > 0 && owed > fs.maxCatchUp {
		excess := time.Duration(owed-fs.maxCatchUp) * fs.tickInterval
		fs.accumulator -= excess
		fs.dropped += excess
		owed = fs.maxCatchUp
	}

	for i := 0; i < owed; i++ {
		tick(fs.tickInterval)
		fs.accumulator -= fs.tickInterval
		fs.tickCount++
	}
	return owed
}

// Alpha returns the fraction of a tick remaining in the accumulator, in [0, 1)
func (fs *FixedStep) Alpha() float64 {
	return float64(fs.accumulator) / float64(fs.tickInterval)
}

// TickInterval returns the fixed step size
func (fs *FixedStep) TickInterval() time.Duration {
	return fs.tickInterval
}

// TickCount returns total ticks run since creation or Reset
func (fs *FixedStep) TickCount() uint64 {
	return fs.tickCount
}

// Dropped returns total frame time discarded by the catch-up clamp
func (fs *FixedStep) Dropped() time.Duration {
	return fs.dropped
}

// Reset clears accumulated time and counters
func (fs *FixedStep) Reset() {
	fs.accumulator = 0
	fs.tickCount = 0
	fs.dropped = 0
}
