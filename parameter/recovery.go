package parameter

import "time"

// Vehicle Recovery
const (
	// UpsideDownThreshold is the minimum dot(bodyUp, worldDown) treated as overturned
	UpsideDownThreshold = 0.5

	// UpsideDownRollDelay is how long the vehicle must stay overturned before recovery starts
	UpsideDownRollDelay = 3 * time.Second

	TimeToLift = 1 * time.Second
	TimeToRoll = 2 * time.Second

	// LiftHeight is the world-up offset applied before rolling
	LiftHeight = 2.0
)
