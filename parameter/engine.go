package parameter

import "time"

// Simulation Loop Timing
const (
	// PhysicsTickInterval is the fixed physics step (50 Hz)
	PhysicsTickInterval = 20 * time.Millisecond

	// FrameUpdateInterval is the visual frame interval (~60 FPS), recovery and input run at this rate
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxCatchUpTicks caps physics ticks run for one frame after a stall
	MaxCatchUpTicks = 5
)

// Telemetry
const (
	// TelemetryInterval is how often the headless runner logs vehicle state
	TelemetryInterval = 500 * time.Millisecond
)

// Configuration
const (
	// ConfigEnvPrefix namespaces environment overrides, VEHICLE_SIM_MAX_CATCH_UP overrides sim.max_catch_up
	ConfigEnvPrefix = "VEHICLE"

	DefaultLogLevel = "info"
)
