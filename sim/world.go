// Package sim wires the vehicle controller, recovery machine and reference physics into one steppable world
package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vehicle-sim/config"
	"github.com/lixenwraith/vehicle-sim/engine"
	"github.com/lixenwraith/vehicle-sim/physics"
	"github.com/lixenwraith/vehicle-sim/recovery"
	"github.com/lixenwraith/vehicle-sim/vehicle"
	"github.com/lixenwraith/vehicle-sim/vmath"
)

// flipClearance keeps a flipped hull just above the surface it is dropped on
const flipClearance = 0.01

// Option configures a World
type Option func(*World)

// WithLogger is passed on to the controller and recovery machine
func WithLogger(l zerolog.Logger) Option {
	return func(w *World) { w.logger = l }
}

// WithInput sets the move vector source
func WithInput(src vehicle.InputSource) Option {
	return func(w *World) { w.input = src }
}

// WithScene replaces the flat ground built from the sim section
func WithScene(s *physics.Scene) Option {
	return func(w *World) { w.scene = s }
}

// FrameResult summarizes one Advance for effects and telemetry
type FrameResult struct {
	Ticks int
	// Landed is set when any tick went from airborne to grounded
	Landed bool
	// RecoveryStarted is set on the frame a lift begins
	RecoveryStarted bool
}

// World is a single vehicle on a static scene
// Not safe for concurrent use, Advance and the accessors belong to one goroutine
type World struct {
	logger  zerolog.Logger
	input   vehicle.InputSource
	body    *physics.Body
	scene   *physics.Scene
	contact physics.HullContact
	gravity mgl64.Vec3
	stepper *engine.FixedStep

	vehicle  *vehicle.Controller
	recovery *recovery.Recovery

	spawn   mgl64.Vec3
	elapsed time.Duration
	frames  uint64
	landed  bool
}

// NewWorld builds a world from configuration and places the vehicle at rest on the ground
func NewWorld(f *config.File, opts ...Option) (*World, error) {
	attrs, err := f.Attributes()
	if err != nil {
		return nil, fmt.Errorf("vehicle attributes: %w", err)
	}
	rigs, err := f.Rigs()
	if err != nil {
		return nil, fmt.Errorf("wheel rigs: %w", err)
	}
	recCfg, err := f.RecoveryConfig()
	if err != nil {
		return nil, fmt.Errorf("recovery config: %w", err)
	}
	if f.Sim.PhysicsTick <= 0 {
		return nil, fmt.Errorf("%w: physics tick must be positive, got %v", config.ErrInvalid, f.Sim.PhysicsTick)
	}

	w := &World{
		logger:  zerolog.Nop(),
		body:    physics.NewChassis(),
		contact: physics.DefaultHullContact(),
		gravity: f.Gravity(),
		stepper: engine.NewFixedStep(f.Sim.PhysicsTick, f.Sim.MaxCatchUp),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.scene == nil {
		w.scene = physics.NewScene(f.Sim.GroundHeight)
	}

	w.vehicle, err = vehicle.NewController(attrs, rigs, w.body, w.scene,
		vehicle.WithLogger(w.logger.With().Str("component", "vehicle").Logger()),
		vehicle.WithInput(w.input),
		vehicle.WithParallelWheels(f.Sim.ParallelWheels),
	)
	if err != nil {
		return nil, err
	}

	w.recovery, err = recovery.New(recCfg, w.body, w.vehicle,
		recovery.WithLogger(w.logger.With().Str("component", "recovery").Logger()),
	)
	if err != nil {
		return nil, err
	}

	w.spawn = mgl64.Vec3{0, w.scene.GroundHeight() + restHeight(rigs), 0}
	w.body.SetPosition(w.spawn)

	w.logger.Info().
		Int("wheels", len(rigs)).
		Dur("physics_tick", f.Sim.PhysicsTick).
		Bool("parallel_wheels", f.Sim.ParallelWheels).
		Msg("world ready")

	return w, nil
}

// restHeight is the body origin height at which the lowest wheel just touches at rest length
func restHeight(rigs []vehicle.WheelRig) float64 {
	h := 0.0
	for _, r := range rigs {
		h = math.Max(h, r.RestLength+r.Radius-r.LocalPosition.Y())
	}
	return h
}

// Advance runs the physics ticks owed for frame, then one visual frame
func (w *World) Advance(frame time.Duration) FrameResult {
	w.landed = false
	ticks := w.stepper.Advance(frame, w.tick)

	w.vehicle.Frame(frame)

	wasActive := w.recovery.Active()
	w.recovery.Update(frame)

	w.elapsed += frame
	w.frames++

	return FrameResult{
		Ticks:           ticks,
		Landed:          w.landed,
		RecoveryStarted: !wasActive && w.recovery.Active(),
	}
}

// tick is one fixed physics step: wheel forces, hull contact, integration
func (w *World) tick(dt time.Duration) {
	before := w.vehicle.Mode()
	w.vehicle.Step()
	if before == vehicle.ModeAirborne && w.vehicle.Mode() == vehicle.ModeGrounded {
		w.landed = true
	}

	w.contact.Apply(w.body, w.scene)
	w.body.Integrate(dt, w.gravity)
}

// Flip turns the vehicle over about its forward axis and drops it onto the surface below
func (w *World) Flip() {
	rot := vmath.YawRotation(vmath.Yaw(w.body.Rotation())).
		Mul(mgl64.QuatRotate(math.Pi, vmath.WorldForward))
	w.body.SetRotation(rot)
	w.body.SetLinearVelocity(mgl64.Vec3{})
	w.body.SetAngularVelocity(mgl64.Vec3{})
	w.settleHull()

	w.logger.Info().Msg("vehicle flipped")
}

// Reset cancels any recovery and returns the vehicle to its spawn pose
func (w *World) Reset() {
	w.recovery.Cancel()
	w.body.SetPosition(w.spawn)
	w.body.SetRotation(mgl64.QuatIdent())
	w.body.SetLinearVelocity(mgl64.Vec3{})
	w.body.SetAngularVelocity(mgl64.Vec3{})
	w.stepper.Reset()
}

// CancelRecovery aborts a pending or running recovery
func (w *World) CancelRecovery() {
	w.recovery.Cancel()
}

// settleHull moves the body vertically so its lowest hull point rests just above the surface
func (w *World) settleHull() {
	pos := w.body.Position()
	lowest := math.Inf(1)
	surface := math.Inf(-1)
	for _, p := range w.body.HullPoints() {
		lowest = math.Min(lowest, p.Y())
		surface = math.Max(surface, w.scene.SurfaceHeight(p.X(), p.Z(), pos.Y()))
	}
	pos[1] += surface + flipClearance - lowest
	w.body.SetPosition(pos)
}

func (w *World) Body() *physics.Body          { return w.body }
func (w *World) Scene() *physics.Scene        { return w.scene }
func (w *World) Vehicle() *vehicle.Controller { return w.vehicle }
func (w *World) Recovery() *recovery.Recovery { return w.recovery }
func (w *World) Report() vehicle.Report       { return w.vehicle.Report() }
func (w *World) Elapsed() time.Duration       { return w.elapsed }
func (w *World) Frames() uint64               { return w.frames }
func (w *World) Stepper() *engine.FixedStep   { return w.stepper }

// Upright reports whether the body's up axis is within 30 degrees of world up
func (w *World) Upright() bool {
	return vmath.Up(w.body.Rotation()).Dot(vmath.WorldUp) > math.Cos(30*vmath.Deg2Rad)
}
