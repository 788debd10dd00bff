package vehicle

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

// Option configures a Controller
type Option func(*Controller)

// WithLogger attaches a logger, default is zerolog.Nop
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithInput sets the move vector source sampled each frame
func WithInput(src InputSource) Option {
	return func(c *Controller) { c.input = src }
}

// WithParallelWheels fans the per-wheel compute stage out across goroutines
// The scene query must then tolerate concurrent Raycast calls
func WithParallelWheels(enabled bool) Option {
	return func(c *Controller) { c.parallel = enabled }
}

// Controller drives one rigid body from a set of ray-sampled wheels
// Step runs on the physics tick, Frame on the visual frame; both from the same goroutine
type Controller struct {
	attrs Attributes
	rigs  []WheelRig
	body  RigidBody
	scene SceneQuery
	input InputSource

	logger   zerolog.Logger
	metrics  *instruments
	parallel bool

	enabled bool
	drive   DriveInput
	speed   float64

	// Per-wheel state, indexed like rigs
	steerAngles []float64
	visuals     []WheelVisual
	samples     []WheelSample

	tick   uint64
	mode   Mode
	report Report
}

// NewController validates its collaborators and tuning and returns an enabled controller
func NewController(attrs Attributes, rigs []WheelRig, body RigidBody, scene SceneQuery, opts ...Option) (*Controller, error) {
	if body == nil {
		return nil, ErrNilBody
	}
	if scene == nil {
		return nil, ErrNilScene
	}
	if err := attrs.Validate(); err != nil {
		return nil, err
	}
	if len(rigs) == 0 {
		return nil, fmt.Errorf("%w: at least one wheel is required", ErrInvalidConfig)
	}
	for _, r := range rigs {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}

	metrics, err := newInstruments()
	if err != nil {
		return nil, fmt.Errorf("vehicle metrics: %w", err)
	}

	c := &Controller{
		attrs:   attrs,
		rigs:    append([]WheelRig(nil), rigs...),
		body:    body,
		scene:   scene,
		logger:  zerolog.Nop(),
		metrics: metrics,
		enabled: true,

		steerAngles: make([]float64, len(rigs)),
		visuals:     make([]WheelVisual, len(rigs)),
		samples:     make([]WheelSample, len(rigs)),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.report.Wheels = make([]WheelReport, len(rigs))
	for i, r := range c.rigs {
		c.visuals[i] = NewWheelVisual(mgl64.Vec3{0, -r.RestLength, 0})
		c.report.Wheels[i].Name = r.Name
		c.report.Wheels[i].VisualOffset = c.visuals[i].Offset
	}

	c.logger.Debug().
		Int("wheels", len(c.rigs)).
		Bool("parallel", c.parallel).
		Float64("max_speed", attrs.MaxSpeed).
		Msg("vehicle controller ready")

	return c, nil
}

// SetEnabled toggles force application
// Disabling makes the body kinematic and returns wheel visuals to rest
func (c *Controller) SetEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	c.body.SetKinematic(!enabled)

	if !enabled {
		// Report and input read as suspended before the next tick runs
		c.drive = DriveInput{}
		c.report.Input = c.drive
		c.mode = ModeSuspended
		c.report.Mode = ModeSuspended
		c.report.GroundedCount = 0
		c.report.Stabilizer = Stabilizer{}
		c.clearWheelReports()
		for i := range c.visuals {
			c.visuals[i].Reset()
			c.report.Wheels[i].VisualOffset = c.visuals[i].Offset
		}
	}
	c.logger.Debug().Bool("enabled", enabled).Uint64("tick", c.tick).Msg("vehicle controller toggled")
}

// Enabled reports whether Step applies forces
func (c *Controller) Enabled() bool {
	return c.enabled
}

// Mode is the force branch taken by the last Step
func (c *Controller) Mode() Mode {
	return c.mode
}

// Speed is the body speed sampled by the last Step
func (c *Controller) Speed() float64 {
	return c.speed
}

// SpeedRatio is Speed over MaxSpeed, unclamped
func (c *Controller) SpeedRatio() float64 {
	return c.speed / c.attrs.MaxSpeed
}

// Attributes returns the tuning in use
func (c *Controller) Attributes() Attributes {
	return c.attrs
}

// Wheels returns a copy of the wheel geometry
func (c *Controller) Wheels() []WheelRig {
	return append([]WheelRig(nil), c.rigs...)
}

// SteerAngle is the current local yaw of wheel i in degrees
func (c *Controller) SteerAngle(i int) float64 {
	return c.steerAngles[i]
}

// Report returns a copy of the latest diagnostic snapshot
func (c *Controller) Report() Report {
	return c.report.clone()
}

// Step runs one physics tick: compute every wheel against a single body sample, then apply forces
func (c *Controller) Step() {
	c.tick++
	if !c.enabled {
		c.finishTick(ModeSuspended, 0, Stabilizer{})
		return
	}

	pos := c.body.Position()
	rot := c.body.Rotation()
	c.speed = c.body.LinearVelocity().Len()
	ratio := c.SpeedRatio()

	c.computeWheels(pos, rot, ratio)

	grounded := 0
	for i := range c.samples {
		if c.samples[i].Contact.Grounded {
			grounded++
		}
	}

	if grounded == 0 {
		stab := Stabilize(rot, c.attrs.AirborneCorrectionForce)
		c.body.AddTorque(stab.Torque)
		c.body.AddForce(stab.Force)
		c.finishTick(ModeAirborne, 0, stab)
		return
	}

	c.applyPower(ratio)
	c.applySuspension()
	c.applySteering()
	c.finishTick(ModeGrounded, grounded, Stabilizer{})
}

// computeWheels fills samples, each wheel touches only its own slot
func (c *Controller) computeWheels(pos mgl64.Vec3, rot mgl64.Quat, ratio float64) {
	if !c.parallel || len(c.rigs) < 2 {
		for i := range c.rigs {
			c.computeWheel(i, pos, rot, ratio)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(c.rigs))
	for i := range c.rigs {
		go func() {
			defer wg.Done()
			c.computeWheel(i, pos, rot, ratio)
		}()
	}
	wg.Wait()
}

func (c *Controller) computeWheel(i int, pos mgl64.Vec3, rot mgl64.Quat, ratio float64) {
	rig := c.rigs[i]
	anchor := rig.AnchorAt(pos, rot, c.steerAngles[i])
	contact := Suspend(anchor, rig, c.body, c.scene, c.attrs)
	c.samples[i] = WheelSample{
		Anchor:   anchor,
		Contact:  contact,
		Traction: Traction(anchor, contact, c.body, c.attrs, ratio),
	}
}

func (c *Controller) applyPower(ratio float64) {
	for i, rig := range c.rigs {
		s := &c.samples[i]
		drive := DriveForce(s.Anchor, rig, s.Contact, c.attrs, c.drive.Throttle, ratio)
		c.report.Wheels[i].DriveForce = drive
		if !rig.Powered || !s.Contact.Grounded {
			continue
		}
		c.body.AddForceAtPoint(drive, s.Contact.HitPoint)
	}
}

func (c *Controller) applySuspension() {
	for i := range c.samples {
		s := &c.samples[i]
		if !s.Contact.Grounded {
			continue
		}
		c.body.AddForceAtPoint(s.Contact.SuspensionForce, s.Anchor.Position)
	}
}

func (c *Controller) applySteering() {
	for i, rig := range c.rigs {
		s := &c.samples[i]
		if !s.Contact.Grounded {
			continue
		}
		c.body.AddForceAtPoint(s.Traction.SteerForce, s.Contact.WheelCenter(s.Anchor, rig.Radius))
	}
}

// clearWheelReports drops contact, slip and force values, leaving names, steer and visuals
func (c *Controller) clearWheelReports() {
	for i := range c.report.Wheels {
		w := &c.report.Wheels[i]
		w.Grounded = false
		w.Skidding = false
		w.Compression = 0
		w.Slip = 0
		w.SuspensionForce = mgl64.Vec3{}
		w.SteerForce = mgl64.Vec3{}
		w.DriveForce = mgl64.Vec3{}
	}
}

func (c *Controller) finishTick(mode Mode, grounded int, stab Stabilizer) {
	skids := 0
	if mode == ModeSuspended {
		c.clearWheelReports()
	} else {
		for i, rig := range c.rigs {
			s := &c.samples[i]
			w := &c.report.Wheels[i]
			w.Grounded = s.Contact.Grounded
			w.HitPoint = s.Contact.HitPoint
			w.WheelCenter = s.Contact.WheelCenter(s.Anchor, rig.Radius)
			w.VisualTarget = VisualOffset(s.Anchor, s.Contact, rig.Radius)
			w.Compression = s.Contact.Compression
			w.Slip = s.Traction.Slip
			w.SuspensionForce = s.Contact.SuspensionForce
			w.SteerForce = s.Traction.SteerForce
			w.Skidding = s.Traction.Skidding
			w.SkidPoint = s.Contact.HitPoint
			if mode == ModeAirborne {
				w.DriveForce = mgl64.Vec3{}
			}
			if w.Skidding {
				skids++
			}
		}
	}

	c.report.Tick = c.tick
	c.report.Mode = mode
	c.report.Speed = c.speed
	c.report.SpeedRatio = c.SpeedRatio()
	c.report.CenterOfMass = c.body.CenterOfMass()
	c.report.GroundedCount = grounded
	c.report.Stabilizer = stab

	if mode != c.mode {
		c.logger.Debug().
			Str("from", c.mode.String()).
			Str("to", mode.String()).
			Uint64("tick", c.tick).
			Int("grounded", grounded).
			Msg("vehicle mode changed")
		c.mode = mode
	}
	c.metrics.recordTick(mode, skids)
}

// Frame samples input, turns steering wheels and follows wheel visuals
// Does nothing while disabled
func (c *Controller) Frame(dt time.Duration) {
	if !c.enabled {
		return
	}

	c.drive = sampleInput(c.input)
	c.report.Input = c.drive

	target := TargetSteerAngle(c.attrs, c.drive.Steer, c.SpeedRatio())
	for i, rig := range c.rigs {
		if rig.Steering {
			c.steerAngles[i] = TurnWheel(c.steerAngles[i], target, c.attrs.SteerSpeed, dt)
		}
		c.report.Wheels[i].SteerAngle = c.steerAngles[i]

		// No tick has produced a target yet
		if c.tick == 0 {
			continue
		}
		c.visuals[i].Follow(c.report.Wheels[i].VisualTarget, c.attrs.VisualWheelMoveSpeed, dt)
		c.report.Wheels[i].VisualOffset = c.visuals[i].Offset
	}
}
