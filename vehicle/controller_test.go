package vehicle

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vehicle-sim/parameter"
)

func drivableGround() *planeScene {
	return &planeScene{layer: LayerMask(parameter.LayerDrivable)}
}

func newTestController(t *testing.T, body *fakeBody, scene SceneQuery, opts ...Option) *Controller {
	t.Helper()
	c, err := NewController(DefaultAttributes(), testRigs(), body, scene, opts...)
	require.NoError(t, err)
	return c
}

func sumForces(forces []appliedForce) mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, f := range forces {
		sum = sum.Add(f.Force)
	}
	return sum
}

func TestNewController_Validation(t *testing.T) {
	body := newFakeBody(mgl64.Vec3{})
	scene := drivableGround()

	_, err := NewController(DefaultAttributes(), testRigs(), nil, scene)
	assert.ErrorIs(t, err, ErrNilBody)

	_, err = NewController(DefaultAttributes(), testRigs(), body, nil)
	assert.ErrorIs(t, err, ErrNilScene)

	_, err = NewController(DefaultAttributes(), nil, body, scene)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	attrs := DefaultAttributes()
	attrs.MaxSpeed = 0
	_, err = NewController(attrs, testRigs(), body, scene)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	rigs := testRigs()
	rigs[2].SpringTravel = 0
	_, err = NewController(DefaultAttributes(), rigs, body, scene)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestController_GroundedStep(t *testing.T) {
	body := newFakeBody(mgl64.Vec3{0, 0.6, 0})
	c := newTestController(t, body, drivableGround())

	c.Step()

	r := c.Report()
	assert.Equal(t, ModeGrounded, r.Mode)
	assert.Equal(t, 4, r.GroundedCount)
	assert.Empty(t, body.torques)

	attrs := DefaultAttributes()
	wantY := 4 * 0.8 * attrs.SpringStiffness
	assert.InDelta(t, wantY, sumForces(body.forces).Y(), 1e-6)

	// Suspension lands at the anchors, steering at the wheel centers
	rigs := testRigs()
	for i, w := range r.Wheels {
		assert.True(t, w.Grounded, w.Name)
		assert.InDelta(t, 0, w.HitPoint.Y(), 1e-12, w.Name)
		assert.InDelta(t, rigs[i].Radius, w.WheelCenter.Y(), 1e-12, w.Name)
	}
	for _, f := range body.forces {
		assert.True(t, f.AtPoint)
		if f.Force.Y() != 0 {
			assert.InDelta(t, 0.6, f.Point.Y(), 1e-12)
		}
	}
}

func TestController_ThrottleDrivesAtContact(t *testing.T) {
	body := newFakeBody(mgl64.Vec3{0, 0.6, 0})
	input := InputFunc(func() mgl64.Vec2 { return mgl64.Vec2{0, 1} })
	c := newTestController(t, body, drivableGround(), WithInput(input))

	c.Frame(parameter.FrameUpdateInterval)
	c.Step()

	attrs := DefaultAttributes()
	var drives []appliedForce
	for _, f := range body.forces {
		if f.Force.Z() > 0 {
			drives = append(drives, f)
		}
	}
	require.Len(t, drives, 2)
	for _, d := range drives {
		assert.InDelta(t, attrs.MotorPower, d.Force.Z(), 1e-9)
		assert.InDelta(t, 0, d.Point.Y(), 1e-12, "drive force applies at the hit point")
		assert.InDelta(t, -1.1, d.Point.Z(), 1e-12, "only rear wheels are powered")
	}
	assert.Equal(t, 1.0, c.Report().Input.Throttle)
}

func TestController_AirborneExclusive(t *testing.T) {
	body := newFakeBody(mgl64.Vec3{0, 10, 0})
	body.vel = mgl64.Vec3{4, 0, 0}
	input := InputFunc(func() mgl64.Vec2 { return mgl64.Vec2{1, 1} })
	c := newTestController(t, body, emptyScene{}, WithInput(input))

	c.Frame(parameter.FrameUpdateInterval)
	c.Step()

	attrs := DefaultAttributes()
	assert.Equal(t, ModeAirborne, c.Report().Mode)
	require.Len(t, body.torques, 1)
	require.Len(t, body.forces, 1)
	assert.False(t, body.forces[0].AtPoint)
	assert.Equal(t, mgl64.Vec3{0, -attrs.AirborneCorrectionForce, 0}, body.forces[0].Force)

	for _, w := range c.Report().Wheels {
		assert.False(t, w.Grounded)
		assert.False(t, w.Skidding, "ungrounded wheels never skid")
	}
}

func TestController_ModeFlipsEachTick(t *testing.T) {
	body := newFakeBody(mgl64.Vec3{0, 0.6, 0})
	c := newTestController(t, body, drivableGround())

	c.Step()
	assert.Equal(t, ModeGrounded, c.Report().Mode)

	body.clear()
	body.pos = mgl64.Vec3{0, 5, 0}
	c.Step()
	assert.Equal(t, ModeAirborne, c.Report().Mode)
	assert.Len(t, body.torques, 1)
	assert.Len(t, body.forces, 1)
}

func TestController_Disable(t *testing.T) {
	body := newFakeBody(mgl64.Vec3{0, 0.6, 0})
	input := InputFunc(func() mgl64.Vec2 { return mgl64.Vec2{1, 1} })
	c := newTestController(t, body, drivableGround(), WithInput(input))

	c.Step()
	c.Frame(time.Second)
	require.NotEqual(t, mgl64.Vec3{0, -0.5, 0}, c.Report().Wheels[0].VisualOffset)

	c.SetEnabled(false)
	assert.False(t, c.Enabled())
	assert.True(t, body.kinematic)
	for _, w := range c.Report().Wheels {
		assert.Equal(t, mgl64.Vec3{0, -0.5, 0}, w.VisualOffset, w.Name)
	}

	body.clear()
	angle := c.SteerAngle(0)
	c.Step()
	c.Frame(time.Second)
	assert.Empty(t, body.forces)
	assert.Empty(t, body.torques)
	assert.Equal(t, ModeSuspended, c.Report().Mode)
	assert.Equal(t, angle, c.SteerAngle(0))

	c.SetEnabled(true)
	assert.False(t, body.kinematic)
	c.Step()
	assert.Equal(t, ModeGrounded, c.Report().Mode)
}

func TestController_DisableSuspendsReportAtOnce(t *testing.T) {
	body := newFakeBody(mgl64.Vec3{0, 0.6, 0})
	body.vel = mgl64.Vec3{DefaultAttributes().WheelSkidThreshold + 1, 0, 0}
	c := newTestController(t, body, drivableGround())

	c.Step()
	require.Equal(t, ModeGrounded, c.Mode())
	require.Len(t, c.Report().Skids(), 4)

	c.SetEnabled(false)
	r := c.Report()
	assert.Equal(t, ModeSuspended, c.Mode())
	assert.Equal(t, ModeSuspended, r.Mode)
	assert.Zero(t, r.GroundedCount)
	assert.Empty(t, r.Skids())
	for _, w := range r.Wheels {
		assert.False(t, w.Grounded, w.Name)
		assert.Zero(t, w.SuspensionForce.Len(), w.Name)
		assert.Zero(t, w.SteerForce.Len(), w.Name)
	}

	c.Step()
	assert.Empty(t, c.Report().Skids())
	assert.Zero(t, c.Report().GroundedCount)
}

func TestController_ReenableDropsStaleInput(t *testing.T) {
	body := newFakeBody(mgl64.Vec3{0, 0.6, 0})
	input := InputFunc(func() mgl64.Vec2 { return mgl64.Vec2{0, 1} })
	c := newTestController(t, body, drivableGround(), WithInput(input))

	c.Frame(parameter.FrameUpdateInterval)
	require.Equal(t, 1.0, c.Report().Input.Throttle)

	c.SetEnabled(false)
	assert.Equal(t, DriveInput{}, c.Report().Input)

	c.SetEnabled(true)
	body.clear()
	c.Step()
	assert.Equal(t, ModeGrounded, c.Report().Mode)
	for _, w := range c.Report().Wheels {
		assert.Zero(t, w.DriveForce.Len(), w.Name)
	}
	assert.InDelta(t, 0, sumForces(body.forces).Z(), 1e-9)
}

func TestController_SteeringOnlyTurnsSteeringWheels(t *testing.T) {
	body := newFakeBody(mgl64.Vec3{0, 0.6, 0})
	input := InputFunc(func() mgl64.Vec2 { return mgl64.Vec2{1, 0} })
	c := newTestController(t, body, drivableGround(), WithInput(input))

	c.Frame(50 * time.Millisecond)

	attrs := DefaultAttributes()
	half := attrs.MaxSteerAngle * 0.5
	assert.InDelta(t, half, c.SteerAngle(0), 1e-9)
	assert.InDelta(t, half, c.SteerAngle(1), 1e-9)
	assert.Zero(t, c.SteerAngle(2))
	assert.Zero(t, c.SteerAngle(3))

	c.Frame(time.Second)
	assert.InDelta(t, attrs.MaxSteerAngle, c.SteerAngle(0), 1e-9)
}

func TestController_VisualFollowsTarget(t *testing.T) {
	body := newFakeBody(mgl64.Vec3{0, 0.6, 0})
	c := newTestController(t, body, drivableGround())

	c.Frame(time.Second)
	assert.Equal(t, mgl64.Vec3{0, -0.5, 0}, c.Report().Wheels[0].VisualOffset, "no target before the first tick")

	c.Step()
	c.Frame(time.Second)
	for _, w := range c.Report().Wheels {
		assert.InDelta(t, -0.3, w.VisualTarget.Y(), 1e-9, w.Name)
		assert.InDelta(t, -0.3, w.VisualOffset.Y(), 1e-9, w.Name)
	}
}

func TestController_SkidReport(t *testing.T) {
	body := newFakeBody(mgl64.Vec3{0, 0.6, 0})
	body.vel = mgl64.Vec3{DefaultAttributes().WheelSkidThreshold + 1, 0, 0}
	c := newTestController(t, body, drivableGround())

	c.Step()

	skids := c.Report().Skids()
	require.Len(t, skids, 4)
	for _, p := range skids {
		assert.InDelta(t, 0, p.Y(), 1e-12)
	}
}

func TestController_ParallelMatchesSequential(t *testing.T) {
	newBody := func() *fakeBody {
		b := newFakeBody(mgl64.Vec3{0.2, 0.55, -0.4})
		b.rot = mgl64.QuatRotate(0.1, mgl64.Vec3{0.3, 1, 0.2}.Normalize())
		b.vel = mgl64.Vec3{1, -0.5, 6}
		b.angVel = mgl64.Vec3{0.2, 0.4, -0.1}
		return b
	}
	input := InputFunc(func() mgl64.Vec2 { return mgl64.Vec2{-1, 1} })

	seq := newTestController(t, newBody(), drivableGround(), WithInput(input))
	par := newTestController(t, newBody(), drivableGround(), WithInput(input), WithParallelWheels(true))

	for i := 0; i < 3; i++ {
		seq.Frame(parameter.FrameUpdateInterval)
		par.Frame(parameter.FrameUpdateInterval)
		seq.Step()
		par.Step()
	}

	assert.Equal(t, seq.Report(), par.Report())
}

func TestController_ReportIsCopy(t *testing.T) {
	body := newFakeBody(mgl64.Vec3{0, 0.6, 0})
	c := newTestController(t, body, drivableGround())
	c.Step()

	r := c.Report()
	r.Wheels[0].Grounded = false
	assert.True(t, c.Report().Wheels[0].Grounded)
	assert.Equal(t, body.com, r.CenterOfMass)
}
