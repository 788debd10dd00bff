package vehicle

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/vehicle-sim/vmath"
)

func TestTraction_OpposesSlip(t *testing.T) {
	attrs := DefaultAttributes()
	_, anchor, body := singleWheelAt(0.6)
	body.vel = mgl64.Vec3{2, 0, 5}

	grounded := WheelContact{Grounded: true}
	tr := Traction(anchor, grounded, body, attrs, 0)

	assert.InDelta(t, 2, tr.Slip, 1e-12)
	assert.InDelta(t, -2*attrs.SteerForce, tr.SteerForce.X(), 1e-9)
	assert.Zero(t, tr.SteerForce.Y())
	assert.False(t, tr.Skidding)
}

func TestTraction_GripFallsWithSpeed(t *testing.T) {
	attrs := DefaultAttributes()
	_, anchor, body := singleWheelAt(0.6)
	body.vel = mgl64.Vec3{1, 0, 0}
	c := WheelContact{Grounded: true}

	slow := Traction(anchor, c, body, attrs, 0)
	fast := Traction(anchor, c, body, attrs, 1)
	beyond := Traction(anchor, c, body, attrs, 3)

	assert.InDelta(t, -attrs.SteerForce, slow.SteerForce.X(), 1e-9)
	assert.InDelta(t, -attrs.SteerForce*0.6, fast.SteerForce.X(), 1e-9)
	assert.Equal(t, fast.SteerForce, beyond.SteerForce)
}

func TestTraction_VerticalComponentZeroed(t *testing.T) {
	attrs := DefaultAttributes()
	body := newFakeBody(mgl64.Vec3{0, 1, 0})
	body.rot = mgl64.QuatRotate(30*vmath.Deg2Rad, vmath.WorldForward)
	body.vel = mgl64.Vec3{3, 0, 0}
	rig := testRig("tilted", mgl64.Vec3{}, false, false)
	anchor := rig.AnchorAt(body.pos, body.rot, 0)

	tr := Traction(anchor, WheelContact{Grounded: true}, body, attrs, 0)

	assert.NotZero(t, tr.SteerForce.X())
	assert.Zero(t, tr.SteerForce.Y())
}

func TestTraction_SkidNeedsGround(t *testing.T) {
	attrs := DefaultAttributes()
	_, anchor, body := singleWheelAt(0.6)
	body.vel = mgl64.Vec3{attrs.WheelSkidThreshold + 1, 0, 0}

	assert.True(t, Traction(anchor, WheelContact{Grounded: true}, body, attrs, 0).Skidding)
	assert.False(t, Traction(anchor, WheelContact{}, body, attrs, 0).Skidding)

	body.vel = mgl64.Vec3{-(attrs.WheelSkidThreshold + 1), 0, 0}
	assert.True(t, Traction(anchor, WheelContact{Grounded: true}, body, attrs, 0).Skidding)

	body.vel = mgl64.Vec3{attrs.WheelSkidThreshold, 0, 0}
	assert.False(t, Traction(anchor, WheelContact{Grounded: true}, body, attrs, 0).Skidding)
}

func TestDriveForce(t *testing.T) {
	attrs := DefaultAttributes()
	powered := testRig("p", mgl64.Vec3{}, true, false)
	unpowered := testRig("u", mgl64.Vec3{}, false, false)
	anchor := powered.AnchorAt(mgl64.Vec3{}, mgl64.QuatIdent(), 0)
	grounded := WheelContact{Grounded: true}

	tests := []struct {
		name     string
		rig      WheelRig
		contact  WheelContact
		throttle float64
		ratio    float64
		want     mgl64.Vec3
	}{
		{"full throttle standing", powered, grounded, 1, 0, mgl64.Vec3{0, 0, attrs.MotorPower}},
		{"reverse", powered, grounded, -1, 0, mgl64.Vec3{0, 0, -attrs.MotorPower}},
		{"at max speed", powered, grounded, 1, 1, mgl64.Vec3{}},
		{"unpowered", unpowered, grounded, 1, 0, mgl64.Vec3{}},
		{"airborne", powered, WheelContact{}, 1, 0, mgl64.Vec3{}},
		{"coasting", powered, grounded, 0, 0, mgl64.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DriveForce(anchor, tt.rig, tt.contact, attrs, tt.throttle, tt.ratio)
			assert.True(t, got.ApproxEqualThreshold(tt.want, 1e-9), "got %v, want %v", got, tt.want)
		})
	}
}

func TestDriveForce_FollowsSteeredWheel(t *testing.T) {
	attrs := DefaultAttributes()
	rig := testRig("p", mgl64.Vec3{}, true, true)
	anchor := rig.AnchorAt(mgl64.Vec3{}, mgl64.QuatIdent(), 90)

	got := DriveForce(anchor, rig, WheelContact{Grounded: true}, attrs, 1, 0)
	assert.InDelta(t, attrs.MotorPower, got.X(), 1e-9)
	assert.InDelta(t, 0, got.Z(), 1e-9)
}

func TestStabilize(t *testing.T) {
	const f = 70.0

	level := Stabilize(mgl64.QuatIdent(), f)
	assert.True(t, level.Torque.ApproxEqualThreshold(mgl64.Vec3{}, 1e-12))
	assert.Equal(t, mgl64.Vec3{0, -f, 0}, level.Force)

	rolled := Stabilize(mgl64.QuatRotate(30*vmath.Deg2Rad, vmath.WorldForward), f)
	assert.InDelta(t, -0.5, rolled.RollError, 1e-9)
	assert.InDelta(t, -0.5*f*0.5, rolled.Torque.Z(), 1e-9)

	pitched := Stabilize(mgl64.QuatRotate(30*vmath.Deg2Rad, vmath.WorldRight), f)
	assert.InDelta(t, -0.5, pitched.PitchError, 1e-9)
	assert.InDelta(t, -0.5*f, pitched.Torque.X(), 1e-9)
}

func TestAxisSign(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.2, 0},
		{-0.2, 0},
		{0.21, 1},
		{-0.5, -1},
		{1, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AxisSign(tt.in, 0.2), "input %v", tt.in)
	}
}

func TestSteering(t *testing.T) {
	attrs := DefaultAttributes()

	assert.InDelta(t, attrs.MaxSteerAngle, TargetSteerAngle(attrs, 1, 0), 1e-9)
	assert.InDelta(t, -attrs.MaxSteerAngle*0.4, TargetSteerAngle(attrs, -1, 1), 1e-9)
	assert.InDelta(t, attrs.MaxSteerAngle*0.4, TargetSteerAngle(attrs, 1, 5), 1e-9)

	assert.InDelta(t, 10, TurnWheel(0, 20, 10, 50*time.Millisecond), 1e-9)
	assert.InDelta(t, 20, TurnWheel(0, 20, 10, time.Second), 1e-9)
	assert.InDelta(t, -10, TurnWheel(0, -20, 10, 50*time.Millisecond), 1e-9)
	assert.InDelta(t, 0, TurnWheel(350, 10, 10, 50*time.Millisecond), 1e-9)
}
