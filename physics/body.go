package physics

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vehicle-sim/parameter"
	"github.com/lixenwraith/vehicle-sim/vmath"
)

// Body is a single rigid body integrated with semi-implicit Euler
// The body origin is its center of mass, inertia is a diagonal tensor in body space
// Forces and torques accumulate until Integrate consumes them
type Body struct {
	mass       float64
	invMass    float64
	invInertia mgl64.Vec3

	pos    mgl64.Vec3
	rot    mgl64.Quat
	vel    mgl64.Vec3
	angVel mgl64.Vec3

	force  mgl64.Vec3
	torque mgl64.Vec3

	linearDamping  float64
	angularDamping float64
	kinematic      bool

	// Local hull points tested against the ground
	hull []mgl64.Vec3
}

// NewBox creates a solid box body with hull points at its eight corners
func NewBox(mass float64, halfExtents mgl64.Vec3) *Body {
	if mass <= 0 {
		panic("physics: body mass must be positive")
	}
	x, y, z := halfExtents.X(), halfExtents.Y(), halfExtents.Z()

	// Solid box: I = m/3 * (b^2 + c^2) for half extents
	inertia := mgl64.Vec3{
		mass / 3 * (y*y + z*z),
		mass / 3 * (x*x + z*z),
		mass / 3 * (x*x + y*y),
	}

	b := &Body{
		mass:           mass,
		invMass:        1 / mass,
		rot:            mgl64.QuatIdent(),
		linearDamping:  parameter.LinearDamping,
		angularDamping: parameter.AngularDamping,
	}
	for i := 0; i < 3; i++ {
		if inertia[i] > vmath.Epsilon {
			b.invInertia[i] = 1 / inertia[i]
		}
	}
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				b.hull = append(b.hull, mgl64.Vec3{sx * x, sy * y, sz * z})
			}
		}
	}
	return b
}

// NewChassis is the stock vehicle body
func NewChassis() *Body {
	return NewBox(parameter.BodyMass, mgl64.Vec3{
		parameter.BodyHalfWidth,
		parameter.BodyHalfHeight,
		parameter.BodyHalfLength,
	})
}

// SetDamping overrides the per-second velocity decay rates
func (b *Body) SetDamping(linear, angular float64) {
	b.linearDamping = linear
	b.angularDamping = angular
}

func (b *Body) Mass() float64               { return b.mass }
func (b *Body) Position() mgl64.Vec3        { return b.pos }
func (b *Body) Rotation() mgl64.Quat        { return b.rot }
func (b *Body) LinearVelocity() mgl64.Vec3  { return b.vel }
func (b *Body) AngularVelocity() mgl64.Vec3 { return b.angVel }
func (b *Body) CenterOfMass() mgl64.Vec3    { return b.pos }
func (b *Body) Kinematic() bool             { return b.kinematic }

// Teleporting setters, velocity is left untouched
func (b *Body) SetPosition(p mgl64.Vec3) { b.pos = p }
func (b *Body) SetRotation(q mgl64.Quat) { b.rot = q.Normalize() }

func (b *Body) SetLinearVelocity(v mgl64.Vec3)  { b.vel = v }
func (b *Body) SetAngularVelocity(w mgl64.Vec3) { b.angVel = w }

// PointVelocity is the world velocity of a point rigidly attached to the body
func (b *Body) PointVelocity(p mgl64.Vec3) mgl64.Vec3 {
	return b.vel.Add(b.angVel.Cross(p.Sub(b.pos)))
}

func (b *Body) AddForce(f mgl64.Vec3) {
	b.force = b.force.Add(f)
}

// AddForceAtPoint adds the force and its moment about the center of mass
func (b *Body) AddForceAtPoint(f, p mgl64.Vec3) {
	b.force = b.force.Add(f)
	b.torque = b.torque.Add(p.Sub(b.pos).Cross(f))
}

func (b *Body) AddTorque(t mgl64.Vec3) {
	b.torque = b.torque.Add(t)
}

// PendingForce and PendingTorque expose the accumulators before integration
func (b *Body) PendingForce() mgl64.Vec3  { return b.force }
func (b *Body) PendingTorque() mgl64.Vec3 { return b.torque }

// SetKinematic freezes the body; entering kinematic mode drops velocity and pending forces
func (b *Body) SetKinematic(kinematic bool) {
	if kinematic && !b.kinematic {
		b.vel = mgl64.Vec3{}
		b.angVel = mgl64.Vec3{}
		b.clearForces()
	}
	b.kinematic = kinematic
}

// HullPoints returns the hull in world space
func (b *Body) HullPoints() []mgl64.Vec3 {
	pts := make([]mgl64.Vec3, len(b.hull))
	for i, p := range b.hull {
		pts[i] = b.pos.Add(b.rot.Rotate(p))
	}
	return pts
}

// Integrate advances the body by dt under gravity and the accumulated forces
// Kinematic bodies only discard their accumulators
func (b *Body) Integrate(dt time.Duration, gravity mgl64.Vec3) {
	defer b.clearForces()
	if b.kinematic || dt <= 0 {
		return
	}
	h := dt.Seconds()

	accel := b.force.Mul(b.invMass).Add(gravity)
	b.vel = b.vel.Add(accel.Mul(h))
	b.angVel = b.angVel.Add(b.worldInvInertia(b.torque).Mul(h))

	b.vel = b.vel.Mul(1 / (1 + h*b.linearDamping))
	b.angVel = b.angVel.Mul(1 / (1 + h*b.angularDamping))

	b.pos = b.pos.Add(b.vel.Mul(h))

	// dq/dt = 0.5 * w * q
	spin := mgl64.Quat{W: 0, V: b.angVel.Mul(0.5 * h)}
	b.rot = b.rot.Add(spin.Mul(b.rot)).Normalize()
}

// worldInvInertia applies R * I^-1 * R^T to a world vector
func (b *Body) worldInvInertia(v mgl64.Vec3) mgl64.Vec3 {
	local := b.rot.Conjugate().Rotate(v)
	local = mgl64.Vec3{
		local.X() * b.invInertia.X(),
		local.Y() * b.invInertia.Y(),
		local.Z() * b.invInertia.Z(),
	}
	return b.rot.Rotate(local)
}

func (b *Body) clearForces() {
	b.force = mgl64.Vec3{}
	b.torque = mgl64.Vec3{}
}
