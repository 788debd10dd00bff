package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"
)

// VelocityProbe reads the world velocity of a point rigidly attached to a body
type VelocityProbe interface {
	PointVelocity(point mgl64.Vec3) mgl64.Vec3
}

// RigidBody is the single body the controller drives
// Force and torque calls accumulate until the owner integrates the body
type RigidBody interface {
	VelocityProbe

	Position() mgl64.Vec3
	Rotation() mgl64.Quat
	LinearVelocity() mgl64.Vec3
	// CenterOfMass is in world space
	CenterOfMass() mgl64.Vec3

	AddForce(force mgl64.Vec3)
	AddForceAtPoint(force, point mgl64.Vec3)
	AddTorque(torque mgl64.Vec3)

	// SetKinematic suspends physics-driven motion while true
	SetKinematic(kinematic bool)
}

// LayerMask selects surface layers, bit i set means layer i is included
type LayerMask uint32

// AllLayers matches every surface
const AllLayers LayerMask = ^LayerMask(0)

// Includes reports whether any layer bit of layer is in the mask
func (m LayerMask) Includes(layer LayerMask) bool {
	return m&layer != 0
}

// RaycastHit describes the first surface crossed by a ray
type RaycastHit struct {
	Distance float64
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Layer    LayerMask
}

// SceneQuery casts rays against scene geometry
// Implementations used with WithParallelWheels must be safe for concurrent calls
type SceneQuery interface {
	// Raycast returns the nearest hit within maxDistance along the unit direction, filtered by mask
	Raycast(origin, direction mgl64.Vec3, maxDistance float64, mask LayerMask) (RaycastHit, bool)
}

// InputSource provides the normalized 2D move vector, X steer and Y throttle, each in [-1, 1]
type InputSource interface {
	Move() mgl64.Vec2
}

// InputFunc adapts a function to InputSource
type InputFunc func() mgl64.Vec2

// Move calls f
func (f InputFunc) Move() mgl64.Vec2 { return f() }
