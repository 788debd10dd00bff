package vehicle

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vehicle-sim/vmath"
)

// WheelRig is the immutable geometry of one ray-sampled wheel
// LocalPosition is the ray anchor relative to the body origin in body space
type WheelRig struct {
	Name          string
	LocalPosition mgl64.Vec3
	Radius        float64
	RestLength    float64
	SpringTravel  float64
	Powered       bool
	Steering      bool
}

// MaxSuspensionLength is the spring length at full extension
func (w WheelRig) MaxSuspensionLength() float64 {
	return w.RestLength + w.SpringTravel
}

// RayLength is the scene query limit, full extension plus radius
func (w WheelRig) RayLength() float64 {
	return w.MaxSuspensionLength() + w.Radius
}

// Validate rejects geometry that divides by zero or inverts the ray
func (w WheelRig) Validate() error {
	switch {
	case w.Radius <= 0:
		return fmt.Errorf("%w: wheel %q radius must be positive, got %v", ErrInvalidConfig, w.Name, w.Radius)
	case w.RestLength < 0:
		return fmt.Errorf("%w: wheel %q rest length must not be negative, got %v", ErrInvalidConfig, w.Name, w.RestLength)
	case w.SpringTravel <= 0:
		return fmt.Errorf("%w: wheel %q spring travel must be positive, got %v", ErrInvalidConfig, w.Name, w.SpringTravel)
	}
	return nil
}

// Anchor is the world pose of a wheel's ray origin for one tick
type Anchor struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// AnchorAt places the rig on a body pose with the wheel yawed by steerDeg about its local up
func (w WheelRig) AnchorAt(bodyPos mgl64.Vec3, bodyRot mgl64.Quat, steerDeg float64) Anchor {
	return Anchor{
		Position: bodyPos.Add(bodyRot.Rotate(w.LocalPosition)),
		Rotation: bodyRot.Mul(vmath.YawRotation(steerDeg)).Normalize(),
	}
}

func (a Anchor) Up() mgl64.Vec3      { return vmath.Up(a.Rotation) }
func (a Anchor) Down() mgl64.Vec3    { return vmath.Up(a.Rotation).Mul(-1) }
func (a Anchor) Right() mgl64.Vec3   { return vmath.Right(a.Rotation) }
func (a Anchor) Forward() mgl64.Vec3 { return vmath.Forward(a.Rotation) }

// ToLocal expresses a world point in the anchor frame
func (a Anchor) ToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return a.Rotation.Conjugate().Rotate(p.Sub(a.Position))
}

// WheelContact is the suspension result of one wheel for one tick
// When Grounded is false SuspensionForce is zero and HitPoint lies at the ray's end, for display only
type WheelContact struct {
	Grounded        bool
	HitDistance     float64
	HitPoint        mgl64.Vec3
	Compression     float64
	SpringVelocity  float64
	SuspensionForce mgl64.Vec3
}

// WheelCenter is the hit point lifted by the radius along the anchor's up
func (c WheelContact) WheelCenter(a Anchor, radius float64) mgl64.Vec3 {
	return c.HitPoint.Add(a.Up().Mul(radius))
}

// WheelSample is everything the compute stage derives for one wheel
type WheelSample struct {
	Anchor   Anchor
	Contact  WheelContact
	Traction TractionResult
}
