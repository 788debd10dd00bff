package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vehicle-sim/vmath"
)

// Suspend casts the wheel ray and converts the hit into a spring-damper force along world up
// Pure with respect to scene geometry and body velocity, no state is kept between calls
func Suspend(a Anchor, rig WheelRig, probe VelocityProbe, scene SceneQuery, attrs Attributes) WheelContact {
	down := a.Down()
	rayLength := rig.RayLength()

	hit, ok := scene.Raycast(a.Position, down, rayLength, attrs.DrivableMask)
	if !ok || hit.Distance > rayLength {
		return WheelContact{
			HitDistance: rayLength,
			HitPoint:    a.Position.Add(down.Mul(rayLength)),
		}
	}

	currentSpringLength := hit.Distance - rig.Radius
	compression := (rig.RestLength - currentSpringLength) / rig.SpringTravel

	springVelocity := probe.PointVelocity(a.Position).Dot(a.Up())
	dampForce := attrs.DamperStiffness * springVelocity

	springForce := compression * attrs.SpringStiffness
	netForce := springForce - dampForce

	return WheelContact{
		Grounded:        true,
		HitDistance:     hit.Distance,
		HitPoint:        hit.Point,
		Compression:     compression,
		SpringVelocity:  springVelocity,
		SuspensionForce: vmath.WorldUp.Mul(netForce),
	}
}

// VisualOffset is the anchor-local target for the wheel mesh, vertical only
func VisualOffset(a Anchor, c WheelContact, radius float64) mgl64.Vec3 {
	local := a.ToLocal(c.WheelCenter(a, radius))
	return mgl64.Vec3{0, local.Y(), 0}
}
