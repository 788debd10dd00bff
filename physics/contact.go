package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vehicle-sim/parameter"
	"github.com/lixenwraith/vehicle-sim/vmath"
)

// maxHullPenetration bounds how far below a surface top a hull point may be and still be pushed up
// Deeper points are treated as beside the block, not on it
const maxHullPenetration = 0.5

// frictionSlipFloor is the tangential speed below which friction fades linearly to zero
const frictionSlipFloor = 0.1

// HullContact is the tuning for penalty contact between hull points and the scene
type HullContact struct {
	Stiffness float64
	Damping   float64
	Friction  float64
}

// DefaultHullContact returns the stock penalty tuning
func DefaultHullContact() HullContact {
	return HullContact{
		Stiffness: parameter.HullContactStiffness,
		Damping:   parameter.HullContactDamping,
		Friction:  parameter.HullFriction,
	}
}

// Apply pushes penetrating hull points out of the scene and returns how many touched
// Kinematic bodies are skipped
func (hc HullContact) Apply(b *Body, s *Scene) int {
	if b.Kinematic() {
		return 0
	}

	touching := 0
	for _, p := range b.HullPoints() {
		surface := s.SurfaceHeight(p.X(), p.Z(), p.Y()+maxHullPenetration)
		depth := surface - p.Y()
		if depth <= 0 {
			continue
		}
		touching++

		v := b.PointVelocity(p)
		normal := hc.Stiffness*depth - hc.Damping*v.Y()
		if normal <= 0 {
			continue
		}

		force := vmath.WorldUp.Mul(normal)
		tangent := vmath.V3Flatten(v)
		if speed := tangent.Len(); speed > vmath.Epsilon {
			scale := math.Min(speed/frictionSlipFloor, 1)
			force = force.Add(tangent.Mul(-hc.Friction * normal * scale / speed))
		}
		b.AddForceAtPoint(force, p)
	}
	return touching
}

// GravityVector is the stock downward acceleration
func GravityVector() mgl64.Vec3 {
	return mgl64.Vec3{0, parameter.Gravity, 0}
}
