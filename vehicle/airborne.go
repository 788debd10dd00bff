package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vehicle-sim/vmath"
)

// Stabilizer is the orientation correction applied when no wheel touches ground
type Stabilizer struct {
	RollError  float64
	PitchError float64
	Torque     mgl64.Vec3
	Force      mgl64.Vec3
}

// Stabilize levels a body of rotation rot toward world up and pushes it down with force magnitude correction
func Stabilize(rot mgl64.Quat, correction float64) Stabilizer {
	right := vmath.Right(rot)
	forward := vmath.Forward(rot)

	roll := right.Mul(-1).Dot(vmath.WorldUp)
	pitch := forward.Dot(vmath.WorldUp)

	torque := forward.Mul(roll * correction * 0.5).Add(right.Mul(pitch * correction))

	return Stabilizer{
		RollError:  roll,
		PitchError: pitch,
		Torque:     torque,
		Force:      vmath.WorldDown.Mul(correction),
	}
}
