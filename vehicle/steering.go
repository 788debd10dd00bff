package vehicle

import (
	"time"

	"github.com/lixenwraith/vehicle-sim/vmath"
)

// TargetSteerAngle is the yaw in degrees steering wheels turn toward, softened with speed
func TargetSteerAngle(attrs Attributes, steer, speedRatio float64) float64 {
	return attrs.MaxSteerAngle * steer * attrs.SteeringStrengthCurve.Evaluate(speedRatio)
}

// TurnWheel moves a wheel's local yaw toward target along the shortest arc
// The result is wrapped to (-180, 180]
func TurnWheel(current, target, steerSpeed float64, dt time.Duration) float64 {
	next := vmath.LerpAngle(current, target, steerSpeed*dt.Seconds())
	return vmath.DeltaAngle(0, next)
}
