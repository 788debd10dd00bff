package vehicle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TractionResult is the lateral correction of one wheel for one tick
type TractionResult struct {
	Slip       float64
	SteerForce mgl64.Vec3
	Skidding   bool
}

// Traction resists sideways motion at the anchor along its right axis
// speedRatio is passed unclamped, the grip curve clamps its own domain
func Traction(a Anchor, c WheelContact, probe VelocityProbe, attrs Attributes, speedRatio float64) TractionResult {
	right := a.Right()
	slip := probe.PointVelocity(a.Position).Dot(right)

	force := right.Mul(-slip * attrs.SteerForce * attrs.GripCurve.Evaluate(speedRatio))
	force[1] = 0

	return TractionResult{
		Slip:       slip,
		SteerForce: force,
		Skidding:   c.Grounded && math.Abs(slip) > attrs.WheelSkidThreshold,
	}
}
