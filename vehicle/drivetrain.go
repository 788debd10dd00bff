package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"
)

// DriveForce is the forward push of one wheel, zero for unpowered or airborne wheels
func DriveForce(a Anchor, rig WheelRig, c WheelContact, attrs Attributes, throttle, speedRatio float64) mgl64.Vec3 {
	if !rig.Powered || !c.Grounded || throttle == 0 {
		return mgl64.Vec3{}
	}
	return a.Forward().Mul(throttle * attrs.MotorPower * attrs.PowerCurve.Evaluate(speedRatio))
}
