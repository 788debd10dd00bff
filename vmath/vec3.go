package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// World axes, Y up, Z forward, X right
var (
	WorldUp      = mgl64.Vec3{0, 1, 0}
	WorldDown    = mgl64.Vec3{0, -1, 0}
	WorldForward = mgl64.Vec3{0, 0, 1}
	WorldRight   = mgl64.Vec3{1, 0, 0}
)

// V3Flatten zeroes the vertical component
func V3Flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// V3Lerp interpolates component-wise with t clamped to [0, 1]
func V3Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)
	return a.Add(b.Sub(a).Mul(t))
}

// V3Slerp spherically interpolates between a and b treated as directions from the origin
// Angle and magnitude are interpolated separately, t is clamped to [0, 1]
// Zero-length or parallel inputs degrade to linear interpolation
func V3Slerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)

	lenA, lenB := a.Len(), b.Len()
	if lenA < Epsilon || lenB < Epsilon {
		return V3Lerp(a, b, t)
	}

	dirA := a.Mul(1 / lenA)
	dirB := b.Mul(1 / lenB)
	dot := Clamp(dirA.Dot(dirB), -1, 1)
	mag := LerpUnclamped(lenA, lenB, t)

	if dot > 1-Epsilon {
		return V3Lerp(a, b, t)
	}

	theta := math.Acos(dot) * t

	// Orthonormal partner of dirA in the a-b plane
	var rel mgl64.Vec3
	if dot < -1+Epsilon {
		rel = anyPerpendicular(dirA)
	} else {
		rel = dirB.Sub(dirA.Mul(dot)).Normalize()
	}

	dir := dirA.Mul(math.Cos(theta)).Add(rel.Mul(math.Sin(theta)))
	return dir.Mul(mag)
}

func anyPerpendicular(v mgl64.Vec3) mgl64.Vec3 {
	axis := WorldRight
	if math.Abs(v.Dot(axis)) > 0.9 {
		axis = WorldUp
	}
	return v.Cross(axis).Normalize()
}

// --- Rotations ---

// Up returns the rotated world up axis
func Up(q mgl64.Quat) mgl64.Vec3 { return q.Rotate(WorldUp) }

// Right returns the rotated world right axis
func Right(q mgl64.Quat) mgl64.Vec3 { return q.Rotate(WorldRight) }

// Forward returns the rotated world forward axis
func Forward(q mgl64.Quat) mgl64.Vec3 { return q.Rotate(WorldForward) }

// YawRotation returns a rotation of deg degrees about world up
func YawRotation(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(deg*Deg2Rad, WorldUp)
}

// Yaw extracts the heading in degrees [0, 360) of a Y-X-Z euler decomposition
// Pitch is taken in [-90, 90], so the result follows the forward axis projection
// At gimbal lock the right axis is used with roll taken as zero
func Yaw(q mgl64.Quat) float64 {
	f := Forward(q)
	if math.Hypot(f.X(), f.Z()) > 1e-6 {
		return WrapAngle(math.Atan2(f.X(), f.Z()) * Rad2Deg)
	}
	r := Right(q)
	return WrapAngle(math.Atan2(-r.Z(), r.X()) * Rad2Deg)
}

// Upright returns the rotation with pitch and roll removed and heading preserved
func Upright(q mgl64.Quat) mgl64.Quat {
	return YawRotation(Yaw(q))
}

// QuatSlerpShort interpolates along the shortest arc, t clamped to [0, 1]
func QuatSlerpShort(a, b mgl64.Quat, t float64) mgl64.Quat {
	t = Clamp01(t)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}
