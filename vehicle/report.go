package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Mode is the force application branch taken on a tick
type Mode uint8

const (
	ModeSuspended Mode = iota
	ModeGrounded
	ModeAirborne
)

var modeNames = [...]string{
	ModeSuspended: "suspended",
	ModeGrounded:  "grounded",
	ModeAirborne:  "airborne",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// WheelReport is the per-wheel diagnostic and effects output of the last tick
type WheelReport struct {
	Name         string
	Grounded     bool
	HitPoint     mgl64.Vec3
	WheelCenter  mgl64.Vec3
	// VisualTarget is anchor-local, vertical only
	VisualTarget mgl64.Vec3
	// VisualOffset is the smoothed mesh offset after the last frame
	VisualOffset mgl64.Vec3
	SteerAngle   float64

	Compression     float64
	Slip            float64
	SuspensionForce mgl64.Vec3
	SteerForce      mgl64.Vec3
	DriveForce      mgl64.Vec3

	Skidding  bool
	SkidPoint mgl64.Vec3
}

// Report is a snapshot of the controller after the last tick and frame
type Report struct {
	Tick          uint64
	Mode          Mode
	Speed         float64
	SpeedRatio    float64
	CenterOfMass  mgl64.Vec3
	GroundedCount int
	Input         DriveInput
	Stabilizer    Stabilizer
	Wheels        []WheelReport
}

// Skids returns the world positions of every skidding wheel
func (r Report) Skids() []mgl64.Vec3 {
	var pts []mgl64.Vec3
	for _, w := range r.Wheels {
		if w.Skidding {
			pts = append(pts, w.SkidPoint)
		}
	}
	return pts
}

func (r Report) clone() Report {
	r.Wheels = append([]WheelReport(nil), r.Wheels...)
	return r
}
