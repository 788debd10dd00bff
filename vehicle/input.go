package vehicle

import (
	"math"

	"github.com/lixenwraith/vehicle-sim/parameter"
	"github.com/lixenwraith/vehicle-sim/vmath"
)

// AxisSign collapses an analog axis to -1, 0 or 1 with a symmetric deadzone
func AxisSign(v, deadzone float64) float64 {
	if math.Abs(v) > deadzone {
		return vmath.Sign(v)
	}
	return 0
}

// DriveInput is the digital throttle and steer derived from one input sample
type DriveInput struct {
	Throttle float64
	Steer    float64
}

func sampleInput(src InputSource) DriveInput {
	if src == nil {
		return DriveInput{}
	}
	mv := src.Move()
	return DriveInput{
		Throttle: AxisSign(mv.Y(), parameter.InputDeadzone),
		Steer:    AxisSign(mv.X(), parameter.InputDeadzone),
	}
}
