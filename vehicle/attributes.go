package vehicle

import (
	"fmt"

	"github.com/lixenwraith/vehicle-sim/parameter"
	"github.com/lixenwraith/vehicle-sim/vmath"
)

// Attributes holds per-session tuning, read-only to the controller
// Curves are evaluated at speed ratio and clamp outside [0, 1]
type Attributes struct {
	DrivableMask            LayerMask
	AirborneCorrectionForce float64

	MotorPower float64
	MaxSpeed   float64
	PowerCurve vmath.Curve

	SpringStiffness      float64
	DamperStiffness      float64
	VisualWheelMoveSpeed float64

	// MaxSteerAngle is in degrees
	MaxSteerAngle         float64
	SteerSpeed            float64
	SteerForce            float64
	SteeringStrengthCurve vmath.Curve

	WheelSkidThreshold float64
	GripCurve          vmath.Curve
}

// DefaultAttributes returns the stock tuning
func DefaultAttributes() Attributes {
	return Attributes{
		DrivableMask:            LayerMask(parameter.LayerDrivable),
		AirborneCorrectionForce: parameter.AirborneCorrectionForce,

		MotorPower: parameter.MotorPower,
		MaxSpeed:   parameter.MaxSpeed,
		PowerCurve: vmath.NewCurve(
			vmath.Keyframe{Time: 0, Value: 1},
			vmath.Keyframe{Time: 1, Value: 0, InTangent: -2},
		),

		SpringStiffness:      parameter.SpringStiffness,
		DamperStiffness:      parameter.DamperStiffness,
		VisualWheelMoveSpeed: parameter.VisualWheelMoveSpeed,

		MaxSteerAngle:         parameter.MaxSteerAngle,
		SteerSpeed:            parameter.SteerSpeed,
		SteerForce:            parameter.SteerForce,
		SteeringStrengthCurve: vmath.Linear(0, 1, 1, 0.4),

		WheelSkidThreshold: parameter.WheelSkidThreshold,
		GripCurve:          vmath.Linear(0, 1, 1, 0.6),
	}
}

// Validate rejects tuning that makes the force laws undefined
func (a Attributes) Validate() error {
	switch {
	case a.MaxSpeed <= 0:
		return fmt.Errorf("%w: max speed must be positive, got %v", ErrInvalidConfig, a.MaxSpeed)
	case a.SpringStiffness < 0:
		return fmt.Errorf("%w: spring stiffness must not be negative", ErrInvalidConfig)
	case a.DamperStiffness < 0:
		return fmt.Errorf("%w: damper stiffness must not be negative", ErrInvalidConfig)
	case a.SteerSpeed < 0:
		return fmt.Errorf("%w: steer speed must not be negative", ErrInvalidConfig)
	case a.WheelSkidThreshold < 0:
		return fmt.Errorf("%w: skid threshold must not be negative", ErrInvalidConfig)
	}

	curves := []struct {
		name  string
		curve vmath.Curve
	}{
		{"power curve", a.PowerCurve},
		{"steering strength curve", a.SteeringStrengthCurve},
		{"grip curve", a.GripCurve},
	}
	for _, c := range curves {
		if err := c.curve.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, c.name, err)
		}
	}
	return nil
}
