package recovery

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vehicle-sim/parameter"
	"github.com/lixenwraith/vehicle-sim/vmath"
)

var (
	// ErrNilPose is returned when no transform is supplied to drive
	ErrNilPose = errors.New("recovery: pose is required")

	// ErrNilSuspender is returned when no simulation step is supplied to suspend
	ErrNilSuspender = errors.New("recovery: suspender is required")

	// ErrInvalidConfig wraps every timing and curve validation failure
	ErrInvalidConfig = errors.New("recovery: invalid configuration")
)

// Pose is read-write access to the recovered body's transform
type Pose interface {
	Position() mgl64.Vec3
	Rotation() mgl64.Quat
	SetPosition(p mgl64.Vec3)
	SetRotation(q mgl64.Quat)
}

// Suspender is the force pipeline paused for the duration of a sequence
type Suspender interface {
	SetEnabled(enabled bool)
}

// Config is the recovery timing and easing
type Config struct {
	UpsideDownRollDelay time.Duration
	TimeToLift          time.Duration
	TimeToRoll          time.Duration
	LiftHeight          float64

	// Curves map phase completion [0, 1] to interpolation progress
	LiftCurve vmath.Curve
	RollCurve vmath.Curve
}

// DefaultConfig returns the stock three second wait, one second lift and two second roll
func DefaultConfig() Config {
	return Config{
		UpsideDownRollDelay: parameter.UpsideDownRollDelay,
		TimeToLift:          parameter.TimeToLift,
		TimeToRoll:          parameter.TimeToRoll,
		LiftHeight:          parameter.LiftHeight,
		LiftCurve:           vmath.EaseInOut(0, 0, 1, 1),
		RollCurve:           vmath.EaseInOut(0, 0, 1, 1),
	}
}

// Validate rejects phases that never complete
func (c Config) Validate() error {
	switch {
	case c.UpsideDownRollDelay < 0:
		return fmt.Errorf("%w: roll delay must not be negative, got %v", ErrInvalidConfig, c.UpsideDownRollDelay)
	case c.TimeToLift <= 0:
		return fmt.Errorf("%w: time to lift must be positive, got %v", ErrInvalidConfig, c.TimeToLift)
	case c.TimeToRoll <= 0:
		return fmt.Errorf("%w: time to roll must be positive, got %v", ErrInvalidConfig, c.TimeToRoll)
	}
	if err := c.LiftCurve.Validate(); err != nil {
		return fmt.Errorf("%w: lift curve: %v", ErrInvalidConfig, err)
	}
	if err := c.RollCurve.Validate(); err != nil {
		return fmt.Errorf("%w: roll curve: %v", ErrInvalidConfig, err)
	}
	return nil
}
