package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"

	"github.com/lixenwraith/vehicle-sim/parameter"
	"github.com/lixenwraith/vehicle-sim/recovery"
	"github.com/lixenwraith/vehicle-sim/vehicle"
	"github.com/lixenwraith/vehicle-sim/vmath"
)

// ErrInvalid wraps configuration values that cannot be converted to core types
var ErrInvalid = errors.New("config: invalid value")

// CurveKey is one keyframe of a tuning curve
type CurveKey struct {
	Time       float64 `mapstructure:"time"`
	Value      float64 `mapstructure:"value"`
	InTangent  float64 `mapstructure:"in_tangent"`
	OutTangent float64 `mapstructure:"out_tangent"`
}

// VehicleSection mirrors vehicle.Attributes
type VehicleSection struct {
	DrivableLayers          []string `mapstructure:"drivable_layers"`
	AirborneCorrectionForce float64  `mapstructure:"airborne_correction_force"`

	MotorPower float64    `mapstructure:"motor_power"`
	MaxSpeed   float64    `mapstructure:"max_speed"`
	PowerCurve []CurveKey `mapstructure:"power_curve"`

	SpringStiffness      float64 `mapstructure:"spring_stiffness"`
	DamperStiffness      float64 `mapstructure:"damper_stiffness"`
	VisualWheelMoveSpeed float64 `mapstructure:"visual_wheel_move_speed"`

	MaxSteerAngle         float64    `mapstructure:"max_steer_angle"`
	SteerSpeed            float64    `mapstructure:"steer_speed"`
	SteerForce            float64    `mapstructure:"steer_force"`
	SteeringStrengthCurve []CurveKey `mapstructure:"steering_strength_curve"`

	WheelSkidThreshold float64    `mapstructure:"wheel_skid_threshold"`
	GripCurve          []CurveKey `mapstructure:"grip_curve"`
}

// WheelSection is one [[wheels]] table
type WheelSection struct {
	Name         string    `mapstructure:"name"`
	Position     []float64 `mapstructure:"position"`
	Radius       float64   `mapstructure:"radius"`
	RestLength   float64   `mapstructure:"rest_length"`
	SpringTravel float64   `mapstructure:"spring_travel"`
	Powered      bool      `mapstructure:"powered"`
	Steering     bool      `mapstructure:"steering"`
}

// RecoverySection mirrors recovery.Config, durations accept "1.5s" style strings
type RecoverySection struct {
	UpsideDownRollDelay time.Duration `mapstructure:"upside_down_roll_delay"`
	TimeToLift          time.Duration `mapstructure:"time_to_lift"`
	TimeToRoll          time.Duration `mapstructure:"time_to_roll"`
	LiftHeight          float64       `mapstructure:"lift_height"`
	LiftCurve           []CurveKey    `mapstructure:"lift_curve"`
	RollCurve           []CurveKey    `mapstructure:"roll_curve"`
}

// SimSection is the loop timing and toggles
type SimSection struct {
	PhysicsTick    time.Duration `mapstructure:"physics_tick"`
	FrameInterval  time.Duration `mapstructure:"frame_interval"`
	MaxCatchUp     int           `mapstructure:"max_catch_up"`
	ParallelWheels bool          `mapstructure:"parallel_wheels"`
	Gravity        float64       `mapstructure:"gravity"`
	GroundHeight   float64       `mapstructure:"ground_height"`
}

// LogSection configures the root logger
type LogSection struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

// AudioSection toggles the sandbox sound effects
type AudioSection struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// File is the decoded configuration file
type File struct {
	Vehicle  VehicleSection  `mapstructure:"vehicle"`
	Wheels   []WheelSection  `mapstructure:"wheels"`
	Recovery RecoverySection `mapstructure:"recovery"`
	Sim      SimSection      `mapstructure:"sim"`
	Log      LogSection      `mapstructure:"log"`
	Audio    AudioSection    `mapstructure:"audio"`
}

// Load reads a TOML file over the defaults, an empty path yields defaults only
// Environment variables prefixed VEHICLE_ override any defaulted key
func Load(path string) (*File, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	return decode(v)
}

// FromReader decodes TOML from r over the defaults
func FromReader(r io.Reader) (*File, error) {
	v := newViper()
	v.SetConfigType("toml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return decode(v)
}

// Default returns the built-in configuration
func Default() *File {
	f, err := decode(newViper())
	if err != nil {
		panic(fmt.Sprintf("config: defaults do not decode: %v", err))
	}
	return f
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(parameter.ConfigEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*File, error) {
	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &f, nil
}

// Attributes converts and validates the vehicle section
func (f *File) Attributes() (vehicle.Attributes, error) {
	s := f.Vehicle

	mask, err := layerMask(s.DrivableLayers)
	if err != nil {
		return vehicle.Attributes{}, err
	}
	if s.WheelSkidThreshold < parameter.WheelSkidThresholdMin || s.WheelSkidThreshold > parameter.WheelSkidThresholdMax {
		return vehicle.Attributes{}, fmt.Errorf("%w: wheel_skid_threshold %v outside [%v, %v]",
			ErrInvalid, s.WheelSkidThreshold, parameter.WheelSkidThresholdMin, parameter.WheelSkidThresholdMax)
	}

	attrs := vehicle.Attributes{
		DrivableMask:            mask,
		AirborneCorrectionForce: s.AirborneCorrectionForce,
		MotorPower:              s.MotorPower,
		MaxSpeed:                s.MaxSpeed,
		PowerCurve:              curve(s.PowerCurve),
		SpringStiffness:         s.SpringStiffness,
		DamperStiffness:         s.DamperStiffness,
		VisualWheelMoveSpeed:    s.VisualWheelMoveSpeed,
		MaxSteerAngle:           s.MaxSteerAngle,
		SteerSpeed:              s.SteerSpeed,
		SteerForce:              s.SteerForce,
		SteeringStrengthCurve:   curve(s.SteeringStrengthCurve),
		WheelSkidThreshold:      s.WheelSkidThreshold,
		GripCurve:               curve(s.GripCurve),
	}
	if err := attrs.Validate(); err != nil {
		return vehicle.Attributes{}, err
	}
	return attrs, nil
}

// Rigs converts and validates the wheel tables
func (f *File) Rigs() ([]vehicle.WheelRig, error) {
	if len(f.Wheels) == 0 {
		return nil, fmt.Errorf("%w: no wheels configured", vehicle.ErrInvalidConfig)
	}
	rigs := make([]vehicle.WheelRig, 0, len(f.Wheels))
	for i, w := range f.Wheels {
		if len(w.Position) != 3 {
			return nil, fmt.Errorf("%w: wheel %d position needs 3 components, got %d", ErrInvalid, i, len(w.Position))
		}
		name := w.Name
		if name == "" {
			name = fmt.Sprintf("wheel_%d", i)
		}
		rig := vehicle.WheelRig{
			Name:          name,
			LocalPosition: mgl64.Vec3{w.Position[0], w.Position[1], w.Position[2]},
			Radius:        w.Radius,
			RestLength:    w.RestLength,
			SpringTravel:  w.SpringTravel,
			Powered:       w.Powered,
			Steering:      w.Steering,
		}
		if err := rig.Validate(); err != nil {
			return nil, err
		}
		rigs = append(rigs, rig)
	}
	return rigs, nil
}

// RecoveryConfig converts and validates the recovery section
func (f *File) RecoveryConfig() (recovery.Config, error) {
	s := f.Recovery
	cfg := recovery.Config{
		UpsideDownRollDelay: s.UpsideDownRollDelay,
		TimeToLift:          s.TimeToLift,
		TimeToRoll:          s.TimeToRoll,
		LiftHeight:          s.LiftHeight,
		LiftCurve:           curve(s.LiftCurve),
		RollCurve:           curve(s.RollCurve),
	}
	if err := cfg.Validate(); err != nil {
		return recovery.Config{}, err
	}
	return cfg, nil
}

// Gravity is the sim gravity as a vector
func (f *File) Gravity() mgl64.Vec3 {
	return mgl64.Vec3{0, f.Sim.Gravity, 0}
}

func curve(keys []CurveKey) vmath.Curve {
	frames := make([]vmath.Keyframe, len(keys))
	for i, k := range keys {
		frames[i] = vmath.Keyframe{Time: k.Time, Value: k.Value, InTangent: k.InTangent, OutTangent: k.OutTangent}
	}
	return vmath.NewCurve(frames...)
}

var layerNames = map[string]vehicle.LayerMask{
	"default":  parameter.LayerDefault,
	"drivable": parameter.LayerDrivable,
	"prop":     parameter.LayerProp,
	"all":      vehicle.AllLayers,
}

func layerMask(names []string) (vehicle.LayerMask, error) {
	if len(names) == 0 {
		return 0, fmt.Errorf("%w: drivable_layers is empty", ErrInvalid)
	}
	var mask vehicle.LayerMask
	for _, n := range names {
		bit, ok := layerNames[strings.ToLower(n)]
		if !ok {
			return 0, fmt.Errorf("%w: unknown layer %q", ErrInvalid, n)
		}
		mask |= bit
	}
	return mask, nil
}
