package parameter

// Vehicle Power
const (
	MotorPower = 220.0
	MaxSpeed   = 16.0
)

// Vehicle Suspension
const (
	SpringStiffness = 300.0
	DamperStiffness = 160.0

	// VisualWheelMoveSpeed is the rate the wheel mesh follows its suspension target
	VisualWheelMoveSpeed = 70.0
)

// Vehicle Steering
const (
	// MaxSteerAngle is in degrees
	MaxSteerAngle = 20.0
	// SteerSpeed is the steer interpolation rate per second
	SteerSpeed = 10.0
	// SteerForce scales the lateral slip correction
	SteerForce = 40.0
)

// Vehicle Traction
const (
	// WheelSkidThreshold is the lateral slip speed above which a grounded wheel skids, range [3, 10]
	WheelSkidThreshold    = 5.0
	WheelSkidThresholdMin = 3.0
	WheelSkidThresholdMax = 10.0
)

// Airborne
const (
	AirborneCorrectionForce = 70.0
)

// Input
const (
	// InputDeadzone is the axis magnitude below which throttle and steer read zero
	InputDeadzone = 0.2
)

// Wheel Defaults
const (
	WheelRadius       = 0.3
	WheelRestLength   = 0.5
	WheelSpringTravel = 0.25
)

// Default four-wheel layout relative to body origin
const (
	WheelTrackHalf  = 0.8
	WheelBaseFront  = 1.2
	WheelBaseRear   = -1.1
	WheelMountDepth = 0.0
)
