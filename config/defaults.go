package config

import (
	"github.com/spf13/viper"

	"github.com/lixenwraith/vehicle-sim/parameter"
)

func key(t, v, in, out float64) map[string]any {
	return map[string]any{"time": t, "value": v, "in_tangent": in, "out_tangent": out}
}

func wheel(name string, x, z float64, powered, steering bool) map[string]any {
	return map[string]any{
		"name":          name,
		"position":      []float64{x, parameter.WheelMountDepth, z},
		"radius":        parameter.WheelRadius,
		"rest_length":   parameter.WheelRestLength,
		"spring_travel": parameter.WheelSpringTravel,
		"powered":       powered,
		"steering":      steering,
	}
}

// setDefaults mirrors vehicle.DefaultAttributes and recovery.DefaultConfig
func setDefaults(v *viper.Viper) {
	v.SetDefault("vehicle.drivable_layers", []string{"drivable"})
	v.SetDefault("vehicle.airborne_correction_force", parameter.AirborneCorrectionForce)
	v.SetDefault("vehicle.motor_power", parameter.MotorPower)
	v.SetDefault("vehicle.max_speed", parameter.MaxSpeed)
	v.SetDefault("vehicle.power_curve", []map[string]any{key(0, 1, 0, 0), key(1, 0, -2, 0)})
	v.SetDefault("vehicle.spring_stiffness", parameter.SpringStiffness)
	v.SetDefault("vehicle.damper_stiffness", parameter.DamperStiffness)
	v.SetDefault("vehicle.visual_wheel_move_speed", parameter.VisualWheelMoveSpeed)
	v.SetDefault("vehicle.max_steer_angle", parameter.MaxSteerAngle)
	v.SetDefault("vehicle.steer_speed", parameter.SteerSpeed)
	v.SetDefault("vehicle.steer_force", parameter.SteerForce)
	v.SetDefault("vehicle.steering_strength_curve", []map[string]any{key(0, 1, -0.6, -0.6), key(1, 0.4, -0.6, -0.6)})
	v.SetDefault("vehicle.wheel_skid_threshold", parameter.WheelSkidThreshold)
	v.SetDefault("vehicle.grip_curve", []map[string]any{key(0, 1, -0.4, -0.4), key(1, 0.6, -0.4, -0.4)})

	v.SetDefault("wheels", []map[string]any{
		wheel("front_left", -parameter.WheelTrackHalf, parameter.WheelBaseFront, false, true),
		wheel("front_right", parameter.WheelTrackHalf, parameter.WheelBaseFront, false, true),
		wheel("rear_left", -parameter.WheelTrackHalf, parameter.WheelBaseRear, true, false),
		wheel("rear_right", parameter.WheelTrackHalf, parameter.WheelBaseRear, true, false),
	})

	v.SetDefault("recovery.upside_down_roll_delay", parameter.UpsideDownRollDelay)
	v.SetDefault("recovery.time_to_lift", parameter.TimeToLift)
	v.SetDefault("recovery.time_to_roll", parameter.TimeToRoll)
	v.SetDefault("recovery.lift_height", parameter.LiftHeight)
	v.SetDefault("recovery.lift_curve", []map[string]any{key(0, 0, 0, 0), key(1, 1, 0, 0)})
	v.SetDefault("recovery.roll_curve", []map[string]any{key(0, 0, 0, 0), key(1, 1, 0, 0)})

	v.SetDefault("sim.physics_tick", parameter.PhysicsTickInterval)
	v.SetDefault("sim.frame_interval", parameter.FrameUpdateInterval)
	v.SetDefault("sim.max_catch_up", parameter.MaxCatchUpTicks)
	v.SetDefault("sim.parallel_wheels", false)
	v.SetDefault("sim.gravity", parameter.Gravity)
	v.SetDefault("sim.ground_height", 0.0)

	v.SetDefault("log.level", parameter.DefaultLogLevel)
	v.SetDefault("log.console", true)

	v.SetDefault("audio.enabled", false)
	v.SetDefault("audio.volume", parameter.AudioMasterVolume)
}
