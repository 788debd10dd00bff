package main

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vehicle-sim/engine"
	"github.com/lixenwraith/vehicle-sim/logging"
	"github.com/lixenwraith/vehicle-sim/parameter"
	"github.com/lixenwraith/vehicle-sim/recovery"
	"github.com/lixenwraith/vehicle-sim/sim"
)

// script is the scripted run driven by flags
type script struct {
	Duration time.Duration
	Frame    time.Duration
	Throttle float64
	Steer    float64
	// FlipAt turns the vehicle over once, negative disables
	FlipAt   time.Duration
	Realtime bool
}

// summary is logged when the run ends
type summary struct {
	Frames     uint64
	Ticks      uint64
	Dropped    time.Duration
	Distance   float64
	Landings   int
	Recoveries int
	Final      mgl64.Vec3
	Upright    bool
}

// runner advances a world frame by frame and logs telemetry on sim time
type runner struct {
	world  *sim.World
	script script
	logger zerolog.Logger
	// events shares the logger but caps bursts of landing lines
	events zerolog.Logger

	start         mgl64.Vec3
	flipped       bool
	nextTelemetry time.Duration
	sum           summary
}

func newRunner(w *sim.World, s script, logger zerolog.Logger) *runner {
	logger.Info().
		Dur("duration", s.Duration).
		Float64("throttle", s.Throttle).
		Float64("steer", s.Steer).
		Dur("flip_at", s.FlipAt).
		Bool("realtime", s.Realtime).
		Msg("scripted run")
	return &runner{
		world:  w,
		script: s,
		logger: logger,
		events: logging.Sampled(logger, 5, time.Second, 50),
		start:  w.Body().Position(),
	}
}

// run blocks until the scripted duration of sim time has passed or ctx ends
func (r *runner) run(ctx context.Context) (summary, error) {
	if r.script.Realtime {
		// loopCtx also ends when the script completes, ctx only on caller cancel
		loopCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		loop := engine.NewLoop(nil, r.script.Frame, func(dt time.Duration) {
			if r.frame(dt) {
				cancel()
			}
		})
		_ = loop.Run(loopCtx)
		if err := ctx.Err(); err != nil {
			return r.finish(), err
		}
		return r.finish(), nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return r.finish(), err
		}
		if r.frame(r.script.Frame) {
			return r.finish(), nil
		}
	}
}

// frame advances one frame and reports whether the script is done
func (r *runner) frame(dt time.Duration) bool {
	elapsed := r.world.Elapsed()
	if r.script.FlipAt >= 0 && !r.flipped && elapsed >= r.script.FlipAt {
		r.world.Flip()
		r.flipped = true
	}

	res := r.world.Advance(dt)
	if res.Landed {
		r.sum.Landings++
		r.events.Debug().Dur("t", r.world.Elapsed()).Msg("landed")
	}
	if res.RecoveryStarted {
		r.sum.Recoveries++
	}

	if r.world.Elapsed() >= r.nextTelemetry {
		r.telemetry()
		r.nextTelemetry += parameter.TelemetryInterval
	}
	return r.world.Elapsed() >= r.script.Duration
}

func (r *runner) telemetry() {
	rep := r.world.Report()
	pos := r.world.Body().Position()
	rec := r.world.Recovery()

	ev := r.logger.Info().
		Dur("t", r.world.Elapsed()).
		Floats64("pos", []float64{pos.X(), pos.Y(), pos.Z()}).
		Float64("speed", rep.Speed).
		Str("mode", rep.Mode.String()).
		Int("grounded", rep.GroundedCount).
		Int("skids", len(rep.Skids())).
		Str("phase", rec.State().String())
	if rec.State() != recovery.StateRightSideUp {
		ev = ev.Dur("phase_timer", rec.Timer())
	}
	ev.Msg("telemetry")
}

func (r *runner) finish() summary {
	stepper := r.world.Stepper()
	r.sum.Frames = r.world.Frames()
	r.sum.Ticks = stepper.TickCount()
	r.sum.Dropped = stepper.Dropped()
	r.sum.Final = r.world.Body().Position()
	r.sum.Distance = r.sum.Final.Sub(r.start).Len()
	r.sum.Upright = r.world.Upright()
	return r.sum
}

// scriptedInput holds the flag input constant for the whole run
func scriptedInput(steer, throttle float64) func() mgl64.Vec2 {
	return func() mgl64.Vec2 { return mgl64.Vec2{steer, throttle} }
}
