// Command vehicle-sim runs the vehicle headless under scripted input and logs telemetry
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vehicle-sim/config"
	"github.com/lixenwraith/vehicle-sim/logging"
	"github.com/lixenwraith/vehicle-sim/sim"
	"github.com/lixenwraith/vehicle-sim/vehicle"
)

var (
	configFlag   = flag.String("config", "", "TOML configuration file, defaults when empty")
	durationFlag = flag.Duration("duration", 10*time.Second, "Simulated time to run")
	throttleFlag = flag.Float64("throttle", 1, "Throttle axis in [-1, 1]")
	steerFlag    = flag.Float64("steer", 0, "Steer axis in [-1, 1]")
	flipFlag     = flag.Duration("flip", -1, "Flip the vehicle at this sim time, negative disables")
	realtimeFlag = flag.Bool("realtime", false, "Pace frames against the wall clock")
	logFileFlag  = flag.String("log-file", "", "Also write JSON logs to this file")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vehicle-sim: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}

	if cfg.Sim.FrameInterval <= 0 {
		return fmt.Errorf("%w: frame interval must be positive, got %v", config.ErrInvalid, cfg.Sim.FrameInterval)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	world, err := sim.NewWorld(cfg,
		sim.WithLogger(logger),
		sim.WithInput(vehicle.InputFunc(scriptedInput(*steerFlag, *throttleFlag))),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := newRunner(world, script{
		Duration: *durationFlag,
		Frame:    cfg.Sim.FrameInterval,
		Throttle: *throttleFlag,
		Steer:    *steerFlag,
		FlipAt:   *flipFlag,
		Realtime: *realtimeFlag,
	}, logger)

	sum, err := r.run(ctx)
	logger.Info().
		Uint64("frames", sum.Frames).
		Uint64("ticks", sum.Ticks).
		Dur("dropped", sum.Dropped).
		Float64("distance", sum.Distance).
		Int("landings", sum.Landings).
		Int("recoveries", sum.Recoveries).
		Bool("upright", sum.Upright).
		Msg("run finished")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newLogger(cfg *config.File) (zerolog.Logger, func(), error) {
	if *logFileFlag == "" {
		l, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Console)
		return l, func() {}, err
	}

	f, err := os.OpenFile(*logFileFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}
	l, err := logging.Tee(os.Stderr, f, cfg.Log.Level)
	if err != nil {
		f.Close()
		return zerolog.Nop(), nil, err
	}
	return l, func() { f.Close() }, nil
}
