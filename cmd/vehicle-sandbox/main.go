// Command vehicle-sandbox drives the vehicle in a top-down terminal view
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vehicle-sim/audio"
	"github.com/lixenwraith/vehicle-sim/config"
	"github.com/lixenwraith/vehicle-sim/engine"
	"github.com/lixenwraith/vehicle-sim/logging"
	"github.com/lixenwraith/vehicle-sim/parameter"
	"github.com/lixenwraith/vehicle-sim/physics"
	"github.com/lixenwraith/vehicle-sim/sim"
	"github.com/lixenwraith/vehicle-sim/vehicle"
)

const (
	skidTrailLife = 3 * time.Second
	maxTrails     = 2000
)

var (
	configFlag  = flag.String("config", "", "TOML configuration file, defaults when empty")
	audioFlag   = flag.Bool("audio", false, "Enable sound regardless of configuration")
	logFileFlag = flag.String("log-file", "", "Write logs to this file, the terminal is busy")
)

// Trail is one skid mark left on the ground
type Trail struct {
	x, z      float64
	timestamp time.Time
}

// Game owns the screen and the world, every method runs on the frame loop goroutine
type Game struct {
	screen        tcell.Screen
	width, height int
	events        chan tcell.Event

	world  *sim.World
	input  *keyInput
	report vehicle.Report
	logger zerolog.Logger

	trails []Trail

	// Audio, nil when disabled or unavailable
	player *audio.Player
	skid   *audio.SkidTone
}

func NewGame(cfg *config.File, logger zerolog.Logger) (*Game, error) {
	input := newKeyInput(nil)
	world, err := sim.NewWorld(cfg,
		sim.WithLogger(logger),
		sim.WithInput(input),
		sim.WithScene(sandboxScene(cfg.Sim.GroundHeight)),
	)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	g := &Game{
		screen: screen,
		events: make(chan tcell.Event, 100),
		world:  world,
		input:  input,
		logger: logger,
		trails: make([]Trail, 0, maxTrails),
	}
	g.width, g.height = screen.Size()

	if cfg.Audio.Enabled || *audioFlag {
		if err := g.initAudio(cfg.Audio.Volume); err != nil {
			// Non-fatal, sandbox runs without sound
			logger.Warn().Err(err).Msg("audio initialization failed")
		}
	}
	return g, nil
}

// sandboxScene is flat ground with a drivable deck and a few props the wheels ignore
func sandboxScene(ground float64) *physics.Scene {
	s := physics.NewScene(ground)
	s.AddBox(physics.Box{
		Name:  "deck",
		Min:   mgl64.Vec3{-6, ground, 18},
		Max:   mgl64.Vec3{6, ground + 0.4, 30},
		Layer: parameter.LayerDrivable,
	})
	for i, x := range []float64{-10, 10, 14} {
		s.AddBox(physics.Box{
			Name:  fmt.Sprintf("crate_%d", i),
			Min:   mgl64.Vec3{x - 1, ground, 8 + float64(i)*6},
			Max:   mgl64.Vec3{x + 1, ground + 1, 10 + float64(i)*6},
			Layer: parameter.LayerProp,
		})
	}
	return s
}

func (g *Game) initAudio(volume float64) error {
	p := audio.NewPlayer(volume)
	if err := p.Init(); err != nil {
		return err
	}
	g.player = p
	g.skid = audio.NewSkidTone(audio.SampleRate, p.Locker())
	p.Add(g.skid.Streamer())
	return nil
}

func (g *Game) frame(dt time.Duration, quit context.CancelFunc) {
drain:
	for {
		select {
		case ev := <-g.events:
			if !g.handleInput(ev) {
				quit()
				return
			}
		default:
			break drain
		}
	}

	res := g.world.Advance(dt)
	g.report = g.world.Report()

	g.updateTrails()
	g.updateAudio(res)
	g.draw()
}

func (g *Game) updateTrails() {
	now := time.Now()
	for _, p := range g.report.Skids() {
		g.trails = append(g.trails, Trail{x: p.X(), z: p.Z(), timestamp: now})
	}

	live := g.trails[:0]
	for _, t := range g.trails {
		if now.Sub(t.timestamp) < skidTrailLife {
			live = append(live, t)
		}
	}
	if len(live) > maxTrails {
		live = live[len(live)-maxTrails:]
	}
	g.trails = live
}

func (g *Game) updateAudio(res sim.FrameResult) {
	if g.player == nil {
		return
	}
	g.skid.Update(audio.SkidIntensity(g.report))
	if res.Landed {
		g.player.Add(audio.LandingThud(audio.SampleRate))
	}
	if res.RecoveryStarted {
		g.player.Add(audio.RecoveryChime(audio.SampleRate))
	}
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return false
		}
		if g.input.handle(ev) {
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'f', 'F':
			g.world.Flip()
		case 'c', 'C':
			g.world.CancelRecovery()
		case 'r', 'R':
			g.world.Reset()
			g.trails = g.trails[:0]
		}

	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
		g.screen.Sync()
	}
	return true
}

func (g *Game) run(ctx context.Context, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case g.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	loop := engine.NewLoop(nil, interval, func(dt time.Duration) {
		g.frame(dt, cancel)
	})
	return loop.Run(ctx)
}

func (g *Game) cleanup() {
	if g.player != nil {
		g.player.Close()
	}
	g.screen.Fini()
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vehicle-sandbox: %v\n", err)
		os.Exit(1)
	}

	if cfg.Sim.FrameInterval <= 0 {
		fmt.Fprintf(os.Stderr, "vehicle-sandbox: frame interval must be positive, got %v\n", cfg.Sim.FrameInterval)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vehicle-sandbox: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	game, err := NewGame(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	// Runs after cleanup has restored the terminal
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "vehicle-sandbox crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	defer game.cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := game.run(ctx, cfg.Sim.FrameInterval); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("frame loop stopped")
	}
}

func newLogger(cfg *config.File) (zerolog.Logger, func(), error) {
	if *logFileFlag == "" {
		l, err := logging.New(io.Discard, cfg.Log.Level, false)
		return l, func() {}, err
	}
	f, err := os.OpenFile(*logFileFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}
	l, err := logging.New(f, cfg.Log.Level, cfg.Log.Console)
	if err != nil {
		f.Close()
		return zerolog.Nop(), nil, err
	}
	return l, func() { f.Close() }, nil
}
