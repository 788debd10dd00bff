package recovery

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vehicle-sim/engine/fsm"
	"github.com/lixenwraith/vehicle-sim/parameter"
	"github.com/lixenwraith/vehicle-sim/vmath"
)

// State is a recovery phase
type State fsm.StateID

const (
	StateRightSideUp State = iota + 10
	StateUpsideDownWaitingForDelay
	stateRecovering
	StateLifting
	StateRolling
)

func (s State) String() string {
	switch s {
	case StateRightSideUp:
		return "RightSideUp"
	case StateUpsideDownWaitingForDelay:
		return "UpsideDownWaitingForDelay"
	case stateRecovering:
		return "Recovering"
	case StateLifting:
		return "Lifting"
	case StateRolling:
		return "Rolling"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Option configures a Recovery
type Option func(*Recovery)

// WithLogger attaches a logger, default is zerolog.Nop
func WithLogger(l zerolog.Logger) Option {
	return func(r *Recovery) { r.logger = l }
}

// Recovery watches a body's orientation on the visual clock and scripts a lift then roll
// once it has stayed upside down for the configured delay
// Lifting and Rolling share a parent state whose entry suspends the force pipeline and whose exit resumes it
type Recovery struct {
	cfg    Config
	pose   Pose
	sim    Suspender
	logger zerolog.Logger

	machine *fsm.Machine[*Recovery]
	metrics *instruments

	// Phase scratch, reset on every phase entry
	timer     time.Duration
	startPos  mgl64.Vec3
	targetPos mgl64.Vec3
	startRot  mgl64.Quat
	targetRot mgl64.Quat
}

// New builds the machine and enters RightSideUp
func New(cfg Config, pose Pose, sim Suspender, opts ...Option) (*Recovery, error) {
	if pose == nil {
		return nil, ErrNilPose
	}
	if sim == nil {
		return nil, ErrNilSuspender
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	metrics, err := newInstruments()
	if err != nil {
		return nil, fmt.Errorf("recovery metrics: %w", err)
	}

	r := &Recovery{
		cfg:     cfg,
		pose:    pose,
		sim:     sim,
		logger:  zerolog.Nop(),
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.machine = buildMachine()
	if err := r.machine.Init(r, fsm.StateID(StateRightSideUp)); err != nil {
		return nil, fmt.Errorf("recovery machine: %w", err)
	}
	return r, nil
}

func buildMachine() *fsm.Machine[*Recovery] {
	m := fsm.NewMachine[*Recovery]()

	m.AddState(fsm.StateRoot, "Root", fsm.StateNone)

	m.AddState(id(StateRightSideUp), StateRightSideUp.String(), fsm.StateRoot).
		Enter((*Recovery).resetTimer, logPhase(StateRightSideUp)).
		Tick((*Recovery).watch)

	m.AddState(id(StateUpsideDownWaitingForDelay), StateUpsideDownWaitingForDelay.String(), fsm.StateRoot).
		Enter(logPhase(StateUpsideDownWaitingForDelay)).
		Tick((*Recovery).watch)

	m.AddState(id(stateRecovering), stateRecovering.String(), fsm.StateRoot).
		Enter((*Recovery).suspend).
		Exit((*Recovery).resume)

	m.AddState(id(StateLifting), StateLifting.String(), id(stateRecovering)).
		Enter((*Recovery).beginLift, logPhase(StateLifting)).
		Tick((*Recovery).lift).
		Exit((*Recovery).clearScratch)

	m.AddState(id(StateRolling), StateRolling.String(), id(stateRecovering)).
		Enter((*Recovery).beginRoll, logPhase(StateRolling)).
		Tick((*Recovery).roll).
		Exit((*Recovery).clearScratch)

	// Delay reached on the first upside-down frame skips the wait state
	m.AddTransition(id(StateRightSideUp), id(StateLifting), (*Recovery).delayElapsed)
	m.AddTransition(id(StateRightSideUp), id(StateUpsideDownWaitingForDelay), (*Recovery).UpsideDown)

	m.AddTransition(id(StateUpsideDownWaitingForDelay), id(StateRightSideUp), (*Recovery).rightedItself)
	m.AddTransition(id(StateUpsideDownWaitingForDelay), id(StateLifting), (*Recovery).delayElapsed)

	m.AddTransition(id(StateLifting), id(StateRolling), (*Recovery).liftDone)
	m.AddTransition(id(StateRolling), id(StateRightSideUp), (*Recovery).rollDone)

	return m
}

func id(s State) fsm.StateID { return fsm.StateID(s) }

func logPhase(s State) fsm.ActionFunc[*Recovery] {
	return func(r *Recovery, _ time.Duration) {
		r.logger.Info().Str("phase", s.String()).Msg("recovery phase")
	}
}

// Update advances the machine by one visual frame
func (r *Recovery) Update(dt time.Duration) {
	r.machine.Update(r, dt)
}

// Cancel aborts any wait or sequence and returns to RightSideUp
// A suspended force pipeline is resumed exactly once
func (r *Recovery) Cancel() {
	if r.State() == StateRightSideUp {
		return
	}
	if r.Active() {
		inc(r.metrics.cancelled)
	}
	r.logger.Info().Str("from", r.State().String()).Msg("recovery cancelled")
	r.machine.Force(r, id(StateRightSideUp))
}

// State returns the active phase
func (r *Recovery) State() State {
	return State(r.machine.ActiveState())
}

// Active reports whether a lift or roll is in progress
func (r *Recovery) Active() bool {
	return r.machine.IsIn(id(stateRecovering))
}

// Timer is the time accumulated in the current phase
func (r *Recovery) Timer() time.Duration {
	return r.timer
}

// UpsideDown reports whether the body's up axis points mostly at the ground
func (r *Recovery) UpsideDown() bool {
	return vmath.Up(r.pose.Rotation()).Dot(vmath.WorldDown) > parameter.UpsideDownThreshold
}

// --- Guards ---

func (r *Recovery) rightedItself() bool { return !r.UpsideDown() }

func (r *Recovery) delayElapsed() bool {
	return r.UpsideDown() && r.timer >= r.cfg.UpsideDownRollDelay
}

func (r *Recovery) liftDone() bool { return r.timer >= r.cfg.TimeToLift }

func (r *Recovery) rollDone() bool { return r.timer >= r.cfg.TimeToRoll }

// --- Actions ---

func (r *Recovery) resetTimer(_ time.Duration) {
	r.timer = 0
}

// watch accumulates upside-down time, any upright frame resets it
func (r *Recovery) watch(dt time.Duration) {
	if r.UpsideDown() {
		r.timer += dt
		return
	}
	r.timer = 0
}

func (r *Recovery) suspend(_ time.Duration) {
	r.sim.SetEnabled(false)
	inc(r.metrics.started)
	r.logger.Info().
		Dur("upside_down_for", r.timer).
		Msg("recovery started, vehicle suspended")
}

func (r *Recovery) resume(_ time.Duration) {
	r.sim.SetEnabled(true)
	r.logger.Info().Msg("recovery finished, vehicle resumed")
}

func (r *Recovery) beginLift(_ time.Duration) {
	r.timer = 0
	r.startPos = r.pose.Position()
	r.targetPos = r.startPos.Add(vmath.WorldUp.Mul(r.cfg.LiftHeight))
}

func (r *Recovery) lift(dt time.Duration) {
	r.timer += dt
	p := phase(r.timer, r.cfg.TimeToLift)

	pos := vmath.V3Slerp(r.startPos, r.targetPos, r.cfg.LiftCurve.Evaluate(p))
	if p >= 1 {
		pos = r.targetPos
	}
	r.pose.SetPosition(pos)
}

func (r *Recovery) beginRoll(_ time.Duration) {
	r.timer = 0
	r.startRot = r.pose.Rotation()
	r.targetRot = vmath.Upright(r.startRot)
}

func (r *Recovery) roll(dt time.Duration) {
	r.timer += dt
	p := phase(r.timer, r.cfg.TimeToRoll)

	rot := vmath.QuatSlerpShort(r.startRot, r.targetRot, r.cfg.RollCurve.Evaluate(p))
	if p >= 1 {
		rot = r.targetRot
		inc(r.metrics.completed)
	}
	r.pose.SetRotation(rot)
}

func (r *Recovery) clearScratch(_ time.Duration) {
	r.timer = 0
	r.startPos, r.targetPos = mgl64.Vec3{}, mgl64.Vec3{}
	r.startRot, r.targetRot = mgl64.Quat{}, mgl64.Quat{}
}

func phase(elapsed, total time.Duration) float64 {
	return float64(elapsed) / float64(total)
}
