package fsm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stateIdle StateID = iota + 2
	stateBusy
	stateWorkA
	stateWorkB
)

type probe struct {
	log  []string
	goA  bool
	goB  bool
	done bool
}

func record(msg string) ActionFunc[*probe] {
	return func(p *probe, _ time.Duration) { p.log = append(p.log, msg) }
}

func buildMachine(t *testing.T) *Machine[*probe] {
	t.Helper()
	m := NewMachine[*probe]()
	m.AddState(StateRoot, "Root", StateNone)
	m.AddState(stateIdle, "Idle", StateRoot).Enter(record("enter idle")).Exit(record("exit idle"))
	m.AddState(stateBusy, "Busy", StateRoot).Enter(record("enter busy")).Exit(record("exit busy"))
	m.AddState(stateWorkA, "WorkA", stateBusy).Enter(record("enter a")).Exit(record("exit a")).Tick(record("tick a"))
	m.AddState(stateWorkB, "WorkB", stateBusy).Enter(record("enter b")).Exit(record("exit b"))

	m.AddTransition(stateIdle, stateWorkA, func(p *probe) bool { return p.goA })
	m.AddTransition(stateWorkA, stateWorkB, func(p *probe) bool { return p.goB })
	// Parent-level transition bubbles for both children
	m.AddTransition(stateBusy, stateIdle, func(p *probe) bool { return p.done })

	require.NoError(t, m.CompilePaths())
	return m
}

func TestMachine_InitEntersChain(t *testing.T) {
	m := buildMachine(t)
	p := &probe{}
	require.NoError(t, m.Init(p, stateWorkA))

	assert.Equal(t, []string{"enter busy", "enter a"}, p.log)
	assert.Equal(t, stateWorkA, m.ActiveState())
	assert.True(t, m.IsIn(stateBusy))
	assert.True(t, m.IsIn(StateRoot))
	assert.False(t, m.IsIn(stateIdle))
}

func TestMachine_SiblingTransitionKeepsParent(t *testing.T) {
	m := buildMachine(t)
	p := &probe{goA: true}
	require.NoError(t, m.Init(p, stateIdle))

	m.Update(p, 10*time.Millisecond)
	assert.Equal(t, stateWorkA, m.ActiveState())
	assert.Equal(t, time.Duration(0), m.TimeInState())

	p.log = nil
	p.goB = true
	m.Update(p, 10*time.Millisecond)

	// Busy is the LCA so it is neither exited nor re-entered
	assert.Equal(t, []string{"tick a", "exit a", "enter b"}, p.log)
	assert.Equal(t, "WorkB", m.ActiveName())
}

func TestMachine_ParentTransitionBubbles(t *testing.T) {
	m := buildMachine(t)
	p := &probe{}
	require.NoError(t, m.Init(p, stateWorkB))

	m.Update(p, time.Second)
	assert.Equal(t, stateWorkB, m.ActiveState())
	assert.Equal(t, time.Second, m.TimeInState())

	p.log = nil
	p.done = true
	m.Update(p, time.Second)
	assert.Equal(t, []string{"exit b", "exit busy", "enter idle"}, p.log)
	assert.Equal(t, stateIdle, m.ActiveState())
}

func TestMachine_Force(t *testing.T) {
	m := buildMachine(t)
	p := &probe{}
	require.NoError(t, m.Init(p, stateWorkA))

	p.log = nil
	m.Force(p, stateIdle)
	assert.Equal(t, []string{"exit a", "exit busy", "enter idle"}, p.log)

	// Forcing the active state is a no-op
	p.log = nil
	m.Force(p, stateIdle)
	assert.Empty(t, p.log)
}

func TestMachine_Reset(t *testing.T) {
	m := buildMachine(t)
	p := &probe{goA: true}
	require.NoError(t, m.Init(p, stateIdle))
	m.Update(p, time.Millisecond)
	require.Equal(t, stateWorkA, m.ActiveState())

	p.log = nil
	require.NoError(t, m.Reset(p))
	assert.Equal(t, []string{"exit a", "exit busy", "enter idle"}, p.log)
	assert.Equal(t, stateIdle, m.ActiveState())
}

func TestMachine_CompileErrors(t *testing.T) {
	m := NewMachine[*probe]()
	m.AddState(StateRoot, "Root", StateNone)
	m.AddState(stateIdle, "Idle", stateBusy)
	assert.Error(t, m.CompilePaths())

	m = NewMachine[*probe]()
	m.AddState(StateRoot, "Root", StateNone)
	m.AddState(stateIdle, "Idle", StateRoot)
	m.AddTransition(stateIdle, stateWorkA, nil)
	assert.Error(t, m.CompilePaths())

	m = NewMachine[*probe]()
	m.AddState(StateRoot, "Root", StateNone)
	assert.Error(t, m.Init(&probe{}, stateIdle))
}
