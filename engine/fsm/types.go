package fsm

import (
	"time"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Machine is a generic hierarchical finite state machine runtime
// T is the context type passed to actions and guards
type Machine[T any] struct {
	// Graph data, immutable after CompilePaths
	nodes    map[StateID]*Node[T]
	compiled bool

	// InitialStateID is stored by Init for Reset
	InitialStateID StateID

	// Runtime state
	activeStateID StateID       // The current leaf node
	timeInState   time.Duration // Time elapsed in current leaf
	activePath    []StateID     // Active chain Root -> ... -> Leaf
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from Root to this node, used for LCA lookup without allocation
	Path []StateID

	// Lifecycle actions
	OnEnter  []ActionFunc[T]
	OnUpdate []ActionFunc[T]
	OnExit   []ActionFunc[T]

	// Transitions in evaluation priority order
	Transitions []Transition[T]
}

// Transition defines an automatic link evaluated on every Update
type Transition[T any] struct {
	TargetID StateID
	Guard    GuardFunc[T] // nil = always true
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect, dt is the delta of the Update that triggered it (0 outside Update)
type ActionFunc[T any] func(ctx T, dt time.Duration)
