package fsm

import "fmt"

// AddState adds a node to the machine
// Must be called before CompilePaths
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	node := &Node[T]{
		ID:          id,
		Name:        name,
		ParentID:    parentID,
		Transitions: make([]Transition[T], 0),
		OnEnter:     make([]ActionFunc[T], 0),
		OnUpdate:    make([]ActionFunc[T], 0),
		OnExit:      make([]ActionFunc[T], 0),
	}
	m.nodes[id] = node
	m.compiled = false
	return node
}

// AddTransition adds a transition to a specific node
func (m *Machine[T]) AddTransition(sourceID, targetID StateID, guard GuardFunc[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, Transition[T]{TargetID: targetID, Guard: guard})
	}
}

// Enter appends OnEnter actions
func (n *Node[T]) Enter(fns ...ActionFunc[T]) *Node[T] {
	n.OnEnter = append(n.OnEnter, fns...)
	return n
}

// Tick appends OnUpdate actions
func (n *Node[T]) Tick(fns ...ActionFunc[T]) *Node[T] {
	n.OnUpdate = append(n.OnUpdate, fns...)
	return n
}

// Exit appends OnExit actions
func (n *Node[T]) Exit(fns ...ActionFunc[T]) *Node[T] {
	n.OnExit = append(n.OnExit, fns...)
	return n
}

// CompilePaths calculates the Path slice for every node in the graph
// Must be called after all nodes are added and before Init, Init calls it if needed
func (m *Machine[T]) CompilePaths() error {
	for id, node := range m.nodes {
		path := make([]StateID, 0, 4)
		curr := node

		// Walk up to root
		for curr != nil {
			path = append(path, curr.ID)
			if curr.ParentID == StateNone {
				break
			}
			parentID := curr.ParentID
			var ok bool
			curr, ok = m.nodes[parentID]
			if !ok {
				return fmt.Errorf("node %d references missing parent %d", id, parentID)
			}
			if len(path) > len(m.nodes) {
				return fmt.Errorf("node %d has a parent cycle", id)
			}
		}

		// Reverse to get [Root, ..., Leaf]
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}

		node.Path = path
	}

	for id, node := range m.nodes {
		for _, t := range node.Transitions {
			if _, ok := m.nodes[t.TargetID]; !ok {
				return fmt.Errorf("node %d transitions to missing state %d", id, t.TargetID)
			}
		}
	}

	m.compiled = true
	return nil
}
