// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

// Package fsm is the state-machine substrate the lexer engine drives: a
// single deterministic transition graph per token kind (Machine), and a
// Manager that runs every registered Machine in lock-step over the same
// byte stream and picks a winner by longest-match-then-priority.
package fsm

import (
	"github.com/probechain/kaubo/token"
)

// StateID identifies a state within one Machine. IDs are local to the
// Machine that issued them via AddState.
type StateID int

// Predicate decides whether a transition fires for a given byte. Predicates
// must be pure functions of the byte and whatever immutable context they
// close over (spec.md §4.3: "predicates may read-capture only immutable
// context").
type Predicate func(b byte) bool

type transition struct {
	to   StateID
	pred Predicate
}

// Machine is a single deterministic transition graph: a set of states, some
// of them accepting, and the ordered, registration-order transitions out of
// each state. Machine carries the token.Kind it recognizes, which doubles
// as its tie-break priority (spec.md §4.4: lower Kind wins ties).
type Machine struct {
	kind        token.Kind
	accepting   []bool
	transitions [][]transition
	initial     StateID
	current     StateID
	rejected    bool
}

// New creates a Machine for the given token kind with a single,
// non-accepting initial state.
func New(kind token.Kind) *Machine {
	m := &Machine{kind: kind}
	m.initial = m.AddState(false)
	m.current = m.initial
	return m
}

// Kind returns the token kind this machine recognizes.
func (m *Machine) Kind() token.Kind { return m.kind }

// AddState creates a new state and returns its ID. isAccepting marks
// whether halting in this state means the bytes consumed so far form a
// valid token.
func (m *Machine) AddState(isAccepting bool) StateID {
	id := StateID(len(m.accepting))
	m.accepting = append(m.accepting, isAccepting)
	m.transitions = append(m.transitions, nil)
	return id
}

// AddTransition registers a directed edge from "from" to "to", taken when
// pred(b) is true. Transitions out of the same state are tried in
// registration order; the first whose predicate is satisfied wins
// (spec.md §3: "the first satisfying predicate wins").
//
// AddTransition panics if from or to is not a state id this Machine issued
// — a dangling state id is a contract violation (spec.md §7.3), not a
// recoverable error.
func (m *Machine) AddTransition(from, to StateID, pred Predicate) {
	if int(from) < 0 || int(from) >= len(m.transitions) {
		violate("fsm: AddTransition: dangling from-state %d", from)
	}
	if int(to) < 0 || int(to) >= len(m.transitions) {
		violate("fsm: AddTransition: dangling to-state %d", to)
	}
	m.transitions[from] = append(m.transitions[from], transition{to: to, pred: pred})
}

// ProcessEvent scans the outgoing transitions of the current state in
// registration order. If one's predicate is satisfied by b, the machine
// advances to that transition's target state and ProcessEvent returns true.
// Otherwise the machine's current state is left unchanged and ProcessEvent
// returns false — per spec.md §4.3, a machine that rejects one byte stays
// rejected until Reset: every later call returns false as well.
func (m *Machine) ProcessEvent(b byte) bool {
	if m.rejected {
		return false
	}
	for _, t := range m.transitions[m.current] {
		if t.pred(b) {
			m.current = t.to
			return true
		}
	}
	m.rejected = true
	return false
}

// Reset restores the machine to its initial state and clears any rejection.
func (m *Machine) Reset() {
	m.current = m.initial
	m.rejected = false
}

// CurrentState returns the machine's current state id.
func (m *Machine) CurrentState() StateID { return m.current }

// IsAccepting reports whether the machine's current state is accepting.
func (m *Machine) IsAccepting() bool { return m.accepting[m.current] }

// ---------------------------------------------------------------------------
// Common predicates
// ---------------------------------------------------------------------------

// ByteEquals returns a Predicate matching exactly one byte value.
func ByteEquals(want byte) Predicate {
	return func(b byte) bool { return b == want }
}

// ByteIn returns a Predicate matching membership in a small fixed set.
func ByteIn(set ...byte) Predicate {
	return func(b byte) bool {
		for _, w := range set {
			if b == w {
				return true
			}
		}
		return false
	}
}

// ByteExcept returns a Predicate matching any byte other than exclude.
func ByteExcept(exclude byte) Predicate {
	return func(b byte) bool { return b != exclude }
}

// Any returns a Predicate that always matches.
func Any() Predicate {
	return func(b byte) bool { return true }
}
