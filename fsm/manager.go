// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package fsm

import "github.com/probechain/kaubo/token"

// runtimeInfo tracks one registered Machine's progress through the current
// token attempt (spec.md §3 "Machine Runtime Info").
type runtimeInfo struct {
	machine     *Machine
	matchLength int
	isActive    bool
	hasAccepted bool
}

// Manager runs every registered Machine in parallel over the same byte
// stream and, once none can usefully continue, selects the single winning
// machine by longest-match-then-priority (spec.md §4.4).
type Manager struct {
	machines []*runtimeInfo
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{}
}

// AddMachine registers m and immediately activates it. The returned index
// is stable only within this Manager's registration order — the framework
// has no need to look machines up by id after registration, so unlike
// spec.md's MachineId this is just the index for debugging.
func (mgr *Manager) AddMachine(m *Machine) int {
	m.Reset()
	mgr.machines = append(mgr.machines, &runtimeInfo{machine: m, isActive: true})
	return len(mgr.machines) - 1
}

// ProcessEvent forwards b to every still-active machine. Each active
// machine either consumes the byte (its matchLength increases and
// hasAccepted latches true if it lands on an accepting state) or
// deactivates for the remainder of this token. ProcessEvent returns true
// iff at least one machine remained active after processing b.
func (mgr *Manager) ProcessEvent(b byte) bool {
	anyActive := false
	for _, ri := range mgr.machines {
		if !ri.isActive {
			continue
		}
		if ri.machine.ProcessEvent(b) {
			ri.matchLength++
			if ri.machine.IsAccepting() {
				ri.hasAccepted = true
			}
			anyActive = true
		} else {
			ri.isActive = false
		}
	}
	return anyActive
}

// SelectBestMatch returns the token kind and match length of the winning
// machine among those that have ever accepted during this token attempt:
// the one with the greatest matchLength, ties broken by the lowest
// token.Kind numeric value (spec.md §4.4, §8). ok is false if no machine
// has ever accepted.
func (mgr *Manager) SelectBestMatch() (kind token.Kind, matchLength int, ok bool) {
	var winner *runtimeInfo
	for _, ri := range mgr.machines {
		if !ri.hasAccepted {
			continue
		}
		switch {
		case winner == nil:
			winner = ri
		case ri.matchLength > winner.matchLength:
			winner = ri
		case ri.matchLength == winner.matchLength && ri.machine.Kind() < winner.machine.Kind():
			winner = ri
		}
	}
	if winner == nil {
		return 0, 0, false
	}
	return winner.machine.Kind(), winner.matchLength, true
}

// Reset resets every registered machine and reactivates all of them, ready
// for the next token attempt.
func (mgr *Manager) Reset() {
	for _, ri := range mgr.machines {
		ri.machine.Reset()
		ri.matchLength = 0
		ri.isActive = true
		ri.hasAccepted = false
	}
}

// Len returns the number of registered machines.
func (mgr *Manager) Len() int { return len(mgr.machines) }
