// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package fsm

import (
	"testing"

	"github.com/probechain/kaubo/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildKeyword returns a machine that accepts exactly the literal string kw.
func buildKeyword(kind token.Kind, kw string) *Machine {
	m := New(kind)
	cur := m.CurrentState()
	for i, c := range []byte(kw) {
		var next StateID
		if i == len(kw)-1 {
			next = m.AddState(true)
		} else {
			next = m.AddState(false)
		}
		m.AddTransition(cur, next, ByteEquals(c))
		cur = next
	}
	return m
}

// buildIdentifier returns a machine accepting [a-z]+.
func buildIdentifier(kind token.Kind) *Machine {
	m := New(kind)
	accept := m.AddState(true)
	isLower := func(b byte) bool { return b >= 'a' && b <= 'z' }
	m.AddTransition(m.CurrentState(), accept, isLower)
	m.AddTransition(accept, accept, isLower)
	return m
}

func feed(mgr *Manager, s string) {
	for _, c := range []byte(s) {
		mgr.ProcessEvent(c)
	}
}

func TestManagerLongestMatchWins(t *testing.T) {
	mgr := NewManager()
	const kwTrue token.Kind = 5
	const ident token.Kind = 50
	mgr.AddMachine(buildKeyword(kwTrue, "true"))
	mgr.AddMachine(buildIdentifier(ident))

	feed(mgr, "truer")
	kind, n, ok := mgr.SelectBestMatch()
	require.True(t, ok)
	assert.Equal(t, ident, kind, "identifier machine matches 5 bytes, keyword only 4")
	assert.Equal(t, 5, n)
}

func TestManagerTieBreakByLowerKindWins(t *testing.T) {
	mgr := NewManager()
	const kwTrue token.Kind = 5
	const ident token.Kind = 50
	mgr.AddMachine(buildKeyword(kwTrue, "true"))
	mgr.AddMachine(buildIdentifier(ident))

	feed(mgr, "true")
	kind, n, ok := mgr.SelectBestMatch()
	require.True(t, ok)
	assert.Equal(t, kwTrue, kind, "equal length: lower Kind value must win")
	assert.Equal(t, 4, n)
}

func TestManagerNoWinnerWhenNothingAccepted(t *testing.T) {
	mgr := NewManager()
	mgr.AddMachine(buildKeyword(1, "true"))

	feed(mgr, "xyz")
	_, _, ok := mgr.SelectBestMatch()
	assert.False(t, ok)
}

func TestManagerProcessEventReturnsFalseWhenAllDeactivate(t *testing.T) {
	mgr := NewManager()
	mgr.AddMachine(buildKeyword(1, "if"))

	assert.True(t, mgr.ProcessEvent('i'))
	assert.False(t, mgr.ProcessEvent('x'), "no machine can continue past 'ix'")
}

func TestManagerResetReactivatesAll(t *testing.T) {
	mgr := NewManager()
	mgr.AddMachine(buildKeyword(1, "if"))

	mgr.ProcessEvent('x') // deactivates the only machine
	mgr.Reset()

	assert.True(t, mgr.ProcessEvent('i'))
	assert.True(t, mgr.ProcessEvent('f'))
	kind, n, ok := mgr.SelectBestMatch()
	require.True(t, ok)
	assert.Equal(t, token.Kind(1), kind)
	assert.Equal(t, 2, n)
}
