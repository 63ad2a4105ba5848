// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package lexer

import (
	"testing"

	"github.com/probechain/kaubo/token"
	"github.com/stretchr/testify/assert"
)

func runMachine(t *testing.T, m interface {
	ProcessEvent(byte) bool
	IsAccepting() bool
}, input string) (ok bool, accepted bool) {
	t.Helper()
	ok = true
	for _, b := range []byte(input) {
		if !m.ProcessEvent(b) {
			ok = false
			break
		}
	}
	return ok, m.IsAccepting()
}

func TestSingleSymbol(t *testing.T) {
	m := SingleSymbol(token.Kind(1), '+')
	ok, accepted := runMachine(t, m, "+")
	assert.True(t, ok)
	assert.True(t, accepted)
}

func TestDoubleSymbol(t *testing.T) {
	m := DoubleSymbol(token.Kind(1), [2]byte{'=', '='})
	ok, accepted := runMachine(t, m, "==")
	assert.True(t, ok)
	assert.True(t, accepted)

	m2 := DoubleSymbol(token.Kind(1), [2]byte{'=', '='})
	ok2, _ := runMachine(t, m2, "=x")
	assert.False(t, ok2)
}

func TestKeywordExactMatchOnly(t *testing.T) {
	m := Keyword(token.Kind(1), "var")
	ok, accepted := runMachine(t, m, "var")
	assert.True(t, ok)
	assert.True(t, accepted)

	m2 := Keyword(token.Kind(1), "var")
	_, accepted2 := runMachine(t, m2, "va")
	assert.False(t, accepted2, "partial keyword prefix must not accept")
}

func TestIntegerAcceptsDigitsOnly(t *testing.T) {
	m := Integer(token.Kind(1))
	ok, accepted := runMachine(t, m, "1234")
	assert.True(t, ok)
	assert.True(t, accepted)

	m2 := Integer(token.Kind(1))
	ok2, _ := runMachine(t, m2, "a")
	assert.False(t, ok2)
}

func TestFloatRequiresDigitsOnBothSidesOfDot(t *testing.T) {
	m := Float(token.Kind(1))
	ok, accepted := runMachine(t, m, "3.14")
	assert.True(t, ok)
	assert.True(t, accepted)

	m2 := Float(token.Kind(1))
	_, accepted2 := runMachine(t, m2, "3.")
	assert.False(t, accepted2, "a trailing dot with no following digit must not accept")
}

func TestIdentifierAcceptsUnicodeStart(t *testing.T) {
	m := Identifier(token.Kind(1))
	ok, accepted := runMachine(t, m, "你好")
	assert.True(t, ok)
	assert.True(t, accepted)
}

func TestStringRejectsUnmatchedQuote(t *testing.T) {
	m := String(token.Kind(1), '"')
	ok, accepted := runMachine(t, m, `"hello"`)
	assert.True(t, ok)
	assert.True(t, accepted)
}

func TestLineCommentStopsBeforeNewlineConceptually(t *testing.T) {
	m := LineComment(token.Kind(1))
	ok, accepted := runMachine(t, m, "// hello world")
	assert.True(t, ok)
	assert.True(t, accepted)

	m2 := LineComment(token.Kind(1))
	ok2, _ := runMachine(t, m2, "// hello\n")
	assert.False(t, ok2, "the newline must not be consumed by the comment")
}

func TestBlockCommentHandlesStarsInBody(t *testing.T) {
	m := BlockComment(token.Kind(1))
	ok, accepted := runMachine(t, m, "/* a * b **/")
	assert.True(t, ok)
	assert.True(t, accepted)
}

func TestNewlineAcceptsCRLFAndLF(t *testing.T) {
	m := Newline(token.Kind(1))
	ok, accepted := runMachine(t, m, "\r\n")
	assert.True(t, ok)
	assert.True(t, accepted)

	m2 := Newline(token.Kind(1))
	ok2, accepted2 := runMachine(t, m2, "\n")
	assert.True(t, ok2)
	assert.True(t, accepted2)
}
