// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package lexer

import (
	"github.com/probechain/kaubo/fsm"
	"github.com/probechain/kaubo/token"
	"github.com/probechain/kaubo/utf8codec"
)

// SingleSymbol builds a 2-state machine that accepts exactly one byte c.
func SingleSymbol(kind token.Kind, c byte) *fsm.Machine {
	m := fsm.New(kind)
	accept := m.AddState(true)
	m.AddTransition(m.CurrentState(), accept, fsm.ByteEquals(c))
	return m
}

// DoubleSymbol builds a 3-state machine that accepts exactly the two-byte
// sequence xy, in order.
func DoubleSymbol(kind token.Kind, xy [2]byte) *fsm.Machine {
	m := fsm.New(kind)
	mid := m.AddState(false)
	accept := m.AddState(true)
	m.AddTransition(m.CurrentState(), mid, fsm.ByteEquals(xy[0]))
	m.AddTransition(mid, accept, fsm.ByteEquals(xy[1]))
	return m
}

// Keyword builds an n+1 state machine that accepts only the exact literal
// kw, one byte at a time; no intermediate state is accepting. Per spec.md
// §4.6, a keyword machine's kind must sort numerically below the
// identifier machine's kind so an equal-length tie resolves in the
// keyword's favor.
func Keyword(kind token.Kind, kw string) *fsm.Machine {
	m := fsm.New(kind)
	cur := m.CurrentState()
	bytes := []byte(kw)
	for i, c := range bytes {
		next := m.AddState(i == len(bytes)-1)
		m.AddTransition(cur, next, fsm.ByteEquals(c))
		cur = next
	}
	return m
}

// Integer builds a machine accepting one or more ASCII decimal digits.
func Integer(kind token.Kind) *fsm.Machine {
	m := fsm.New(kind)
	accept := m.AddState(true)
	m.AddTransition(m.CurrentState(), accept, utf8codec.IsDigit)
	m.AddTransition(accept, accept, utf8codec.IsDigit)
	return m
}

// Float builds a machine accepting digit+ '.' digit+: a decimal point must
// be both preceded and followed by at least one digit, so "1." and ".5"
// fall through to the Integer/Dot and Dot/Integer machines instead — a
// front-end addition over spec.md's literal set (SPEC_FULL.md §12).
func Float(kind token.Kind) *fsm.Machine {
	m := fsm.New(kind)
	intPart := m.AddState(false)
	afterDot := m.AddState(false)
	accept := m.AddState(true)
	m.AddTransition(m.CurrentState(), intPart, utf8codec.IsDigit)
	m.AddTransition(intPart, intPart, utf8codec.IsDigit)
	m.AddTransition(intPart, afterDot, fsm.ByteEquals('.'))
	m.AddTransition(afterDot, accept, utf8codec.IsDigit)
	m.AddTransition(accept, accept, utf8codec.IsDigit)
	return m
}

// Identifier builds a machine accepting id_start (id_part)*, using the
// codec's classifiers so any non-ASCII letter (any byte ≥ 0x80) can start
// or continue an identifier (spec.md §8 scenario 2).
func Identifier(kind token.Kind) *fsm.Machine {
	m := fsm.New(kind)
	accept := m.AddState(true)
	m.AddTransition(m.CurrentState(), accept, utf8codec.IsIdentifierStart)
	m.AddTransition(accept, accept, utf8codec.IsIdentifierPart)
	return m
}

// String builds a machine accepting a quote-delimited string: quote, then
// any byte except that same quote, then the matching closing quote. No
// escape processing happens at this layer (spec.md §4.6, §9 Open
// Questions) — body bytes are accepted verbatim, including a second
// distinct quote character.
func String(kind token.Kind, quote byte) *fsm.Machine {
	m := fsm.New(kind)
	body := m.AddState(false)
	accept := m.AddState(true)
	m.AddTransition(m.CurrentState(), body, fsm.ByteEquals(quote))
	m.AddTransition(body, body, fsm.ByteExcept(quote))
	m.AddTransition(body, accept, fsm.ByteEquals(quote))
	return m
}

// EscapedString builds a machine accepting a quote-delimited string where a
// backslash escapes the following byte unconditionally — so an escaped
// quote never closes the string. JSON needs this; the plain String builder
// above (no escape handling) is what Kaubo's grammar calls for instead
// (spec.md §9 Open Questions leaves escape handling to the front-end).
func EscapedString(kind token.Kind, quote byte) *fsm.Machine {
	m := fsm.New(kind)
	body := m.AddState(false)
	escape := m.AddState(false)
	accept := m.AddState(true)

	m.AddTransition(m.CurrentState(), body, fsm.ByteEquals(quote))

	isPlain := func(b byte) bool { return b != quote && b != '\\' }
	m.AddTransition(body, body, isPlain)
	m.AddTransition(body, escape, fsm.ByteEquals('\\'))
	m.AddTransition(body, accept, fsm.ByteEquals(quote))

	m.AddTransition(escape, body, fsm.Any())
	return m
}

// LineComment builds a machine accepting "//" followed by any run of bytes
// up to (not including) the next newline.
func LineComment(kind token.Kind) *fsm.Machine {
	m := fsm.New(kind)
	firstSlash := m.AddState(false)
	accept := m.AddState(true)
	m.AddTransition(m.CurrentState(), firstSlash, fsm.ByteEquals('/'))
	m.AddTransition(firstSlash, accept, fsm.ByteEquals('/'))
	notNewline := func(b byte) bool { return b != '\n' && b != '\r' }
	m.AddTransition(accept, accept, notNewline)
	return m
}

// BlockComment builds a machine accepting "/* ... */", with a two-state
// trailer that watches for the closing "*/" without prematurely accepting
// on a lone '*' inside the body.
func BlockComment(kind token.Kind) *fsm.Machine {
	m := fsm.New(kind)
	firstStar := m.AddState(false) // seen '/'
	body := m.AddState(false)      // inside comment, last byte wasn't '*'
	sawStar := m.AddState(false)   // inside comment, last byte was '*'
	accept := m.AddState(true)     // saw "*/"

	m.AddTransition(m.CurrentState(), firstStar, fsm.ByteEquals('/'))
	m.AddTransition(firstStar, body, fsm.ByteEquals('*'))

	notStar := func(b byte) bool { return b != '*' }
	m.AddTransition(body, body, notStar)
	m.AddTransition(body, sawStar, fsm.ByteEquals('*'))

	notStarOrSlash := func(b byte) bool { return b != '*' && b != '/' }
	m.AddTransition(sawStar, body, notStarOrSlash)
	m.AddTransition(sawStar, sawStar, fsm.ByteEquals('*'))
	m.AddTransition(sawStar, accept, fsm.ByteEquals('/'))
	return m
}

// Whitespace builds a machine accepting one ASCII space.
func Whitespace(kind token.Kind) *fsm.Machine {
	return SingleSymbol(kind, ' ')
}

// Tab builds a machine accepting one ASCII tab.
func Tab(kind token.Kind) *fsm.Machine {
	return SingleSymbol(kind, '\t')
}

// Newline builds a machine accepting '\n' directly, or '\r' optionally
// followed by '\n' — both count as a single newline (spec.md §3).
func Newline(kind token.Kind) *fsm.Machine {
	m := fsm.New(kind)
	sawCR := m.AddState(true)
	acceptLF := m.AddState(true)
	m.AddTransition(m.CurrentState(), acceptLF, fsm.ByteEquals('\n'))
	m.AddTransition(m.CurrentState(), sawCR, fsm.ByteEquals('\r'))
	m.AddTransition(sawCR, acceptLF, fsm.ByteEquals('\n'))
	return m
}
