// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package json

import (
	"github.com/probechain/kaubo/fsm"
	"github.com/probechain/kaubo/lexer"
	"github.com/probechain/kaubo/token"
	"github.com/probechain/kaubo/utf8codec"
)

// NewEngine builds a lexer.Engine with every machine JSON's grammar needs
// already registered.
func NewEngine(cfg lexer.Config) *lexer.Engine {
	e := lexer.New(cfg, Vocabulary{})
	for _, m := range Machines() {
		e.RegisterMachine(m)
	}
	return e
}

// Machines returns the full JSON machine set.
func Machines() []*fsm.Machine {
	return []*fsm.Machine{
		lexer.Keyword(KindTrue, "true"),
		lexer.Keyword(KindFalse, "false"),
		lexer.Keyword(KindNull, "null"),

		floatWithExponent(KindFloat),
		signedInteger(KindInteger),
		lexer.EscapedString(KindString, '"'),

		lexer.SingleSymbol(KindLeftCurly, '{'),
		lexer.SingleSymbol(KindRightCurly, '}'),
		lexer.SingleSymbol(KindLeftBracket, '['),
		lexer.SingleSymbol(KindRightBracket, ']'),
		lexer.SingleSymbol(KindColon, ':'),
		lexer.SingleSymbol(KindComma, ','),

		lexer.Whitespace(KindWhitespace),
		lexer.Tab(KindTab),
		lexer.Newline(KindNewline),
	}
}

// signedInteger builds a machine accepting an optional leading '-' followed
// by one or more digits — JSON integers may be negative, unlike Kaubo's
// plain lexer.Integer (spec.md §4.6 example machines cover only unsigned
// digit runs).
func signedInteger(kind token.Kind) *fsm.Machine {
	m := fsm.New(kind)
	afterSign := m.AddState(false)
	accept := m.AddState(true)
	m.AddTransition(m.CurrentState(), afterSign, fsm.ByteEquals('-'))
	m.AddTransition(m.CurrentState(), accept, utf8codec.IsDigit)
	m.AddTransition(afterSign, accept, utf8codec.IsDigit)
	m.AddTransition(accept, accept, utf8codec.IsDigit)
	return m
}

// floatWithExponent builds a machine for the JSON number grammar's
// non-integer forms: -?digit+ ('.' digit+)? (('e'|'E') ('+'|'-')? digit+)?,
// requiring a fraction or an exponent (a bare digit run is signedInteger's
// job, so the two machines never both accept the same lexeme). This
// supersedes the exponent-free lexer.Float for the JSON front-end, since
// JSON numbers fold the sign and exponent into the literal itself rather
// than treating '-' as a separate unary operator the way Kaubo's grammar
// does.
func floatWithExponent(kind token.Kind) *fsm.Machine {
	m := fsm.New(kind)
	afterSign := m.AddState(false)
	intDigits := m.AddState(false)
	dot := m.AddState(false)
	fracDigits := m.AddState(true)
	expStart := m.AddState(false)
	expSignSeen := m.AddState(false)
	expDigits := m.AddState(true)

	isExp := fsm.ByteIn('e', 'E')
	isExpSign := fsm.ByteIn('+', '-')

	m.AddTransition(m.CurrentState(), afterSign, fsm.ByteEquals('-'))
	m.AddTransition(m.CurrentState(), intDigits, utf8codec.IsDigit)
	m.AddTransition(afterSign, intDigits, utf8codec.IsDigit)
	m.AddTransition(intDigits, intDigits, utf8codec.IsDigit)
	m.AddTransition(intDigits, dot, fsm.ByteEquals('.'))
	m.AddTransition(intDigits, expStart, isExp)
	m.AddTransition(dot, fracDigits, utf8codec.IsDigit)
	m.AddTransition(fracDigits, fracDigits, utf8codec.IsDigit)
	m.AddTransition(fracDigits, expStart, isExp)
	m.AddTransition(expStart, expSignSeen, isExpSign)
	m.AddTransition(expStart, expDigits, utf8codec.IsDigit)
	m.AddTransition(expSignSeen, expDigits, utf8codec.IsDigit)
	m.AddTransition(expDigits, expDigits, utf8codec.IsDigit)
	return m
}
