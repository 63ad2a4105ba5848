// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package kaubo

import (
	"github.com/probechain/kaubo/fsm"
	"github.com/probechain/kaubo/lexer"
)

// identifierInternCapacity bounds how many distinct identifier lexemes a
// single engine will keep deduplicated at once; source files with more
// distinct names than this just stop gaining new hits, they don't error.
const identifierInternCapacity = 1024

// NewEngine builds a lexer.Engine with every machine the Kaubo grammar
// needs already registered, in the priority order the Kind constants in
// tokens.go fix: keywords before Identifier so an equal-length match always
// resolves in the keyword's favor (spec.md §4.6, §8 scenario 3). Identifier
// lexemes are interned so a source file that repeats the same name many
// times allocates that string once.
func NewEngine(cfg lexer.Config) *lexer.Engine {
	e := lexer.New(cfg, Vocabulary{})
	for _, m := range Machines() {
		e.RegisterMachine(m)
	}
	e.InternKinds(lexer.NewInterner(identifierInternCapacity), KindIdentifier)
	return e
}

// Machines returns the full Kaubo machine set, exported separately from
// NewEngine so tests and alternative front-end assemblies (e.g. a listener
// that wants to dump the raw FSM set) can inspect it directly.
func Machines() []*fsm.Machine {
	return []*fsm.Machine{
		lexer.Keyword(KindTrue, "true"),
		lexer.Keyword(KindFalse, "false"),
		lexer.Keyword(KindVar, "var"),
		lexer.Keyword(KindIf, "if"),
		lexer.Keyword(KindElse, "else"),
		lexer.Keyword(KindWhile, "while"),
		lexer.Keyword(KindFor, "for"),
		lexer.Keyword(KindReturn, "return"),
		lexer.Keyword(KindAnd, "and"),
		lexer.Keyword(KindOr, "or"),

		lexer.Identifier(KindIdentifier),
		lexer.Float(KindFloat),
		lexer.Integer(KindInteger),
		lexer.String(KindString, '"'),
		lexer.String(KindString, '\''),

		lexer.DoubleSymbol(KindEqualEqual, [2]byte{'=', '='}),
		lexer.DoubleSymbol(KindBangEqual, [2]byte{'!', '='}),
		lexer.DoubleSymbol(KindLessEqual, [2]byte{'<', '='}),
		lexer.DoubleSymbol(KindGreaterEqual, [2]byte{'>', '='}),

		lexer.SingleSymbol(KindPlus, '+'),
		lexer.SingleSymbol(KindMinus, '-'),
		lexer.SingleSymbol(KindStar, '*'),
		lexer.SingleSymbol(KindSlash, '/'),
		lexer.SingleSymbol(KindBang, '!'),
		lexer.SingleSymbol(KindDot, '.'),
		lexer.SingleSymbol(KindComma, ','),
		lexer.SingleSymbol(KindSemicolon, ';'),
		lexer.SingleSymbol(KindLParen, '('),
		lexer.SingleSymbol(KindRParen, ')'),
		lexer.SingleSymbol(KindLBrace, '{'),
		lexer.SingleSymbol(KindRBrace, '}'),
		lexer.SingleSymbol(KindPipe, '|'),
		lexer.SingleSymbol(KindEqual, '='),
		lexer.SingleSymbol(KindLess, '<'),
		lexer.SingleSymbol(KindGreater, '>'),

		lexer.LineComment(KindLineComment),
		lexer.BlockComment(KindBlockComment),

		lexer.Whitespace(KindWhitespace),
		lexer.Tab(KindTab),
		lexer.Newline(KindNewline),
	}
}
