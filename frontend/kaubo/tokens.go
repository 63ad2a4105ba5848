// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

// Package kaubo is the Kaubo front-end: a concrete token.Vocabulary, the
// state machines that recognize its lexemes, and a listener-driven printer.
// Kaubo is the small expression-and-statement language spec.md's grammar
// sketch describes (var-decl, if/while/for, lambda, Pratt expressions).
package kaubo

import "github.com/probechain/kaubo/token"

// Kind constants for the Kaubo front-end. Word-like keywords that can
// collide with an identifier of the same spelling (true, false, var, if,
// else, while, for, return, and, or) all sit below KindIdentifier so the
// state-machine manager's tie-break rule — lower Kind wins an equal-length
// match — makes the keyword win (spec.md §6, §8 scenario 3).
const (
	KindUtf8Error token.Kind = 0

	KindTrue token.Kind = iota
	KindFalse
	KindVar
	KindIf
	KindElse
	KindWhile
	KindFor
	KindReturn
	KindAnd
	KindOr

	KindIdentifier
	KindInteger
	KindFloat
	KindString

	KindPlus
	KindMinus
	KindStar
	KindSlash
	KindBang
	KindDot
	KindComma
	KindSemicolon
	KindLParen
	KindRParen
	KindLBrace
	KindRBrace
	KindPipe
	KindEqual
	KindEqualEqual
	KindBangEqual
	KindLess
	KindGreater
	KindLessEqual
	KindGreaterEqual

	KindLineComment
	KindBlockComment

	KindWhitespace
	KindTab
	KindNewline
	KindEOF

	KindInvalidToken token.Kind = 255
)

var names = map[token.Kind]string{
	KindUtf8Error:    "Utf8Error",
	KindTrue:         "True",
	KindFalse:        "False",
	KindVar:          "Var",
	KindIf:           "If",
	KindElse:         "Else",
	KindWhile:        "While",
	KindFor:          "For",
	KindReturn:       "Return",
	KindAnd:          "And",
	KindOr:           "Or",
	KindIdentifier:   "Identifier",
	KindInteger:      "Integer",
	KindFloat:        "Float",
	KindString:       "String",
	KindPlus:         "Plus",
	KindMinus:        "Minus",
	KindStar:         "Star",
	KindSlash:        "Slash",
	KindBang:         "Bang",
	KindDot:          "Dot",
	KindComma:        "Comma",
	KindSemicolon:    "Semicolon",
	KindLParen:       "LParen",
	KindRParen:       "RParen",
	KindLBrace:       "LBrace",
	KindRBrace:       "RBrace",
	KindPipe:         "Pipe",
	KindEqual:        "Equal",
	KindEqualEqual:   "EqualEqual",
	KindBangEqual:    "BangEqual",
	KindLess:         "Less",
	KindGreater:      "Greater",
	KindLessEqual:    "LessEqual",
	KindGreaterEqual: "GreaterEqual",
	KindLineComment:  "LineComment",
	KindBlockComment: "BlockComment",
	KindWhitespace:   "Whitespace",
	KindTab:          "Tab",
	KindNewline:      "Newline",
	KindEOF:          "EOF",
	KindInvalidToken: "InvalidToken",
}

// Vocabulary implements token.Vocabulary for the Kaubo front-end.
type Vocabulary struct{}

var _ token.Vocabulary = Vocabulary{}

func (Vocabulary) Name(k token.Kind) string {
	if n, ok := names[k]; ok {
		return n
	}
	return "Unknown"
}

func (Vocabulary) Priority(k token.Kind) uint8 { return uint8(k) }

func (Vocabulary) IsWhitespace(k token.Kind) bool { return k == KindWhitespace }
func (Vocabulary) IsTab(k token.Kind) bool        { return k == KindTab }
func (Vocabulary) IsNewline(k token.Kind) bool    { return k == KindNewline }

func (Vocabulary) Utf8Error() token.Kind    { return KindUtf8Error }
func (Vocabulary) InvalidToken() token.Kind { return KindInvalidToken }

func init() {
	token.AssertVocabulary(Vocabulary{})
}
