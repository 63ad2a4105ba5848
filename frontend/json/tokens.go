// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

// Package json is the JSON front-end: a token.Vocabulary, the state
// machines that recognize JSON's lexical grammar, a small value DOM, a
// recursive-descent parser over the shared lexer.Engine (outside the Pratt
// core, since JSON has no operator precedence to climb), and a printer that
// round-trips a parsed document back to text (spec.md §8 scenario 1).
package json

import "github.com/probechain/kaubo/token"

// Kind constants for the JSON front-end. There is no identifier/keyword
// ambiguity to resolve here — true/false/null are fixed keyword spellings
// that never collide with an identifier production, since JSON has none —
// so, unlike Kaubo, ordering among these kinds carries no tie-break
// meaning.
const (
	KindUtf8Error token.Kind = 0

	KindLeftCurly token.Kind = iota
	KindRightCurly
	KindLeftBracket
	KindRightBracket
	KindColon
	KindComma
	KindString
	KindInteger
	KindFloat
	KindTrue
	KindFalse
	KindNull

	KindWhitespace
	KindTab
	KindNewline
	KindEOF

	KindInvalidToken token.Kind = 255
)

var names = map[token.Kind]string{
	KindUtf8Error:    "Utf8Error",
	KindLeftCurly:    "LeftCurly",
	KindRightCurly:   "RightCurly",
	KindLeftBracket:  "LeftBracket",
	KindRightBracket: "RightBracket",
	KindColon:        "Colon",
	KindComma:        "Comma",
	KindString:       "String",
	KindInteger:      "Integer",
	KindFloat:        "Float",
	KindTrue:         "True",
	KindFalse:        "False",
	KindNull:         "Null",
	KindWhitespace:   "Whitespace",
	KindTab:          "Tab",
	KindNewline:      "Newline",
	KindEOF:          "EOF",
	KindInvalidToken: "InvalidToken",
}

// Vocabulary implements token.Vocabulary for the JSON front-end.
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
