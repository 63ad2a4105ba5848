// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package lexer

import (
	"testing"
	"unsafe"

	"github.com/probechain/kaubo/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testVocab is a minimal token.Vocabulary used only by this package's own
// tests, independent of any concrete front-end (frontend/kaubo imports
// this package, so this package cannot import it back).
type testVocab struct{}

const (
	kUtf8Error token.Kind = 0
	kTrue      token.Kind = 1
	kIdent     token.Kind = 10
	kWhitespace token.Kind = 20
	kTab        token.Kind = 21
	kNewline    token.Kind = 22
	kInvalid   token.Kind = 255
)

func (testVocab) Name(k token.Kind) string          { return "" }
func (testVocab) Priority(k token.Kind) uint8       { return uint8(k) }
func (testVocab) IsWhitespace(k token.Kind) bool    { return k == kWhitespace }
func (testVocab) IsTab(k token.Kind) bool           { return k == kTab }
func (testVocab) IsNewline(k token.Kind) bool       { return k == kNewline }
func (testVocab) Utf8Error() token.Kind             { return kUtf8Error }
func (testVocab) InvalidToken() token.Kind          { return kInvalid }

func newTestEngine() *Engine {
	e := New(Config{RingCapacity: 256, TabStride: 4}, testVocab{})
	e.RegisterMachine(Keyword(kTrue, "true"))
	e.RegisterMachine(Identifier(kIdent))
	e.RegisterMachine(Whitespace(kWhitespace))
	e.RegisterMachine(Tab(kTab))
	e.RegisterMachine(Newline(kNewline))
	return e
}

func drain(e *Engine) []token.Token {
	var toks []token.Token
	for {
		tok, ok := e.NextToken()
		if !ok {
			if e.EndOfInput() {
				return toks
			}
			return toks // no more bytes fed in these tests; stop waiting
		}
		toks = append(toks, tok)
	}
}

func TestKeywordVsIdentifierTieBreak(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.Feed([]byte("truer true")))
	e.Terminate()

	toks := drain(e)
	require.Len(t, toks, 2)
	assert.Equal(t, kIdent, toks[0].Kind)
	assert.Equal(t, "truer", toks[0].Lexeme)
	assert.Equal(t, token.Coordinate{Line: 1, Column: 1}, toks[0].Coordinate)

	assert.Equal(t, kTrue, toks[1].Kind)
	assert.Equal(t, "true", toks[1].Lexeme)
	assert.Equal(t, token.Coordinate{Line: 1, Column: 7}, toks[1].Coordinate)
}

func TestUnicodeIdentifierColumnCountsCodepoints(t *testing.T) {
	e := newTestEngine()
	e.RegisterMachine(SingleSymbol(token.Kind(30), '='))
	e.RegisterMachine(Integer(token.Kind(31)))
	require.NoError(t, e.Feed([]byte("你好 = 1")))
	e.Terminate()

	toks := drain(e)
	require.Len(t, toks, 3)
	assert.Equal(t, "你好", toks[0].Lexeme)
	assert.Equal(t, token.Coordinate{Line: 1, Column: 1}, toks[0].Coordinate)
	assert.Equal(t, token.Coordinate{Line: 1, Column: 4}, toks[1].Coordinate)
	assert.Equal(t, token.Coordinate{Line: 1, Column: 6}, toks[2].Coordinate)
}

func TestIncompleteUTF8AtEndOfStreamEmitsTwoUtf8Errors(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.Feed([]byte{0xE4, 0xBD}))
	e.Terminate()

	toks := drain(e)
	require.Len(t, toks, 2)
	assert.Equal(t, kUtf8Error, toks[0].Kind)
	assert.Equal(t, "\xE4", toks[0].Lexeme)
	assert.Equal(t, kUtf8Error, toks[1].Kind)
	assert.Equal(t, "\xBD", toks[1].Lexeme)
}

func TestNewTokenWaitsWithoutTerminate(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.Feed([]byte("tr")))

	_, ok := e.NextToken()
	assert.False(t, ok, "partial identifier with no terminator must wait for more input")
	assert.False(t, e.EndOfInput())
}

func TestInvalidTokenWhenNoMachineAccepts(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.Feed([]byte("$")))
	e.Terminate()

	toks := drain(e)
	require.Len(t, toks, 1)
	assert.Equal(t, kInvalid, toks[0].Kind)
	assert.Equal(t, "$", toks[0].Lexeme)
}

func TestWhitespaceFoldsIntoCursorNotEmittedAsToken(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.Feed([]byte("a   b")))
	e.Terminate()

	toks := drain(e)
	require.Len(t, toks, 2)
	assert.Equal(t, "a", toks[0].Lexeme)
	assert.Equal(t, "b", toks[1].Lexeme)
	assert.Equal(t, token.Coordinate{Line: 1, Column: 5}, toks[1].Coordinate)
}

func TestNewlineAdvancesLineAndResetsColumn(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.Feed([]byte("a\nb")))
	e.Terminate()

	toks := drain(e)
	require.Len(t, toks, 2)
	assert.Equal(t, token.Coordinate{Line: 1, Column: 1}, toks[0].Coordinate)
	assert.Equal(t, token.Coordinate{Line: 2, Column: 1}, toks[1].Coordinate)
}

func TestTabAdvancesColumnByStride(t *testing.T) {
	e := New(Config{RingCapacity: 64, TabStride: 4}, testVocab{})
	e.RegisterMachine(Identifier(kIdent))
	e.RegisterMachine(Tab(kTab))
	require.NoError(t, e.Feed([]byte("a\tb")))
	e.Terminate()

	toks := drain(e)
	require.Len(t, toks, 2)
	assert.Equal(t, token.Coordinate{Line: 1, Column: 1}, toks[0].Coordinate)
	assert.Equal(t, token.Coordinate{Line: 1, Column: 6}, toks[1].Coordinate)
}

func TestEndOfInputTrueOnlyAfterTerminateAndDrain(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.Feed([]byte("a")))
	assert.False(t, e.EndOfInput())

	// A lone "a" with no terminator could still extend into a longer
	// identifier, so NextToken must wait rather than guess.
	_, ok := e.NextToken()
	assert.False(t, ok, "must wait for more input or termination")
	assert.False(t, e.EndOfInput())

	e.Terminate()
	assert.False(t, e.EndOfInput(), "the pending \"a\" still needs to be finalized into a token")

	tok, ok := e.NextToken()
	require.True(t, ok)
	assert.Equal(t, "a", tok.Lexeme)
	assert.True(t, e.EndOfInput())

	_, ok = e.NextToken()
	assert.False(t, ok)
}

func TestInternKindsDeduplicatesRepeatedLexemes(t *testing.T) {
	e := newTestEngine()
	e.InternKinds(NewInterner(8), kIdent)
	require.NoError(t, e.Feed([]byte("alpha beta alpha")))
	e.Terminate()

	toks := drain(e)
	require.Len(t, toks, 3)
	assert.Equal(t, "alpha", toks[0].Lexeme)
	assert.Equal(t, "beta", toks[1].Lexeme)
	assert.Equal(t, "alpha", toks[2].Lexeme)

	first := toks[0].Lexeme
	third := toks[2].Lexeme
	assert.Same(t, unsafe.StringData(first), unsafe.StringData(third), "two occurrences of the same interned kind must share one backing string")
}
